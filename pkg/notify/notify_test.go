package notify

import (
	"os"
	"path/filepath"
	"testing"
)

func testConfig() Config {
	return Config{
		Host:     "smtp.example.com",
		Port:     587,
		Sender:   "camera@example.com",
		Password: "secret",
		Receiver: "owner@example.com",
	}
}

func TestNewMailer_RequiresAddresses(t *testing.T) {
	cfg := testConfig()
	cfg.Sender = ""
	if _, err := NewMailer(cfg); err == nil {
		t.Error("Expected error for missing sender")
	}

	cfg = testConfig()
	cfg.Receiver = ""
	if _, err := NewMailer(cfg); err == nil {
		t.Error("Expected error for missing receiver")
	}
}

func TestNewMailer_DefaultsSubjectAndBody(t *testing.T) {
	m, err := NewMailer(testConfig())
	if err != nil {
		t.Fatalf("NewMailer failed: %v", err)
	}
	if m.cfg.Subject != DefaultSubject {
		t.Errorf("Expected default subject, got %q", m.cfg.Subject)
	}
	if m.cfg.Body != DefaultBody {
		t.Errorf("Expected default body, got %q", m.cfg.Body)
	}
}

func TestBuildMessage_AttachesExistingFile(t *testing.T) {
	m, err := NewMailer(testConfig())
	if err != nil {
		t.Fatalf("NewMailer failed: %v", err)
	}

	path := filepath.Join(t.TempDir(), "face_capture_20240601_090500.jpg")
	if err := os.WriteFile(path, []byte{0xff, 0xd8, 0xff, 0xd9}, 0o644); err != nil {
		t.Fatalf("write test file: %v", err)
	}

	msg, err := m.buildMessage(path)
	if err != nil {
		t.Fatalf("buildMessage failed: %v", err)
	}
	if got := len(msg.GetAttachments()); got != 1 {
		t.Errorf("Expected one attachment, got %d", got)
	}
}

func TestBuildMessage_MissingFileSkipsAttachment(t *testing.T) {
	m, err := NewMailer(testConfig())
	if err != nil {
		t.Fatalf("NewMailer failed: %v", err)
	}

	msg, err := m.buildMessage("/nonexistent/face_capture.jpg")
	if err != nil {
		t.Fatalf("buildMessage failed: %v", err)
	}
	if got := len(msg.GetAttachments()); got != 0 {
		t.Errorf("Expected no attachments for missing file, got %d", got)
	}

	// Empty path behaves the same.
	msg, err = m.buildMessage("")
	if err != nil {
		t.Fatalf("buildMessage failed: %v", err)
	}
	if got := len(msg.GetAttachments()); got != 0 {
		t.Errorf("Expected no attachments for empty path, got %d", got)
	}
}
