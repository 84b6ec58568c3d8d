// Package notify sends email notifications with image attachments.
package notify

import (
	"context"
	"fmt"
	"os"

	"github.com/wneessen/go-mail"
)

// Notifier is the contract consumed by the capture loop. Notify blocks
// until the notification is transmitted or fails; the caller decides
// what to do with the error.
type Notifier interface {
	Notify(ctx context.Context, imagePath string) error
}

// Config holds the mail relay settings. It is built once at process
// start and never mutated afterwards.
type Config struct {
	Host     string
	Port     int
	Sender   string
	Password string
	Receiver string
	Subject  string
	Body     string
}

// DefaultSubject and DefaultBody are used when the config leaves them
// empty.
const (
	DefaultSubject = "Face Detected Notification"
	DefaultBody    = "A face has been detected by the camera."
)

// Mailer sends notifications over an authenticated STARTTLS SMTP
// session.
type Mailer struct {
	cfg    Config
	client *mail.Client
}

// NewMailer creates a Mailer from the given relay config.
func NewMailer(cfg Config) (*Mailer, error) {
	if cfg.Sender == "" || cfg.Receiver == "" {
		return nil, fmt.Errorf("mailer config: sender and receiver are required")
	}
	if cfg.Subject == "" {
		cfg.Subject = DefaultSubject
	}
	if cfg.Body == "" {
		cfg.Body = DefaultBody
	}

	client, err := mail.NewClient(cfg.Host,
		mail.WithPort(cfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(cfg.Sender),
		mail.WithPassword(cfg.Password),
		mail.WithTLSPolicy(mail.TLSMandatory),
	)
	if err != nil {
		return nil, fmt.Errorf("create smtp client: %w", err)
	}

	return &Mailer{cfg: cfg, client: client}, nil
}

// Notify sends the notification email with the image attached. A
// missing or unreadable image path skips the attachment; the mail is
// still sent.
func (m *Mailer) Notify(ctx context.Context, imagePath string) error {
	msg, err := m.buildMessage(imagePath)
	if err != nil {
		return err
	}

	if err := m.client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("send notification: %w", err)
	}
	return nil
}

// buildMessage assembles the notification email. The attachment
// content type is inferred from the file extension by the mail
// library.
func (m *Mailer) buildMessage(imagePath string) (*mail.Msg, error) {
	msg := mail.NewMsg()
	if err := msg.From(m.cfg.Sender); err != nil {
		return nil, fmt.Errorf("set sender: %w", err)
	}
	if err := msg.To(m.cfg.Receiver); err != nil {
		return nil, fmt.Errorf("set receiver: %w", err)
	}
	msg.Subject(m.cfg.Subject)
	msg.SetBodyString(mail.TypeTextPlain, m.cfg.Body)

	if imagePath != "" {
		if _, err := os.Stat(imagePath); err == nil {
			msg.AttachFile(imagePath)
		}
	}

	return msg, nil
}
