// Package config provides environment-driven configuration for face-reco.
package config

import (
	"fmt"
	"os"
	"strconv"
)

// Defaults for the capture pipeline.
const (
	DefaultCameraDevice = 0
	DefaultFrameWidth   = 640
	DefaultFrameHeight  = 480
	DefaultCascadePath  = "models/haarcascade_frontalface_default.xml"
	DefaultWindowStart  = "09:00:00"
	DefaultWindowEnd    = "09:15:00"
	DefaultSMTPHost     = "smtp.gmail.com"
	DefaultSMTPPort     = 587
)

// Config holds all settings for a single run. It is built once at
// process start and treated as read-only afterwards.
type Config struct {
	// Camera
	CameraDevice int
	FrameWidth   int
	FrameHeight  int

	// Face detection
	CascadePath string

	// Detection window, wall-clock time of day as HH:MM:SS
	WindowStart string
	WindowEnd   string

	// Email
	SMTPHost       string
	SMTPPort       int
	SenderEmail    string
	SenderPassword string
	ReceiverEmail  string

	// Output
	OutputDir string

	// Show a live preview window ('q' cancels)
	Preview bool

	LogLevel string
}

// Load builds a Config from environment variables, falling back to
// defaults for everything except the email credentials.
func Load() Config {
	return Config{
		CameraDevice:   envInt("CAMERA_DEVICE", DefaultCameraDevice),
		FrameWidth:     envInt("FRAME_WIDTH", DefaultFrameWidth),
		FrameHeight:    envInt("FRAME_HEIGHT", DefaultFrameHeight),
		CascadePath:    envStr("FACE_CASCADE_PATH", DefaultCascadePath),
		WindowStart:    envStr("DETECTION_WINDOW_START", DefaultWindowStart),
		WindowEnd:      envStr("DETECTION_WINDOW_END", DefaultWindowEnd),
		SMTPHost:       envStr("SMTP_HOST", DefaultSMTPHost),
		SMTPPort:       envInt("SMTP_PORT", DefaultSMTPPort),
		SenderEmail:    os.Getenv("SENDER_EMAIL"),
		SenderPassword: os.Getenv("SENDER_PASSWORD"),
		ReceiverEmail:  os.Getenv("RECEIVER_EMAIL"),
		OutputDir:      envStr("OUTPUT_DIR", "."),
		Preview:        envBool("PREVIEW", false),
		LogLevel:       envStr("LOG_LEVEL", "info"),
	}
}

// Validate checks the config values. Returns a list of validation
// errors, or nil if valid.
func (c *Config) Validate() []string {
	var errors []string

	if c.CameraDevice < 0 {
		errors = append(errors, "camera device must be >= 0")
	}
	if c.FrameWidth < 160 || c.FrameHeight < 120 {
		errors = append(errors, "frame size must be at least 160x120")
	}
	if c.CascadePath == "" {
		errors = append(errors, "cascade model path must not be empty")
	}
	if c.SMTPPort < 1 || c.SMTPPort > 65535 {
		errors = append(errors, fmt.Sprintf("smtp port %d out of range", c.SMTPPort))
	}
	if c.SenderEmail == "" {
		errors = append(errors, "SENDER_EMAIL environment variable is required")
	}
	if c.SenderPassword == "" {
		errors = append(errors, "SENDER_PASSWORD environment variable is required")
	}
	if c.ReceiverEmail == "" {
		errors = append(errors, "RECEIVER_EMAIL environment variable is required")
	}

	return errors
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
