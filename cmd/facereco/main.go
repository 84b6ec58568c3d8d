// facereco waits for motion on the webcam and, inside the daily
// detection window, emails a snapshot for every face it sees.
package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"gocv.io/x/gocv"

	"github.com/AdrienPiette/face-reco/internal/config"
	"github.com/AdrienPiette/face-reco/internal/log"
	"github.com/AdrienPiette/face-reco/pkg/camera"
	"github.com/AdrienPiette/face-reco/pkg/face"
	"github.com/AdrienPiette/face-reco/pkg/motion"
	"github.com/AdrienPiette/face-reco/pkg/notify"
)

func main() {
	// Optional .env for local runs; real deployments set the
	// environment directly.
	_ = godotenv.Load()

	cfg := config.Load()
	log.Init(cfg.LogLevel)

	if errs := cfg.Validate(); len(errs) > 0 {
		log.Error("invalid configuration", "problems", strings.Join(errs, "; "))
		os.Exit(1)
	}

	window, err := face.ParseWindow(cfg.WindowStart, cfg.WindowEnd)
	if err != nil {
		log.Error("invalid detection window", "error", err)
		os.Exit(1)
	}

	mailer, err := notify.NewMailer(notify.Config{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Sender:   cfg.SenderEmail,
		Password: cfg.SenderPassword,
		Receiver: cfg.ReceiverEmail,
	})
	if err != nil {
		log.Error("failed to create mailer", "error", err)
		os.Exit(1)
	}

	detector, err := face.NewCascade(face.DetectorConfig{
		ModelPath:    cfg.CascadePath,
		ScaleFactor:  1.1,
		MinNeighbors: 5,
		MinSize:      30,
	})
	if err != nil {
		log.Error("failed to load face detector", "error", err)
		os.Exit(1)
	}
	defer detector.Close()

	device, err := camera.OpenDevice(cfg.CameraDevice, cfg.FrameWidth, cfg.FrameHeight)
	if err != nil {
		log.Error("failed to open camera", "error", err)
		os.Exit(1)
	}
	defer device.Close()

	// SIGINT/SIGTERM cancel both loops cooperatively.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Info("shutting down")
		cancel()
	}()

	var preview *gocv.Window
	if cfg.Preview {
		preview = gocv.NewWindow("face-reco")
		defer preview.Close()
	}

	log.Info("waiting for motion",
		"device", cfg.CameraDevice,
		"window", cfg.WindowStart+"-"+cfg.WindowEnd)

	gate := motion.New(device, motion.DefaultConfig())
	if preview != nil {
		gate.SetPreview(preview)
	}

	moved, err := gate.Wait(ctx)
	if err != nil {
		log.Error("motion detection failed", "error", err)
		os.Exit(1)
	}
	if !moved {
		log.Info("cancelled before motion was detected")
		return
	}

	loop := face.NewLoop(device, detector, mailer, window)
	loop.OutputDir = cfg.OutputDir
	if preview != nil {
		loop.SetPreview(preview)
	}

	if !window.Contains(loop.Now()) {
		log.Info("motion detected outside the detection window")
		return
	}

	if err := loop.Run(ctx); err != nil {
		log.Error("face capture failed", "error", err)
		os.Exit(1)
	}

	log.Info("done")
}
