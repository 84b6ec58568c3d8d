package face

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"gocv.io/x/gocv"

	"github.com/AdrienPiette/face-reco/internal/log"
	"github.com/AdrienPiette/face-reco/pkg/camera"
	"github.com/AdrienPiette/face-reco/pkg/notify"
)

// CaptureEvent records one saved face snapshot.
type CaptureEvent struct {
	ID   string
	Box  image.Rectangle
	Path string
	At   time.Time
}

// Loop grabs frames while inside the detection window, runs the face
// detector on each, and notifies once per detected face. Faces are not
// deduplicated across frames: a face present in consecutive frames
// produces repeated captures.
type Loop struct {
	source   camera.Source
	detector Detector
	notifier notify.Notifier
	window   Window

	// OutputDir is where snapshot files are written. Defaults to the
	// working directory.
	OutputDir string

	// Now is the clock used for the window check and filenames.
	// Overridable for tests.
	Now func() time.Time

	preview *gocv.Window
}

// NewLoop creates a capture loop.
func NewLoop(source camera.Source, detector Detector, notifier notify.Notifier, window Window) *Loop {
	return &Loop{
		source:   source,
		detector: detector,
		notifier: notifier,
		window:   window,
		Now:      time.Now,
	}
}

// SetPreview attaches a preview window. Pressing 'q' in the window
// stops the loop.
func (l *Loop) SetPreview(w *gocv.Window) {
	l.preview = w
}

// Run executes the capture loop until the detection window closes, the
// context is cancelled, or the camera fails. Leaving the window is a
// clean stop, not an error. Notification failures are logged and never
// stop the loop.
func (l *Loop) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		now := l.Now()
		if !l.window.Contains(now) {
			log.Info("outside detection window, stopping face capture",
				"window_start", l.window.Start.String(),
				"window_end", l.window.End.String())
			return nil
		}

		frame, err := l.source.CaptureJPEG()
		if err != nil {
			return err
		}

		detections, err := l.detector.Detect(frame)
		if err != nil {
			log.Warn("face detection failed", "error", err)
			continue
		}

		if len(detections) == 0 {
			if l.preview != nil && l.showFrame(frame) {
				return nil
			}
			continue
		}

		img, err := gocv.IMDecode(frame, gocv.IMReadColor)
		if err != nil {
			log.Warn("decode frame failed", "error", err)
			continue
		}

		for _, det := range detections {
			event, err := l.capture(ctx, &img, det, now)
			if err != nil {
				log.Warn("capture failed", "error", err)
				continue
			}
			log.Info("face captured",
				"event_id", event.ID,
				"path", event.Path,
				"box", event.Box.String())
		}

		if l.preview != nil {
			l.preview.IMShow(img)
			if l.preview.WaitKey(1) == 'q' {
				img.Close()
				return nil
			}
		}
		img.Close()
	}
}

// capture draws the marker, persists the annotated frame, and notifies.
// Notification failure is logged here, never returned.
func (l *Loop) capture(ctx context.Context, img *gocv.Mat, det Detection, now time.Time) (CaptureEvent, error) {
	gocv.Rectangle(img, det.Box, color.RGBA{R: 255, A: 255}, 2)

	name := fmt.Sprintf("face_capture_%s.jpg", now.Format("20060102_150405"))
	path := filepath.Join(l.OutputDir, name)
	if ok := gocv.IMWrite(path, *img); !ok {
		return CaptureEvent{}, fmt.Errorf("write snapshot %s", path)
	}

	event := CaptureEvent{
		ID:   uuid.NewString(),
		Box:  det.Box,
		Path: path,
		At:   now,
	}

	if err := l.notifier.Notify(ctx, path); err != nil {
		log.Warn("notification failed", "event_id", event.ID, "error", err)
	}

	return event, nil
}

func (l *Loop) showFrame(jpeg []byte) bool {
	img, err := gocv.IMDecode(jpeg, gocv.IMReadColor)
	if err != nil {
		return false
	}
	defer img.Close()

	l.preview.IMShow(img)
	return l.preview.WaitKey(1) == 'q'
}
