// Package motion implements frame-differencing motion detection.
package motion

import (
	"context"
	"fmt"
	"image"

	"gocv.io/x/gocv"

	"github.com/AdrienPiette/face-reco/internal/log"
	"github.com/AdrienPiette/face-reco/pkg/camera"
)

// Config holds the differencing parameters.
type Config struct {
	BlurKernel     int     // Gaussian blur kernel size (odd)
	DiffThreshold  float32 // Per-pixel intensity threshold for the binary mask
	PixelThreshold int     // Changed-pixel count that counts as motion
}

// DefaultConfig returns the tuned production parameters.
func DefaultConfig() Config {
	return Config{
		BlurKernel:     21,
		DiffThreshold:  25,
		PixelThreshold: 5000,
	}
}

// Gate polls a frame source until enough pixels change between
// consecutive frames. Each frame is compared against the immediately
// preceding one, not a fixed baseline, so gradual lighting changes do
// not trigger it.
type Gate struct {
	source  camera.Source
	cfg     Config
	preview *gocv.Window // optional, nil when headless
}

// New creates a motion gate over the given frame source.
func New(source camera.Source, cfg Config) *Gate {
	return &Gate{source: source, cfg: cfg}
}

// SetPreview attaches a preview window. Pressing 'q' in the window
// cancels the wait.
func (g *Gate) SetPreview(w *gocv.Window) {
	g.preview = w
}

// Wait blocks until motion is detected, the context is cancelled, or
// the source fails. Returns true only when motion was detected;
// cancellation returns (false, nil).
func (g *Gate) Wait(ctx context.Context) (bool, error) {
	prev := gocv.NewMat()
	defer prev.Close()

	cur := gocv.NewMat()
	defer cur.Close()

	diff := gocv.NewMat()
	defer diff.Close()

	thresh := gocv.NewMat()
	defer thresh.Close()

	if err := ctx.Err(); err != nil {
		return false, nil
	}

	// Initial frame becomes the first reference.
	frame, err := g.source.CaptureJPEG()
	if err != nil {
		return false, err
	}
	if err := g.prepFrame(frame, &prev); err != nil {
		return false, err
	}

	for {
		select {
		case <-ctx.Done():
			return false, nil
		default:
		}

		frame, err := g.source.CaptureJPEG()
		if err != nil {
			return false, err
		}
		if err := g.prepFrame(frame, &cur); err != nil {
			return false, err
		}

		gocv.AbsDiff(prev, cur, &diff)
		gocv.Threshold(diff, &thresh, g.cfg.DiffThreshold, 255, gocv.ThresholdBinary)

		if changed := gocv.CountNonZero(thresh); changed > g.cfg.PixelThreshold {
			log.Info("motion detected", "changed_pixels", changed)
			return true, nil
		}

		// Roll the reference forward to the current frame.
		cur.CopyTo(&prev)

		if g.preview != nil && g.showFrame(frame) {
			return false, nil
		}
	}
}

// prepFrame decodes a JPEG frame and writes the blurred grayscale
// version into dst.
func (g *Gate) prepFrame(jpeg []byte, dst *gocv.Mat) error {
	img, err := gocv.IMDecode(jpeg, gocv.IMReadColor)
	if err != nil {
		return fmt.Errorf("decode frame: %w", err)
	}
	defer img.Close()

	if img.Empty() {
		return fmt.Errorf("decode frame: empty image")
	}

	gray := gocv.NewMat()
	defer gray.Close()

	gocv.CvtColor(img, &gray, gocv.ColorBGRToGray)
	k := image.Pt(g.cfg.BlurKernel, g.cfg.BlurKernel)
	gocv.GaussianBlur(gray, dst, k, 0, 0, gocv.BorderDefault)
	return nil
}

// showFrame displays the frame in the preview window. Returns true
// when the operator pressed 'q'.
func (g *Gate) showFrame(jpeg []byte) bool {
	img, err := gocv.IMDecode(jpeg, gocv.IMReadColor)
	if err != nil {
		return false
	}
	defer img.Close()

	g.preview.IMShow(img)
	return g.preview.WaitKey(1) == 'q'
}
