// Package face implements face detection and the time-windowed
// capture loop.
package face

import (
	"fmt"
	"image"
	"os"
	"sync"

	"gocv.io/x/gocv"
)

// Detection represents a detected face as a pixel bounding box.
type Detection struct {
	Box image.Rectangle
}

// Detector is the interface for face detection backends.
type Detector interface {
	// Detect finds faces in the JPEG image and returns their bounding boxes.
	Detect(jpeg []byte) ([]Detection, error)

	// Close releases resources.
	Close() error
}

// DetectorConfig holds cascade detector parameters.
type DetectorConfig struct {
	ModelPath    string  // Path to the Haar cascade XML
	ScaleFactor  float64 // Image pyramid scale step
	MinNeighbors int     // Neighbor rectangles required to keep a hit
	MinSize      int     // Minimum face size in pixels (square)
}

// DefaultDetectorConfig returns production defaults for the frontal
// face cascade.
func DefaultDetectorConfig() DetectorConfig {
	return DetectorConfig{
		ModelPath:    "models/haarcascade_frontalface_default.xml",
		ScaleFactor:  1.1,
		MinNeighbors: 5,
		MinSize:      30,
	}
}

// CascadeDetector detects faces with OpenCV's Haar cascade classifier.
type CascadeDetector struct {
	classifier gocv.CascadeClassifier
	config     DetectorConfig
	mu         sync.Mutex // protects inference
}

// NewCascade loads the Haar cascade model from cfg.ModelPath.
func NewCascade(cfg DetectorConfig) (*CascadeDetector, error) {
	if _, err := os.Stat(cfg.ModelPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("model file not found: %s", cfg.ModelPath)
	}

	classifier := gocv.NewCascadeClassifier()
	if !classifier.Load(cfg.ModelPath) {
		classifier.Close()
		return nil, fmt.Errorf("load cascade model: %s", cfg.ModelPath)
	}

	return &CascadeDetector{
		classifier: classifier,
		config:     cfg,
	}, nil
}

// Detect finds faces in the JPEG image.
func (d *CascadeDetector) Detect(jpeg []byte) ([]Detection, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	img, err := gocv.IMDecode(jpeg, gocv.IMReadColor)
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	defer img.Close()

	if img.Empty() {
		return nil, fmt.Errorf("empty image")
	}

	gray := gocv.NewMat()
	defer gray.Close()
	gocv.CvtColor(img, &gray, gocv.ColorBGRToGray)

	rects := d.classifier.DetectMultiScaleWithParams(
		gray,
		d.config.ScaleFactor,
		d.config.MinNeighbors,
		0, // flags, unused by the modern cascade API
		image.Pt(d.config.MinSize, d.config.MinSize),
		image.Pt(0, 0), // no maximum size
	)

	detections := make([]Detection, 0, len(rects))
	for _, r := range rects {
		detections = append(detections, Detection{Box: r})
	}
	return detections, nil
}

// Close releases the classifier resources.
func (d *CascadeDetector) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.classifier.Close()
}
