package face

import (
	"context"
	"image"
	"image/color"
	"os"
	"testing"
	"time"

	"github.com/AdrienPiette/face-reco/pkg/motion"
)

// TestMotionGatedCapture drives the full pipeline over a canned frame
// sequence: nine still frames, a tenth that differs everywhere, then
// one more frame in which a face is detected at a simulated 09:05:00.
func TestMotionGatedCapture(t *testing.T) {
	black := createSolidJPEG(640, 480, color.RGBA{0, 0, 0, 255})
	white := createSolidJPEG(640, 480, color.RGBA{255, 255, 255, 255})

	frames := make([][]byte, 0, 11)
	for i := 0; i < 9; i++ {
		frames = append(frames, black)
	}
	frames = append(frames, white) // frame 10 triggers the gate
	frames = append(frames, white) // frame 11 carries the face

	src := &fakeSource{frames: frames}

	gate := motion.New(src, motion.DefaultConfig())
	moved, err := gate.Wait(context.Background())
	if err != nil {
		t.Fatalf("Wait failed: %v", err)
	}
	if !moved {
		t.Fatal("Expected the gate to signal on frame 10")
	}
	if src.pos != 10 {
		t.Fatalf("Expected the gate to stop at frame 10, consumed %d", src.pos)
	}

	det := &fakeDetector{results: [][]Detection{{{Box: image.Rect(200, 120, 360, 300)}}}}
	not := &fakeNotifier{}

	clock := &fakeClock{times: []time.Time{
		time.Date(2024, 6, 1, 9, 5, 0, 0, time.UTC),
		time.Date(2024, 6, 1, 9, 20, 0, 0, time.UTC),
	}}

	loop := NewLoop(src, det, not, mustWindow(t))
	loop.OutputDir = t.TempDir()
	loop.Now = clock.now

	if err := loop.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if len(not.paths) != 1 {
		t.Fatalf("Expected exactly one capture event, got %d notifications", len(not.paths))
	}

	info, err := os.Stat(not.paths[0])
	if err != nil {
		t.Fatalf("Notified file missing: %v", err)
	}
	if info.Size() == 0 {
		t.Error("Expected non-empty capture image")
	}
}
