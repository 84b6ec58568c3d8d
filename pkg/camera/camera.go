// Package camera provides frame capture from a video device.
package camera

import (
	"fmt"

	"gocv.io/x/gocv"
)

// Source is the capability needed by the detection loops: grab the
// next frame as JPEG bytes. Implementations own the underlying device
// until Close is called.
type Source interface {
	// CaptureJPEG grabs the next frame and returns it JPEG-encoded.
	CaptureJPEG() ([]byte, error)

	// Close releases the device.
	Close() error
}

// DeviceError reports a camera open or read failure.
type DeviceError struct {
	Device int    // device index
	Op     string // "open" or "read"
	Err    error  // underlying cause, may be nil
}

func (e *DeviceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("camera device %d: %s: %v", e.Device, e.Op, e.Err)
	}
	return fmt.Sprintf("camera device %d: %s failed", e.Device, e.Op)
}

func (e *DeviceError) Unwrap() error {
	return e.Err
}

// Device captures frames from a local video device via OpenCV.
type Device struct {
	id  int
	cap *gocv.VideoCapture
	img gocv.Mat
}

// OpenDevice opens the video device with the given index and requests
// the given capture resolution.
func OpenDevice(id, width, height int) (*Device, error) {
	cap, err := gocv.OpenVideoCapture(id)
	if err != nil {
		return nil, &DeviceError{Device: id, Op: "open", Err: err}
	}

	cap.Set(gocv.VideoCaptureFrameWidth, float64(width))
	cap.Set(gocv.VideoCaptureFrameHeight, float64(height))

	return &Device{
		id:  id,
		cap: cap,
		img: gocv.NewMat(),
	}, nil
}

// CaptureJPEG grabs the next frame from the device.
func (d *Device) CaptureJPEG() ([]byte, error) {
	if ok := d.cap.Read(&d.img); !ok || d.img.Empty() {
		return nil, &DeviceError{Device: d.id, Op: "read"}
	}

	buf, err := gocv.IMEncode(gocv.JPEGFileExt, d.img)
	if err != nil {
		return nil, &DeviceError{Device: d.id, Op: "read", Err: err}
	}
	defer buf.Close()

	// The buffer is invalidated on Close, hand back a copy.
	data := make([]byte, buf.Len())
	copy(data, buf.GetBytes())
	return data, nil
}

// Close releases the device.
func (d *Device) Close() error {
	d.img.Close()
	return d.cap.Close()
}
