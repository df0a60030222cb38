package capture

import (
	"errors"
	"fmt"
	"image"

	"github.com/vova616/screenshot"
)

// Taxonomy for capture failures.
var (
	// ErrDeviceUnavailable is returned when the requested capture device
	// cannot be opened (no such index, or already held elsewhere).
	ErrDeviceUnavailable = errors.New("capture: device unavailable")
	// ErrCapture is returned when an open device fails to deliver a frame.
	ErrCapture = errors.New("capture: frame grab failed")
)

// Device is an exclusive OS capture resource. Grab pulls the latest frame;
// Close releases the device and must be idempotent.
type Device interface {
	Grab() (*image.RGBA, error)
	Close() error
}

// Opener opens the capture device selected by index.
type Opener func(index int) (Device, error)

// screenDevice captures frames from a display using the screenshot library.
// Index 0 is the primary display; other indexes are rejected because the
// backend only exposes the active screen.
type screenDevice struct {
	closed bool
}

// OpenScreen probes the display and returns a ready device. It satisfies
// Opener.
func OpenScreen(index int) (Device, error) {
	if index != 0 {
		return nil, fmt.Errorf("%w: no capture source at index %d", ErrDeviceUnavailable, index)
	}
	if _, err := screenshot.ScreenRect(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDeviceUnavailable, err)
	}
	return &screenDevice{}, nil
}

func (d *screenDevice) Grab() (*image.RGBA, error) {
	if d.closed {
		return nil, fmt.Errorf("%w: device closed", ErrCapture)
	}
	img, err := screenshot.CaptureScreen()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCapture, err)
	}
	return img, nil
}

func (d *screenDevice) Close() error {
	d.closed = true
	return nil
}
