// Package device enumerates and acquires capture devices, and enforces the
// single-active-stream constraint some platforms impose during discovery.
// Hardware access goes through the Provider contract so the core stays
// testable without real cameras.
package device

import (
	"context"
	"errors"
	"image"
)

// Facing describes the direction a capture device points.
type Facing int

const (
	FacingUnknown Facing = iota
	FacingFront
	FacingBack
)

func (f Facing) String() string {
	switch f {
	case FacingFront:
		return "front"
	case FacingBack:
		return "back"
	default:
		return "unknown"
	}
}

// Stream is a live, revocable handle on a device's frame feed.
type Stream interface {
	// Frame blocks until the next frame is available.
	Frame(ctx context.Context) (*image.RGBA, error)
	// Live reports whether the handle still delivers frames.
	Live() bool
	// Close releases the underlying hardware tracks. Closing twice is a no-op.
	Close() error
}

// Identity describes a physical video input as reported by the host.
type Identity struct {
	ID     string
	Label  string
	Facing Facing
}

// Provider is the host contract for device discovery and stream acquisition.
// Acquisition may block indefinitely on permission prompts, so every call
// takes a context. Implementations must return ErrStreamBusy when the host
// refuses a second simultaneous stream.
type Provider interface {
	// AcquireByFacing opens a stream on any device matching the facing hint.
	AcquireByFacing(ctx context.Context, f Facing) (Stream, Identity, error)
	// AcquireByID opens a stream on a specific physical input.
	AcquireByID(ctx context.Context, id string) (Stream, Identity, error)
	// ListIDs enumerates all physical video inputs by raw identity.
	ListIDs(ctx context.Context) ([]Identity, error)
}

var (
	// ErrNoDevice signals that enumeration found no usable capture device.
	ErrNoDevice = errors.New("device: no capture device available")
	// ErrStreamBusy signals the host refused a stream because another is live.
	ErrStreamBusy = errors.New("device: stream busy")
	// ErrNoStream signals a frame was requested from a slot without a live stream.
	ErrNoStream = errors.New("device: no live stream")
)

// CaptureDevice is a camera the registry holds for the lifetime of the app.
// The stream handle is acquired lazily and may be stopped and re-acquired many
// times; the device object itself keeps its identity throughout.
type CaptureDevice struct {
	ID         string // registry-minted, stable for the app lifetime
	HardwareID string
	Label      string
	Facing     Facing
	// FlipRequired marks devices whose preview must be mirrored (front-facing).
	FlipRequired bool

	stream Stream
}

// StreamLive reports whether the device currently holds a live stream handle.
func (d *CaptureDevice) StreamLive() bool {
	return d != nil && d.stream != nil && d.stream.Live()
}
