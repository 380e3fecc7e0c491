package device

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
)

// Registry enumerates capture devices and owns their stream handles. When the
// single-stream constraint is active it guarantees hardware is freed before
// the next acquisition anywhere in the discovery sequence.
type Registry struct {
	provider     Provider
	singleStream bool
	logger       *slog.Logger
	devices      []*CaptureDevice
}

// NewRegistry creates a registry on top of the given host provider.
// singleStream reflects the injected platform capability flag.
func NewRegistry(provider Provider, singleStream bool, logger *slog.Logger) *Registry {
	return &Registry{provider: provider, singleStream: singleStream, logger: logger}
}

// SingleStream reports whether the single-active-stream constraint is active.
func (r *Registry) SingleStream() bool { return r.singleStream }

// Devices returns the enumerated devices in acquisition order.
func (r *Registry) Devices() []*CaptureDevice { return r.devices }

// Enumerate discovers up to two capture devices.
//
// Phase 1 tries semantic facing hints (back, then front). Failures are logged
// and skipped, never propagated. Under the single-stream constraint each
// acquired stream is stopped again before the next hint is tried, because
// holding two streams concurrently is invalid on constrained platforms.
//
// Phase 2 runs when fewer than two devices were obtained: it walks all
// physical inputs by raw identity, skipping identities already claimed, and
// keeps acquiring until two devices are held or the list is exhausted.
//
// Zero devices yields ErrNoDevice.
func (r *Registry) Enumerate(ctx context.Context) ([]*CaptureDevice, error) {
	r.devices = nil

	for _, facing := range []Facing{FacingBack, FacingFront} {
		if len(r.devices) >= 2 {
			break
		}
		stream, ident, err := r.provider.AcquireByFacing(ctx, facing)
		if err != nil {
			if r.logger != nil {
				r.logger.Warn("facing hint acquisition failed", "facing", facing.String(), "error", err)
			}
			continue
		}
		if r.claimed(ident.ID) {
			_ = stream.Close()
			continue
		}
		r.adopt(ident, stream)
	}

	if len(r.devices) < 2 {
		if err := r.enumerateByIdentity(ctx); err != nil && r.logger != nil {
			r.logger.Warn("raw identity enumeration failed", "error", err)
		}
	}

	if len(r.devices) == 0 {
		return nil, ErrNoDevice
	}
	return r.devices, nil
}

func (r *Registry) enumerateByIdentity(ctx context.Context) error {
	idents, err := r.provider.ListIDs(ctx)
	if err != nil {
		return err
	}
	for _, ident := range idents {
		if len(r.devices) >= 2 {
			break
		}
		if r.claimed(ident.ID) {
			continue
		}
		stream, got, err := r.provider.AcquireByID(ctx, ident.ID)
		if err != nil {
			if r.logger != nil {
				r.logger.Warn("device acquisition failed", "id", ident.ID, "error", err)
			}
			continue
		}
		r.adopt(got, stream)
	}
	return nil
}

// adopt registers a freshly acquired device. Under the constraint the probe
// stream is released immediately so the hardware is free for the next grab;
// GetStream re-acquires it on first use.
func (r *Registry) adopt(ident Identity, stream Stream) {
	dev := &CaptureDevice{
		ID:           uuid.New().String(),
		HardwareID:   ident.ID,
		Label:        ident.Label,
		Facing:       ident.Facing,
		FlipRequired: ident.Facing == FacingFront,
	}
	if r.singleStream {
		_ = stream.Close()
	} else {
		dev.stream = stream
	}
	r.devices = append(r.devices, dev)
	if r.logger != nil {
		r.logger.Info("capture device registered",
			"id", dev.ID, "hardware", dev.HardwareID, "facing", dev.Facing.String())
	}
}

func (r *Registry) claimed(hardwareID string) bool {
	for _, d := range r.devices {
		if d.HardwareID == hardwareID {
			return true
		}
	}
	return false
}

// GetStream returns the device's stream, acquiring it lazily on first use.
// Calling it again while the stream is live returns the cached handle.
func (r *Registry) GetStream(ctx context.Context, dev *CaptureDevice) (Stream, error) {
	if dev == nil {
		return nil, ErrNoDevice
	}
	if dev.stream != nil && dev.stream.Live() {
		return dev.stream, nil
	}
	stream, _, err := r.provider.AcquireByID(ctx, dev.HardwareID)
	if err != nil {
		return nil, fmt.Errorf("acquire stream for %s: %w", dev.HardwareID, err)
	}
	dev.stream = stream
	return stream, nil
}

// Stop releases the device's hardware tracks and clears the cached handle.
// The device object remains reusable, which is what lets the constraint be
// enforced without losing device metadata. Stop is idempotent.
func (r *Registry) Stop(dev *CaptureDevice) {
	if dev == nil || dev.stream == nil {
		return
	}
	if err := dev.stream.Close(); err != nil && r.logger != nil {
		r.logger.Warn("stream close failed", "id", dev.ID, "error", err)
	}
	dev.stream = nil
}
