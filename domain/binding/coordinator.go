// Package binding owns the main/overlay role assignment for capture devices.
// The slot pair is the only mutable shared resource in the core; every other
// component reads it through per-call snapshots.
package binding

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log/slog"
	"time"

	"github.com/soocke/pip-camera-go/domain/device"
)

// Role identifies a stream slot.
type Role int

const (
	RoleMain Role = iota
	RoleOverlay
)

func (r Role) String() string {
	if r == RoleOverlay {
		return "overlay"
	}
	return "main"
}

// Notifier delivers transient status messages to the shell. A zero duration
// means the shell's default display time.
type Notifier interface {
	Status(msg string, d time.Duration)
}

// SlotView is a read-only snapshot of one slot.
type SlotView struct {
	DeviceID string
	Label    string
	Facing   device.Facing
	Mirror   bool
	Live     bool
}

// Snapshot is a read-only view of both slots at one instant.
type Snapshot struct {
	Main       SlotView
	Overlay    SlotView
	HasMain    bool
	HasOverlay bool
}

// ErrNoSecondDevice is returned by SwapRoles when only one device exists.
var ErrNoSecondDevice = errors.New("binding: no second capture device")

// Coordinator assigns devices to the main and overlay roles, swaps them,
// reconciles mirror orientation and pauses/resumes streams around visibility
// changes. All mutation of the slot pair happens here.
type Coordinator struct {
	registry *device.Registry
	logger   *slog.Logger
	notify   Notifier

	main    *device.CaptureDevice
	overlay *device.CaptureDevice

	mainMirror    bool
	overlayMirror bool
	paused        bool
}

// New creates a coordinator over the registry. notify may be nil.
func New(registry *device.Registry, logger *slog.Logger, notify Notifier) *Coordinator {
	return &Coordinator{registry: registry, logger: logger, notify: notify}
}

// Bind assigns enumerated devices to roles: first device becomes main, the
// second (if any) overlay. Mirror flags are reconciled immediately so the very
// first rendered frame has the right orientation.
func (c *Coordinator) Bind(devs []*device.CaptureDevice) error {
	if len(devs) == 0 {
		return device.ErrNoDevice
	}
	c.main = devs[0]
	if len(devs) > 1 {
		c.overlay = devs[1]
	} else {
		c.overlay = nil
	}
	c.reconcileMirror()
	return nil
}

// SwapRoles exchanges the main and overlay assignment. Device identity is
// never destroyed; only the role mapping changes.
//
// Under the single-stream constraint the stream of the slot that is becoming
// overlay is stopped before the new main stream is acquired. Acquiring first
// can leave the hardware delivering a frozen frame, so the ordering is
// absolute. Without the constraint both streams are simply reused or
// re-acquired with no ordering requirement. While the coordinator is paused
// no hardware is touched; only the role mapping changes.
func (c *Coordinator) SwapRoles(ctx context.Context) error {
	if c.overlay == nil {
		return ErrNoSecondDevice
	}
	if c.paused {
		// Hardware is released while paused. Exchange the assignment only;
		// ResumeAll acquires the stream for the new main later.
		c.main, c.overlay = c.overlay, c.main
		c.reconcileMirror()
		return nil
	}
	if c.registry.SingleStream() {
		// The current main is about to become the overlay: free its hardware
		// first, then bring up the new main.
		c.registry.Stop(c.main)
		c.main, c.overlay = c.overlay, c.main
		if _, err := c.registry.GetStream(ctx, c.main); err != nil {
			c.report("Camera unavailable after swap")
			if c.logger != nil {
				c.logger.Warn("main stream acquisition failed after swap", "error", err)
			}
		}
	} else {
		c.main, c.overlay = c.overlay, c.main
		for _, dev := range []*device.CaptureDevice{c.main, c.overlay} {
			if _, err := c.registry.GetStream(ctx, dev); err != nil {
				c.report("Camera unavailable after swap")
				if c.logger != nil {
					c.logger.Warn("stream acquisition failed after swap", "id", dev.ID, "error", err)
				}
			}
		}
	}
	c.reconcileMirror()
	return nil
}

// PauseAll stops and clears both slots, releasing hardware while the app is
// backgrounded.
func (c *Coordinator) PauseAll() {
	c.registry.Stop(c.main)
	c.registry.Stop(c.overlay)
	c.paused = true
}

// ResumeAll re-acquires streams after foregrounding. Under the single-stream
// constraint only the main slot is brought back; the overlay slot
// intentionally stays empty until the user forces a swap. Failures are
// reported and leave the slot empty rather than propagating.
func (c *Coordinator) ResumeAll(ctx context.Context) {
	c.paused = false
	if c.main != nil {
		if _, err := c.registry.GetStream(ctx, c.main); err != nil {
			c.report("Camera unavailable")
			if c.logger != nil {
				c.logger.Warn("main stream resume failed", "error", err)
			}
		}
	}
	if c.overlay != nil && !c.registry.SingleStream() {
		if _, err := c.registry.GetStream(ctx, c.overlay); err != nil {
			c.report("Second camera unavailable")
			if c.logger != nil {
				c.logger.Warn("overlay stream resume failed", "error", err)
			}
		}
	}
	c.reconcileMirror()
}

// Paused reports whether PauseAll is in effect.
func (c *Coordinator) Paused() bool { return c.paused }

// Frame returns the current frame of the given slot, acquiring the main
// stream lazily if needed. The overlay slot is never lazily acquired: under
// the constraint it must stay dark until an explicit swap.
func (c *Coordinator) Frame(ctx context.Context, role Role) (*image.RGBA, error) {
	dev := c.deviceFor(role)
	if dev == nil {
		return nil, device.ErrNoStream
	}
	if role == RoleOverlay && !dev.StreamLive() && c.registry.SingleStream() {
		return nil, device.ErrNoStream
	}
	stream, err := c.registry.GetStream(ctx, dev)
	if err != nil {
		return nil, fmt.Errorf("binding: %s frame: %w", role, err)
	}
	return stream.Frame(ctx)
}

// Mirror reports the mirror flag for a slot, recomputed on every role change
// strictly from the currently assigned device.
func (c *Coordinator) Mirror(role Role) bool {
	if role == RoleOverlay {
		return c.overlayMirror
	}
	return c.mainMirror
}

// Snapshot returns a read-only view of both slots.
func (c *Coordinator) Snapshot() Snapshot {
	var s Snapshot
	if c.main != nil {
		s.HasMain = true
		s.Main = c.slotView(c.main, c.mainMirror)
	}
	if c.overlay != nil {
		s.HasOverlay = true
		s.Overlay = c.slotView(c.overlay, c.overlayMirror)
	}
	return s
}

func (c *Coordinator) slotView(dev *device.CaptureDevice, mirror bool) SlotView {
	return SlotView{
		DeviceID: dev.ID,
		Label:    dev.Label,
		Facing:   dev.Facing,
		Mirror:   mirror,
		Live:     dev.StreamLive(),
	}
}

func (c *Coordinator) deviceFor(role Role) *device.CaptureDevice {
	if role == RoleOverlay {
		return c.overlay
	}
	return c.main
}

// reconcileMirror recomputes both mirror flags from the devices currently
// assigned, before the next frame is rendered. Deriving the flag from the
// slot's device rather than carrying it across swaps avoids a one-frame
// wrong-orientation flash.
func (c *Coordinator) reconcileMirror() {
	c.mainMirror = c.main != nil && c.main.FlipRequired
	c.overlayMirror = c.overlay != nil && c.overlay.FlipRequired
}

func (c *Coordinator) report(msg string) {
	if c.notify != nil {
		c.notify.Status(msg, 0)
	}
}
