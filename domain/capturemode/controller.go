// Package capturemode holds the state machine that decides how a capture is
// taken. Two modes exist: Live composes both camera frames in one pass,
// Sequential photographs the overlay first and the main frame second for
// platforms that allow only one live stream at a time.
package capturemode

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"sync"
	"time"

	"github.com/soocke/pip-camera-go/domain/binding"
	"github.com/soocke/pip-camera-go/domain/compositor"
)

// Mode selects the capture strategy.
type Mode int

const (
	Live Mode = iota
	Sequential
)

func (m Mode) String() string {
	switch m {
	case Live:
		return "live"
	case Sequential:
		return "sequential"
	default:
		return "unknown"
	}
}

// Binding narrows the stream binding coordinator to what captures need.
type Binding interface {
	Snapshot() binding.Snapshot
	SwapRoles(ctx context.Context) error
	PauseAll()
	ResumeAll(ctx context.Context)
	Frame(ctx context.Context, role binding.Role) (*image.RGBA, error)
	Mirror(role binding.Role) bool
}

// Player runs the paint-synchronized capture transition.
type Player interface {
	Play(ctx context.Context, src *image.RGBA, tag string, revealDestination func()) error
}

// Review receives the finished composite for on-screen review.
type Review interface {
	Present(img *image.RGBA)
	Saved(path string)
}

// Exporter persists a composite to disk.
type Exporter interface {
	Save(img image.Image) (string, error)
}

// Notifier surfaces transient status text to the user.
type Notifier interface {
	Status(msg string, d time.Duration)
}

// Listener observes mode and step changes.
type Listener func(mode Mode, step int)

const statusDuration = 3 * time.Second

// Controller is the capture-mode state machine. Mode and step are mutated
// only here; everything else observes them through listeners or getters.
type Controller struct {
	mu         sync.Mutex
	binding    Binding
	player     Player
	review     Review
	exporter   Exporter
	notify     Notifier
	logger     *slog.Logger
	deferTask  func(func())
	corner     func() compositor.Corner
	constraint bool
	viewportW  int
	viewportH  int

	mode        Mode
	step        int
	overlayShot *image.RGBA
	busy        bool
	listeners   []Listener
}

// Options collects the controller's collaborators. deferTask moves work off
// the capture path onto a later event loop tick; nil runs it inline. corner
// reports the committed overlay corner at capture time.
type Options struct {
	Binding    Binding
	Player     Player
	Review     Review
	Exporter   Exporter
	Notifier   Notifier
	Logger     *slog.Logger
	DeferTask  func(func())
	Corner     func() compositor.Corner
	Constraint bool
	ViewportW  int
	ViewportH  int
}

func NewController(opts Options) *Controller {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.DeferTask == nil {
		opts.DeferTask = func(fn func()) { fn() }
	}
	if opts.Corner == nil {
		opts.Corner = func() compositor.Corner { return compositor.BottomRight }
	}
	return &Controller{
		binding:    opts.Binding,
		player:     opts.Player,
		review:     opts.Review,
		exporter:   opts.Exporter,
		notify:     opts.Notifier,
		logger:     opts.Logger,
		deferTask:  opts.DeferTask,
		corner:     opts.Corner,
		constraint: opts.Constraint,
		viewportW:  opts.ViewportW,
		viewportH:  opts.ViewportH,
	}
}

// AddListener registers fn for mode/step changes. Listeners run on the
// mutating goroutine and must not call back into the controller.
func (c *Controller) AddListener(fn Listener) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.listeners = append(c.listeners, fn)
}

// Mode returns the active capture mode.
func (c *Controller) Mode() Mode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mode
}

// Step returns the Sequential step. 0 means no dual sequence is possible.
func (c *Controller) Step() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.step
}

// Init picks the starting mode. Sequential is forced when the single-stream
// constraint is active and a second device exists; otherwise Live.
func (c *Controller) Init() {
	c.mu.Lock()
	defer c.mu.Unlock()
	snap := c.binding.Snapshot()
	if c.constraint && snap.HasOverlay {
		c.mode = Sequential
		c.step = 1
	} else {
		c.mode = Live
		c.step = 0
	}
	c.overlayShot = nil
	c.logger.Info("Capture mode initialized", slog.String("mode", c.mode.String()), slog.Int("step", c.step))
	c.notifyLocked()
}

// ErrModeLocked is returned by ToggleMode while the single-stream constraint
// forces Sequential.
var ErrModeLocked = fmt.Errorf("capturemode: mode locked by single-stream constraint")

// ToggleMode switches between Live and Sequential, clearing any half-done
// Sequential state.
func (c *Controller) ToggleMode() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.constraint {
		c.report("Sequential mode is required on this device")
		return ErrModeLocked
	}
	c.overlayShot = nil
	if c.mode == Live {
		c.mode = Sequential
		if c.binding.Snapshot().HasOverlay {
			c.step = 1
		} else {
			c.step = 0
		}
	} else {
		c.mode = Live
		c.step = 0
	}
	c.logger.Info("Capture mode toggled", slog.String("mode", c.mode.String()), slog.Int("step", c.step))
	c.notifyLocked()
	return nil
}

// Capture takes a photo according to the current mode and step. Failures
// abort the attempt, surface a status message and leave the step unchanged.
func (c *Controller) Capture(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.busy {
		return nil
	}
	c.busy = true
	defer func() { c.busy = false }()

	var err error
	switch {
	case c.mode == Sequential && c.step == 1:
		err = c.sequentialFirst(ctx)
	case c.mode == Sequential && c.step == 2:
		err = c.sequentialSecond(ctx)
	default:
		// Live, and Sequential with a single device (step 0), both take a
		// one-pass photo of whatever is live right now.
		err = c.livePass(ctx)
	}
	if err != nil {
		c.logger.Error("Capture failed", slog.Any("error", err))
		c.report("Capture failed")
	}
	return err
}

// livePass freezes the main frame, adds the overlay frame when one is live
// and finishes the photo. A missing or failing overlay degrades to a
// main-only photo; placeholder graphics never reach the export.
func (c *Controller) livePass(ctx context.Context) error {
	base, err := c.freeze(ctx, binding.RoleMain)
	if err != nil {
		return err
	}
	result := base
	snap := c.binding.Snapshot()
	if snap.HasOverlay && snap.Overlay.Live {
		overlay, err := c.freeze(ctx, binding.RoleOverlay)
		if err != nil {
			c.logger.Warn("Overlay frame unavailable, exporting main only", slog.Any("error", err))
		} else {
			result, err = compositor.CompositeOverlay(base, overlay, c.viewportW, c.corner())
			if err != nil {
				return fmt.Errorf("composite: %w", err)
			}
		}
	}
	c.binding.PauseAll()
	return c.finish(ctx, result)
}

// sequentialFirst buffers the overlay shot and swaps camera roles inside the
// transition flip so the post-flip preview already shows the other camera.
func (c *Controller) sequentialFirst(ctx context.Context) error {
	shot, err := c.freeze(ctx, binding.RoleMain)
	if err != nil {
		return err
	}
	c.overlayShot = shot
	swapErr := c.player.Play(ctx, shot, "sequential-step", func() {
		if err := c.binding.SwapRoles(ctx); err != nil {
			c.logger.Error("Role swap after first shot failed", slog.Any("error", err))
			c.overlayShot = nil
			c.report("Could not switch camera")
			return
		}
		c.step = 2
		c.notifyLocked()
	})
	if swapErr != nil {
		return fmt.Errorf("transition: %w", swapErr)
	}
	// Streaming continues so the user can line up the second shot.
	return nil
}

// sequentialSecond composites the live frame with the buffered overlay shot,
// then restores the pre-sequence camera arrangement for the next cycle.
func (c *Controller) sequentialSecond(ctx context.Context) error {
	base, err := c.freeze(ctx, binding.RoleMain)
	if err != nil {
		return err
	}
	result, err := compositor.CompositeOverlay(base, c.overlayShot, c.viewportW, c.corner())
	if err != nil {
		return fmt.Errorf("composite: %w", err)
	}
	c.binding.PauseAll()
	if err := c.finish(ctx, result); err != nil {
		return err
	}
	if c.binding.Snapshot().HasOverlay {
		c.overlayShot = nil
		c.step = 1
		if err := c.binding.SwapRoles(ctx); err != nil {
			c.logger.Warn("Could not restore camera roles", slog.Any("error", err))
		}
		c.notifyLocked()
	}
	return nil
}

// finish plays the capture transition, hands the photo to review and defers
// the disk write to a later tick.
func (c *Controller) finish(ctx context.Context, result *image.RGBA) error {
	err := c.player.Play(ctx, result, "capture", func() {
		c.review.Present(result)
	})
	if err != nil {
		return fmt.Errorf("transition: %w", err)
	}
	c.deferTask(func() {
		path, err := c.exporter.Save(result)
		if err != nil {
			c.logger.Error("Photo export failed", slog.Any("error", err))
			c.report("Could not save photo")
			return
		}
		c.review.Saved(path)
	})
	return nil
}

// freeze grabs one frame from a role and normalizes it to the viewport.
func (c *Controller) freeze(ctx context.Context, role binding.Role) (*image.RGBA, error) {
	raw, err := c.binding.Frame(ctx, role)
	if err != nil {
		return nil, fmt.Errorf("frame %s: %w", role, err)
	}
	out, err := compositor.CaptureFrame(raw, c.viewportW, c.viewportH, c.binding.Mirror(role))
	if err != nil {
		return nil, fmt.Errorf("normalize %s: %w", role, err)
	}
	return out, nil
}

// ResumeFromReview restarts streaming after the review surface closes.
func (c *Controller) ResumeFromReview(ctx context.Context) {
	c.binding.ResumeAll(ctx)
}

func (c *Controller) notifyLocked() {
	for _, fn := range c.listeners {
		fn(c.mode, c.step)
	}
}

func (c *Controller) report(msg string) {
	if c.notify != nil {
		c.notify.Status(msg, statusDuration)
	}
}
