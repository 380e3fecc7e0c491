// Package placement implements the pointer-driven drag/tap disambiguation and
// corner-snap logic for the picture-in-picture overlay. The controller is an
// explicit state machine (Idle → PotentialDrag → Dragging) rather than a nest
// of callbacks, so each transition can be exercised independently.
package placement

import (
	"math"
	"time"

	"github.com/soocke/pip-camera-go/domain/compositor"
)

type phase int

const (
	phaseIdle phase = iota
	phasePotentialDrag
	phaseDragging
)

// Rect is the overlay element's rectangle in window coordinates.
type Rect struct {
	X, Y, W, H float64
}

// Hooks externalize the view side effects of dragging: the state machine owns
// decisions, the view owns pixels. All funcs are optional.
//
// The view hosting the draggable element must disable native touch-gesture
// handling on it (the touch-action equivalent of its toolkit); otherwise the
// platform's pan/scroll recognizer silently intercepts the pointer sequence
// and Move events stop arriving.
type Hooks struct {
	// SetFreePosition anchors the element at an absolute left/top position,
	// detaching it from its corner styling.
	SetFreePosition func(x, y float64)
	// ClearFreePosition removes the absolute position again.
	ClearFreePosition func()
	// SetCornerStyle applies the snapped-corner styling for c.
	SetCornerStyle func(c compositor.Corner)
	// ClearCornerStyle removes corner styling when a drag starts.
	ClearCornerStyle func()
	// SetSnapAnimation enables or disables the positional transition
	// animation. It is disabled during a drag for zero-lag tracking.
	SetSnapAnimation func(on bool)
	// Tap fires on a sub-threshold press/release (drives the camera-role swap).
	Tap func()
}

// Controller tracks one pointer interaction at a time.
type Controller struct {
	hooks      Hooks
	windowSize func() (w, h float64)
	schedule   func(d time.Duration, fn func())
	threshold  float64
	snapDelay  time.Duration

	committed compositor.Corner
	phase     phase
	startX    float64
	startY    float64
	startRect Rect
}

// NewController builds a placement controller.
//
// windowSize returns the current window extents for quadrant snapping.
// schedule defers the corner commit until the snap animation has played;
// passing a func that invokes fn immediately makes the controller fully
// synchronous for tests. threshold is the drag threshold in device pixels
// and snapDelay must match the view's animation duration.
func NewController(hooks Hooks, windowSize func() (float64, float64), schedule func(time.Duration, func()), threshold float64, snapDelay time.Duration, initial compositor.Corner) *Controller {
	if threshold <= 0 {
		threshold = 10
	}
	if schedule == nil {
		schedule = func(_ time.Duration, fn func()) { fn() }
	}
	return &Controller{
		hooks:      hooks,
		windowSize: windowSize,
		schedule:   schedule,
		threshold:  threshold,
		snapDelay:  snapDelay,
		committed:  initial,
	}
}

// Committed returns the currently committed corner. It changes only when a
// drag-release snap completes, never mid-drag.
func (c *Controller) Committed() compositor.Corner { return c.committed }

// Restore sets the committed corner directly, bypassing the pointer state
// machine. Used once at startup to restore the corner persisted in config.
func (c *Controller) Restore(corner compositor.Corner) {
	c.committed = corner
	c.call(c.hooks.SetCornerStyle, corner)
}

// PointerDown records the press position and the element's current rectangle.
func (c *Controller) PointerDown(x, y float64, elem Rect) {
	c.phase = phasePotentialDrag
	c.startX, c.startY = x, y
	c.startRect = elem
}

// PointerMove tracks the pointer. The first move whose cumulative displacement
// reaches the threshold flips the interaction into a drag: corner styling is
// removed and the positional animation disabled so the element tracks the
// finger without lag.
func (c *Controller) PointerMove(x, y float64) {
	if c.phase == phaseIdle {
		return
	}
	dx, dy := x-c.startX, y-c.startY
	if c.phase == phasePotentialDrag {
		if math.Hypot(dx, dy) < c.threshold {
			return
		}
		c.phase = phaseDragging
		if c.hooks.ClearCornerStyle != nil {
			c.hooks.ClearCornerStyle()
		}
		if c.hooks.SetSnapAnimation != nil {
			c.hooks.SetSnapAnimation(false)
		}
	}
	if c.hooks.SetFreePosition != nil {
		c.hooks.SetFreePosition(c.startRect.X+dx, c.startRect.Y+dy)
	}
}

// PointerUp finishes the interaction. A sub-threshold release is a tap: the
// tap hook fires and the committed corner is untouched. A drag release snaps
// to the nearest corner; the corner is committed only after the snap
// animation delay so the element is visually settled first.
func (c *Controller) PointerUp(x, y float64) {
	switch c.phase {
	case phasePotentialDrag:
		c.phase = phaseIdle
		if c.hooks.Tap != nil {
			c.hooks.Tap()
		}
	case phaseDragging:
		c.phase = phaseIdle
		corner := c.nearestCorner(x, y)
		tx, ty := TargetPosition(corner, c.startRect.W, c.startRect.H, c.winW(), c.winH())
		if c.hooks.SetSnapAnimation != nil {
			c.hooks.SetSnapAnimation(true)
		}
		if c.hooks.SetFreePosition != nil {
			c.hooks.SetFreePosition(tx, ty)
		}
		c.schedule(c.snapDelay, func() {
			if c.hooks.ClearFreePosition != nil {
				c.hooks.ClearFreePosition()
			}
			c.call(c.hooks.SetCornerStyle, corner)
			c.committed = corner
		})
	default:
	}
}

// PointerCancel reverts immediately to the last committed corner with no
// animation wait.
func (c *Controller) PointerCancel() {
	if c.phase == phaseIdle {
		return
	}
	dragging := c.phase == phaseDragging
	c.phase = phaseIdle
	if !dragging {
		return
	}
	if c.hooks.SetSnapAnimation != nil {
		c.hooks.SetSnapAnimation(true)
	}
	if c.hooks.ClearFreePosition != nil {
		c.hooks.ClearFreePosition()
	}
	c.call(c.hooks.SetCornerStyle, c.committed)
}

// nearestCorner picks the corner by quadrant test of the element's center
// against the window half-extents.
func (c *Controller) nearestCorner(x, y float64) compositor.Corner {
	cx := c.startRect.X + (x - c.startX) + c.startRect.W/2
	cy := c.startRect.Y + (y - c.startY) + c.startRect.H/2
	w, h := c.winW(), c.winH()
	left := cx < w/2
	top := cy < h/2
	switch {
	case left && top:
		return compositor.TopLeft
	case !left && top:
		return compositor.TopRight
	case left:
		return compositor.BottomLeft
	default:
		return compositor.BottomRight
	}
}

func (c *Controller) winW() float64 {
	if c.windowSize == nil {
		return 0
	}
	w, _ := c.windowSize()
	return w
}

func (c *Controller) winH() float64 {
	if c.windowSize == nil {
		return 0
	}
	_, h := c.windowSize()
	return h
}

func (c *Controller) call(fn func(compositor.Corner), corner compositor.Corner) {
	if fn != nil {
		fn(corner)
	}
}

// TargetPosition returns the element's snapped left/top position for a corner
// in window coordinates, using the same layout margins the compositor scales
// into exported pixels.
func TargetPosition(corner compositor.Corner, elemW, elemH, winW, winH float64) (x, y float64) {
	switch corner {
	case compositor.TopLeft:
		return compositor.OverlayMarginPx, compositor.OverlayMarginPx
	case compositor.TopRight:
		return winW - compositor.OverlayMarginPx - elemW, compositor.OverlayMarginPx
	case compositor.BottomLeft:
		return compositor.OverlayMarginPx, winH - compositor.OverlayBottomMarginPx - elemH
	default:
		return winW - compositor.OverlayMarginPx - elemW, winH - compositor.OverlayBottomMarginPx - elemH
	}
}
