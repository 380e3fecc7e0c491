package placement

import (
	"fmt"
	"testing"
	"time"

	"github.com/soocke/pip-camera-go/domain/compositor"
)

// recorder captures hook invocations in order so tests can assert on the
// exact side-effect sequence.
type recorder struct {
	calls []string
}

func (r *recorder) hooks() Hooks {
	return Hooks{
		SetFreePosition:   func(x, y float64) { r.calls = append(r.calls, fmt.Sprintf("pos:%.0f,%.0f", x, y)) },
		ClearFreePosition: func() { r.calls = append(r.calls, "clearpos") },
		SetCornerStyle:    func(c compositor.Corner) { r.calls = append(r.calls, "corner:"+c.String()) },
		ClearCornerStyle:  func() { r.calls = append(r.calls, "clearcorner") },
		SetSnapAnimation:  func(on bool) { r.calls = append(r.calls, fmt.Sprintf("anim:%v", on)) },
		Tap:               func() { r.calls = append(r.calls, "tap") },
	}
}

func (r *recorder) assert(t *testing.T, want ...string) {
	t.Helper()
	if len(r.calls) != len(want) {
		t.Fatalf("calls = %v, want %v", r.calls, want)
	}
	for i := range want {
		if r.calls[i] != want[i] {
			t.Fatalf("calls[%d] = %q, want %q (all: %v)", i, r.calls[i], want[i], r.calls)
		}
	}
}

func window390x844() (float64, float64) { return 390, 844 }

// immediate runs scheduled funcs synchronously.
func immediate(_ time.Duration, fn func()) { fn() }

// deferred collects scheduled funcs for manual firing.
type deferred struct {
	pending []func()
	delays  []time.Duration
}

func (d *deferred) schedule(delay time.Duration, fn func()) {
	d.pending = append(d.pending, fn)
	d.delays = append(d.delays, delay)
}

func (d *deferred) fire() {
	for _, fn := range d.pending {
		fn()
	}
	d.pending = nil
}

func TestSubThresholdReleaseIsTap(t *testing.T) {
	rec := &recorder{}
	c := NewController(rec.hooks(), window390x844, immediate, 10, 0, compositor.BottomRight)

	c.PointerDown(100, 100, Rect{X: 300, Y: 700, W: 90, H: 120})
	c.PointerMove(104, 103)
	c.PointerUp(104, 103)

	rec.assert(t, "tap")
	if c.Committed() != compositor.BottomRight {
		t.Fatalf("committed = %v, want BottomRight", c.Committed())
	}
}

func TestExactThresholdDisplacementIsDragNotTap(t *testing.T) {
	rec := &recorder{}
	c := NewController(rec.hooks(), window390x844, immediate, 10, 0, compositor.BottomRight)

	c.PointerDown(100, 100, Rect{X: 280, Y: 704, W: 90, H: 120})
	c.PointerMove(110, 100) // displacement exactly at the threshold
	c.PointerUp(110, 100)

	for _, call := range rec.calls {
		if call == "tap" {
			t.Fatalf("threshold displacement must start a drag, got %v", rec.calls)
		}
	}
	if rec.calls[0] != "clearcorner" {
		t.Fatalf("drag did not start: %v", rec.calls)
	}
}

func TestThresholdCrossingStartsDrag(t *testing.T) {
	rec := &recorder{}
	c := NewController(rec.hooks(), window390x844, immediate, 10, 0, compositor.BottomRight)

	c.PointerDown(100, 100, Rect{X: 280, Y: 704, W: 90, H: 120})
	c.PointerMove(105, 100) // inside threshold, no effect
	c.PointerMove(120, 100) // crosses it

	rec.assert(t, "clearcorner", "anim:false", "pos:300,704")
}

func TestDragTracksPointerFromElementOrigin(t *testing.T) {
	rec := &recorder{}
	c := NewController(rec.hooks(), window390x844, immediate, 10, 0, compositor.BottomRight)

	c.PointerDown(100, 100, Rect{X: 50, Y: 60, W: 90, H: 120})
	c.PointerMove(130, 100)
	rec.calls = nil
	c.PointerMove(140, 95)
	c.PointerMove(60, 180)

	rec.assert(t, "pos:90,55", "pos:10,140")
}

func TestReleaseSnapsToNearestQuadrant(t *testing.T) {
	winW, winH := window390x844()
	elem := Rect{W: 90, H: 120}
	cases := []struct {
		name   string
		upX    float64
		upY    float64
		corner compositor.Corner
	}{
		{"top left", 60, 80, compositor.TopLeft},
		{"top right", 340, 80, compositor.TopRight},
		{"bottom left", 60, 800, compositor.BottomLeft},
		{"bottom right", 340, 800, compositor.BottomRight},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := &recorder{}
			initial := compositor.BottomRight
			if tc.corner == compositor.BottomRight {
				initial = compositor.TopLeft
			}
			c := NewController(rec.hooks(), window390x844, immediate, 10, 0, initial)

			// Element positioned so its center lands at the pointer.
			start := Rect{X: tc.upX - elem.W/2, Y: tc.upY - elem.H/2, W: elem.W, H: elem.H}
			c.PointerDown(tc.upX, tc.upY, start)
			c.PointerMove(tc.upX+20, tc.upY)
			c.PointerMove(tc.upX, tc.upY)
			c.PointerUp(tc.upX, tc.upY)

			if got := c.Committed(); got != tc.corner {
				t.Fatalf("committed = %v, want %v", got, tc.corner)
			}
			wantX, wantY := TargetPosition(tc.corner, elem.W, elem.H, winW, winH)
			want := fmt.Sprintf("pos:%.0f,%.0f", wantX, wantY)
			found := false
			for _, call := range rec.calls {
				if call == want {
					found = true
				}
			}
			if !found {
				t.Fatalf("snap position %s missing from calls %v", want, rec.calls)
			}
		})
	}
}

func TestCornerCommitsOnlyAfterSnapDelay(t *testing.T) {
	rec := &recorder{}
	d := &deferred{}
	c := NewController(rec.hooks(), window390x844, d.schedule, 10, 200*time.Millisecond, compositor.BottomRight)

	c.PointerDown(340, 800, Rect{X: 295, Y: 740, W: 90, H: 120})
	c.PointerMove(100, 200)
	c.PointerUp(80, 100)

	if c.Committed() != compositor.BottomRight {
		t.Fatalf("corner committed before snap delay: %v", c.Committed())
	}
	if len(d.pending) != 1 {
		t.Fatalf("pending commits = %d, want 1", len(d.pending))
	}
	if d.delays[0] != 200*time.Millisecond {
		t.Fatalf("commit delay = %v, want 200ms", d.delays[0])
	}
	d.fire()
	if c.Committed() != compositor.TopLeft {
		t.Fatalf("committed = %v, want TopLeft", c.Committed())
	}
	// Commit removes the free position and restores corner styling.
	last := rec.calls[len(rec.calls)-2:]
	if last[0] != "clearpos" || last[1] != "corner:top-left" {
		t.Fatalf("commit calls = %v, want [clearpos corner:top-left]", last)
	}
}

func TestCancelRevertsInstantly(t *testing.T) {
	rec := &recorder{}
	d := &deferred{}
	c := NewController(rec.hooks(), window390x844, d.schedule, 10, 200*time.Millisecond, compositor.BottomRight)

	c.PointerDown(340, 800, Rect{X: 295, Y: 740, W: 90, H: 120})
	c.PointerMove(100, 200)
	rec.calls = nil
	c.PointerCancel()

	rec.assert(t, "anim:true", "clearpos", "corner:bottom-right")
	if c.Committed() != compositor.BottomRight {
		t.Fatalf("committed = %v, want BottomRight", c.Committed())
	}
	if len(d.pending) != 0 {
		t.Fatalf("cancel scheduled a commit")
	}
}

func TestCancelBeforeDragIsSilent(t *testing.T) {
	rec := &recorder{}
	c := NewController(rec.hooks(), window390x844, immediate, 10, 0, compositor.BottomRight)

	c.PointerDown(100, 100, Rect{X: 280, Y: 704, W: 90, H: 120})
	c.PointerCancel()

	rec.assert(t)
}

func TestMoveWithoutDownIsIgnored(t *testing.T) {
	rec := &recorder{}
	c := NewController(rec.hooks(), window390x844, immediate, 10, 0, compositor.BottomRight)

	c.PointerMove(200, 200)
	c.PointerUp(200, 200)

	rec.assert(t)
}

func TestRestoreAppliesCornerStyling(t *testing.T) {
	rec := &recorder{}
	c := NewController(rec.hooks(), window390x844, immediate, 10, 0, compositor.BottomRight)

	c.Restore(compositor.TopRight)

	rec.assert(t, "corner:top-right")
	if c.Committed() != compositor.TopRight {
		t.Fatalf("committed = %v, want TopRight", c.Committed())
	}
}

func TestTargetPositionMargins(t *testing.T) {
	x, y := TargetPosition(compositor.TopLeft, 90, 120, 390, 844)
	if x != 20 || y != 20 {
		t.Fatalf("top-left = %.0f,%.0f, want 20,20", x, y)
	}
	x, y = TargetPosition(compositor.BottomRight, 90, 120, 390, 844)
	if x != 390-20-90 || y != 844-100-120 {
		t.Fatalf("bottom-right = %.0f,%.0f, want 280,624", x, y)
	}
}
