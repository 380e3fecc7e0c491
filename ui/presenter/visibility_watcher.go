package presenter

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/soocke/pip-camera-go/domain/host"
)

// Lifecycle narrows the stream binding coordinator to pause/resume.
type Lifecycle interface {
	PauseAll()
	ResumeAll(ctx context.Context)
}

// VisibilityWatcher releases the camera streams while the app window is in
// the background and re-acquires them when it returns to the foreground.
// It is tick-driven from the update loop so all coordinator calls stay on
// the UI goroutine.
type VisibilityWatcher struct {
	Lifecycle   Lifecycle
	Logger      *slog.Logger
	Foreground  func() (string, error)
	WindowTitle func() string
	// Suspended reports that something else owns the pause, for example an
	// open review surface. The watcher then neither pauses nor resumes.
	Suspended func() bool

	interval time.Duration
	lastPoll time.Time
	hidden   bool
	disabled bool
}

// NewVisibilityWatcher constructs a watcher polling at 250ms.
func NewVisibilityWatcher(lc Lifecycle, logger *slog.Logger, fg func() (string, error), title func() string, suspended func() bool) *VisibilityWatcher {
	if fg == nil {
		fg = host.ForegroundWindowTitle
	}
	if title == nil {
		title = func() string { return "" }
	}
	if suspended == nil {
		suspended = func() bool { return false }
	}
	return &VisibilityWatcher{
		Lifecycle:   lc,
		Logger:      logger,
		Foreground:  fg,
		WindowTitle: title,
		Suspended:   suspended,
		interval:    250 * time.Millisecond,
	}
}

// Tick polls the foreground window at the watcher's interval and pauses or
// resumes the streams on visibility changes.
func (w *VisibilityWatcher) Tick(ctx context.Context, now time.Time) {
	if w == nil || w.Lifecycle == nil || w.disabled {
		return
	}
	if now.Sub(w.lastPoll) < w.interval {
		return
	}
	w.lastPoll = now
	if w.Suspended() {
		return
	}

	fgTitle, err := w.Foreground()
	if err != nil {
		if errors.Is(err, host.ErrUnsupported) {
			// No visibility signal on this platform; streams stay on.
			w.disabled = true
			return
		}
		if w.Logger != nil {
			w.Logger.Debug("Foreground query failed", slog.Any("error", err))
		}
		return
	}
	own := strings.TrimSpace(w.WindowTitle())
	if own == "" {
		return
	}
	visible := strings.EqualFold(strings.TrimSpace(fgTitle), own)
	switch {
	case !visible && !w.hidden:
		w.hidden = true
		if w.Logger != nil {
			w.Logger.Info("Window hidden, releasing cameras")
		}
		w.Lifecycle.PauseAll()
	case visible && w.hidden:
		w.hidden = false
		if w.Logger != nil {
			w.Logger.Info("Window visible, reacquiring cameras")
		}
		w.Lifecycle.ResumeAll(ctx)
	}
}
