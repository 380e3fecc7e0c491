package presenter

import (
	"context"
	"time"
)

// Loop aggregates feature presenters and drives periodic updates.
//
// It calls Tick on the sub-presenters and invokes a scheduler callback so
// the shell can re-arm its timer. The zero value is usable (methods are
// nil-safe).
type Loop struct {
	Visibility *VisibilityWatcher
	Mode       *ModePresenter
	Status     *StatusPresenter
	Session    *SessionPresenter
	Preview    *PreviewPresenter
	Schedule   func()
}

func NewLoop(vis *VisibilityWatcher, mode *ModePresenter, status *StatusPresenter, sess *SessionPresenter, preview *PreviewPresenter, schedule func()) *Loop {
	return &Loop{Visibility: vis, Mode: mode, Status: status, Session: sess, Preview: preview, Schedule: schedule}
}

func (l *Loop) Tick() {
	if l == nil {
		return
	}
	now := time.Now()
	ctx := context.Background()
	if l.Visibility != nil {
		l.Visibility.Tick(ctx, now)
	}
	if l.Mode != nil {
		l.Mode.Tick(now)
	}
	if l.Status != nil {
		l.Status.Tick(now)
	}
	if l.Session != nil {
		l.Session.Tick(now)
	}
	if l.Preview != nil {
		l.Preview.Tick(ctx)
	}
	if l.Schedule != nil {
		l.Schedule()
	}
}
