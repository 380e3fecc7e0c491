package presenter

import (
	"time"

	"github.com/soocke/pip-camera-go/ui/model"
)

// StreamingSource reports whether the camera streams are currently paused.
type StreamingSource interface{ Paused() bool }

// SessionView displays formatted streaming durations and the shot count.
type SessionView interface {
	SetSession(streaming, total time.Duration, shots int)
}

// SessionPresenter formats streaming time and shot totals from the model to the view.
type SessionPresenter struct {
	sess   *model.SessionModel
	source StreamingSource
	view   SessionView
}

// NewSessionPresenter returns a new SessionPresenter.
func NewSessionPresenter(sess *model.SessionModel, source StreamingSource, view SessionView) *SessionPresenter {
	return &SessionPresenter{sess: sess, source: source, view: view}
}

// Tick updates the presenter: advance the session model and push values to the view.
func (p *SessionPresenter) Tick(now time.Time) {
	if p == nil || p.sess == nil || p.source == nil || p.view == nil {
		return
	}
	p.sess.OnTick(!p.source.Paused(), now)
	s, t, shots := p.sess.Values()
	p.view.SetSession(s, t, shots)
}
