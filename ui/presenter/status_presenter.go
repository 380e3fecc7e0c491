package presenter

import (
	"time"

	"github.com/soocke/pip-camera-go/ui/model"
)

// StatusView sets the transient status line in the view.
type StatusView interface{ SetStatusLabel(string) }

// defaultStatusDuration is used when a caller passes a non-positive display
// time, the convention for "shell decides".
const defaultStatusDuration = 3 * time.Second

// StatusPresenter routes status messages from the domain layer into the
// status model and flushes the current text to the view each tick. It
// satisfies the Notifier contracts of the binding and capture packages.
type StatusPresenter struct {
	model *model.StatusModel
	view  StatusView
	last  string
	now   func() time.Time
}

func NewStatusPresenter(m *model.StatusModel, view StatusView) *StatusPresenter {
	return &StatusPresenter{model: m, view: view, now: time.Now}
}

// Status records a message that stays visible for d. A non-positive d falls
// back to the default display time.
func (p *StatusPresenter) Status(msg string, d time.Duration) {
	if p == nil || p.model == nil {
		return
	}
	if d <= 0 {
		d = defaultStatusDuration
	}
	p.model.Set(msg, d, p.now())
}

// Tick pushes the current (possibly expired) text to the view on change.
func (p *StatusPresenter) Tick(now time.Time) {
	if p == nil || p.model == nil || p.view == nil {
		return
	}
	text := p.model.Text(now)
	if text != p.last {
		p.last = text
		p.view.SetStatusLabel(text)
	}
}
