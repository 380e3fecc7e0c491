package presenter

import (
	"fmt"
	"time"

	"github.com/soocke/pip-camera-go/domain/capturemode"
)

// ModeView sets the capture mode label in the view.
type ModeView interface{ SetModeLabel(string) }

type modeChange struct {
	mode capturemode.Mode
	step int
}

// ModePresenter queues mode/step changes from the capture controller's
// listener and reflects the most recent one on the next tick.
type ModePresenter struct {
	view    ModeView
	latest  string
	pending []modeChange
}

func NewModePresenter(view ModeView) *ModePresenter {
	return &ModePresenter{view: view}
}

// OnChange queues a transition from the capture mode listener.
func (p *ModePresenter) OnChange(mode capturemode.Mode, step int) {
	if p == nil {
		return
	}
	p.pending = append(p.pending, modeChange{mode: mode, step: step})
}

// Tick processes queued changes and updates the view with the most recent one.
func (p *ModePresenter) Tick(now time.Time) {
	if p == nil || p.view == nil {
		return
	}
	if len(p.pending) == 0 {
		return
	}
	last := p.pending[len(p.pending)-1]
	p.pending = p.pending[:0]
	label := modeLabel(last.mode, last.step)
	if label != p.latest {
		p.latest = label
		p.view.SetModeLabel(label)
	}
}

func modeLabel(mode capturemode.Mode, step int) string {
	if mode == capturemode.Live {
		return "Live"
	}
	if step == 0 {
		return "Sequential"
	}
	return fmt.Sprintf("Sequential %d/2", step)
}
