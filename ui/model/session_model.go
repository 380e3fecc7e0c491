package model

import (
	"time"
)

// SessionModel tracks how long the cameras have been streaming and how many
// photos were taken this session. It is decoupled from the UI; presenters
// should poll Values() and update views. The zero value is ready to use.
type SessionModel struct {
	active        bool
	streamStart   time.Time
	lastStreaming time.Duration
	accumulated   time.Duration
	shots         int
}

// NewSessionModel returns a pointer to a ready-to-use SessionModel.
func NewSessionModel() *SessionModel { return &SessionModel{} }

// OnTick updates the model using the current streaming state and timestamp.
// Call periodically (for example, from a presenter tick).
func (m *SessionModel) OnTick(streaming bool, now time.Time) {
	if m == nil {
		return
	}
	if streaming {
		if !m.active { // transition off -> on
			m.active = true
			m.streamStart = now
			m.lastStreaming = 0
		}
		m.lastStreaming = now.Sub(m.streamStart)
	} else if m.active { // transition on -> off
		m.lastStreaming = now.Sub(m.streamStart)
		m.accumulated += m.lastStreaming
		m.active = false
	}
}

// AddShot records one exported photo.
func (m *SessionModel) AddShot() {
	if m == nil {
		return
	}
	m.shots++
}

// Values returns the current streaming duration, the total accumulated
// streaming time and the shot count. The total includes the ongoing stream
// when active.
func (m *SessionModel) Values() (streaming, total time.Duration, shots int) {
	if m == nil {
		return 0, 0, 0
	}
	streaming = m.lastStreaming
	total = m.accumulated
	if m.active {
		total += streaming
	}
	return streaming, total, m.shots
}
