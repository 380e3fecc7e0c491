package model

import (
	"time"
)

// StatusModel holds the current transient status line and its expiry.
// Zero value means no status and is usable. No synchronization needed:
// updates occur on the UI thread tick.
type StatusModel struct {
	text    string
	expires time.Time
}

func NewStatusModel() *StatusModel { return &StatusModel{} }

// Set replaces the status text, clearing it again d after now.
func (m *StatusModel) Set(text string, d time.Duration, now time.Time) {
	if m == nil {
		return
	}
	m.text = text
	m.expires = now.Add(d)
}

// Text returns the status line, or "" once it has expired.
func (m *StatusModel) Text(now time.Time) string {
	if m == nil || m.text == "" {
		return ""
	}
	if now.After(m.expires) {
		m.text = ""
		return ""
	}
	return m.text
}
