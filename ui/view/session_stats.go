package view

import (
	"fmt"
	"time"

	//lint:ignore ST1001 Dot import for concise Tk widget DSL.
	. "modernc.org/tk9.0"
)

// SessionStats updates streaming durations and the shot counter.
type SessionStats interface {
	SetSession(streaming, total time.Duration, shots int)
}

type sessionStats struct {
	streamingLbl *LabelWidget
	totalLbl     *LabelWidget
	shotsLbl     *LabelWidget
}

// NewSessionStats creates the three stat labels at (row, startCol..startCol+2).
func NewSessionStats(row, startCol int) SessionStats {
	s := &sessionStats{
		streamingLbl: Label(Width(14)),
		totalLbl:     Label(Width(14)),
		shotsLbl:     Label(Width(10)),
	}
	Grid(s.streamingLbl, Row(row), Column(startCol), Sticky("w"), Padx("0.2m"))
	Grid(s.totalLbl, Row(row), Column(startCol+1), Sticky("w"), Padx("0.2m"))
	Grid(s.shotsLbl, Row(row), Column(startCol+2), Sticky("w"), Padx("0.2m"))
	s.streamingLbl.Configure(Txt("Live: 00:00"))
	s.totalLbl.Configure(Txt("Total: 00:00"))
	s.shotsLbl.Configure(Txt("Shots: 0"))
	return s
}

func (s *sessionStats) SetSession(streaming, total time.Duration, shots int) {
	if s == nil {
		return
	}
	if s.streamingLbl != nil {
		s.streamingLbl.Configure(Txt("Live: " + clock(streaming)))
	}
	if s.totalLbl != nil {
		s.totalLbl.Configure(Txt("Total: " + clock(total)))
	}
	if s.shotsLbl != nil {
		s.shotsLbl.Configure(Txt(fmt.Sprintf("Shots: %d", shots)))
	}
}

func clock(d time.Duration) string {
	seconds := int(d.Seconds())
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
