package model

import (
	"testing"
	"time"
)

func TestSessionAccumulatesAcrossPauses(t *testing.T) {
	m := NewSessionModel()
	t0 := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	m.OnTick(true, t0)
	m.OnTick(true, t0.Add(3*time.Second))
	streaming, total, _ := m.Values()
	if streaming != 3*time.Second || total != 3*time.Second {
		t.Fatalf("streaming=%v total=%v, want 3s/3s", streaming, total)
	}

	m.OnTick(false, t0.Add(5*time.Second))
	m.OnTick(true, t0.Add(10*time.Second))
	m.OnTick(true, t0.Add(12*time.Second))
	streaming, total, _ = m.Values()
	if streaming != 2*time.Second {
		t.Fatalf("streaming = %v, want 2s", streaming)
	}
	if total != 7*time.Second {
		t.Fatalf("total = %v, want 7s", total)
	}
}

func TestSessionShotCount(t *testing.T) {
	m := NewSessionModel()
	m.AddShot()
	m.AddShot()
	if _, _, shots := m.Values(); shots != 2 {
		t.Fatalf("shots = %d, want 2", shots)
	}
}

func TestSessionNilSafe(t *testing.T) {
	var m *SessionModel
	m.OnTick(true, time.Now())
	m.AddShot()
	if s, total, shots := m.Values(); s != 0 || total != 0 || shots != 0 {
		t.Fatalf("nil model returned non-zero values")
	}
}

func TestStatusExpires(t *testing.T) {
	m := NewStatusModel()
	t0 := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	m.Set("Capture failed", 3*time.Second, t0)
	if got := m.Text(t0.Add(time.Second)); got != "Capture failed" {
		t.Fatalf("text = %q, want set message", got)
	}
	if got := m.Text(t0.Add(4 * time.Second)); got != "" {
		t.Fatalf("text = %q after expiry, want empty", got)
	}
	// Expired text stays cleared even for earlier timestamps.
	if got := m.Text(t0); got != "" {
		t.Fatalf("text = %q after clear, want empty", got)
	}
}

func TestStatusReplacedExtendsExpiry(t *testing.T) {
	m := NewStatusModel()
	t0 := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	m.Set("first", 2*time.Second, t0)
	m.Set("second", 2*time.Second, t0.Add(time.Second))
	if got := m.Text(t0.Add(2500 * time.Millisecond)); got != "second" {
		t.Fatalf("text = %q, want second message still visible", got)
	}
}
