package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.ViewportW != 390 || cfg.ViewportH != 844 {
		t.Fatalf("unexpected default viewport %dx%d", cfg.ViewportW, cfg.ViewportH)
	}
	if cfg.JPEGQuality != 0.75 {
		t.Fatalf("unexpected default quality %v", cfg.JPEGQuality)
	}
}

func TestValidateClampsOutOfRangeValues(t *testing.T) {
	cfg := &Config{
		ViewportW:       -1,
		ViewportH:       0,
		JPEGQuality:     1.5,
		DefaultCorner:   "middle",
		DragThresholdPx: -3,
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
	if cfg.ViewportW != 390 || cfg.ViewportH != 844 {
		t.Fatalf("viewport not clamped: %dx%d", cfg.ViewportW, cfg.ViewportH)
	}
	if cfg.JPEGQuality != 0.75 {
		t.Fatalf("quality not clamped: %v", cfg.JPEGQuality)
	}
	if cfg.DefaultCorner != "top-left" {
		t.Fatalf("corner not normalized: %q", cfg.DefaultCorner)
	}
	if cfg.DragThresholdPx != 10 {
		t.Fatalf("threshold not clamped: %d", cfg.DragThresholdPx)
	}
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	if err != nil {
		t.Fatalf("missing file should not error: %v", err)
	}
	if cfg.ViewportW != 390 {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.json")
	cfg := DefaultConfig()
	cfg.DefaultCorner = "bottom-right"
	cfg.ForceSingleStream = true
	if err := cfg.Save(path); err != nil {
		t.Fatalf("save: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.DefaultCorner != "bottom-right" || !loaded.ForceSingleStream {
		t.Fatalf("round trip lost fields: %+v", loaded)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("saved file missing: %v", err)
	}
}
