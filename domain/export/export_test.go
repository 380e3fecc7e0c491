package export

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"
)

type fakeSharer struct {
	paths []string
	sizes []int
	err   error
}

func (f *fakeSharer) Share(path string, data []byte) error {
	f.paths = append(f.paths, path)
	f.sizes = append(f.sizes, len(data))
	return f.err
}

func testImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 32, 24))
	for y := 0; y < 24; y++ {
		for x := 0; x < 32; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 8), G: uint8(y * 10), B: 90, A: 255})
		}
	}
	return img
}

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestSaveWritesTimestampedJPEG(t *testing.T) {
	dir := t.TempDir()
	e := NewExporter(dir, 0.75, nil, discard())
	e.now = func() time.Time { return time.Date(2024, 3, 15, 9, 30, 12, 0, time.UTC) }

	path, err := e.Save(testImage())
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if want := filepath.Join(dir, "pip-20240315-093012.jpg"); path != want {
		t.Fatalf("path = %q, want %q", path, want)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if _, err := jpeg.Decode(bytes.NewReader(data)); err != nil {
		t.Fatalf("written file is not a decodable JPEG: %v", err)
	}
}

func TestSaveCreatesOutputDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "shots")
	e := NewExporter(dir, 0.75, nil, discard())

	if _, err := e.Save(testImage()); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, err := os.Stat(dir); err != nil {
		t.Fatalf("output dir not created: %v", err)
	}
}

func TestSaveHandsOffToSharer(t *testing.T) {
	sharer := &fakeSharer{}
	e := NewExporter(t.TempDir(), 0.75, sharer, discard())

	path, err := e.Save(testImage())
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if len(sharer.paths) != 1 || sharer.paths[0] != path {
		t.Fatalf("sharer paths = %v, want [%s]", sharer.paths, path)
	}
	if sharer.sizes[0] == 0 {
		t.Fatalf("sharer received empty data")
	}
}

func TestShareFailureDoesNotFailSave(t *testing.T) {
	sharer := &fakeSharer{err: errors.New("no share target")}
	e := NewExporter(t.TempDir(), 0.75, sharer, discard())

	path, err := e.Save(testImage())
	if err != nil {
		t.Fatalf("Save should succeed despite share failure: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("photo missing after share failure: %v", err)
	}
}

func TestEncoderQualityClamps(t *testing.T) {
	cases := []struct {
		in   float64
		want int
	}{
		{0.75, 75},
		{0, 1},
		{-1, 1},
		{1, 100},
		{2, 100},
		{0.004, 1},
	}
	for _, tc := range cases {
		if got := encoderQuality(tc.in); got != tc.want {
			t.Errorf("encoderQuality(%v) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestEncodeRejectsNilImage(t *testing.T) {
	e := NewExporter(t.TempDir(), 0.75, nil, discard())
	if _, err := e.Encode(nil); err == nil {
		t.Fatal("expected error for nil image")
	}
}

func TestHigherQualityProducesLargerFile(t *testing.T) {
	img := testImage()
	low := NewExporter(t.TempDir(), 0.2, nil, discard())
	high := NewExporter(t.TempDir(), 0.95, nil, discard())

	lowData, err := low.Encode(img)
	if err != nil {
		t.Fatalf("low encode: %v", err)
	}
	highData, err := high.Encode(img)
	if err != nil {
		t.Fatalf("high encode: %v", err)
	}
	if len(highData) <= len(lowData) {
		t.Fatalf("quality 0.95 (%d bytes) not larger than 0.2 (%d bytes)", len(highData), len(lowData))
	}
}
