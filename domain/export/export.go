// Package export turns composited frames into JPEG files on disk and hands
// them to an optional share target.
package export

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"log/slog"
	"os"
	"path/filepath"
	"time"
)

// Sharer receives an encoded photo after it has been written. The desktop
// shell wires a no-op; platforms with a native share sheet plug in here.
type Sharer interface {
	Share(path string, data []byte) error
}

// Exporter encodes and persists captured photos.
type Exporter struct {
	outputDir string
	quality   int
	sharer    Sharer
	logger    *slog.Logger
	now       func() time.Time
}

// NewExporter builds an exporter. quality is the 0..1 config value and is
// mapped onto the encoder's 1..100 scale. sharer may be nil.
func NewExporter(outputDir string, quality float64, sharer Sharer, logger *slog.Logger) *Exporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Exporter{
		outputDir: outputDir,
		quality:   encoderQuality(quality),
		sharer:    sharer,
		logger:    logger,
		now:       time.Now,
	}
}

func encoderQuality(q float64) int {
	scaled := int(q * 100)
	if scaled < 1 {
		scaled = 1
	}
	if scaled > 100 {
		scaled = 100
	}
	return scaled
}

// Encode returns the JPEG bytes for img without touching disk. The review
// window uses this to show exactly what Save would persist.
func (e *Exporter) Encode(img image.Image) ([]byte, error) {
	if img == nil {
		return nil, fmt.Errorf("encode: nil image")
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: e.quality}); err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}
	return buf.Bytes(), nil
}

// Save encodes img and writes it under the output directory with a
// timestamped name. It returns the written path.
func (e *Exporter) Save(img image.Image) (string, error) {
	data, err := e.Encode(img)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(e.outputDir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	name := fmt.Sprintf("pip-%s.jpg", e.now().Format("20060102-150405"))
	path := filepath.Join(e.outputDir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write photo: %w", err)
	}
	e.logger.Info("Photo saved", slog.String("path", path), slog.Int("bytes", len(data)))

	if e.sharer != nil {
		if err := e.sharer.Share(path, data); err != nil {
			// The file is on disk either way; sharing is best effort.
			e.logger.Warn("Share failed", slog.Any("error", err))
		}
	}
	return path, nil
}
