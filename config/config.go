package config

import (
	"encoding/json"
	"os"
)

// Config holds runtime configuration for the camera core and the desktop shell.
// Fields may be loaded from a JSON file and overridden by command-line flags.
type Config struct {
	Debug bool `json:"debug"`

	// Viewport geometry of the live preview, in layout pixels. Composited output
	// reproduces exactly this aspect ratio.
	ViewportW int `json:"viewport_w"`
	ViewportH int `json:"viewport_h"`

	// Export parameters
	JPEGQuality float64 `json:"jpeg_quality"` // 0..1, canonical 0.75
	OutputDir   string  `json:"output_dir"`

	// Overlay placement
	DefaultCorner   string `json:"default_corner"` // top-left, top-right, bottom-left, bottom-right
	DragThresholdPx int    `json:"drag_threshold_px"`
	SnapAnimationMs int    `json:"snap_animation_ms"`

	// ForceSingleStream pretends the platform allows only one active device
	// stream regardless of what the detector reports, so the sequential capture
	// flow can be exercised on unconstrained hardware.
	ForceSingleStream bool `json:"force_single_stream"`
}

// DefaultConfig returns a Config populated with standard defaults.
func DefaultConfig() *Config {
	return &Config{
		Debug:             false,
		ViewportW:         390,
		ViewportH:         844,
		JPEGQuality:       0.75,
		OutputDir:         "shots",
		DefaultCorner:     "top-left",
		DragThresholdPx:   10,
		SnapAnimationMs:   200,
		ForceSingleStream: false,
	}
}

// Validate clamps/normalizes values to safe ranges.
func (c *Config) Validate() error {
	if c.ViewportW <= 0 {
		c.ViewportW = 390
	}
	if c.ViewportH <= 0 {
		c.ViewportH = 844
	}
	if c.JPEGQuality <= 0 || c.JPEGQuality > 1 {
		c.JPEGQuality = 0.75
	}
	if c.OutputDir == "" {
		c.OutputDir = "shots"
	}
	switch c.DefaultCorner {
	case "top-left", "top-right", "bottom-left", "bottom-right":
	default:
		c.DefaultCorner = "top-left"
	}
	if c.DragThresholdPx <= 0 {
		c.DragThresholdPx = 10
	}
	if c.SnapAnimationMs <= 0 {
		c.SnapAnimationMs = 200
	}
	return nil
}

// Load attempts to read configuration from the given JSON file path. If the file does not
// exist it returns DefaultConfig(). On JSON error it returns defaults with the error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	defer f.Close()
	dec := json.NewDecoder(f)
	if err := dec.Decode(cfg); err != nil {
		return cfg, err
	}
	_ = cfg.Validate()
	return cfg, nil
}

// Save writes the configuration to the given path in JSON format.
func (c *Config) Save(path string) error {
	_ = c.Validate()
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(c)
}
