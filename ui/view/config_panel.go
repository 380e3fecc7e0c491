package view

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/soocke/pip-camera-go/config"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// ConfigPanel encapsulates the configuration form widgets and apply logic.
// It owns its widgets and writes back into *config.Config on ApplyChanges.
type ConfigPanel interface {
	Build(startRow int) (endRow int) // constructs widgets starting at startRow, returns next free row
	SetEditable(enabled bool)
	ApplyChanges() // parses widget text into underlying config and persists
}

type configPanel struct {
	cfg      *config.Config
	cfgPath  string
	logger   *slog.Logger
	applyBtn *ButtonWidget
	widgets  map[string]*TextWidget // keyed by internal field id
}

// NewConfigPanel creates the view bound to cfg.
func NewConfigPanel(cfg *config.Config, cfgPath string, logger *slog.Logger) ConfigPanel {
	return &configPanel{cfg: cfg, cfgPath: cfgPath, logger: logger, widgets: make(map[string]*TextWidget)}
}

func (v *configPanel) Build(startRow int) (row int) {
	c := v.cfg
	row = startRow
	makeRow := func(id, label, value string) {
		lbl := Label(Txt(label), Anchor("w"))
		Grid(lbl, Row(row), Column(0), Sticky("w"), Padx("0.4m"), Pady("0.15m"))
		w := Text(Height(1), Width(16))
		Grid(w, Row(row), Column(1), Sticky("we"), Padx("0.4m"), Pady("0.15m"))
		w.Delete("1.0", END)
		w.Insert("1.0", value)
		v.widgets[id] = w
		row++
	}
	makeRow("jpegQuality", "JPEG Quality (0-1)", fmt.Sprintf("%.2f", c.JPEGQuality))
	makeRow("outputDir", "Output Directory", c.OutputDir)
	makeRow("dragThresholdPx", "Drag Threshold Px", fmt.Sprintf("%d", c.DragThresholdPx))
	makeRow("snapAnimationMs", "Snap Animation Ms", fmt.Sprintf("%d", c.SnapAnimationMs))
	makeRow("forceSingleStream", "Force Single Stream (true/false)", fmt.Sprintf("%t", c.ForceSingleStream))
	v.applyBtn = Button(Txt("Apply Changes"), Command(func() { v.ApplyChanges() }))
	Grid(v.applyBtn, Row(row), Column(0), Columnspan(2), Sticky("we"), Padx("0.4m"), Pady("0.3m"))
	row++
	return row
}

func (v *configPanel) SetEditable(enabled bool) {
	state := "disabled"
	if enabled {
		state = "normal"
	}
	for _, w := range v.widgets {
		if w != nil {
			w.Configure(State(state))
		}
	}
	if v.applyBtn != nil {
		v.applyBtn.Configure(State(state))
	}
}

func (v *configPanel) text(w *TextWidget) string {
	if w == nil {
		return ""
	}
	parts := w.Get("1.0", END)
	return strings.Join(parts, "")
}

// ApplyChanges parses the form into a config copy, validates and persists it.
// Viewport and stream constraint changes take effect on the next start.
func (v *configPanel) ApplyChanges() {
	if v.cfg == nil {
		return
	}
	cfg := *v.cfg // copy
	if w := v.widgets["jpegQuality"]; w != nil {
		if f, err := strconv.ParseFloat(strings.TrimSpace(v.text(w)), 64); err == nil {
			cfg.JPEGQuality = f
		}
	}
	if w := v.widgets["outputDir"]; w != nil {
		if val := strings.TrimSpace(v.text(w)); val != "" {
			cfg.OutputDir = val
		}
	}
	if w := v.widgets["dragThresholdPx"]; w != nil {
		if i, err := strconv.Atoi(strings.TrimSpace(v.text(w))); err == nil {
			cfg.DragThresholdPx = i
		}
	}
	if w := v.widgets["snapAnimationMs"]; w != nil {
		if i, err := strconv.Atoi(strings.TrimSpace(v.text(w))); err == nil {
			cfg.SnapAnimationMs = i
		}
	}
	if w := v.widgets["forceSingleStream"]; w != nil {
		if b, ok := parseBoolLoose(strings.TrimSpace(v.text(w))); ok {
			cfg.ForceSingleStream = b
		}
	}
	if verr := cfg.Validate(); verr != nil {
		return
	}
	*v.cfg = cfg
	if err := v.cfg.Save(v.cfgPath); err != nil {
		if v.logger != nil {
			v.logger.Error("config save failed", "error", err)
		}
	} else {
		if v.logger != nil {
			v.logger.Info("config saved", "path", v.cfgPath)
		}
	}
}

func parseBoolLoose(s string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1", "yes", "y", "on", "t":
		return true, true
	case "false", "0", "no", "n", "off", "f":
		return false, true
	default:
		return false, false
	}
}
