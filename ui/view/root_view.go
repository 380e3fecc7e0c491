package view

import (
	"image"
	"log/slog"
	"strconv"
	"time"

	"github.com/soocke/pip-camera-go/config"
	"github.com/soocke/pip-camera-go/domain/compositor"
	"github.com/soocke/pip-camera-go/ui/theme"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// Handlers collects the user-action callbacks the shell wires into the view.
type Handlers struct {
	OnShutter       func()
	OnToggleMode    func()
	OnPreviewTap    func()
	OnCornerChanged func(c compositor.Corner)
	OnExit          func()
}

// RootView composes the top-level application layout and wires UI callbacks.
// It owns high-level subviews but exposes minimal exported fields for presenters.
type RootView struct {
	cfg     *config.Config
	cfgPath string
	logger  *slog.Logger
	corner  func() compositor.Corner

	// Subviews
	Session     SessionStats
	ConfigPanel ConfigPanel
	Preview     PipPreview
	Review      *ReviewWindow

	// Widgets
	ModeLabel    *LabelWidget
	StatusLabel  *LabelWidget
	CornerSelect *TComboboxWidget
	previewRow   int
}

// UI abstracts the subset of view operations needed by presenters, enabling
// decoupling from the concrete RootView implementation.
type UI interface {
	SetModeLabel(text string)
	SetStatusLabel(text string)
	SetSession(streaming, total time.Duration, shots int)
	SetMainPreview(img image.Image)
	SetOverlayPreview(img image.Image)
	ShowReview(png []byte, w, h int)
	SetSavedPath(path string)
}

// NewRootView stores dependencies; widgets are created in Build. corner
// reports the committed overlay corner for preview tile placement, onReviewClose
// fires when the review surface is dismissed.
func NewRootView(cfg *config.Config, cfgPath string, logger *slog.Logger, corner func() compositor.Corner, onReviewClose func()) *RootView {
	return &RootView{
		cfg:     cfg,
		cfgPath: cfgPath,
		logger:  logger,
		corner:  corner,
		Review:  NewReviewWindow(logger, onReviewClose),
	}
}

// Build constructs the layout. previewW/previewH size the live preview tile.
func (rv *RootView) Build(previewW, previewH int, h Handlers) {
	if rv == nil {
		return
	}
	// Row 0: session stats, mode label, status label, buttons frame
	rv.Session = NewSessionStats(0, 0)
	rv.ModeLabel = Label(Txt("Live"), Style(theme.StyleModeLabel))
	Grid(rv.ModeLabel, Row(0), Column(3), Sticky("we"), Padx("0.4m"), Pady("0.3m"))

	btnFrame := Frame()
	Grid(btnFrame, Row(0), Column(4), Sticky("ne"), Padx("0.3m"), Pady("0.3m"))
	shutterBtn := Button(Txt("Shutter"), Style(theme.StyleShutterButton), Command(h.OnShutter))
	Grid(shutterBtn, In(btnFrame), Row(0), Column(0), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
	modeBtn := Button(Txt("Toggle Mode"), Command(h.OnToggleMode))
	Grid(modeBtn, In(btnFrame), Row(1), Column(0), Sticky("we"), Padx("0.2m"), Pady("0.2m"))

	corners := compositor.Corners()
	names := make([]string, len(corners))
	for i, c := range corners {
		names[i] = c.String()
	}
	rv.CornerSelect = TCombobox(Values(names), Width(14))
	Grid(rv.CornerSelect, In(btnFrame), Row(2), Column(0), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
	rv.selectCorner(rv.corner())
	Bind(rv.CornerSelect, "<<ComboboxSelected>>", Command(func() {
		if rv.CornerSelect == nil || h.OnCornerChanged == nil {
			return
		}
		idxStr := rv.CornerSelect.Current(nil)
		idx, err := strconv.Atoi(idxStr)
		if err != nil || idx < 0 || idx >= len(corners) {
			if rv.logger != nil {
				rv.logger.Error("corner selection parse error", "error", err)
			}
			return
		}
		h.OnCornerChanged(corners[idx])
	}))
	exitBtn := Button(Txt("Exit"), Command(h.OnExit))
	Grid(exitBtn, In(btnFrame), Row(3), Column(0), Sticky("we"), Padx("0.2m"), Pady("0.2m"))

	// Row 1: transient status line
	rv.StatusLabel = Label(Txt(""), Style(theme.StyleStatusLabel))
	Grid(rv.StatusLabel, Row(1), Column(0), Columnspan(5), Sticky("we"), Padx("0.4m"))

	// Config panel rows
	rv.ConfigPanel = NewConfigPanel(rv.cfg, rv.cfgPath, rv.logger)
	rv.previewRow = rv.ConfigPanel.Build(2)

	// Live preview; tapping it swaps the camera roles.
	rv.Preview = NewPipPreview(rv.previewRow, previewW, previewH, rv.corner)
	if h.OnPreviewTap != nil {
		Bind(rv.Preview.Widget(), "<ButtonPress-1>", Command(h.OnPreviewTap))
	}
}

// selectCorner moves the combobox selection to the given corner.
func (rv *RootView) selectCorner(c compositor.Corner) {
	if rv.CornerSelect == nil {
		return
	}
	for i, cc := range compositor.Corners() {
		if cc == c {
			rv.CornerSelect.Current(i)
			return
		}
	}
}

// SetModeLabel updates the capture mode label text.
func (rv *RootView) SetModeLabel(text string) {
	if rv != nil && rv.ModeLabel != nil {
		rv.ModeLabel.Configure(Txt(text))
	}
}

// SetStatusLabel updates the transient status line.
func (rv *RootView) SetStatusLabel(text string) {
	if rv != nil && rv.StatusLabel != nil {
		rv.StatusLabel.Configure(Txt(text))
	}
}

// SetSession updates the streaming stats row.
func (rv *RootView) SetSession(streaming, total time.Duration, shots int) {
	if rv != nil && rv.Session != nil {
		rv.Session.SetSession(streaming, total, shots)
	}
}

// SetMainPreview proxies to the preview tile.
func (rv *RootView) SetMainPreview(img image.Image) {
	if rv != nil && rv.Preview != nil {
		rv.Preview.SetMainPreview(img)
	}
}

// SetOverlayPreview proxies to the preview tile. nil hides the overlay.
func (rv *RootView) SetOverlayPreview(img image.Image) {
	if rv != nil && rv.Preview != nil {
		rv.Preview.SetOverlayPreview(img)
	}
}

// ShowReview opens the review surface with the finished photo.
func (rv *RootView) ShowReview(png []byte, w, h int) {
	if rv != nil && rv.Review != nil {
		rv.Review.ShowReview(png, w, h)
	}
}

// SetSavedPath shows where the exported photo landed.
func (rv *RootView) SetSavedPath(path string) {
	if rv != nil && rv.Review != nil {
		rv.Review.SetSavedPath(path)
	}
}

// SetConfigEditable toggles config panel editability.
func (rv *RootView) SetConfigEditable(enabled bool) {
	if rv != nil && rv.ConfigPanel != nil {
		rv.ConfigPanel.SetEditable(enabled)
	}
}
