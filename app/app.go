// Package app wires the camera domain to the Tk shell and runs the event loop.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	tk "modernc.org/tk9.0"

	"github.com/soocke/pip-camera-go/config"
	"github.com/soocke/pip-camera-go/debug"
	"github.com/soocke/pip-camera-go/domain/compositor"
	"github.com/soocke/pip-camera-go/domain/placement"
	"github.com/soocke/pip-camera-go/ui/theme"
	"github.com/soocke/pip-camera-go/ui/view"
)

const tick = 100 * time.Millisecond

type app struct {
	cfg       *config.Config
	cfgPath   string
	logger    *slog.Logger
	title     string
	container *Container
	afterID   string
}

// NewApp prepares the shell window and assembles the container.
func NewApp(title string, cfg *config.Config, cfgPath string, logger *slog.Logger) *app {
	a := &app{cfg: cfg, cfgPath: cfgPath, logger: logger, title: title}

	tk.App.WmTitle(title)
	tk.WmProtocol(tk.App, "WM_DELETE_WINDOW", a.exitHandler)
	tk.WmGeometry(tk.App, fmt.Sprintf("%dx%d+100+100", cfg.ViewportW+220, cfg.ViewportH+260))

	a.container = BuildContainer(cfg, cfgPath, logger, a.schedule, func() string { return a.title })
	return a
}

// Start builds the view, discovers the cameras and runs the Tk main loop.
// It blocks until the window closes.
func (a *app) Start() {
	theme.InitStyles()
	c := a.container
	ctx := context.Background()

	c.RootView.Build(a.cfg.ViewportW, a.cfg.ViewportH, view.Handlers{
		OnShutter: func() {
			if err := c.Capture.Capture(ctx); err != nil {
				a.logger.Warn("Shutter press failed", slog.Any("error", err))
			}
		},
		OnToggleMode: func() { _ = c.Capture.ToggleMode() },
		OnPreviewTap: a.previewTap,
		OnCornerChanged: func(corner compositor.Corner) {
			c.Placement.Restore(corner)
		},
		OnExit: a.exitHandler,
	})

	devs, err := c.Registry.Enumerate(ctx)
	if err != nil {
		a.logger.Error("Device discovery failed", slog.Any("error", err))
		c.StatusPresenter.Status("No camera found", 10*time.Second)
	} else if err := c.Binding.Bind(devs); err != nil {
		a.logger.Error("Stream binding failed", slog.Any("error", err))
		c.StatusPresenter.Status("Could not start cameras", 10*time.Second)
	}
	c.Capture.Init()

	if a.cfg.Debug {
		debug.StartRuntimeLogger(2*time.Second, a.logger)
	}

	c.Loop.Schedule = a.scheduleUpdate
	a.scheduleUpdate()
	tk.App.Wait()
}

// previewTap feeds a synthetic press/release pair through the placement
// state machine so a click on the preview becomes a tap (camera swap).
func (a *app) previewTap() {
	p := a.container.Placement
	p.PointerDown(0, 0, placement.Rect{})
	p.PointerUp(0, 0)
}

func (a *app) scheduleUpdate() {
	a.afterID = tk.TclAfter(tick, func() { a.container.Loop.Tick() })
}

// schedule defers fn onto the Tk event loop after d.
func (a *app) schedule(d time.Duration, fn func()) {
	tk.TclAfter(d, fn)
}

func (a *app) exitHandler() {
	if a.afterID != "" {
		tk.TclAfterCancel(a.afterID)
	}
	// Release the cameras before tearing the window down.
	if a.container != nil && a.container.Binding != nil {
		a.container.Binding.PauseAll()
	}
	tk.Destroy(tk.App)
}
