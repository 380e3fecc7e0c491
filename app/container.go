package app

import (
	"context"
	"image"
	"log/slog"
	"time"

	"github.com/soocke/pip-camera-go/assets"
	"github.com/soocke/pip-camera-go/config"
	"github.com/soocke/pip-camera-go/domain/binding"
	"github.com/soocke/pip-camera-go/domain/capturemode"
	"github.com/soocke/pip-camera-go/domain/compositor"
	"github.com/soocke/pip-camera-go/domain/device"
	"github.com/soocke/pip-camera-go/domain/export"
	"github.com/soocke/pip-camera-go/domain/placement"
	"github.com/soocke/pip-camera-go/domain/transition"
	"github.com/soocke/pip-camera-go/ui/model"
	"github.com/soocke/pip-camera-go/ui/presenter"
	"github.com/soocke/pip-camera-go/ui/view"
)

// Container assembles the domain layer, models, presenters and the root view.
type Container struct {
	Config *config.Config
	Logger *slog.Logger

	Registry   *device.Registry
	Binding    *binding.Coordinator
	Placement  *placement.Controller
	Transition *transition.Orchestrator
	Capture    *capturemode.Controller
	Exporter   *export.Exporter

	Session *model.SessionModel
	Status  *model.StatusModel

	RootView *view.RootView
	UI       view.UI

	StatusPresenter  *presenter.StatusPresenter
	ModePresenter    *presenter.ModePresenter
	SessionPresenter *presenter.SessionPresenter
	PreviewPresenter *presenter.PreviewPresenter
	ReviewPresenter  *presenter.ReviewPresenter
	Visibility       *presenter.VisibilityWatcher
	Loop             *presenter.Loop
}

// BuildContainer constructs all components. schedule defers work onto the UI
// event loop (the shell passes a TclAfter wrapper); windowTitle feeds the
// visibility watcher. Side effects are limited to asset loading; device
// enumeration happens later in Start.
func BuildContainer(cfg *config.Config, cfgPath string, logger *slog.Logger, schedule func(time.Duration, func()), windowTitle func() string) *Container {
	c := &Container{Config: cfg, Logger: logger}
	c.Session = model.NewSessionModel()
	c.Status = model.NewStatusModel()

	// Devices: V4L2 cameras first, the screen as a fallback "camera" so the
	// app stays usable on machines without one.
	provider := device.NewMultiProvider(
		device.NewV4L2Provider(1280, 720),
		device.NewScreenProvider(),
	)
	constraint := cfg.ForceSingleStream
	c.Registry = device.NewRegistry(provider, constraint, logger)

	c.Placement = placement.NewController(placementHooks(c, cfg, cfgPath),
		func() (float64, float64) { return float64(cfg.ViewportW), float64(cfg.ViewportH) },
		schedule,
		float64(cfg.DragThresholdPx),
		time.Duration(cfg.SnapAnimationMs)*time.Millisecond,
		compositor.ParseCorner(cfg.DefaultCorner),
	)

	c.RootView = view.NewRootView(cfg, cfgPath, logger, c.Placement.Committed, func() {
		if c.Capture != nil {
			c.Capture.ResumeFromReview(context.Background())
		}
	})
	c.UI = c.RootView

	c.StatusPresenter = presenter.NewStatusPresenter(c.Status, c.RootView)
	c.Binding = binding.New(c.Registry, logger, c.StatusPresenter)

	c.Transition = transition.New(nil, logger) // the Tk shell has no cross-fade surface
	c.Exporter = export.NewExporter(cfg.OutputDir, cfg.JPEGQuality, nil, logger)
	c.ReviewPresenter = presenter.NewReviewPresenter(c.RootView, c.Session, logger, cfg.ViewportW, cfg.ViewportH)

	c.Capture = capturemode.NewController(capturemode.Options{
		Binding:    c.Binding,
		Player:     c.Transition,
		Review:     c.ReviewPresenter,
		Exporter:   c.Exporter,
		Notifier:   c.StatusPresenter,
		Logger:     logger,
		DeferTask:  func(fn func()) { schedule(0, fn) },
		Corner:     c.Placement.Committed,
		Constraint: constraint,
		ViewportW:  cfg.ViewportW,
		ViewportH:  cfg.ViewportH,
	})

	c.ModePresenter = presenter.NewModePresenter(c.RootView)
	c.Capture.AddListener(c.ModePresenter.OnChange)
	c.SessionPresenter = presenter.NewSessionPresenter(c.Session, c.Binding, c.RootView)

	var placeholder image.Image
	if img, err := assets.CameraOffImage(); err == nil {
		placeholder = img
	} else {
		logger.Warn("Placeholder asset unavailable", slog.Any("error", err))
	}
	c.PreviewPresenter = presenter.NewPreviewPresenter(c.Binding, c.RootView, logger, placeholder, cfg.ViewportW, cfg.ViewportH)

	c.Visibility = presenter.NewVisibilityWatcher(c.Binding, logger, nil, windowTitle, c.RootView.Review.Open)

	c.Loop = presenter.NewLoop(c.Visibility, c.ModePresenter, c.StatusPresenter, c.SessionPresenter, c.PreviewPresenter, nil)
	return c
}

// placementHooks binds the placement controller's side effects to the shell.
// The Tk preview renders the overlay tile from the committed corner each
// tick, so only the commit and tap hooks need wiring here.
func placementHooks(c *Container, cfg *config.Config, cfgPath string) placement.Hooks {
	return placement.Hooks{
		SetCornerStyle: func(corner compositor.Corner) {
			cfg.DefaultCorner = corner.String()
			if err := cfg.Save(cfgPath); err != nil {
				c.Logger.Warn("Could not persist overlay corner", slog.Any("error", err))
			}
		},
		Tap: func() {
			if c.Binding == nil {
				return
			}
			if err := c.Binding.SwapRoles(context.Background()); err != nil {
				c.Logger.Info("Camera swap unavailable", slog.Any("error", err))
			}
		},
	}
}
