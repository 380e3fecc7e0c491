package presenter

import (
	"context"
	"image"
	"log/slog"

	"github.com/soocke/pip-camera-go/domain/binding"
	"github.com/soocke/pip-camera-go/domain/compositor"
	"github.com/soocke/pip-camera-go/ui/images"
)

// FrameSource narrows the stream binding coordinator to what the preview needs.
type FrameSource interface {
	Frame(ctx context.Context, role binding.Role) (*image.RGBA, error)
	Mirror(role binding.Role) bool
	Snapshot() binding.Snapshot
	Paused() bool
}

// PreviewView receives freshly rendered preview frames. Passing nil for the
// overlay hides the overlay tile.
type PreviewView interface {
	SetMainPreview(img image.Image)
	SetOverlayPreview(img image.Image)
}

// PreviewPresenter renders the live picture-in-picture preview each tick:
// the main frame fills the viewport, the overlay tile shows the second
// camera when it streams and a placeholder when it cannot. The placeholder
// appears on screen only; exported photos never contain it.
type PreviewPresenter struct {
	source      FrameSource
	view        PreviewView
	logger      *slog.Logger
	placeholder image.Image
	previewW    int
	previewH    int
}

func NewPreviewPresenter(source FrameSource, view PreviewView, logger *slog.Logger, placeholder image.Image, previewW, previewH int) *PreviewPresenter {
	if logger == nil {
		logger = slog.Default()
	}
	return &PreviewPresenter{
		source:      source,
		view:        view,
		logger:      logger,
		placeholder: placeholder,
		previewW:    previewW,
		previewH:    previewH,
	}
}

// Tick pulls one frame per role and pushes rendered previews to the view.
// While the streams are paused the last rendered frame stays on screen.
func (p *PreviewPresenter) Tick(ctx context.Context) {
	if p == nil || p.source == nil || p.view == nil {
		return
	}
	if p.source.Paused() {
		return
	}
	raw, err := p.source.Frame(ctx, binding.RoleMain)
	if err == nil {
		main, nerr := compositor.CaptureFrame(raw, p.previewW, p.previewH, p.source.Mirror(binding.RoleMain))
		if nerr == nil {
			// CaptureFrame keeps native resolution; the preview wants its
			// own pixel size.
			p.view.SetMainPreview(images.ScaleToFit(main, p.previewW, p.previewH))
		}
	} else {
		p.logger.Debug("Main preview frame unavailable", slog.Any("error", err))
	}

	snap := p.source.Snapshot()
	switch {
	case snap.HasOverlay && snap.Overlay.Live:
		p.renderOverlay(ctx)
	case snap.HasOverlay:
		// Second device exists but cannot stream right now.
		p.view.SetOverlayPreview(p.scaledPlaceholder())
	default:
		p.view.SetOverlayPreview(nil)
	}
}

func (p *PreviewPresenter) renderOverlay(ctx context.Context) {
	raw, err := p.source.Frame(ctx, binding.RoleOverlay)
	if err != nil {
		p.logger.Debug("Overlay preview frame unavailable", slog.Any("error", err))
		p.view.SetOverlayPreview(p.scaledPlaceholder())
		return
	}
	w, h := p.overlaySize()
	tile, err := compositor.CaptureFrame(raw, w, h, p.source.Mirror(binding.RoleOverlay))
	if err != nil {
		return
	}
	p.view.SetOverlayPreview(images.ScaleToFit(tile, w, h))
}

func (p *PreviewPresenter) scaledPlaceholder() image.Image {
	if p.placeholder == nil {
		return nil
	}
	w, h := p.overlaySize()
	return images.ScaleToFit(p.placeholder, w, h)
}

// overlaySize mirrors the compositor's quarter-width overlay ratio so the
// preview tile matches what the exported photo will show.
func (p *PreviewPresenter) overlaySize() (int, int) {
	w := int(float64(p.previewW) * compositor.OverlayWidthRatio)
	if w < 1 {
		w = 1
	}
	h := p.previewH * w / p.previewW
	if h < 1 {
		h = 1
	}
	return w, h
}
