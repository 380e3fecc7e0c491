package presenter

import (
	"image"
	"log/slog"

	"github.com/soocke/pip-camera-go/ui/images"
	"github.com/soocke/pip-camera-go/ui/model"
)

// ReviewView shows the finished photo for review.
type ReviewView interface {
	ShowReview(png []byte, w, h int)
	SetSavedPath(path string)
}

// ReviewPresenter receives finished composites from the capture controller
// and renders them into the review surface. It satisfies the capture
// controller's Review contract.
type ReviewPresenter struct {
	view    ReviewView
	session *model.SessionModel
	logger  *slog.Logger
	maxW    int
	maxH    int
}

func NewReviewPresenter(view ReviewView, session *model.SessionModel, logger *slog.Logger, maxW, maxH int) *ReviewPresenter {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReviewPresenter{view: view, session: session, logger: logger, maxW: maxW, maxH: maxH}
}

// Present scales the photo to the review surface and shows it.
func (p *ReviewPresenter) Present(img *image.RGBA) {
	if p == nil || p.view == nil || img == nil {
		return
	}
	thumb := images.ScaleToFit(img, p.maxW, p.maxH)
	b := thumb.Bounds()
	p.view.ShowReview(images.EncodePNG(thumb), b.Dx(), b.Dy())
}

// Saved records the export and shows where the photo landed.
func (p *ReviewPresenter) Saved(path string) {
	if p == nil {
		return
	}
	p.session.AddShot()
	if p.view != nil {
		p.view.SetSavedPath(path)
	}
	p.logger.Debug("Photo available for review", slog.String("path", path))
}
