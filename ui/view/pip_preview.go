package view

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/soocke/pip-camera-go/domain/compositor"
	"github.com/soocke/pip-camera-go/domain/placement"
	"github.com/soocke/pip-camera-go/ui/images"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// PipPreview shows the live picture-in-picture preview: the main camera frame
// with the overlay tile drawn into it at the committed corner.
type PipPreview interface {
	SetMainPreview(img image.Image)
	SetOverlayPreview(img image.Image)
	Reset()
	Widget() *LabelWidget
}

type pipPreview struct {
	label     *LabelWidget
	prevPhoto *Img // last Tk photo instance, disposed before replacement
	corner    func() compositor.Corner
	w         int
	h         int
	main      image.Image
	overlay   image.Image
}

// NewPipPreview creates the preview label and grids it at row spanning all
// columns. corner reports the committed overlay corner for tile placement.
func NewPipPreview(row, w, h int, corner func() compositor.Corner) PipPreview {
	v := &pipPreview{corner: corner, w: w, h: h}
	photo := NewPhoto(Data(images.EncodePNG(blankFrame(w, h))))
	v.prevPhoto = photo
	v.label = Label(Image(photo), Borderwidth(1), Relief("sunken"))
	Grid(v.label, Row(row), Column(0), Columnspan(5), Padx("0.4m"), Pady("0.4m"))
	return v
}

func (v *pipPreview) Widget() *LabelWidget { return v.label }

func (v *pipPreview) SetMainPreview(img image.Image) {
	if v == nil || img == nil {
		return
	}
	v.main = img
	v.render()
}

// SetOverlayPreview stores the overlay tile. Passing nil hides it.
func (v *pipPreview) SetOverlayPreview(img image.Image) {
	if v == nil {
		return
	}
	v.overlay = img
	v.render()
}

func (v *pipPreview) Reset() {
	if v == nil {
		return
	}
	v.main = nil
	v.overlay = nil
	v.swapPhoto(images.EncodePNG(blankFrame(v.w, v.h)))
}

// render composes main and overlay into one frame. On-screen placement uses
// the same margins as the export so the preview matches the photo.
func (v *pipPreview) render() {
	if v.label == nil || v.main == nil {
		return
	}
	frame := image.NewRGBA(image.Rect(0, 0, v.w, v.h))
	draw.Draw(frame, frame.Bounds(), v.main, v.main.Bounds().Min, draw.Src)
	if v.overlay != nil {
		ob := v.overlay.Bounds()
		x, y := placement.TargetPosition(v.corner(), float64(ob.Dx()), float64(ob.Dy()), float64(v.w), float64(v.h))
		target := image.Rect(int(x), int(y), int(x)+ob.Dx(), int(y)+ob.Dy())
		draw.Draw(frame, target, v.overlay, ob.Min, draw.Over)
	}
	v.swapPhoto(images.EncodePNG(frame))
}

// swapPhoto replaces the Tk photo, disposing the previous instance so
// off-screen pixel buffers do not accumulate.
func (v *pipPreview) swapPhoto(pngBytes []byte) {
	if v.prevPhoto != nil {
		v.prevPhoto.Delete()
	}
	photo := NewPhoto(Data(pngBytes))
	v.prevPhoto = photo
	v.label.Configure(Image(photo))
}

func blankFrame(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.RGBA{R: 18, G: 20, B: 24, A: 255}), image.Point{}, draw.Src)
	return img
}
