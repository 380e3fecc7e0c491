package view

import (
	"fmt"
	"log/slog"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// ReviewWindow shows a finished photo in a toplevel until the user closes it.
// The capture flow stays paused while it is open; onClose resumes streaming.
type ReviewWindow struct {
	logger  *slog.Logger
	onClose func()

	win        *ToplevelWidget
	photoLabel *LabelWidget
	pathLabel  *LabelWidget
	photo      *Img
}

// NewReviewWindow constructs the manager. The window itself is created
// lazily on the first ShowReview.
func NewReviewWindow(logger *slog.Logger, onClose func()) *ReviewWindow {
	return &ReviewWindow{logger: logger, onClose: onClose}
}

// Open reports whether the review surface is currently on screen.
func (v *ReviewWindow) Open() bool { return v != nil && v.win != nil }

// ShowReview displays the photo, creating or reusing the toplevel.
func (v *ReviewWindow) ShowReview(png []byte, w, h int) {
	if v == nil || len(png) == 0 {
		return
	}
	if v.photo != nil {
		v.photo.Delete()
		v.photo = nil
	}
	v.photo = NewPhoto(Data(png))
	if v.win != nil {
		v.photoLabel.Configure(Image(v.photo))
		v.pathLabel.Configure(Txt("Saving..."))
		return
	}
	win := App.Toplevel(Borderwidth(2))
	win.WmTitle("Photo")
	WmGeometry(win.Window, fmt.Sprintf("+%d+%d", 160, 120))
	v.win = win
	v.photoLabel = win.Label(Image(v.photo), Borderwidth(1), Relief("sunken"))
	Grid(v.photoLabel, Row(0), Column(0), Columnspan(2), Padx("0.4m"), Pady("0.4m"))
	v.pathLabel = win.Label(Txt("Saving..."))
	Grid(v.pathLabel, Row(1), Column(0), Sticky("w"), Padx("0.4m"), Pady("0.2m"))
	closeBtn := win.Button(Txt("Close"), Command(v.close))
	Grid(closeBtn, Row(1), Column(1), Sticky("e"), Padx("0.4m"), Pady("0.2m"))
	Bind(win, "<Escape>", Command(v.close))
	WmProtocol(win.Window, "WM_DELETE_WINDOW", v.close)
}

// SetSavedPath updates the caption once the export has landed on disk.
func (v *ReviewWindow) SetSavedPath(path string) {
	if v == nil || v.pathLabel == nil || v.win == nil {
		return
	}
	v.pathLabel.Configure(Txt("Saved: " + path))
}

func (v *ReviewWindow) close() {
	if v.win == nil {
		return
	}
	Destroy(v.win)
	v.win = nil
	v.photoLabel = nil
	v.pathLabel = nil
	if v.photo != nil {
		v.photo.Delete()
		v.photo = nil
	}
	if v.onClose != nil {
		v.onClose()
	}
}
