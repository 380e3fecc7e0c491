package presenter

import (
	"context"
	"image"
	"image/color"
	"testing"
	"time"

	"github.com/soocke/pip-camera-go/domain/binding"
	"github.com/soocke/pip-camera-go/domain/capturemode"
	"github.com/soocke/pip-camera-go/ui/model"
)

type fakeView struct {
	statusLabels []string
	modeLabels   []string
	sessions     []time.Duration
	totals       []time.Duration
	shots        []int
	mains        []image.Image
	overlays     []image.Image
	reviews      [][]byte
	savedPaths   []string
}

func (v *fakeView) SetStatusLabel(s string) { v.statusLabels = append(v.statusLabels, s) }
func (v *fakeView) SetModeLabel(s string)   { v.modeLabels = append(v.modeLabels, s) }
func (v *fakeView) SetSession(s, t time.Duration, shots int) {
	v.sessions = append(v.sessions, s)
	v.totals = append(v.totals, t)
	v.shots = append(v.shots, shots)
}
func (v *fakeView) SetMainPreview(img image.Image)    { v.mains = append(v.mains, img) }
func (v *fakeView) SetOverlayPreview(img image.Image) { v.overlays = append(v.overlays, img) }
func (v *fakeView) ShowReview(png []byte, w, h int)   { v.reviews = append(v.reviews, png) }
func (v *fakeView) SetSavedPath(path string)          { v.savedPaths = append(v.savedPaths, path) }

type fakeSource struct {
	frames map[binding.Role]*image.RGBA
	snap   binding.Snapshot
	paused bool
	asked  []binding.Role
}

func (f *fakeSource) Frame(_ context.Context, role binding.Role) (*image.RGBA, error) {
	f.asked = append(f.asked, role)
	return f.frames[role], nil
}
func (f *fakeSource) Mirror(binding.Role) bool    { return false }
func (f *fakeSource) Snapshot() binding.Snapshot  { return f.snap }
func (f *fakeSource) Paused() bool                { return f.paused }
func (f *fakeSource) PauseAll()                   { f.paused = true }
func (f *fakeSource) ResumeAll(_ context.Context) { f.paused = false }

func frame(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, color.RGBA{R: 80, G: 120, B: 160, A: 255})
		}
	}
	return img
}

func TestStatusPresenterShowsAndExpires(t *testing.T) {
	view := &fakeView{}
	t0 := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	p := NewStatusPresenter(model.NewStatusModel(), view)
	p.now = func() time.Time { return t0 }

	p.Status("Capture failed", 3*time.Second)
	p.Tick(t0.Add(time.Second))
	p.Tick(t0.Add(2 * time.Second)) // unchanged, no second push
	p.Tick(t0.Add(5 * time.Second)) // expired, pushes empty

	want := []string{"Capture failed", ""}
	if len(view.statusLabels) != len(want) {
		t.Fatalf("labels = %v, want %v", view.statusLabels, want)
	}
	for i := range want {
		if view.statusLabels[i] != want[i] {
			t.Fatalf("labels = %v, want %v", view.statusLabels, want)
		}
	}
}

func TestStatusZeroDurationFallsBackToDefault(t *testing.T) {
	view := &fakeView{}
	t0 := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	p := NewStatusPresenter(model.NewStatusModel(), view)
	p.now = func() time.Time { return t0 }

	// The binding coordinator reports failures with duration 0, meaning
	// "shell default". The message must still reach the view.
	p.Status("Camera unavailable", 0)
	p.Tick(t0.Add(100 * time.Millisecond))
	p.Tick(t0.Add(defaultStatusDuration + time.Second)) // expired, pushes empty

	want := []string{"Camera unavailable", ""}
	if len(view.statusLabels) != len(want) {
		t.Fatalf("labels = %v, want %v", view.statusLabels, want)
	}
	for i := range want {
		if view.statusLabels[i] != want[i] {
			t.Fatalf("labels = %v, want %v", view.statusLabels, want)
		}
	}
}

func TestModePresenterReflectsLatestChange(t *testing.T) {
	view := &fakeView{}
	p := NewModePresenter(view)

	p.OnChange(capturemode.Sequential, 1)
	p.OnChange(capturemode.Sequential, 2)
	p.Tick(time.Now())
	p.OnChange(capturemode.Live, 0)
	p.Tick(time.Now())
	p.Tick(time.Now()) // empty queue, no push

	want := []string{"Sequential 2/2", "Live"}
	if len(view.modeLabels) != 2 || view.modeLabels[0] != want[0] || view.modeLabels[1] != want[1] {
		t.Fatalf("mode labels = %v, want %v", view.modeLabels, want)
	}
}

func TestSessionPresenterUsesPauseState(t *testing.T) {
	view := &fakeView{}
	source := &fakeSource{}
	p := NewSessionPresenter(model.NewSessionModel(), source, view)
	t0 := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	p.Tick(t0)
	p.Tick(t0.Add(2 * time.Second))
	source.paused = true
	p.Tick(t0.Add(3 * time.Second))

	if got := view.totals[len(view.totals)-1]; got != 3*time.Second {
		t.Fatalf("total = %v, want 3s", got)
	}
}

func TestPreviewRendersBothTiles(t *testing.T) {
	view := &fakeView{}
	source := &fakeSource{
		frames: map[binding.Role]*image.RGBA{
			binding.RoleMain:    frame(200, 400),
			binding.RoleOverlay: frame(200, 400),
		},
		snap: binding.Snapshot{
			HasMain:    true,
			HasOverlay: true,
			Main:       binding.SlotView{Live: true},
			Overlay:    binding.SlotView{Live: true},
		},
	}
	p := NewPreviewPresenter(source, view, nil, nil, 100, 200)

	p.Tick(context.Background())

	if len(view.mains) != 1 {
		t.Fatalf("main previews = %d, want 1", len(view.mains))
	}
	b := view.mains[0].Bounds()
	if b.Dx() != 100 || b.Dy() != 200 {
		t.Fatalf("main preview %dx%d, want 100x200", b.Dx(), b.Dy())
	}
	if len(view.overlays) != 1 || view.overlays[0] == nil {
		t.Fatalf("overlay preview missing")
	}
	ob := view.overlays[0].Bounds()
	if ob.Dx() != 25 {
		t.Fatalf("overlay width = %d, want 25", ob.Dx())
	}
}

func TestPreviewShowsPlaceholderWhenOverlayNotStreaming(t *testing.T) {
	view := &fakeView{}
	placeholder := frame(120, 160)
	source := &fakeSource{
		frames: map[binding.Role]*image.RGBA{binding.RoleMain: frame(200, 400)},
		snap: binding.Snapshot{
			HasMain:    true,
			HasOverlay: true,
			Main:       binding.SlotView{Live: true},
			Overlay:    binding.SlotView{Live: false},
		},
	}
	p := NewPreviewPresenter(source, view, nil, placeholder, 100, 200)

	p.Tick(context.Background())

	for _, role := range source.asked {
		if role == binding.RoleOverlay {
			t.Fatalf("overlay frame requested while not live")
		}
	}
	if len(view.overlays) != 1 || view.overlays[0] == nil {
		t.Fatalf("placeholder not shown")
	}
}

func TestPreviewHidesOverlayForSingleDevice(t *testing.T) {
	view := &fakeView{}
	source := &fakeSource{
		frames: map[binding.Role]*image.RGBA{binding.RoleMain: frame(200, 400)},
		snap:   binding.Snapshot{HasMain: true, Main: binding.SlotView{Live: true}},
	}
	p := NewPreviewPresenter(source, view, nil, frame(120, 160), 100, 200)

	p.Tick(context.Background())

	if len(view.overlays) != 1 || view.overlays[0] != nil {
		t.Fatalf("overlay tile should be hidden for a single device")
	}
}

func TestPreviewFrozenWhilePaused(t *testing.T) {
	view := &fakeView{}
	source := &fakeSource{paused: true}
	p := NewPreviewPresenter(source, view, nil, nil, 100, 200)

	p.Tick(context.Background())

	if len(view.mains) != 0 || len(source.asked) != 0 {
		t.Fatalf("paused preview should not pull frames")
	}
}

func TestReviewPresenterScalesAndCounts(t *testing.T) {
	view := &fakeView{}
	sess := model.NewSessionModel()
	p := NewReviewPresenter(view, sess, nil, 80, 80)

	p.Present(frame(100, 200))
	p.Saved("/shots/pip-x.jpg")

	if len(view.reviews) != 1 || len(view.reviews[0]) == 0 {
		t.Fatalf("review image not shown")
	}
	if len(view.savedPaths) != 1 || view.savedPaths[0] != "/shots/pip-x.jpg" {
		t.Fatalf("saved path = %v", view.savedPaths)
	}
	if _, _, shots := sess.Values(); shots != 1 {
		t.Fatalf("shots = %d, want 1", shots)
	}
}

func TestVisibilityWatcherPausesAndResumes(t *testing.T) {
	source := &fakeSource{}
	fgTitle := "PiP Camera"
	watcher := NewVisibilityWatcher(source, nil,
		func() (string, error) { return fgTitle, nil },
		func() string { return "PiP Camera" },
		nil)

	t0 := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	watcher.Tick(context.Background(), t0)
	if source.paused {
		t.Fatalf("paused while visible")
	}

	fgTitle = "Other App"
	watcher.Tick(context.Background(), t0.Add(time.Second))
	if !source.paused {
		t.Fatalf("not paused after losing foreground")
	}

	fgTitle = "PiP Camera"
	watcher.Tick(context.Background(), t0.Add(2*time.Second))
	if source.paused {
		t.Fatalf("not resumed after regaining foreground")
	}
}

func TestVisibilityWatcherThrottlesPolling(t *testing.T) {
	polls := 0
	source := &fakeSource{}
	watcher := NewVisibilityWatcher(source, nil,
		func() (string, error) { polls++; return "PiP Camera", nil },
		func() string { return "PiP Camera" },
		nil)

	t0 := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	watcher.Tick(context.Background(), t0)
	watcher.Tick(context.Background(), t0.Add(50*time.Millisecond))
	watcher.Tick(context.Background(), t0.Add(100*time.Millisecond))
	watcher.Tick(context.Background(), t0.Add(300*time.Millisecond))

	if polls != 2 {
		t.Fatalf("polls = %d, want 2", polls)
	}
}

func TestVisibilityWatcherRespectsSuspension(t *testing.T) {
	source := &fakeSource{}
	fgTitle := "Other App"
	suspended := true
	watcher := NewVisibilityWatcher(source, nil,
		func() (string, error) { return fgTitle, nil },
		func() string { return "PiP Camera" },
		func() bool { return suspended })

	t0 := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	watcher.Tick(context.Background(), t0)
	if source.paused {
		t.Fatalf("watcher paused streams while suspended")
	}
}
