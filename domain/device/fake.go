package device

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"sync"
)

// FakeCamera configures one simulated device of a FakeProvider.
type FakeCamera struct {
	Identity
	AcquireErr error      // returned on every acquisition attempt when set
	FrameColor color.RGBA // solid frame color delivered by the stream
	FrameW     int        // defaults to 96
	FrameH     int        // defaults to 160
}

// FakeProvider is an in-memory Provider used by tests and the demo shell.
// With enforceSingle set it refuses a second simultaneous stream, mimicking a
// constrained platform, and it records every acquire/stop in order so tests
// can verify stop-before-start sequencing.
type FakeProvider struct {
	mu            sync.Mutex
	cams          []FakeCamera
	enforceSingle bool
	live          map[string]*fakeStream
	ops           []string
}

// NewFakeProvider builds a provider exposing the given cameras.
func NewFakeProvider(enforceSingle bool, cams ...FakeCamera) *FakeProvider {
	return &FakeProvider{cams: cams, enforceSingle: enforceSingle, live: make(map[string]*fakeStream)}
}

// Ops returns the recorded acquire/stop sequence, e.g. ["acquire:cam0", "stop:cam0"].
func (p *FakeProvider) Ops() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.ops))
	copy(out, p.ops)
	return out
}

// SetAcquireErr makes every future acquisition of the given camera fail
// (or succeed again when err is nil).
func (p *FakeProvider) SetAcquireErr(id string, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for i := range p.cams {
		if p.cams[i].ID == id {
			p.cams[i].AcquireErr = err
		}
	}
}

// LiveCount reports how many streams are currently open.
func (p *FakeProvider) LiveCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.live)
}

func (p *FakeProvider) AcquireByFacing(_ context.Context, f Facing) (Stream, Identity, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for i := range p.cams {
		if p.cams[i].Facing == f && f != FacingUnknown {
			return p.acquireLocked(&p.cams[i])
		}
	}
	return nil, Identity{}, fmt.Errorf("fake: no device facing %s", f)
}

func (p *FakeProvider) AcquireByID(_ context.Context, id string) (Stream, Identity, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for i := range p.cams {
		if p.cams[i].ID == id {
			return p.acquireLocked(&p.cams[i])
		}
	}
	return nil, Identity{}, fmt.Errorf("fake: unknown device %s", id)
}

func (p *FakeProvider) ListIDs(_ context.Context) ([]Identity, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	idents := make([]Identity, len(p.cams))
	for i, c := range p.cams {
		idents[i] = c.Identity
	}
	return idents, nil
}

func (p *FakeProvider) acquireLocked(cam *FakeCamera) (Stream, Identity, error) {
	if cam.AcquireErr != nil {
		return nil, Identity{}, cam.AcquireErr
	}
	if _, open := p.live[cam.ID]; open {
		return nil, Identity{}, fmt.Errorf("fake: device %s already open: %w", cam.ID, ErrStreamBusy)
	}
	if p.enforceSingle && len(p.live) > 0 {
		return nil, Identity{}, fmt.Errorf("fake: single-stream constraint violated acquiring %s: %w", cam.ID, ErrStreamBusy)
	}
	s := &fakeStream{provider: p, cam: *cam, live: true}
	p.live[cam.ID] = s
	p.ops = append(p.ops, "acquire:"+cam.ID)
	return s, cam.Identity, nil
}

type fakeStream struct {
	provider *FakeProvider
	cam      FakeCamera
	live     bool
}

func (s *fakeStream) Frame(_ context.Context) (*image.RGBA, error) {
	if !s.live {
		return nil, ErrNoStream
	}
	w, h := s.cam.FrameW, s.cam.FrameH
	if w <= 0 {
		w = 96
	}
	if h <= 0 {
		h = 160
	}
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, s.cam.FrameColor)
		}
	}
	return img, nil
}

func (s *fakeStream) Live() bool { return s.live }

func (s *fakeStream) Close() error {
	if !s.live {
		return nil
	}
	s.live = false
	s.provider.mu.Lock()
	delete(s.provider.live, s.cam.ID)
	s.provider.ops = append(s.provider.ops, "stop:"+s.cam.ID)
	s.provider.mu.Unlock()
	return nil
}
