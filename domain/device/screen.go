package device

import (
	"context"
	"fmt"
	"image"
	"sync"

	"github.com/vova616/screenshot"
)

const screenDeviceID = "screen:0"

// ScreenProvider exposes the desktop as a single capture device, which lets
// the pipeline run on machines without a camera. The screen has no facing
// direction, so it is only reachable through raw-identity enumeration.
type ScreenProvider struct {
	mu   sync.Mutex
	open bool
}

// NewScreenProvider returns a provider backed by desktop screenshots.
func NewScreenProvider() *ScreenProvider { return &ScreenProvider{} }

func (p *ScreenProvider) AcquireByFacing(_ context.Context, f Facing) (Stream, Identity, error) {
	return nil, Identity{}, fmt.Errorf("screen: no device facing %s", f)
}

func (p *ScreenProvider) AcquireByID(_ context.Context, id string) (Stream, Identity, error) {
	if id != screenDeviceID {
		return nil, Identity{}, fmt.Errorf("screen: unknown device %s", id)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.open {
		return nil, Identity{}, fmt.Errorf("screen: %w", ErrStreamBusy)
	}
	// Probe once so acquisition fails fast when capture is unavailable
	// (e.g. no display server).
	if _, err := screenshot.ScreenRect(); err != nil {
		return nil, Identity{}, fmt.Errorf("screen: capture unavailable: %w", err)
	}
	p.open = true
	ident := p.identity()
	return &screenStream{provider: p, live: true}, ident, nil
}

func (p *ScreenProvider) ListIDs(_ context.Context) ([]Identity, error) {
	return []Identity{p.identity()}, nil
}

func (p *ScreenProvider) identity() Identity {
	return Identity{ID: screenDeviceID, Label: "Desktop", Facing: FacingUnknown}
}

type screenStream struct {
	provider *ScreenProvider
	live     bool
}

func (s *screenStream) Frame(_ context.Context) (*image.RGBA, error) {
	if !s.live {
		return nil, ErrNoStream
	}
	img, err := screenshot.CaptureScreen()
	if err != nil {
		return nil, fmt.Errorf("screen: capture failed: %w", err)
	}
	return img, nil
}

func (s *screenStream) Live() bool { return s.live }

func (s *screenStream) Close() error {
	if !s.live {
		return nil
	}
	s.live = false
	s.provider.mu.Lock()
	s.provider.open = false
	s.provider.mu.Unlock()
	return nil
}
