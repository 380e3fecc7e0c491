package device

import "context"

// MultiProvider chains providers: facing hints and identity lookups are tried
// in order, and ListIDs concatenates every backend's inputs. The desktop shell
// uses it to prefer real webcams while keeping the screen as a fallback device.
type MultiProvider struct {
	providers []Provider
}

// NewMultiProvider combines the given providers, earliest first.
func NewMultiProvider(providers ...Provider) *MultiProvider {
	return &MultiProvider{providers: providers}
}

func (p *MultiProvider) AcquireByFacing(ctx context.Context, f Facing) (Stream, Identity, error) {
	var lastErr error = ErrNoDevice
	for _, sub := range p.providers {
		s, ident, err := sub.AcquireByFacing(ctx, f)
		if err == nil {
			return s, ident, nil
		}
		lastErr = err
	}
	return nil, Identity{}, lastErr
}

func (p *MultiProvider) AcquireByID(ctx context.Context, id string) (Stream, Identity, error) {
	var lastErr error = ErrNoDevice
	for _, sub := range p.providers {
		s, ident, err := sub.AcquireByID(ctx, id)
		if err == nil {
			return s, ident, nil
		}
		lastErr = err
	}
	return nil, Identity{}, lastErr
}

func (p *MultiProvider) ListIDs(ctx context.Context) ([]Identity, error) {
	var all []Identity
	for _, sub := range p.providers {
		idents, err := sub.ListIDs(ctx)
		if err != nil {
			continue
		}
		all = append(all, idents...)
	}
	return all, nil
}
