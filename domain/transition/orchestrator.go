// Package transition orchestrates the paint-synchronized cross-fade that hands
// a captured surface off from the live preview to the review surface.
package transition

import (
	"context"
	"image"
	"log/slog"
)

// Host abstracts the platform's cross-fade transition primitive and its
// paint-confirmation companion. Hosts without the primitive report
// Supported() == false and the orchestrator degrades to an immediate reveal.
type Host interface {
	// Supported reports whether a cross-fade primitive is available.
	Supported() bool
	// ShowStaging draws img into a full-screen staging surface tagged as the
	// transition's "before" anchor and makes it visible.
	ShowStaging(img *image.RGBA, tag string)
	// HideStaging hides the staging surface without releasing it.
	HideStaging()
	// ClearStaging releases the staged image after the transition completes.
	ClearStaging()
	// AwaitPaint suspends until the current frame has rasterized. Starting the
	// transition without this wait animates from a stale or blank frame.
	AwaitPaint(ctx context.Context) error
	// Run starts the transition. flip is invoked at the snapshot boundary and
	// must complete synchronously; Run returns once the animation finishes.
	Run(ctx context.Context, flip func()) error
}

// Orchestrator plays capture hand-off transitions. It performs no mid-flight
// cancellation; preventing a second capture while staging is active is the
// caller's responsibility (it disables the capture controls).
type Orchestrator struct {
	host   Host
	logger *slog.Logger
	active bool
}

// New creates an orchestrator. host may be nil when the platform has no
// transition primitive at all.
func New(host Host, logger *slog.Logger) *Orchestrator {
	return &Orchestrator{host: host, logger: logger}
}

// Active reports whether a transition is currently staged.
func (o *Orchestrator) Active() bool { return o.active }

// Play hands src off to the destination surface. revealDestination is always
// invoked exactly once: immediately when no transition primitive exists,
// otherwise synchronously inside the transition's flip callback, so any state
// mutation performed there is captured consistently in the "after" snapshot.
func (o *Orchestrator) Play(ctx context.Context, src *image.RGBA, tag string, revealDestination func()) error {
	if o.host == nil || !o.host.Supported() {
		revealDestination()
		return nil
	}

	o.active = true
	defer func() { o.active = false }()

	o.host.ShowStaging(src, tag)
	if err := o.host.AwaitPaint(ctx); err != nil {
		// Without paint confirmation the transition would animate from a stale
		// frame; fall back to an immediate reveal instead.
		if o.logger != nil {
			o.logger.Warn("paint confirmation failed, skipping transition", "tag", tag, "error", err)
		}
		o.host.HideStaging()
		o.host.ClearStaging()
		revealDestination()
		return nil
	}

	flipped := false
	err := o.host.Run(ctx, func() {
		flipped = true
		o.host.HideStaging()
		revealDestination()
	})
	if !flipped {
		// The primitive failed before reaching its snapshot boundary; the
		// destination must still be revealed.
		o.host.HideStaging()
		revealDestination()
	}
	o.host.ClearStaging()
	if err != nil && o.logger != nil {
		o.logger.Warn("transition did not complete cleanly", "tag", tag, "error", err)
	}
	return err
}
