package presenter

import (
	"context"
	"image"
	"log/slog"
	"time"

	"github.com/mirrorview/mirror-view-go/domain/display"
	"github.com/mirrorview/mirror-view-go/domain/relay"
	"github.com/mirrorview/mirror-view-go/ui/images"
	"github.com/mirrorview/mirror-view-go/ui/model"
)

// FrameSource provides read-only access to the relay's published frame.
type FrameSource interface {
	Latest() *relay.MirroredFrame
}

// SessionControl narrows what the presenter needs from the stream session.
type SessionControl interface {
	Stop(ctx context.Context) error
}

// DisplayResolver narrows what the presenter needs from the display directory.
type DisplayResolver interface {
	ResolveDefault(previousID int64) (int64, bool)
	Lookup(id int64) (display.Descriptor, bool)
}

// MirrorSurface is the view contract for one mirror output window. bounds is
// nil for default centered placement.
type MirrorSurface interface {
	Open(bounds *image.Rectangle, controlsVisible bool)
	ShowFrame(img image.Image)
	Close()
}

// SurfaceFactory builds a mirror surface wired to the presenter's callbacks.
// onClose is invoked when the user closes the surface from the window system.
type SurfaceFactory func(onToggleH, onToggleV, onClose func()) MirrorSurface

// MirrorPresenter owns the single mutable "current mirror surface" slot. Open
// always closes any previous surface first; Close couples presentation and
// capture lifetimes by stopping the session.
type MirrorPresenter struct {
	frames   FrameSource
	session  SessionControl
	displays DisplayResolver
	model    *model.MirrorModel
	factory  SurfaceFactory
	logger   *slog.Logger

	// Called on the UI context after either flip toggle fires, so the new
	// preference can be persisted.
	OnFlipChanged func(model.FlipState)

	surface MirrorSurface
	lastSeq uint64
}

// NewMirrorPresenter wires the presenter to its collaborators.
func NewMirrorPresenter(frames FrameSource, session SessionControl, displays DisplayResolver, m *model.MirrorModel, factory SurfaceFactory, logger *slog.Logger) *MirrorPresenter {
	return &MirrorPresenter{frames: frames, session: session, displays: displays, model: m, factory: factory, logger: logger}
}

// Open creates the mirror surface over the resolved target display, closing
// any previously open surface first. Only the surface is replaced; a running
// capture session keeps streaming across the swap.
func (p *MirrorPresenter) Open(displayID int64, controlsVisible bool) {
	if p == nil || p.factory == nil || p.model == nil {
		return
	}
	p.closeSurface()

	var bounds *image.Rectangle
	if id, ok := p.displays.ResolveDefault(displayID); ok {
		if desc, found := p.displays.Lookup(id); found {
			b := desc.Bounds
			bounds = &b
			p.model.BindDisplay(id)
		}
	}
	if bounds == nil {
		p.model.UnbindDisplay()
	}
	p.model.SetControlsVisible(controlsVisible)

	p.surface = p.factory(p.toggleHorizontal, p.toggleVertical, p.Close)
	p.surface.Open(bounds, controlsVisible)
	p.model.SetOpen(true)
	p.lastSeq = 0 // re-render the current frame on the next tick
	if p.logger != nil {
		id, bound := p.model.BoundDisplay()
		p.logger.Info("mirror.open", "display", id, "bound", bound, "controls", controlsVisible)
	}
}

// Close tears down the surface and stops the owning session; closing the
// mirror always stops the feed.
func (p *MirrorPresenter) Close() {
	if p == nil {
		return
	}
	p.closeSurface()
	p.model.SetOpen(false)
	if p.session != nil {
		if err := p.session.Stop(context.Background()); err != nil && p.logger != nil {
			p.logger.Error("mirror.close", "error", err)
		}
	}
}

// Tick renders the newest relayed frame when it changed since the last tick.
// Flips are applied at render time only.
func (p *MirrorPresenter) Tick(now time.Time) {
	if p == nil || p.surface == nil || p.frames == nil {
		return
	}
	f := p.frames.Latest()
	if f == nil || f.Sequence == p.lastSeq {
		return
	}
	p.lastSeq = f.Sequence
	flip := p.model.Flip()
	p.surface.ShowFrame(images.ApplyFlips(f.Image, flip.Horizontal, flip.Vertical))
}

func (p *MirrorPresenter) closeSurface() {
	if p.surface != nil {
		p.surface.Close()
		p.surface = nil
	}
}

func (p *MirrorPresenter) toggleHorizontal() {
	flip := p.model.ToggleHorizontal()
	p.flipChanged(flip)
}

func (p *MirrorPresenter) toggleVertical() {
	flip := p.model.ToggleVertical()
	p.flipChanged(flip)
}

func (p *MirrorPresenter) flipChanged(flip model.FlipState) {
	p.lastSeq = 0 // force a re-render with the new transform
	p.Tick(time.Now())
	if p.OnFlipChanged != nil {
		p.OnFlipChanged(flip)
	}
}
