package stream

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"sync"
	"time"

	"github.com/disintegration/imaging"
	"github.com/vova616/screenshot"

	"github.com/mirrorview/mirror-view-go/domain/source"
)

// Grabber is the built-in capture subscriber. It polls the source's screen
// bounds at the configured frame interval on a dedicated goroutine and
// upscales to the configured output size.
type Grabber struct {
	logger *slog.Logger
}

func NewGrabber(logger *slog.Logger) *Grabber { return &Grabber{logger: logger} }

var _ Subscriber = (*Grabber)(nil)

func (g *Grabber) Subscribe(ctx context.Context, src source.Source, cfg Configuration, deliver func(RawFrame)) (Subscription, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	// Probe grab up front so a vanished window fails the start call instead
	// of producing a silent dead stream.
	if _, err := screenshot.CaptureRect(src.Bounds); err != nil {
		return nil, fmt.Errorf("stream: subscribe %d: %w: %v", src.ID, source.ErrSourceNotFound, err)
	}
	sub := &grabSubscription{done: make(chan struct{}), stopped: make(chan struct{})}
	go g.loop(sub, src, cfg, deliver)
	return sub, nil
}

func (g *Grabber) loop(sub *grabSubscription, src source.Source, cfg Configuration, deliver func(RawFrame)) {
	defer close(sub.stopped)
	ticker := time.NewTicker(cfg.FrameInterval)
	defer ticker.Stop()
	for {
		select {
		case <-sub.done:
			return
		case <-ticker.C:
			img, err := screenshot.CaptureRect(src.Bounds)
			if err != nil {
				// The window may be mid-move or gone; skip this tick.
				if g.logger != nil {
					g.logger.Debug("stream.grab", "source", src.ID, "error", err)
				}
				continue
			}
			deliver(rawFromRGBA(img, cfg))
		}
	}
}

// rawFromRGBA converts a grabbed image into a RawFrame, upscaling when the
// configured output size differs from the native grab.
func rawFromRGBA(img *image.RGBA, cfg Configuration) RawFrame {
	if img == nil {
		return RawFrame{}
	}
	b := img.Bounds()
	if b.Dx() != cfg.Width || b.Dy() != cfg.Height {
		up := imaging.Resize(img, cfg.Width, cfg.Height, imaging.Lanczos)
		return RawFrame{Pix: up.Pix, Width: cfg.Width, Height: cfg.Height, Stride: up.Stride, Format: FormatRGBA}
	}
	return RawFrame{Pix: img.Pix, Width: b.Dx(), Height: b.Dy(), Stride: img.Stride, Format: FormatRGBA}
}

type grabSubscription struct {
	once    sync.Once
	done    chan struct{}
	stopped chan struct{} // closed when the grab loop has exited
}

// Close stops the grab loop and waits for it to exit, so no delivery happens
// after Close returns.
func (s *grabSubscription) Close(ctx context.Context) error {
	s.once.Do(func() { close(s.done) })
	select {
	case <-s.stopped:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
