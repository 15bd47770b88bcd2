// Package relay bridges raw captured frames into renderable images with
// latest-wins semantics: only the most recent successfully decoded frame is
// kept for the presentation layer.
package relay

import (
	"image"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/mirrorview/mirror-view-go/domain/stream"
)

const statsLogEvery = 300 // ~5s of decode at 60 fps

// MirroredFrame carries one decoded, displayable frame.
type MirroredFrame struct {
	Image     *image.RGBA
	Sequence  uint64
	DecodedAt time.Time
}

// RelayStats summarises relay behaviour for instrumentation.
type RelayStats struct {
	Decoded  uint64
	Dropped  uint64
	Sequence uint64
}

// Relay converts raw frames on the delivery goroutine and republishes the
// newest one in a single slot. A slow presentation context observes frames
// being skipped, never a growing queue.
type Relay struct {
	logger  *slog.Logger
	latest  atomic.Pointer[MirroredFrame]
	seq     atomic.Uint64
	decoded atomic.Uint64
	dropped atomic.Uint64
	notify  chan struct{}
}

// NewRelay constructs a relay. Updates() carries a change notification with
// capacity one; consumers may also simply poll Latest().
func NewRelay(logger *slog.Logger) *Relay {
	return &Relay{logger: logger, notify: make(chan struct{}, 1)}
}

var _ stream.FrameSink = (*Relay)(nil)

// OnRawFrame decodes f synchronously and publishes the result. It runs on the
// background delivery path and never blocks on the presentation context. A
// frame that fails to decode is dropped silently; the prior published frame
// stays in place.
func (r *Relay) OnRawFrame(f stream.RawFrame) {
	img := decode(f)
	if img == nil {
		r.dropped.Add(1)
		return
	}
	frame := &MirroredFrame{Image: img, Sequence: r.seq.Add(1), DecodedAt: time.Now()}
	r.latest.Store(frame)
	n := r.decoded.Add(1)

	// Fire-and-forget hand-off signal; dropping it is fine because the slot
	// already holds the newest frame.
	select {
	case r.notify <- struct{}{}:
	default:
	}

	if n%statsLogEvery == 0 {
		r.logStats()
	}
}

// Latest returns the most recently published frame, or nil when none is
// published.
func (r *Relay) Latest() *MirroredFrame { return r.latest.Load() }

// Updates returns the change-notification channel. At most one signal is
// pending at a time.
func (r *Relay) Updates() <-chan struct{} { return r.notify }

// Reset clears the published frame. Called by the owning session on stop so
// a closed stream leaves nothing behind.
func (r *Relay) Reset() {
	r.latest.Store(nil)
	select {
	case <-r.notify:
	default:
	}
}

// Stats returns decode/drop counters.
func (r *Relay) Stats() RelayStats {
	return RelayStats{Decoded: r.decoded.Load(), Dropped: r.dropped.Load(), Sequence: r.seq.Load()}
}

func (r *Relay) logStats() {
	if r.logger == nil {
		return
	}
	r.logger.Debug("relay.stats",
		"decoded", r.decoded.Load(),
		"dropped", r.dropped.Load(),
		"sequence", r.seq.Load(),
	)
}

// decode converts a raw frame into an RGBA image, or returns nil when the
// frame has no renderable extent or an inconsistent buffer.
func decode(f stream.RawFrame) *image.RGBA {
	if f.Empty() {
		return nil
	}
	if f.Stride < f.Width*4 {
		return nil
	}
	if len(f.Pix) < (f.Height-1)*f.Stride+f.Width*4 {
		return nil
	}

	dst := image.NewRGBA(image.Rect(0, 0, f.Width, f.Height))
	switch f.Format {
	case stream.FormatRGBA:
		for y := 0; y < f.Height; y++ {
			src := f.Pix[y*f.Stride : y*f.Stride+f.Width*4]
			copy(dst.Pix[y*dst.Stride:y*dst.Stride+f.Width*4], src)
		}
	case stream.FormatBGRA:
		for y := 0; y < f.Height; y++ {
			srcRow := f.Pix[y*f.Stride : y*f.Stride+f.Width*4]
			dstRow := dst.Pix[y*dst.Stride : y*dst.Stride+f.Width*4]
			for x := 0; x < f.Width; x++ {
				i := x * 4
				dstRow[i+0] = srcRow[i+2]
				dstRow[i+1] = srcRow[i+1]
				dstRow[i+2] = srcRow[i+0]
				dstRow[i+3] = 0xFF
			}
		}
	default:
		return nil
	}
	return dst
}
