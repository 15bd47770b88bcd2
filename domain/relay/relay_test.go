package relay

import (
	"image/color"
	"testing"

	"github.com/mirrorview/mirror-view-go/domain/stream"
)

func rgbaFrame(r, g, b byte) stream.RawFrame {
	return stream.RawFrame{Pix: []byte{r, g, b, 0xFF}, Width: 1, Height: 1, Stride: 4, Format: stream.FormatRGBA}
}

func TestOnRawFrame_PublishesLatest(t *testing.T) {
	rl := NewRelay(nil)
	if rl.Latest() != nil {
		t.Fatalf("fresh relay should publish nothing")
	}
	rl.OnRawFrame(rgbaFrame(10, 20, 30))
	f := rl.Latest()
	if f == nil || f.Sequence != 1 {
		t.Fatalf("latest = %+v, want sequence 1", f)
	}
	if got := f.Image.RGBAAt(0, 0); got != (color.RGBA{10, 20, 30, 0xFF}) {
		t.Fatalf("pixel = %+v", got)
	}
}

func TestOnRawFrame_MonotonicReplacement(t *testing.T) {
	rl := NewRelay(nil)
	rl.OnRawFrame(rgbaFrame(1, 0, 0))
	rl.OnRawFrame(rgbaFrame(2, 0, 0))
	rl.OnRawFrame(rgbaFrame(3, 0, 0))
	f := rl.Latest()
	if f.Sequence != 3 || f.Image.Pix[0] != 3 {
		t.Fatalf("latest = seq %d pix %d, want newest frame", f.Sequence, f.Image.Pix[0])
	}
}

func TestOnRawFrame_BGRASwizzle(t *testing.T) {
	rl := NewRelay(nil)
	rl.OnRawFrame(stream.RawFrame{
		Pix: []byte{0x30, 0x20, 0x10, 0x00}, // B G R A, alpha forced opaque
		Width: 1, Height: 1, Stride: 4, Format: stream.FormatBGRA,
	})
	f := rl.Latest()
	if f == nil {
		t.Fatalf("bgra frame not published")
	}
	if got := f.Image.RGBAAt(0, 0); got != (color.RGBA{0x10, 0x20, 0x30, 0xFF}) {
		t.Fatalf("pixel = %+v, want swizzled RGBA", got)
	}
}

func TestOnRawFrame_DecodeFailureRetainsPrior(t *testing.T) {
	rl := NewRelay(nil)
	rl.OnRawFrame(rgbaFrame(7, 0, 0))
	prior := rl.Latest()

	rl.OnRawFrame(stream.RawFrame{})                                                     // empty extent
	rl.OnRawFrame(stream.RawFrame{Pix: []byte{1, 2}, Width: 2, Height: 2, Stride: 8})    // short buffer
	rl.OnRawFrame(stream.RawFrame{Pix: make([]byte, 16), Width: 2, Height: 2, Stride: 4}) // bad stride

	if got := rl.Latest(); got != prior {
		t.Fatalf("published frame changed after failed decodes")
	}
	if s := rl.Stats(); s.Dropped != 3 || s.Decoded != 1 {
		t.Fatalf("stats = %+v, want 1 decoded 3 dropped", s)
	}
}

func TestUpdates_SignalIsFireAndForget(t *testing.T) {
	rl := NewRelay(nil)
	rl.OnRawFrame(rgbaFrame(1, 0, 0))
	rl.OnRawFrame(rgbaFrame(2, 0, 0)) // second signal dropped, not blocked

	select {
	case <-rl.Updates():
	default:
		t.Fatalf("expected a pending update signal")
	}
	select {
	case <-rl.Updates():
		t.Fatalf("at most one signal may be pending")
	default:
	}
}

func TestReset_ClearsPublishedFrame(t *testing.T) {
	rl := NewRelay(nil)
	rl.OnRawFrame(rgbaFrame(1, 0, 0))
	rl.Reset()
	if rl.Latest() != nil {
		t.Fatalf("reset should clear the published frame")
	}
	select {
	case <-rl.Updates():
		t.Fatalf("reset should drain the pending signal")
	default:
	}
}
