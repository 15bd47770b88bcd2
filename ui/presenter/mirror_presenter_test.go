package presenter

import (
	"context"
	"image"
	"testing"
	"time"

	"github.com/mirrorview/mirror-view-go/domain/display"
	"github.com/mirrorview/mirror-view-go/domain/relay"
	"github.com/mirrorview/mirror-view-go/domain/stream"
	"github.com/mirrorview/mirror-view-go/ui/model"
)

type mockSession struct{ stops int }

func (s *mockSession) Stop(ctx context.Context) error { s.stops++; return nil }

var _ SessionControl = (*mockSession)(nil)

type mockDisplays struct {
	displays []display.Descriptor
}

func (d *mockDisplays) ResolveDefault(prev int64) (int64, bool) {
	for _, disp := range d.displays {
		if disp.ID == prev {
			return prev, true
		}
	}
	for _, disp := range d.displays {
		if !disp.Primary {
			return disp.ID, true
		}
	}
	if len(d.displays) > 0 {
		return d.displays[0].ID, true
	}
	return 0, false
}

func (d *mockDisplays) Lookup(id int64) (display.Descriptor, bool) {
	for _, disp := range d.displays {
		if disp.ID == id {
			return disp, true
		}
	}
	return display.Descriptor{}, false
}

var _ DisplayResolver = (*mockDisplays)(nil)

type mockSurface struct {
	opened     int
	closed     int
	bounds     *image.Rectangle
	controls   bool
	lastFrame  image.Image
	showCalls  int
}

func (s *mockSurface) Open(bounds *image.Rectangle, controlsVisible bool) {
	s.opened++
	s.bounds = bounds
	s.controls = controlsVisible
}
func (s *mockSurface) ShowFrame(img image.Image) { s.showCalls++; s.lastFrame = img }
func (s *mockSurface) Close()                    { s.closed++ }

var _ MirrorSurface = (*mockSurface)(nil)

type surfaceRecorder struct {
	surfaces  []*mockSurface
	onToggleH func()
	onToggleV func()
	onClose   func()
}

func (r *surfaceRecorder) factory(onToggleH, onToggleV, onClose func()) MirrorSurface {
	r.onToggleH, r.onToggleV, r.onClose = onToggleH, onToggleV, onClose
	s := &mockSurface{}
	r.surfaces = append(r.surfaces, s)
	return s
}

func newPresenter(t *testing.T, displays []display.Descriptor) (*MirrorPresenter, *relay.Relay, *mockSession, *surfaceRecorder, *model.MirrorModel) {
	t.Helper()
	rl := relay.NewRelay(nil)
	sess := &mockSession{}
	rec := &surfaceRecorder{}
	m := model.NewMirrorModel(model.FlipState{})
	p := NewMirrorPresenter(rl, sess, &mockDisplays{displays: displays}, m, rec.factory, nil)
	return p, rl, sess, rec, m
}

func publish(rl *relay.Relay, r, g, b byte) {
	rl.OnRawFrame(stream.RawFrame{Pix: []byte{r, g, b, 0xFF}, Width: 1, Height: 1, Stride: 4, Format: stream.FormatRGBA})
}

func TestOpen_ClosesPreviousSurface(t *testing.T) {
	p, _, sess, rec, _ := newPresenter(t, nil)
	p.Open(0, true)
	p.Open(0, true)
	if len(rec.surfaces) != 2 {
		t.Fatalf("surfaces created = %d, want 2", len(rec.surfaces))
	}
	if rec.surfaces[0].closed != 1 {
		t.Fatalf("first surface closed %d times, want 1", rec.surfaces[0].closed)
	}
	if sess.stops != 0 {
		t.Fatalf("replacing the surface must not stop the session (stops=%d)", sess.stops)
	}
}

func TestOpen_BindsResolvedDisplay(t *testing.T) {
	displays := []display.Descriptor{
		{ID: 10, Primary: true, Bounds: image.Rect(0, 0, 1920, 1080)},
		{ID: 20, Primary: false, Bounds: image.Rect(1920, 0, 3840, 1080)},
	}
	p, _, _, rec, m := newPresenter(t, displays)
	p.Open(99, false) // stale id resolves to the non-primary display
	if id, ok := m.BoundDisplay(); !ok || id != 20 {
		t.Fatalf("bound display = %d ok=%v, want 20 true", id, ok)
	}
	s := rec.surfaces[0]
	if s.bounds == nil || *s.bounds != image.Rect(1920, 0, 3840, 1080) {
		t.Fatalf("surface bounds = %v, want the side display's bounds", s.bounds)
	}
	if s.controls {
		t.Fatalf("controls should be hidden for the dedicated output case")
	}
}

func TestOpen_NoDisplaysFallsBackToCenteredDefault(t *testing.T) {
	p, _, _, rec, m := newPresenter(t, nil)
	p.Open(0, true)
	if rec.surfaces[0].bounds != nil {
		t.Fatalf("bounds = %v, want nil (centered default)", rec.surfaces[0].bounds)
	}
	if _, ok := m.BoundDisplay(); ok {
		t.Fatalf("no display should be bound")
	}
}

func TestClose_StopsSession(t *testing.T) {
	p, _, sess, rec, m := newPresenter(t, nil)
	p.Open(0, true)
	p.Close()
	if rec.surfaces[0].closed != 1 {
		t.Fatalf("surface closed %d times, want 1", rec.surfaces[0].closed)
	}
	if sess.stops != 1 {
		t.Fatalf("session stops = %d, want 1 (close couples capture lifetime)", sess.stops)
	}
	if m.Open() {
		t.Fatalf("model should report closed")
	}
}

func TestTick_RendersNewFramesOnly(t *testing.T) {
	p, rl, _, rec, _ := newPresenter(t, nil)
	p.Open(0, true)
	s := rec.surfaces[0]

	p.Tick(time.Now())
	if s.showCalls != 0 {
		t.Fatalf("no frame published yet, showCalls = %d", s.showCalls)
	}

	publish(rl, 9, 0, 0)
	p.Tick(time.Now())
	if s.showCalls != 1 {
		t.Fatalf("showCalls = %d, want 1", s.showCalls)
	}
	p.Tick(time.Now()) // same sequence, no re-render
	if s.showCalls != 1 {
		t.Fatalf("unchanged frame re-rendered, showCalls = %d", s.showCalls)
	}

	publish(rl, 10, 0, 0)
	p.Tick(time.Now())
	if s.showCalls != 2 {
		t.Fatalf("showCalls = %d, want 2", s.showCalls)
	}
}

func TestToggle_AppliesFlipAtRenderTime(t *testing.T) {
	p, rl, _, rec, m := newPresenter(t, nil)
	p.Open(0, true)
	s := rec.surfaces[0]

	// 2x1 frame: red on the left, green on the right.
	rl.OnRawFrame(stream.RawFrame{
		Pix:    []byte{0xFF, 0, 0, 0xFF, 0, 0xFF, 0, 0xFF},
		Width:  2,
		Height: 1,
		Stride: 8,
		Format: stream.FormatRGBA,
	})
	p.Tick(time.Now())

	var persisted []model.FlipState
	p.OnFlipChanged = func(f model.FlipState) { persisted = append(persisted, f) }
	rec.onToggleH() // toggling re-renders the current frame immediately

	if s.showCalls != 2 {
		t.Fatalf("showCalls = %d, want 2 after toggle", s.showCalls)
	}
	r, _, _, _ := s.lastFrame.At(1, 0).RGBA()
	if r == 0 {
		t.Fatalf("red pixel should be on the right after a horizontal flip")
	}
	if !m.Flip().Horizontal {
		t.Fatalf("model flip state not updated")
	}
	if len(persisted) != 1 || !persisted[0].Horizontal {
		t.Fatalf("flip change not propagated: %+v", persisted)
	}
}

func TestUserClose_ReachesPresenterClose(t *testing.T) {
	p, _, sess, rec, _ := newPresenter(t, nil)
	p.Open(0, true)
	rec.onClose() // window-system close button
	if sess.stops != 1 {
		t.Fatalf("session stops = %d, want 1", sess.stops)
	}
	if rec.surfaces[0].closed != 1 {
		t.Fatalf("surface closed %d times, want 1", rec.surfaces[0].closed)
	}
}
