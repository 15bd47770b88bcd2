package display

import (
	"errors"
	"image"
	"testing"
)

type fakeEnum struct {
	displays []Descriptor
	err      error
	calls    int
}

func (f *fakeEnum) Displays() ([]Descriptor, error) {
	f.calls++
	return f.displays, f.err
}

var _ Enumerator = (*fakeEnum)(nil)

func twoDisplays() []Descriptor {
	return []Descriptor{
		{ID: 10, Name: "Main", Primary: true, Bounds: image.Rect(0, 0, 1920, 1080)},
		{ID: 20, Name: "Side", Primary: false, Bounds: image.Rect(1920, 0, 3840, 1080)},
	}
}

func TestResolveDefault_PreservesExistingSelection(t *testing.T) {
	d := NewDirectory(&fakeEnum{displays: twoDisplays()}, nil)
	id, ok := d.ResolveDefault(10)
	if !ok || id != 10 {
		t.Fatalf("resolve(10) = %d ok=%v, want 10 true", id, ok)
	}
}

func TestResolveDefault_PrefersNonPrimary(t *testing.T) {
	d := NewDirectory(&fakeEnum{displays: twoDisplays()}, nil)
	id, ok := d.ResolveDefault(99) // stale id
	if !ok || id != 20 {
		t.Fatalf("resolve(99) = %d ok=%v, want 20 true", id, ok)
	}
}

func TestResolveDefault_FallsBackToPrimary(t *testing.T) {
	only := []Descriptor{{ID: 10, Primary: true, Bounds: image.Rect(0, 0, 800, 600)}}
	d := NewDirectory(&fakeEnum{displays: only}, nil)
	id, ok := d.ResolveDefault(99)
	if !ok || id != 10 {
		t.Fatalf("resolve(99) = %d ok=%v, want 10 true", id, ok)
	}
}

func TestResolveDefault_NoneAttached(t *testing.T) {
	d := NewDirectory(&fakeEnum{}, nil)
	if _, ok := d.ResolveDefault(10); ok {
		t.Fatalf("expected ok=false with no displays")
	}
}

func TestList_EnumerationFailureYieldsEmpty(t *testing.T) {
	d := NewDirectory(&fakeEnum{err: errors.New("query failed")}, nil)
	if got := d.List(); len(got) != 0 {
		t.Fatalf("expected empty list, got %d", len(got))
	}
}

func TestNotifyChanged_FansOutFreshList(t *testing.T) {
	enum := &fakeEnum{displays: twoDisplays()}
	d := NewDirectory(enum, nil)
	var seen []Descriptor
	d.AddListener(func(displays []Descriptor) { seen = displays })

	enum.displays = enum.displays[:1] // a display was unplugged
	d.NotifyChanged()
	if len(seen) != 1 || seen[0].ID != 10 {
		t.Fatalf("listener saw %+v, want single display 10", seen)
	}
}

func TestLookup(t *testing.T) {
	d := NewDirectory(&fakeEnum{displays: twoDisplays()}, nil)
	d.List()
	disp, ok := d.Lookup(20)
	if !ok || disp.Name != "Side" {
		t.Fatalf("lookup(20) = %+v ok=%v", disp, ok)
	}
	if _, ok := d.Lookup(99); ok {
		t.Fatalf("lookup(99) should miss")
	}
}
