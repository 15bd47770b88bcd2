package source

import (
	"context"
	"errors"
	"image"
	"os"
	"testing"

	"github.com/mirrorview/mirror-view-go/config"
)

type fakeLister struct {
	sources []Source
	err     error
}

func (f *fakeLister) Sources(ctx context.Context) ([]Source, error) { return f.sources, f.err }

var _ Lister = (*fakeLister)(nil)

type fakeSnapshotter struct {
	failFor map[int64]bool
	calls   int
}

func (f *fakeSnapshotter) Snapshot(ctx context.Context, src Source) (image.Image, error) {
	f.calls++
	if f.failFor[src.ID] {
		return nil, errors.New("snapshot denied")
	}
	return image.NewRGBA(image.Rect(0, 0, 800, 600)), nil
}

var _ Snapshotter = (*fakeSnapshotter)(nil)

func TestList_FiltersSmallSources(t *testing.T) {
	lister := &fakeLister{sources: []Source{
		{ID: 1, Title: "Editor", Bounds: image.Rect(0, 0, 640, 480)},
		{ID: 2, Title: "Tooltip", Bounds: image.Rect(0, 0, 50, 50)},
	}}
	c := NewCatalog(lister, &fakeSnapshotter{}, config.DefaultConfig(), nil)
	got := c.List(context.Background())
	if len(got) != 1 || got[0].ID != 1 {
		t.Fatalf("list = %+v, want only id 1", got)
	}
}

func TestList_ExcludesBoundarySize(t *testing.T) {
	lister := &fakeLister{sources: []Source{
		{ID: 1, Bounds: image.Rect(0, 0, 100, 480)},
		{ID: 2, Bounds: image.Rect(0, 0, 640, 100)},
		{ID: 3, Bounds: image.Rect(0, 0, 101, 101)},
	}}
	c := NewCatalog(lister, &fakeSnapshotter{}, config.DefaultConfig(), nil)
	got := c.List(context.Background())
	if len(got) != 1 || got[0].ID != 3 {
		t.Fatalf("list = %+v, want only id 3 (strictly > 100 on both axes)", got)
	}
}

func TestList_ExcludesOwnWindows(t *testing.T) {
	lister := &fakeLister{sources: []Source{
		{ID: 1, Title: "Mirror View", OwnerPID: os.Getpid(), Bounds: image.Rect(0, 0, 640, 480)},
		{ID: 2, Title: "Other", OwnerPID: os.Getpid() + 1, Bounds: image.Rect(0, 0, 640, 480)},
	}}
	c := NewCatalog(lister, &fakeSnapshotter{}, config.DefaultConfig(), nil)
	got := c.List(context.Background())
	if len(got) != 1 || got[0].ID != 2 {
		t.Fatalf("list = %+v, want only id 2", got)
	}
}

func TestList_ThumbnailFailureIsIsolated(t *testing.T) {
	lister := &fakeLister{sources: []Source{
		{ID: 1, Bounds: image.Rect(0, 0, 640, 480)},
		{ID: 2, Bounds: image.Rect(0, 0, 640, 480)},
	}}
	snap := &fakeSnapshotter{failFor: map[int64]bool{1: true}}
	c := NewCatalog(lister, snap, config.DefaultConfig(), nil)
	got := c.List(context.Background())
	if len(got) != 2 {
		t.Fatalf("list = %d entries, want 2", len(got))
	}
	byID := map[int64]Source{}
	for _, s := range got {
		byID[s.ID] = s
	}
	if byID[1].Thumbnail != nil {
		t.Fatalf("source 1 should have nil thumbnail after failure")
	}
	if byID[2].Thumbnail == nil {
		t.Fatalf("source 2 should have a thumbnail")
	}
}

func TestList_ThumbnailsFitConfiguredSize(t *testing.T) {
	lister := &fakeLister{sources: []Source{{ID: 1, Bounds: image.Rect(0, 0, 640, 480)}}}
	cfg := config.DefaultConfig()
	c := NewCatalog(lister, &fakeSnapshotter{}, cfg, nil)
	got := c.List(context.Background())
	if len(got) != 1 || got[0].Thumbnail == nil {
		t.Fatalf("expected one thumbnailed source, got %+v", got)
	}
	b := got[0].Thumbnail.Bounds()
	if b.Dx() > cfg.ThumbWidth || b.Dy() > cfg.ThumbHeight {
		t.Fatalf("thumbnail %dx%d exceeds %dx%d", b.Dx(), b.Dy(), cfg.ThumbWidth, cfg.ThumbHeight)
	}
}

func TestList_ListingFailureYieldsEmpty(t *testing.T) {
	lister := &fakeLister{err: errors.New("shareable content query failed")}
	snap := &fakeSnapshotter{}
	c := NewCatalog(lister, snap, config.DefaultConfig(), nil)
	if got := c.List(context.Background()); len(got) != 0 {
		t.Fatalf("expected empty result, got %d", len(got))
	}
	if snap.calls != 0 {
		t.Fatalf("no thumbnails should be attempted after a listing failure")
	}
}
