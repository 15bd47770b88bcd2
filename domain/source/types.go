package source

import (
	"context"
	"errors"
	"image"
)

// Source describes one capturable window. Instances are re-created on every
// catalog refresh and become invalid the moment the underlying window closes;
// holders must tolerate later references failing.
type Source struct {
	ID        int64 // opaque window id, unique among currently enumerable sources
	Title     string
	AppName   string // owning-application name
	OwnerPID  int
	Bounds    image.Rectangle
	Thumbnail image.Image // optional, nil when thumbnailing failed
}

// Lister queries the capture subsystem for shareable windows.
type Lister interface {
	Sources(ctx context.Context) ([]Source, error)
}

// Snapshotter takes a one-shot still image of a candidate source, used for
// selection thumbnails. The cursor is not included in snapshots.
type Snapshotter interface {
	Snapshot(ctx context.Context, src Source) (image.Image, error)
}

// ErrUnsupported is returned by platform backends that cannot enumerate
// windows on this system.
var ErrUnsupported = errors.New("source: window enumeration not supported on this platform")

// ErrSourceNotFound marks a source that is no longer capturable, typically
// because the window closed between enumeration and use.
var ErrSourceNotFound = errors.New("source: source no longer available")
