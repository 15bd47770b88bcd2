package source

import (
	"context"
	"fmt"
	"image"

	"github.com/vova616/screenshot"
)

// screenSnapshotter takes a one-shot still of a source by grabbing its screen
// bounds. The grab does not include the cursor.
type screenSnapshotter struct{}

func defaultSnapshotter() Snapshotter { return screenSnapshotter{} }

func (screenSnapshotter) Snapshot(ctx context.Context, src Source) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if src.Bounds.Empty() {
		return nil, fmt.Errorf("source: empty bounds for %d", src.ID)
	}
	img, err := screenshot.CaptureRect(src.Bounds)
	if err != nil {
		return nil, fmt.Errorf("source: snapshot %d: %w", src.ID, err)
	}
	return img, nil
}
