package source

import (
	"context"
	"image"
	"log/slog"
	"os"

	"github.com/disintegration/imaging"
	"golang.org/x/sync/errgroup"

	"github.com/mirrorview/mirror-view-go/config"
)

// Thumbnail grabs run concurrently but bounded; each one is a full system
// snapshot query.
const maxConcurrentSnapshots = 4

// Catalog enumerates capturable windows and decorates each candidate with a
// best-effort thumbnail. Use NewCatalog to construct an instance.
type Catalog struct {
	lister  Lister
	snap    Snapshotter
	logger  *slog.Logger
	selfPID int
	minSize int
	thumbW  int
	thumbH  int
}

// NewCatalog constructs a catalog over the given backends. Nil backends fall
// back to the platform defaults.
func NewCatalog(lister Lister, snap Snapshotter, cfg *config.Config, logger *slog.Logger) *Catalog {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if lister == nil {
		lister = defaultLister()
	}
	if snap == nil {
		snap = defaultSnapshotter()
	}
	return &Catalog{
		lister:  lister,
		snap:    snap,
		logger:  logger,
		selfPID: os.Getpid(),
		minSize: cfg.MinSourceSize,
		thumbW:  cfg.ThumbWidth,
		thumbH:  cfg.ThumbHeight,
	}
}

// List enumerates capturable windows. Sources at or below the minimum size on
// either axis and windows owned by this process are excluded. A failed
// underlying listing query is logged and yields an empty result; a failed
// thumbnail only leaves that entry's Thumbnail nil.
func (c *Catalog) List(ctx context.Context) []Source {
	raw, err := c.lister.Sources(ctx)
	if err != nil {
		if c.logger != nil {
			c.logger.Error("catalog.list", "error", err)
		}
		return nil
	}

	sources := make([]Source, 0, len(raw))
	for _, src := range raw {
		if src.Bounds.Dx() <= c.minSize || src.Bounds.Dy() <= c.minSize {
			continue
		}
		if src.OwnerPID == c.selfPID {
			continue
		}
		sources = append(sources, src)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentSnapshots)
	for i := range sources {
		g.Go(func() error {
			still, err := c.snap.Snapshot(gctx, sources[i])
			if err != nil {
				if c.logger != nil {
					c.logger.Debug("catalog.thumbnail", "id", sources[i].ID, "title", sources[i].Title, "error", err)
				}
				return nil // best-effort: keep the entry without a thumbnail
			}
			sources[i].Thumbnail = c.fitThumbnail(still)
			return nil
		})
	}
	_ = g.Wait()

	if c.logger != nil {
		c.logger.Debug("catalog.list", "candidates", len(raw), "listed", len(sources))
	}
	return sources
}

func (c *Catalog) fitThumbnail(still image.Image) image.Image {
	if still == nil {
		return nil
	}
	return imaging.Fit(still, c.thumbW, c.thumbH, imaging.Box)
}
