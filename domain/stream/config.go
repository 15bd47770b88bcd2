package stream

import (
	"fmt"
	"image"
	"time"

	"github.com/mirrorview/mirror-view-go/config"
)

// Configuration describes one capture subscription.
type Configuration struct {
	Width         int           // output pixel width
	Height        int           // output pixel height
	FrameInterval time.Duration // minimum interval between frames (rate cap)
	PixelFormat   PixelFormat
	ShowCursor    bool
	QueueDepth    int // frames the delivery path may hold before oldest-frame displacement
}

// DeriveConfiguration builds the subscription configuration for a source with
// the given logical bounds. Output dimensions are the bounds scaled by the
// configured factor so the mirror renders sharper than native resolution.
func DeriveConfiguration(bounds image.Rectangle, cfg *config.Config) Configuration {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	_ = cfg.Validate()
	return Configuration{
		Width:         bounds.Dx() * cfg.ScaleFactor,
		Height:        bounds.Dy() * cfg.ScaleFactor,
		FrameInterval: time.Second / time.Duration(cfg.FrameRateCap),
		PixelFormat:   FormatRGBA,
		ShowCursor:    cfg.ShowCursor,
		QueueDepth:    cfg.QueueDepth,
	}
}

// Validate reports a descriptive error when the configuration violates its
// invariants (positive dimensions, interval and queue depth).
func (c Configuration) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("stream: invalid output size %dx%d", c.Width, c.Height)
	}
	if c.FrameInterval <= 0 {
		return fmt.Errorf("stream: invalid frame interval %v", c.FrameInterval)
	}
	if c.QueueDepth <= 0 {
		return fmt.Errorf("stream: invalid queue depth %d", c.QueueDepth)
	}
	return nil
}
