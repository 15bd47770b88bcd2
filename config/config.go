package config

import (
	"encoding/json"
	"os"
)

// Config holds runtime configuration for the capture and mirror pipeline.
// Fields may be loaded from a JSON file; operator-facing preferences (flip
// state, chosen display) are written back on change.
type Config struct {
	Debug bool `json:"debug"`

	// Capture parameters
	ScaleFactor   int `json:"scale_factor"`    // output upscale relative to source bounds
	FrameRateCap  int `json:"frame_rate_cap"`  // maximum frames per second delivered
	QueueDepth    int `json:"queue_depth"`     // frames the delivery path may hold
	MinSourceSize int `json:"min_source_size"` // windows at or below this size are not listed

	// Thumbnail parameters
	ThumbWidth  int `json:"thumb_width"`
	ThumbHeight int `json:"thumb_height"`

	ShowCursor bool `json:"show_cursor"`

	// Mirror preferences (persisted across runs)
	FlipHorizontal bool  `json:"flip_horizontal"`
	FlipVertical   bool  `json:"flip_vertical"`
	DisplayID      int64 `json:"display_id"` // 0 means no display bound yet
}

// DefaultConfig returns a Config populated with standard defaults.
func DefaultConfig() *Config {
	return &Config{
		Debug:          false,
		ScaleFactor:    2,
		FrameRateCap:   60,
		QueueDepth:     5,
		MinSourceSize:  100,
		ThumbWidth:     400,
		ThumbHeight:    300,
		ShowCursor:     false,
		FlipHorizontal: true,
		FlipVertical:   false,
		DisplayID:      0,
	}
}

// Validate clamps/normalizes values to safe ranges.
func (c *Config) Validate() error {
	if c.ScaleFactor <= 0 {
		c.ScaleFactor = 2
	}
	if c.ScaleFactor > 4 {
		c.ScaleFactor = 4
	}
	if c.FrameRateCap <= 0 {
		c.FrameRateCap = 60
	}
	if c.FrameRateCap > 240 {
		c.FrameRateCap = 240
	}
	if c.QueueDepth <= 0 {
		c.QueueDepth = 5
	}
	if c.MinSourceSize < 0 {
		c.MinSourceSize = 100
	}
	if c.ThumbWidth <= 0 {
		c.ThumbWidth = 400
	}
	if c.ThumbHeight <= 0 {
		c.ThumbHeight = 300
	}
	return nil
}

// Load attempts to read configuration from the given JSON file path. If the file does not
// exist it returns DefaultConfig(). On JSON error it returns defaults with the error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	defer f.Close()
	dec := json.NewDecoder(f)
	if err := dec.Decode(cfg); err != nil {
		return cfg, err
	}
	_ = cfg.Validate()
	return cfg, nil
}

// Save writes the configuration to the given path in JSON format.
func (c *Config) Save(path string) error {
	_ = c.Validate()
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(c)
}
