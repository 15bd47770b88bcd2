package main

import (
	"github.com/mirrorview/mirror-view-go/app"
	"github.com/mirrorview/mirror-view-go/config"
)

const configPath = "mirror-view.json"

func main() {
	// Config from file, falling back to defaults when absent.
	cfg, err := config.Load(configPath)

	// Set up logger
	logger := NewLogger(cfg.Debug)
	if err != nil {
		logger.Error("config load", "path", configPath, "error", err)
	}

	application := app.NewApp("Mirror View", cfg, configPath, logger)
	application.Start()
}
