package app

import (
	"log/slog"

	"github.com/mirrorview/mirror-view-go/config"
	"github.com/mirrorview/mirror-view-go/domain/display"
	"github.com/mirrorview/mirror-view-go/domain/relay"
	"github.com/mirrorview/mirror-view-go/domain/source"
	"github.com/mirrorview/mirror-view-go/domain/stream"
	"github.com/mirrorview/mirror-view-go/ui/model"
	"github.com/mirrorview/mirror-view-go/ui/presenter"
)

// AppContainer assembles the domain services, models and presenters.
type AppContainer struct {
	Config     *config.Config
	ConfigPath string
	Logger     *slog.Logger

	Displays *display.Directory
	Catalog  *source.Catalog
	Relay    *relay.Relay
	Session  *stream.Session

	MirrorModel *model.MirrorModel
	Mirror      *presenter.MirrorPresenter
	Loop        *presenter.Loop
}

// BuildContainer constructs all components with platform-default backends.
// The mirror presenter's surface factory is supplied by the caller because
// the concrete view must be created on the UI context.
func BuildContainer(cfg *config.Config, cfgPath string, logger *slog.Logger, surfaces presenter.SurfaceFactory) *AppContainer {
	c := &AppContainer{Config: cfg, ConfigPath: cfgPath, Logger: logger}

	c.Displays = display.NewDirectory(nil, logger)
	c.Catalog = source.NewCatalog(nil, nil, cfg, logger)
	c.Relay = relay.NewRelay(logger)
	c.Session = stream.NewSession(stream.NewGrabber(logger), c.Relay, cfg, logger)

	c.MirrorModel = model.NewMirrorModel(model.FlipState{
		Horizontal: cfg.FlipHorizontal,
		Vertical:   cfg.FlipVertical,
	})
	c.Mirror = presenter.NewMirrorPresenter(c.Relay, c.Session, c.Displays, c.MirrorModel, surfaces, logger)
	c.Mirror.OnFlipChanged = func(f model.FlipState) {
		cfg.FlipHorizontal, cfg.FlipVertical = f.Horizontal, f.Vertical
		if err := cfg.Save(cfgPath); err != nil {
			logger.Error("config save", "path", cfgPath, "error", err)
		}
	}
	c.Loop = presenter.NewLoop(c.Mirror, nil)
	return c
}
