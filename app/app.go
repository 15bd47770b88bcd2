package app

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	. "modernc.org/tk9.0"

	"github.com/mirrorview/mirror-view-go/config"
	"github.com/mirrorview/mirror-view-go/domain/source"
	"github.com/mirrorview/mirror-view-go/ui/theme"
	"github.com/mirrorview/mirror-view-go/ui/view"
)

const (
	// UI poll interval; slightly above the 60 Hz frame cap so the mirror
	// label never lags the relay by more than one frame.
	tick = 16 * time.Millisecond
)

type app struct {
	title   string
	cfg     *config.Config
	cfgPath string
	logger  *slog.Logger

	container *AppContainer
	manager   *Manager

	afterID      string
	stateLabel   *LabelWidget
	sourceSelect *TComboboxWidget
	sources      []source.Source
}

// NewApp configures the root window and wires the close protocol.
func NewApp(title string, cfg *config.Config, cfgPath string, logger *slog.Logger) *app {
	a := &app{title: title, cfg: cfg, cfgPath: cfgPath, logger: logger}
	App.WmTitle(title)
	WmProtocol(App, "WM_DELETE_WINDOW", a.exitHandler)
	WmGeometry(App, "380x230+100+100")
	return a
}

// Start builds the container and picker widgets, kicks off the update loop
// and enters the Tk main loop. Blocks until the application exits.
func (a *app) Start() {
	theme.InitStyles()

	a.container = BuildContainer(a.cfg, a.cfgPath, a.logger, view.NewMirrorWindowFactory(a.logger))
	a.manager = NewManager(a.container)
	a.container.Loop.Schedule = a.scheduleUpdate

	a.stateLabel = Label(Txt("State: idle"), Borderwidth(1), Relief("ridge"))
	Pack(a.stateLabel, Padx("1m"), Pady("1m"))

	a.sourceSelect = TCombobox(Values([]string{"<none>"}), Width(36))
	Pack(a.sourceSelect, Padx("1m"), Pady("1m"))
	a.sourceSelect.Current(0)

	Pack(Button(Txt("Refresh Sources"), Command(a.refreshSources)), Padx("1m"), Pady("0.4m"))
	Pack(Button(Txt("Start Mirror"), Style(theme.StyleToggleButton), Command(a.startMirror)), Padx("1m"), Pady("0.4m"))
	Pack(Button(Txt("Stop"), Command(a.stopMirror)), Padx("1m"), Pady("0.4m"))
	Pack(Button(Txt("Exit"), Style(theme.StyleDangerButton), Command(a.exitHandler)), Padx("1m"), Pady("0.4m"))

	a.refreshSources()
	a.scheduleUpdate()

	App.Wait()
}

// update runs on Tk's event loop. The presenter loop reschedules via
// Schedule, so this only refreshes the picker's session state readout.
func (a *app) update() {
	if a.stateLabel != nil {
		a.stateLabel.Configure(Txt(fmt.Sprintf("State: %s", a.manager.SessionState())))
	}
	a.container.Loop.Tick()
}

func (a *app) scheduleUpdate() {
	a.afterID = TclAfter(tick, func() { a.update() })
}

// refreshSources re-enumerates shareable windows and repopulates the picker.
func (a *app) refreshSources() {
	a.sources = a.manager.ListCaptureSources(context.Background())
	titles := make([]string, 0, len(a.sources))
	for _, s := range a.sources {
		titles = append(titles, fmt.Sprintf("%s (%s)", s.Title, s.AppName))
	}
	if len(titles) == 0 {
		titles = []string{"<none>"}
	}
	a.sourceSelect.Configure(Values(titles))
	a.sourceSelect.Current(0)
}

// startMirror streams the selected source and ensures a mirror is open.
func (a *app) startMirror() {
	idxStr := a.sourceSelect.Current(nil)
	idx, err := strconv.Atoi(idxStr)
	if err != nil || idx < 0 || idx >= len(a.sources) {
		a.logger.Error("source selection", "index", idxStr, "error", err)
		return
	}
	src := a.sources[idx]
	if err := a.manager.Start(context.Background(), src); err != nil {
		a.logger.Error("session start", "source", src.ID, "error", err)
		a.stateLabel.Configure(Txt(fmt.Sprintf("State: start failed: %v", err)))
		return
	}
	if !a.container.MirrorModel.Open() {
		a.manager.OpenMirror(0, true)
	}
}

// stopMirror closes the mirror, which also stops the feed.
func (a *app) stopMirror() {
	a.manager.CloseMirror()
}

func (a *app) exitHandler() {
	if a.afterID != "" {
		TclAfterCancel(a.afterID)
		a.afterID = ""
	}
	if a.manager != nil {
		a.manager.CloseMirror()
	}
	Destroy(App)
}
