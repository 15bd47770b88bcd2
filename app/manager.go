package app

import (
	"context"

	"github.com/mirrorview/mirror-view-go/domain/display"
	"github.com/mirrorview/mirror-view-go/domain/relay"
	"github.com/mirrorview/mirror-view-go/domain/source"
	"github.com/mirrorview/mirror-view-go/domain/stream"
)

// Manager is the facade an embedding selection UI drives. It narrows the
// container to the operations the pipeline exposes: enumerate sources and
// displays, start and stop the single stream session, open and close the
// mirror surface, and read the newest relayed frame.
type Manager struct {
	c *AppContainer
}

func NewManager(c *AppContainer) *Manager { return &Manager{c: c} }

// ListCaptureSources enumerates the shareable windows with thumbnails.
// Failures yield an empty list, never an error surfaced to the picker.
func (m *Manager) ListCaptureSources(ctx context.Context) []source.Source {
	return m.c.Catalog.List(ctx)
}

// ListDisplays re-enumerates the attached displays.
func (m *Manager) ListDisplays() []display.Descriptor {
	return m.c.Displays.List()
}

// Start begins streaming the given source. A running session is replaced.
func (m *Manager) Start(ctx context.Context, src source.Source) error {
	return m.c.Session.Start(ctx, src)
}

// Stop ends the running session. Safe to call when idle.
func (m *Manager) Stop(ctx context.Context) error {
	return m.c.Session.Stop(ctx)
}

// SessionState reports the stream session's current lifecycle state.
func (m *Manager) SessionState() stream.State { return m.c.Session.State() }

// OpenMirror opens the mirror surface over the requested display, replacing
// any previous surface. A zero displayID falls back to the persisted
// preference. Must be called on the UI context.
func (m *Manager) OpenMirror(displayID int64, controlsVisible bool) {
	if displayID == 0 {
		displayID = m.c.Config.DisplayID
	}
	m.c.Mirror.Open(displayID, controlsVisible)
	if id, ok := m.c.MirrorModel.BoundDisplay(); ok && id != m.c.Config.DisplayID {
		m.c.Config.DisplayID = id
		if err := m.c.Config.Save(m.c.ConfigPath); err != nil {
			m.c.Logger.Error("config save", "path", m.c.ConfigPath, "error", err)
		}
	}
}

// CloseMirror closes the mirror surface and stops the session with it.
// Must be called on the UI context.
func (m *Manager) CloseMirror() { m.c.Mirror.Close() }

// CurrentFrame returns the newest relayed frame, or nil when none has been
// published since the last start.
func (m *Manager) CurrentFrame() *relay.MirroredFrame { return m.c.Relay.Latest() }

// NotifyDisplayChange re-enumerates displays after a topology change and
// fans out to directory listeners. An open mirror stays open.
func (m *Manager) NotifyDisplayChange() { m.c.Displays.NotifyChanged() }
