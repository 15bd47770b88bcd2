package display

import (
	"log/slog"
	"sync"
)

// Directory enumerates physical displays and resolves the default mirror
// target. It re-enumerates on List and on NotifyChanged; configuration-change
// handling only ever updates the cached list and informs listeners, it never
// force-closes an open mirror surface.
type Directory struct {
	enum   Enumerator
	logger *slog.Logger

	mu        sync.Mutex
	last      []Descriptor
	listeners []ChangeListener
}

// NewDirectory constructs a directory backed by the given enumerator.
// A nil enumerator falls back to the platform default.
func NewDirectory(enum Enumerator, logger *slog.Logger) *Directory {
	if enum == nil {
		enum = defaultEnumerator()
	}
	return &Directory{enum: enum, logger: logger}
}

// List re-enumerates the attached displays. An enumeration failure is logged
// and yields an empty list; it is never fatal.
func (d *Directory) List() []Descriptor {
	displays, err := d.enum.Displays()
	if err != nil {
		if d.logger != nil {
			d.logger.Error("display.list", "error", err)
		}
		displays = nil
	}
	d.mu.Lock()
	d.last = displays
	d.mu.Unlock()
	out := make([]Descriptor, len(displays))
	copy(out, displays)
	return out
}

// ResolveDefault returns previousID when it still names an attached display.
// Otherwise it prefers the first non-primary display, then the primary, then
// reports ok=false when nothing is attached.
func (d *Directory) ResolveDefault(previousID int64) (int64, bool) {
	displays := d.List()
	if len(displays) == 0 {
		return 0, false
	}
	for _, disp := range displays {
		if disp.ID == previousID {
			return previousID, true
		}
	}
	for _, disp := range displays {
		if !disp.Primary {
			return disp.ID, true
		}
	}
	return displays[0].ID, true
}

// Lookup returns the descriptor for id from the most recent enumeration.
func (d *Directory) Lookup(id int64) (Descriptor, bool) {
	d.mu.Lock()
	last := d.last
	d.mu.Unlock()
	if last == nil {
		last = d.List()
	}
	for _, disp := range last {
		if disp.ID == id {
			return disp, true
		}
	}
	return Descriptor{}, false
}

// AddListener registers a callback invoked after each NotifyChanged
// re-enumeration. Consumers typically re-run ResolveDefault from it.
func (d *Directory) AddListener(l ChangeListener) {
	if l == nil {
		return
	}
	d.mu.Lock()
	d.listeners = append(d.listeners, l)
	d.mu.Unlock()
}

// NotifyChanged handles a display-configuration-changed notification:
// re-enumerate and fan out the fresh list to listeners.
func (d *Directory) NotifyChanged() {
	displays := d.List()
	d.mu.Lock()
	listeners := make([]ChangeListener, len(d.listeners))
	copy(listeners, d.listeners)
	d.mu.Unlock()
	if d.logger != nil {
		d.logger.Debug("display.changed", "count", len(displays))
	}
	for _, l := range listeners {
		l(displays)
	}
}
