package display

import "image"

// Descriptor identifies one physical output surface. The ID is stable for a
// given display across a single run; it is rebuilt on every enumeration.
type Descriptor struct {
	ID      int64
	Name    string
	Primary bool
	Bounds  image.Rectangle
}

// Enumerator queries the windowing system for attached displays.
// Implementations must never block longer than a local system query.
type Enumerator interface {
	Displays() ([]Descriptor, error)
}

// ChangeListener is invoked after the directory re-enumerates in response to
// a display-configuration-changed notification.
type ChangeListener func(displays []Descriptor)
