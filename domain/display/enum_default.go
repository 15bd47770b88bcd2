//go:build !windows

package display

import (
	"github.com/vova616/screenshot"
)

// Platforms without a dedicated multi-monitor query expose the capture screen
// as a single primary display.
type systemEnumerator struct{}

func defaultEnumerator() Enumerator { return systemEnumerator{} }

func (systemEnumerator) Displays() ([]Descriptor, error) {
	r, err := screenshot.ScreenRect()
	if err != nil {
		return nil, err
	}
	return []Descriptor{{ID: 1, Name: "Screen 1", Primary: true, Bounds: r}}, nil
}
