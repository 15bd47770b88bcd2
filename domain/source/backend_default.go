//go:build !windows

package source

import "context"

type systemLister struct{}

func defaultLister() Lister { return systemLister{} }

func (systemLister) Sources(ctx context.Context) ([]Source, error) {
	return nil, ErrUnsupported
}
