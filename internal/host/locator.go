package host

import (
	"context"

	"github.com/cwbudde/algo-jungle/internal/engine"
)

// StaticLocator always locates the same media.
type StaticLocator struct {
	Media engine.Media
}

// Locate returns l.Media, or engine.ErrNoSource when it is nil.
func (l StaticLocator) Locate(context.Context) (engine.Media, error) {
	if l.Media == nil {
		return nil, engine.ErrNoSource
	}

	return l.Media, nil
}
