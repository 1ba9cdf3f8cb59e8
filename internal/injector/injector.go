//go:build wireinject
// +build wireinject

// The build tag makes sure the stub is not built in the final build.

package injector

import (
	"context"

	"github.com/google/wire"

	"github.com/zeusync/collide/internal/core/scene"
)

func InitializeSimulation(ctx context.Context, s *scene.Scene) (*Simulation, error) {
	wire.Build(ProviderSet)
	return nil, nil
}
