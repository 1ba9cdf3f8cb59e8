package injector

import (
	"context"

	"github.com/google/wire"

	"github.com/zeusync/collide/internal/core/events/bus"
	"github.com/zeusync/collide/internal/core/observability/log"
	"github.com/zeusync/collide/internal/core/scene"
	"github.com/zeusync/collide/internal/core/system"
	"github.com/zeusync/collide/internal/core/systems"
	"github.com/zeusync/collide/internal/core/systems/physics"
)

// Simulation is a world populated from a scene together with the driver
// stepping it.
type Simulation struct {
	Scene  *scene.Scene
	Logger *log.Logger
	World  *system.World
	Driver *system.Driver
	Bodies []*system.Body
}

var ProviderSet = wire.NewSet(
	ProvideLogger,
	ProvideBus,
	ProvideSolver,
	ProvideSystems,
	ProvideWorld,
	ProvideDriver,
	ProvideSimulation,
)

func ProvideLogger(s *scene.Scene) (*log.Logger, error) {
	level, err := s.LogLevel()
	if err != nil {
		return nil, err
	}
	return log.New(level), nil
}

func ProvideBus() bus.EventBus {
	return bus.New()
}

func ProvideSolver(logger *log.Logger) *physics.Solver {
	return physics.NewSolver(physics.WithLogger(logger.With(log.String("component", "solver"))))
}

// ProvideSystems returns gravity, when the scene has any, and collision
// handling.
func ProvideSystems(s *scene.Scene, solver *physics.Solver) []systems.System {
	list := []systems.System{systems.NewCollisionSystem(solver)}
	if s.Gravity.Acceleration != 0 {
		list = append(list, systems.NewGravitySystem(s.Gravity.Acceleration, s.Gravity.TerminalVelocity))
	}
	return list
}

func ProvideWorld(b bus.EventBus, logger *log.Logger, list []systems.System) *system.World {
	return system.NewWorld(
		system.WithBus(b),
		system.WithLogger(logger),
		system.WithSystems(list...),
	)
}

func ProvideDriver(s *scene.Scene, w *system.World, logger *log.Logger) (*system.Driver, error) {
	return system.NewDriver(w, s.Tick.DeltaTime,
		system.WithMaxSteps(s.Tick.MaxSteps),
		system.WithDriverLogger(logger.With(log.String("component", "driver"))),
	)
}

func ProvideSimulation(ctx context.Context, s *scene.Scene, logger *log.Logger, w *system.World, d *system.Driver) (*Simulation, error) {
	bodies, err := s.Build(ctx, w)
	if err != nil {
		return nil, err
	}
	return &Simulation{Scene: s, Logger: logger, World: w, Driver: d, Bodies: bodies}, nil
}
