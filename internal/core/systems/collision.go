package systems

import (
	"fmt"

	"github.com/zeusync/collide/internal/core/events/bus"
	"github.com/zeusync/collide/internal/core/observability/log"
	"github.com/zeusync/collide/internal/core/systems/physics"
)

// CollisionSystem moves every object by its velocity and resolves contacts.
// Each resolved collision is published as an EventCollision whose data is
// the physics.Collision seen from the moving object.
type CollisionSystem struct {
	solver *physics.Solver
	last   []physics.Report
}

func NewCollisionSystem(solver *physics.Solver) *CollisionSystem {
	if solver == nil {
		solver = physics.NewSolver()
	}
	return &CollisionSystem{solver: solver}
}

func (s *CollisionSystem) Name() string       { return "collision" }
func (s *CollisionSystem) Priority() Priority { return PriorityNormal }

// Reports returns what happened during the last Update.
func (s *CollisionSystem) Reports() []physics.Report { return s.last }

func (s *CollisionSystem) Update(dt float64, world World) error {
	reports, err := s.solver.HandleCollisions(world.Objects(), dt)
	s.last = reports
	if err != nil {
		return fmt.Errorf("handle collisions: %w", err)
	}

	var events []bus.Event
	for _, r := range reports {
		if r.Exhausted {
			world.Logger().Warn("collision passes exhausted",
				log.Stringer("entity", r.Object.ID()),
				log.Int("passes", r.Passes),
			)
		}
		for _, c := range r.Collisions {
			events = append(events, bus.NewEvent(EventCollision, s.Name(), c, world.Tick()))
		}
	}
	if len(events) == 0 {
		return nil
	}
	return world.Bus().PublishBatch(events...)
}
