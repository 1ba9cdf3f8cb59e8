package physics

import (
	"github.com/zeusync/collide/internal/core/models"
)

// Object is anything that takes part in collision handling: a world object
// that owns exactly one Hitbox.
type Object interface {
	ID() models.EntityID
	Hitbox() *Hitbox
	// OnCollide is called once per resolved contact. The collision is
	// expressed from the receiver's point of view.
	OnCollide(other Object, c Collision)
}

// CollisionHook observes every collision resolved by a Solver.
type CollisionHook func(c Collision)
