package systems

import (
	"math"

	"github.com/zeusync/collide/internal/core/systems/physics/geometry"
)

// GravitySystem accelerates soft objects downwards (+Y) and caps their
// falling speed. It runs before collision handling.
type GravitySystem struct {
	Acceleration     float64
	TerminalVelocity float64
}

func NewGravitySystem(acceleration, terminal float64) *GravitySystem {
	return &GravitySystem{Acceleration: acceleration, TerminalVelocity: terminal}
}

func (g *GravitySystem) Name() string       { return "gravity" }
func (g *GravitySystem) Priority() Priority { return PriorityHigh }

func (g *GravitySystem) Update(dt float64, world World) error {
	if g.Acceleration == 0 {
		return nil
	}
	for _, obj := range world.Objects() {
		h := obj.Hitbox()
		if h == nil || !h.IsSoft() {
			continue
		}
		v := h.Velocity()
		y := v.Y + g.Acceleration*dt
		if g.TerminalVelocity > 0 {
			y = math.Min(y, g.TerminalVelocity)
		}
		if err := h.SetVelocity(geometry.V(v.X, y)); err != nil {
			return err
		}
	}
	return nil
}
