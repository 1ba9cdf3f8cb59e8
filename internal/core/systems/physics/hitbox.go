package physics

import (
	"github.com/zeusync/collide/internal/core/systems/physics/geometry"
)

// Hitbox binds a shape to a velocity and an inertia class. It also keeps the
// predicted shape: the current shape moved by velocity*dt, refreshed by
// UpdatePredict once per tick.
//
// A Hitbox is owned by a single object and is not safe for concurrent use.
type Hitbox struct {
	shape    *geometry.Shape
	predict  geometry.Shape
	velocity geometry.Vector2
	inertia  Inertia
}

func NewHitbox(shape *geometry.Shape, inertia Inertia) (*Hitbox, error) {
	if shape == nil {
		return nil, ErrNilHitbox
	}
	h := &Hitbox{shape: shape, inertia: inertia}
	h.predict = shape.Translated(geometry.Zero)
	return h, nil
}

func (h *Hitbox) Shape() *geometry.Shape     { return h.shape }
func (h *Hitbox) Velocity() geometry.Vector2 { return h.velocity }
func (h *Hitbox) Inertia() Inertia           { return h.inertia }
func (h *Hitbox) IsSoft() bool               { return h.inertia == Soft }
func (h *Hitbox) IsHard() bool               { return h.inertia == Hard }
func (h *Hitbox) Pos() geometry.Vector2      { return h.shape.Pos() }

// Predicted returns the shape as it would be after the last UpdatePredict.
func (h *Hitbox) Predicted() *geometry.Shape { return &h.predict }

func (h *Hitbox) SetVelocity(v geometry.Vector2) error {
	if !v.IsFinite() {
		return ErrNonFiniteVelocity
	}
	h.velocity = v
	return nil
}

func (h *Hitbox) SetInertia(i Inertia) { h.inertia = i }

// Translate moves the current shape. The prediction is left untouched until
// the next UpdatePredict.
func (h *Hitbox) Translate(v geometry.Vector2) { h.shape.Translate(v) }

func (h *Hitbox) SetPos(p geometry.Vector2) { h.shape.SetPos(p) }

// Motion is the displacement velocity*dt.
func (h *Hitbox) Motion(dt float64) geometry.Vector2 { return h.velocity.Scale(dt) }

// UpdatePredict recomputes the predicted shape for a step of dt.
func (h *Hitbox) UpdatePredict(dt float64) {
	h.predict = h.shape.Translated(h.Motion(dt))
}

// CheckCollision runs SAT between the current shapes. The MTV pushes h out
// of other.
func (h *Hitbox) CheckCollision(other *Hitbox) (geometry.MTV, error) {
	return geometry.CheckCollision(h.shape, other.shape)
}

// PredictCollision runs SAT between both predicted shapes.
func (h *Hitbox) PredictCollision(other *Hitbox) (geometry.MTV, error) {
	return geometry.CheckCollision(&h.predict, &other.predict)
}

// Bounds covers both the current and the predicted shape.
func (h *Hitbox) Bounds() geometry.AABB {
	return h.shape.Bounds().Union(h.predict.Bounds())
}
