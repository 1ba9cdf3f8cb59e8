package physics

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zeusync/collide/internal/core/models"
	"github.com/zeusync/collide/internal/core/systems/physics/geometry"
)

type testBody struct {
	id     models.EntityID
	hitbox *Hitbox
	hits   []Collision
	others []Object
}

func (b *testBody) ID() models.EntityID { return b.id }
func (b *testBody) Hitbox() *Hitbox     { return b.hitbox }

func (b *testBody) OnCollide(other Object, c Collision) {
	b.others = append(b.others, other)
	b.hits = append(b.hits, c)
}

func newBody(t *testing.T, id models.EntityID, shape *geometry.Shape, inertia Inertia, velocity geometry.Vector2) *testBody {
	t.Helper()
	h, err := NewHitbox(shape, inertia)
	require.NoError(t, err)
	require.NoError(t, h.SetVelocity(velocity))
	return &testBody{id: id, hitbox: h}
}

func rect(t *testing.T, w, h float64, pos geometry.Vector2) *geometry.Shape {
	t.Helper()
	s, err := geometry.NewRect(w, h, pos)
	require.NoError(t, err)
	return s
}

func circle(t *testing.T, r float64, pos geometry.Vector2) *geometry.Shape {
	t.Helper()
	s, err := geometry.NewCircle(r, pos)
	require.NoError(t, err)
	return s
}

// player is the 32x32 box used across tests.
func player(t *testing.T, pos, velocity geometry.Vector2) *testBody {
	return newBody(t, 1, rect(t, 32, 32, pos), Soft, velocity)
}

// platform spans x -84..116, y 100..120.
func platform(t *testing.T) *testBody {
	return newBody(t, 2, rect(t, 200, 20, geometry.V(-84, 100)), Hard, geometry.Zero)
}

// wall spans x 50..70, y 0..200.
func wall(t *testing.T) *testBody {
	return newBody(t, 3, rect(t, 20, 200, geometry.V(50, 0)), Hard, geometry.Zero)
}

func objects(bodies ...*testBody) []Object {
	out := make([]Object, len(bodies))
	for i, b := range bodies {
		out[i] = b
	}
	return out
}

const dt = 1.0 / 60
