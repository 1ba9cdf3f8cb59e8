package system

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zeusync/collide/internal/core/systems/physics"
	"github.com/zeusync/collide/internal/core/systems/physics/geometry"
)

const dt = 1.0 / 60

func newRectBody(t *testing.T, name string, w, h float64, pos geometry.Vector2, inertia physics.Inertia, opts ...BodyOption) *Body {
	t.Helper()
	shape, err := geometry.NewRect(w, h, pos)
	require.NoError(t, err)
	hitbox, err := physics.NewHitbox(shape, inertia)
	require.NoError(t, err)
	b, err := NewBody(name, hitbox, opts...)
	require.NoError(t, err)
	return b
}

func newPlayer(t *testing.T, pos, velocity geometry.Vector2, opts ...BodyOption) *Body {
	t.Helper()
	b := newRectBody(t, "player", 32, 32, pos, physics.Soft, opts...)
	require.NoError(t, b.Hitbox().SetVelocity(velocity))
	return b
}

// newFloor spans x -84..116, y 100..120.
func newFloor(t *testing.T) *Body {
	return newRectBody(t, "floor", 200, 20, geometry.V(-84, 100), physics.Hard, WithTags("ground"))
}
