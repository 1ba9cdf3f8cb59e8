package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckCollisionSeparated(t *testing.T) {
	a := mustRect(t, 10, 10, Zero)
	b := mustRect(t, 10, 10, V(20, 0))

	mtv, err := CheckCollision(a, b)
	require.NoError(t, err)
	assert.False(t, mtv.Colliding())
	assert.Equal(t, 0.0, mtv.Depth)
}

func TestCheckCollisionTouchingIsNotColliding(t *testing.T) {
	a := mustRect(t, 10, 10, Zero)
	b := mustRect(t, 10, 10, V(10, 0))

	mtv, err := CheckCollision(a, b)
	require.NoError(t, err)
	assert.False(t, mtv.Colliding())
}

func TestCheckCollisionOverlap(t *testing.T) {
	a := mustRect(t, 10, 10, Zero)
	b := mustRect(t, 10, 10, V(9.5, 2))

	mtv, err := CheckCollision(a, b)
	require.NoError(t, err)
	require.True(t, mtv.Colliding())
	assert.InDelta(t, 0.5, mtv.Depth, 1e-12)
	assert.Equal(t, V(-1, 0), mtv.Axis, "points from b towards a")

	// Moving a by the MTV separates the pair.
	a.Translate(mtv.Vector())
	after, err := CheckCollision(a, b)
	require.NoError(t, err)
	assert.False(t, after.Colliding())
}

func TestCheckCollisionSymmetric(t *testing.T) {
	tri, err := NewPolygon([]Vector2{{0, 0}, {6, 0}, {3, 5}}, V(2, 1))
	require.NoError(t, err)
	box := mustRect(t, 4, 4, V(5, 3))

	ab, err := CheckCollision(tri, box)
	require.NoError(t, err)
	ba, err := CheckCollision(box, tri)
	require.NoError(t, err)

	require.True(t, ab.Colliding())
	assert.InDelta(t, ab.Depth, ba.Depth, 1e-12)
	assert.InDelta(t, ab.Axis.X, -ba.Axis.X, 1e-12)
	assert.InDelta(t, ab.Axis.Y, -ba.Axis.Y, 1e-12)
}

func TestCheckCollisionIgnoresCommonTranslation(t *testing.T) {
	a := mustRect(t, 10, 10, Zero)
	b := mustRect(t, 10, 10, V(7, 3))
	before, err := CheckCollision(a, b)
	require.NoError(t, err)

	v := V(123.25, -40.5)
	a.Translate(v)
	b.Translate(v)
	after, err := CheckCollision(a, b)
	require.NoError(t, err)
	assert.InDelta(t, before.Depth, after.Depth, 1e-9)
	assert.Equal(t, before.Axis, after.Axis)
}

func TestCheckCollisionCircles(t *testing.T) {
	a, err := NewCircle(5, Zero)
	require.NoError(t, err)
	b, err := NewCircle(5, V(8, 0))
	require.NoError(t, err)

	mtv, err := CheckCollision(a, b)
	require.NoError(t, err)
	assert.InDelta(t, 2, mtv.Depth, 1e-12)
	assert.InDelta(t, -1, mtv.Axis.X, 1e-12)

	// Concentric circles still get a usable axis.
	c, err := NewCircle(3, Zero)
	require.NoError(t, err)
	mtv, err = CheckCollision(a, c)
	require.NoError(t, err)
	assert.True(t, mtv.Colliding())
	assert.InDelta(t, 1, mtv.Axis.Len(), 1e-12)
}

func TestCheckCollisionCirclePolygon(t *testing.T) {
	ball, err := NewCircle(4, V(5, -3))
	require.NoError(t, err)
	box := mustRect(t, 10, 10, Zero)

	mtv, err := CheckCollision(ball, box)
	require.NoError(t, err)
	require.True(t, mtv.Colliding())
	assert.InDelta(t, 1, mtv.Depth, 1e-12)
	assert.InDelta(t, -1, mtv.Axis.Y, 1e-12)

	far, err := NewCircle(1, V(30, 30))
	require.NoError(t, err)
	mtv, err = CheckCollision(far, box)
	require.NoError(t, err)
	assert.False(t, mtv.Colliding())
}

func TestCheckCollisionRejectsBrokenShapes(t *testing.T) {
	box := mustRect(t, 1, 1, Zero)
	_, err := CheckCollision(&Shape{kind: KindCircle}, box)
	assert.ErrorIs(t, err, ErrInvalidRadius)
	_, err = CheckCollision(box, &Shape{})
	assert.ErrorIs(t, err, ErrNotEnoughPoints)
}
