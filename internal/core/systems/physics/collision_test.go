package physics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeusync/collide/internal/core/systems/physics/geometry"
)

func TestGetCollisionDataLanding(t *testing.T) {
	p := player(t, geometry.V(0, 60), geometry.V(0, 600))
	floor := platform(t)

	c, err := GetCollisionData(p, floor, dt)
	require.NoError(t, err)
	assert.Equal(t, EdgeContact, c.Kind)
	assert.Equal(t, Bottom, c.Direction)
	assert.InDelta(t, 0.8, c.Fraction, 1e-9)
	assert.InDelta(t, 8, c.Separation.Y, 1e-9)
	assert.InDelta(t, 0, c.Separation.X, 1e-9)
	assert.Equal(t, geometry.V(0, -1), c.Normal)
	assert.Same(t, p, c.Object)
	assert.Same(t, floor, c.Other)
}

func TestGetCollisionDataWall(t *testing.T) {
	p := player(t, geometry.V(0, 60), geometry.V(1200, 0))

	c, err := GetCollisionData(p, wall(t), dt)
	require.NoError(t, err)
	assert.Equal(t, EdgeContact, c.Kind)
	assert.Equal(t, Right, c.Direction)
	assert.InDelta(t, 0.9, c.Fraction, 1e-9)
	assert.Equal(t, geometry.V(-1, 0), c.Normal)
}

func TestGetCollisionDataCeiling(t *testing.T) {
	p := player(t, geometry.V(0, 130), geometry.V(0, -1200))

	c, err := GetCollisionData(p, platform(t), dt)
	require.NoError(t, err)
	assert.Equal(t, Top, c.Direction)
	assert.Equal(t, geometry.V(0, 1), c.Normal)
	assert.InDelta(t, 0.5, c.Fraction, 1e-9)
}

func TestGetCollisionDataSynthesizesEdge(t *testing.T) {
	p := player(t, geometry.V(0, 60), geometry.V(0, 600))
	block := newBody(t, 4, rect(t, 32, 20, geometry.V(0, 100)), Hard, geometry.Zero)

	c, err := GetCollisionData(p, block, dt)
	require.NoError(t, err)
	require.Len(t, c.Contacts, 2)
	assert.Equal(t, PointContact, c.Contacts[0].Kind)
	assert.Equal(t, EdgeContact, c.Kind, "two corners touching at once span an edge")
	assert.InDelta(t, 0, c.Normal.X, 1e-9)
	assert.InDelta(t, -1, c.Normal.Y, 1e-9)
	assert.InDelta(t, 16, c.Point.X, 1e-9)
	assert.Equal(t, Bottom, c.Direction)
}

func TestGetCollisionDataVertexOnVertex(t *testing.T) {
	soft := newBody(t, 1, diamond(t, geometry.V(0, 60)), Soft, geometry.V(0, 2400))
	hard := newBody(t, 2, peak(t, geometry.V(16, 100)), Hard, geometry.Zero)

	c, err := GetCollisionData(soft, hard, dt)
	require.NoError(t, err)
	assert.Equal(t, PointContact, c.Kind)
	assert.Equal(t, Bottom, c.Direction)
	assert.InDelta(t, 0.2, c.Fraction, 1e-9)
	assert.Len(t, c.Contacts, 3)
}

func TestGetCollisionDataSlopeCornerIsEdge(t *testing.T) {
	// A box corner landing inside the slope.
	p := player(t, geometry.V(-40, 60), geometry.V(0, 2400))
	hard := newBody(t, 2, peak(t, geometry.V(16, 100)), Hard, geometry.Zero)

	c, err := GetCollisionData(p, hard, dt)
	require.NoError(t, err)
	assert.Equal(t, EdgeContact, c.Kind)
	assert.Equal(t, Bottom, c.Direction)
	assert.InDelta(t, 0.38, c.Fraction, 1e-9)
}

func TestGetCollisionDataNoContact(t *testing.T) {
	p := player(t, geometry.V(0, 60), geometry.V(0, 300))
	c, err := GetCollisionData(p, platform(t), dt)
	require.NoError(t, err)
	assert.Equal(t, NoContact, c.Kind)
	assert.Empty(t, c.Contacts)

	still := player(t, geometry.V(0, 60), geometry.Zero)
	c, err = GetCollisionData(still, platform(t), dt)
	require.NoError(t, err)
	assert.Equal(t, NoContact, c.Kind)
}

func TestGetCollisionDataErrors(t *testing.T) {
	p := player(t, geometry.V(0, 60), geometry.V(0, 600))

	_, err := GetCollisionData(p, platform(t), -1)
	assert.ErrorIs(t, err, ErrInvalidDeltaTime)

	_, err = GetCollisionData(p, nil, dt)
	assert.ErrorIs(t, err, ErrNilObject)

	_, err = GetCollisionData(p, &testBody{id: 7}, dt)
	assert.ErrorIs(t, err, ErrNilHitbox)
}

func TestGetCollisionDataCircleFallback(t *testing.T) {
	ball := newBody(t, 1, circle(t, 8, geometry.V(16, 90)), Soft, geometry.V(0, 600))

	c, err := GetCollisionData(ball, platform(t), dt)
	require.NoError(t, err)
	assert.Equal(t, EdgeContact, c.Kind)
	assert.Equal(t, Bottom, c.Direction)
	assert.InDelta(t, 2, c.Separation.Y, 1e-9)
	assert.InDelta(t, 0.2, c.Fraction, 1e-9)
	assert.InDelta(t, 100, c.Point.Y, 1e-9)
}

func TestCollisionMirror(t *testing.T) {
	p := player(t, geometry.V(0, 60), geometry.V(0, 600))
	floor := platform(t)
	c, err := GetCollisionData(p, floor, dt)
	require.NoError(t, err)

	m := c.Mirror()
	assert.Same(t, floor, m.Object)
	assert.Same(t, p, m.Other)
	assert.Equal(t, Top, m.Direction)
	assert.Equal(t, c.Normal.Neg(), m.Normal)
	assert.Equal(t, c, m.Mirror())
}

func TestDirectionOpposite(t *testing.T) {
	for _, d := range []Direction{Top, Bottom, Left, Right} {
		assert.Equal(t, d, d.Opposite().Opposite())
		assert.NotEqual(t, d, d.Opposite())
	}
	assert.Equal(t, NoDirection, NoDirection.Opposite())
}
