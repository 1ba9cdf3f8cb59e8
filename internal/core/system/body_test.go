package system

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeusync/collide/internal/core/models"
	"github.com/zeusync/collide/internal/core/systems/physics"
	"github.com/zeusync/collide/internal/core/systems/physics/geometry"
)

func TestNewBodyRequiresHitbox(t *testing.T) {
	b, err := NewBody("ghost", nil)
	assert.ErrorIs(t, err, physics.ErrNilHitbox)
	assert.Nil(t, b)
}

func TestBodyTags(t *testing.T) {
	b := newRectBody(t, "crate", 10, 10, geometry.Zero, physics.Hard, WithTags("pushable", "wood"), WithTags("loot"))
	assert.Equal(t, "crate", b.Name())
	assert.Equal(t, []string{"pushable", "wood", "loot"}, b.Tags())
	assert.True(t, b.HasTag("wood"))
	assert.False(t, b.HasTag("metal"))
}

func TestBodyIdentity(t *testing.T) {
	b := newPlayer(t, geometry.Zero, geometry.Zero)
	assert.Equal(t, models.NoEntity, b.ID())
	b.SetID(7)
	assert.Equal(t, models.EntityID(7), b.ID())
}

func TestBodyContacts(t *testing.T) {
	var seen []physics.Direction
	p := newPlayer(t, geometry.Zero, geometry.Zero, WithCollisionHandler(func(body *Body, other physics.Object, c physics.Collision) {
		seen = append(seen, c.Direction)
	}))
	floor := newFloor(t)

	assert.False(t, p.Grounded())
	p.OnCollide(floor, physics.Collision{Object: p, Other: floor, Direction: physics.Right})
	assert.False(t, p.Grounded())
	p.OnCollide(floor, physics.Collision{Object: p, Other: floor, Direction: physics.Bottom})
	assert.True(t, p.Grounded())

	require.Len(t, p.Contacts(), 2)
	assert.Equal(t, []physics.Direction{physics.Right, physics.Bottom}, seen)

	p.ResetContacts()
	assert.Empty(t, p.Contacts())
	assert.False(t, p.Grounded())
}
