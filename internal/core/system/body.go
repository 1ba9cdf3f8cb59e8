package system

import (
	"slices"

	"github.com/zeusync/collide/internal/core/models"
	"github.com/zeusync/collide/internal/core/systems/physics"
)

// Entity is an object a World can register: it gets its ID on Add.
type Entity interface {
	physics.Object
	SetID(models.EntityID)
}

// CollisionHandler reacts to a collision of body with other. c is seen from
// body's side.
type CollisionHandler func(body *Body, other physics.Object, c physics.Collision)

// Body is the stock world object: a named hitbox that remembers the
// collisions it took part in during the current tick.
type Body struct {
	id      models.EntityID
	name    string
	tags    []string
	hitbox  *physics.Hitbox
	handler CollisionHandler

	contacts []physics.Collision
}

type BodyOption func(*Body)

func WithTags(tags ...string) BodyOption {
	return func(b *Body) { b.tags = append(b.tags, tags...) }
}

func WithCollisionHandler(h CollisionHandler) BodyOption {
	return func(b *Body) { b.handler = h }
}

func NewBody(name string, hitbox *physics.Hitbox, opts ...BodyOption) (*Body, error) {
	if hitbox == nil {
		return nil, physics.ErrNilHitbox
	}
	b := &Body{name: name, hitbox: hitbox}
	for _, opt := range opts {
		opt(b)
	}
	return b, nil
}

func (b *Body) ID() models.EntityID      { return b.id }
func (b *Body) SetID(id models.EntityID) { b.id = id }
func (b *Body) Name() string             { return b.name }
func (b *Body) Tags() []string           { return b.tags }
func (b *Body) HasTag(tag string) bool   { return slices.Contains(b.tags, tag) }
func (b *Body) Hitbox() *physics.Hitbox  { return b.hitbox }

func (b *Body) OnCollide(other physics.Object, c physics.Collision) {
	b.contacts = append(b.contacts, c)
	if b.handler != nil {
		b.handler(b, other, c)
	}
}

// Contacts returns the collisions of the current tick.
func (b *Body) Contacts() []physics.Collision { return b.contacts }

// Grounded reports whether the body landed on something this tick.
func (b *Body) Grounded() bool {
	return slices.ContainsFunc(b.contacts, func(c physics.Collision) bool {
		return c.Direction == physics.Bottom
	})
}

// ResetContacts forgets the collisions of the previous tick.
func (b *Body) ResetContacts() { b.contacts = nil }
