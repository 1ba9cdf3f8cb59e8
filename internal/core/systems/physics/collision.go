package physics

import (
	"fmt"
	"math"

	"github.com/zeusync/collide/internal/core/systems/physics/geometry"
)

// Direction says which side of an object was hit. Y grows downwards, so
// Bottom means the object landed on something.
type Direction uint8

const (
	NoDirection Direction = iota
	Top
	Bottom
	Left
	Right
)

func (d Direction) String() string {
	switch d {
	case NoDirection:
		return "none"
	case Top:
		return "top"
	case Bottom:
		return "bottom"
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return fmt.Sprintf("direction(%d)", uint8(d))
	}
}

// Opposite returns the side facing d.
func (d Direction) Opposite() Direction {
	switch d {
	case Top:
		return Bottom
	case Bottom:
		return Top
	case Left:
		return Right
	case Right:
		return Left
	default:
		return d
	}
}

// Collision describes the first contact between a moving object and an
// obstacle during one step, from Object's point of view.
type Collision struct {
	Object Object
	Other  Object

	Point      geometry.Vector2
	Normal     geometry.Vector2
	Separation geometry.Vector2
	Fraction   float64
	Kind       ContactKind
	Direction  Direction

	// Contacts are all contact points found, nearest first.
	Contacts []ContactPoint
}

// Mirror returns the same collision seen from Other.
func (c Collision) Mirror() Collision {
	m := c
	m.Object, m.Other = c.Other, c.Object
	m.Normal = c.Normal.Neg()
	m.Separation = c.Separation.Neg()
	m.Direction = c.Direction.Opposite()
	return m
}

// GetCollisionData finds how soft, moving with its velocity for dt, first
// meets hard. A result with Kind NoContact means they do not meet.
func GetCollisionData(soft, hard Object, dt float64) (Collision, error) {
	if !validDelta(dt) {
		return Collision{}, ErrInvalidDeltaTime
	}
	hs, err := hitboxOf(soft)
	if err != nil {
		return Collision{}, err
	}
	hh, err := hitboxOf(hard)
	if err != nil {
		return Collision{}, err
	}

	c := Collision{Object: soft, Other: hard}
	motion := hs.Motion(dt)
	if motion.IsZero() {
		return c, nil
	}
	if hs.Shape().IsCircle() || hh.Shape().IsCircle() {
		return discreteCollision(c, hs, hh, motion)
	}

	dir := motion.Normalized()
	contacts := GetContactPoints(hs.Shape(), hh.Shape(), dir, motion.Len())
	if len(contacts) == 0 {
		return c, nil
	}

	first := contacts[0]
	c.Contacts = contacts
	c.Point = first.Point
	c.Normal = first.Normal
	c.Separation = first.Separation
	c.Fraction = first.Fraction
	c.Kind = classify(contacts, dir, &c)
	c.Direction = direction(c.Point, c.Normal, hh.Shape().Center())
	return c, nil
}

// classify decides between an edge and a point collision. Two point
// contacts at the same fraction span an edge; c gets that edge's normal.
func classify(contacts []ContactPoint, dir geometry.Vector2, c *Collision) ContactKind {
	first := contacts[0]
	if first.Kind == EdgeContact {
		return EdgeContact
	}

	if len(contacts) > 1 && math.Abs(contacts[1].Fraction-first.Fraction) <= geometry.Epsilon {
		span := contacts[1].Point.Sub(first.Point)
		if span.Len() > geometry.Epsilon {
			normal := span.Normal().Normalized()
			if normal.Dot(dir) > 0 {
				normal = normal.Neg()
			}
			c.Normal = normal
			c.Point = first.Point.Add(span.Scale(0.5))
			return EdgeContact
		}
	}

	axis := dir.Normal()
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, cp := range contacts {
		p := cp.Point.Dot(axis)
		lo, hi = math.Min(lo, p), math.Max(hi, p)
	}
	p := first.Point.Dot(axis)
	if math.Abs(p-lo) <= geometry.Epsilon || math.Abs(p-hi) <= geometry.Epsilon {
		return EdgeContact
	}
	return PointContact
}

// direction compares point with the hard center along the normal's
// dominant axis. Exact ties fall back to the normal's sign.
func direction(point, normal, center geometry.Vector2) Direction {
	if math.Abs(normal.Y) >= math.Abs(normal.X) {
		switch {
		case point.Y < center.Y:
			return Bottom
		case point.Y > center.Y:
			return Top
		case normal.Y < 0:
			return Bottom
		default:
			return Top
		}
	}
	switch {
	case point.X < center.X:
		return Right
	case point.X > center.X:
		return Left
	case normal.X < 0:
		return Right
	default:
		return Left
	}
}

// discreteCollision handles circles, which have no edges to cast. The
// predicted overlap is pushed back out along the MTV.
func discreteCollision(c Collision, hs, hh *Hitbox, motion geometry.Vector2) (Collision, error) {
	predicted := hs.Shape().Translated(motion)
	mtv, err := geometry.CheckCollision(&predicted, hh.Shape())
	if err != nil {
		return c, err
	}
	if !mtv.Colliding() {
		return c, nil
	}

	hard := hh.Shape()
	if hard.IsCircle() {
		c.Point = hard.Pos().Add(mtv.Axis.Scale(hard.Radius()))
	} else {
		c.Point = predicted.Pos().Add(mtv.Vector()).Sub(mtv.Axis.Scale(predicted.Radius()))
	}
	c.Normal = mtv.Axis
	c.Separation = motion.Add(mtv.Vector())
	c.Fraction = math.Max(0, math.Min(1, c.Separation.Dot(motion.Normalized())/motion.Len()))
	c.Kind = EdgeContact
	c.Direction = direction(c.Point, c.Normal, hard.Center())
	c.Contacts = []ContactPoint{{
		Point:      c.Point,
		Normal:     c.Normal,
		Separation: c.Separation,
		Fraction:   c.Fraction,
		Kind:       EdgeContact,
	}}
	return c, nil
}
