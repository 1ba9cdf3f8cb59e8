package physics

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/cespare/xxhash/v2"

	"github.com/zeusync/collide/internal/core/systems/physics/geometry"
	"github.com/zeusync/collide/pkg/sequence"
)

// ContactKind classifies a contact.
type ContactKind uint8

const (
	NoContact ContactKind = iota
	// PointContact: a corner meets a corner.
	PointContact
	// EdgeContact: a corner or a side meets the inside of a side.
	EdgeContact
)

func (k ContactKind) String() string {
	switch k {
	case NoContact:
		return "none"
	case PointContact:
		return "point"
	case EdgeContact:
		return "edge"
	default:
		return fmt.Sprintf("contact(%d)", uint8(k))
	}
}

// ContactPoint is a single place where a moving soft shape first touches a
// hard shape.
type ContactPoint struct {
	Point geometry.Vector2
	// Normal is the unit normal of the touched surface, pointing back
	// against the motion.
	Normal geometry.Vector2
	// Separation moves the soft shape exactly onto the contact.
	Separation geometry.Vector2
	Fraction   float64
	Kind       ContactKind
}

// GetContactPoints sweeps soft along direction for distance and collects
// where it first touches hard. Every leading soft vertex is cast forward
// against the hard edges facing it, and every hard vertex leading the other
// way is cast backward against the soft edges. The result is deduplicated by
// point, keeping the smaller fraction, and sorted nearest first with edge
// contacts ahead of point contacts on equal fractions.
//
// Circles and zero motion produce no contacts.
func GetContactPoints(soft, hard *geometry.Shape, direction geometry.Vector2, distance float64) []ContactPoint {
	dir := direction.Normalized()
	if soft == nil || hard == nil || soft.IsCircle() || hard.IsCircle() || dir.IsZero() || distance <= 0 {
		return nil
	}
	motion := dir.Scale(distance)

	var contacts []ContactPoint
	contacts = castVertices(contacts, soft, hard, dir, motion, false)
	contacts = castVertices(contacts, hard, soft, dir.Neg(), motion.Neg(), true)

	return sequence.From(dedupContacts(contacts)).Sort(contactBefore).Collect()
}

// castVertices casts the leading vertices of from along motion against the
// edges of onto that face them. With backward set, from is the hard shape
// travelling relative to a still soft shape.
func castVertices(contacts []ContactPoint, from, onto *geometry.Shape, dir, motion geometry.Vector2, backward bool) []ContactPoint {
	edges := onto.Edges()
	for i, v := range from.Vertices() {
		if !vertexLeads(from, i, dir) {
			continue
		}
		ray := geometry.Edge{First: v, Second: v.Add(motion)}
		for j, e := range edges {
			normal, _ := onto.EdgeNormal(j)
			if normal.Dot(dir) >= -geometry.Epsilon {
				continue
			}
			t, u, ok := ray.Fractions(e)
			if !ok {
				continue
			}
			kind := EdgeContact
			if onEndpoint(e, u) {
				kind = PointContact
			}
			c := ContactPoint{Fraction: t, Kind: kind}
			if backward {
				// The hard vertex is the contact; the soft shape moves
				// forward by the same amount the vertex travelled back.
				c.Point = v
				c.Normal = normal.Neg()
				c.Separation = motion.Neg().Scale(t)
			} else {
				c.Point = v.Add(motion.Scale(t))
				c.Normal = normal
				c.Separation = motion.Scale(t)
			}
			contacts = append(contacts, c)
		}
	}
	return contacts
}

func onEndpoint(e geometry.Edge, u float64) bool {
	tol := geometry.Epsilon / math.Max(e.Len(), geometry.Epsilon)
	return u <= tol || u >= 1-tol
}

func dedupContacts(contacts []ContactPoint) []ContactPoint {
	if len(contacts) < 2 {
		return contacts
	}
	index := make(map[uint64]int, len(contacts))
	out := contacts[:0]
	for _, c := range contacts {
		key := pointKey(c.Point)
		if at, ok := index[key]; ok {
			if c.Fraction < out[at].Fraction {
				out[at] = c
			}
			continue
		}
		index[key] = len(out)
		out = append(out, c)
	}
	return out
}

// pointKey hashes p snapped to the Epsilon grid.
func pointKey(p geometry.Vector2) uint64 {
	var buf [16]byte
	binary.LittleEndian.PutUint64(buf[:8], uint64(int64(math.Round(p.X/geometry.Epsilon))))
	binary.LittleEndian.PutUint64(buf[8:], uint64(int64(math.Round(p.Y/geometry.Epsilon))))
	return xxhash.Sum64(buf[:])
}

func contactBefore(a, b ContactPoint) bool {
	if math.Abs(a.Fraction-b.Fraction) <= geometry.Epsilon {
		return a.Kind == EdgeContact && b.Kind != EdgeContact
	}
	return a.Fraction < b.Fraction
}
