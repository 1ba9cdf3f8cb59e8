package geometry

import (
	"fmt"
	"slices"
)

// Kind distinguishes polygons from circles.
type Kind uint8

const (
	KindPolygon Kind = iota
	KindCircle
)

func (k Kind) String() string {
	switch k {
	case KindPolygon:
		return "polygon"
	case KindCircle:
		return "circle"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Shape is a convex polygon given by local-space points plus a world
// position, or a circle given by a radius around its position.
//
// Point lists are never mutated in place: every mutator swaps in fresh
// slices, so values produced by Translated keep sharing the old ones safely.
type Shape struct {
	kind   Kind
	pos    Vector2
	radius float64

	points  []Vector2
	outward []Vector2 // per edge, unit, pointing away from the centroid
	normals []Vector2 // unique edge normals used as SAT axes
}

// NewPolygon builds a convex polygon. Points are copied.
func NewPolygon(points []Vector2, pos Vector2) (*Shape, error) {
	if len(points) < 3 {
		return nil, precondition("new polygon", ErrNotEnoughPoints)
	}
	for _, p := range points {
		if !p.IsFinite() {
			return nil, precondition("new polygon", ErrNonFiniteNumeric)
		}
	}
	s := &Shape{kind: KindPolygon, pos: pos}
	s.setPoints(slices.Clone(points))
	return s, nil
}

// NewRect builds an axis-aligned w x h box whose top-left corner sits at pos.
func NewRect(w, h float64, pos Vector2) (*Shape, error) {
	return NewPolygon([]Vector2{{0, 0}, {w, 0}, {w, h}, {0, h}}, pos)
}

// NewCircle builds a circle centered at pos.
func NewCircle(radius float64, pos Vector2) (*Shape, error) {
	if !(radius > 0) {
		return nil, precondition("new circle", ErrInvalidRadius)
	}
	return &Shape{kind: KindCircle, pos: pos, radius: radius}, nil
}

// Sweep builds the quad covered by e moving along motion, in world space.
// The result is not validated and may be flat; CheckCollision reports no
// overlap for a flat quad.
func Sweep(e Edge, motion Vector2) *Shape {
	s := &Shape{kind: KindPolygon}
	s.setPoints([]Vector2{e.First, e.Second, e.Second.Add(motion), e.First.Add(motion)})
	return s
}

func (s *Shape) Kind() Kind          { return s.kind }
func (s *Shape) IsCircle() bool      { return s.kind == KindCircle }
func (s *Shape) Pos() Vector2        { return s.pos }
func (s *Shape) Radius() float64     { return s.radius }
func (s *Shape) SetPos(p Vector2)    { s.pos = p }
func (s *Shape) Translate(v Vector2) { s.pos = s.pos.Add(v) }

// Translated returns a copy moved by v. Point and normal slices are shared.
func (s *Shape) Translated(v Vector2) Shape {
	c := *s
	c.pos = s.pos.Add(v)
	return c
}

// Len is the number of polygon points.
func (s *Shape) Len() int { return len(s.points) }

// Points returns the local-space points. Callers must not modify them.
func (s *Shape) Points() []Vector2 { return s.points }

// Normals returns the unique unit edge normals. Callers must not modify them.
func (s *Shape) Normals() []Vector2 { return s.normals }

// Vertex returns point i in world space.
func (s *Shape) Vertex(i int) (Vector2, error) {
	if i < 0 || i >= len(s.points) {
		return Zero, precondition(fmt.Sprintf("vertex %d", i), ErrIndexOutOfRange)
	}
	return s.points[i].Add(s.pos), nil
}

// Vertices returns all points in world space.
func (s *Shape) Vertices() []Vector2 {
	out := make([]Vector2, len(s.points))
	for i, p := range s.points {
		out[i] = p.Add(s.pos)
	}
	return out
}

// Edges returns the world-space edges; edge i runs from point i to i+1.
func (s *Shape) Edges() []Edge {
	n := len(s.points)
	if n < 2 {
		return nil
	}
	out := make([]Edge, n)
	for i := range s.points {
		out[i] = Edge{s.points[i].Add(s.pos), s.points[(i+1)%n].Add(s.pos)}
	}
	return out
}

// EdgeNormal returns the outward unit normal of edge i. Zero-length edges
// have a zero normal.
func (s *Shape) EdgeNormal(i int) (Vector2, error) {
	if i < 0 || i >= len(s.outward) {
		return Zero, precondition(fmt.Sprintf("edge normal %d", i), ErrIndexOutOfRange)
	}
	return s.outward[i], nil
}

// Center is the vertex centroid for polygons and the position for circles.
func (s *Shape) Center() Vector2 {
	if s.kind == KindCircle || len(s.points) == 0 {
		return s.pos
	}
	return centroid(s.points).Add(s.pos)
}

// Bounds returns the world-space bounding box.
func (s *Shape) Bounds() AABB {
	if s.kind == KindCircle {
		r := Vector2{s.radius, s.radius}
		return AABB{Min: s.pos.Sub(r), Max: s.pos.Add(r)}
	}
	return NewAABB(s.Vertices()...)
}

// Project returns the [min, max] interval of the shape on axis.
func (s *Shape) Project(axis Vector2) (lo, hi float64) {
	if s.kind == KindCircle {
		c := axis.Dot(s.pos)
		r := s.radius * axis.Len()
		return c - r, c + r
	}
	for i, p := range s.points {
		d := axis.Dot(p.Add(s.pos))
		if i == 0 || d < lo {
			lo = d
		}
		if i == 0 || d > hi {
			hi = d
		}
	}
	return lo, hi
}

// AddPoint appends a point.
func (s *Shape) AddPoint(p Vector2) error {
	if s.kind != KindPolygon {
		return precondition("add point", ErrNotPolygon)
	}
	s.setPoints(append(slices.Clone(s.points), p))
	return nil
}

// InsertPoint inserts p before index i; i may equal Len.
func (s *Shape) InsertPoint(p Vector2, i int) error {
	if s.kind != KindPolygon {
		return precondition("insert point", ErrNotPolygon)
	}
	if i < 0 || i > len(s.points) {
		return precondition(fmt.Sprintf("insert point %d", i), ErrIndexOutOfRange)
	}
	s.setPoints(slices.Insert(slices.Clone(s.points), i, p))
	return nil
}

// RemovePoint removes point i and returns it. A polygon keeps at least
// three points.
func (s *Shape) RemovePoint(i int) (Vector2, error) {
	if s.kind != KindPolygon {
		return Zero, precondition("remove point", ErrNotPolygon)
	}
	if i < 0 || i >= len(s.points) {
		return Zero, precondition(fmt.Sprintf("remove point %d", i), ErrIndexOutOfRange)
	}
	if len(s.points) <= 3 {
		return Zero, precondition("remove point", ErrNotEnoughPoints)
	}
	removed := s.points[i]
	s.setPoints(slices.Delete(slices.Clone(s.points), i, i+1))
	return removed, nil
}

// SwapPoint replaces point i with p and returns the old point.
func (s *Shape) SwapPoint(i int, p Vector2) (Vector2, error) {
	if s.kind != KindPolygon {
		return Zero, precondition("swap point", ErrNotPolygon)
	}
	if i < 0 || i >= len(s.points) {
		return Zero, precondition(fmt.Sprintf("swap point %d", i), ErrIndexOutOfRange)
	}
	old := s.points[i]
	next := slices.Clone(s.points)
	next[i] = p
	s.setPoints(next)
	return old, nil
}

// Equal compares kind, position, radius and points exactly.
func (s *Shape) Equal(o *Shape) bool {
	return s.kind == o.kind && s.pos == o.pos && s.radius == o.radius && slices.Equal(s.points, o.points)
}

func (s *Shape) setPoints(points []Vector2) {
	s.points = points
	s.calcNormals()
}

func (s *Shape) calcNormals() {
	n := len(s.points)
	s.outward, s.normals = nil, nil
	if n < 2 {
		return
	}
	c := centroid(s.points)
	outward := make([]Vector2, n)
	var unique []Vector2
	for i := 0; i < n; i++ {
		e := Edge{s.points[i], s.points[(i+1)%n]}
		normal := e.Normal().Normalized()
		if normal.IsZero() {
			continue
		}
		if normal.Dot(e.Midpoint().Sub(c)) < 0 {
			normal = normal.Neg()
		}
		outward[i] = normal
		unique = appendAxis(unique, normal)
	}
	s.outward, s.normals = outward, unique
}

func centroid(points []Vector2) Vector2 {
	var sum Vector2
	for _, p := range points {
		sum = sum.Add(p)
	}
	return sum.Scale(1 / float64(len(points)))
}

// appendAxis adds a unit axis unless it is zero or parallel to one already present.
func appendAxis(axes []Vector2, axis Vector2) []Vector2 {
	if axis.IsZero() {
		return axes
	}
	for _, a := range axes {
		if Parallel(a, axis) {
			return axes
		}
	}
	return append(axes, axis)
}
