package geometry

import (
	"fmt"
	"math"
)

// Edge is an oriented segment from First to Second.
type Edge struct {
	First  Vector2
	Second Vector2
}

func NewEdge(first, second Vector2) Edge { return Edge{First: first, Second: second} }

// Slope is the direction vector Second - First.
func (e Edge) Slope() Vector2    { return e.Second.Sub(e.First) }
func (e Edge) Len() float64      { return e.Slope().Len() }
func (e Edge) Midpoint() Vector2 { return e.First.Add(e.Slope().Scale(0.5)) }

// Normal is the unnormalized perpendicular of the slope.
func (e Edge) Normal() Vector2 { return e.Slope().Normal() }

func (e Edge) Translate(v Vector2) Edge { return Edge{e.First.Add(v), e.Second.Add(v)} }
func (e Edge) Reverse() Edge            { return Edge{e.Second, e.First} }

// Endpoint returns First for index 0 and Second for index 1.
func (e Edge) Endpoint(i int) (Vector2, error) {
	switch i {
	case 0:
		return e.First, nil
	case 1:
		return e.Second, nil
	}
	return Zero, precondition(fmt.Sprintf("edge endpoint %d", i), ErrIndexOutOfRange)
}

// OnSegment reports whether p lies on the segment.
func (e Edge) OnSegment(p Vector2) bool {
	if Orient(e.First, e.Second, p) != Collinear {
		return false
	}
	d := p.Sub(e.First).Len() + p.Sub(e.Second).Len()
	return math.Abs(d-e.Len()) <= Epsilon
}

// IsEndpoint reports whether p coincides with one of the endpoints.
func (e Edge) IsEndpoint(p Vector2) bool {
	return p.ApproxEqual(e.First, Epsilon) || p.ApproxEqual(e.Second, Epsilon)
}

// Intersects reports whether two segments cross or touch. Parallel
// segments, collinear overlap included, never intersect.
func (e Edge) Intersects(o Edge) bool {
	if Parallel(e.Slope(), o.Slope()) {
		return false
	}

	o1 := Orient(e.First, e.Second, o.First)
	o2 := Orient(e.First, e.Second, o.Second)
	o3 := Orient(o.First, o.Second, e.First)
	o4 := Orient(o.First, o.Second, e.Second)

	if o1 != o2 && o3 != o4 {
		return true
	}

	// Endpoint touching the other segment.
	switch {
	case o1 == Collinear && e.OnSegment(o.First):
		return true
	case o2 == Collinear && e.OnSegment(o.Second):
		return true
	case o3 == Collinear && o.OnSegment(e.First):
		return true
	case o4 == Collinear && o.OnSegment(e.Second):
		return true
	}
	return false
}

// LineIntersection solves the two implicit line equations a*x + b*y = c.
// ok is false when the lines are parallel.
func (e Edge) LineIntersection(o Edge) (p Vector2, ok bool) {
	a1 := e.Second.Y - e.First.Y
	b1 := e.First.X - e.Second.X
	c1 := a1*e.First.X + b1*e.First.Y

	a2 := o.Second.Y - o.First.Y
	b2 := o.First.X - o.Second.X
	c2 := a2*o.First.X + b2*o.First.Y

	det := a1*b2 - a2*b1
	if det == 0 || Parallel(e.Slope(), o.Slope()) {
		return Zero, false
	}
	return Vector2{
		X: (b2*c1 - b1*c2) / det,
		Y: (a1*c2 - a2*c1) / det,
	}, true
}

// Intersection returns the crossing point of two segments.
func (e Edge) Intersection(o Edge) (Vector2, bool) {
	if !e.Intersects(o) {
		return Zero, false
	}
	return e.LineIntersection(o)
}

func (e Edge) String() string { return fmt.Sprintf("[%v, %v]", e.First, e.Second) }

// Fractions returns where two segments cross: t along e and u along o, both
// in [0, 1]. ok is false for parallel or disjoint segments.
func (e Edge) Fractions(o Edge) (t, u float64, ok bool) {
	r, s := e.Slope(), o.Slope()
	if Parallel(r, s) {
		return 0, 0, false
	}
	denom := r.Cross(s)
	if denom == 0 {
		return 0, 0, false
	}
	q := o.First.Sub(e.First)
	t = q.Cross(s) / denom
	u = q.Cross(r) / denom
	// Tolerances are in length units, so scale them per segment.
	tTol, uTol := Epsilon/math.Max(r.Len(), Epsilon), Epsilon/math.Max(s.Len(), Epsilon)
	if t < -tTol || t > 1+tTol || u < -uTol || u > 1+uTol {
		return 0, 0, false
	}
	return clamp01(t), clamp01(u), true
}

// CircleFraction returns the first t in [0, 1] at which the segment enters
// the circle. A segment starting inside reports zero.
func (e Edge) CircleFraction(center Vector2, radius float64) (float64, bool) {
	d := e.Slope()
	f := e.First.Sub(center)
	c := f.LenSq() - radius*radius
	if c <= 0 {
		return 0, true
	}
	a := d.LenSq()
	if a == 0 {
		return 0, false
	}
	b := 2 * f.Dot(d)
	disc := b*b - 4*a*c
	if disc < 0 {
		return 0, false
	}
	t := (-b - math.Sqrt(disc)) / (2 * a)
	if t < 0 || t > 1 {
		return 0, false
	}
	return t, true
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
