package geometry

import "math"

// MTV is the minimum translation vector found by the separating axis test.
// A zero Depth means the shapes do not overlap (touching included).
type MTV struct {
	Axis  Vector2
	Depth float64
}

func (m MTV) Colliding() bool { return m.Depth > 0 }

// Vector is Axis scaled by Depth.
func (m MTV) Vector() Vector2 { return m.Axis.Scale(m.Depth) }

// CheckCollision runs the separating axis test between two convex shapes.
// The returned axis is a unit vector pointing from b towards a, so moving a
// by MTV.Vector() separates the pair; swapping the arguments flips its sign.
func CheckCollision(a, b *Shape) (MTV, error) {
	if err := checkProjectable("check collision", a); err != nil {
		return MTV{}, err
	}
	if err := checkProjectable("check collision", b); err != nil {
		return MTV{}, err
	}

	axes := collisionAxes(a, b)
	if len(axes) == 0 {
		return MTV{}, nil
	}

	best := MTV{Depth: math.MaxFloat64}
	for _, axis := range axes {
		aMin, aMax := a.Project(axis)
		bMin, bMax := b.Project(axis)
		if bMin > aMax || aMin > bMax {
			return MTV{}, nil
		}
		overlap := math.Min(aMax, bMax) - math.Max(aMin, bMin)
		if overlap < best.Depth {
			best = MTV{Axis: axis, Depth: overlap}
		}
	}
	if best.Depth <= 0 {
		return MTV{}, nil
	}
	if best.Axis.Dot(a.Center().Sub(b.Center())) < 0 {
		best.Axis = best.Axis.Neg()
	}
	return best, nil
}

func checkProjectable(op string, s *Shape) error {
	if s.kind == KindCircle {
		if !(s.radius > 0) {
			return precondition(op, ErrInvalidRadius)
		}
		return nil
	}
	if len(s.points) < 2 {
		return precondition(op, ErrNotEnoughPoints)
	}
	return nil
}

func collisionAxes(a, b *Shape) []Vector2 {
	switch {
	case a.IsCircle() && b.IsCircle():
		axis := a.pos.Sub(b.pos).Normalized()
		if axis.IsZero() {
			// Concentric circles: any axis works.
			axis = Vector2{1, 0}
		}
		return []Vector2{axis}
	case a.IsCircle():
		return unionAxes(circleAxes(a, b), b.normals)
	case b.IsCircle():
		return unionAxes(a.normals, circleAxes(b, a))
	default:
		return unionAxes(a.normals, b.normals)
	}
}

// circleAxes are the axes from the circle center to every polygon vertex.
func circleAxes(circle, poly *Shape) []Vector2 {
	var axes []Vector2
	for _, p := range poly.points {
		axes = appendAxis(axes, p.Add(poly.pos).Sub(circle.pos).Normalized())
	}
	return axes
}

// unionAxes merges axis lists into a fresh slice, dropping parallel duplicates.
func unionAxes(lists ...[]Vector2) []Vector2 {
	var out []Vector2
	for _, list := range lists {
		for _, axis := range list {
			out = appendAxis(out, axis)
		}
	}
	return out
}
