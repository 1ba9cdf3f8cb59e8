package geometry

import (
	"fmt"
	"math"
)

// Epsilon is the tolerance used by every near-equality test in the kernel:
// orientation, parallelism, on-segment checks and fraction ties.
const Epsilon = 1e-4

// Orientation of an ordered point triplet.
type Orientation uint8

const (
	Collinear Orientation = iota
	Clockwise
	CounterClockwise
)

// Vector2 is a 2D vector in screen space (+Y points down).
type Vector2 struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Zero is the zero vector.
var Zero = Vector2{}

func V(x, y float64) Vector2 { return Vector2{X: x, Y: y} }

func (v Vector2) Add(o Vector2) Vector2 { return Vector2{v.X + o.X, v.Y + o.Y} }
func (v Vector2) Sub(o Vector2) Vector2 { return Vector2{v.X - o.X, v.Y - o.Y} }
func (v Vector2) Scale(s float64) Vector2 {
	return Vector2{v.X * s, v.Y * s}
}

// Mul multiplies component-wise.
func (v Vector2) Mul(o Vector2) Vector2 { return Vector2{v.X * o.X, v.Y * o.Y} }
func (v Vector2) Neg() Vector2          { return Vector2{-v.X, -v.Y} }

// Div divides both components by s.
func (v Vector2) Div(s float64) (Vector2, error) {
	if s == 0 {
		return Zero, precondition("vector divide", ErrDivisionByZero)
	}
	return Vector2{v.X / s, v.Y / s}, nil
}

func (v Vector2) Dot(o Vector2) float64 { return v.X*o.X + v.Y*o.Y }

// Cross returns the z component of the 3D cross product.
func (v Vector2) Cross(o Vector2) float64 { return v.X*o.Y - v.Y*o.X }

func (v Vector2) Len() float64   { return math.Hypot(v.X, v.Y) }
func (v Vector2) LenSq() float64 { return v.X*v.X + v.Y*v.Y }

// Normal returns v rotated by 90 degrees: (-y, x).
func (v Vector2) Normal() Vector2 { return Vector2{-v.Y, v.X} }

// Normalized returns the unit vector of v. The zero vector stays zero.
func (v Vector2) Normalized() Vector2 {
	l := v.Len()
	if l == 0 {
		return Zero
	}
	return Vector2{v.X / l, v.Y / l}
}

// ProjectOnto returns the vector projection of v onto axis.
// A zero axis projects everything to zero.
func (v Vector2) ProjectOnto(axis Vector2) Vector2 {
	d := axis.LenSq()
	if d == 0 {
		return Zero
	}
	return axis.Scale(v.Dot(axis) / d)
}

func (v Vector2) IsZero() bool { return v.X == 0 && v.Y == 0 }

// ApproxEqual compares component-wise within tol.
func (v Vector2) ApproxEqual(o Vector2, tol float64) bool {
	return math.Abs(v.X-o.X) <= tol && math.Abs(v.Y-o.Y) <= tol
}

func (v Vector2) IsFinite() bool {
	return !math.IsNaN(v.X) && !math.IsNaN(v.Y) && !math.IsInf(v.X, 0) && !math.IsInf(v.Y, 0)
}

// Component returns X for index 0 and Y for index 1.
func (v Vector2) Component(i int) (float64, error) {
	switch i {
	case 0:
		return v.X, nil
	case 1:
		return v.Y, nil
	}
	return 0, precondition(fmt.Sprintf("vector component %d", i), ErrIndexOutOfRange)
}

func (v Vector2) String() string { return fmt.Sprintf("(%g, %g)", v.X, v.Y) }

// Orient classifies the turn p1 -> p2 -> p3.
func Orient(p1, p2, p3 Vector2) Orientation {
	val := (p2.Y-p1.Y)*(p3.X-p2.X) - (p2.X-p1.X)*(p3.Y-p2.Y)
	if math.Abs(val) < Epsilon {
		return Collinear
	}
	if val > 0 {
		return Clockwise
	}
	return CounterClockwise
}

// Parallel reports whether two directions are parallel or anti-parallel.
// A zero direction is parallel to everything.
func Parallel(a, b Vector2) bool {
	an, bn := a.Normalized(), b.Normalized()
	if an.IsZero() || bn.IsZero() {
		return true
	}
	return math.Abs(an.Cross(bn)) < Epsilon
}
