package geometry

import "math"

// AABB is an axis-aligned bounding box.
type AABB struct {
	Min Vector2
	Max Vector2
}

// NewAABB returns the smallest box enclosing points.
func NewAABB(points ...Vector2) AABB {
	if len(points) == 0 {
		return AABB{}
	}
	box := AABB{Min: points[0], Max: points[0]}
	for _, p := range points[1:] {
		box.Min.X = math.Min(box.Min.X, p.X)
		box.Min.Y = math.Min(box.Min.Y, p.Y)
		box.Max.X = math.Max(box.Max.X, p.X)
		box.Max.Y = math.Max(box.Max.Y, p.Y)
	}
	return box
}

// Overlaps treats touching boxes as overlapping.
func (b AABB) Overlaps(o AABB) bool {
	return b.Min.X <= o.Max.X && b.Max.X >= o.Min.X &&
		b.Min.Y <= o.Max.Y && b.Max.Y >= o.Min.Y
}

func (b AABB) Contains(p Vector2) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X && p.Y >= b.Min.Y && p.Y <= b.Max.Y
}

func (b AABB) Union(o AABB) AABB {
	return AABB{
		Min: Vector2{math.Min(b.Min.X, o.Min.X), math.Min(b.Min.Y, o.Min.Y)},
		Max: Vector2{math.Max(b.Max.X, o.Max.X), math.Max(b.Max.Y, o.Max.Y)},
	}
}

func (b AABB) Expand(margin float64) AABB {
	m := Vector2{margin, margin}
	return AABB{Min: b.Min.Sub(m), Max: b.Max.Add(m)}
}

func (b AABB) Center() Vector2 { return b.Min.Add(b.Max).Scale(0.5) }
func (b AABB) Size() Vector2   { return b.Max.Sub(b.Min) }
