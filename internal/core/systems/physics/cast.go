package physics

import (
	"github.com/zeusync/collide/internal/core/systems/physics/geometry"
	"github.com/zeusync/collide/pkg/generic"
	"github.com/zeusync/collide/pkg/sequence"
)

// Hit is one intersection found by a cast.
type Hit struct {
	Object Object
	// Point is where the cast touches the object.
	Point geometry.Vector2
	// Normal is the unit surface normal at Point, facing the cast.
	Normal geometry.Vector2
	// Separation is how far the cast origin travels before touching.
	Separation geometry.Vector2
	// Centroid is where the cast shape's center ends up on contact.
	Centroid geometry.Vector2
	// Fraction of the cast distance, in [0, 1].
	Fraction float64
}

var hitBuffers = generic.NewResetPool(func() *[]Hit {
	buf := make([]Hit, 0, 16)
	return &buf
}, func(buf *[]Hit) *[]Hit {
	clear(*buf)
	*buf = (*buf)[:0]
	return buf
})

func byFraction(a, b Hit) bool { return a.Fraction < b.Fraction }

func nearest(hits []Hit) (Hit, bool) {
	if len(hits) == 0 {
		return Hit{}, false
	}
	best := hits[0]
	for _, h := range hits[1:] {
		if h.Fraction < best.Fraction {
			best = h
		}
	}
	return best, true
}

// Linecast returns the nearest hit of the segment against the candidates.
func Linecast(line geometry.Edge, candidates []Object) (Hit, bool) {
	return nearest(LinecastAll(line, candidates))
}

// LinecastAll returns every edge or circle the segment crosses, nearest first.
func LinecastAll(line geometry.Edge, candidates []Object) []Hit {
	var hits []Hit
	for _, obj := range candidates {
		if obj == nil || obj.Hitbox() == nil {
			continue
		}
		hits = appendLineHits(hits, line, obj)
	}
	return sequence.From(hits).Sort(byFraction).Collect()
}

func appendLineHits(hits []Hit, line geometry.Edge, obj Object) []Hit {
	shape := obj.Hitbox().Shape()
	slope := line.Slope()

	if shape.IsCircle() {
		t, ok := line.CircleFraction(shape.Pos(), shape.Radius())
		if !ok {
			return hits
		}
		point := line.First.Add(slope.Scale(t))
		return append(hits, Hit{
			Object:     obj,
			Point:      point,
			Normal:     point.Sub(shape.Pos()).Normalized(),
			Separation: slope.Scale(t),
			Centroid:   point,
			Fraction:   t,
		})
	}

	for i, edge := range shape.Edges() {
		t, _, ok := line.Fractions(edge)
		if !ok {
			continue
		}
		normal, _ := shape.EdgeNormal(i)
		point := line.First.Add(slope.Scale(t))
		hits = append(hits, Hit{
			Object:     obj,
			Point:      point,
			Normal:     normal,
			Separation: slope.Scale(t),
			Centroid:   point,
			Fraction:   t,
		})
	}
	return hits
}

// Raycast casts from origin along direction for distance. A zero direction
// or a non-positive distance never hits.
func Raycast(origin, direction geometry.Vector2, distance float64, candidates []Object) (Hit, bool) {
	return nearest(RaycastAll(origin, direction, distance, candidates))
}

func RaycastAll(origin, direction geometry.Vector2, distance float64, candidates []Object) []Hit {
	motion := direction.Normalized().Scale(distance)
	if motion.IsZero() || distance <= 0 {
		return nil
	}
	return LinecastAll(geometry.Edge{First: origin, Second: origin.Add(motion)}, candidates)
}

// Edgecast sweeps edge along direction for distance and returns the nearest
// hit. Circles are not edge-cast targets.
func Edgecast(edge geometry.Edge, direction geometry.Vector2, distance float64, candidates []Object) (Hit, bool) {
	return nearest(EdgecastAll(edge, direction, distance, candidates))
}

// EdgecastAll returns the nearest hit per candidate, nearest first.
func EdgecastAll(edge geometry.Edge, direction geometry.Vector2, distance float64, candidates []Object) []Hit {
	dir := direction.Normalized()
	motion := dir.Scale(distance)
	if motion.IsZero() || distance <= 0 {
		return nil
	}

	quad := geometry.Sweep(edge, motion)
	var hits []Hit
	for _, obj := range candidates {
		if obj == nil || obj.Hitbox() == nil || obj.Hitbox().Shape().IsCircle() {
			continue
		}
		mtv, err := geometry.CheckCollision(quad, obj.Hitbox().Shape())
		if err != nil || !mtv.Colliding() {
			continue
		}
		if hit, ok := edgecastOne(edge, dir, motion, obj); ok {
			hits = append(hits, hit)
		}
	}
	return sequence.From(hits).Sort(byFraction).Collect()
}

func edgecastOne(edge geometry.Edge, dir, motion geometry.Vector2, obj Object) (Hit, bool) {
	shape := obj.Hitbox().Shape()
	var (
		best  Hit
		found bool
	)
	keep := func(h Hit) {
		if !found || h.Fraction < best.Fraction {
			best, found = h, true
		}
	}

	// Target vertices travelling backwards into the edge.
	facing := edge.Normal().Normalized()
	if facing.Dot(dir) > 0 {
		facing = facing.Neg()
	}
	back := motion.Neg()
	for i, v := range shape.Vertices() {
		if !vertexLeads(shape, i, back) {
			continue
		}
		t, _, ok := geometry.Edge{First: v, Second: v.Add(back)}.Fractions(edge)
		if !ok {
			continue
		}
		keep(Hit{Object: obj, Point: v, Normal: facing, Separation: motion.Scale(t), Fraction: t})
	}

	// The edge's side rays travelling forward into target edges.
	for _, p := range []geometry.Vector2{edge.First, edge.Second} {
		ray := geometry.Edge{First: p, Second: p.Add(motion)}
		for i, target := range shape.Edges() {
			normal, _ := shape.EdgeNormal(i)
			if normal.Dot(dir) >= -geometry.Epsilon {
				continue
			}
			t, _, ok := ray.Fractions(target)
			if !ok {
				continue
			}
			keep(Hit{Object: obj, Point: p.Add(motion.Scale(t)), Normal: normal, Separation: motion.Scale(t), Fraction: t})
		}
	}
	return best, found
}

// Shapecast sweeps every edge of shape that faces direction and returns the
// nearest hit overall.
func Shapecast(shape *geometry.Shape, direction geometry.Vector2, distance float64, candidates []Object) (Hit, bool) {
	return nearest(ShapecastAll(shape, direction, distance, candidates))
}

// ShapecastAll returns the nearest hit per candidate, nearest first. Circle
// shapes have no edges and never hit anything here.
func ShapecastAll(shape *geometry.Shape, direction geometry.Vector2, distance float64, candidates []Object) []Hit {
	dir := direction.Normalized()
	if shape == nil || shape.IsCircle() || dir.IsZero() || distance <= 0 {
		return nil
	}

	bufp := hitBuffers.Get()
	defer hitBuffers.Put(bufp)

	for i, edge := range shape.Edges() {
		normal, _ := shape.EdgeNormal(i)
		if normal.Dot(dir) <= geometry.Epsilon {
			continue
		}
		*bufp = append(*bufp, EdgecastAll(edge, dir, distance, candidates)...)
	}

	center := shape.Center()
	index := make(map[*Hitbox]int, len(*bufp))
	var hits []Hit
	for _, h := range *bufp {
		h.Centroid = center.Add(h.Separation)
		key := h.Object.Hitbox()
		if at, ok := index[key]; ok {
			if h.Fraction < hits[at].Fraction {
				hits[at] = h
			}
			continue
		}
		index[key] = len(hits)
		hits = append(hits, h)
	}
	return sequence.From(hits).Sort(byFraction).Collect()
}

// vertexLeads reports whether vertex i sits on the side of shape that faces
// dir, i.e. one of its two edges points along dir.
func vertexLeads(shape *geometry.Shape, i int, dir geometry.Vector2) bool {
	n := shape.Len()
	prev, _ := shape.EdgeNormal((i + n - 1) % n)
	next, _ := shape.EdgeNormal(i)
	d := dir.Normalized()
	return prev.Dot(d) > geometry.Epsilon || next.Dot(d) > geometry.Epsilon
}
