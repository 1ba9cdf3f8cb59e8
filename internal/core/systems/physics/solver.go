package physics

import (
	"errors"
	"fmt"
	"math"

	"github.com/zeusync/collide/internal/core/observability/log"
	"github.com/zeusync/collide/internal/core/systems/physics/geometry"
	"github.com/zeusync/collide/pkg/sequence"
)

// Solver moves soft objects through a set of obstacles. It keeps no state
// between calls.
type Solver struct {
	logger    log.Log
	maxPasses int
	hooks     []CollisionHook
}

type SolverOption func(*Solver)

func WithLogger(logger log.Log) SolverOption {
	return func(s *Solver) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithMaxPasses caps resolution passes per object. Zero means one pass per
// candidate plus one.
func WithMaxPasses(n int) SolverOption {
	return func(s *Solver) {
		if n >= 0 {
			s.maxPasses = n
		}
	}
}

func WithCollisionHook(hook CollisionHook) SolverOption {
	return func(s *Solver) {
		if hook != nil {
			s.hooks = append(s.hooks, hook)
		}
	}
}

func NewSolver(opts ...SolverOption) *Solver {
	s := &Solver{logger: log.NewNop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Report summarizes how one soft object moved during a step.
type Report struct {
	Object     Object
	Passes     int
	Collisions []Collision
	Travelled  geometry.Vector2
	// Exhausted is set when the pass cap stopped resolution early.
	Exhausted bool
}

// HandleCollisions runs one step of dt: every soft object is moved and
// resolved against all other objects, then hard objects with a velocity are
// moved as they are.
func (s *Solver) HandleCollisions(objects []Object, dt float64) ([]Report, error) {
	if !validDelta(dt) {
		return nil, ErrInvalidDeltaTime
	}
	for _, obj := range objects {
		h, err := hitboxOf(obj)
		if err != nil {
			return nil, err
		}
		h.UpdatePredict(dt)
	}

	soft, hard := sequence.From(objects).Partition(func(o Object) bool { return o.Hitbox().IsSoft() })

	reports := make([]Report, 0, len(soft))
	var errs []error
	for _, obj := range soft {
		report, err := s.Move(obj, objects, dt)
		if err != nil {
			errs = append(errs, fmt.Errorf("object %v: %w", obj.ID(), err))
			continue
		}
		reports = append(reports, report)
	}

	for _, obj := range hard {
		h := obj.Hitbox()
		if h.Velocity().IsZero() {
			continue
		}
		h.Translate(h.Motion(dt))
		h.UpdatePredict(0)
	}
	return reports, errors.Join(errs...)
}

// Move sweeps one soft object along its velocity for dt and resolves every
// contact on the way: the object snaps to the contact, its velocity loses
// the component pushing into the surface, and the rest of the step is
// retried with the remaining time. Each pass resolves at least one
// candidate and removes it from the set, so the loop ends after at most
// one pass per candidate plus one.
func (s *Solver) Move(obj Object, objects []Object, dt float64) (Report, error) {
	report := Report{Object: obj}
	if !validDelta(dt) {
		return report, ErrInvalidDeltaTime
	}
	h, err := hitboxOf(obj)
	if err != nil {
		return report, err
	}
	if !h.IsSoft() {
		return report, ErrNotSoft
	}
	if !h.Velocity().IsFinite() {
		return report, ErrNonFiniteVelocity
	}

	candidates := sequence.From(objects).Filter(func(o Object) bool {
		return o != nil && o.Hitbox() != nil && o.Hitbox() != h
	}).Collect()

	start := h.Pos()
	s.depenetrate(obj, h, candidates)

	limit := s.maxPasses
	if limit == 0 {
		limit = len(candidates) + 1
	}

	logger := s.logger.With(log.String("entity", obj.ID().String()))
	resolved := make(map[*Hitbox]struct{}, len(candidates))
	var surfaces []geometry.Vector2
	left := dt

	for {
		if h.Velocity().IsZero() || left <= 0 {
			break
		}
		if report.Passes >= limit {
			report.Exhausted = true
			logger.Warn("resolution pass limit reached", log.Int("passes", report.Passes))
			break
		}
		report.Passes++

		h.UpdatePredict(left)
		collisions, err := s.scan(obj, h, candidates, resolved, left)
		if err != nil {
			return report, err
		}
		if len(collisions) == 0 {
			h.Translate(h.Motion(left))
			break
		}

		first := collisions[0]
		h.Translate(first.Separation)
		left *= 1 - first.Fraction

		for _, c := range collisions {
			if math.Abs(c.Fraction-first.Fraction) > geometry.Epsilon {
				break
			}
			_ = h.SetVelocity(h.Velocity().ProjectOnto(c.Normal.Normal()))
			resolved[c.Other.Hitbox()] = struct{}{}
			surfaces = append(surfaces, c.Normal)
			report.Collisions = append(report.Collisions, c)
			s.notify(c)

			logger.Debug("collision resolved",
				log.Int("pass", report.Passes),
				log.String("other", c.Other.ID().String()),
				log.Float64("fraction", c.Fraction),
				log.String("kind", c.Kind.String()),
				log.String("direction", c.Direction.String()),
			)
		}

		// Sliding off one surface straight into another wedges the object.
		for _, n := range surfaces {
			if h.Velocity().Dot(n) < -geometry.Epsilon {
				_ = h.SetVelocity(geometry.Zero)
				break
			}
		}
	}

	h.UpdatePredict(0)
	report.Travelled = h.Pos().Sub(start)
	return report, nil
}

// scan returns the collisions of h against the unresolved candidates for a
// step of dt, nearest first.
func (s *Solver) scan(obj Object, h *Hitbox, candidates []Object, resolved map[*Hitbox]struct{}, dt float64) ([]Collision, error) {
	bounds := h.Bounds()
	active := sequence.From(candidates).Filter(func(o Object) bool {
		if _, done := resolved[o.Hitbox()]; done {
			return false
		}
		return bounds.Overlaps(o.Hitbox().Shape().Bounds())
	}).Collect()
	if len(active) == 0 {
		return nil, nil
	}

	// Polygons are pre-filtered by the sweep; circles always go through
	// the discrete test.
	targets := make([]Object, 0, len(active))
	if !h.Shape().IsCircle() {
		motion := h.Motion(dt)
		for _, hit := range ShapecastAll(h.Shape(), motion, motion.Len(), active) {
			targets = append(targets, hit.Object)
		}
	}
	for _, o := range active {
		if h.Shape().IsCircle() || o.Hitbox().Shape().IsCircle() {
			targets = append(targets, o)
		}
	}

	var collisions []Collision
	for _, other := range targets {
		c, err := GetCollisionData(obj, other, dt)
		if err != nil {
			return nil, err
		}
		if c.Kind == NoContact {
			continue
		}
		collisions = append(collisions, c)
	}
	return sequence.From(collisions).Sort(func(a, b Collision) bool {
		if math.Abs(a.Fraction-b.Fraction) <= geometry.Epsilon {
			return a.Kind == EdgeContact && b.Kind != EdgeContact
		}
		return a.Fraction < b.Fraction
	}).Collect(), nil
}

// depenetrate pushes h out of every candidate it already overlaps.
func (s *Solver) depenetrate(obj Object, h *Hitbox, candidates []Object) {
	for _, other := range candidates {
		mtv, err := h.CheckCollision(other.Hitbox())
		if err != nil || mtv.Depth <= geometry.Epsilon {
			continue
		}
		h.Translate(mtv.Vector())
		s.logger.Debug("object depenetrated",
			log.String("entity", obj.ID().String()),
			log.String("other", other.ID().String()),
			log.Float64("depth", mtv.Depth),
		)
	}
}

func (s *Solver) notify(c Collision) {
	c.Object.OnCollide(c.Other, c)
	c.Other.OnCollide(c.Object, c.Mirror())
	for _, hook := range s.hooks {
		hook(c)
	}
}
