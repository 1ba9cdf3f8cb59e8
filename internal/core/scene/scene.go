package scene

import (
	"context"
	"fmt"
	"math"

	"github.com/zeusync/collide/internal/core/observability/log"
	"github.com/zeusync/collide/internal/core/systems/physics"
	"github.com/zeusync/collide/internal/core/systems/physics/geometry"
	"github.com/zeusync/collide/pkg/concurrent"
	"github.com/zeusync/collide/pkg/sequence"
)

const (
	DefaultDeltaTime = 1.0 / 60
	DefaultMaxSteps  = 5
	DefaultLogLevel  = "info"
)

// Scene describes a simulation: fixed step settings, gravity, logging and
// the bodies to spawn. It decodes from YAML or JSON.
type Scene struct {
	Tick    Tick    `json:"tick" yaml:"tick"`
	Gravity Gravity `json:"gravity" yaml:"gravity"`
	Log     Log     `json:"log" yaml:"log"`
	Bodies  []Body  `json:"bodies" yaml:"bodies"`
}

type Tick struct {
	DeltaTime float64 `json:"delta_time" yaml:"delta_time"`
	MaxSteps  int     `json:"max_steps" yaml:"max_steps"`
}

type Gravity struct {
	Acceleration     float64 `json:"acceleration" yaml:"acceleration"`
	TerminalVelocity float64 `json:"terminal_velocity" yaml:"terminal_velocity"`
}

type Log struct {
	Level string `json:"level" yaml:"level"`
}

type Body struct {
	Name     string   `json:"name" yaml:"name"`
	Tags     []string `json:"tags,omitempty" yaml:"tags,omitempty"`
	Inertia  string   `json:"inertia" yaml:"inertia"`
	Shape    Shape    `json:"shape" yaml:"shape"`
	Position Point    `json:"position" yaml:"position"`
	Velocity Point    `json:"velocity,omitempty" yaml:"velocity,omitempty"`
}

// Shape is either a polygon (local points), a rect (width x height from the
// position) or a circle (radius around the position).
type Shape struct {
	Type   string  `json:"type" yaml:"type"`
	Points []Point `json:"points,omitempty" yaml:"points,omitempty"`
	Width  float64 `json:"width,omitempty" yaml:"width,omitempty"`
	Height float64 `json:"height,omitempty" yaml:"height,omitempty"`
	Radius float64 `json:"radius,omitempty" yaml:"radius,omitempty"`
}

type Point struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

func (p Point) Vector() geometry.Vector2 { return geometry.V(p.X, p.Y) }

// ApplyDefaults fills unset tick and log settings.
func (s *Scene) ApplyDefaults() {
	if s.Tick.DeltaTime == 0 {
		s.Tick.DeltaTime = DefaultDeltaTime
	}
	if s.Tick.MaxSteps == 0 {
		s.Tick.MaxSteps = DefaultMaxSteps
	}
	if s.Log.Level == "" {
		s.Log.Level = DefaultLogLevel
	}
}

// Validate checks the scene settings, that body names are unique, and that
// every body has a known inertia and a buildable shape.
func (s *Scene) Validate() error {
	if !(s.Tick.DeltaTime > 0) || math.IsInf(s.Tick.DeltaTime, 0) {
		return fmt.Errorf("%w: delta_time must be positive, got %v", ErrInvalidScene, s.Tick.DeltaTime)
	}
	if s.Tick.MaxSteps < 0 {
		return fmt.Errorf("%w: max_steps must not be negative", ErrInvalidScene)
	}
	if s.Gravity.TerminalVelocity < 0 {
		return fmt.Errorf("%w: terminal_velocity must not be negative", ErrInvalidScene)
	}
	if _, err := s.LogLevel(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidScene, err)
	}

	seen := make(map[string]struct{}, len(s.Bodies))
	for i, b := range s.Bodies {
		if b.Name == "" {
			return fmt.Errorf("%w: body %d has no name", ErrInvalidScene, i)
		}
		if _, dup := seen[b.Name]; dup {
			return fmt.Errorf("%w: duplicate body %q", ErrInvalidScene, b.Name)
		}
		seen[b.Name] = struct{}{}
	}

	return concurrent.Concurrent(context.Background(), sequence.From(s.Bodies), 0, func(_ context.Context, b Body) error {
		if _, err := physics.ParseInertia(b.Inertia); err != nil {
			return fmt.Errorf("body %q: %w", b.Name, err)
		}
		if _, err := b.NewShape(); err != nil {
			return fmt.Errorf("body %q: %w", b.Name, err)
		}
		return nil
	})
}

func (s *Scene) LogLevel() (log.Level, error) {
	return log.ParseLevel(s.Log.Level)
}

// NewShape builds the geometry of b at its position.
func (b Body) NewShape() (*geometry.Shape, error) {
	pos := b.Position.Vector()
	switch b.Shape.Type {
	case "polygon":
		points := make([]geometry.Vector2, len(b.Shape.Points))
		for i, p := range b.Shape.Points {
			points[i] = p.Vector()
		}
		return geometry.NewPolygon(points, pos)
	case "rect":
		if !(b.Shape.Width > 0) || !(b.Shape.Height > 0) {
			return nil, fmt.Errorf("%w: rect needs a positive width and height", ErrInvalidScene)
		}
		return geometry.NewRect(b.Shape.Width, b.Shape.Height, pos)
	case "circle":
		return geometry.NewCircle(b.Shape.Radius, pos)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownShape, b.Shape.Type)
	}
}

// NewHitbox builds the shape, inertia and velocity of b.
func (b Body) NewHitbox() (*physics.Hitbox, error) {
	inertia, err := physics.ParseInertia(b.Inertia)
	if err != nil {
		return nil, err
	}
	shape, err := b.NewShape()
	if err != nil {
		return nil, err
	}
	h, err := physics.NewHitbox(shape, inertia)
	if err != nil {
		return nil, err
	}
	if err := h.SetVelocity(b.Velocity.Vector()); err != nil {
		return nil, err
	}
	return h, nil
}
