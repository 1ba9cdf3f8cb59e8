package scene

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeusync/collide/internal/core/events/bus"
	"github.com/zeusync/collide/internal/core/observability/log"
	"github.com/zeusync/collide/internal/core/system"
	"github.com/zeusync/collide/internal/core/systems"
	"github.com/zeusync/collide/internal/core/systems/physics"
	"github.com/zeusync/collide/internal/core/systems/physics/geometry"
)

func TestLoadYAML(t *testing.T) {
	s, err := Load("testdata/landing.yaml")
	require.NoError(t, err)

	assert.InDelta(t, 1.0/60, s.Tick.DeltaTime, 1e-12)
	assert.Equal(t, 3, s.Tick.MaxSteps)
	level, err := s.LogLevel()
	require.NoError(t, err)
	assert.Equal(t, log.LevelDebug, level)

	require.Len(t, s.Bodies, 3)
	assert.Equal(t, "player", s.Bodies[0].Name)
	assert.Equal(t, []string{"player"}, s.Bodies[0].Tags)
	assert.Equal(t, Point{X: 0, Y: 600}, s.Bodies[0].Velocity)
	assert.Len(t, s.Bodies[1].Shape.Points, 4)
	assert.Equal(t, "circle", s.Bodies[2].Shape.Type)
}

func TestLoadJSONDefaults(t *testing.T) {
	s, err := Load("testdata/landing.json")
	require.NoError(t, err)

	assert.InDelta(t, DefaultDeltaTime, s.Tick.DeltaTime, 1e-12)
	assert.Equal(t, DefaultMaxSteps, s.Tick.MaxSteps)
	assert.Equal(t, DefaultLogLevel, s.Log.Level)
	assert.InDelta(t, 1200, s.Gravity.Acceleration, 1e-12)
	assert.InDelta(t, 900, s.Gravity.TerminalVelocity, 1e-12)
	require.Len(t, s.Bodies, 2)
}

func TestLoadUnknownFormat(t *testing.T) {
	_, err := Load("testdata/landing.toml")
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestLoadRejectsBadShapes(t *testing.T) {
	doc := `
bodies:
  - name: player
    inertia: soft
    shape: {type: rect, width: 32, height: 32}
  - name: blob
    inertia: hard
    shape: {type: blob}
`
	_, err := LoadYAML(strings.NewReader(doc))
	assert.ErrorIs(t, err, ErrUnknownShape)
	assert.Contains(t, err.Error(), "blob")
}

func TestLoadRejectsUnknownFields(t *testing.T) {
	_, err := LoadYAML(strings.NewReader("tick:\n  delta: 1\n"))
	assert.Error(t, err)

	_, err = LoadJSON(strings.NewReader(`{"ticks": {}}`))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	body := func(name, inertia string) Body {
		return Body{Name: name, Inertia: inertia, Shape: Shape{Type: "rect", Width: 1, Height: 1}}
	}

	tests := []struct {
		name  string
		scene Scene
		err   error
	}{
		{"negative delta", Scene{Tick: Tick{DeltaTime: -1}}, ErrInvalidScene},
		{"negative steps", Scene{Tick: Tick{MaxSteps: -2}}, ErrInvalidScene},
		{"negative terminal velocity", Scene{Gravity: Gravity{TerminalVelocity: -1}}, ErrInvalidScene},
		{"bad log level", Scene{Log: Log{Level: "loud"}}, ErrInvalidScene},
		{"unnamed body", Scene{Bodies: []Body{body("", "soft")}}, ErrInvalidScene},
		{"duplicate body", Scene{Bodies: []Body{body("a", "soft"), body("a", "hard")}}, ErrInvalidScene},
		{"bad inertia", Scene{Bodies: []Body{body("a", "squishy")}}, ErrUnknownInertia},
		{"unknown shape", Scene{Bodies: []Body{body("a", "soft"), {Name: "b", Inertia: "hard", Shape: Shape{Type: "star"}}}}, ErrUnknownShape},
		{"two point polygon", Scene{Bodies: []Body{{Name: "a", Inertia: "hard", Shape: Shape{Type: "polygon", Points: []Point{{0, 0}, {1, 0}}}}}}, geometry.ErrNotEnoughPoints},
		{"zero radius", Scene{Bodies: []Body{{Name: "a", Inertia: "soft", Shape: Shape{Type: "circle"}}}}, geometry.ErrInvalidRadius},
		{"valid", Scene{Bodies: []Body{body("a", "soft"), body("b", "HARD")}}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := tt.scene
			s.ApplyDefaults()
			err := s.Validate()
			if tt.err == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestBodyNewShape(t *testing.T) {
	b := Body{Shape: Shape{Type: "circle", Radius: 4}, Position: Point{X: 1, Y: 2}}
	s, err := b.NewShape()
	require.NoError(t, err)
	assert.True(t, s.IsCircle())
	assert.Equal(t, geometry.V(1, 2), s.Pos())

	_, err = Body{Shape: Shape{Type: "star"}}.NewShape()
	assert.ErrorIs(t, err, ErrUnknownShape)

	_, err = Body{Shape: Shape{Type: "rect", Width: 1}}.NewShape()
	assert.ErrorIs(t, err, ErrInvalidScene)

	_, err = Body{Shape: Shape{Type: "polygon", Points: []Point{{0, 0}, {1, 0}}}}.NewShape()
	assert.ErrorIs(t, err, geometry.ErrNotEnoughPoints)

	_, err = Body{Shape: Shape{Type: "circle"}}.NewShape()
	assert.ErrorIs(t, err, geometry.ErrInvalidRadius)
}

func TestBuild(t *testing.T) {
	s, err := Load("testdata/landing.yaml")
	require.NoError(t, err)

	w := system.NewWorld(system.WithSystems(systems.NewCollisionSystem(physics.NewSolver())))
	bodies, err := s.Build(context.Background(), w)
	require.NoError(t, err)
	require.Len(t, bodies, 3)
	assert.Equal(t, 3, w.Len())

	player := bodies[0]
	assert.Equal(t, "player", player.Name())
	assert.True(t, player.Hitbox().IsSoft())
	assert.True(t, bodies[1].HasTag("ground"))
	assert.True(t, bodies[2].Hitbox().Shape().IsCircle())

	require.NoError(t, w.Update(s.Tick.DeltaTime))
	assert.InDelta(t, 68, player.Hitbox().Pos().Y, 1e-9)
	assert.True(t, player.Grounded())
}

func TestBuildRegistersNothingOnError(t *testing.T) {
	s := &Scene{Bodies: []Body{
		{Name: "ok", Inertia: "hard", Shape: Shape{Type: "rect", Width: 1, Height: 1}},
		{Name: "broken", Inertia: "hard", Shape: Shape{Type: "polygon"}},
	}}
	w := system.NewWorld()
	_, err := s.Build(context.Background(), w)
	require.Error(t, err)
	assert.ErrorIs(t, err, geometry.ErrNotEnoughPoints)
	assert.Contains(t, err.Error(), "broken")
	assert.Zero(t, w.Len())
}

func TestBuildRollsBackOnRegisterError(t *testing.T) {
	s := &Scene{Bodies: []Body{
		{Name: "first", Inertia: "hard", Shape: Shape{Type: "rect", Width: 1, Height: 1}},
		{Name: "second", Inertia: "soft", Shape: Shape{Type: "rect", Width: 1, Height: 1}},
		{Name: "third", Inertia: "hard", Shape: Shape{Type: "circle", Radius: 1}},
	}}
	refused := errors.New("refused")
	b := bus.New()
	_, err := b.Subscribe(systems.EventObjectAdded, func(e bus.Event) error {
		if body, ok := e.Data().(*system.Body); ok && body.Name() == "second" {
			return refused
		}
		return nil
	})
	require.NoError(t, err)

	w := system.NewWorld(system.WithBus(b))
	bodies, err := s.Build(context.Background(), w)
	require.Error(t, err)
	assert.Nil(t, bodies)
	assert.ErrorIs(t, err, refused)
	assert.Contains(t, err.Error(), "second")
	assert.Zero(t, w.Len())
}
