package system

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/zeusync/collide/internal/core/observability/log"
)

type countStepper struct {
	steps []float64
	err   error
}

func (s *countStepper) Update(dt float64) error {
	s.steps = append(s.steps, dt)
	return s.err
}

func TestNewDriverValidates(t *testing.T) {
	_, err := NewDriver(nil, 0.25)
	assert.ErrorIs(t, err, ErrNilObject)

	for _, step := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		_, err := NewDriver(&countStepper{}, step)
		assert.ErrorIs(t, err, ErrInvalidStep, "step %v", step)
	}
}

func TestDriverAccumulates(t *testing.T) {
	s := &countStepper{}
	d, err := NewDriver(s, 0.25)
	require.NoError(t, err)

	ran, err := d.Advance(0.125)
	require.NoError(t, err)
	assert.Zero(t, ran)
	assert.InDelta(t, 0.5, d.Alpha(), 1e-12)

	ran, err = d.Advance(0.5)
	require.NoError(t, err)
	assert.Equal(t, 2, ran)
	assert.InDelta(t, 0.5, d.Alpha(), 1e-12)
	assert.Equal(t, []float64{0.25, 0.25}, s.steps)
	assert.Equal(t, uint64(2), d.Metrics().Steps)

	_, err = d.Advance(-1)
	assert.ErrorIs(t, err, ErrInvalidStep)
}

func TestDriverDropsSurplusSteps(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	s := &countStepper{}
	d, err := NewDriver(s, 0.25, WithMaxSteps(2), WithDriverLogger(log.FromCore(core, log.LevelDebug)))
	require.NoError(t, err)

	ran, err := d.Advance(1.5)
	require.NoError(t, err)
	assert.Equal(t, 2, ran)
	assert.Len(t, s.steps, 2)
	assert.Equal(t, uint64(4), d.Metrics().DroppedSteps)
	assert.InDelta(t, 0, d.Alpha(), 1e-12)
	assert.Equal(t, 1, logs.FilterMessage("simulation falling behind, dropping steps").Len())
}

func TestDriverStepError(t *testing.T) {
	boom := errors.New("boom")
	s := &countStepper{err: boom}
	d, err := NewDriver(s, 0.25)
	require.NoError(t, err)

	ran, err := d.Advance(0.5)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, ran)

	m := d.Metrics()
	assert.Equal(t, uint64(1), m.Errors)
	assert.ErrorIs(t, m.LastError, boom)

	assert.ErrorIs(t, d.RunSteps(3), boom)
}

func TestDriverRunSteps(t *testing.T) {
	s := &countStepper{}
	d, err := NewDriver(s, 0.5)
	require.NoError(t, err)

	require.NoError(t, d.RunSteps(3))
	assert.Equal(t, []float64{0.5, 0.5, 0.5}, s.steps)
	assert.Zero(t, d.Alpha())
}

func TestDriverRunStopsWithContext(t *testing.T) {
	s := &countStepper{}
	d, err := NewDriver(s, 0.001)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err = d.Run(ctx, 5*time.Millisecond)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.NotEmpty(t, s.steps)

	assert.ErrorIs(t, d.Run(context.Background(), 0), ErrInvalidStep)
}
