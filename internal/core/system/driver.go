package system

import (
	"context"
	"math"
	"time"

	"github.com/zeusync/collide/internal/core/observability/log"
)

// Stepper advances a simulation by one fixed step.
type Stepper interface {
	Update(dt float64) error
}

// DriverMetrics counts what a Driver did since it was created.
type DriverMetrics struct {
	Steps        uint64
	DroppedSteps uint64
	Errors       uint64
	LastError    error
	TotalTime    time.Duration
	AverageTime  time.Duration
}

// Driver feeds wall-clock time into a Stepper in fixed steps. Elapsed time
// accumulates and is consumed step by step; when more than MaxSteps would be
// due at once the surplus is dropped so a slow tick cannot snowball.
type Driver struct {
	target   Stepper
	step     float64
	maxSteps int
	logger   log.Log

	acc     float64
	metrics DriverMetrics
}

type DriverOption func(*Driver)

func WithMaxSteps(n int) DriverOption {
	return func(d *Driver) {
		if n > 0 {
			d.maxSteps = n
		}
	}
}

func WithDriverLogger(l log.Log) DriverOption {
	return func(d *Driver) {
		if l != nil {
			d.logger = l
		}
	}
}

const defaultMaxSteps = 5

func NewDriver(target Stepper, step float64, opts ...DriverOption) (*Driver, error) {
	if target == nil {
		return nil, ErrNilObject
	}
	if !(step > 0) || math.IsInf(step, 0) {
		return nil, ErrInvalidStep
	}
	d := &Driver{
		target:   target,
		step:     step,
		maxSteps: defaultMaxSteps,
		logger:   log.NewNop(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d, nil
}

func (d *Driver) Step() float64          { return d.step }
func (d *Driver) Metrics() DriverMetrics { return d.metrics }

// Alpha is the unconsumed share of a step, in [0, 1), for interpolating
// between the last two states.
func (d *Driver) Alpha() float64 { return d.acc / d.step }

// Advance adds elapsed seconds and runs every step that became due. It
// returns how many steps ran.
func (d *Driver) Advance(elapsed float64) (int, error) {
	if elapsed < 0 || math.IsNaN(elapsed) || math.IsInf(elapsed, 0) {
		return 0, ErrInvalidStep
	}
	d.acc += elapsed

	due := int(d.acc / d.step)
	if due > d.maxSteps {
		dropped := due - d.maxSteps
		d.metrics.DroppedSteps += uint64(dropped)
		d.logger.Warn("simulation falling behind, dropping steps",
			log.Int("due", due),
			log.Int("dropped", dropped),
		)
		d.acc -= float64(dropped) * d.step
		due = d.maxSteps
	}

	ran := 0
	for ; ran < due; ran++ {
		d.acc -= d.step
		if err := d.run(); err != nil {
			return ran + 1, err
		}
	}
	if d.acc < 0 {
		d.acc = 0
	}
	return ran, nil
}

// RunSteps runs n steps back to back, ignoring the accumulator.
func (d *Driver) RunSteps(n int) error {
	for range n {
		if err := d.run(); err != nil {
			return err
		}
	}
	return nil
}

// Run advances the simulation in real time every interval until ctx is done.
// Step errors are logged and counted, they do not stop the loop.
func (d *Driver) Run(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		return ErrInvalidStep
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.C:
			elapsed := now.Sub(last).Seconds()
			last = now
			if _, err := d.Advance(elapsed); err != nil {
				d.logger.Error("simulation step failed", log.Error(err))
			}
		}
	}
}

func (d *Driver) run() error {
	start := time.Now()
	err := d.target.Update(d.step)
	d.metrics.Steps++
	d.metrics.TotalTime += time.Since(start)
	d.metrics.AverageTime = d.metrics.TotalTime / time.Duration(d.metrics.Steps)
	if err != nil {
		d.metrics.Errors++
		d.metrics.LastError = err
	}
	return err
}
