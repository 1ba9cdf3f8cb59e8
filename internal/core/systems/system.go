package systems

import (
	"time"

	"github.com/zeusync/collide/internal/core/events/bus"
	"github.com/zeusync/collide/internal/core/observability/log"
	"github.com/zeusync/collide/internal/core/systems/physics"
)

// System is a per-tick processor run by a world.
type System interface {
	Name() string
	Priority() Priority
	// Update advances the system by dt seconds.
	Update(dt float64, world World) error
}

// World is the view of the simulation a system gets during Update.
type World interface {
	// Objects returns the registered objects in registration order.
	Objects() []physics.Object
	Bus() bus.EventBus
	Logger() log.Log
	// Tick is the number of the step being executed, starting at 1.
	Tick() uint64
}

// Priority defines execution order; higher runs first.
type Priority uint16

const (
	PriorityLowest  Priority = 200
	PriorityLow     Priority = 500
	PriorityNormal  Priority = 600
	PriorityHigh    Priority = 1000
	PriorityHighest Priority = 1300
)

// Metrics provides runtime metrics for a system.
type Metrics struct {
	ExecutionCount       uint64
	TotalExecutionTime   time.Duration
	AverageExecutionTime time.Duration
	MaxExecutionTime     time.Duration
	ErrorCount           uint64
	LastError            error
	LastExecutionTime    time.Time
}

// Record adds one execution to m.
func (m *Metrics) Record(took time.Duration, err error) {
	m.ExecutionCount++
	m.TotalExecutionTime += took
	m.AverageExecutionTime = m.TotalExecutionTime / time.Duration(m.ExecutionCount)
	if took > m.MaxExecutionTime {
		m.MaxExecutionTime = took
	}
	if err != nil {
		m.ErrorCount++
		m.LastError = err
	}
	m.LastExecutionTime = time.Now()
}
