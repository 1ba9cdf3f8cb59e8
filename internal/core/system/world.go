package system

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/zeusync/collide/internal/core/events/bus"
	"github.com/zeusync/collide/internal/core/models"
	"github.com/zeusync/collide/internal/core/observability/log"
	"github.com/zeusync/collide/internal/core/systems"
	"github.com/zeusync/collide/internal/core/systems/physics"
	"github.com/zeusync/collide/pkg/sequence"
)

var _ systems.World = (*World)(nil)

// World owns the objects of one simulation, the allocator handing out their
// IDs, the event bus and the systems run every tick. A World is driven from
// a single goroutine.
type World struct {
	id     uuid.UUID
	bus    bus.EventBus
	logger log.Log
	alloc  *models.Allocator

	objects []physics.Object
	index   map[models.EntityID]int

	systems []systems.System
	metrics map[string]*systems.Metrics

	tick uint64
}

type WorldOption func(*World)

func WithBus(b bus.EventBus) WorldOption {
	return func(w *World) {
		if b != nil {
			w.bus = b
		}
	}
}

func WithLogger(l log.Log) WorldOption {
	return func(w *World) {
		if l != nil {
			w.logger = l
		}
	}
}

// WithSystems registers systems at construction. Duplicates are ignored.
func WithSystems(list ...systems.System) WorldOption {
	return func(w *World) {
		for _, s := range list {
			_ = w.AddSystem(s)
		}
	}
}

func NewWorld(opts ...WorldOption) *World {
	w := &World{
		id:      uuid.New(),
		bus:     bus.New(),
		logger:  log.NewNop(),
		alloc:   models.NewAllocator(),
		index:   make(map[models.EntityID]int),
		metrics: make(map[string]*systems.Metrics),
	}
	for _, opt := range opts {
		opt(w)
	}
	w.logger = w.logger.With(log.String("world", w.id.String()))
	return w
}

func (w *World) ID() uuid.UUID     { return w.id }
func (w *World) Bus() bus.EventBus { return w.bus }
func (w *World) Logger() log.Log   { return w.logger }
func (w *World) Tick() uint64      { return w.tick }
func (w *World) Len() int          { return len(w.objects) }

// Objects returns the registered objects in registration order.
func (w *World) Objects() []physics.Object { return slices.Clone(w.objects) }

// Add registers e and assigns it a fresh ID.
func (w *World) Add(e Entity) (models.EntityID, error) {
	if e == nil {
		return models.NoEntity, ErrNilObject
	}
	if e.Hitbox() == nil {
		return models.NoEntity, physics.ErrNilHitbox
	}
	if at, ok := w.index[e.ID()]; ok && w.objects[at].Hitbox() == e.Hitbox() {
		return e.ID(), fmt.Errorf("%w: %v", ErrDuplicateObject, e.ID())
	}

	id := w.alloc.Next()
	e.SetID(id)
	w.index[id] = len(w.objects)
	w.objects = append(w.objects, e)

	w.logger.Debug("object added", log.Stringer("entity", id), log.String("inertia", e.Hitbox().Inertia().String()))
	return id, w.bus.Publish(bus.NewEvent(systems.EventObjectAdded, "world", e, w.tick))
}

// Remove unregisters the object with id and releases the ID for reuse.
func (w *World) Remove(id models.EntityID) error {
	at, ok := w.index[id]
	if !ok {
		return fmt.Errorf("%w: %v", ErrObjectNotFound, id)
	}
	obj := w.objects[at]
	w.objects = slices.Delete(w.objects, at, at+1)
	delete(w.index, id)
	for i := at; i < len(w.objects); i++ {
		w.index[w.objects[i].ID()] = i
	}
	if err := w.alloc.Release(id); err != nil {
		return err
	}

	w.logger.Debug("object removed", log.Stringer("entity", id))
	return w.bus.Publish(bus.NewEvent(systems.EventObjectRemoved, "world", obj, w.tick))
}

func (w *World) Get(id models.EntityID) (physics.Object, bool) {
	at, ok := w.index[id]
	if !ok {
		return nil, false
	}
	return w.objects[at], true
}

// AddSystem registers s; systems run by descending priority, ties in
// registration order.
func (w *World) AddSystem(s systems.System) error {
	if s == nil {
		return ErrSystemNotFound
	}
	if _, ok := w.metrics[s.Name()]; ok {
		return fmt.Errorf("%w: %s", ErrSystemExists, s.Name())
	}
	w.systems = append(w.systems, s)
	slices.SortStableFunc(w.systems, func(a, b systems.System) int {
		return int(b.Priority()) - int(a.Priority())
	})
	w.metrics[s.Name()] = &systems.Metrics{}
	return nil
}

func (w *World) RemoveSystem(name string) error {
	i := slices.IndexFunc(w.systems, func(s systems.System) bool { return s.Name() == name })
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrSystemNotFound, name)
	}
	w.systems = slices.Delete(w.systems, i, i+1)
	delete(w.metrics, name)
	return nil
}

// Systems returns system names in execution order.
func (w *World) Systems() []string {
	return sequence.ToArray(sequence.From(w.systems), systems.System.Name)
}

func (w *World) SystemMetrics(name string) (systems.Metrics, bool) {
	m, ok := w.metrics[name]
	if !ok {
		return systems.Metrics{}, false
	}
	return *m, true
}

// Update runs one tick of dt seconds through every system. A failing system
// does not stop the others; all errors are joined.
func (w *World) Update(dt float64) error {
	w.tick++
	for _, obj := range w.objects {
		if r, ok := obj.(interface{ ResetContacts() }); ok {
			r.ResetContacts()
		}
	}

	var errs []error
	for _, s := range w.systems {
		start := time.Now()
		err := s.Update(dt, w)
		w.metrics[s.Name()].Record(time.Since(start), err)
		if err != nil {
			w.logger.Error("system update failed",
				log.String("system", s.Name()),
				log.Uint64("tick", w.tick),
				log.Error(err),
			)
			errs = append(errs, fmt.Errorf("%s: %w", s.Name(), err))
		}
	}
	return errors.Join(errs...)
}
