package scene

import (
	"context"
	"errors"
	"fmt"

	"github.com/zeusync/collide/internal/core/system"
	"github.com/zeusync/collide/internal/core/systems/physics"
	"github.com/zeusync/collide/pkg/concurrent"
	"github.com/zeusync/collide/pkg/sequence"
)

// Build constructs every body of the scene and registers it with w in file
// order. Shapes are built concurrently. Either every body ends up registered
// or none does: a failed registration removes the bodies added before it.
func (s *Scene) Build(ctx context.Context, w *system.World) ([]*system.Body, error) {
	bodies, err := concurrent.ParallelMap(ctx, sequence.From(s.Bodies), 0, func(_ context.Context, b Body) (*system.Body, error) {
		hitbox, err := b.NewHitbox()
		if err != nil {
			return nil, fmt.Errorf("body %q: %w", b.Name, err)
		}
		return system.NewBody(b.Name, hitbox, system.WithTags(b.Tags...))
	})
	if err != nil {
		return nil, err
	}

	for _, b := range bodies {
		if _, err := w.Add(b); err != nil {
			err = fmt.Errorf("register %q: %w", b.Name(), err)
			return nil, errors.Join(err, unregister(w, bodies))
		}
	}
	return bodies, nil
}

// unregister removes those of bodies that w currently holds.
func unregister(w *system.World, bodies []*system.Body) error {
	var errs []error
	for _, b := range bodies {
		got, ok := w.Get(b.ID())
		if !ok || got != physics.Object(b) {
			continue
		}
		if err := w.Remove(b.ID()); err != nil {
			errs = append(errs, fmt.Errorf("unregister %q: %w", b.Name(), err))
		}
	}
	return errors.Join(errs...)
}
