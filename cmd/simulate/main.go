package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/zeusync/collide/internal/core/events/bus"
	"github.com/zeusync/collide/internal/core/observability/log"
	"github.com/zeusync/collide/internal/core/scene"
	"github.com/zeusync/collide/internal/core/systems"
	"github.com/zeusync/collide/internal/core/systems/physics"
	"github.com/zeusync/collide/internal/injector"
)

func main() {
	var (
		path     = flag.String("scene", "", "scene file (.yaml, .yml or .json)")
		ticks    = flag.Int("ticks", 60, "number of fixed steps to run; 0 runs in real time until interrupted")
		interval = flag.Duration("interval", 16*time.Millisecond, "wall clock interval between updates in real time mode")
		level    = flag.String("log-level", "", "overrides the scene log level")
	)
	flag.Parse()

	if err := run(*path, *ticks, *interval, *level); err != nil {
		fmt.Fprintln(os.Stderr, "simulate:", err)
		os.Exit(1)
	}
}

func run(path string, ticks int, interval time.Duration, level string) error {
	if path == "" {
		return errors.New("no scene file given, use -scene")
	}
	s, err := scene.Load(path)
	if err != nil {
		return err
	}
	if level != "" {
		s.Log.Level = level
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	sim, err := injector.InitializeSimulation(ctx, s)
	if err != nil {
		return err
	}
	logger := sim.Logger
	defer func() { _ = logger.Sync() }()

	sub, err := sim.World.Bus().Subscribe(systems.EventCollision, logCollisions(logger))
	if err != nil {
		return err
	}
	defer func() { _ = sub.Cancel() }()

	logger.Info("simulation started",
		log.String("scene", path),
		log.Int("bodies", len(sim.Bodies)),
		log.Float64("delta_time", s.Tick.DeltaTime),
	)

	if ticks > 0 {
		err = sim.Driver.RunSteps(ticks)
	} else {
		err = sim.Driver.Run(ctx, interval)
		if errors.Is(err, context.Canceled) {
			err = nil
		}
	}

	for _, b := range sim.Bodies {
		h := b.Hitbox()
		logger.Info("body",
			log.String("name", b.Name()),
			log.Stringer("entity", b.ID()),
			log.Stringer("position", h.Pos()),
			log.Stringer("velocity", h.Velocity()),
			log.Bool("grounded", b.Grounded()),
		)
	}

	m := sim.Driver.Metrics()
	logger.Info("simulation finished",
		log.Uint64("steps", m.Steps),
		log.Uint64("dropped_steps", m.DroppedSteps),
		log.Duration("average_step", m.AverageTime),
	)
	return err
}

func logCollisions(logger log.Log) bus.EventHandler {
	return func(e bus.Event) error {
		c, ok := e.Data().(physics.Collision)
		if !ok {
			return fmt.Errorf("unexpected %s payload %T", e.Type(), e.Data())
		}
		logger.Debug("collision",
			log.Uint64("tick", e.Tick()),
			log.Stringer("entity", c.Object.ID()),
			log.Stringer("other", c.Other.ID()),
			log.String("direction", c.Direction.String()),
			log.String("kind", c.Kind.String()),
		)
		return nil
	}
}
