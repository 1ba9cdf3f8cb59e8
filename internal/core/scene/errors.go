package scene

import (
	"errors"

	"github.com/zeusync/collide/internal/core/systems/physics"
)

var (
	ErrInvalidScene   = errors.New("invalid scene")
	ErrUnknownShape   = errors.New("unknown shape type")
	ErrUnknownInertia = physics.ErrUnknownInertia
	ErrUnknownFormat  = errors.New("unknown scene file format")
)
