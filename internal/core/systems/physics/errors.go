package physics

import "errors"

var (
	ErrNilObject         = errors.New("nil object")
	ErrNilHitbox         = errors.New("object has no hitbox")
	ErrInvalidDeltaTime  = errors.New("delta time must be finite and non-negative")
	ErrNonFiniteVelocity = errors.New("velocity is not finite")
	ErrUnknownInertia    = errors.New("unknown inertia")
	ErrNotSoft           = errors.New("object is not soft")
)
