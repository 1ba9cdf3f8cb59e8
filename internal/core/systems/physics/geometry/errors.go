package geometry

import (
	"errors"
	"fmt"
)

// Precondition errors. Degenerate geometry never produces one of these;
// they signal caller bugs.
var (
	ErrDivisionByZero   = errors.New("division by zero")
	ErrIndexOutOfRange  = errors.New("index out of range")
	ErrNotEnoughPoints  = errors.New("not enough points")
	ErrInvalidRadius    = errors.New("invalid radius")
	ErrNotPolygon       = errors.New("shape is not a polygon")
	ErrNonFiniteNumeric = errors.New("non-finite value")
)

// PreconditionError reports a violated precondition of a geometry operation.
type PreconditionError struct {
	Op  string
	Err error
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("geometry: %s: %v", e.Op, e.Err)
}

func (e *PreconditionError) Unwrap() error { return e.Err }

func precondition(op string, err error) error {
	return &PreconditionError{Op: op, Err: err}
}
