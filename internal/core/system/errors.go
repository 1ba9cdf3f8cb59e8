package system

import "errors"

var (
	ErrNilObject       = errors.New("nil object")
	ErrObjectNotFound  = errors.New("object not found")
	ErrDuplicateObject = errors.New("object already registered")
	ErrSystemExists    = errors.New("system already registered")
	ErrSystemNotFound  = errors.New("system not found")
	ErrInvalidStep     = errors.New("step must be positive and finite")
)
