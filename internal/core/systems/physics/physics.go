// Package physics detects and resolves collisions between convex 2D hitboxes.
//
// Soft hitboxes move and get redirected, hard hitboxes stay where they are.
// Detection is continuous: a soft hitbox is swept along its velocity and the
// nearest contact along the way is resolved by snapping to it and sliding
// the remaining velocity along the contact surface.
package physics

import (
	"fmt"
	"math"
	"strings"
)

// Inertia tells the solver whether a hitbox may be displaced.
type Inertia uint8

const (
	Soft Inertia = iota
	Hard
)

func (i Inertia) String() string {
	switch i {
	case Soft:
		return "soft"
	case Hard:
		return "hard"
	default:
		return fmt.Sprintf("inertia(%d)", uint8(i))
	}
}

// ParseInertia accepts "soft" or "hard", case-insensitively.
func ParseInertia(s string) (Inertia, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "soft":
		return Soft, nil
	case "hard":
		return Hard, nil
	}
	return Soft, fmt.Errorf("%w: %q", ErrUnknownInertia, s)
}

func validDelta(dt float64) bool {
	return dt >= 0 && !math.IsInf(dt, 0) && !math.IsNaN(dt)
}

func hitboxOf(o Object) (*Hitbox, error) {
	if o == nil {
		return nil, ErrNilObject
	}
	h := o.Hitbox()
	if h == nil {
		return nil, fmt.Errorf("object %v: %w", o.ID(), ErrNilHitbox)
	}
	return h, nil
}
