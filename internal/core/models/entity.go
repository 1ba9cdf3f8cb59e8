package models

import "strconv"

// EntityID identifies an object registered in a world.
// Zero is never handed out and marks an unassigned object.
type EntityID uint64

const NoEntity EntityID = 0

func (id EntityID) String() string { return strconv.FormatUint(uint64(id), 10) }
