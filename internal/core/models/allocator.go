package models

import (
	"errors"

	"github.com/zeusync/collide/pkg/sequence"
)

var (
	ErrIDNotInUse = errors.New("entity id is not in use")
)

// Allocator hands out entity IDs. Released IDs are reused smallest first
// before fresh ones are minted. An Allocator belongs to one world and is not
// safe for concurrent use.
type Allocator struct {
	next     EntityID
	inUse    map[EntityID]struct{}
	reusable *sequence.PriorityQueue[EntityID]
}

func NewAllocator() *Allocator {
	return &Allocator{
		next:     1,
		inUse:    make(map[EntityID]struct{}),
		reusable: sequence.NewMinPriorityQueue[EntityID](),
	}
}

// Next returns an unused ID.
func (a *Allocator) Next() EntityID {
	id, ok := a.reusable.Dequeue()
	if !ok {
		id = a.next
		a.next++
	}
	a.inUse[id] = struct{}{}
	return id
}

// Release returns id to the pool.
func (a *Allocator) Release(id EntityID) error {
	if _, ok := a.inUse[id]; !ok {
		return ErrIDNotInUse
	}
	delete(a.inUse, id)
	a.reusable.Enqueue(id, int(id))
	return nil
}

func (a *Allocator) InUse(id EntityID) bool {
	_, ok := a.inUse[id]
	return ok
}

// Count is the number of IDs currently handed out.
func (a *Allocator) Count() int { return len(a.inUse) }
