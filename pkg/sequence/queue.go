package sequence

import "container/heap"

type PriorityItem[T any] struct {
	Value    T
	Priority int
	index    int
}

type priorityQueue[T any] struct {
	items []*PriorityItem[T]
	// before reports whether priority a is served ahead of priority b.
	before func(a, b int) bool
}

func (pq *priorityQueue[T]) Len() int {
	return len(pq.items)
}

func (pq *priorityQueue[T]) Less(i, j int) bool {
	return pq.before(pq.items[i].Priority, pq.items[j].Priority)
}

func (pq *priorityQueue[T]) Swap(i, j int) {
	pq.items[i], pq.items[j] = pq.items[j], pq.items[i]
	pq.items[i].index = i
	pq.items[j].index = j
}

func (pq *priorityQueue[T]) Push(x any) {
	item := x.(*PriorityItem[T])
	item.index = len(pq.items)
	pq.items = append(pq.items, item)
}

func (pq *priorityQueue[T]) Pop() any {
	old := pq.items
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	item.index = -1
	pq.items = old[0 : n-1]
	return item
}

// PriorityQueue is a heap-backed queue. It is not safe for concurrent use.
type PriorityQueue[T any] struct {
	pq priorityQueue[T]
}

// NewPriorityQueue serves the highest priority first.
func NewPriorityQueue[T any]() *PriorityQueue[T] {
	return newQueue[T](func(a, b int) bool { return a > b })
}

// NewMinPriorityQueue serves the lowest priority first.
func NewMinPriorityQueue[T any]() *PriorityQueue[T] {
	return newQueue[T](func(a, b int) bool { return a < b })
}

func newQueue[T any](before func(a, b int) bool) *PriorityQueue[T] {
	pq := &PriorityQueue[T]{pq: priorityQueue[T]{before: before}}
	heap.Init(&pq.pq)
	return pq
}

func (pq *PriorityQueue[T]) Enqueue(value T, priority int) *PriorityItem[T] {
	item := &PriorityItem[T]{
		Value:    value,
		Priority: priority,
	}
	heap.Push(&pq.pq, item)
	return item
}

func (pq *PriorityQueue[T]) Dequeue() (T, bool) {
	if pq.pq.Len() == 0 {
		var zero T
		return zero, false
	}
	item := heap.Pop(&pq.pq).(*PriorityItem[T])
	return item.Value, true
}

func (pq *PriorityQueue[T]) Peek() (T, bool) {
	if pq.pq.Len() == 0 {
		var zero T
		return zero, false
	}
	return pq.pq.items[0].Value, true
}

// Remove drops item from the queue if it is still queued.
func (pq *PriorityQueue[T]) Remove(item *PriorityItem[T]) bool {
	if item == nil || item.index < 0 || item.index >= pq.pq.Len() || pq.pq.items[item.index] != item {
		return false
	}
	heap.Remove(&pq.pq, item.index)
	return true
}

func (pq *PriorityQueue[T]) Len() int {
	return pq.pq.Len()
}

func (pq *PriorityQueue[T]) IsEmpty() bool {
	return pq.pq.Len() == 0
}
