package sequence

import (
	"iter"
	"sort"
)

// Iterator is a generic, immutable, chainable iterator for any type T.
type Iterator[T any] struct {
	seq iter.Seq[T]
}

// From creates a new Iterator over a slice. The slice is read lazily.
func From[T any](data []T) *Iterator[T] {
	return &Iterator[T]{
		seq: func(yield func(T) bool) {
			for _, v := range data {
				if !yield(v) {
					return
				}
			}
		},
	}
}

// Seq returns the underlying sequence function.
func (i *Iterator[T]) Seq() iter.Seq[T] {
	return i.seq
}

// Pull converts the iterator into a pull-style next/stop pair.
func (i *Iterator[T]) Pull() (next func() (T, bool), stop func()) {
	return iter.Pull(i.Seq())
}

// Collect exhausts the iterator into a freshly allocated slice.
func (i *Iterator[T]) Collect() []T {
	var out []T
	i.seq(func(v T) bool {
		out = append(out, v)
		return true
	})
	return out
}

// Sort returns a new Iterator with elements stably sorted by less.
func (i *Iterator[T]) Sort(less func(a, b T) bool) *Iterator[T] {
	data := i.Collect()
	sort.SliceStable(data, func(a, b int) bool {
		return less(data[a], data[b])
	})
	return From(data)
}

// Filter returns a new Iterator containing only elements that satisfy the predicate.
func (i *Iterator[T]) Filter(pred func(T) bool) *Iterator[T] {
	return &Iterator[T]{
		seq: func(yield func(T) bool) {
			i.seq(func(v T) bool {
				if pred(v) {
					return yield(v)
				}
				return true
			})
		},
	}
}

// Find returns the first element matching the predicate.
func (i *Iterator[T]) Find(pred func(T) bool) (T, bool) {
	var found T
	ok := false
	i.seq(func(v T) bool {
		if pred(v) {
			found, ok = v, true
			return false
		}
		return true
	})
	return found, ok
}

// Partition splits elements into two slices based on a predicate.
func (i *Iterator[T]) Partition(pred func(T) bool) (matches, rest []T) {
	i.seq(func(v T) bool {
		if pred(v) {
			matches = append(matches, v)
		} else {
			rest = append(rest, v)
		}
		return true
	})
	return
}

// Count returns the number of elements in the iterator.
func (i *Iterator[T]) Count() int {
	count := 0
	i.seq(func(_ T) bool {
		count++
		return true
	})
	return count
}

// ToArray maps every element through callback.
func ToArray[T any, S any](it *Iterator[T], callback func(T) S) []S {
	var arr []S
	it.seq(func(v T) bool {
		arr = append(arr, callback(v))
		return true
	})
	return arr
}
