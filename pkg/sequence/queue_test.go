package sequence

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPriorityQueueOrder(t *testing.T) {
	hi := NewPriorityQueue[string]()
	lo := NewMinPriorityQueue[string]()
	for _, q := range []*PriorityQueue[string]{hi, lo} {
		q.Enqueue("low", 1)
		q.Enqueue("high", 10)
		q.Enqueue("mid", 5)
	}

	for _, want := range []string{"high", "mid", "low"} {
		v, ok := hi.Dequeue()
		require.True(t, ok)
		assert.Equal(t, want, v)
	}
	for _, want := range []string{"low", "mid", "high"} {
		v, ok := lo.Dequeue()
		require.True(t, ok)
		assert.Equal(t, want, v)
	}

	_, ok := hi.Dequeue()
	assert.False(t, ok)
	assert.True(t, hi.IsEmpty())
}

func TestPriorityQueuePeekAndRemove(t *testing.T) {
	q := NewMinPriorityQueue[int]()
	_, ok := q.Peek()
	assert.False(t, ok)

	a := q.Enqueue(100, 1)
	q.Enqueue(200, 2)

	v, ok := q.Peek()
	require.True(t, ok)
	assert.Equal(t, 100, v)
	assert.Equal(t, 2, q.Len())

	assert.True(t, q.Remove(a))
	assert.False(t, q.Remove(a))
	assert.False(t, q.Remove(nil))

	v, ok = q.Dequeue()
	require.True(t, ok)
	assert.Equal(t, 200, v)
}
