package ringbuffer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRingBufferFIFO(t *testing.T) {
	rb := New[int](3)
	assert.Equal(t, 3, rb.Cap())

	require.True(t, rb.Push(1))
	require.True(t, rb.Push(2))
	require.True(t, rb.Push(3))
	assert.True(t, rb.IsFull())
	assert.False(t, rb.Push(4))

	front, ok := rb.Front()
	require.True(t, ok)
	assert.Equal(t, 1, front)

	v, ok := rb.Pop()
	require.True(t, ok)
	assert.Equal(t, 1, v)

	// wraps around the underlying slice
	require.True(t, rb.Push(4))
	var got []int
	for rb.Size() > 0 {
		v, _ := rb.Pop()
		got = append(got, v)
	}
	assert.Equal(t, []int{2, 3, 4}, got)

	_, ok = rb.Pop()
	assert.False(t, ok)
}

func TestRingBufferZeroCapacity(t *testing.T) {
	rb := New[string](0)
	assert.Equal(t, 1, rb.Cap())
	require.True(t, rb.Push("a"))
	rb.Reset()
	assert.Equal(t, 0, rb.Size())
	_, ok := rb.Front()
	assert.False(t, ok)
}
