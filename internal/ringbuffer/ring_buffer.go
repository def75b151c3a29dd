package ringbuffer

// RingBuffer is a fixed capacity FIFO queue.
type RingBuffer[T any] struct {
	buf  []T
	head int
	tail int
	size int
}

// New creates a RingBuffer with the given capacity.
// A default capacity of 1 is used if the given value is zero.
func New[T any](capacity uint) *RingBuffer[T] {
	return &RingBuffer[T]{
		buf: make([]T, max(1, capacity)),
	}
}

// Size returns the number of elements currently in the buffer.
func (r *RingBuffer[T]) Size() int {
	return r.size
}

// Cap returns the fixed capacity of the buffer.
func (r *RingBuffer[T]) Cap() int {
	return cap(r.buf)
}

// IsFull returns true if the queue is full.
func (r *RingBuffer[T]) IsFull() bool {
	return r.size == cap(r.buf)
}

// Push appends item at the back. It returns false if the queue is full and a push cannot be done.
func (r *RingBuffer[T]) Push(item T) bool {
	if r.size == cap(r.buf) {
		return false
	}

	r.buf[r.tail] = item
	r.tail = (r.tail + 1) % cap(r.buf)
	r.size++
	return true
}

// Pop removes and returns the oldest item. If empty, it returns (zero[T], false).
func (r *RingBuffer[T]) Pop() (T, bool) {
	var zero T
	if r.size == 0 {
		return zero, false
	}

	item := r.buf[r.head]
	r.buf[r.head] = zero
	r.head = (r.head + 1) % cap(r.buf)
	r.size--
	return item, true
}

// Front returns the oldest item without removing it.
func (r *RingBuffer[T]) Front() (T, bool) {
	var zero T
	if r.size == 0 {
		return zero, false
	}
	return r.buf[r.head], true
}

// Reset drops every item, keeping the capacity.
func (r *RingBuffer[T]) Reset() {
	clear(r.buf)
	r.head, r.tail, r.size = 0, 0, 0
}
