package petri

// FIFO is an unbounded first-in-first-out queue. It is not safe for
// concurrent use.
type FIFO[T any] struct {
	values []T
	head   int
}

func NewFIFO[T any](values ...T) *FIFO[T] {
	return &FIFO[T]{values: append([]T(nil), values...)}
}

func (fifo *FIFO[T]) Push(value ...T) {
	fifo.values = append(fifo.values, value...)
}

// Pop removes the oldest value. ok is false when the queue is empty.
func (fifo *FIFO[T]) Pop() (value T, ok bool) {
	if fifo.head == len(fifo.values) {
		return value, false
	}
	value = fifo.values[fifo.head]
	var zero T
	fifo.values[fifo.head] = zero
	fifo.head++
	if fifo.head == len(fifo.values) {
		fifo.values = fifo.values[:0]
		fifo.head = 0
	}
	return value, true
}

func (fifo *FIFO[T]) Len() int {
	return len(fifo.values) - fifo.head
}
