package queue

// sliceQueue implements Queue using a slice.
type sliceQueue[T any] struct {
	items []T
}

// NewSliceQueue creates a slice backed queue with room for prealloc items.
func NewSliceQueue[T any](prealloc int) Queue[T] {
	return &sliceQueue[T]{items: make([]T, 0, prealloc)}
}

func (q *sliceQueue[T]) Enqueue(items ...T) {
	q.items = append(q.items, items...)
}

func (q *sliceQueue[T]) Dequeue() (T, bool) {
	var zero T
	if len(q.items) == 0 {
		return zero, false
	}
	item := q.items[0]
	q.items[0] = zero // release the reference held by the backing array
	q.items = q.items[1:]

	if len(q.items) == 0 {
		q.items = q.items[:0:0]
	}

	return item, true
}

// Reset reslices to zero length so the backing array is reused.
func (q *sliceQueue[T]) Reset() {
	clear(q.items)
	q.items = q.items[:0]
}

func (q *sliceQueue[T]) Length() int {
	return len(q.items)
}
