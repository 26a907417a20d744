// Package queue provides a small FIFO used to buffer pending response lines.
package queue

// Queue defines a FIFO of items of type T.
//
// Implementations are not goroutine-safe; callers serialize access.
type Queue[T any] interface {
	// Enqueue adds items to the tail of the queue.
	Enqueue(items ...T)
	// Dequeue removes and returns the item at the head of the queue.
	// ok is false when the queue is empty.
	Dequeue() (item T, ok bool)
	// Reset empties the queue.
	Reset()
	// Length returns the number of items in the queue.
	Length() int
}
