// Package util holds small slice helpers shared by the go-vna packages.
package util

// CloneSlice clones src into a new slice of length cloneSize.
// src length is used as the clone size if cloneSize is 0.
// A nil src with cloneSize 0 yields an empty, non-nil slice.
func CloneSlice[T any](src []T, cloneSize int) []T {
	if cloneSize == 0 {
		cloneSize = len(src)
	}
	clone := make([]T, cloneSize)
	copy(clone, src)

	return clone
}

// StrictlyIncreasing reports whether every element of xs is greater than its predecessor.
// NaN breaks the ordering and yields false.
func StrictlyIncreasing(xs []float64) bool {
	for i := 1; i < len(xs); i++ {
		if !(xs[i] > xs[i-1]) {
			return false
		}
	}

	return true
}
