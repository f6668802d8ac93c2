// Package samples provides the bounded rolling window shared by every tracker.
package samples

import (
	"errors"

	"golang.org/x/exp/constraints"
)

// ErrInvalidCapacity is returned when a pool is created with a non-positive capacity.
var ErrInvalidCapacity = errors.New("sample pool capacity must be positive")

// Number is any integer or floating-point sample type.
type Number interface {
	constraints.Integer | constraints.Float
}

// Pool is a fixed-capacity FIFO of samples stored in a ring buffer.
//
// Adding to a full pool silently evicts the oldest sample. Sum and Average
// always fold over the current contents, so evicted samples never leak into
// the aggregate.
//
// Pool is not safe for concurrent use; callers guard it with their own lock.
type Pool[T Number] struct {
	values   []T
	head     int // Next write position
	count    int // Current number of samples
	capacity int
}

// New creates a pool holding at most capacity samples.
func New[T Number](capacity int) (*Pool[T], error) {
	if capacity <= 0 {
		return nil, ErrInvalidCapacity
	}

	return &Pool[T]{
		values:   make([]T, capacity),
		capacity: capacity,
	}, nil
}

// Add appends a sample, evicting the oldest one when the pool is full.
func (p *Pool[T]) Add(v T) {
	p.values[p.head] = v
	p.head = (p.head + 1) % p.capacity
	if p.count < p.capacity {
		p.count++
	}
}

// Count returns the number of samples currently held.
func (p *Pool[T]) Count() int {
	return p.count
}

// Capacity returns the maximum number of samples the pool retains.
func (p *Pool[T]) Capacity() int {
	return p.capacity
}

// Sum returns the sum of the current samples.
func (p *Pool[T]) Sum() T {
	var sum T
	for i := 0; i < p.count; i++ {
		sum += p.values[p.index(i)]
	}
	return sum
}

// Average returns the arithmetic mean of the current samples, or 0 when empty.
func (p *Pool[T]) Average() float64 {
	if p.count == 0 {
		return 0
	}

	var sum float64
	for i := 0; i < p.count; i++ {
		sum += float64(p.values[p.index(i)])
	}
	return sum / float64(p.count)
}

// index maps the i-th oldest sample to its slot in the ring.
func (p *Pool[T]) index(i int) int {
	return (p.head - p.count + i + p.capacity) % p.capacity
}
