package singleton

import "golang.org/x/exp/constraints"

// Cell holds a small value that is copied in and out whole. No locking is
// done; use it from a single goroutine.
type Cell[T any] struct {
	value T
}

func NewCell[T any](v T) *Cell[T] {
	return &Cell[T]{value: v}
}

func (c *Cell[T]) Get() T {
	return c.value
}

func (c *Cell[T]) Set(v T) {
	c.value = v
}

// Replace stores v and returns the previous value.
func (c *Cell[T]) Replace(v T) T {
	old := c.value
	c.value = v
	return old
}

// Take returns the value and leaves the zero value in its place.
func (c *Cell[T]) Take() T {
	var zero T
	return c.Replace(zero)
}

// Update stores f(old) and returns the new value.
func (c *Cell[T]) Update(f func(T) T) T {
	c.value = f(c.value)
	return c.value
}

type Number interface {
	constraints.Integer | constraints.Float
}

// Add increments a numeric cell by delta and returns the new value.
func Add[N Number](c *Cell[N], delta N) N {
	return c.Update(func(n N) N {
		return n + delta
	})
}
