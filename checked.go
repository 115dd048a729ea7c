package singleton

import "go.uber.org/atomic"

const mutBorrowed = -1

// Checked holds a value lent out through borrows that are checked at run
// time: any number of shared borrows, or exactly one mutable borrow. A
// conflicting borrow panics (or errors, with the Try forms). Checked does not
// make the value safe for concurrent use; keep it on one goroutine.
type Checked[T any] struct {
	value T
	// >0 shared borrows, mutBorrowed while mutably borrowed.
	state atomic.Int32
}

func NewChecked[T any](v T) *Checked[T] {
	return &Checked[T]{value: v}
}

// Borrow is a live borrow of a Checked value. Release it when done.
type Borrow[T any] struct {
	cell     *Checked[T]
	mut      bool
	released bool
}

func (c *Checked[T]) TryBorrow() (*Borrow[T], error) {
	for {
		state := c.state.Load()
		if state == mutBorrowed {
			return nil, ErrMutBorrowed
		}
		if c.state.CompareAndSwap(state, state+1) {
			return &Borrow[T]{cell: c}, nil
		}
	}
}

func (c *Checked[T]) TryBorrowMut() (*Borrow[T], error) {
	if c.state.CompareAndSwap(0, mutBorrowed) {
		return &Borrow[T]{cell: c, mut: true}, nil
	}

	if c.state.Load() == mutBorrowed {
		return nil, ErrMutBorrowed
	}
	return nil, ErrBorrowed
}

func (c *Checked[T]) Borrow() *Borrow[T] {
	b, err := c.TryBorrow()
	if err != nil {
		panic(err)
	}
	return b
}

func (c *Checked[T]) BorrowMut() *Borrow[T] {
	b, err := c.TryBorrowMut()
	if err != nil {
		panic(err)
	}
	return b
}

// Read runs f under a shared borrow.
func (c *Checked[T]) Read(f func(v *T)) {
	b := c.Borrow()
	defer b.Release()

	f(b.Ptr())
}

// Write runs f under a mutable borrow.
func (c *Checked[T]) Write(f func(v *T)) {
	b := c.BorrowMut()
	defer b.Release()

	f(b.Ptr())
}

// Borrowed reports the number of shared borrows, or -1 while mutably
// borrowed.
func (c *Checked[T]) Borrowed() int {
	return int(c.state.Load())
}

func (b *Borrow[T]) Mutable() bool {
	return b.mut
}

// Ptr returns the borrowed value. Writing through a shared borrow is a bug
// the cell cannot detect.
func (b *Borrow[T]) Ptr() *T {
	if b.released {
		panic(ErrReleased)
	}
	return &b.cell.value
}

func (b *Borrow[T]) Get() T {
	return *b.Ptr()
}

func (b *Borrow[T]) Set(v T) {
	if !b.mut {
		panic(ErrBorrowed)
	}
	*b.Ptr() = v
}

// Release ends the borrow. Releasing twice is a no-op.
func (b *Borrow[T]) Release() {
	if b.released {
		return
	}
	b.released = true

	if b.mut {
		b.cell.state.Store(0)
	} else {
		b.cell.state.Dec()
	}
}
