package singleton

// Local is a read-only handle. It performs no synchronization and must stay
// on the goroutine that uses the singleton.
type Local[T any] struct {
	value T
}

func NewLocal[T any](v T) *Local[T] {
	return &Local[T]{value: v}
}

func (l *Local[T]) Get() T {
	return l.value
}

// Ptr exposes the stored value without copying it. Treat it as read-only.
func (l *Local[T]) Ptr() *T {
	return &l.value
}

// Shared is a read-only handle that may be used from any goroutine.
type Shared[T any] struct {
	value T
}

func NewShared[T any](v T) *Shared[T] {
	return &Shared[T]{value: v}
}

func (s *Shared[T]) Get() T {
	return s.value
}

// Ptr exposes the stored value without copying it. Writing through it races
// with every other holder of the handle.
func (s *Shared[T]) Ptr() *T {
	return &s.value
}
