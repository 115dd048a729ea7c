package singleton

import "sync"

// Mutex guards a value with a sync.Mutex. The provider never locks it; the
// caller locks around each use.
type Mutex[T any] struct {
	mu    sync.Mutex
	value T
}

func NewMutex[T any](v T) *Mutex[T] {
	return &Mutex[T]{value: v}
}

// Lock acquires the mutex and returns the guarded value. The pointer must not
// be used after Unlock.
func (m *Mutex[T]) Lock() *T {
	m.mu.Lock()
	return &m.value
}

func (m *Mutex[T]) TryLock() (*T, bool) {
	if !m.mu.TryLock() {
		return nil, false
	}
	return &m.value, true
}

func (m *Mutex[T]) Unlock() {
	m.mu.Unlock()
}

// With runs f while holding the mutex.
func (m *Mutex[T]) With(f func(v *T)) {
	m.mu.Lock()
	defer m.mu.Unlock()

	f(&m.value)
}

// RWMutex guards a value with a sync.RWMutex: many readers or one writer.
type RWMutex[T any] struct {
	mu    sync.RWMutex
	value T
}

func NewRWMutex[T any](v T) *RWMutex[T] {
	return &RWMutex[T]{value: v}
}

// RLock acquires a read lock. The returned value must not be modified.
func (m *RWMutex[T]) RLock() *T {
	m.mu.RLock()
	return &m.value
}

func (m *RWMutex[T]) RUnlock() {
	m.mu.RUnlock()
}

func (m *RWMutex[T]) Lock() *T {
	m.mu.Lock()
	return &m.value
}

func (m *RWMutex[T]) Unlock() {
	m.mu.Unlock()
}

// Read runs f under the read lock.
func (m *RWMutex[T]) Read(f func(v *T)) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	f(&m.value)
}

// Write runs f under the write lock.
func (m *RWMutex[T]) Write(f func(v *T)) {
	m.mu.Lock()
	defer m.mu.Unlock()

	f(&m.value)
}
