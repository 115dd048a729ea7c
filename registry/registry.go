package registry

import (
	"errors"
	"fmt"
	"reflect"
	"sync"
)

var ErrDuplicate = errors.New("duplicate registration")

// Registry maps types to values. Each type may be registered once; the zero
// value is ready to use and safe for concurrent use.
type Registry[T any] struct {
	mu    sync.RWMutex
	set   map[reflect.Type]T
	order []reflect.Type
}

func (reg *Registry[T]) init() {
	if reg.set == nil {
		reg.set = make(map[reflect.Type]T)
	}
}

// TypeOf returns the reflect.Type of T without needing a value, so interface
// types are keyed by themselves rather than by their dynamic type.
func TypeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

func (reg *Registry[T]) Register(key reflect.Type, val T) error {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	reg.init()

	if _, ok := reg.set[key]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicate, key)
	}

	reg.set[key] = val
	reg.order = append(reg.order, key)
	return nil
}

// RegisterFor registers val under the dynamic type of node.
func (reg *Registry[T]) RegisterFor(node interface{}, val T) error {
	return reg.Register(reflect.ValueOf(node).Type(), val)
}

func (reg *Registry[T]) Lookup(key reflect.Type) (val T, ok bool) {
	reg.mu.RLock()
	defer reg.mu.RUnlock()

	val, ok = reg.set[key]
	return val, ok
}

func (reg *Registry[T]) LookupFor(node interface{}) (val T, ok bool) {
	return reg.Lookup(reflect.ValueOf(node).Type())
}

func (reg *Registry[T]) Len() int {
	reg.mu.RLock()
	defer reg.mu.RUnlock()

	return len(reg.order)
}

// Values returns the registered values in registration order.
func (reg *Registry[T]) Values() []T {
	reg.mu.RLock()
	defer reg.mu.RUnlock()

	vals := make([]T, 0, len(reg.order))
	for _, key := range reg.order {
		vals = append(vals, reg.set[key])
	}
	return vals
}

// Range calls fn for each entry in registration order until fn returns false.
// fn runs without the registry lock held.
func (reg *Registry[T]) Range(fn func(key reflect.Type, val T) bool) {
	reg.mu.RLock()
	keys := make([]reflect.Type, len(reg.order))
	copy(keys, reg.order)
	reg.mu.RUnlock()

	for _, key := range keys {
		val, ok := reg.Lookup(key)
		if !ok {
			continue
		}
		if !fn(key, val) {
			return
		}
	}
}
