package singleton

import (
	"sync"

	"github.com/hnhuaxi/singleton/registry"
)

var objects sync.Map

func identity[T any](v T) T {
	return v
}

// Of returns the process-wide instance of T, calling ctor on first use.
// Instances made by Of live apart from the Define declarations. T should be
// a pointer or other reference type when callers need to share mutations.
func Of[T any](ctor func() T, ops ...Option) T {
	var (
		tt      = registry.TypeOf[T]()
		created any
		ok      bool
	)

	if created, ok = objects.Load(tt); !ok {
		created, _ = objects.LoadOrStore(tt, New(VariantShared, identity[T], ctor, ops...))
	}

	// objects is keyed by T, so the entry is always a *Provider[T, T].
	return created.(*Provider[T, T]).Get()
}
