package singleton

import (
	"fmt"

	"github.com/hnhuaxi/singleton/utils"
)

// Variant selects how the stored value is wrapped.
type Variant int

const (
	// VariantLocal is a read-only handle for a single goroutine.
	VariantLocal Variant = iota
	// VariantCell copies the value in and out, single goroutine.
	VariantCell
	// VariantChecked hands out run-time checked borrows, single goroutine.
	VariantChecked
	// VariantShared is a read-only handle for any goroutine.
	VariantShared
	// VariantMutex guards the value with a sync.Mutex.
	VariantMutex
	// VariantRWMutex guards the value with a sync.RWMutex.
	VariantRWMutex
)

var variantNames = map[Variant]string{
	VariantLocal:   "local",
	VariantCell:    "cell",
	VariantChecked: "checked",
	VariantShared:  "shared",
	VariantMutex:   "mutex",
	VariantRWMutex: "rwmutex",
}

func (v Variant) String() string {
	if name, ok := variantNames[v]; ok {
		return name
	}
	return fmt.Sprintf("variant(%d)", int(v))
}

// Concurrent reports whether handles of this variant may be used from more
// than one goroutine.
func (v Variant) Concurrent() bool {
	switch v {
	case VariantShared, VariantMutex, VariantRWMutex:
		return true
	default:
		return false
	}
}

// Mutable reports whether callers may change the stored value.
func (v Variant) Mutable() bool {
	switch v {
	case VariantLocal, VariantShared:
		return false
	default:
		return true
	}
}

func define[T any, H any](variant Variant, wrap func(T) H, init func() T, ops []Option) *Provider[T, H] {
	p := New(variant, wrap, init, ops...)
	if err := declarations.Register(p.typ, p); err != nil {
		panic(fmt.Errorf("%w: %s (%v)", ErrRedeclared, utils.QualifiedName(p.typ), err))
	}
	return p
}

// DefineLocal declares the singleton for T with a read-only, single-goroutine
// handle. Declaring the same T twice panics with ErrRedeclared.
func DefineLocal[T any](init func() T, ops ...Option) *Provider[T, *Local[T]] {
	return define(VariantLocal, NewLocal[T], init, ops)
}

// DefineCell declares the singleton for T behind a single-goroutine Cell.
func DefineCell[T any](init func() T, ops ...Option) *Provider[T, *Cell[T]] {
	return define(VariantCell, NewCell[T], init, ops)
}

// DefineChecked declares the singleton for T behind a single-goroutine
// Checked cell.
func DefineChecked[T any](init func() T, ops ...Option) *Provider[T, *Checked[T]] {
	return define(VariantChecked, NewChecked[T], init, ops)
}

// DefineShared declares the singleton for T with a read-only handle safe for
// any goroutine.
func DefineShared[T any](init func() T, ops ...Option) *Provider[T, *Shared[T]] {
	return define(VariantShared, NewShared[T], init, ops)
}

// DefineMutex declares the singleton for T behind a Mutex.
func DefineMutex[T any](init func() T, ops ...Option) *Provider[T, *Mutex[T]] {
	return define(VariantMutex, NewMutex[T], init, ops)
}

// DefineRWMutex declares the singleton for T behind an RWMutex.
func DefineRWMutex[T any](init func() T, ops ...Option) *Provider[T, *RWMutex[T]] {
	return define(VariantRWMutex, NewRWMutex[T], init, ops)
}
