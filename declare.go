package singleton

import (
	"reflect"
	"sort"

	"github.com/akrennmair/slice"
	"github.com/hnhuaxi/singleton/registry"
	"go.uber.org/multierr"
)

type declared interface {
	Name() string
	Type() reflect.Type
	Variant() Variant
	Initialized() bool
	Refs() int64
	Attempts() int64
	warm() error
}

var declarations registry.Registry[declared]

// Declaration describes a singleton created by one of the Define functions.
type Declaration struct {
	Name        string
	Type        reflect.Type
	Variant     Variant
	Initialized bool
	Refs        int64
	Attempts    int64
}

// Declarations returns a snapshot of every declared singleton, sorted by name.
func Declarations() []Declaration {
	decls := slice.Map(declarations.Values(), describe)

	sort.Slice(decls, func(i, j int) bool {
		return decls[i].Name < decls[j].Name
	})
	return decls
}

// Lookup returns the declaration for T, if T was declared.
func Lookup[T any]() (Declaration, bool) {
	d, ok := declarations.Lookup(registry.TypeOf[T]())
	if !ok {
		return Declaration{}, false
	}

	return describe(d), true
}

func describe(d declared) Declaration {
	return Declaration{
		Name:        d.Name(),
		Type:        d.Type(),
		Variant:     d.Variant(),
		Initialized: d.Initialized(),
		Refs:        d.Refs(),
		Attempts:    d.Attempts(),
	}
}

// Warm initializes every declared singleton that is not yet initialized and
// returns the combined failures. Warm does not count as issuing a handle.
func Warm() error {
	var errs error

	declarations.Range(func(_ reflect.Type, d declared) bool {
		if !d.Initialized() {
			errs = multierr.Append(errs, d.warm())
		}
		return true
	})

	return errs
}
