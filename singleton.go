// Package singleton gives a type one lazily created, process-wide instance,
// reached through an accessor that always hands back the same handle.
//
// A handle wraps the value in one of six variants. Local, Cell and Checked
// take no locks and must only be used from a single goroutine; Shared, Mutex
// and RWMutex may be used from any goroutine. The one-time initialization
// itself is safe under concurrent first calls for every variant.
//
//	var settings = singleton.DefineShared(func() Settings {
//		return loadSettings()
//	})
//
//	func handler() {
//		cfg := settings.Get().Get()
//		...
//	}
package singleton

import (
	"reflect"

	"github.com/hnhuaxi/singleton/registry"
	"github.com/pkg/errors"
	"go.uber.org/atomic"
)

// Provider owns the slot for one singleton. H is the handle type handed to
// callers; it should be a pointer so every caller shares the same storage.
type Provider[T any, H any] struct {
	variant Variant
	wrap    func(T) H
	init    func() T
	opts    Options
	typ     reflect.Type

	guard  guard
	handle H
	refs   atomic.Int64
}

// New builds a provider without declaring it. Prefer the Define functions
// for package-level singletons; New suits scoped slots and tests. New panics
// on a nil function and on a level WithLevel may not use.
func New[T any, H any](variant Variant, wrap func(T) H, init func() T, ops ...Option) *Provider[T, H] {
	if wrap == nil || init == nil {
		panic("singleton: nil wrap or init function")
	}

	var (
		typ  = registry.TypeOf[T]()
		opts = buildOptions(typ, ops)
	)

	p := &Provider[T, H]{
		variant: variant,
		wrap:    wrap,
		init:    init,
		opts:    opts,
		typ:     typ,
	}
	p.guard.poison = opts.Poison
	return p
}

// Const returns an initializer that yields v.
func Const[T any](v T) func() T {
	return func() T {
		return v
	}
}

// Get returns the handle, initializing it on first use. If the initializer
// panics, Get panics with the same value in the goroutine that ran it. A
// poisoned provider panics with an error wrapping ErrPoisoned.
func (p *Provider[T, H]) Get() H {
	h, err := p.TryGet()
	if err != nil {
		var initErr *InitError
		if !errors.Is(err, ErrPoisoned) && errors.As(err, &initErr) {
			panic(initErr.Value)
		}
		panic(err)
	}
	return h
}

// TryGet is Get with initializer panics returned as *InitError.
func (p *Provider[T, H]) TryGet() (H, error) {
	r, err := p.guard.do(p.initialize)
	if err != nil {
		var zero H
		if errors.Is(err, ErrPoisoned) {
			p.logPoisoned(err)
		} else {
			p.logFailed(r, err)
		}
		return zero, errors.WithMessagef(err, "singleton %s", p.opts.Name)
	}

	// The guard is already done here; a panicking log sink must not undo it.
	if r.attempt > 0 {
		p.logInitialized(r)
	}

	p.refs.Inc()
	return p.handle, nil
}

// initialize recovers panics from the initializer and the wrap function only.
func (p *Provider[T, H]) initialize() (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = newInitError(r)
		}
	}()

	p.handle = p.wrap(p.init())
	return nil
}

func (p *Provider[T, H]) warm() error {
	_, err := p.TryGet()
	if err == nil {
		p.refs.Dec()
	}
	return err
}

func (p *Provider[T, H]) Initialized() bool {
	return p.guard.done.Load()
}

// Refs is the number of handles issued so far.
func (p *Provider[T, H]) Refs() int64 {
	return p.refs.Load()
}

// Attempts is the number of times the initializer has been started.
func (p *Provider[T, H]) Attempts() int64 {
	return p.guard.attempts.Load()
}

func (p *Provider[T, H]) Name() string {
	return p.opts.Name
}

func (p *Provider[T, H]) Type() reflect.Type {
	return p.typ
}

func (p *Provider[T, H]) Variant() Variant {
	return p.variant
}
