package singleton

import (
	"fmt"
	"sync"
	"time"

	"go.uber.org/atomic"
)

// guard runs an initializer until it succeeds once. Unlike sync.Once a failed
// run does not mark the guard done, so the next caller retries, unless the
// guard poisons, in which case the first failure is replayed forever.
type guard struct {
	done     atomic.Bool
	attempts atomic.Int64
	poison   bool

	mu    sync.Mutex
	cause error
}

// run describes the execution of f performed by one do call. A zero attempt
// means the call did not run f.
type run struct {
	attempt int64
	elapsed time.Duration
}

// do returns once f has succeeded, by this call or an earlier one. Callers
// arriving while f runs block until it returns. The guard is marked done
// before do returns, so anything the caller does afterwards cannot undo it.
func (g *guard) do(f func() error) (run, error) {
	if g.done.Load() {
		return run{}, nil
	}

	return g.doSlow(f)
}

func (g *guard) doSlow(f func() error) (run, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.done.Load() {
		return run{}, nil
	}

	if g.cause != nil {
		return run{}, fmt.Errorf("%w: %w", ErrPoisoned, g.cause)
	}

	var (
		r     = run{attempt: g.attempts.Inc()}
		start = time.Now()
	)

	err := f()
	r.elapsed = time.Since(start)
	if err != nil {
		if g.poison {
			g.cause = err
		}
		return r, err
	}

	g.done.Store(true)
	return r, nil
}
