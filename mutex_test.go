package singleton

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/atomic"
)

type routeTable struct {
	routes map[string]string
}

var routesSingleton = DefineRWMutex(func() routeTable {
	return routeTable{routes: map[string]string{}}
})

func TestMutexExclusive(t *testing.T) {
	m := NewMutex(0)

	v := m.Lock()
	_, ok := m.TryLock()
	assert.False(t, ok)
	*v = 3
	m.Unlock()

	v, ok = m.TryLock()
	assert.True(t, ok)
	assert.Equal(t, 3, *v)
	m.Unlock()
}

func TestMutexConcurrentIncrement(t *testing.T) {
	var (
		p  = New(VariantMutex, NewMutex[int], Const(0))
		wg sync.WaitGroup
	)

	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				p.Get().With(func(n *int) { *n++ })
			}
		}()
	}
	wg.Wait()

	p.Get().With(func(n *int) {
		assert.Equal(t, 5000, *n)
	})
}

func TestRWMutexReadersOverlap(t *testing.T) {
	var (
		h       = routesSingleton.Get()
		holding sync.WaitGroup
		wg      sync.WaitGroup
		done    = make(chan struct{})
	)

	holding.Add(2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			h.Read(func(*routeTable) {
				holding.Done()
				holding.Wait()
			})
		}()
	}

	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("readers blocked each other")
	}
}

func TestRWMutexWriterExcludes(t *testing.T) {
	var (
		h       = routesSingleton.Get()
		entered atomic.Bool
		wrote   atomic.Bool
	)

	tbl := h.Lock()

	go func() {
		h.Read(func(*routeTable) {
			entered.Store(true)
		})
	}()
	go func() {
		h.Write(func(*routeTable) {
			wrote.Store(true)
		})
	}()

	assert.Never(t, entered.Load, 50*time.Millisecond, 5*time.Millisecond)
	assert.Never(t, wrote.Load, 50*time.Millisecond, 5*time.Millisecond)

	tbl.routes["/"] = "index"
	h.Unlock()

	assert.Eventually(t, entered.Load, time.Second, time.Millisecond)
	assert.Eventually(t, wrote.Load, time.Second, time.Millisecond)

	r := routesSingleton.Get().RLock()
	defer routesSingleton.Get().RUnlock()
	assert.Equal(t, "index", r.routes["/"])
}
