package singleton

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

type TestUser struct {
	ID       uint
	Username string
	Age      int
}

type testPool struct {
	size int
}

func TestOf(t *testing.T) {
	var usr = Of(func() *TestUser {
		return &TestUser{
			ID:       10,
			Username: "bob",
			Age:      18,
		}
	})
	t.Logf("usr %v", usr)
	usr1 := Of(func() *TestUser {
		return &TestUser{
			ID:       11,
			Username: "alice",
			Age:      20,
		}
	})

	assert.Same(t, usr, usr1)
	assert.Equal(t, "bob", usr1.Username)
}

func TestOfConcurrent(t *testing.T) {
	var (
		wg    sync.WaitGroup
		mu    sync.Mutex
		calls int
		got   = make([]*testPool, 32)
	)

	for i := range got {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			got[i] = Of(func() *testPool {
				mu.Lock()
				calls++
				mu.Unlock()
				return &testPool{size: 4}
			})
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, calls)
	for _, p := range got {
		assert.Same(t, got[0], p)
	}
}

func TestOfSeparateFromDefine(t *testing.T) {
	_, ok := Lookup[*TestUser]()
	assert.False(t, ok)
}
