package singleton

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

type (
	flakyService struct{ ready bool }
	lazyReport   struct{ lines []string }
	duplicated   struct{}
)

var (
	errNotReady = errors.New("service not ready")
	flakyFail   = true

	flakySingleton = DefineShared(func() *flakyService {
		if flakyFail {
			panic(errNotReady)
		}
		return &flakyService{ready: true}
	}, WithName("flaky"))

	reportSingleton = DefineLocal(func() lazyReport {
		return lazyReport{lines: []string{"ok"}}
	})

	_ = DefineShared(Const(duplicated{}))
)

func TestRedeclare(t *testing.T) {
	defer func() {
		r := recover()
		require.NotNil(t, r)

		err, ok := r.(error)
		require.True(t, ok)
		assert.ErrorIs(t, err, ErrRedeclared)
		assert.Contains(t, err.Error(), "singleton.duplicated")
	}()

	DefineMutex(Const(duplicated{}))
}

func TestLookup(t *testing.T) {
	d, ok := Lookup[lazyReport]()
	require.True(t, ok)
	assert.Equal(t, "lazy_report", d.Name)
	assert.Equal(t, VariantLocal, d.Variant)

	_, ok = Lookup[*lazyReport]()
	assert.False(t, ok)

	d, ok = Lookup[*flakyService]()
	require.True(t, ok)
	assert.Equal(t, "flaky", d.Name)
}

func TestDeclarations(t *testing.T) {
	decls := Declarations()
	require.NotEmpty(t, decls)

	for i := 1; i < len(decls); i++ {
		assert.LessOrEqual(t, decls[i-1].Name, decls[i].Name)
	}

	var names []string
	for _, d := range decls {
		names = append(names, d.Name)
	}
	assert.Contains(t, names, "flaky")
	assert.Contains(t, names, "lazy_report")
	assert.Contains(t, names, "hit_count")
}

func TestWarm(t *testing.T) {
	flakyFail = true
	err := Warm()
	require.Error(t, err)

	errs := multierr.Errors(err)
	require.Len(t, errs, 1)
	assert.ErrorIs(t, errs[0], errNotReady)
	assert.Contains(t, errs[0].Error(), "singleton flaky")
	assert.False(t, flakySingleton.Initialized())

	d, _ := Lookup[lazyReport]()
	assert.True(t, d.Initialized)
	assert.Equal(t, int64(0), d.Refs)

	flakyFail = false
	require.NoError(t, Warm())
	assert.True(t, flakySingleton.Get().Get().ready)
	assert.Equal(t, int64(2), flakySingleton.Attempts())

	assert.Equal(t, []string{"ok"}, reportSingleton.Get().Get().lines)
	d, _ = Lookup[lazyReport]()
	assert.Equal(t, int64(1), d.Refs)
}
