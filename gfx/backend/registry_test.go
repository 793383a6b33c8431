package backend_test

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/plus3/vermeer/gfx/backend"
	"github.com/plus3/vermeer/gfx/backend/headless"
)

func TestRegistryLookup(t *testing.T) {
	// The headless package registers itself on import.
	assert.True(t, backend.IsRegistered(backend.BackendHeadless))
	assert.True(t, slices.Contains(backend.Available(), backend.BackendHeadless))

	b := backend.Get(backend.BackendHeadless)
	assert.NotNil(t, b)
	assert.Equal(t, backend.BackendHeadless, b.Name())

	assert.Nil(t, backend.Get("no-such-backend"))
}

func TestRegistryRegisterUnregister(t *testing.T) {
	backend.Register("fake", func() backend.Backend {
		return &headless.Backend{}
	})
	defer backend.Unregister("fake")

	assert.True(t, backend.IsRegistered("fake"))

	backend.Unregister("fake")
	assert.False(t, backend.IsRegistered("fake"))
}

func TestRegistryDefault(t *testing.T) {
	// Without the gl backend linked in, headless is the best available.
	b := backend.Default()
	assert.NotNil(t, b)
	assert.Equal(t, backend.BackendHeadless, b.Name())
}

func TestHeadlessBackendLifecycle(t *testing.T) {
	b := backend.Get(backend.BackendHeadless)

	assert.NoError(t, b.Init())
	ctx := b.NewContext()
	assert.NotNil(t, ctx)
	b.Close()
}
