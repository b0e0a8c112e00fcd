package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/nfa/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunDefinitionStoreContract runs a suite of tests to verify that a DefinitionStore
// implementation adheres to the defined interface contract.
func RunDefinitionStoreContract(t *testing.T, store DefinitionStore) {
	ctx := context.Background()
	name := "contract-test-" + time.Now().Format("20060102150405")

	newDef := func(name string) *domain.Definition {
		return &domain.Definition{
			Name:     name,
			Alphabet: []string{"0", "1"},
			States:   []string{"q0", "q1"},
			Start:    "q0",
			Final:    []string{"q1"},
			Transitions: []domain.Transition{
				{From: "q0", On: "0", To: []string{"q0", "q1"}},
				{From: "q0", On: "e", To: []string{"q1"}},
			},
		}
	}

	t.Run("Save and Load", func(t *testing.T) {
		def := newDef(name)

		err := store.Save(ctx, def)
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, name)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, def, loaded)
	})

	t.Run("Save Replaces", func(t *testing.T) {
		def := newDef(name)
		def.Final = []string{"q0"}
		require.NoError(t, store.Save(ctx, def))

		loaded, err := store.Load(ctx, name)
		require.NoError(t, err)
		assert.Equal(t, []string{"q0"}, loaded.Final)
	})

	t.Run("Load Is Isolated", func(t *testing.T) {
		loaded, err := store.Load(ctx, name)
		require.NoError(t, err)
		loaded.States[0] = "mutated"

		again, err := store.Load(ctx, name)
		require.NoError(t, err)
		assert.Equal(t, "q0", again.States[0], "callers must not be able to mutate stored definitions")
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+name)
		assert.ErrorIs(t, err, domain.ErrAutomatonNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		err := store.Delete(ctx, name)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Load(ctx, name)
		assert.ErrorIs(t, err, domain.ErrAutomatonNotFound, "Load after Delete should return ErrAutomatonNotFound")
	})

	t.Run("List", func(t *testing.T) {
		id1 := name + "-1"
		id2 := name + "-2"
		require.NoError(t, store.Save(ctx, newDef(id1)))
		require.NoError(t, store.Save(ctx, newDef(id2)))

		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		names, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, names, id1)
		assert.Contains(t, names, id2)
		assert.NotContains(t, names, name)
	})
}
