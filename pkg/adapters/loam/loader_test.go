package loam

import (
	"encoding/json"
	"testing"

	"github.com/aretw0/loam"
	"github.com/aretw0/nfa/internal/compiler"
	"github.com/aretw0/nfa/internal/testutils"
	"github.com/aretw0/nfa/pkg/domain"
	"github.com/aretw0/nfa/pkg/ports/tests"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoader_Contract(t *testing.T) {
	_, repo := testutils.SetupTestRepo(t, map[string]string{
		"ends-with-01.md": testutils.EndsWith01Doc,
		"cycle.md": `---
name: loop
alphabet: [a]
states: [s]
start: s
final: [s]
transitions:
  - {from: s, on: a, to: [s]}
---`,
	})

	loader := New(loam.NewTypedRepository[Metadata](repo))

	tests.AutomatonLoaderContractTest(t, loader, map[string]*domain.Definition{
		"ends-with-01": {Name: "ends-with-01", States: []string{"q0", "q1", "q2"}, Transitions: make([]domain.Transition, 3)},
		"loop":         {Name: "loop", States: []string{"s"}, Transitions: make([]domain.Transition, 1)},
	})
}

func TestLoader_GetAutomaton_Compiles(t *testing.T) {
	_, repo := testutils.SetupTestRepo(t, map[string]string{"ends-with-01.md": testutils.EndsWith01Doc})

	loader := New(loam.NewTypedRepository[Metadata](repo))

	raw, err := loader.GetAutomaton("ends-with-01")
	require.NoError(t, err)

	var def domain.Definition
	require.NoError(t, json.Unmarshal(raw, &def))
	assert.Equal(t, []string{"0", "1"}, def.Alphabet, "integer symbols become strings")
	assert.Equal(t, "Binary strings ending in 01.", def.Description, "body becomes the description")

	a, err := compiler.Compile(&def)
	require.NoError(t, err)
	assert.True(t, a.Accepts("1101"))
	assert.False(t, a.Accepts("110"))
}

func TestLoader_ListAutomata_NormalizesNames(t *testing.T) {
	_, repo := testutils.SetupTestRepo(t, map[string]string{
		"implicit.md": "---\nstates: [a]\n---\nName comes from the file",
		"explicit.md": "---\nname: renamed.md\nstates: [a]\n---",
	})

	loader := New(loam.NewTypedRepository[Metadata](repo))

	names, err := loader.ListAutomata()
	require.NoError(t, err)
	assert.Equal(t, []string{"implicit", "renamed"}, names)
}

func TestLoader_GetAutomaton_ResolvesListedNames(t *testing.T) {
	_, repo := testutils.SetupTestRepo(t, map[string]string{
		"implicit.md": "---\nstates: [a]\n---\nName comes from the file",
		"explicit.md": "---\nname: renamed\nstates: [a, b]\nstart: a\nfinal: [b]\n---\nRenamed in frontmatter",
	})

	loader := New(loam.NewTypedRepository[Metadata](repo))

	names, err := loader.ListAutomata()
	require.NoError(t, err)
	for _, name := range names {
		raw, err := loader.GetAutomaton(name)
		require.NoError(t, err, "listed name %s must be fetchable", name)

		var def domain.Definition
		require.NoError(t, json.Unmarshal(raw, &def))
		assert.Equal(t, name, def.Name)
	}

	raw, err := loader.GetAutomaton("renamed")
	require.NoError(t, err)
	var def domain.Definition
	require.NoError(t, json.Unmarshal(raw, &def))
	assert.Equal(t, []string{"a", "b"}, def.States)
	assert.Equal(t, "Renamed in frontmatter", def.Description)

	// The file ID is not a name once the frontmatter overrides it.
	_, err = loader.GetAutomaton("explicit")
	assert.ErrorIs(t, err, domain.ErrAutomatonNotFound)
}

func TestLoader_ListAutomata_DetectsCollisions(t *testing.T) {
	_, repo := testutils.SetupTestRepo(t, map[string]string{
		"foo.md": "---\nname: foo\n---\nExplicit",
		"bar.md": "---\nname: foo\n---\nSame name",
	})

	loader := New(loam.NewTypedRepository[Metadata](repo))

	_, err := loader.ListAutomata()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "collision detected")
	assert.Contains(t, err.Error(), "foo")
}
