package compiler

import (
	"errors"
	"testing"

	"github.com/aretw0/nfa/pkg/automaton"
	"github.com/aretw0/nfa/pkg/domain"
	"github.com/aretw0/nfa/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const exampleYAML = `
name: example
description: q0 loops, q1 accepts
alphabet: [0, 1]
states: [q0, q1]
start: q0
final: [q1]
transitions:
  - from: q0
    on: 0
    to: [q0, q1]
  - from: q0
    on: "1"
    to: [q0]
  - from: q0
    on: e
    to: [q1]
`

func TestParse_YAML(t *testing.T) {
	def, err := NewParser().Parse([]byte(exampleYAML))
	require.NoError(t, err)

	assert.Equal(t, "example", def.Name)
	assert.Equal(t, []string{"0", "1"}, def.Alphabet)
	assert.Equal(t, []string{"q0", "q1"}, def.States)
	assert.Equal(t, "q0", def.Start)
	require.Len(t, def.Transitions, 3)
	assert.Equal(t, "0", def.Transitions[0].On)
	assert.True(t, def.Transitions[2].IsEpsilon())
}

func TestParse_JSON(t *testing.T) {
	data := []byte(`{
		"name": "json",
		"alphabet": ["a"],
		"states": ["s"],
		"start": "s",
		"final": ["s"],
		"transitions": [{"from": "s", "on": "a", "to": ["s"]}]
	}`)

	def, err := NewParser().Parse(data)
	require.NoError(t, err)
	assert.Equal(t, "json", def.Name)
	assert.Equal(t, []string{"s"}, def.Transitions[0].To)
}

func TestParse_Rejects(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"missing name", "states: [a]"},
		{"unknown field", "name: x\ncolour: red"},
		{"multi-char symbol", "name: x\nalphabet: [ab]"},
		{"broken json", `{"name": `},
		{"broken yaml", "name: [x"},
		{"blank name", `name: "  "`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewParser().Parse([]byte(tt.data))
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrInvalidDefinition)
		})
	}
}

func TestCompile_Example(t *testing.T) {
	def, err := NewParser().Parse([]byte(exampleYAML))
	require.NoError(t, err)

	a, err := Compile(def)
	require.NoError(t, err)

	assert.True(t, a.Accepts("0"))
	assert.True(t, a.Accepts(""))
	assert.Equal(t, 2, a.MaxCopies("00"))
	assert.False(t, a.IsDeterministic())
	assert.Equal(t, []automaton.Symbol{'0', '1'}, a.Alphabet())
}

func TestCompile_ContinuesPastRejectedCalls(t *testing.T) {
	def := &domain.Definition{
		Name:     "partial",
		Alphabet: []string{"a", "e", "xy"},
		States:   []string{"p", "q", "p"},
		Start:    "missing",
		Final:    []string{"q", "nope"},
		Transitions: []domain.Transition{
			{From: "p", On: "a", To: []string{"q"}},
			{From: "p", On: "b", To: []string{"q"}},
			{From: "zz", On: "a", To: []string{"q"}},
			{From: "p", On: "a", To: []string{"q", "ghost"}},
			{From: "q", On: "ε", To: []string{"p"}},
			{From: "q", On: "ab", To: []string{"p"}},
		},
	}

	a, err := Compile(def)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidDefinition)

	errs := schema.ValidationErrors(err)
	keys := make([]string, 0, len(errs))
	reasons := make(map[string]string)
	for _, e := range errs {
		var ve *schema.ValidationError
		require.True(t, errors.As(e, &ve))
		keys = append(keys, ve.Key)
		reasons[ve.Key] = ve.Reason
	}
	assert.Equal(t, []string{
		"states[2]",
		"alphabet[1]",
		"alphabet[2]",
		"start",
		"final[1]",
		"transitions[1]",
		"transitions[2]",
		"transitions[3]",
		"transitions[5]",
	}, keys)
	assert.Equal(t, "symbol not in alphabet", reasons["transitions[1]"])
	assert.Contains(t, reasons["transitions[2]"], "unknown source state")
	assert.Contains(t, reasons["transitions[3]"], `unknown destination state "ghost"`)

	// Everything valid was still applied.
	assert.Equal(t, []string{"p", "q"}, a.States())
	assert.True(t, a.IsFinal("q"))
	assert.False(t, a.InAlphabet('e'))
	require.True(t, a.SetStart("p"))
	assert.True(t, a.Accepts("a"))
	assert.True(t, a.Accepts("aa"), "epsilon back-edge q -> p was added")
}

func TestCompile_Nil(t *testing.T) {
	a, err := Compile(nil)
	assert.NotNil(t, a)
	assert.ErrorIs(t, err, domain.ErrInvalidDefinition)
}

func TestParseSymbol(t *testing.T) {
	r, err := ParseSymbol("ß")
	require.NoError(t, err)
	assert.Equal(t, 'ß', r)

	_, err = ParseSymbol("")
	assert.Error(t, err)
}

func TestIsDefinitionFile(t *testing.T) {
	assert.True(t, IsDefinitionFile("a/b.YAML"))
	assert.True(t, IsDefinitionFile("b.yml"))
	assert.True(t, IsDefinitionFile("b.json"))
	assert.False(t, IsDefinitionFile("b.md"))
}
