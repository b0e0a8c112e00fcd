package mcp

import (
	"context"
	"testing"

	"github.com/aretw0/nfa"
	"github.com/aretw0/nfa/internal/logging"
	"github.com/aretw0/nfa/pkg/dsl"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()

	b := dsl.New("example")
	b.Add("q0").Start().On("0", "q0", "q1").On("1", "q0").Epsilon("q1")
	b.Add("q1").Final()

	loader, err := b.Loader()
	require.NoError(t, err)
	engine, err := nfa.New("", nfa.WithLoader(loader))
	require.NoError(t, err)

	return NewServer(engine, logging.NewNop())
}

func callRequest(tool string, args map[string]any) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{Name: tool, Arguments: args},
	}
}

func TestHandlers_Queries(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()

	args := map[string]any{"automaton": "example", "input": "0"}
	accepts, err := s.handleAccepts(ctx, callRequest("accepts", args), args)
	require.NoError(t, err)
	assert.True(t, accepts.Accepted)

	args = map[string]any{"automaton": "example", "input": "00"}
	copies, err := s.handleMaxCopies(ctx, callRequest("max_copies", args), args)
	require.NoError(t, err)
	assert.Equal(t, 2, copies.MaxCopies)

	args = map[string]any{"automaton": "example"}
	det, err := s.handleDeterministic(ctx, callRequest("is_deterministic", args), args)
	require.NoError(t, err)
	assert.False(t, det.Deterministic)

	args = map[string]any{"automaton": "example", "input": "1"}
	tr, err := s.handleTrace(ctx, callRequest("trace", args), args)
	require.NoError(t, err)
	assert.Equal(t, []string{"q0", "q1"}, tr.Initial)
	require.Len(t, tr.Steps, 1)
	assert.Equal(t, "1", tr.Steps[0].Symbol)
	assert.True(t, tr.Accepted)
}

func TestHandlers_EmptyInputDefault(t *testing.T) {
	s := newTestServer(t)

	args := map[string]any{"automaton": "example"}
	accepts, err := s.handleAccepts(context.Background(), callRequest("accepts", args), args)
	require.NoError(t, err)
	assert.Equal(t, "", accepts.Input)
	assert.True(t, accepts.Accepted, "epsilon closure of q0 reaches q1")
}

func TestHandlers_Errors(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()

	_, err := s.handleAccepts(ctx, callRequest("accepts", nil), map[string]any{})
	assert.ErrorContains(t, err, "automaton is required")

	args := map[string]any{"automaton": "ghost"}
	_, err = s.handleTrace(ctx, callRequest("trace", args), args)
	assert.True(t, nfa.IsNotFound(err))
}

func TestHandlers_TextTools(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()

	res, err := s.handleList(ctx, callRequest("list_automata", nil))
	require.NoError(t, err)
	require.Len(t, res.Content, 1)
	assert.Equal(t, `["example"]`, res.Content[0].(mcp.TextContent).Text)

	res, err = s.handleGraph(ctx, callRequest("graph", map[string]any{"automaton": "example"}))
	require.NoError(t, err)
	assert.False(t, res.IsError)
	assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "graph LR")

	res, err = s.handleGraph(ctx, callRequest("graph", map[string]any{"automaton": "ghost"}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
}
