package tui

import (
	"bytes"
	"testing"

	"github.com/aretw0/nfa/internal/validator"
	"github.com/aretw0/nfa/pkg/dsl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func example(t *testing.T) *dsl.Builder {
	t.Helper()
	b := dsl.New("example").Describe("q0 loops, q1 accepts")
	b.Add("q0").Start().On("0", "q0", "q1").On("1", "q0").Epsilon("q1")
	b.Add("q1").Final()
	return b
}

func TestDefinitionMarkdown(t *testing.T) {
	b := example(t)
	a, err := b.Build()
	require.NoError(t, err)

	md := DefinitionMarkdown(b.Definition(), a)
	assert.Contains(t, md, "# example")
	assert.Contains(t, md, "q0 loops, q1 accepts")
	assert.Contains(t, md, "- **Start**: q0")
	assert.Contains(t, md, "- **Deterministic**: false")
	assert.Contains(t, md, "| q0 | 0 | q0, q1 |")
	assert.Contains(t, md, "| q0 | ε | q1 |")
}

func TestTraceMarkdown(t *testing.T) {
	a, err := example(t).Build()
	require.NoError(t, err)

	tr := a.Trace("0x")
	md := TraceMarkdown("example", "0x", &tr)
	assert.Contains(t, md, "| 0 | | {q0, q1} |")
	assert.Contains(t, md, "| 1 | `0` | {q0, q1} |")
	assert.Contains(t, md, "Halted at offset 1")
	assert.Contains(t, md, "**Result**: rejected, max copies 2")
}

func TestReportMarkdown(t *testing.T) {
	reports := []*validator.Report{
		{Name: "clean", Deterministic: true},
		{Name: "messy", Dead: []string{"q2"}, UnusedSymbols: []string{"c"}, NoFinal: true},
	}
	md := ReportMarkdown(reports)
	assert.Contains(t, md, "## clean: ok")
	assert.Contains(t, md, "## messy: problems found")
	assert.Contains(t, md, "- dead: q2")
	assert.Contains(t, md, "- unused symbols: c")
	assert.Contains(t, md, "- no final state")
}

func TestPlainRendererAndBanner(t *testing.T) {
	out, err := RendererFor(nil)("# title")
	require.NoError(t, err)
	assert.Equal(t, "# title", out)

	var buf bytes.Buffer
	PrintBanner(&buf, "1.2.3\n")
	assert.Contains(t, buf.String(), "v1.2.3")
}
