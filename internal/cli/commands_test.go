package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/nfa/internal/logging"
	"github.com/aretw0/nfa/internal/presentation/tui"
	"github.com/aretw0/nfa/internal/testutils"
	"github.com/aretw0/nfa/pkg/domain"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const parityDoc = `---
name: parity
alphabet: [0, 1]
states: [even, odd]
start: even
final: [even]
transitions:
  - {from: even, on: 0, to: [odd]}
  - {from: even, on: 1, to: [even]}
  - {from: odd, on: 0, to: [even]}
  - {from: odd, on: 1, to: [odd]}
---
Even number of zeros.`

func setupLoam(t *testing.T, files map[string]string) *Environment {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Dir = testutils.TempDir(t, files)

	env, err := Setup(context.Background(), cfg, logging.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { env.Close() })
	return env
}

func defaultEnv(t *testing.T) *Environment {
	return setupLoam(t, map[string]string{
		"ends-with-01.md": testutils.EndsWith01Doc,
		"parity.md":       parityDoc,
	})
}

func plain(out *bytes.Buffer) Printer {
	return Printer{Out: out, Render: tui.Plain}
}

func TestAccepts(t *testing.T) {
	env := defaultEnv(t)
	ctx := context.Background()

	var out bytes.Buffer
	require.NoError(t, Accepts(ctx, env.Engine, plain(&out), "ends-with-01", []string{"01", "1101"}))
	assert.Equal(t, "accept\t\"01\"\naccept\t\"1101\"\n", out.String())

	out.Reset()
	err := Accepts(ctx, env.Engine, plain(&out), "ends-with-01", []string{"01", "10", ""})
	assert.ErrorIs(t, err, ErrFailedCheck)
	assert.ErrorContains(t, err, "2 of 3 inputs rejected")
	assert.Contains(t, out.String(), "reject\t\"10\"\n")

	err = Accepts(ctx, env.Engine, plain(&out), "missing", []string{"0"})
	assert.ErrorIs(t, err, domain.ErrAutomatonNotFound)
}

func TestCopiesAndCheck(t *testing.T) {
	env := defaultEnv(t)
	ctx := context.Background()

	var out bytes.Buffer
	require.NoError(t, Copies(ctx, env.Engine, plain(&out), "ends-with-01", []string{"", "0", "1x00"}))
	assert.Equal(t, "1\t\"\"\n2\t\"0\"\n1\t\"1x00\"\n", out.String())

	out.Reset()
	require.NoError(t, Check(ctx, env.Engine, plain(&out), "ends-with-01"))
	require.NoError(t, Check(ctx, env.Engine, plain(&out), "parity"))
	assert.Equal(t, "ends-with-01: nondeterministic\nparity: deterministic\n", out.String())
}

func TestTraceGraphInspect(t *testing.T) {
	env := defaultEnv(t)
	ctx := context.Background()

	var out bytes.Buffer
	require.NoError(t, Trace(ctx, env.Engine, plain(&out), "ends-with-01", "01"))
	assert.Contains(t, out.String(), "| 2 | `1` | {q0, q2} |")
	assert.Contains(t, out.String(), "**Result**: accepted, max copies 2")

	out.Reset()
	require.NoError(t, Graph(ctx, env.Engine, plain(&out), "ends-with-01", nil))
	assert.True(t, strings.HasPrefix(out.String(), "graph LR"))
	assert.NotContains(t, out.String(), "classDef")

	out.Reset()
	input := "01"
	require.NoError(t, Graph(ctx, env.Engine, plain(&out), "ends-with-01", &input))
	assert.Contains(t, out.String(), "class q2 active;")

	out.Reset()
	require.NoError(t, Inspect(ctx, env.Engine, plain(&out), "parity"))
	assert.Contains(t, out.String(), "# parity")
	assert.Contains(t, out.String(), "Even number of zeros.")
	assert.Contains(t, out.String(), "**Deterministic**: true")
}

func TestValidate(t *testing.T) {
	var out bytes.Buffer
	env := defaultEnv(t)
	require.NoError(t, Validate(env.Engine, plain(&out), nil))
	assert.Contains(t, out.String(), "## ends-with-01: ok")
	assert.Contains(t, out.String(), "## parity: ok")

	broken := setupLoam(t, map[string]string{
		"parity.md": parityDoc,
		"orphan.md": `---
name: orphan
alphabet: [a]
states: [s, t]
start: s
final: [s]
---
`,
	})
	out.Reset()
	err := Validate(broken.Engine, plain(&out), nil)
	assert.ErrorIs(t, err, ErrFailedCheck)
	assert.Contains(t, out.String(), "- unreachable: t")

	out.Reset()
	require.NoError(t, Validate(broken.Engine, plain(&out), []string{"parity"}))
	assert.NotContains(t, out.String(), "orphan")
}

func TestGenerate(t *testing.T) {
	env := defaultEnv(t)
	ctx := context.Background()

	var out bytes.Buffer
	require.NoError(t, Generate(ctx, env.Engine, plain(&out), "ends-with-01", GenerateOptions{Package: "matchers"}))
	assert.Contains(t, out.String(), "package matchers")
	assert.Contains(t, out.String(), "func EndsWith01Accepts(")

	target := filepath.Join(t.TempDir(), "parity_gen.go")
	out.Reset()
	require.NoError(t, Generate(ctx, env.Engine, plain(&out), "parity", GenerateOptions{
		Package:    "matchers",
		Identifier: "Parity",
		OutFile:    target,
	}))
	assert.Contains(t, out.String(), ">>> Wrote "+target)

	code, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Contains(t, string(code), "ParityDeterministic = true")

	err = Generate(ctx, env.Engine, plain(&out), "parity", GenerateOptions{})
	assert.Error(t, err, "package name is required")
}

func TestSession(t *testing.T) {
	env := defaultEnv(t)

	var out bytes.Buffer
	in := strings.NewReader("01\n10\n")
	require.NoError(t, Session(context.Background(), env.Engine, in, plain(&out), "ends-with-01", true))
	assert.Equal(t, "accept\tcopies=2\t\"01\"\nreject\tcopies=2\t\"10\"\n", out.String())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	out.Reset()
	err := Session(ctx, env.Engine, strings.NewReader("01\n"), plain(&out), "ends-with-01", true)
	assert.NoError(t, err, "an interrupted session is not an error")

	err = Session(context.Background(), env.Engine, strings.NewReader(""), plain(&out), "missing", true)
	assert.ErrorIs(t, err, domain.ErrAutomatonNotFound)
}

func TestRegister_ReadOnlyFolder(t *testing.T) {
	env := defaultEnv(t)
	path := filepath.Join(t.TempDir(), "new.yaml")
	require.NoError(t, os.WriteFile(path, []byte("name: new\nstates: [s]\nstart: s\n"), 0644))

	var out bytes.Buffer
	err := Register(context.Background(), env.Engine, plain(&out), []string{path})
	assert.ErrorIs(t, err, domain.ErrReadOnlyLoader)
}

func TestSetup_Redis(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	cfg := DefaultConfig()
	cfg.Redis = RedisConfig{URL: "redis://" + mr.Addr(), Prefix: "cli:", TTL: "1h"}

	ctx := context.Background()
	env, err := Setup(ctx, cfg, logging.NewNop())
	require.NoError(t, err)
	defer env.Close()

	dir := testutils.TempDir(t, map[string]string{
		"ends.yaml": "name: ends-with-a\nalphabet: [a, b]\nstates: [p, q]\nstart: p\nfinal: [q]\n" +
			"transitions:\n  - {from: p, on: a, to: [p, q]}\n  - {from: p, on: b, to: [p]}\n",
	})

	var out bytes.Buffer
	require.NoError(t, Register(ctx, env.Engine, plain(&out), []string{filepath.Join(dir, "ends.yaml")}))
	assert.Equal(t, ">>> Registered 'ends-with-a'\n", out.String())
	assert.True(t, mr.Exists("cli:ends-with-a"))
	assert.InDelta(t, time.Hour.Seconds(), mr.TTL("cli:ends-with-a").Seconds(), 1)

	out.Reset()
	require.NoError(t, Accepts(ctx, env.Engine, plain(&out), "ends-with-a", []string{"ba"}))

	count, err := testutil.GatherAndCount(env.Registry, "nfa_queries_total", "nfa_compilations_total")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestSetup_Errors(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Redis.URL = "redis://127.0.0.1:1"
	_, err := Setup(context.Background(), cfg, logging.NewNop())
	assert.ErrorContains(t, err, "redis unreachable")

	cfg.Redis = RedisConfig{URL: "redis://127.0.0.1:1", TTL: "forever"}
	_, err = Setup(context.Background(), cfg, logging.NewNop())
	assert.ErrorContains(t, err, "invalid redis ttl")

	cfg = DefaultConfig()
	cfg.Dir = ""
	_, err = Setup(context.Background(), cfg, nil)
	assert.Error(t, err)
}
