package testutils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/loam"
	"github.com/aretw0/loam/pkg/core"
	"github.com/stretchr/testify/require"
)

// EndsWith01Doc is a markdown definition of the automaton accepting binary
// strings that end in 01.
const EndsWith01Doc = `---
name: ends-with-01
alphabet: [0, 1]
states: [q0, q1, q2]
start: q0
final: [q2]
transitions:
  - from: q0
    on: 0
    to: [q0, q1]
  - from: q0
    on: 1
    to: [q0]
  - from: q1
    on: 1
    to: [q2]
---
Binary strings ending in 01.`

// WriteFiles creates each file under dir, failing the test on error.
func WriteFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644)
		require.NoError(t, err, "Failed to write %s", name)
	}
}

// TempDir returns an absolute temporary directory holding files.
func TempDir(t *testing.T, files map[string]string) string {
	t.Helper()
	absPath, err := filepath.Abs(t.TempDir())
	require.NoError(t, err, "Failed to get absolute path for temp dir")

	WriteFiles(t, absPath, files)
	return absPath
}

// SetupTestRepo initializes a Loam repository in a temporary directory and
// seeds it with files. It returns the absolute path and the repository.
func SetupTestRepo(t *testing.T, files map[string]string, opts ...loam.Option) (string, core.Repository) {
	t.Helper()
	absPath := TempDir(t, nil)

	repo, err := loam.Init(absPath, opts...)
	require.NoError(t, err, "Failed to init loam repo")

	WriteFiles(t, absPath, files)
	return absPath, repo
}
