package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testScene = `{
  "meshes": [
    {
      "name": "Cube",
      "mode": "edit",
      "selected": true,
      "vertices": [[0,0,0],[3,0,0],[0,4,0],[50,0,0]],
      "edges": [[0,1],[0,2]],
      "select": {"vertices": [0, 1, 2]}
    }
  ]
}`

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestCLI(t *testing.T) {
	dir := t.TempDir()
	scenePath := filepath.Join(dir, "scene.json")
	require.NoError(t, os.WriteFile(scenePath, []byte(testScene), 0o600))
	store := filepath.Join(dir, "locks")

	out, err := run(t, "pairs", "--scene", scenePath, "--lock-store", store)
	require.NoError(t, err)
	assert.Contains(t, out, "3.00 mm")
	assert.Contains(t, out, "4.00 mm")
	assert.Contains(t, out, "5.00 mm")
	assert.NotContains(t, out, "50.00 mm")

	out, err = run(t, "lock", "--scene", scenePath, "--lock-store", store, "--compression", "zstd")
	require.NoError(t, err)
	assert.Contains(t, out, "Locked 3 vertices on 1 meshes")

	// The live selection shrinks; the locked one still measures all three.
	require.NoError(t, os.WriteFile(scenePath, bytes.Replace([]byte(testScene), []byte("[0, 1, 2]"), []byte("[0]"), 1), 0o600))

	out, err = run(t, "pairs", "--scene", scenePath, "--lock-store", store, "--locked", "--json", "--depth", "0")
	require.NoError(t, err)
	assert.Contains(t, out, `"label":"5.00 mm"`)

	_, err = run(t, "lock", "--scene", scenePath, "--lock-store", store, "--clear")
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(store, "locked_sets"))
	assert.True(t, os.IsNotExist(err))
}

func TestCLI_InvalidFlags(t *testing.T) {
	_, err := run(t, "pairs", "--scene", "missing.json", "--log-level", "loud")
	require.Error(t, err)
}
