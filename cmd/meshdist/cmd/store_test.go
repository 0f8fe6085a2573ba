package cmd

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenStore_Local(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	ctx := context.Background()

	tests := map[string]struct {
		uri  string
		want string
	}{
		"bare path":     {uri: "plain", want: filepath.Join(dir, "plain", "k")},
		"file relative": {uri: "file:rel/locks", want: filepath.Join(dir, "rel", "locks", "k")},
		"file absolute": {uri: "file://" + filepath.ToSlash(filepath.Join(dir, "abs")), want: filepath.Join(dir, "abs", "k")},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			s, err := openStore(ctx, tt.uri)
			require.NoError(t, err)
			require.NoError(t, s.Put(ctx, "k", []byte("x")))

			data, err := os.ReadFile(tt.want)
			require.NoError(t, err)
			assert.Equal(t, "x", string(data))
		})
	}
}

func TestOpenStore_FileWithoutDirectory(t *testing.T) {
	_, err := openStore(context.Background(), "file:")
	require.Error(t, err)
}
