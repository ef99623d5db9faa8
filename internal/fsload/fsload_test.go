package fsload_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askiada/go-linkstack/internal/fsload"
	"github.com/askiada/go-linkstack/pkg/pipeline/pool"
)

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()

	dir := t.TempDir()
	for name, content := range files {
		full := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
		require.NoError(t, os.WriteFile(full, []byte(content), 0o600))
	}

	return dir
}

func TestLoad(t *testing.T) {
	t.Parallel()

	dir := writeTree(t, map[string]string{
		"mod/com/foo/B.class":      "b",
		"mod/com/foo/A.class":      "a",
		"mod/META-INF/MANIFEST.MF": "manifest",
		"top.txt":                  "top",
	})

	tcs := map[string]struct {
		concurrent int
	}{
		"default":    {concurrent: 0},
		"sequential": {concurrent: 1},
		"parallel":   {concurrent: 3},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			p, err := fsload.Load(t.Context(), dir, tc.concurrent)
			require.NoError(t, err)
			assert.Equal(t, []string{
				"/mod/META-INF/MANIFEST.MF",
				"/mod/com/foo/A.class",
				"/mod/com/foo/B.class",
				"/top.txt",
			}, p.Paths())

			res, ok := p.Get("/mod/com/foo/A.class")
			require.True(t, ok)
			assert.Equal(t, []byte("a"), res.Content)
		})
	}
}

func TestLoadErrors(t *testing.T) {
	t.Parallel()

	_, err := fsload.Load(t.Context(), "", 1)
	require.ErrorIs(t, err, fsload.ErrDirMustBeSet)

	_, err = fsload.Load(t.Context(), filepath.Join(t.TempDir(), "missing"), 1)
	require.Error(t, err)
}

func TestLoadCanceled(t *testing.T) {
	t.Parallel()

	dir := writeTree(t, map[string]string{"a.txt": "a"})
	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	_, err := fsload.Load(ctx, dir, 1)
	require.ErrorIs(t, err, context.Canceled)
}

func TestWrite(t *testing.T) {
	t.Parallel()

	p, err := pool.New(
		pool.Resource{Path: "/mod/a.txt", Content: []byte("a")},
		pool.Resource{Path: "/mod/sub/b.txt", Content: []byte("b")},
		pool.Resource{Path: "/../escape.txt", Content: []byte("c")},
	)
	require.NoError(t, err)

	dir := t.TempDir()
	require.NoError(t, fsload.Write(t.Context(), dir, p, 2))

	content, err := os.ReadFile(filepath.Join(dir, "mod", "sub", "b.txt"))
	require.NoError(t, err)
	assert.Equal(t, "b", string(content))

	content, err = os.ReadFile(filepath.Join(dir, "escape.txt"))
	require.NoError(t, err)
	assert.Equal(t, "c", string(content))

	loaded, err := fsload.Load(t.Context(), dir, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"/escape.txt", "/mod/a.txt", "/mod/sub/b.txt"}, loaded.Paths())
}

func TestWriteErrors(t *testing.T) {
	t.Parallel()

	require.ErrorIs(t, fsload.Write(t.Context(), "", pool.Empty(), 1), fsload.ErrDirMustBeSet)
	require.Error(t, fsload.Write(t.Context(), t.TempDir(), nil, 1))
}
