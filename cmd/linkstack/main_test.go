package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askiada/go-linkstack/pkg/pipeline"
)

func inputTree(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	files := map[string]string{
		"mod/com/foo/A.class":      "class A",
		"mod/com/foo/A.jcov":       "coverage",
		"mod/META-INF/MANIFEST.MF": "Manifest-Version: 1.0\r\n",
	}
	for name, content := range files {
		full := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
		require.NoError(t, os.WriteFile(full, []byte(content), 0o600))
	}

	return dir
}

func exitCode(t *testing.T, err error) int {
	t.Helper()

	var exitErr *ExitError
	require.True(t, errors.As(err, &exitErr), "expected an ExitError, got %v", err)

	return exitErr.Code
}

func TestRunHelp(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	require.NoError(t, run(t.Context(), out, &bytes.Buffer{}, []string{"-h"}))
	assert.Contains(t, out.String(), "Usage:")
}

func TestRunPrintPlan(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	err := run(t.Context(), out, &bytes.Buffer{}, []string{
		"-print-plan",
		"--zip",
		"--exclude-resources", "*.jcov, */META-INF/*",
		"--sort-resources:LAST", "*.class",
		"--normalize-line-endings:2",
	})
	require.NoError(t, err)
	assert.Equal(t, `- name: exclude-resources
  category: FILTER
  position: 10000
- name: normalize-line-endings
  category: TRANSFORMER
  position: 20002
- name: sort-resources
  category: SORTER
  position: 39999
- name: zip
  category: COMPRESSOR
  position: 40000
`, out.String())
}

func TestRun(t *testing.T) {
	t.Parallel()

	input := inputTree(t)
	output := filepath.Join(t.TempDir(), "image")
	graph := filepath.Join(t.TempDir(), "stages.dot")
	logs := &bytes.Buffer{}

	err := run(t.Context(), &bytes.Buffer{}, logs, []string{
		"-input", input,
		"-output=" + output,
		"-graph", graph,
		"-log-format", "json",
		"--exclude-resources", "*.jcov",
		"--normalize-line-endings",
	})
	require.NoError(t, err)

	manifest, err := os.ReadFile(filepath.Join(output, "mod", "META-INF", "MANIFEST.MF"))
	require.NoError(t, err)
	assert.Equal(t, "Manifest-Version: 1.0\n", string(manifest))
	assert.FileExists(t, filepath.Join(output, "mod", "com", "foo", "A.class"))
	assert.NoFileExists(t, filepath.Join(output, "mod", "com", "foo", "A.jcov"))

	dot, err := os.ReadFile(graph)
	require.NoError(t, err)
	assert.Contains(t, string(dot), "exclude-resources")
	assert.Contains(t, string(dot), "normalize-line-endings")

	assert.Contains(t, logs.String(), `"msg":"resources written"`)
}

func TestRunConfigFile(t *testing.T) {
	t.Parallel()

	input := inputTree(t)
	output := filepath.Join(t.TempDir(), "image")
	cfgPath := filepath.Join(t.TempDir(), "linkstack.yaml")
	cfg := strings.Join([]string{
		"input: " + input,
		"output: " + output,
		"stages:",
		"  - name: exclude-resources",
		"    arguments: ['*/META-INF/*']",
	}, "\n")
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfg), 0o600))

	err := run(t.Context(), &bytes.Buffer{}, &bytes.Buffer{}, []string{"-config", cfgPath, "--exclude-resources", "*.jcov"})
	require.ErrorIs(t, err, pipeline.ErrDuplicateName)

	require.NoError(t, run(t.Context(), &bytes.Buffer{}, &bytes.Buffer{}, []string{"-config", cfgPath}))
	assert.FileExists(t, filepath.Join(output, "mod", "com", "foo", "A.jcov"))
	assert.NoFileExists(t, filepath.Join(output, "mod", "META-INF", "MANIFEST.MF"))
}

func TestRunUsageErrors(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		args []string
	}{
		"stray argument":      {args: []string{"image"}},
		"missing input":       {args: []string{"--zip"}},
		"bad log format":      {args: []string{"-log-format", "xml", "-input", "x"}},
		"bad log level":       {args: []string{"-log-level", "loud", "-input", "x"}},
		"bad position":        {args: []string{"--zip:soon"}},
		"missing config":      {args: []string{"-config", "/does/not/exist.yaml"}},
		"input without value": {args: []string{"-input"}},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			err := run(t.Context(), &bytes.Buffer{}, &bytes.Buffer{}, tc.args)
			require.Error(t, err)
			assert.Equal(t, 2, exitCode(t, err))
		})
	}
}

func TestRunPipelineErrors(t *testing.T) {
	t.Parallel()

	input := inputTree(t)

	tcs := map[string]struct {
		args        []string
		expectedErr error
	}{
		"unknown stage": {
			args:        []string{"-input", input, "--strip-debug"},
			expectedErr: pipeline.ErrUnknownStage,
		},
		"construction": {
			args:        []string{"-input", input, "--exclude-resources"},
			expectedErr: pipeline.ErrConstruction,
		},
		"strict bounds": {
			args:        []string{"-input", input, "-strict", "--zip:10000"},
			expectedErr: pipeline.ErrInvalidPosition,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			err := run(t.Context(), &bytes.Buffer{}, &bytes.Buffer{}, tc.args)
			require.ErrorIs(t, err, tc.expectedErr)

			var exitErr *ExitError
			assert.False(t, errors.As(err, &exitErr))
		})
	}
}
