package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"microdoc/docgen"

	"github.com/stretchr/testify/require"
)

func writeProject(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("# Title\n\nIntro.\n\n## Usage\n"), 0o600))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "vocabulary"), 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "vocabulary", "widget.yaml"), []byte("description: \"A **thing**.\"\n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "package.json"), []byte(`{"name": "micro-api", "version": "1.0.0"}`), 0o600))

	return dir
}

func projectArgs(dir string, extra ...string) []string {
	args := []string{"microdoc"}
	args = append(args, extra...)
	return append(args,
		"--readme", filepath.Join(dir, "README.md"),
		"--vocabulary", filepath.Join(dir, "vocabulary"),
		"--outdir", filepath.Join(dir, "dist"),
		"--package", filepath.Join(dir, "package.json"),
	)
}

func TestRun_ImplicitBuild(t *testing.T) {
	dir := writeProject(t)
	var stdout, stderr bytes.Buffer

	code := run(projectArgs(dir), &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())

	require.FileExists(t, filepath.Join(dir, "dist", "index.html"))
	require.FileExists(t, filepath.Join(dir, "dist", "widget.html"))
}

func TestRun_BuildCommand(t *testing.T) {
	dir := writeProject(t)
	var stdout, stderr bytes.Buffer

	code := run(projectArgs(dir, "build"), &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())

	data, err := os.ReadFile(filepath.Join(dir, "dist", "widget.html"))
	require.NoError(t, err)
	require.Contains(t, string(data), "<strong>thing</strong>")
}

func TestRun_BannerFlag(t *testing.T) {
	dir := writeProject(t)
	var stdout, stderr bytes.Buffer

	code := run(projectArgs(dir, "--banner", "[Docs](https://example.com/docs)"), &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())

	data, err := os.ReadFile(filepath.Join(dir, "dist", "index.html"))
	require.NoError(t, err)
	require.Contains(t, string(data), `href="https://example.com/docs"`)
	require.NotContains(t, string(data), `id="title"`)
}

func TestRun_UnreadableVocabulary(t *testing.T) {
	dir := writeProject(t)
	require.NoError(t, os.RemoveAll(filepath.Join(dir, "vocabulary")))
	var stdout, stderr bytes.Buffer

	code := run(projectArgs(dir), &stdout, &stderr)
	require.Equal(t, 1, code)
	require.Contains(t, stderr.String(), "load vocabulary")
	require.Contains(t, stderr.String(), "stage:")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, e := range entries {
		require.NotEqual(t, "dist", e.Name())
	}
}

func TestRun_TermsCommand(t *testing.T) {
	dir := writeProject(t)
	var stdout, stderr bytes.Buffer

	code := run(projectArgs(dir, "terms"), &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())
	require.Contains(t, stdout.String(), "widget")
	require.Contains(t, stdout.String(), "thing")
	require.NoDirExists(t, filepath.Join(dir, "dist"))
}

func TestReport_IncludesCauseChain(t *testing.T) {
	var buf bytes.Buffer
	cause := errors.New("disk full")

	report(&buf, &docgen.BuildError{Stage: docgen.StageWrite, Path: "dist/index.html", Err: cause})

	out := buf.String()
	require.Contains(t, out, "write output dist/index.html: disk full")
	require.Contains(t, out, "stage: write output")
	require.Contains(t, out, "path:  dist/index.html")
	require.Contains(t, out, "caused by: *errors.errorString: disk full")
}
