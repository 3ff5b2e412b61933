package scanner_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/abdidvp/wflint/internal/adapters/outbound/scanner"
	"github.com/abdidvp/wflint/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fixtureDir = "../../../../testdata/workflows/mixed"

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestFileScanner_Discover(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.yml", "on: push")
	writeFile(t, dir, "a.yml", "on: push")
	writeFile(t, dir, "README.md", "docs")

	paths, err := scanner.New("_").Discover(dir)
	require.NoError(t, err)

	assert.Equal(t, []string{
		filepath.Join(dir, "README.md"),
		filepath.Join(dir, "a.yml"),
		filepath.Join(dir, "b.yml"),
	}, paths, "all regular files are candidates, sorted by path")
}

func TestFileScanner_SkipsPrefixedEntries(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "ci.yml", "on: push")
	writeFile(t, dir, "_shared.yml", "{{{ not yaml")

	paths, err := scanner.New("_").Discover(dir)
	require.NoError(t, err)

	assert.Equal(t, []string{filepath.Join(dir, "ci.yml")}, paths)
}

func TestFileScanner_EmptyPrefixSkipsNothing(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "_shared.yml", "on: push")

	paths, err := scanner.New("").Discover(dir)
	require.NoError(t, err)
	assert.Len(t, paths, 1)
}

func TestFileScanner_IsNotRecursive(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "ci.yml", "on: push")
	sub := filepath.Join(dir, "nested")
	require.NoError(t, os.Mkdir(sub, 0755))
	writeFile(t, sub, "deep.yml", "on: push")

	paths, err := scanner.New("_").Discover(dir)
	require.NoError(t, err)

	assert.Equal(t, []string{filepath.Join(dir, "ci.yml")}, paths)
}

func TestFileScanner_SymlinksSkipped(t *testing.T) {
	dir := t.TempDir()
	target := writeFile(t, dir, "real.yml", "on: push")
	sub := filepath.Join(dir, "subdir")
	require.NoError(t, os.Mkdir(sub, 0755))

	require.NoError(t, os.Symlink(target, filepath.Join(dir, "link.yml")))
	require.NoError(t, os.Symlink(sub, filepath.Join(dir, "linkdir")))
	require.NoError(t, os.Symlink(filepath.Join(dir, "missing.yml"), filepath.Join(dir, "dangling.yml")))

	paths, err := scanner.New("_").Discover(dir)
	require.NoError(t, err)

	assert.Equal(t, []string{filepath.Join(dir, "real.yml")}, paths,
		"a link is skipped even when its target is a regular file")
}

func TestFileScanner_MissingDirectory(t *testing.T) {
	_, err := scanner.New("_").Discover(filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrFilesystem)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestFileScanner_EligibleCountMatchesFixture(t *testing.T) {
	paths, err := scanner.New("_").Discover(fixtureDir)
	require.NoError(t, err)

	entries, err := os.ReadDir(fixtureDir)
	require.NoError(t, err)

	want := 0
	for _, e := range entries {
		if e.Type().IsRegular() && e.Name()[0] != '_' {
			want++
		}
	}
	assert.Equal(t, want, len(paths))
	for _, p := range paths {
		assert.NotEqual(t, '_', filepath.Base(p)[0])
	}
}
