package gitinfo_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-git/go-git/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abdidvp/wflint/internal/adapters/outbound/gitinfo"
)

func realPath(t *testing.T, p string) string {
	t.Helper()
	resolved, err := filepath.EvalSymlinks(p)
	require.NoError(t, err)
	return resolved
}

func TestGitInfo_Root_FromSubdirectory(t *testing.T) {
	dir := t.TempDir()
	_, err := git.PlainInit(dir, false)
	require.NoError(t, err)

	sub := filepath.Join(dir, ".github", "workflows")
	require.NoError(t, os.MkdirAll(sub, 0755))

	root, err := gitinfo.New().Root(sub)
	require.NoError(t, err)
	assert.Equal(t, realPath(t, dir), realPath(t, root))
}

func TestGitInfo_Root_NotARepo(t *testing.T) {
	dir := t.TempDir()

	_, err := gitinfo.New().Root(dir)
	assert.Error(t, err)
}
