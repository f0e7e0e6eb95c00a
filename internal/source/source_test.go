package source

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsGitURL(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"git@github.com:acme/app.git", true},
		{"https://github.com/acme/app.git", true},
		{"ssh://git@host/acme/app.git", true},
		{"src", false},
		{"./vendor/lib.git", false},
		{"https://example.com/app", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsGitURL(tt.in), tt.in)
	}
}

func TestResolve_LocalPath(t *testing.T) {
	r := &Resolver{}
	root, err := r.Resolve("src")
	require.NoError(t, err)

	assert.Equal(t, "src", root.Path)
	assert.False(t, root.Cloned())
	assert.NoError(t, root.Cleanup())
}

func TestResolve_FailedCloneLeavesNoTempDir(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("TMPDIR", tmp)

	missing := "file://" + filepath.ToSlash(filepath.Join(tmp, "absent.git"))
	_, err := (&Resolver{}).Resolve(missing)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to clone repository")

	entries, err := os.ReadDir(tmp)
	require.NoError(t, err)
	for _, e := range entries {
		assert.False(t, strings.HasPrefix(e.Name(), "treedump-git-"), e.Name())
	}
}
