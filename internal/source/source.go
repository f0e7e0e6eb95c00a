// Package source turns the configured source root into a local directory,
// cloning it first when it names a git repository.
package source

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"go.uber.org/zap"
)

// Root is a resolved, local source root.
type Root struct {
	Path   string
	Origin string
	cloned bool
}

// Cloned reports whether Path is a temporary clone.
func (r *Root) Cloned() bool {
	return r.cloned
}

// Cleanup removes a temporary clone. It is a no-op for local roots.
func (r *Root) Cleanup() error {
	if !r.cloned {
		return nil
	}
	return os.RemoveAll(r.Path)
}

// IsGitURL reports whether input looks like a git remote rather than a path.
func IsGitURL(input string) bool {
	if strings.HasPrefix(input, "git@") {
		return true
	}
	return strings.Contains(input, "://") && strings.HasSuffix(input, ".git")
}

// Resolver resolves source roots. Progress receives clone progress.
type Resolver struct {
	Progress io.Writer
	Logger   *zap.Logger
}

// Resolve returns input unchanged when it is a local path, or a shallow
// clone of the default branch when it is a git URL. Callers must Cleanup.
func (r *Resolver) Resolve(input string) (*Root, error) {
	if !IsGitURL(input) {
		return &Root{Path: input, Origin: input}, nil
	}

	logger := r.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	tempDir, err := os.MkdirTemp("", "treedump-git-")
	if err != nil {
		return nil, fmt.Errorf("failed to create temporary directory: %w", err)
	}

	logger.Info("Cloning git repository", zap.String("url", input), zap.String("dir", tempDir))
	_, err = git.PlainClone(tempDir, false, &git.CloneOptions{
		URL:           input,
		Progress:      r.Progress,
		ReferenceName: plumbing.HEAD,
		SingleBranch:  true,
		Depth:         1,
	})
	if err != nil {
		_ = os.RemoveAll(tempDir)
		return nil, fmt.Errorf("failed to clone repository '%s': %w", input, err)
	}

	return &Root{Path: tempDir, Origin: input, cloned: true}, nil
}
