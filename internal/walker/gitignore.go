package walker

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	gitignore "github.com/monochromegane/go-gitignore"
)

// LoadGitignore reads root/.gitignore. It returns a nil Matcher and no error
// when the file does not exist. Nested .gitignore files are not consulted.
func LoadGitignore(root string) (Matcher, error) {
	root = filepath.Clean(root)
	path := filepath.Join(root, ".gitignore")
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("error accessing %s: %w", path, err)
	}
	m, err := gitignore.NewGitIgnore(path, root)
	if err != nil {
		return nil, fmt.Errorf("could not parse %s: %w", path, err)
	}
	return m, nil
}
