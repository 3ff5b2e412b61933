package scanner

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/abdidvp/wflint/internal/domain"
)

// FileScanner implements domain.WorkflowDiscoverer by listing a single
// directory. It does not descend into subdirectories.
type FileScanner struct {
	skipPrefix string
}

// New creates a FileScanner that ignores entries whose name starts with skipPrefix.
func New(skipPrefix string) *FileScanner {
	return &FileScanner{skipPrefix: skipPrefix}
}

// Discover returns the sorted paths of the eligible workflow files in dir.
func (s *FileScanner) Discover(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, &domain.FilesystemError{Op: "list", Path: dir, Err: err}
	}

	paths := make([]string, 0, len(entries))
	for _, e := range entries {
		if s.skipPrefix != "" && strings.HasPrefix(e.Name(), s.skipPrefix) {
			continue
		}

		// Symlinks are skipped even when they point at a regular file.
		if !e.Type().IsRegular() {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}

	sort.Strings(paths)
	return paths, nil
}
