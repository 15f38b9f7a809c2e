package fs

import (
	"fmt"
	iofs "io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/gknews/newspro"
)

// Glob returns the files under root matching pattern, sorted. Patterns
// support ** for recursive matching. Directories never match.
func Glob(root, pattern string) ([]string, error) {
	if pattern == "" {
		return nil, fmt.Errorf("pattern is required: %w", newspro.ErrValidation)
	}
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid glob pattern %q: %w", pattern, newspro.ErrValidation)
	}

	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("access %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory: %w", root, newspro.ErrValidation)
	}

	var matches []string
	err = doublestar.GlobWalk(os.DirFS(root), pattern, func(path string, d iofs.DirEntry) error {
		if d.IsDir() {
			return nil
		}
		matches = append(matches, filepath.Join(root, filepath.FromSlash(path)))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("match %q: %w", pattern, err)
	}
	slices.Sort(matches)
	return matches, nil
}

// Expand turns command-line arguments into file paths. Arguments without
// glob metacharacters are kept as given; the rest are expanded with [Glob]
// from their static prefix. A pattern that matches nothing is an error.
func Expand(args []string) ([]string, error) {
	var paths []string
	for _, arg := range args {
		if !strings.ContainsAny(arg, "*?[{") {
			paths = append(paths, arg)
			continue
		}
		base, pattern := doublestar.SplitPattern(filepath.ToSlash(arg))
		matches, err := Glob(filepath.FromSlash(base), pattern)
		if err != nil {
			return nil, err
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("no files match %q: %w", arg, newspro.ErrValidation)
		}
		paths = append(paths, matches...)
	}
	return paths, nil
}
