package files

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	kerrors "github.com/PolarWolf314/endec/internal/errors"

	"github.com/bmatcuk/doublestar/v4"
)

// ResolveInputs expands user-provided paths, directories and globs into a
// list of files, in argument order and without duplicates.
//
// Directories are walked recursively and only files accepted by walkFilter
// are kept (all regular files when walkFilter is nil). Literal paths are kept
// even when they do not exist so that Preflight can report them.
func ResolveInputs(patterns []string, walkFilter func(path string) bool) ([]string, error) {
	if len(patterns) == 0 {
		return nil, kerrors.Wrap(kerrors.ErrPreflight, kerrors.ErrNoFilesFound, "no input files given")
	}

	var files []string
	seen := make(map[string]bool)

	for _, pattern := range patterns {
		resolved, err := resolvePattern(pattern, walkFilter)
		if err != nil {
			return nil, err
		}

		for _, f := range resolved {
			id := f
			if abs, err := filepath.Abs(f); err == nil {
				id = abs
			}
			if !seen[id] {
				seen[id] = true
				files = append(files, f)
			}
		}
	}

	if len(files) == 0 {
		return nil, kerrors.Wrap(kerrors.ErrPreflight, kerrors.ErrNoFilesFound, "no matching files found").
			WithDetail("patterns: %s", strings.Join(patterns, ", "))
	}

	return files, nil
}

func resolvePattern(pattern string, walkFilter func(string) bool) ([]string, error) {
	clean := filepath.Clean(pattern)

	info, err := os.Stat(clean)
	if err == nil && info.IsDir() {
		return findFilesInDir(clean, walkFilter)
	}
	if err == nil {
		return []string{clean}, nil
	}

	if hasMeta(pattern) {
		return expandGlob(pattern)
	}

	// Missing literal; Preflight reports it.
	return []string{clean}, nil
}

func hasMeta(pattern string) bool {
	return strings.ContainsAny(pattern, "*?[{")
}

func expandGlob(pattern string) ([]string, error) {
	matches, err := doublestar.FilepathGlob(pattern)
	if err != nil {
		return nil, kerrors.Wrap(kerrors.ErrPreflight, err, fmt.Sprintf("invalid glob pattern %q", pattern))
	}

	var files []string
	for _, m := range matches {
		info, err := os.Stat(m)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		files = append(files, m)
	}
	return files, nil
}

func findFilesInDir(dir string, walkFilter func(string) bool) ([]string, error) {
	var files []string

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		// Skip sockets, pipes, devices and symlinks.
		if !d.Type().IsRegular() {
			return nil
		}
		if walkFilter == nil || walkFilter(path) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, kerrors.Wrap(kerrors.ErrIO, err, "could not walk directory").WithPaths(dir)
	}

	return files, nil
}

// HasExtension returns a walk filter accepting files ending in ext.
func HasExtension(ext string) func(string) bool {
	return func(path string) bool {
		return ext != "" && strings.HasSuffix(filepath.Base(path), ext)
	}
}

// WithoutExtension returns a walk filter rejecting files ending in ext.
func WithoutExtension(ext string) func(string) bool {
	return func(path string) bool {
		return ext == "" || !strings.HasSuffix(filepath.Base(path), ext)
	}
}
