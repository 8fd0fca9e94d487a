package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-md2gb/internal/fileutil"
)

// FileToConvert represents a single target. Missing paths are kept so they
// can be reported and counted as failures in input order.
type FileToConvert struct {
	Path     string
	NotFound bool
}

// discoverFiles expands paths into conversion targets.
// Files are accepted as given, whatever their extension. Directories are
// walked for .md and .markdown files, skipping hidden directories.
// A path listed twice is converted once.
func discoverFiles(paths []string) ([]FileToConvert, error) {
	var files []FileToConvert
	seen := make(map[string]bool)

	add := func(f FileToConvert) {
		key := filepath.Clean(f.Path)
		if seen[key] {
			return
		}
		seen[key] = true
		files = append(files, f)
	}

	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				add(FileToConvert{Path: p, NotFound: true})
				continue
			}
			return nil, fmt.Errorf("%w: %v", ErrReadMarkdown, err)
		}

		if !info.IsDir() {
			add(FileToConvert{Path: p})
			continue
		}

		err = filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return fmt.Errorf("scanning %s: %w", path, err)
			}
			if d.IsDir() {
				if path != p && strings.HasPrefix(d.Name(), ".") {
					return filepath.SkipDir
				}
				return nil
			}
			if fileutil.IsMarkdown(path) {
				add(FileToConvert{Path: path})
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	return files, nil
}

// resolveInputPaths returns the positional paths, or the configured default
// directory when none were given.
func resolveInputPaths(args []string, defaultDir string) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}
	if defaultDir != "" {
		return []string{defaultDir}, nil
	}
	return nil, ErrNoInput
}
