// Package walker discovers the documents a run will process.
package walker

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Collect resolves root to an ordered list of document paths. A plain
// file is returned as-is; a directory is walked recursively, keeping
// files whose base name matches pattern. Dot-prefixed files and
// directories are skipped unless includeHidden is set. The result is
// lexicographically sorted.
func Collect(root, pattern string, includeHidden bool) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{root}, nil
	}

	var paths []string
	err = filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if hidden(info.Name()) && path != root && !includeHidden {
			if info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if info.IsDir() {
			return nil
		}
		ok, matchErr := filepath.Match(pattern, info.Name())
		if matchErr != nil {
			return matchErr
		}
		if ok {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(paths)
	return paths, nil
}

func hidden(name string) bool {
	return strings.HasPrefix(name, ".")
}
