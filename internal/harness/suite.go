package harness

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// FindJobs lists the job files directly inside dir, sorted by name. When
// pattern is non-empty only jobs whose base name (without extension)
// matches it, as a filepath.Match glob, are returned.
func FindJobs(dir, pattern string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read job dir: %w", err)
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if ext != ".json" && ext != ".yaml" && ext != ".yml" {
			continue
		}
		if pattern != "" {
			ok, err := filepath.Match(pattern, strings.TrimSuffix(e.Name(), filepath.Ext(e.Name())))
			if err != nil {
				return nil, fmt.Errorf("bad filter %q: %w", pattern, err)
			}
			if !ok {
				continue
			}
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	sort.Strings(paths)
	return paths, nil
}
