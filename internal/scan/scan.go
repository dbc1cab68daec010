// Package scan enumerates directory contents for the image browser.
package scan

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// Dir returns the files directly inside dir as absolute paths, sorted
// lexicographically. Subdirectories are skipped, not entered.
func Dir(dir string) ([]string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving %q: %w", dir, err)
	}
	entries, err := os.ReadDir(abs)
	if err != nil {
		return nil, fmt.Errorf("reading directory %q: %w", dir, err)
	}
	files := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		files = append(files, filepath.Join(abs, e.Name()))
	}
	sort.Strings(files)
	return files, nil
}
