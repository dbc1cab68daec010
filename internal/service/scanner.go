package service

import (
	"path/filepath"
	"strings"

	"github.com/firemio/MSBT-yuina/internal/scan"
)

// FileLister abstracts directory enumeration so tests can run against
// fixtures instead of the filesystem.
type FileLister func(dir string) ([]string, error)

// Scanner finds the images that can be browsed alongside an opened file.
type Scanner struct {
	List       FileLister
	Extensions map[string]bool // Supported image extensions
}

// NewScanner constructs a Scanner over the real filesystem with the
// default extension set.
func NewScanner() *Scanner {
	return &Scanner{
		List: scan.Dir,
		Extensions: map[string]bool{
			".jpg":  true,
			".jpeg": true,
			".png":  true,
			".gif":  true,
			".webp": true,
			".bmp":  true,
			".svg":  true,
		},
	}
}

// Supported reports whether path carries a recognized image extension.
// The check is case-insensitive.
func (s *Scanner) Supported(path string) bool {
	return s.Extensions[strings.ToLower(filepath.Ext(path))]
}

// Images lists the supported images directly inside dir. Order follows
// the lister, which returns paths sorted lexicographically.
func (s *Scanner) Images(dir string) ([]string, error) {
	files, err := s.List(dir)
	if err != nil {
		return nil, err
	}
	images := make([]string, 0, len(files))
	for _, f := range files {
		if s.Supported(f) {
			images = append(images, f)
		}
	}
	return images, nil
}
