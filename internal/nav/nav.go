// Package nav tracks the position of the displayed image inside the
// sorted set of its directory siblings.
package nav

import "sort"

// List is a circular, sorted collection of image paths with a cursor on
// the entry currently shown. Advancing is split in two steps: Peek
// computes a candidate without touching the cursor, and Commit moves
// the cursor only once the candidate has actually been loaded, so a
// failed load keeps the cursor on the image still on screen.
type List struct {
	paths []string
	index int
}

// New returns an empty list.
func New() *List {
	return &List{}
}

// Rebuild replaces the contents with paths, sorted, and points the
// cursor at current. It reports whether current was present; when it is
// not, the cursor falls back to the first entry.
func (l *List) Rebuild(paths []string, current string) bool {
	l.paths = append(l.paths[:0], paths...)
	sort.Strings(l.paths)
	l.index = 0
	for i, p := range l.paths {
		if p == current {
			l.index = i
			return true
		}
	}
	return false
}

// Len returns the number of entries.
func (l *List) Len() int {
	return len(l.paths)
}

// Current returns the path under the cursor.
func (l *List) Current() (string, bool) {
	if len(l.paths) == 0 {
		return "", false
	}
	return l.paths[l.index], true
}

// Peek returns the entry delta steps away from the cursor, wrapping
// around either end. The cursor does not move.
func (l *List) Peek(delta int) (string, bool) {
	n := len(l.paths)
	if n == 0 {
		return "", false
	}
	i := ((l.index+delta)%n + n) % n
	return l.paths[i], true
}

// Commit points the cursor at path. It reports whether path is in the
// list; an unknown path leaves the cursor where it was.
func (l *List) Commit(path string) bool {
	for i, p := range l.paths {
		if p == path {
			l.index = i
			return true
		}
	}
	return false
}
