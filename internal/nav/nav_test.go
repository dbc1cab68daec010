package nav

import "testing"

var files = []string{"/pics/a.jpg", "/pics/b.png", "/pics/c.svg"}

func TestRebuildSortsAndFindsCurrent(t *testing.T) {
	l := New()
	found := l.Rebuild([]string{"/pics/c.svg", "/pics/a.jpg", "/pics/b.png"}, "/pics/b.png")
	if !found {
		t.Fatal("expected current path to be found")
	}
	if got, _ := l.Current(); got != "/pics/b.png" {
		t.Errorf("cursor on %q, want /pics/b.png", got)
	}
	if got, _ := l.Peek(-1); got != "/pics/a.jpg" {
		t.Errorf("previous is %q, want /pics/a.jpg (list should be sorted)", got)
	}
}

func TestRebuildMissingCurrentFallsBackToFirst(t *testing.T) {
	l := New()
	found := l.Rebuild(files, "/pics/zzz.jpg")
	if found {
		t.Error("reported a path that is not in the list as found")
	}
	if got, ok := l.Current(); !ok || got != "/pics/a.jpg" {
		t.Errorf("cursor on %q, want first entry", got)
	}
}

func TestPeekWrapsForward(t *testing.T) {
	l := New()
	l.Rebuild(files, "/pics/c.svg")

	got, ok := l.Peek(1)
	if !ok || got != "/pics/a.jpg" {
		t.Errorf("Peek(1) from last = %q, want wrap to first", got)
	}
}

func TestPeekWrapsBackward(t *testing.T) {
	l := New()
	l.Rebuild(files, "/pics/a.jpg")

	got, ok := l.Peek(-1)
	if !ok || got != "/pics/c.svg" {
		t.Errorf("Peek(-1) from first = %q, want wrap to last", got)
	}
}

func TestPeekLargeDelta(t *testing.T) {
	l := New()
	l.Rebuild(files, "/pics/a.jpg")

	if got, _ := l.Peek(7); got != "/pics/b.png" {
		t.Errorf("Peek(7) = %q, want /pics/b.png", got)
	}
	if got, _ := l.Peek(-7); got != "/pics/c.svg" {
		t.Errorf("Peek(-7) = %q, want /pics/c.svg", got)
	}
}

func TestPeekDoesNotMoveCursor(t *testing.T) {
	l := New()
	l.Rebuild(files, "/pics/b.png")
	l.Peek(1)
	l.Peek(-1)

	if got, _ := l.Current(); got != "/pics/b.png" {
		t.Errorf("cursor moved to %q after Peek", got)
	}
}

func TestCommit(t *testing.T) {
	l := New()
	l.Rebuild(files, "/pics/a.jpg")

	if !l.Commit("/pics/c.svg") {
		t.Fatal("Commit of a listed path failed")
	}
	if got, _ := l.Current(); got != "/pics/c.svg" {
		t.Errorf("cursor on %q after Commit, want /pics/c.svg", got)
	}
}

func TestCommitUnknownPathKeepsCursor(t *testing.T) {
	l := New()
	l.Rebuild(files, "/pics/b.png")

	if l.Commit("/pics/gone.jpg") {
		t.Error("Commit of an unknown path reported success")
	}
	if got, _ := l.Current(); got != "/pics/b.png" {
		t.Errorf("cursor on %q, want unchanged /pics/b.png", got)
	}
}

func TestEmptyList(t *testing.T) {
	l := New()
	if _, ok := l.Current(); ok {
		t.Error("empty list reported a current entry")
	}
	if _, ok := l.Peek(1); ok {
		t.Error("empty list produced a candidate")
	}
	if l.Len() != 0 {
		t.Errorf("empty list has Len %d", l.Len())
	}
}

func TestSingleEntryWrapsToItself(t *testing.T) {
	l := New()
	l.Rebuild([]string{"/pics/only.png"}, "/pics/only.png")

	if got, ok := l.Peek(1); !ok || got != "/pics/only.png" {
		t.Errorf("Peek(1) = %q, want the sole entry", got)
	}
	if got, ok := l.Peek(-1); !ok || got != "/pics/only.png" {
		t.Errorf("Peek(-1) = %q, want the sole entry", got)
	}
}
