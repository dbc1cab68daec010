// Package gesture recognizes straight-line mouse strokes drawn while a
// button is held and maps them to navigation actions on release.
package gesture

import (
	"math"
	"strings"
)

// Threshold is the minimum Euclidean distance, in screen pixels, the
// pointer must travel from its last anchor before a stroke direction is
// recorded.
const Threshold = 20.0

// MaxDirections caps how many stroke segments a single gesture keeps.
const MaxDirections = 5

// Direction is one recorded stroke segment.
type Direction uint8

const (
	Left Direction = iota
	Right
	Up
	Down
)

func (d Direction) String() string {
	switch d {
	case Left:
		return "left"
	case Right:
		return "right"
	case Up:
		return "up"
	case Down:
		return "down"
	}
	return "unknown"
}

// Glyph returns the arrow drawn for the on-screen gesture trail.
func (d Direction) Glyph() string {
	switch d {
	case Left:
		return "←"
	case Right:
		return "→"
	case Up:
		return "↑"
	case Down:
		return "↓"
	}
	return "?"
}

// Action is the navigation command a completed gesture resolves to.
type Action int

const (
	ActionNone Action = iota
	ActionPrev
	ActionNext
)

// Recognizer accumulates stroke directions between a button press and
// its release. It holds no pointer-device state of its own; the caller
// feeds it positions.
type Recognizer struct {
	active     bool
	anchorX    float64
	anchorY    float64
	directions []Direction
}

// New returns an idle Recognizer.
func New() *Recognizer {
	return &Recognizer{}
}

// Active reports whether a gesture is in progress.
func (r *Recognizer) Active() bool {
	return r.active
}

// Begin starts a gesture at the press position. Any directions left
// over from an earlier gesture are discarded.
func (r *Recognizer) Begin(x, y float64) {
	r.active = true
	r.anchorX = x
	r.anchorY = y
	r.directions = r.directions[:0]
}

// Move feeds the current pointer position. Once the pointer has moved
// at least Threshold pixels from the anchor, the dominant axis of that
// travel is recorded and the anchor jumps to the current position.
// Movement below the threshold leaves the anchor where it is, so slow
// drift still accumulates toward a segment.
func (r *Recognizer) Move(x, y float64) {
	if !r.active {
		return
	}
	dx := x - r.anchorX
	dy := y - r.anchorY
	if math.Hypot(dx, dy) < Threshold {
		return
	}

	var d Direction
	if math.Abs(dx) > math.Abs(dy) {
		if dx > 0 {
			d = Right
		} else {
			d = Left
		}
	} else {
		if dy > 0 {
			d = Down
		} else {
			d = Up
		}
	}
	r.record(d)
	r.anchorX = x
	r.anchorY = y
}

func (r *Recognizer) record(d Direction) {
	if len(r.directions) >= MaxDirections {
		return
	}
	if n := len(r.directions); n > 0 && r.directions[n-1] == d {
		return
	}
	r.directions = append(r.directions, d)
}

// End finishes the gesture and returns the action it resolves to.
// Only the two single-segment horizontal strokes resolve to an action;
// any other recorded shape resolves to none.
func (r *Recognizer) End() Action {
	if !r.active {
		return ActionNone
	}
	action := r.Pending()
	r.active = false
	r.directions = r.directions[:0]
	return action
}

// Cancel drops the gesture without resolving it.
func (r *Recognizer) Cancel() {
	r.active = false
	r.directions = r.directions[:0]
}

// Pending returns the action End would report if the button were
// released now. Used to preview the outcome in the overlay.
func (r *Recognizer) Pending() Action {
	if len(r.directions) != 1 {
		return ActionNone
	}
	switch r.directions[0] {
	case Left:
		return ActionPrev
	case Right:
		return ActionNext
	}
	return ActionNone
}

// Directions returns the recorded segments so far. The slice is shared;
// callers must not modify it.
func (r *Recognizer) Directions() []Direction {
	return r.directions
}

// Trail renders the recorded segments as arrow glyphs for the overlay.
func (r *Recognizer) Trail() string {
	if len(r.directions) == 0 {
		return ""
	}
	var b strings.Builder
	for _, d := range r.directions {
		b.WriteString(d.Glyph())
	}
	return b.String()
}
