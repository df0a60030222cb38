package roi

import "image"

// State enumerates the selector's drag states.
type State int

const (
	StateIdle State = iota
	StateDragging
	StateSet
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateDragging:
		return "dragging"
	case StateSet:
		return "set"
	default:
		return "unknown"
	}
}

// Selector tracks a user-drawn rectangle over a frame in frame coordinates.
// The rectangle is always clamped to the frame bounds. The zero value is an
// idle selector with no bounds; call SetBounds before use.
// No synchronization: updates occur on the UI thread only.
type Selector struct {
	state  State
	bounds image.Rectangle
	anchor image.Point
	rect   image.Rectangle
}

// NewSelector returns an idle selector for a frame of the given bounds.
func NewSelector(bounds image.Rectangle) *Selector {
	return &Selector{bounds: bounds}
}

// SetBounds replaces the frame bounds and clears any selection, since a
// rectangle drawn over one frame is meaningless over another.
func (s *Selector) SetBounds(bounds image.Rectangle) {
	s.bounds = bounds
	s.Clear()
}

// State reports the current drag state.
func (s *Selector) State() State { return s.state }

// PointerDown starts a new drag at p. A press outside the frame bounds is
// ignored. Starting a new selection discards any previous one.
func (s *Selector) PointerDown(p image.Point) {
	if !p.In(s.bounds) {
		return
	}
	s.anchor = p
	s.rect = image.Rectangle{Min: p, Max: p}
	s.state = StateDragging
}

// PointerMove updates the rectangle spanned between the anchor and p,
// clamped to frame bounds. Ignored unless dragging.
func (s *Selector) PointerMove(p image.Point) {
	if s.state != StateDragging {
		return
	}
	s.rect = span(s.anchor, clampPoint(p, s.bounds))
}

// PointerUp finalizes the rectangle. A zero-area span yields no selection
// and returns the selector to idle.
func (s *Selector) PointerUp(p image.Point) {
	if s.state != StateDragging {
		return
	}
	s.rect = span(s.anchor, clampPoint(p, s.bounds))
	if s.rect.Dx() == 0 || s.rect.Dy() == 0 {
		s.rect = image.Rectangle{}
		s.state = StateIdle
		return
	}
	s.state = StateSet
}

// Clear discards the selection.
func (s *Selector) Clear() {
	s.rect = image.Rectangle{}
	s.state = StateIdle
}

// Rect returns the rectangle being dragged or the finalized selection,
// whichever is current. Empty when idle.
func (s *Selector) Rect() image.Rectangle { return s.rect }

// Bounds returns the frame bounds the selector clamps to.
func (s *Selector) Bounds() image.Rectangle { return s.bounds }

// Region returns the selected rectangle if one is set. Absence means the
// whole frame.
func (s *Selector) Region() (image.Rectangle, bool) {
	if s.state != StateSet {
		return image.Rectangle{}, false
	}
	return s.rect, true
}

func span(a, b image.Point) image.Rectangle {
	return image.Rect(a.X, a.Y, b.X, b.Y) // image.Rect canonicalizes min/max
}

func clampPoint(p image.Point, r image.Rectangle) image.Point {
	if p.X < r.Min.X {
		p.X = r.Min.X
	}
	if p.X > r.Max.X {
		p.X = r.Max.X
	}
	if p.Y < r.Min.Y {
		p.Y = r.Min.Y
	}
	if p.Y > r.Max.Y {
		p.Y = r.Max.Y
	}
	return p
}
