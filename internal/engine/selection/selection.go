package selection

import "github.com/dshills/loom/internal/engine/position"

// Selection tracks an anchor/focus pair of positions in a document
// tree. The anchor is where the selection started; the focus is the
// active end that moves. When both are equal the selection is a caret.
//
// A selection is inactive until the first SetTo or SetRange call.
type Selection struct {
	anchor position.Position
	focus  position.Position
	active bool
}

// New creates an inactive selection.
func New() *Selection {
	return &Selection{}
}

// SetTo collapses the selection to a caret at p.
func (s *Selection) SetTo(p position.Position) {
	s.anchor = p
	s.focus = p
	s.active = true
}

// SetRange places the selection between anchor and focus. The focus
// may come before the anchor; the selection is then backward.
func (s *Selection) SetRange(anchor, focus position.Position) {
	s.anchor = anchor
	s.focus = focus
	s.active = true
}

// Clear deactivates the selection.
func (s *Selection) Clear() {
	*s = Selection{}
}

// IsActive reports whether the selection has been placed.
func (s *Selection) IsActive() bool {
	return s.active
}

// IsCollapsed reports whether the selection is a caret.
func (s *Selection) IsCollapsed() bool {
	return s.active && s.anchor.IsEqual(s.focus)
}

// IsBackward reports whether the focus comes before the anchor.
func (s *Selection) IsBackward() bool {
	return s.active && s.focus.IsBefore(s.anchor)
}

// Anchor returns the anchor position of an active selection.
func (s *Selection) Anchor() (position.Position, bool) {
	return s.anchor, s.active
}

// Focus returns the focus position of an active selection.
func (s *Selection) Focus() (position.Position, bool) {
	return s.focus, s.active
}

// Position returns the caret position. It reports false when the
// selection is inactive or not collapsed.
func (s *Selection) Position() (position.Position, bool) {
	if !s.IsCollapsed() {
		return position.Position{}, false
	}
	return s.focus, true
}

// Range returns the selected span ordered start before end, regardless
// of the selection direction.
func (s *Selection) Range() (position.Range, bool) {
	if !s.active {
		return position.Range{}, false
	}
	if s.IsBackward() {
		return position.NewRange(s.focus, s.anchor), true
	}
	return position.NewRange(s.anchor, s.focus), true
}
