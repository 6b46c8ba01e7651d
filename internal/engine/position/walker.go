package position

import "github.com/dshills/loom/internal/engine/tree"

// Direction selects which way a Walker steps.
type Direction int

const (
	// Forward walks toward the end of the tree.
	Forward Direction = iota

	// Backward walks toward the start of the tree.
	Backward
)

// StepType describes what a walker step visited.
type StepType int

const (
	// StepElementStart reports crossing the opening edge of an element.
	// Void leaves and widgets are visited as a single element-start
	// step, since they have no interior positions.
	StepElementStart StepType = iota

	// StepElementEnd reports crossing the closing edge of an element.
	StepElementEnd

	// StepText reports a run of text, clipped at the walker boundaries.
	StepText
)

// String returns a human-readable name for the step type.
func (s StepType) String() string {
	switch s {
	case StepElementStart:
		return "elementStart"
	case StepElementEnd:
		return "elementEnd"
	case StepText:
		return "text"
	default:
		return "unknown"
	}
}

// Step is a single walker move.
type Step struct {
	// Type tells what was visited.
	Type StepType

	// Item is the element whose edge was crossed, or the text node the
	// run belongs to.
	Item tree.Node

	// TextStart and TextLength give the visited byte run of Item for
	// StepText steps.
	TextStart  int
	TextLength int

	// PreviousPosition is where the walker was before the step: before
	// the item when walking forward, after it when walking backward.
	PreviousPosition Position

	// NextPosition is where the walker is after the step.
	NextPosition Position
}

// Walker iterates the points of a tree between two boundaries,
// yielding element edges and text runs. Mutating the tree between
// steps is allowed as long as the walker's current position stays
// valid; the backward direction exists so removals behind the walker
// do not disturb the remaining walk.
type Walker struct {
	pos              Position
	boundaries       Range
	hasBoundaries    bool
	hasStart         bool
	direction        Direction
	ignoreElementEnd bool
}

// WalkerOption configures a Walker.
type WalkerOption func(*Walker)

// WithStart sets the walker's starting position. Without it the walker
// starts at the boundary matching its direction.
func WithStart(p Position) WalkerOption {
	return func(w *Walker) {
		w.pos = p
		w.hasStart = true
	}
}

// WithBoundaries keeps the walk inside r.
func WithBoundaries(r Range) WalkerOption {
	return func(w *Walker) {
		w.boundaries = r
		w.hasBoundaries = true
	}
}

// WithDirection sets the walk direction.
func WithDirection(d Direction) WalkerOption {
	return func(w *Walker) {
		w.direction = d
	}
}

// WithIgnoreElementEnd drops StepElementEnd steps, so every element is
// visited exactly once.
func WithIgnoreElementEnd() WalkerOption {
	return func(w *Walker) {
		w.ignoreElementEnd = true
	}
}

// NewWalker creates a walker. At least a start position or boundaries
// must be configured.
func NewWalker(opts ...WalkerOption) *Walker {
	w := &Walker{}
	for _, opt := range opts {
		opt(w)
	}
	if !w.hasStart {
		if !w.hasBoundaries {
			panic("position: walker needs a start position or boundaries")
		}
		if w.direction == Backward {
			w.pos = w.boundaries.End
		} else {
			w.pos = w.boundaries.Start
		}
	}
	return w
}

// Position returns the walker's current position.
func (w *Walker) Position() Position {
	return w.pos
}

// Next advances the walker one step. It returns false when the walk
// has reached the tree edge or the boundary.
func (w *Walker) Next() (Step, bool) {
	if w.direction == Backward {
		return w.stepBackward()
	}
	return w.stepForward()
}

func (w *Walker) stepForward() (Step, bool) {
	for {
		pos := w.pos
		prev := w.pos
		parent := pos.Parent

		// The walk ends past the root's last offset or at the boundary.
		if parent.Parent() == nil && pos.Offset == MaxOffset(parent) {
			return Step{}, false
		}
		if w.hasBoundaries && pos.SamePoint(w.boundaries.End) {
			return Step{}, false
		}

		// Inside a text node: consume the rest of the run.
		if txt, ok := parent.(*tree.Text); ok {
			if pos.IsAtEnd() {
				// Never report the inner end of a text node.
				w.pos = AfterNode(txt)
				continue
			}
			end := txt.Len()
			if w.hasBoundaries && w.boundaries.End.Parent == tree.Node(txt) {
				end = w.boundaries.End.Offset
			}
			return w.textForward(txt, pos.Offset, end, prev), true
		}

		el := parent.(tree.Parent)
		node := el.Child(pos.Offset)

		if node == nil {
			// End of the parent: step out across its closing edge.
			w.pos = AfterNode(parent)
			if w.ignoreElementEnd {
				continue
			}
			return Step{
				Type:             StepElementEnd,
				Item:             parent,
				PreviousPosition: prev,
				NextPosition:     w.pos,
			}, true
		}

		switch n := node.(type) {
		case *tree.Text:
			end := n.Len()
			if w.hasBoundaries && w.boundaries.End.Parent == tree.Node(n) {
				end = w.boundaries.End.Offset
			}
			return w.textForward(n, 0, end, prev), true
		case tree.Parent:
			w.pos = At(n, 0)
			return Step{
				Type:             StepElementStart,
				Item:             n,
				PreviousPosition: prev,
				NextPosition:     w.pos,
			}, true
		default:
			// Void leaf or widget: hop over it in one step.
			w.pos = pos.ShiftedBy(1)
			return Step{
				Type:             StepElementStart,
				Item:             n,
				PreviousPosition: prev,
				NextPosition:     w.pos,
			}, true
		}
	}
}

func (w *Walker) stepBackward() (Step, bool) {
	for {
		pos := w.pos
		prev := w.pos
		parent := pos.Parent

		if parent.Parent() == nil && pos.Offset == 0 {
			return Step{}, false
		}
		if w.hasBoundaries && pos.SamePoint(w.boundaries.Start) {
			return Step{}, false
		}

		if txt, ok := parent.(*tree.Text); ok {
			if pos.IsAtStart() {
				// Never report the inner start of a text node.
				w.pos = BeforeNode(txt)
				continue
			}
			start := 0
			if w.hasBoundaries && w.boundaries.Start.Parent == tree.Node(txt) {
				start = w.boundaries.Start.Offset
			}
			return w.textBackward(txt, start, pos.Offset, prev), true
		}

		el := parent.(tree.Parent)
		node := el.Child(pos.Offset - 1)

		if node == nil {
			// Start of the parent: step out across its opening edge.
			w.pos = BeforeNode(parent)
			return Step{
				Type:             StepElementStart,
				Item:             parent,
				PreviousPosition: prev,
				NextPosition:     w.pos,
			}, true
		}

		switch n := node.(type) {
		case *tree.Text:
			start := 0
			if w.hasBoundaries && w.boundaries.Start.Parent == tree.Node(n) {
				start = w.boundaries.Start.Offset
			}
			return w.textBackward(n, start, n.Len(), prev), true
		case tree.Parent:
			w.pos = At(n, MaxOffset(n))
			if w.ignoreElementEnd {
				continue
			}
			return Step{
				Type:             StepElementEnd,
				Item:             n,
				PreviousPosition: prev,
				NextPosition:     w.pos,
			}, true
		default:
			w.pos = pos.ShiftedBy(-1)
			return Step{
				Type:             StepElementStart,
				Item:             n,
				PreviousPosition: prev,
				NextPosition:     w.pos,
			}, true
		}
	}
}

// textForward finishes a forward step over txt[start:end]. The walker
// lands after the text node when the run reaches its end, unless the
// boundary itself sits on the inner edge.
func (w *Walker) textForward(txt *tree.Text, start, end int, prev Position) Step {
	if end == txt.Len() && txt.Parent() != nil &&
		!(w.hasBoundaries && w.boundaries.End.IsEqual(At(txt, end))) {
		w.pos = AfterNode(txt)
	} else {
		w.pos = At(txt, end)
	}
	return Step{
		Type:             StepText,
		Item:             txt,
		TextStart:        start,
		TextLength:       end - start,
		PreviousPosition: prev,
		NextPosition:     w.pos,
	}
}

// textBackward finishes a backward step over txt[start:end]. The
// walker lands before the text node when the run reaches its start,
// unless the boundary itself sits on the inner edge.
func (w *Walker) textBackward(txt *tree.Text, start, end int, prev Position) Step {
	if start == 0 && txt.Parent() != nil &&
		!(w.hasBoundaries && w.boundaries.Start.IsEqual(At(txt, 0))) {
		w.pos = BeforeNode(txt)
	} else {
		w.pos = At(txt, start)
	}
	return Step{
		Type:             StepText,
		Item:             txt,
		TextStart:        start,
		TextLength:       end - start,
		PreviousPosition: prev,
		NextPosition:     w.pos,
	}
}
