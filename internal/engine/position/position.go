package position

import (
	"fmt"

	"github.com/dshills/loom/internal/engine/tree"
)

// Relation describes how two positions relate in document order.
type Relation int

const (
	// Different means the positions live in different trees.
	Different Relation = iota

	// Same means both positions have the same parent and offset.
	Same

	// Before means the receiver comes before the argument.
	Before

	// After means the receiver comes after the argument.
	After
)

// String returns a human-readable name for the relation.
func (r Relation) String() string {
	switch r {
	case Different:
		return "different"
	case Same:
		return "same"
	case Before:
		return "before"
	case After:
		return "after"
	default:
		return "unknown"
	}
}

// Position points at a slot in the tree: between two children of an
// element, or between two bytes of a text node. Offset counts children
// for element parents and bytes for text parents.
//
// A position at a text node's edge and the matching position outside
// the text node are distinct positions under CompareWith even though
// they denote the same point; SamePoint treats them as equal.
type Position struct {
	Parent tree.Node
	Offset int
}

// At returns the position at offset inside parent.
func At(parent tree.Node, offset int) Position {
	return Position{Parent: parent, Offset: offset}
}

// BeforeNode returns the position immediately before node. The node
// must be attached.
func BeforeNode(node tree.Node) Position {
	p := node.Parent()
	if p == nil {
		panic("position: BeforeNode of a detached node")
	}
	return Position{Parent: p, Offset: node.Index()}
}

// AfterNode returns the position immediately after node. The node must
// be attached.
func AfterNode(node tree.Node) Position {
	p := node.Parent()
	if p == nil {
		panic("position: AfterNode of a detached node")
	}
	return Position{Parent: p, Offset: node.Index() + 1}
}

// MaxOffset returns the last valid offset inside n: the byte length
// for a text node, the child count for an element or fragment.
func MaxOffset(n tree.Node) int {
	switch v := n.(type) {
	case *tree.Text:
		return v.Len()
	case tree.Parent:
		return v.ChildCount()
	default:
		return 0
	}
}

// IsEqual reports whether both positions have the same parent node and
// the same offset.
func (p Position) IsEqual(o Position) bool {
	return p.Parent == o.Parent && p.Offset == o.Offset
}

// Root returns the root of the tree the position points into.
func (p Position) Root() tree.Node {
	if p.Parent == nil {
		return nil
	}
	return p.Parent.Root()
}

// NodeBefore returns the child immediately before the position, or nil
// when the position is at the start or inside a text node.
func (p Position) NodeBefore() tree.Node {
	par, ok := p.Parent.(tree.Parent)
	if !ok {
		return nil
	}
	return par.Child(p.Offset - 1)
}

// NodeAfter returns the child immediately after the position, or nil
// when the position is at the end or inside a text node.
func (p Position) NodeAfter() tree.Node {
	par, ok := p.Parent.(tree.Parent)
	if !ok {
		return nil
	}
	return par.Child(p.Offset)
}

// IsAtStart reports whether the position is at the first offset of its
// parent.
func (p Position) IsAtStart() bool {
	return p.Offset == 0
}

// IsAtEnd reports whether the position is at the last offset of its
// parent.
func (p Position) IsAtEnd() bool {
	return p.Offset == MaxOffset(p.Parent)
}

// ShiftedBy returns a position moved by delta offsets within the same
// parent, clamped at zero.
func (p Position) ShiftedBy(delta int) Position {
	off := p.Offset + delta
	if off < 0 {
		off = 0
	}
	return Position{Parent: p.Parent, Offset: off}
}

// CompareWith orders two positions by their paths from the root.
// Positions in different trees compare as Different.
func (p Position) CompareWith(o Position) Relation {
	if p.Parent == nil || o.Parent == nil || p.Root() != o.Root() {
		return Different
	}
	if p.IsEqual(o) {
		return Same
	}

	a := append(p.Parent.Path(), p.Offset)
	b := append(o.Parent.Path(), o.Offset)
	rel, diff := comparePaths(a, b)
	switch rel {
	case prefixPaths:
		return Before
	case extensionPaths:
		return After
	case divergentPaths:
		if a[diff] < b[diff] {
			return Before
		}
		return After
	default:
		return Same
	}
}

// IsBefore reports whether the position comes before o.
func (p Position) IsBefore(o Position) bool {
	return p.CompareWith(o) == Before
}

// IsAfter reports whether the position comes after o.
func (p Position) IsAfter(o Position) bool {
	return p.CompareWith(o) == After
}

// SamePoint reports whether both positions denote the same point in
// the tree, treating a text node's inner edges and the matching outer
// positions as equal.
func (p Position) SamePoint(o Position) bool {
	return p.normalized().IsEqual(o.normalized())
}

// normalized rewrites a position at a text node's inner edge to the
// matching position outside the text node.
func (p Position) normalized() Position {
	t, ok := p.Parent.(*tree.Text)
	if !ok || t.Parent() == nil {
		return p
	}
	if p.Offset == 0 {
		return BeforeNode(t)
	}
	if p.Offset == t.Len() {
		return AfterNode(t)
	}
	return p
}

// String renders the position for debugging.
func (p Position) String() string {
	if p.Parent == nil {
		return "<nil position>"
	}
	return fmt.Sprintf("%v%v:%d", p.Parent.Kind(), p.Parent.Path(), p.Offset)
}

type pathRelation int

const (
	samePaths pathRelation = iota
	prefixPaths
	extensionPaths
	divergentPaths
)

// comparePaths relates two root paths. For divergent paths it also
// returns the index of the first differing step.
func comparePaths(a, b []int) (pathRelation, int) {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return divergentPaths, i
		}
	}
	switch {
	case len(a) == len(b):
		return samePaths, -1
	case len(a) < len(b):
		return prefixPaths, -1
	default:
		return extensionPaths, -1
	}
}
