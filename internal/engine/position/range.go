package position

import (
	"fmt"

	"github.com/dshills/loom/internal/engine/tree"
)

// Range is a pair of positions in one tree. The mutation operations
// expect Start not to come after End.
type Range struct {
	Start Position
	End   Position
}

// NewRange returns the range between start and end.
func NewRange(start, end Position) Range {
	return Range{Start: start, End: end}
}

// Collapsed returns the zero-width range at p.
func Collapsed(p Position) Range {
	return Range{Start: p, End: p}
}

// On returns the range enclosing node from the outside. The node must
// be attached.
func On(node tree.Node) Range {
	return Range{Start: BeforeNode(node), End: AfterNode(node)}
}

// In returns the range spanning the whole interior of parent.
func In(parent tree.Node) Range {
	return Range{
		Start: At(parent, 0),
		End:   At(parent, MaxOffset(parent)),
	}
}

// IsCollapsed reports whether start and end are the same position.
func (r Range) IsCollapsed() bool {
	return r.Start.IsEqual(r.End)
}

// IsEqual reports whether both ranges have equal start and end.
func (r Range) IsEqual(o Range) bool {
	return r.Start.IsEqual(o.Start) && r.End.IsEqual(o.End)
}

// Root returns the root of the tree the range points into.
func (r Range) Root() tree.Node {
	return r.Start.Root()
}

// ContainsPosition reports whether p lies strictly inside the range.
func (r Range) ContainsPosition(p Position) bool {
	return p.IsAfter(r.Start) && p.IsBefore(r.End)
}

// ContainedElement returns the single element the range encloses and
// nothing else, or nil. Surrounding text edges count as nothing: the
// range from the end of one text node to the start of the next still
// encloses only the element between them.
func (r Range) ContainedElement() tree.Named {
	start := r.Start.normalized()
	end := r.End.normalized()

	node, ok := start.NodeAfter().(tree.Named)
	if !ok {
		return nil
	}
	if prev, pok := end.NodeBefore().(tree.Named); pok && prev == node {
		return node
	}
	return nil
}

// Walk returns a walker bounded by this range. Extra options are
// applied after the boundaries, so they can change the direction or
// the start position.
func (r Range) Walk(opts ...WalkerOption) *Walker {
	all := make([]WalkerOption, 0, len(opts)+1)
	all = append(all, WithBoundaries(r))
	all = append(all, opts...)
	return NewWalker(all...)
}

// String renders the range for debugging.
func (r Range) String() string {
	return fmt.Sprintf("%v..%v", r.Start, r.End)
}
