package tree

// Fragment is a detached root. It holds nodes that are outside any
// document tree, such as the result of a removal, and can never itself
// become a child node.
type Fragment struct {
	baseNode
	children childList
}

// NewFragment creates a fragment holding the given nodes.
func NewFragment(children ...Node) *Fragment {
	f := &Fragment{}
	f.self = f
	f.children.owner = f
	f.AppendChildren(children...)
	return f
}

// Kind reports KindFragment.
func (f *Fragment) Kind() Kind {
	return KindFragment
}

// IsSimilar reports whether other is this very fragment. Fragments have
// no shape of their own, so only pointer identity counts.
func (f *Fragment) IsSimilar(other Node) bool {
	o, ok := other.(*Fragment)
	return ok && o == f
}

// Clone returns a new fragment. With deep, children are cloned as well.
func (f *Fragment) Clone(deep bool) Node {
	dup := NewFragment()
	if deep {
		for _, c := range f.children.nodes {
			dup.AppendChildren(c.Clone(true))
		}
	}
	return dup
}

// ChildCount returns the number of children.
func (f *Fragment) ChildCount() int {
	return f.children.count()
}

// Child returns the child at index i, or nil when out of range.
func (f *Fragment) Child(i int) Node {
	return f.children.at(i)
}

// Children returns a copy of the child slice.
func (f *Fragment) Children() []Node {
	return f.children.slice()
}

// InsertChildren inserts nodes before index and returns how many nodes
// were inserted.
func (f *Fragment) InsertChildren(index int, nodes ...Node) int {
	return f.children.insert(index, nodes)
}

// AppendChildren appends nodes after the last child.
func (f *Fragment) AppendChildren(nodes ...Node) int {
	return f.children.insert(f.children.count(), nodes)
}

// RemoveChildren detaches count children starting at index and returns
// them.
func (f *Fragment) RemoveChildren(index, count int) []Node {
	return f.children.remove(index, count)
}
