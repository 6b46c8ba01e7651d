package tree

// Node is the interface shared by every tree variant. The variant set
// is closed: only the types in this package implement Node.
type Node interface {
	// Kind reports the concrete variant of the node.
	Kind() Kind

	// Parent returns the node holding this node, or nil when detached.
	Parent() Parent

	// Index returns the node's position among its parent's children,
	// or -1 when the node is detached.
	Index() int

	// Root returns the topmost ancestor, or the node itself when detached.
	Root() Node

	// Path returns the child indexes leading from the root to this node.
	Path() []int

	// PreviousSibling returns the sibling before this node, or nil.
	PreviousSibling() Node

	// NextSibling returns the sibling after this node, or nil.
	NextSibling() Node

	// Ancestors returns the chain of parents ordered from the closest
	// ancestor to the root. With includeSelf the node itself comes first.
	Ancestors(includeSelf bool) []Node

	// IsSimilar reports whether the other node would be treated as
	// interchangeable with this one by the normalization rules.
	IsSimilar(other Node) bool

	// Clone returns a detached copy of the node. With deep, the copy
	// includes cloned children.
	Clone(deep bool) Node

	// Observe registers fn for change notifications in the subtree
	// rooted at this node.
	Observe(fn ChangeFunc)

	// base anchors the interface to this package.
	base() *baseNode
}

// Parent is implemented by the variants that can hold children:
// Container, AttributeSpan and Fragment. Child mutations keep parent
// pointers consistent, detaching nodes from a previous parent first.
type Parent interface {
	Node

	// ChildCount returns the number of children.
	ChildCount() int

	// Child returns the child at index i, or nil when out of range.
	Child(i int) Node

	// Children returns a copy of the child slice.
	Children() []Node

	// InsertChildren inserts nodes before index and returns how many
	// nodes were inserted.
	InsertChildren(index int, nodes ...Node) int

	// AppendChildren appends nodes after the last child and returns how
	// many nodes were inserted.
	AppendChildren(nodes ...Node) int

	// RemoveChildren detaches count children starting at index and
	// returns them.
	RemoveChildren(index, count int) []Node
}

// Named is implemented by the variants that carry an element name.
type Named interface {
	Node
	Name() string
}

// Attributed is implemented by the variants that carry attributes,
// classes and styles: Container, AttributeSpan, VoidLeaf and
// OpaqueWidget.
type Attributed interface {
	Named

	SetAttribute(key, value string)
	Attribute(key string) (string, bool)
	HasAttribute(key string) bool
	RemoveAttribute(key string) bool
	AttributeKeys() []string

	AddClass(names ...string)
	RemoveClass(names ...string)
	HasClass(name string) bool
	ClassNames() []string

	SetStyle(key, value string)
	Style(key string) (string, bool)
	RemoveStyle(key string) bool
	StyleNames() []string

	SetCustomProperty(key string, value any)
	CustomProperty(key string) (any, bool)
	RemoveCustomProperty(key string) bool
}

// baseNode carries the parent link and navigation shared by all
// variants. Each concrete type stores itself in self so the shared
// methods can hand out the full node.
type baseNode struct {
	self      Node
	parent    Parent
	observers []ChangeFunc
}

func (b *baseNode) base() *baseNode { return b }

// Parent returns the node holding this node, or nil when detached.
func (b *baseNode) Parent() Parent { return b.parent }

// Index returns the node's position among its parent's children, or -1
// when the node is detached.
func (b *baseNode) Index() int {
	if b.parent == nil {
		return -1
	}
	for i := 0; i < b.parent.ChildCount(); i++ {
		if b.parent.Child(i) == b.self {
			return i
		}
	}
	return -1
}

// Root returns the topmost ancestor, or the node itself when detached.
func (b *baseNode) Root() Node {
	cur := b.self
	for cur.Parent() != nil {
		cur = cur.Parent()
	}
	return cur
}

// Path returns the child indexes leading from the root to this node.
// The root itself has an empty path.
func (b *baseNode) Path() []int {
	var path []int
	for cur := b.self; cur.Parent() != nil; cur = cur.Parent() {
		path = append(path, cur.Index())
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// PreviousSibling returns the sibling before this node, or nil.
func (b *baseNode) PreviousSibling() Node {
	i := b.Index()
	if i <= 0 {
		return nil
	}
	return b.parent.Child(i - 1)
}

// NextSibling returns the sibling after this node, or nil.
func (b *baseNode) NextSibling() Node {
	i := b.Index()
	if i < 0 {
		return nil
	}
	return b.parent.Child(i + 1)
}

// Ancestors returns the chain of parents ordered from the closest
// ancestor to the root. With includeSelf the node itself comes first.
func (b *baseNode) Ancestors(includeSelf bool) []Node {
	var out []Node
	if includeSelf {
		out = append(out, b.self)
	}
	for p := b.parent; p != nil; p = p.Parent() {
		out = append(out, p)
	}
	return out
}

// Observe registers fn for change notifications in the subtree rooted
// at this node.
func (b *baseNode) Observe(fn ChangeFunc) {
	b.observers = append(b.observers, fn)
}

// detach removes the node from its parent, if any.
func (b *baseNode) detach() {
	if b.parent != nil {
		b.parent.RemoveChildren(b.Index(), 1)
	}
}
