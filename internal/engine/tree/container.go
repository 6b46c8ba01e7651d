package tree

// Container is a block-level structural element. Containers bound the
// reach of boundary breaking and merging: a break propagates up to the
// nearest container and stops there.
type Container struct {
	baseNode
	elementData
	children childList
}

// NewContainer creates a detached container element.
func NewContainer(name string, children ...Node) *Container {
	c := &Container{}
	c.self = c
	c.elementData.init(c, name)
	c.children.owner = c
	c.AppendChildren(children...)
	return c
}

// Kind reports KindContainer.
func (c *Container) Kind() Kind {
	return KindContainer
}

// IsSimilar reports whether other is a container with the same name,
// attributes, classes and styles.
func (c *Container) IsSimilar(other Node) bool {
	o, ok := other.(*Container)
	return ok && c.sameShape(&o.elementData)
}

// Clone returns a detached copy of the container. With deep, children
// are cloned as well.
func (c *Container) Clone(deep bool) Node {
	dup := NewContainer(c.name)
	c.elementData.cloneInto(&dup.elementData)
	if deep {
		for _, child := range c.children.nodes {
			dup.AppendChildren(child.Clone(true))
		}
	}
	return dup
}

// CloneRenamed returns a detached childless copy of the container under
// a different element name, keeping attributes, classes, styles and
// custom properties.
func (c *Container) CloneRenamed(name string) *Container {
	dup := c.Clone(false).(*Container)
	dup.name = name
	return dup
}

// ChildCount returns the number of children.
func (c *Container) ChildCount() int {
	return c.children.count()
}

// Child returns the child at index i, or nil when out of range.
func (c *Container) Child(i int) Node {
	return c.children.at(i)
}

// Children returns a copy of the child slice.
func (c *Container) Children() []Node {
	return c.children.slice()
}

// InsertChildren inserts nodes before index and returns how many nodes
// were inserted.
func (c *Container) InsertChildren(index int, nodes ...Node) int {
	return c.children.insert(index, nodes)
}

// AppendChildren appends nodes after the last child.
func (c *Container) AppendChildren(nodes ...Node) int {
	return c.children.insert(c.children.count(), nodes)
}

// RemoveChildren detaches count children starting at index and returns
// them.
func (c *Container) RemoveChildren(index, count int) []Node {
	return c.children.remove(index, count)
}
