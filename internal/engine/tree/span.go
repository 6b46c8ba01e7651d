package tree

import (
	"strconv"
	"strings"
)

// DefaultPriority is the nesting priority assigned to new attribute
// spans. Lower values nest outside higher ones.
const DefaultPriority = 10

// AttributeSpan is a formatting element. Spans nest deterministically
// by priority and identity, merge with identity-equal siblings and are
// removed when they become empty.
type AttributeSpan struct {
	baseNode
	elementData
	children childList
	priority int
	identity string
	dirty    bool
}

// NewSpan creates a detached attribute span with DefaultPriority.
func NewSpan(name string, children ...Node) *AttributeSpan {
	s := &AttributeSpan{priority: DefaultPriority, dirty: true}
	s.self = s
	s.elementData.init(s, name)
	s.children.owner = s
	s.AppendChildren(children...)
	return s
}

// Kind reports KindAttributeSpan.
func (s *AttributeSpan) Kind() Kind {
	return KindAttributeSpan
}

// Priority returns the nesting priority.
func (s *AttributeSpan) Priority() int {
	return s.priority
}

// SetPriority changes the nesting priority.
func (s *AttributeSpan) SetPriority(p int) {
	if p == s.priority {
		return
	}
	s.changed()
	s.priority = p
}

// Identity returns the canonical identity string: the name, priority,
// attributes, classes and styles rendered in a fixed order. Two spans
// with equal identities are interchangeable for merging and nesting.
// The string is cached and rebuilt only after a mutation.
func (s *AttributeSpan) Identity() string {
	if s.dirty {
		s.identity = s.buildIdentity()
		s.dirty = false
	}
	return s.identity
}

func (s *AttributeSpan) invalidateIdentity() {
	s.dirty = true
}

func (s *AttributeSpan) buildIdentity() string {
	var b strings.Builder
	b.WriteString(s.name)
	b.WriteByte(';')
	b.WriteString(strconv.Itoa(s.priority))
	for _, k := range s.AttributeKeys() {
		b.WriteByte(' ')
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(strconv.Quote(s.attrs[k]))
	}
	if len(s.classes) > 0 {
		b.WriteString(` class="`)
		b.WriteString(strings.Join(s.ClassNames(), " "))
		b.WriteByte('"')
	}
	if len(s.styles) > 0 {
		b.WriteString(` style="`)
		b.WriteString(renderStyles(s.styles))
		b.WriteByte('"')
	}
	return b.String()
}

// IsSimilar reports whether other is an attribute span with an equal
// identity.
func (s *AttributeSpan) IsSimilar(other Node) bool {
	o, ok := other.(*AttributeSpan)
	if !ok {
		return false
	}
	return s == o || s.Identity() == o.Identity()
}

// Clone returns a detached copy of the span, including its priority and
// custom properties. With deep, children are cloned as well.
func (s *AttributeSpan) Clone(deep bool) Node {
	dup := NewSpan(s.name)
	dup.priority = s.priority
	s.elementData.cloneInto(&dup.elementData)
	if deep {
		for _, c := range s.children.nodes {
			dup.AppendChildren(c.Clone(true))
		}
	}
	return dup
}

// ChildCount returns the number of children.
func (s *AttributeSpan) ChildCount() int {
	return s.children.count()
}

// Child returns the child at index i, or nil when out of range.
func (s *AttributeSpan) Child(i int) Node {
	return s.children.at(i)
}

// Children returns a copy of the child slice.
func (s *AttributeSpan) Children() []Node {
	return s.children.slice()
}

// InsertChildren inserts nodes before index and returns how many nodes
// were inserted.
func (s *AttributeSpan) InsertChildren(index int, nodes ...Node) int {
	return s.children.insert(index, nodes)
}

// AppendChildren appends nodes after the last child.
func (s *AttributeSpan) AppendChildren(nodes ...Node) int {
	return s.children.insert(s.children.count(), nodes)
}

// RemoveChildren detaches count children starting at index and returns
// them.
func (s *AttributeSpan) RemoveChildren(index, count int) []Node {
	return s.children.remove(index, count)
}
