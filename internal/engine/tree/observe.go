package tree

// ChangeType describes which aspect of a node is about to change.
type ChangeType int

const (
	// ChangeChildren signals an insertion or removal of children.
	ChangeChildren ChangeType = iota

	// ChangeText signals a mutation of a text node's character data.
	ChangeText

	// ChangeAttributes signals a mutation of an element's attributes,
	// classes, styles or priority.
	ChangeAttributes
)

// String returns a human-readable name for the change type.
func (c ChangeType) String() string {
	switch c {
	case ChangeChildren:
		return "children"
	case ChangeText:
		return "text"
	case ChangeAttributes:
		return "attributes"
	default:
		return "unknown"
	}
}

// ChangeFunc receives change notifications. Notifications fire just
// before the mutation is applied, so callbacks observe the prior state.
type ChangeFunc func(change ChangeType, node Node)

// fireChange notifies the observers registered on node and on every
// ancestor up to the root.
func fireChange(change ChangeType, node Node) {
	for cur := node; cur != nil; {
		for _, fn := range cur.base().observers {
			fn(change, node)
		}
		p := cur.Parent()
		if p == nil {
			return
		}
		cur = p
	}
}
