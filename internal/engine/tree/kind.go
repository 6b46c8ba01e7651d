package tree

// Kind identifies the concrete variant of a Node. The variant set is
// closed: every node in a document is exactly one of these kinds.
type Kind int

const (
	// KindText is a leaf run of character data.
	KindText Kind = iota

	// KindAttributeSpan is a formatting element with a nesting priority.
	KindAttributeSpan

	// KindContainer is a block-level structural element.
	KindContainer

	// KindVoidLeaf is a childless element such as an image or line break.
	KindVoidLeaf

	// KindOpaqueWidget is an embedded object whose interior is not
	// part of the document tree.
	KindOpaqueWidget

	// KindFragment is a detached root holding nodes outside any document.
	KindFragment
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindAttributeSpan:
		return "attribute"
	case KindContainer:
		return "container"
	case KindVoidLeaf:
		return "void"
	case KindOpaqueWidget:
		return "widget"
	case KindFragment:
		return "fragment"
	default:
		return "unknown"
	}
}
