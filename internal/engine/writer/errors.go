package writer

import "errors"

// Errors returned by writer operations.
var (
	// ErrInvalidRangeContainer indicates the range ends sit in different
	// enclosing containers.
	ErrInvalidRangeContainer = errors.New("range ends are not in the same container")

	// ErrNoEnclosingContainer indicates a position with no container or
	// fragment among its ancestors.
	ErrNoEnclosingContainer = errors.New("position has no enclosing container")

	// ErrCannotBreakLeaf indicates a break inside a void leaf or widget.
	ErrCannotBreakLeaf = errors.New("cannot break inside a leaf element")

	// ErrInvalidNodeKind indicates a node kind that cannot be inserted.
	ErrInvalidNodeKind = errors.New("node kind cannot be inserted")

	// ErrNotAContainer indicates a container operation on another kind.
	ErrNotAContainer = errors.New("element is not a container")

	// ErrRootContainer indicates a break of a root container.
	ErrRootContainer = errors.New("cannot break the root container")

	// ErrInvalidAttributeKind indicates a wrap or unwrap template that
	// is not an attribute span.
	ErrInvalidAttributeKind = errors.New("template is not an attribute span")

	// ErrIncompatibleMergeTarget indicates a container merge position
	// that is not between two containers.
	ErrIncompatibleMergeTarget = errors.New("merge position is not between two containers")
)
