package engine

import "github.com/dshills/loom/internal/engine/writer"

// Errors returned by document operations, re-exported from the writer
// package so callers can match them without importing it.
var (
	// ErrInvalidRangeContainer indicates a range whose ends sit in
	// different containers.
	ErrInvalidRangeContainer = writer.ErrInvalidRangeContainer

	// ErrNoEnclosingContainer indicates a position with no container
	// ancestor.
	ErrNoEnclosingContainer = writer.ErrNoEnclosingContainer

	// ErrCannotBreakLeaf indicates a break inside a void leaf or widget.
	ErrCannotBreakLeaf = writer.ErrCannotBreakLeaf

	// ErrInvalidNodeKind indicates a node that cannot be inserted.
	ErrInvalidNodeKind = writer.ErrInvalidNodeKind

	// ErrNotAContainer indicates a container operation aimed at a
	// non-container.
	ErrNotAContainer = writer.ErrNotAContainer

	// ErrRootContainer indicates a split of a parentless container.
	ErrRootContainer = writer.ErrRootContainer

	// ErrInvalidAttributeKind indicates a wrap or unwrap template that
	// is not an attribute span.
	ErrInvalidAttributeKind = writer.ErrInvalidAttributeKind

	// ErrIncompatibleMergeTarget indicates a container merge with a
	// missing or non-container neighbor.
	ErrIncompatibleMergeTarget = writer.ErrIncompatibleMergeTarget
)
