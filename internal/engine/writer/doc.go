// Package writer mutates the content tree while keeping it normalized.
//
// All structural edits go through a Writer: inserting and removing
// nodes, moving and renaming, wrapping ranges in formatting spans and
// unwrapping them again, and the boundary operations that split and
// fuse nodes at a position.
//
// Normalization:
//
// The writer maintains two invariants over the trees it touches. No
// two sibling text nodes are ever left adjacent, and no two similar
// attribute spans are ever left adjacent. Every operation that could
// create such a seam merges it before returning, so a tree built
// exclusively through a Writer is always in normal form.
//
// Breaking and Merging:
//
// BreakAt splits text and attribute spans upward from a position until
// it reaches the nearest container, returning the seam. MergeAt is its
// inverse: it fuses compatible neighbors at a position, descending as
// seams open up. Breaking then merging at the same point restores the
// original tree shape.
//
// Wrapping:
//
// Wrap applies formatting by enclosing nodes in clones of a template
// attribute span. Span nesting is deterministic: the span with the
// lower priority stays outside, and ties order by the span identity
// string. Wrapping content in formatting it already carries changes
// nothing, and a span with the same name and priority absorbs the
// wrapper's attributes instead of nesting. Unwrap reverses Wrap.
//
// Positions passed to a Writer must address attached, valid points;
// operations return an error when a range spans containers or a node
// kind cannot take part in an edit.
package writer
