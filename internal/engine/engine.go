package engine

import (
	"github.com/google/uuid"

	"github.com/dshills/loom/internal/engine/position"
	"github.com/dshills/loom/internal/engine/selection"
	"github.com/dshills/loom/internal/engine/tree"
	"github.com/dshills/loom/internal/engine/writer"
)

// Re-export commonly used types for convenience.
type (
	// Node is any member of the closed tree variant set.
	Node = tree.Node

	// Parent is implemented by nodes that can hold children.
	Parent = tree.Parent

	// Named is implemented by nodes that carry an element name.
	Named = tree.Named

	// Attributed is implemented by nodes that carry formatting data.
	Attributed = tree.Attributed

	// Text is a leaf run of character data.
	Text = tree.Text

	// AttributeSpan is a formatting element with a nesting priority.
	AttributeSpan = tree.AttributeSpan

	// Container is a block-level structural element.
	Container = tree.Container

	// VoidLeaf is a childless element.
	VoidLeaf = tree.VoidLeaf

	// OpaqueWidget is an embedded element the engine never descends into.
	OpaqueWidget = tree.OpaqueWidget

	// Fragment is a detached forest of sibling nodes.
	Fragment = tree.Fragment

	// Kind identifies the concrete variant of a Node.
	Kind = tree.Kind

	// ChangeType describes which aspect of a node is about to change.
	ChangeType = tree.ChangeType

	// ChangeFunc receives change notifications.
	ChangeFunc = tree.ChangeFunc

	// Position is a point in the tree.
	Position = position.Position

	// Range is a pair of positions ordered start before end.
	Range = position.Range

	// Walker iterates the points of a tree between two boundaries.
	Walker = position.Walker

	// Step is a single walker move.
	Step = position.Step

	// Selection tracks an anchor/focus pair of positions.
	Selection = selection.Selection

	// Writer applies structural mutations while keeping the tree
	// normalized.
	Writer = writer.Writer
)

// Re-export constants.
const (
	KindText          = tree.KindText
	KindAttributeSpan = tree.KindAttributeSpan
	KindContainer     = tree.KindContainer
	KindVoidLeaf      = tree.KindVoidLeaf
	KindOpaqueWidget  = tree.KindOpaqueWidget
	KindFragment      = tree.KindFragment

	DefaultPriority = tree.DefaultPriority

	ChangeChildren   = tree.ChangeChildren
	ChangeText       = tree.ChangeText
	ChangeAttributes = tree.ChangeAttributes

	Forward  = position.Forward
	Backward = position.Backward
)

// Document is the facade for one editing session: a root tree, the
// selection, and a writer bound to that selection. All mutations go
// through the document's writer so the normalization invariants hold
// after every operation.
//
// A Document is not safe for concurrent use. See the package
// documentation for the single-threaded contract.
type Document struct {
	id   uuid.UUID
	root tree.Node
	sel  *selection.Selection
	w    *writer.Writer

	rootName  string
	observers []tree.ChangeFunc
}

// New creates a document. Without options it owns an empty root
// container named DefaultRootName and a fresh inactive selection.
func New(opts ...Option) *Document {
	d := &Document{
		id:       uuid.New(),
		rootName: DefaultRootName,
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.root == nil {
		d.root = tree.NewContainer(d.rootName)
	}
	if d.sel == nil {
		d.sel = selection.New()
	}
	for _, fn := range d.observers {
		d.root.Observe(fn)
	}
	d.w = writer.New(writer.WithSelection(d.sel))
	return d
}

// ID returns the document's unique identifier.
func (d *Document) ID() uuid.UUID {
	return d.id
}

// Root returns the document root.
func (d *Document) Root() Node {
	return d.root
}

// Selection returns the document selection.
func (d *Document) Selection() *Selection {
	return d.sel
}

// Writer returns the writer bound to the document selection.
func (d *Document) Writer() *Writer {
	return d.w
}

// Observe registers a change observer on the document root. Observers
// fire just before each mutation anywhere in the tree and see the
// prior state.
func (d *Document) Observe(fn ChangeFunc) {
	d.root.Observe(fn)
}

// ============================================================================
// Structural Operations
// ============================================================================

// Insert places nodes at a position. See writer.Writer.Insert.
func (d *Document) Insert(pos Position, nodes ...Node) (Range, error) {
	return d.w.Insert(pos, nodes...)
}

// Remove extracts a range into a fragment. See writer.Writer.Remove.
func (d *Document) Remove(r Range) (*Fragment, Position, error) {
	return d.w.Remove(r)
}

// Move relocates a range to a target position. See writer.Writer.Move.
func (d *Document) Move(src Range, target Position) (Range, error) {
	return d.w.Move(src, target)
}

// Rename replaces a container with an identically formatted one under
// a new name. See writer.Writer.Rename.
func (d *Document) Rename(el *Container, newName string) (*Container, error) {
	return d.w.Rename(el, newName)
}

// Clear removes nodes matching the template from a range. See
// writer.Writer.Clear.
func (d *Document) Clear(r Range, template Named) error {
	return d.w.Clear(r, template)
}

// ============================================================================
// Formatting Operations
// ============================================================================

// Wrap applies the template span's formatting over a range. See
// writer.Writer.Wrap.
func (d *Document) Wrap(r Range, template Node) (Range, error) {
	return d.w.Wrap(r, template)
}

// Unwrap removes the template span's formatting from a range. See
// writer.Writer.Unwrap.
func (d *Document) Unwrap(r Range, template Node) (Range, error) {
	return d.w.Unwrap(r, template)
}

// ============================================================================
// Boundary Operations
// ============================================================================

// BreakAt splits spans so the position reaches container level. See
// writer.Writer.BreakAt.
func (d *Document) BreakAt(pos Position) (Position, error) {
	return d.w.BreakAt(pos)
}

// BreakRange breaks both ends of a range. See writer.Writer.BreakRange.
func (d *Document) BreakRange(r Range) (Range, error) {
	return d.w.BreakRange(r)
}

// MergeAt joins compatible siblings meeting at a position. See
// writer.Writer.MergeAt.
func (d *Document) MergeAt(pos Position) Position {
	return d.w.MergeAt(pos)
}

// BreakContainer splits a container element in two. See
// writer.Writer.BreakContainer.
func (d *Document) BreakContainer(pos Position) (Position, error) {
	return d.w.BreakContainer(pos)
}

// MergeContainers joins the containers on both sides of a position.
// See writer.Writer.MergeContainers.
func (d *Document) MergeContainers(pos Position) (Position, error) {
	return d.w.MergeContainers(pos)
}
