// Package engine provides the structural mutation engine for Loom.
//
// The engine package serves as the facade, combining the content tree,
// position geometry, the selection, and the normalizing writer into a
// single Document session type.
//
// # Architecture
//
// The engine is built on several sub-packages:
//
//   - tree: the closed set of node variants (text, attribute spans,
//     containers, void leaves, opaque widgets, fragments) with
//     formatting data and change observers
//   - position: parent/offset positions, ranges, and the tree walker
//   - selection: the anchor/focus pair the writer keeps in step
//   - writer: break/merge, insert/remove/move/rename/clear, and
//     wrap/unwrap, each restoring the normalization invariants
//   - codec: the markup and JSON forms used by fixtures and the CLI
//
// # Concurrency
//
// A Document is single-threaded by contract. Nothing in the engine
// locks, spawns goroutines, or suspends mid-operation; every operation
// runs to completion on the caller's goroutine and leaves the tree
// normalized. Callers that share a document across goroutines must
// serialize access themselves. Positions are snapshots: a mutation
// invalidates previously obtained positions, so use the positions an
// operation returns rather than ones captured before it.
//
// # Basic Usage
//
// Create a document and edit through its writer:
//
//	d := engine.New(engine.WithRootName("p"))
//	root := d.Root().(*engine.Container)
//
//	// Insert text, then bold part of it.
//	inserted, _ := d.Insert(position.At(root, 0), tree.NewText("hello world"))
//	bolded, _ := d.Wrap(inserted, tree.NewSpan("b"))
//
//	// Remove the formatting again.
//	d.Unwrap(bolded, tree.NewSpan("b"))
//
// # Observers
//
// Observers registered on the document fire just before each mutation
// anywhere in the tree, with the change type and the node about to
// change:
//
//	d := engine.New(engine.WithObserver(func(c engine.ChangeType, n engine.Node) {
//	    log.Printf("change %s at %T", c, n)
//	}))
//
// # Errors
//
// Operations validate before mutating and return sentinel errors
// (ErrInvalidRangeContainer, ErrNoEnclosingContainer, ...) that match
// with errors.Is. A failed operation leaves the tree untouched.
package engine
