// Package position provides points, ranges and tree walking for
// formatted content trees.
//
// The position package handles:
//
//   - Addressing slots between nodes with the Position type
//   - Pairing positions into spans of content with the Range type
//   - Ordered traversal of element edges and text runs with Walker
//
// Addressing Model:
//
// A Position is a parent node plus an offset. For element parents the
// offset counts children; for text parents it counts bytes. Positions
// are plain values: they do not follow the tree when it mutates, so
// code that edits the tree recomputes the positions it hands back.
//
// Two representations exist for a point at a text node's edge: the
// inner one, such as At(text, 0), and the outer one, BeforeNode(text).
// CompareWith orders them as different points, with the outer position
// first. SamePoint treats them as the same point. Callers that care
// about boundary identity pick the comparison they need.
//
// Walking:
//
// A Walker yields element-start steps, element-end steps and text
// runs between two boundaries. Walking backward visits an element
// after its interior, which lets callers remove visited content
// without invalidating the rest of the walk.
package position
