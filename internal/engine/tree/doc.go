// Package tree defines the node variants of a formatted content tree.
//
// The variant set is closed:
//
//   - Text: a leaf run of character data, addressed by byte offsets
//   - AttributeSpan: a formatting element with a nesting priority
//   - Container: a block-level structural element
//   - VoidLeaf: a childless element such as an image or line break
//   - OpaqueWidget: an embedded object with an opaque interior
//   - Fragment: a detached root for nodes outside any document
//
// Only Container, AttributeSpan and Fragment can hold children; they
// implement the Parent interface. Child mutations keep parent pointers
// consistent: inserting an attached node detaches it from its previous
// parent first.
//
// Similarity and Identity:
//
// IsSimilar drives normalization. Two text nodes are similar when their
// data is equal. Two attribute spans are similar when their identities
// are equal; the identity is a canonical string over the name,
// priority, attributes, classes and styles, cached on the span and
// invalidated by mutation. Containers, void leaves and widgets are
// similar when name, attributes, classes and styles all match.
// Fragments are similar only to themselves.
//
// Attribute Routing:
//
// Setting the "class" or "style" attribute key routes the value into
// the class set or style map instead of the plain attribute map, so
// classes and styles always compare structurally. Class names and
// style keys render in sorted order.
//
// Change Notification:
//
// Observe registers a callback on any node; mutations anywhere in that
// node's subtree notify it. Notifications fire just before the
// mutation is applied.
//
// The package only stores nodes. The mutation rules that keep a tree
// normalized live in the writer package.
package tree
