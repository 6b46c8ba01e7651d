// Package selection tracks a caret or selected span inside a document
// tree using an anchor/focus model.
//
// The anchor is the position where the selection started and the focus
// is the end that moves. A backward selection keeps its direction:
// Anchor and Focus report the original pair while Range always returns
// start before end.
//
// The writer package accepts a selection so structural edits can keep
// the caret attached to the content it sat in.
package selection
