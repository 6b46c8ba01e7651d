package writer

import (
	"fmt"
	"math"

	"github.com/dshills/loom/internal/engine/position"
	"github.com/dshills/loom/internal/engine/tree"
)

// sentinelName marks the placeholder span a collapsed wrap inserts to
// give the wrapper something to enclose. The top priority keeps every
// real span outside of it and the reserved name keeps it from merging.
const sentinelName = "$wrap-sentinel"

// Wrap encloses r in the formatting of template, which must be an
// attribute span. Spans nest deterministically: a lower priority stays
// outside a higher one, and at equal priority the lexicographically
// smaller identity stays outside. Wrapping with formatting already
// present is a no-op for the affected nodes, and compatible spans
// absorb the wrapper instead of nesting.
//
// A collapsed range wraps the point itself: the caret'd position moves
// inside a fresh empty span, ready to receive text. The returned range
// spans the wrapped content.
func (w *Writer) Wrap(r position.Range, template tree.Node) (position.Range, error) {
	span, ok := template.(*tree.AttributeSpan)
	if !ok {
		return position.Range{}, fmt.Errorf("wrap with %T: %w", template, ErrInvalidAttributeKind)
	}
	if _, err := validateRangeContainer(r); err != nil {
		return position.Range{}, err
	}

	if !r.IsCollapsed() {
		return w.wrapRange(r, span)
	}

	pos, err := w.wrapPosition(r.Start, span)
	if err != nil {
		return position.Range{}, err
	}
	// A caret sitting exactly at the wrap point follows it inside.
	if w.sel != nil {
		if caret, ok := w.sel.Position(); ok && caret.IsEqual(r.Start) {
			w.sel.SetTo(pos)
		}
	}
	return position.Collapsed(pos), nil
}

// Unwrap removes the formatting of template, which must be an
// attribute span, from r. Spans similar to the template dissolve into
// their children; a single span carrying the template's formatting as
// a subset of its own is stripped of just that portion. A collapsed
// range is a no-op.
func (w *Writer) Unwrap(r position.Range, template tree.Node) (position.Range, error) {
	span, ok := template.(*tree.AttributeSpan)
	if !ok {
		return position.Range{}, fmt.Errorf("unwrap with %T: %w", template, ErrInvalidAttributeKind)
	}
	if _, err := validateRangeContainer(r); err != nil {
		return position.Range{}, err
	}

	if r.IsCollapsed() {
		return r, nil
	}

	broken, err := w.breakRange(r, true)
	if err != nil {
		return position.Range{}, err
	}
	breakStart, breakEnd := broken.Start, broken.End

	// A range around a single non-similar span may still carry the
	// template's formatting as part of its own; strip just that part.
	if breakEnd.IsEqual(breakStart.ShiftedBy(1)) {
		if node, ok := breakStart.NodeAfter().(*tree.AttributeSpan); ok &&
			!span.IsSimilar(node) && strip(span, node) {
			start := w.MergeAt(breakStart)
			if !start.IsEqual(breakStart) {
				breakEnd.Offset--
			}
			end := w.MergeAt(breakEnd)
			return position.NewRange(start, end), nil
		}
	}

	parent := breakStart.Parent.(tree.Parent)
	out := w.unwrapChildren(parent, breakStart.Offset, breakEnd.Offset, span)

	start := w.MergeAt(out.Start)
	if !start.IsEqual(out.Start) {
		out.End.Offset--
	}
	end := w.MergeAt(out.End)
	return position.NewRange(start, end), nil
}

// wrapRange wraps a non-collapsed range.
func (w *Writer) wrapRange(r position.Range, wrapper *tree.AttributeSpan) (position.Range, error) {
	// The whole interior of a compatible span: fold the wrapper into it.
	if parentSpan, ok := r.Start.Parent.(*tree.AttributeSpan); ok &&
		r.Start.Parent == r.End.Parent &&
		r.Start.Offset == 0 && r.End.Offset == parentSpan.ChildCount() {
		if absorb(wrapper, parentSpan) {
			before := position.BeforeNode(parentSpan)
			after := position.AfterNode(parentSpan)
			start := w.MergeAt(before)
			if !start.IsEqual(before) {
				// The start merge fused the span leftward, consuming a slot.
				after.Offset--
			}
			end := w.MergeAt(after)
			return position.NewRange(start, end), nil
		}
	}

	broken, err := w.breakRange(r, true)
	if err != nil {
		return position.Range{}, err
	}
	breakStart, breakEnd := broken.Start, broken.End

	// A single span between the break points can absorb the wrapper
	// instead of nesting inside a clone of it.
	if breakEnd.IsEqual(breakStart.ShiftedBy(1)) {
		if node, ok := breakStart.NodeAfter().(*tree.AttributeSpan); ok && absorb(wrapper, node) {
			start := w.MergeAt(breakStart)
			if !start.IsEqual(breakStart) {
				breakEnd.Offset--
			}
			end := w.MergeAt(breakEnd)
			return position.NewRange(start, end), nil
		}
	}

	// Otherwise wrap child by child. Similar spans dissolve first so
	// the formatting never nests inside itself.
	parent := breakStart.Parent.(tree.Parent)
	unwrapped := w.unwrapChildren(parent, breakStart.Offset, breakEnd.Offset, wrapper)
	wrapped := w.wrapChildren(parent, unwrapped.Start.Offset, unwrapped.End.Offset, wrapper)

	start := w.MergeAt(wrapped.Start)
	if !start.IsEqual(wrapped.Start) {
		wrapped.End.Offset--
	}
	end := w.MergeAt(wrapped.End)
	return position.NewRange(start, end), nil
}

// wrapPosition wraps a single point and returns the position inside
// the wrapping span.
func (w *Writer) wrapPosition(pos position.Position, wrapper *tree.AttributeSpan) (position.Position, error) {
	// Wrapping inside a span the wrapper is similar to changes nothing.
	if wrapper.IsSimilar(pos.Parent) {
		return movePositionToTextNode(pos), nil
	}

	if _, ok := pos.Parent.(*tree.Text); ok {
		pos = breakTextNode(pos)
	}

	// Mark the point with a sentinel span, wrap the sentinel, then
	// swap the sentinel back out for the position.
	sentinel := tree.NewSpan(sentinelName)
	sentinel.SetPriority(math.MaxInt)

	parent, ok := pos.Parent.(tree.Parent)
	if !ok {
		return position.Position{}, fmt.Errorf("wrap at %v: %w", pos, ErrNoEnclosingContainer)
	}
	parent.InsertChildren(pos.Offset, sentinel)

	if _, err := w.wrapRange(position.NewRange(pos, pos.ShiftedBy(1)), wrapper); err != nil {
		return position.Position{}, err
	}

	result := position.BeforeNode(sentinel)
	sentinel.Parent().RemoveChildren(sentinel.Index(), 1)

	before, after := result.NodeBefore(), result.NodeAfter()
	if bt, ok := before.(*tree.Text); ok {
		if at, ok := after.(*tree.Text); ok {
			return mergeTextNodes(bt, at), nil
		}
	}
	return movePositionToTextNode(result), nil
}

// wrapChildren wraps the children of parent between two offsets in
// clones of wrapper, descending into spans that stay outside the
// wrapper. The work runs off an explicit list of pending segments, so
// nesting depth cannot exhaust the call stack. Returns the wrapped
// extent inside parent.
func (w *Writer) wrapChildren(parent tree.Parent, start, end int, wrapper *tree.AttributeSpan) position.Range {
	type segment struct {
		parent     tree.Parent
		start, end int
	}
	pending := []segment{{parent, start, end}}
	var out position.Range

	for first := true; len(pending) > 0; first = false {
		seg := pending[0]
		pending = pending[1:]

		endOffset := seg.end
		var wrapOffsets []int

		for i := seg.start; i < endOffset; i++ {
			child := seg.parent.Child(i)
			childSpan, isSpan := child.(*tree.AttributeSpan)

			wrapHere := false
			switch child.(type) {
			case *tree.Text, *tree.VoidLeaf, *tree.OpaqueWidget:
				wrapHere = true
			}
			if isSpan && shouldBeOutside(wrapper, childSpan) {
				wrapHere = true
			}

			switch {
			case wrapHere:
				clone := wrapper.Clone(false).(*tree.AttributeSpan)
				clone.AppendChildren(child)
				seg.parent.InsertChildren(i, clone)
				wrapOffsets = append(wrapOffsets, i)
			case isSpan:
				// The span stays outside the wrapper: wrap within it.
				pending = append(pending, segment{childSpan, 0, childSpan.ChildCount()})
			}
		}

		// Merge at each wrap seam. A merge removes one slot, shifting
		// the remaining seams and the segment end left.
		offsetChange := 0
		for _, off := range wrapOffsets {
			off -= offsetChange
			if off == seg.start {
				continue
			}
			at := position.At(seg.parent, off)
			if merged := w.MergeAt(at); !merged.IsEqual(at) {
				offsetChange++
				endOffset--
			}
		}

		if first {
			out = position.NewRange(position.At(seg.parent, seg.start), position.At(seg.parent, endOffset))
		}
	}
	return out
}

// unwrapChildren dissolves spans similar to the template between two
// offsets of parent, splicing their children up, and descends into
// other spans. Returns the unwrapped extent inside parent.
func (w *Writer) unwrapChildren(parent tree.Parent, start, end int, template *tree.AttributeSpan) position.Range {
	type segment struct {
		parent     tree.Parent
		start, end int
	}
	pending := []segment{{parent, start, end}}
	var out position.Range

	for first := true; len(pending) > 0; first = false {
		seg := pending[0]
		pending = pending[1:]

		endOffset := seg.end
		var unwrapOffsets []int

		i := seg.start
		for i < endOffset {
			child := seg.parent.Child(i)
			childSpan, isSpan := child.(*tree.AttributeSpan)

			if isSpan && childSpan.IsSimilar(template) {
				// Replace the span with its children.
				count := childSpan.ChildCount()
				moved := childSpan.Children()
				seg.parent.RemoveChildren(i, 1)
				seg.parent.InsertChildren(i, moved...)

				unwrapOffsets = append(unwrapOffsets, i, i+count)
				i += count
				endOffset += count - 1
				continue
			}
			if isSpan {
				pending = append(pending, segment{childSpan, 0, childSpan.ChildCount()})
			}
			i++
		}

		// Merge at the splice seams, skipping the segment bounds so
		// nothing fuses with content outside it.
		offsetChange := 0
		for _, off := range unwrapOffsets {
			off -= offsetChange
			if off == seg.start || off == endOffset {
				continue
			}
			at := position.At(seg.parent, off)
			if merged := w.MergeAt(at); !merged.IsEqual(at) {
				offsetChange++
				endOffset--
			}
		}

		if first {
			out = position.NewRange(position.At(seg.parent, seg.start), position.At(seg.parent, endOffset))
		}
	}
	return out
}

// shouldBeOutside reports whether span a nests outside span b: the
// lower priority stays outside, and at equal priority the smaller
// identity does.
func shouldBeOutside(a, b *tree.AttributeSpan) bool {
	if a.Priority() != b.Priority() {
		return a.Priority() < b.Priority()
	}
	return a.Identity() < b.Identity()
}

// absorb folds wrapper's formatting into target when compatible: the
// same name and priority, no conflicting attribute or style values.
// Missing attributes and styles copy over and class sets union.
// Reports whether the fold happened.
func absorb(wrapper, target *tree.AttributeSpan) bool {
	if wrapper.Name() != target.Name() || wrapper.Priority() != target.Priority() {
		return false
	}
	for _, key := range wrapper.AttributeKeys() {
		wv, _ := wrapper.Attribute(key)
		if tv, ok := target.Attribute(key); ok && tv != wv {
			return false
		}
	}
	for _, key := range wrapper.StyleNames() {
		wv, _ := wrapper.Style(key)
		if tv, ok := target.Style(key); ok && tv != wv {
			return false
		}
	}

	for _, key := range wrapper.AttributeKeys() {
		if target.HasAttribute(key) {
			continue
		}
		v, _ := wrapper.Attribute(key)
		target.SetAttribute(key, v)
	}
	for _, key := range wrapper.StyleNames() {
		if _, ok := target.Style(key); ok {
			continue
		}
		v, _ := wrapper.Style(key)
		target.SetStyle(key, v)
	}
	target.AddClass(wrapper.ClassNames()...)
	return true
}

// strip removes template's formatting from target when target carries
// all of it: every template attribute, class and style present with
// equal values. Reports whether the strip happened.
func strip(template, target *tree.AttributeSpan) bool {
	if template.Name() != target.Name() || template.Priority() != target.Priority() {
		return false
	}
	for _, key := range template.AttributeKeys() {
		tv, _ := template.Attribute(key)
		if v, ok := target.Attribute(key); !ok || v != tv {
			return false
		}
	}
	for _, name := range template.ClassNames() {
		if !target.HasClass(name) {
			return false
		}
	}
	for _, key := range template.StyleNames() {
		tv, _ := template.Style(key)
		if v, ok := target.Style(key); !ok || v != tv {
			return false
		}
	}

	for _, key := range template.AttributeKeys() {
		target.RemoveAttribute(key)
	}
	target.RemoveClass(template.ClassNames()...)
	for _, key := range template.StyleNames() {
		target.RemoveStyle(key)
	}
	return true
}
