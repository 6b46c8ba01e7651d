package codec

import (
	"strconv"
	"strings"

	"github.com/dshills/loom/internal/engine/position"
	"github.com/dshills/loom/internal/engine/tree"
)

var (
	textEscaper = strings.NewReplacer(
		"&", "&amp;", "<", "&lt;", ">", "&gt;",
		"[", "&#91;", "]", "&#93;", "{", "&#123;", "}", "&#125;",
	)
	attrEscaper = strings.NewReplacer("&", "&amp;", `"`, "&quot;")
)

// StringifyOption configures Stringify output.
type StringifyOption func(*stringifier)

// WithRange injects the range's position markers into the output:
// "{" and "}" inside text nodes, "[" and "]" between children.
func WithRange(r position.Range) StringifyOption {
	return func(s *stringifier) {
		s.rng = r
		s.hasRange = true
	}
}

// WithPriorities renders the priority attribute on every span. Without
// it only spans with a non-default priority carry one.
func WithPriorities() StringifyOption {
	return func(s *stringifier) { s.showPriority = true }
}

// WithRenderedWidgets includes each widget's render hook output as the
// widget element's raw content.
func WithRenderedWidgets() StringifyOption {
	return func(s *stringifier) { s.renderWidgets = true }
}

// Stringify renders a tree in the markup notation Parse reads. The
// output is deterministic: attributes, classes and styles appear in
// sorted order.
func Stringify(n tree.Node, opts ...StringifyOption) string {
	s := &stringifier{}
	for _, opt := range opts {
		opt(s)
	}
	s.node(n)
	return s.b.String()
}

type stringifier struct {
	b             strings.Builder
	rng           position.Range
	hasRange      bool
	showPriority  bool
	renderWidgets bool
}

func (s *stringifier) node(n tree.Node) {
	switch t := n.(type) {
	case *tree.Text:
		s.text(t)
	case *tree.Fragment:
		s.children(t)
	case *tree.AttributeSpan:
		s.openTag(t, false)
		s.children(t)
		s.closeTag(t)
	case *tree.Container:
		s.openTag(t, false)
		s.children(t)
		s.closeTag(t)
	case *tree.VoidLeaf:
		s.openTag(t, true)
	case *tree.OpaqueWidget:
		if out := s.widgetContent(t); out != "" {
			s.openTag(t, false)
			s.b.WriteString(out)
			s.closeTag(t)
			return
		}
		s.openTag(t, true)
	}
}

func (s *stringifier) widgetContent(w *tree.OpaqueWidget) string {
	if !s.renderWidgets {
		return ""
	}
	return w.Render()
}

func (s *stringifier) children(parent tree.Parent) {
	for i := 0; i <= parent.ChildCount(); i++ {
		s.elementMarkers(parent, i)
		if i < parent.ChildCount() {
			s.node(parent.Child(i))
		}
	}
}

// elementMarkers emits []-level markers sitting exactly at child index
// i of parent. Start comes first, so a collapsed range renders "[]".
func (s *stringifier) elementMarkers(parent tree.Parent, i int) {
	if !s.hasRange {
		return
	}
	if s.rng.Start.Parent == tree.Node(parent) && s.rng.Start.Offset == i {
		s.b.WriteByte('[')
	}
	if s.rng.End.Parent == tree.Node(parent) && s.rng.End.Offset == i {
		s.b.WriteByte(']')
	}
}

func (s *stringifier) text(t *tree.Text) {
	data := t.Data()
	type cut struct {
		off int
		ch  byte
	}
	var cuts []cut
	if s.hasRange && s.rng.Start.Parent == tree.Node(t) {
		cuts = append(cuts, cut{clampOffset(s.rng.Start.Offset, len(data)), '{'})
	}
	if s.hasRange && s.rng.End.Parent == tree.Node(t) {
		cuts = append(cuts, cut{clampOffset(s.rng.End.Offset, len(data)), '}'})
	}
	if len(cuts) == 2 && cuts[1].off < cuts[0].off {
		cuts[0], cuts[1] = cuts[1], cuts[0]
	}

	prev := 0
	for _, c := range cuts {
		s.b.WriteString(textEscaper.Replace(data[prev:c.off]))
		s.b.WriteByte(c.ch)
		prev = c.off
	}
	s.b.WriteString(textEscaper.Replace(data[prev:]))
}

func (s *stringifier) openTag(el tree.Attributed, selfClose bool) {
	s.b.WriteByte('<')
	s.b.WriteString(tagName(el))
	if span, ok := el.(*tree.AttributeSpan); ok {
		if s.showPriority || span.Priority() != tree.DefaultPriority {
			s.b.WriteString(` priority="`)
			s.b.WriteString(strconv.Itoa(span.Priority()))
			s.b.WriteByte('"')
		}
	}
	for _, key := range el.AttributeKeys() {
		v, _ := el.Attribute(key)
		s.attr(key, v)
	}
	if v, ok := el.Attribute("class"); ok {
		s.attr("class", v)
	}
	if v, ok := el.Attribute("style"); ok {
		s.attr("style", v)
	}
	if selfClose {
		s.b.WriteString("/>")
		return
	}
	s.b.WriteByte('>')
}

func (s *stringifier) closeTag(el tree.Attributed) {
	s.b.WriteString("</")
	s.b.WriteString(tagName(el))
	s.b.WriteByte('>')
}

func (s *stringifier) attr(key, val string) {
	s.b.WriteByte(' ')
	s.b.WriteString(key)
	s.b.WriteString(`="`)
	s.b.WriteString(attrEscaper.Replace(val))
	s.b.WriteByte('"')
}

func clampOffset(off, max int) int {
	if off < 0 {
		return 0
	}
	if off > max {
		return max
	}
	return off
}
