package codec

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dshills/loom/internal/engine/position"
	"github.com/dshills/loom/internal/engine/tree"
)

// Parse errors
var (
	ErrMarkupSyntax = errors.New("malformed markup")
	ErrUnknownName  = errors.New("unknown element name")
	ErrRangeMarker  = errors.New("misplaced range marker")
)

// Parsed is the result of parsing markup: the tree plus the range the
// position markers in the input described, when any were present.
type Parsed struct {
	Root     tree.Node
	Range    position.Range
	HasRange bool
}

// Parse builds a tree from markup notation.
//
// Elements use a "kind:name" tag form (<container:p>, <attribute:b>,
// <void:img/>, <widget:chart/>); bare names resolve through the default
// registry, so <p>, <b> and <img/> work directly. Attribute values use
// double quotes; a priority="n" attribute on a span sets its priority.
// Childless kinds may self-close.
//
// Position markers describe a range: "[" and "]" mark element-level
// positions between children, "{" and "}" mark byte positions inside
// the surrounding text run. Literal markup characters in text are
// written as entities (&lt; &gt; &amp; &#91; &#93; &#123; &#125;).
//
// A single top-level node becomes the root; otherwise the root is a
// fragment holding all top-level nodes.
func Parse(input string) (*Parsed, error) {
	p := &parser{src: input}
	frag := tree.NewFragment()
	if err := p.parseContent(frag); err != nil {
		return nil, err
	}
	if p.pos < len(p.src) {
		return nil, p.errf("unexpected close tag")
	}
	if p.hasStart != p.hasEnd {
		return nil, fmt.Errorf("%w: unpaired marker", ErrRangeMarker)
	}
	if p.hasStart && p.end.IsBefore(p.start) {
		return nil, fmt.Errorf("%w: range end before start", ErrRangeMarker)
	}

	out := &Parsed{Root: frag, HasRange: p.hasStart}
	if p.hasStart {
		out.Range = position.NewRange(p.start, p.end)
	}
	// Unwrap a single top-level node, unless a marker pinned the
	// fragment itself as a range parent.
	if frag.ChildCount() == 1 && p.start.Parent != tree.Node(frag) && p.end.Parent != tree.Node(frag) {
		out.Root = frag.RemoveChildren(0, 1)[0]
	}
	return out, nil
}

// MustParse parses markup and panics on error. Use only for
// known-valid markup in fixtures and initialization code.
func MustParse(input string) *Parsed {
	out, err := Parse(input)
	if err != nil {
		panic("invalid markup: " + input + ": " + err.Error())
	}
	return out
}

type parser struct {
	src string
	pos int

	start, end       position.Position
	hasStart, hasEnd bool
}

func (p *parser) errf(format string, args ...any) error {
	detail := fmt.Sprintf(format, args...)
	return fmt.Errorf("%w: %s at offset %d", ErrMarkupSyntax, detail, p.pos)
}

// parseContent parses children into parent until a close tag or the
// end of input.
func (p *parser) parseContent(parent tree.Parent) error {
	for p.pos < len(p.src) {
		switch c := p.src[p.pos]; {
		case c == '<' && strings.HasPrefix(p.src[p.pos:], "</"):
			return nil
		case c == '<':
			if err := p.parseElement(parent); err != nil {
				return err
			}
		case c == '[':
			p.pos++
			if err := p.mark(position.At(parent, parent.ChildCount()), true); err != nil {
				return err
			}
		case c == ']':
			p.pos++
			if err := p.mark(position.At(parent, parent.ChildCount()), false); err != nil {
				return err
			}
		default:
			if err := p.parseText(parent); err != nil {
				return err
			}
		}
	}
	return nil
}

// mark records a range delimiter. "[" and "{" open the range, "]" and
// "}" close it.
func (p *parser) mark(pos position.Position, isStart bool) error {
	if isStart {
		if p.hasStart {
			return fmt.Errorf("%w: second range start at offset %d", ErrRangeMarker, p.pos)
		}
		p.start, p.hasStart = pos, true
		return nil
	}
	if p.hasEnd {
		return fmt.Errorf("%w: second range end at offset %d", ErrRangeMarker, p.pos)
	}
	p.end, p.hasEnd = pos, true
	return nil
}

// parseText accumulates one text run, resolving {} markers against the
// node it creates.
func (p *parser) parseText(parent tree.Parent) error {
	type pending struct {
		off     int
		isStart bool
	}
	var b strings.Builder
	var marks []pending

loop:
	for p.pos < len(p.src) {
		switch c := p.src[p.pos]; c {
		case '<', '[', ']':
			break loop
		case '{':
			marks = append(marks, pending{b.Len(), true})
			p.pos++
		case '}':
			marks = append(marks, pending{b.Len(), false})
			p.pos++
		case '&':
			decoded, err := p.entity()
			if err != nil {
				return err
			}
			b.WriteString(decoded)
		default:
			b.WriteByte(c)
			p.pos++
		}
	}

	if b.Len() == 0 {
		if len(marks) > 0 {
			return fmt.Errorf("%w: text marker without text at offset %d", ErrRangeMarker, p.pos)
		}
		return nil
	}
	if _, ok := parent.Child(parent.ChildCount() - 1).(*tree.Text); ok {
		return p.errf("adjacent text runs")
	}
	text := tree.NewText(b.String())
	parent.AppendChildren(text)
	for _, m := range marks {
		if err := p.mark(position.At(text, m.off), m.isStart); err != nil {
			return err
		}
	}
	return nil
}

// entity decodes one &...; escape.
func (p *parser) entity() (string, error) {
	rest := p.src[p.pos:]
	end := strings.IndexByte(rest, ';')
	if end < 0 || end > 6 {
		return "", p.errf("bad entity")
	}
	var out string
	switch ent := rest[:end+1]; ent {
	case "&lt;":
		out = "<"
	case "&gt;":
		out = ">"
	case "&amp;":
		out = "&"
	case "&quot;":
		out = `"`
	case "&#91;":
		out = "["
	case "&#93;":
		out = "]"
	case "&#123;":
		out = "{"
	case "&#125;":
		out = "}"
	default:
		return "", p.errf("bad entity %q", ent)
	}
	p.pos += end + 1
	return out, nil
}

// parseElement parses one element, its content and its close tag, and
// appends it to parent.
func (p *parser) parseElement(parent tree.Parent) error {
	p.pos++ // consume '<'
	tag := p.readName()
	if tag == "" {
		return p.errf("element name expected")
	}
	kind, name, err := resolveName(tag)
	if err != nil {
		return fmt.Errorf("%w at offset %d", err, p.pos)
	}

	type attr struct{ key, val string }
	var attrs []attr
	selfClosed := false
	for {
		p.skipSpace()
		if p.pos >= len(p.src) {
			return p.errf("unterminated tag <%s>", tag)
		}
		if p.src[p.pos] == '>' {
			p.pos++
			break
		}
		if strings.HasPrefix(p.src[p.pos:], "/>") {
			p.pos += 2
			selfClosed = true
			break
		}
		key := p.readName()
		if key == "" {
			return p.errf("attribute name expected in <%s>", tag)
		}
		if !p.eat('=') || !p.eat('"') {
			return p.errf("attribute %s needs a double-quoted value", key)
		}
		val, err := p.readAttrValue()
		if err != nil {
			return err
		}
		attrs = append(attrs, attr{key, val})
	}

	var el tree.Node
	var inner tree.Parent
	switch kind {
	case tree.KindContainer:
		c := tree.NewContainer(name)
		el, inner = c, c
	case tree.KindAttributeSpan:
		s := tree.NewSpan(name)
		el, inner = s, s
	case tree.KindVoidLeaf:
		el = tree.NewVoidLeaf(name)
	default:
		el = tree.NewWidget(name)
	}
	for _, a := range attrs {
		if a.key == "priority" && kind == tree.KindAttributeSpan {
			n, convErr := strconv.Atoi(a.val)
			if convErr != nil {
				return p.errf("bad priority %q", a.val)
			}
			el.(*tree.AttributeSpan).SetPriority(n)
			continue
		}
		el.(tree.Attributed).SetAttribute(a.key, a.val)
	}
	parent.AppendChildren(el)

	if selfClosed {
		return nil
	}
	if inner != nil {
		if err := p.parseContent(inner); err != nil {
			return err
		}
	}
	if !strings.HasPrefix(p.src[p.pos:], "</") {
		return p.errf("missing </%s>", tag)
	}
	p.pos += 2
	if closeTag := p.readName(); closeTag != tag {
		return p.errf("close tag </%s> does not match <%s>", closeTag, tag)
	}
	if !p.eat('>') {
		return p.errf("'>' expected")
	}
	return nil
}

// readAttrValue reads up to the closing double quote.
func (p *parser) readAttrValue() (string, error) {
	var b strings.Builder
	for p.pos < len(p.src) {
		switch c := p.src[p.pos]; c {
		case '"':
			p.pos++
			return b.String(), nil
		case '&':
			decoded, err := p.entity()
			if err != nil {
				return "", err
			}
			b.WriteString(decoded)
		default:
			b.WriteByte(c)
			p.pos++
		}
	}
	return "", p.errf("unterminated attribute value")
}

func (p *parser) readName() string {
	start := p.pos
	for p.pos < len(p.src) && isNameByte(p.src[p.pos]) {
		p.pos++
	}
	return p.src[start:p.pos]
}

func (p *parser) skipSpace() {
	for p.pos < len(p.src) {
		switch p.src[p.pos] {
		case ' ', '\t', '\n', '\r':
			p.pos++
		default:
			return
		}
	}
}

func (p *parser) eat(c byte) bool {
	if p.pos < len(p.src) && p.src[p.pos] == c {
		p.pos++
		return true
	}
	return false
}

func isNameByte(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return true
	case c == ':', c == '-', c == '_', c == '$':
		return true
	}
	return false
}
