package codec

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/dshills/loom/internal/engine/tree"
)

// JSON errors
var (
	ErrJSONShape   = errors.New("malformed document JSON")
	ErrUnknownKind = errors.New("unknown node kind")
)

var jsonPathEscaper = strings.NewReplacer(
	".", `\.`, "*", `\*`, "?", `\?`, "|", `\|`,
)

// FromJSON builds a tree from the document JSON schema. Every node is
// an object with a "kind" (text, attribute, container, void, widget,
// fragment); elements carry "name" and optional "attributes", "styles"
// (objects), "classes" (array) and, for spans, "priority"; text nodes
// carry "data"; parents carry "children".
func FromJSON(data []byte) (tree.Node, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: invalid JSON", ErrJSONShape)
	}
	return nodeFromJSON(gjson.ParseBytes(data))
}

func nodeFromJSON(v gjson.Result) (tree.Node, error) {
	if !v.IsObject() {
		return nil, fmt.Errorf("%w: node must be an object, have %s", ErrJSONShape, v.Type)
	}
	kind := v.Get("kind").String()
	name := v.Get("name").String()
	if name == "" && kind != "text" && kind != "fragment" {
		return nil, fmt.Errorf("%w: %s node without name", ErrJSONShape, kind)
	}

	switch kind {
	case "text":
		return tree.NewText(v.Get("data").String()), nil
	case "attribute":
		s := tree.NewSpan(name)
		if pr := v.Get("priority"); pr.Exists() {
			s.SetPriority(int(pr.Int()))
		}
		applyJSONFormatting(s, v)
		if err := appendJSONChildren(s, v); err != nil {
			return nil, err
		}
		return s, nil
	case "container":
		c := tree.NewContainer(name)
		applyJSONFormatting(c, v)
		if err := appendJSONChildren(c, v); err != nil {
			return nil, err
		}
		return c, nil
	case "void":
		if err := childlessJSON(v, kind); err != nil {
			return nil, err
		}
		leaf := tree.NewVoidLeaf(name)
		applyJSONFormatting(leaf, v)
		return leaf, nil
	case "widget":
		if err := childlessJSON(v, kind); err != nil {
			return nil, err
		}
		w := tree.NewWidget(name)
		applyJSONFormatting(w, v)
		return w, nil
	case "fragment":
		f := tree.NewFragment()
		if err := appendJSONChildren(f, v); err != nil {
			return nil, err
		}
		return f, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
}

func applyJSONFormatting(el tree.Attributed, v gjson.Result) {
	v.Get("attributes").ForEach(func(k, val gjson.Result) bool {
		el.SetAttribute(k.String(), val.String())
		return true
	})
	v.Get("classes").ForEach(func(_, val gjson.Result) bool {
		el.AddClass(val.String())
		return true
	})
	v.Get("styles").ForEach(func(k, val gjson.Result) bool {
		el.SetStyle(k.String(), val.String())
		return true
	})
}

func appendJSONChildren(parent tree.Parent, v gjson.Result) error {
	var err error
	v.Get("children").ForEach(func(_, cv gjson.Result) bool {
		var child tree.Node
		child, err = nodeFromJSON(cv)
		if err != nil {
			return false
		}
		parent.AppendChildren(child)
		return true
	})
	return err
}

func childlessJSON(v gjson.Result, kind string) error {
	if v.Get("children.0").Exists() {
		return fmt.Errorf("%w: %s node cannot carry children", ErrJSONShape, kind)
	}
	return nil
}

// ToJSON renders a tree in the document JSON schema. Keys come out in
// a fixed order and attribute maps in sorted key order, so the output
// is deterministic.
func ToJSON(n tree.Node) ([]byte, error) {
	out := []byte(`{}`)
	var err error
	set := func(path string, value any) {
		if err == nil {
			out, err = sjson.SetBytes(out, path, value)
		}
	}

	set("kind", n.Kind().String())
	switch t := n.(type) {
	case *tree.Text:
		set("data", t.Data())
	case *tree.Fragment:
		// Only children.
	default:
		el := n.(tree.Attributed)
		set("name", el.Name())
		if span, ok := n.(*tree.AttributeSpan); ok {
			set("priority", span.Priority())
		}
		for _, key := range el.AttributeKeys() {
			v, _ := el.Attribute(key)
			set("attributes."+jsonPathEscaper.Replace(key), v)
		}
		for _, name := range el.ClassNames() {
			set("classes.-1", name)
		}
		for _, key := range el.StyleNames() {
			v, _ := el.Style(key)
			set("styles."+jsonPathEscaper.Replace(key), v)
		}
	}

	if parent, ok := n.(tree.Parent); ok {
		for _, child := range parent.Children() {
			encoded, cerr := ToJSON(child)
			if cerr != nil {
				return nil, cerr
			}
			if err == nil {
				out, err = sjson.SetRawBytes(out, "children.-1", encoded)
			}
		}
	}
	if err != nil {
		return nil, fmt.Errorf("encode %s node: %w", n.Kind(), err)
	}
	return out, nil
}
