package lua

import (
	"fmt"
	"strings"

	glua "github.com/yuin/gopher-lua"

	"github.com/dshills/loom/internal/engine/tree"
)

// nodeTypeName keys the metatable for node userdata.
const nodeTypeName = "loom.node"

// handlerName maps a node kind to the handler function a script
// defines for it. This is also the vocabulary node:kind() speaks.
func handlerName(k tree.Kind) string {
	switch k {
	case tree.KindText:
		return "text"
	case tree.KindAttributeSpan:
		return "span"
	case tree.KindContainer:
		return "container"
	case tree.KindVoidLeaf:
		return "voidleaf"
	case tree.KindOpaqueWidget:
		return "widget"
	default:
		return k.String()
	}
}

// registerNodeType installs the node metatable into L.
func registerNodeType(L *glua.LState) {
	mt := L.NewTypeMetatable(nodeTypeName)
	L.SetField(mt, "__index", L.SetFuncs(L.NewTable(), nodeMethods))
}

// wrapNode boxes a tree node as Lua userdata.
func wrapNode(L *glua.LState, n tree.Node) *glua.LUserData {
	ud := L.NewUserData()
	ud.Value = n
	L.SetMetatable(ud, L.GetTypeMetatable(nodeTypeName))
	return ud
}

// checkNode extracts the tree node from the method receiver.
func checkNode(L *glua.LState) tree.Node {
	ud := L.CheckUserData(1)
	if n, ok := ud.Value.(tree.Node); ok {
		return n
	}
	L.ArgError(1, "node expected")
	return nil
}

// checkAttributed extracts an attribute-carrying receiver, raising a
// Lua error for text nodes.
func checkAttributed(L *glua.LState) tree.Attributed {
	n := checkNode(L)
	a, ok := n.(tree.Attributed)
	if !ok {
		L.RaiseError("%s nodes carry no attributes", handlerName(n.Kind()))
	}
	return a
}

var nodeMethods = map[string]glua.LGFunction{
	"kind":        nodeKind,
	"name":        nodeName,
	"data":        nodeData,
	"setdata":     nodeSetData,
	"text":        nodeText,
	"priority":    nodePriority,
	"childcount":  nodeChildCount,
	"attr":        nodeAttr,
	"setattr":     nodeSetAttr,
	"removeattr":  nodeRemoveAttr,
	"attrs":       nodeAttrs,
	"hasclass":    nodeHasClass,
	"addclass":    nodeAddClass,
	"removeclass": nodeRemoveClass,
	"classes":     nodeClasses,
	"style":       nodeStyle,
	"setstyle":    nodeSetStyle,
	"removestyle": nodeRemoveStyle,
	"styles":      nodeStyles,
}

func nodeKind(L *glua.LState) int {
	L.Push(glua.LString(handlerName(checkNode(L).Kind())))
	return 1
}

func nodeName(L *glua.LState) int {
	if named, ok := checkNode(L).(tree.Named); ok {
		L.Push(glua.LString(named.Name()))
	} else {
		L.Push(glua.LNil)
	}
	return 1
}

func nodeData(L *glua.LState) int {
	if t, ok := checkNode(L).(*tree.Text); ok {
		L.Push(glua.LString(t.Data()))
	} else {
		L.Push(glua.LNil)
	}
	return 1
}

func nodeSetData(L *glua.LState) int {
	t, ok := checkNode(L).(*tree.Text)
	if !ok {
		L.RaiseError("setdata on a non-text node")
	}
	t.SetData(L.CheckString(2))
	return 0
}

// nodeText returns the concatenated text content of the subtree.
func nodeText(L *glua.LState) int {
	var sb strings.Builder
	collectText(checkNode(L), &sb)
	L.Push(glua.LString(sb.String()))
	return 1
}

func collectText(n tree.Node, sb *strings.Builder) {
	switch v := n.(type) {
	case *tree.Text:
		sb.WriteString(v.Data())
	case tree.Parent:
		for _, c := range v.Children() {
			collectText(c, sb)
		}
	}
}

func nodePriority(L *glua.LState) int {
	if s, ok := checkNode(L).(*tree.AttributeSpan); ok {
		L.Push(glua.LNumber(s.Priority()))
	} else {
		L.Push(glua.LNil)
	}
	return 1
}

func nodeChildCount(L *glua.LState) int {
	if p, ok := checkNode(L).(tree.Parent); ok {
		L.Push(glua.LNumber(p.ChildCount()))
	} else {
		L.Push(glua.LNumber(0))
	}
	return 1
}

func nodeAttr(L *glua.LState) int {
	if v, ok := checkAttributed(L).Attribute(L.CheckString(2)); ok {
		L.Push(glua.LString(v))
	} else {
		L.Push(glua.LNil)
	}
	return 1
}

func nodeSetAttr(L *glua.LState) int {
	checkAttributed(L).SetAttribute(L.CheckString(2), L.CheckString(3))
	return 0
}

func nodeRemoveAttr(L *glua.LState) int {
	L.Push(glua.LBool(checkAttributed(L).RemoveAttribute(L.CheckString(2))))
	return 1
}

func nodeAttrs(L *glua.LState) int {
	a := checkAttributed(L)
	t := L.NewTable()
	for _, k := range a.AttributeKeys() {
		if v, ok := a.Attribute(k); ok {
			t.RawSetString(k, glua.LString(v))
		}
	}
	L.Push(t)
	return 1
}

func nodeHasClass(L *glua.LState) int {
	L.Push(glua.LBool(checkAttributed(L).HasClass(L.CheckString(2))))
	return 1
}

func nodeAddClass(L *glua.LState) int {
	checkAttributed(L).AddClass(L.CheckString(2))
	return 0
}

func nodeRemoveClass(L *glua.LState) int {
	checkAttributed(L).RemoveClass(L.CheckString(2))
	return 0
}

func nodeClasses(L *glua.LState) int {
	t := L.NewTable()
	for i, name := range checkAttributed(L).ClassNames() {
		t.RawSetInt(i+1, glua.LString(name))
	}
	L.Push(t)
	return 1
}

func nodeStyle(L *glua.LState) int {
	if v, ok := checkAttributed(L).Style(L.CheckString(2)); ok {
		L.Push(glua.LString(v))
	} else {
		L.Push(glua.LNil)
	}
	return 1
}

func nodeSetStyle(L *glua.LState) int {
	checkAttributed(L).SetStyle(L.CheckString(2), L.CheckString(3))
	return 0
}

func nodeRemoveStyle(L *glua.LState) int {
	L.Push(glua.LBool(checkAttributed(L).RemoveStyle(L.CheckString(2))))
	return 1
}

func nodeStyles(L *glua.LState) int {
	a := checkAttributed(L)
	t := L.NewTable()
	for _, k := range a.StyleNames() {
		if v, ok := a.Style(k); ok {
			t.RawSetString(k, glua.LString(v))
		}
	}
	L.Push(t)
	return 1
}

// Action is a handler's verdict on a node.
type Action int

const (
	// ActionKeep leaves the node as the handler left it.
	ActionKeep Action = iota

	// ActionRemove deletes the node and its subtree.
	ActionRemove

	// ActionUnwrap dissolves a span, splicing its children up.
	ActionUnwrap

	// ActionWrap wraps the node in a new attribute span.
	ActionWrap
)

// WrapSpec describes the span a wrap action builds around a node.
type WrapSpec struct {
	Name       string
	Priority   int
	Attributes map[string]string
	Classes    []string
	Styles     map[string]string
}

// Span builds the template span from the wrap fields.
func (w *WrapSpec) Span() *tree.AttributeSpan {
	s := tree.NewSpan(w.Name)
	s.SetPriority(w.Priority)
	for k, v := range w.Attributes {
		s.SetAttribute(k, v)
	}
	s.AddClass(w.Classes...)
	for k, v := range w.Styles {
		s.SetStyle(k, v)
	}
	return s
}

// decodeAction interprets a handler return value.
func decodeAction(lv glua.LValue) (Action, *WrapSpec, error) {
	switch v := lv.(type) {
	case *glua.LNilType:
		return ActionKeep, nil, nil
	case glua.LString:
		switch string(v) {
		case "remove":
			return ActionRemove, nil, nil
		case "unwrap":
			return ActionUnwrap, nil, nil
		}
		return 0, nil, fmt.Errorf("%w: %q", ErrInvalidAction, string(v))
	case *glua.LTable:
		wrapTbl, ok := v.RawGetString("wrap").(*glua.LTable)
		if !ok {
			return 0, nil, fmt.Errorf("%w: table without a wrap entry", ErrInvalidAction)
		}
		spec, err := decodeWrapSpec(wrapTbl)
		if err != nil {
			return 0, nil, err
		}
		return ActionWrap, spec, nil
	}
	return 0, nil, fmt.Errorf("%w: %s", ErrInvalidAction, lv.Type())
}

// decodeWrapSpec reads a wrap table: name (required), priority,
// attributes, classes, styles.
func decodeWrapSpec(t *glua.LTable) (*WrapSpec, error) {
	spec := &WrapSpec{Priority: tree.DefaultPriority}

	name, ok := t.RawGetString("name").(glua.LString)
	if !ok || string(name) == "" {
		return nil, fmt.Errorf("%w: wrap needs a name", ErrInvalidAction)
	}
	spec.Name = string(name)

	if p, ok := t.RawGetString("priority").(glua.LNumber); ok {
		spec.Priority = int(p)
	}

	if attrs, ok := t.RawGetString("attributes").(*glua.LTable); ok {
		spec.Attributes = map[string]string{}
		var err error
		attrs.ForEach(func(k, v glua.LValue) {
			ks, kok := k.(glua.LString)
			vs, vok := v.(glua.LString)
			if !kok || !vok {
				err = fmt.Errorf("%w: wrap attributes must map strings to strings", ErrInvalidAction)
				return
			}
			spec.Attributes[string(ks)] = string(vs)
		})
		if err != nil {
			return nil, err
		}
	}

	if classes, ok := t.RawGetString("classes").(*glua.LTable); ok {
		for i := 1; ; i++ {
			v := classes.RawGetInt(i)
			if v == glua.LNil {
				break
			}
			s, ok := v.(glua.LString)
			if !ok {
				return nil, fmt.Errorf("%w: wrap classes must be strings", ErrInvalidAction)
			}
			spec.Classes = append(spec.Classes, string(s))
		}
	}

	if styles, ok := t.RawGetString("styles").(*glua.LTable); ok {
		spec.Styles = map[string]string{}
		var err error
		styles.ForEach(func(k, v glua.LValue) {
			ks, kok := k.(glua.LString)
			vs, vok := v.(glua.LString)
			if !kok || !vok {
				err = fmt.Errorf("%w: wrap styles must map strings to strings", ErrInvalidAction)
				return
			}
			spec.Styles[string(ks)] = string(vs)
		})
		if err != nil {
			return nil, err
		}
	}

	return spec, nil
}
