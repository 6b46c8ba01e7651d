package tree

import "github.com/google/uuid"

// VoidLeaf is a childless element such as an image or a line break.
// Boundary operations treat its interior as unreachable.
type VoidLeaf struct {
	baseNode
	elementData
}

// NewVoidLeaf creates a detached void leaf element.
func NewVoidLeaf(name string) *VoidLeaf {
	v := &VoidLeaf{}
	v.self = v
	v.elementData.init(v, name)
	return v
}

// Kind reports KindVoidLeaf.
func (v *VoidLeaf) Kind() Kind {
	return KindVoidLeaf
}

// IsSimilar reports whether other is a void leaf with the same name,
// attributes, classes and styles.
func (v *VoidLeaf) IsSimilar(other Node) bool {
	o, ok := other.(*VoidLeaf)
	return ok && v.sameShape(&o.elementData)
}

// Clone returns a detached copy of the void leaf.
func (v *VoidLeaf) Clone(bool) Node {
	dup := NewVoidLeaf(v.name)
	v.elementData.cloneInto(&dup.elementData)
	return dup
}

// RenderFunc produces a widget's external content on demand. The
// interior of a widget lives outside the tree; the hook bridges to it.
type RenderFunc func(*OpaqueWidget) string

// OpaqueWidget is an embedded object. Its interior is owned by an
// external integration and is not represented in the tree, so boundary
// operations never descend into it.
type OpaqueWidget struct {
	baseNode
	elementData
	widgetID string
	render   RenderFunc
}

// NewWidget creates a detached widget with a fresh widget ID.
func NewWidget(name string) *OpaqueWidget {
	w := &OpaqueWidget{widgetID: uuid.NewString()}
	w.self = w
	w.elementData.init(w, name)
	return w
}

// SetRenderHook installs the external render hook. The hook takes no
// part in similarity or identity.
func (w *OpaqueWidget) SetRenderHook(fn RenderFunc) {
	w.render = fn
}

// Render returns the hook's output, or the empty string when no hook
// is installed.
func (w *OpaqueWidget) Render() string {
	if w.render == nil {
		return ""
	}
	return w.render(w)
}

// Kind reports KindOpaqueWidget.
func (w *OpaqueWidget) Kind() Kind {
	return KindOpaqueWidget
}

// WidgetID returns the stable identifier external integrations use to
// locate this widget's content.
func (w *OpaqueWidget) WidgetID() string {
	return w.widgetID
}

// IsSimilar reports whether other is a widget with the same name,
// attributes, classes and styles. The widget ID takes no part in
// similarity.
func (w *OpaqueWidget) IsSimilar(other Node) bool {
	o, ok := other.(*OpaqueWidget)
	return ok && w.sameShape(&o.elementData)
}

// Clone returns a detached copy of the widget under a new widget ID,
// sharing the render hook.
func (w *OpaqueWidget) Clone(bool) Node {
	dup := NewWidget(w.name)
	w.elementData.cloneInto(&dup.elementData)
	dup.render = w.render
	return dup
}
