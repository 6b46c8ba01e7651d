package tree

import (
	"sort"
	"strings"
)

// elementData holds the named-element state shared by the container,
// attribute span, void leaf and widget variants: the element name plus
// attributes, classes, styles and custom properties.
//
// The "class" and "style" attribute keys are routed into the class set
// and style map, so they never appear among the plain attributes.
type elementData struct {
	owner   Node
	name    string
	attrs   map[string]string
	classes map[string]struct{}
	styles  map[string]string
	custom  map[string]any
}

func (e *elementData) init(owner Node, name string) {
	e.owner = owner
	e.name = name
}

// changed invalidates derived state and notifies observers. It runs
// before every attribute, class or style mutation.
func (e *elementData) changed() {
	if s, ok := e.owner.(*AttributeSpan); ok {
		s.invalidateIdentity()
	}
	fireChange(ChangeAttributes, e.owner)
}

// Name returns the element name.
func (e *elementData) Name() string {
	return e.name
}

// SetAttribute sets an attribute value. The "class" key replaces the
// class set with space-separated names and the "style" key replaces the
// styles with a parsed "key:value;..." list.
func (e *elementData) SetAttribute(key, value string) {
	e.changed()
	switch key {
	case "class":
		e.classes = make(map[string]struct{})
		for _, name := range strings.Fields(value) {
			e.classes[name] = struct{}{}
		}
	case "style":
		e.styles = parseStyles(value)
	default:
		if e.attrs == nil {
			e.attrs = make(map[string]string)
		}
		e.attrs[key] = value
	}
}

// Attribute returns an attribute value. The "class" and "style" keys
// render the class set and style map back into attribute form.
func (e *elementData) Attribute(key string) (string, bool) {
	switch key {
	case "class":
		if len(e.classes) == 0 {
			return "", false
		}
		return strings.Join(e.ClassNames(), " "), true
	case "style":
		if len(e.styles) == 0 {
			return "", false
		}
		return renderStyles(e.styles), true
	default:
		v, ok := e.attrs[key]
		return v, ok
	}
}

// HasAttribute reports whether the attribute is present.
func (e *elementData) HasAttribute(key string) bool {
	_, ok := e.Attribute(key)
	return ok
}

// RemoveAttribute deletes an attribute and reports whether it was
// present. The "class" and "style" keys clear the class set and the
// style map.
func (e *elementData) RemoveAttribute(key string) bool {
	switch key {
	case "class":
		if len(e.classes) == 0 {
			return false
		}
		e.changed()
		e.classes = nil
		return true
	case "style":
		if len(e.styles) == 0 {
			return false
		}
		e.changed()
		e.styles = nil
		return true
	default:
		if _, ok := e.attrs[key]; !ok {
			return false
		}
		e.changed()
		delete(e.attrs, key)
		return true
	}
}

// AttributeKeys returns the plain attribute keys in sorted order. The
// routed "class" and "style" keys are not included.
func (e *elementData) AttributeKeys() []string {
	return sortedKeys(e.attrs)
}

// AddClass adds class names to the element.
func (e *elementData) AddClass(names ...string) {
	if len(names) == 0 {
		return
	}
	e.changed()
	if e.classes == nil {
		e.classes = make(map[string]struct{})
	}
	for _, name := range names {
		e.classes[name] = struct{}{}
	}
}

// RemoveClass removes class names from the element.
func (e *elementData) RemoveClass(names ...string) {
	if len(names) == 0 {
		return
	}
	e.changed()
	for _, name := range names {
		delete(e.classes, name)
	}
}

// HasClass reports whether the element carries the class name.
func (e *elementData) HasClass(name string) bool {
	_, ok := e.classes[name]
	return ok
}

// ClassNames returns the class names in sorted order.
func (e *elementData) ClassNames() []string {
	return sortedKeys(e.classes)
}

// SetStyle sets a single style entry.
func (e *elementData) SetStyle(key, value string) {
	e.changed()
	if e.styles == nil {
		e.styles = make(map[string]string)
	}
	e.styles[key] = value
}

// Style returns a single style entry.
func (e *elementData) Style(key string) (string, bool) {
	v, ok := e.styles[key]
	return v, ok
}

// RemoveStyle deletes a style entry and reports whether it was present.
func (e *elementData) RemoveStyle(key string) bool {
	if _, ok := e.styles[key]; !ok {
		return false
	}
	e.changed()
	delete(e.styles, key)
	return true
}

// StyleNames returns the style keys in sorted order.
func (e *elementData) StyleNames() []string {
	return sortedKeys(e.styles)
}

// SetCustomProperty attaches an arbitrary value to the element. Custom
// properties take no part in similarity or identity.
func (e *elementData) SetCustomProperty(key string, value any) {
	if e.custom == nil {
		e.custom = make(map[string]any)
	}
	e.custom[key] = value
}

// CustomProperty returns a custom property value.
func (e *elementData) CustomProperty(key string) (any, bool) {
	v, ok := e.custom[key]
	return v, ok
}

// RemoveCustomProperty deletes a custom property and reports whether it
// was present.
func (e *elementData) RemoveCustomProperty(key string) bool {
	if _, ok := e.custom[key]; !ok {
		return false
	}
	delete(e.custom, key)
	return true
}

// sameShape reports whether both elements have the same name,
// attributes, classes and styles.
func (e *elementData) sameShape(o *elementData) bool {
	if e.name != o.name {
		return false
	}
	if len(e.attrs) != len(o.attrs) || len(e.classes) != len(o.classes) || len(e.styles) != len(o.styles) {
		return false
	}
	for k, v := range e.attrs {
		if ov, ok := o.attrs[k]; !ok || ov != v {
			return false
		}
	}
	for k := range e.classes {
		if _, ok := o.classes[k]; !ok {
			return false
		}
	}
	for k, v := range e.styles {
		if ov, ok := o.styles[k]; !ok || ov != v {
			return false
		}
	}
	return true
}

// cloneInto copies the name, attributes, classes, styles and custom
// properties into dst, leaving dst's owner untouched.
func (e *elementData) cloneInto(dst *elementData) {
	dst.name = e.name
	dst.attrs = copyMap(e.attrs)
	dst.classes = copyMap(e.classes)
	dst.styles = copyMap(e.styles)
	dst.custom = copyMap(e.custom)
}

// parseStyles splits a "key:value;key:value" style string.
func parseStyles(s string) map[string]string {
	out := make(map[string]string)
	for _, entry := range strings.Split(s, ";") {
		key, value, ok := strings.Cut(entry, ":")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		if key != "" {
			out[key] = value
		}
	}
	return out
}

// renderStyles renders a style map back into "key:value;..." form with
// keys in sorted order.
func renderStyles(styles map[string]string) string {
	var b strings.Builder
	for i, k := range sortedKeys(styles) {
		if i > 0 {
			b.WriteByte(';')
		}
		b.WriteString(k)
		b.WriteByte(':')
		b.WriteString(styles[k])
	}
	return b.String()
}

// sortedKeys returns the map keys in sorted order.
func sortedKeys[V any](m map[string]V) []string {
	if len(m) == 0 {
		return nil
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// copyMap returns a shallow copy of m, or nil for an empty map.
func copyMap[V any](m map[string]V) map[string]V {
	if len(m) == 0 {
		return nil
	}
	out := make(map[string]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
