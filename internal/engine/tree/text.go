package tree

import "bytes"

// Text is a leaf node holding a run of character data. Offsets into a
// text node are byte offsets into its data.
type Text struct {
	baseNode
	data []byte
}

// NewText creates a detached text node.
func NewText(data string) *Text {
	t := &Text{data: []byte(data)}
	t.self = t
	return t
}

// Kind reports KindText.
func (t *Text) Kind() Kind {
	return KindText
}

// Data returns the character data.
func (t *Text) Data() string {
	return string(t.data)
}

// Len returns the length of the character data in bytes.
func (t *Text) Len() int {
	return len(t.data)
}

// SetData replaces the character data.
func (t *Text) SetData(data string) {
	fireChange(ChangeText, t)
	t.data = append(t.data[:0], data...)
}

// AppendData appends to the character data. Appending reuses the
// underlying buffer, so repeated merges into the same node stay cheap.
func (t *Text) AppendData(data string) {
	fireChange(ChangeText, t)
	t.data = append(t.data, data...)
}

// IsSimilar reports whether other is a text node with the same data.
func (t *Text) IsSimilar(other Node) bool {
	o, ok := other.(*Text)
	return ok && bytes.Equal(t.data, o.data)
}

// Clone returns a detached copy of the text node.
func (t *Text) Clone(bool) Node {
	return NewText(string(t.data))
}
