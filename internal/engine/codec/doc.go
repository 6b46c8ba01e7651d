// Package codec converts content trees to and from two textual forms.
//
// Markup Notation:
//
// A compact HTML-like form used by fixtures, tests and the CLI. Tags
// name their kind explicitly (<container:p>, <attribute:b>,
// <void:img/>, <widget:chart/>), and a registry of common HTML names
// lets plain <p>, <b> or <img/> stand in for the prefixed forms. Spans
// take a priority="n" pseudo-attribute. A range can ride along in the
// text: "[" and "]" mark element-level positions, "{" and "}" mark
// positions inside a text run, so
//
//	<p>f{oo<b>ba}r</b></p>
//
// parses to a paragraph plus the range covering "ooba". Stringify is
// the inverse and renders attributes in sorted order, making output
// strings stable enough to compare in tests.
//
// JSON Form:
//
// A one-object-per-node schema (kind, name, attributes, classes,
// styles, priority, data, children) for interchange with other
// tooling. Reading walks a gjson document; writing builds the output
// incrementally with sjson.
package codec
