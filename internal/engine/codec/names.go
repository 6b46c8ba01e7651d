package codec

import (
	"fmt"
	"strings"

	"github.com/dshills/loom/internal/engine/tree"
)

// defaultKinds maps bare element names to node kinds, so common HTML
// names work in markup without a kind prefix.
var defaultKinds = map[string]tree.Kind{
	// Containers.
	"p": tree.KindContainer, "div": tree.KindContainer,
	"h1": tree.KindContainer, "h2": tree.KindContainer,
	"h3": tree.KindContainer, "h4": tree.KindContainer,
	"h5": tree.KindContainer, "h6": tree.KindContainer,
	"blockquote": tree.KindContainer, "pre": tree.KindContainer,
	"ul": tree.KindContainer, "ol": tree.KindContainer,
	"li": tree.KindContainer, "table": tree.KindContainer,
	"thead": tree.KindContainer, "tbody": tree.KindContainer,
	"tr": tree.KindContainer, "td": tree.KindContainer,
	"th": tree.KindContainer, "figure": tree.KindContainer,
	"figcaption": tree.KindContainer, "article": tree.KindContainer,
	"section": tree.KindContainer, "aside": tree.KindContainer,
	"header": tree.KindContainer, "footer": tree.KindContainer,
	"nav": tree.KindContainer, "main": tree.KindContainer,

	// Attribute spans.
	"a": tree.KindAttributeSpan, "abbr": tree.KindAttributeSpan,
	"b": tree.KindAttributeSpan, "bdi": tree.KindAttributeSpan,
	"bdo": tree.KindAttributeSpan, "cite": tree.KindAttributeSpan,
	"code": tree.KindAttributeSpan, "del": tree.KindAttributeSpan,
	"dfn": tree.KindAttributeSpan, "em": tree.KindAttributeSpan,
	"i": tree.KindAttributeSpan, "ins": tree.KindAttributeSpan,
	"kbd": tree.KindAttributeSpan, "mark": tree.KindAttributeSpan,
	"q": tree.KindAttributeSpan, "s": tree.KindAttributeSpan,
	"samp": tree.KindAttributeSpan, "small": tree.KindAttributeSpan,
	"span": tree.KindAttributeSpan, "strong": tree.KindAttributeSpan,
	"sub": tree.KindAttributeSpan, "sup": tree.KindAttributeSpan,
	"u": tree.KindAttributeSpan, "var": tree.KindAttributeSpan,

	// Void leaves.
	"br": tree.KindVoidLeaf, "hr": tree.KindVoidLeaf,
	"img": tree.KindVoidLeaf, "input": tree.KindVoidLeaf,
	"embed": tree.KindVoidLeaf, "source": tree.KindVoidLeaf,
	"track": tree.KindVoidLeaf, "wbr": tree.KindVoidLeaf,
	"col": tree.KindVoidLeaf, "area": tree.KindVoidLeaf,
}

// resolveName maps a tag name to a node kind and element name. A
// "kind:name" form forces the kind; a bare name must be in the default
// registry. Widgets always need the "widget:" prefix.
func resolveName(tag string) (tree.Kind, string, error) {
	if prefix, name, ok := strings.Cut(tag, ":"); ok {
		if name == "" {
			return 0, "", fmt.Errorf("%w: empty name in %q", ErrUnknownName, tag)
		}
		switch prefix {
		case "container":
			return tree.KindContainer, name, nil
		case "attribute":
			return tree.KindAttributeSpan, name, nil
		case "void":
			return tree.KindVoidLeaf, name, nil
		case "widget":
			return tree.KindOpaqueWidget, name, nil
		}
		return 0, "", fmt.Errorf("%w: bad kind prefix in %q", ErrUnknownName, tag)
	}
	if kind, ok := defaultKinds[tag]; ok {
		return kind, tag, nil
	}
	return 0, "", fmt.Errorf("%w: %q (use a kind prefix)", ErrUnknownName, tag)
}

// tagName renders the markup tag for an element, dropping the kind
// prefix when the default registry already implies it.
func tagName(n tree.Named) string {
	name := n.Name()
	if kind, ok := defaultKinds[name]; ok && kind == n.Kind() {
		return name
	}
	return kindPrefix(n.Kind()) + ":" + name
}

func kindPrefix(k tree.Kind) string {
	switch k {
	case tree.KindContainer:
		return "container"
	case tree.KindAttributeSpan:
		return "attribute"
	case tree.KindVoidLeaf:
		return "void"
	default:
		return "widget"
	}
}
