package engine

// DefaultRootName is the element name of the root container a document
// creates when no root is supplied.
const DefaultRootName = "div"

// Option configures a Document during creation.
type Option func(*Document)

// WithRootName sets the element name of the created root container.
// It has no effect when WithRoot supplies a root.
func WithRootName(name string) Option {
	return func(d *Document) {
		if name != "" {
			d.rootName = name
		}
	}
}

// WithRoot adopts an existing tree as the document root.
func WithRoot(root Node) Option {
	return func(d *Document) {
		d.root = root
	}
}

// WithSelection supplies the selection the document's writer follows.
func WithSelection(sel *Selection) Option {
	return func(d *Document) {
		d.sel = sel
	}
}

// WithObserver registers a change observer on the document root.
func WithObserver(fn ChangeFunc) Option {
	return func(d *Document) {
		d.observers = append(d.observers, fn)
	}
}
