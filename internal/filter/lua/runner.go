package lua

import (
	"fmt"

	glua "github.com/yuin/gopher-lua"

	"github.com/dshills/loom/internal/engine"
	"github.com/dshills/loom/internal/engine/position"
	"github.com/dshills/loom/internal/engine/tree"
)

// Runner executes a filter script against documents.
//
// A script defines handler functions named after node kinds: text,
// span, container, voidleaf, widget. Each handler receives one node
// and returns an action, or nil to keep the node. Handlers the script
// does not define are skipped.
type Runner struct {
	state    *State
	handlers map[tree.Kind]*glua.LFunction
}

// NewRunner loads a filter script from a file.
func NewRunner(path string) (*Runner, error) {
	state := NewState()
	registerNodeType(state.L)
	if err := state.DoFile(path); err != nil {
		state.Close()
		return nil, fmt.Errorf("loading filter %s: %w", path, err)
	}
	return newRunner(state), nil
}

// NewRunnerFromString loads a filter script held in a string.
func NewRunnerFromString(code string) (*Runner, error) {
	state := NewState()
	registerNodeType(state.L)
	if err := state.DoString(code); err != nil {
		state.Close()
		return nil, fmt.Errorf("loading filter: %w", err)
	}
	return newRunner(state), nil
}

func newRunner(state *State) *Runner {
	r := &Runner{state: state, handlers: make(map[tree.Kind]*glua.LFunction)}
	for _, k := range []tree.Kind{
		tree.KindText,
		tree.KindAttributeSpan,
		tree.KindContainer,
		tree.KindVoidLeaf,
		tree.KindOpaqueWidget,
	} {
		if fn, ok := state.Global(handlerName(k)).(*glua.LFunction); ok {
			r.handlers[k] = fn
		}
	}
	return r
}

// Close releases the script's interpreter.
func (r *Runner) Close() {
	r.state.Close()
}

// Run applies the script to every node under the document root,
// children before parents. The root itself is not visited, and nodes
// detached by an earlier action are skipped. Structural actions go
// through the document's writer, so the normalization invariants hold
// after every action.
func (r *Runner) Run(doc *engine.Document) error {
	if r.state.IsClosed() {
		return ErrStateClosed
	}
	if len(r.handlers) == 0 {
		return nil
	}

	root := doc.Root()
	var pending []tree.Node
	collectPostOrder(root, &pending)

	for _, n := range pending {
		if n.Root() != root {
			continue
		}
		fn, ok := r.handlers[n.Kind()]
		if !ok {
			continue
		}
		if err := r.apply(doc, n, fn); err != nil {
			return err
		}
	}
	return nil
}

// collectPostOrder lists the subtree below n children-first. The node
// itself is not included.
func collectPostOrder(n tree.Node, out *[]tree.Node) {
	if p, ok := n.(tree.Parent); ok {
		for _, c := range p.Children() {
			collectPostOrder(c, out)
			*out = append(*out, c)
		}
	}
}

// apply invokes the handler on n and carries out the returned action.
func (r *Runner) apply(doc *engine.Document, n tree.Node, fn *glua.LFunction) error {
	L := r.state.L
	L.Push(fn)
	L.Push(wrapNode(L, n))

	var callErr error
	func() {
		defer func() {
			if rec := recover(); rec != nil {
				callErr = fmt.Errorf("lua panic: %v", rec)
			}
		}()
		callErr = L.PCall(1, 1, nil)
	}()
	if callErr != nil {
		return fmt.Errorf("filter %s handler: %w", handlerName(n.Kind()), callErr)
	}

	ret := L.Get(-1)
	L.Pop(1)

	act, spec, err := decodeAction(ret)
	if err != nil {
		return fmt.Errorf("filter %s handler: %w", handlerName(n.Kind()), err)
	}

	switch act {
	case ActionRemove:
		if _, _, err := doc.Remove(position.On(n)); err != nil {
			return fmt.Errorf("filter remove: %w", err)
		}
	case ActionUnwrap:
		span, ok := n.(*tree.AttributeSpan)
		if !ok {
			return fmt.Errorf("filter %s handler: %w: unwrap applies to spans only",
				handlerName(n.Kind()), ErrInvalidAction)
		}
		if _, err := doc.Unwrap(position.On(span), span.Clone(false)); err != nil {
			return fmt.Errorf("filter unwrap: %w", err)
		}
	case ActionWrap:
		if _, err := doc.Wrap(position.On(n), spec.Span()); err != nil {
			return fmt.Errorf("filter wrap: %w", err)
		}
	}
	return nil
}
