// Package lua runs user-provided filter scripts over documents.
//
// A filter script defines handler functions named after node kinds:
//
//	function span(node)
//	    if node:name() == "b" and node:text() == "" then
//	        return "remove"
//	    end
//	end
//
// Handlers run bottom-up: children are visited before their parents,
// and nodes detached by an earlier action are skipped. A handler may
// mutate its node in place through the userdata methods (setdata,
// setattr, addclass, setstyle, ...) and then return an action:
//
//	nil             keep the node
//	"remove"        delete the node and its subtree
//	"unwrap"        dissolve a span, splicing its children up
//	{wrap = {...}}  wrap the node in a new attribute span
//
// The wrap table takes name (required) plus optional priority,
// attributes, classes and styles. Structural actions are applied
// through the document's writer, so the tree is normalized after
// every action; in-place attribute edits are not re-normalized.
//
// # Sandbox
//
// Scripts run with the base, table, string and math libraries only.
// There is no filesystem, process or network access, and require is
// disabled: a filter is a pure transformation of the tree it is given.
//
// # Concurrency
//
// Lua states are not goroutine safe and neither is the engine. Create,
// run and close a Runner on a single goroutine.
package lua
