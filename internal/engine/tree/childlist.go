package tree

// childList owns the ordered children of a parent node and keeps
// parent pointers consistent as nodes move between parents.
type childList struct {
	owner Parent
	nodes []Node
}

func (l *childList) count() int {
	return len(l.nodes)
}

func (l *childList) at(i int) Node {
	if i < 0 || i >= len(l.nodes) {
		return nil
	}
	return l.nodes[i]
}

func (l *childList) slice() []Node {
	out := make([]Node, len(l.nodes))
	copy(out, l.nodes)
	return out
}

// insert splices nodes into the list before index. Nodes attached
// elsewhere are detached from their previous parent first.
func (l *childList) insert(index int, nodes []Node) int {
	if len(nodes) == 0 {
		return 0
	}
	fireChange(ChangeChildren, l.owner)

	// Snapshot the input: detaching below can mutate the very slice the
	// caller handed in when the nodes come from another child list.
	batch := make([]Node, len(nodes))
	copy(batch, nodes)

	for _, n := range batch {
		if n.Kind() == KindFragment {
			panic("tree: a fragment cannot become a child node")
		}
		if n.Parent() != nil {
			n.base().detach()
		}
		n.base().parent = l.owner
	}

	out := make([]Node, 0, len(l.nodes)+len(batch))
	out = append(out, l.nodes[:index]...)
	out = append(out, batch...)
	out = append(out, l.nodes[index:]...)
	l.nodes = out
	return len(batch)
}

// remove detaches count children starting at index and returns them.
func (l *childList) remove(index, count int) []Node {
	if count <= 0 {
		return nil
	}
	fireChange(ChangeChildren, l.owner)

	removed := make([]Node, count)
	copy(removed, l.nodes[index:index+count])
	for _, n := range removed {
		n.base().parent = nil
	}
	l.nodes = append(l.nodes[:index], l.nodes[index+count:]...)
	return removed
}
