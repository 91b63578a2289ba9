package arena

import "fmt"

// NodeID is the position of a node in its Arena.
type NodeID int

// NoParent marks a node without parent (a root).
const NoParent NodeID = -1

type node[T comparable] struct {
	parent   NodeID
	children []NodeID
	data     T
}

// Arena owns every node of a tree. The zero value is an empty, ready-to-use Arena.
type Arena[T comparable] struct {
	nodes []node[T]
}

// New creates an empty Arena.
func New[T comparable]() *Arena[T] {
	return &Arena[T]{}
}

// Len returns the number of nodes.
func (a *Arena[T]) Len() int {
	return len(a.nodes)
}

func (a *Arena[T]) valid(id NodeID) bool {
	return id >= 0 && int(id) < len(a.nodes)
}

// AddNode appends a node holding data.
// With parent == NoParent the node becomes a new root. Otherwise parent must exist,
// and the new node is registered as its last child.
// The returned id is always the position of the new node, roots included.
func (a *Arena[T]) AddNode(data T, parent NodeID) (NodeID, error) {
	id := NodeID(len(a.nodes))

	if parent != NoParent {
		if !a.valid(parent) {
			return NoParent, fmt.Errorf("%w: %d", ErrUnknownParent, parent)
		}
		a.nodes[parent].children = append(a.nodes[parent].children, id)
	}

	a.nodes = append(a.nodes, node[T]{parent: parent, data: data})
	return id, nil
}

// Parent returns the parent of id. It reports false when id is unknown or is a root.
func (a *Arena[T]) Parent(id NodeID) (NodeID, bool) {
	if !a.valid(id) {
		return NoParent, false
	}
	p := a.nodes[id].parent
	return p, p != NoParent
}

// ChildrenByID returns a copy of the ordered children of id.
func (a *Arena[T]) ChildrenByID(id NodeID) ([]NodeID, bool) {
	if !a.valid(id) {
		return nil, false
	}
	return cloneIDs(a.nodes[id].children), true
}

// ChildrenByValue returns the children of the first node holding data.
func (a *Arena[T]) ChildrenByValue(data T) ([]NodeID, bool) {
	id, ok := a.IDByValue(data)
	if !ok {
		return nil, false
	}
	return cloneIDs(a.nodes[id].children), true
}

// IDByValue returns the id of the first node holding data.
func (a *Arena[T]) IDByValue(data T) (NodeID, bool) {
	for i := range a.nodes {
		if a.nodes[i].data == data {
			return NodeID(i), true
		}
	}
	return NoParent, false
}

// RootValue returns the value of the first parentless node.
func (a *Arena[T]) RootValue() (T, bool) {
	for i := range a.nodes {
		if a.nodes[i].parent == NoParent {
			return a.nodes[i].data, true
		}
	}
	var zero T
	return zero, false
}

// Get returns the value stored at id.
func (a *Arena[T]) Get(id NodeID) (T, bool) {
	if !a.valid(id) {
		var zero T
		return zero, false
	}
	return a.nodes[id].data, true
}

// Contains reports whether any node holds data.
func (a *Arena[T]) Contains(data T) bool {
	_, ok := a.IDByValue(data)
	return ok
}

// LeavesParents returns, in id order, the parent of every node without children.
//
// Every leaf must have a parent. A parentless leaf (for example an arena made of a
// single node) yields ErrLeafWithoutParent; callers must treat it as fatal and never
// fall back to an empty result.
func (a *Arena[T]) LeavesParents() ([]NodeID, error) {
	var parents []NodeID
	for i := range a.nodes {
		n := &a.nodes[i]
		if len(n.children) > 0 {
			continue
		}
		if n.parent == NoParent {
			return nil, fmt.Errorf("%w: node %d", ErrLeafWithoutParent, i)
		}
		parents = append(parents, n.parent)
	}
	return parents, nil
}

// Each calls fn for every node in id order until fn returns false.
func (a *Arena[T]) Each(fn func(id, parent NodeID, data T) bool) {
	for i := range a.nodes {
		if !fn(NodeID(i), a.nodes[i].parent, a.nodes[i].data) {
			return
		}
	}
}

func cloneIDs(ids []NodeID) []NodeID {
	out := make([]NodeID, len(ids))
	copy(out, ids)
	return out
}
