package tree

import (
	"fmt"
	"slices"

	"github.com/aretw0/deeds/pkg/arena"
)

// rootLabel is reported by IndexError when the tree has no root at all.
const rootLabel = "root"

// Navigator is a read-only view over a built tree.
// Label-keyed queries resolve to the first node carrying that label.
type Navigator struct {
	tree        *arena.Arena[string]
	leafParents []arena.NodeID
	texts       []arena.NodeID
}

// Entry describes one node for introspection.
type Entry struct {
	ID     arena.NodeID `json:"id"`
	Parent arena.NodeID `json:"parent"`
	Label  string       `json:"label"`
	Depth  int          `json:"depth"`
	Leaf   bool         `json:"leaf"`
	// Answer is set on leaves whose parent owns them as answer text.
	Answer bool `json:"answer"`
}

// NewNavigator wraps a built arena and its leaf-parent index.
// Neither may be modified afterwards.
func NewNavigator(tree *arena.Arena[string], leafParents []arena.NodeID) *Navigator {
	if tree == nil {
		tree = arena.New[string]()
	}
	return &Navigator{tree: tree, leafParents: leafParents}
}

// Len returns the number of nodes in the tree.
func (n *Navigator) Len() int {
	return n.tree.Len()
}

// Root returns the label of the first root.
func (n *Navigator) Root() (string, error) {
	root, ok := n.tree.RootValue()
	if !ok {
		return "", &IndexError{Label: rootLabel}
	}
	return root, nil
}

// RootChildren returns the labels directly under the root.
func (n *Navigator) RootChildren() ([]string, error) {
	root, err := n.Root()
	if err != nil {
		return nil, err
	}
	return n.Children(root)
}

// Children returns, in order, the labels directly under label.
func (n *Navigator) Children(label string) ([]string, error) {
	ids, ok := n.tree.ChildrenByValue(label)
	if !ok {
		return nil, &IndexError{Label: label}
	}

	labels := make([]string, 0, len(ids))
	for _, id := range ids {
		v, ok := n.tree.Get(id)
		if !ok {
			return nil, fmt.Errorf("child %d of %q missing from tree", id, label)
		}
		labels = append(labels, v)
	}
	return labels, nil
}

// Contains reports whether any category, question or answer equals label.
func (n *Navigator) Contains(label string) bool {
	return n.tree.Contains(label)
}

// IsAnswerBearing reports whether label directly owns answer text.
func (n *Navigator) IsAnswerBearing(label string) (bool, error) {
	id, ok := n.tree.IDByValue(label)
	if !ok {
		return false, &IndexError{Label: label}
	}
	return n.ownsAnswer(id), nil
}

func (n *Navigator) ownsAnswer(id arena.NodeID) bool {
	return slices.Contains(n.leafParents, id)
}

// Parent returns the parent id of id.
func (n *Navigator) Parent(id arena.NodeID) (arena.NodeID, bool) {
	return n.tree.Parent(id)
}

// Lookup returns the id of the first node labelled label.
func (n *Navigator) Lookup(label string) (arena.NodeID, bool) {
	return n.tree.IDByValue(label)
}

// Label returns the label stored at id.
func (n *Navigator) Label(id arena.NodeID) (string, bool) {
	return n.tree.Get(id)
}

// LeafParents returns a copy of the leaf-parent index in build order.
func (n *Navigator) LeafParents() []arena.NodeID {
	return append([]arena.NodeID(nil), n.leafParents...)
}

// Entries lists every node in id order.
func (n *Navigator) Entries() []Entry {
	entries := make([]Entry, 0, n.tree.Len())
	depth := make([]int, 0, n.tree.Len())

	n.tree.Each(func(id, parent arena.NodeID, label string) bool {
		d := 0
		if parent != arena.NoParent {
			d = depth[parent] + 1
		}
		depth = append(depth, d)

		children, _ := n.tree.ChildrenByID(id)
		leaf := len(children) == 0
		entries = append(entries, Entry{
			ID:     id,
			Parent: parent,
			Label:  label,
			Depth:  d,
			Leaf:   leaf,
			Answer: leaf && parent != arena.NoParent && n.ownsAnswer(parent),
		})
		return true
	})
	return entries
}

// EmptyCategories returns the labels that were declared with an empty mapping and
// therefore hold neither sub-categories nor an answer. A top-level empty category
// has no parent and is reported like any other; a top-level text is not a category.
func (n *Navigator) EmptyCategories() ([]string, error) {
	var empty []string
	for _, e := range n.Entries() {
		if e.Leaf && !e.Answer && !slices.Contains(n.texts, e.ID) {
			empty = append(empty, e.Label)
		}
	}
	return empty, nil
}
