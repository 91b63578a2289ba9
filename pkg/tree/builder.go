package tree

import (
	"fmt"
	"io"
	"os"

	"github.com/aretw0/deeds/pkg/arena"
	"gopkg.in/yaml.v3"
)

// Builder fills an arena from a parsed document.
// A Builder is single use: call Add once per top-level value, then Navigator.
type Builder struct {
	tree        *arena.Arena[string]
	leafParents []arena.NodeID
	// texts holds top-level text leaves, which are not empty categories.
	texts []arena.NodeID
}

// NewBuilder creates a Builder over an empty arena.
func NewBuilder() *Builder {
	return &Builder{tree: arena.New[string]()}
}

// Add inserts the value n under parent (arena.NoParent for the top level).
//
// Mapping keys become nodes in document order and their values are added beneath
// them. Text becomes a leaf, and its parent is recorded in the leaf-parent index.
// Any other value aborts with a *FormatError; the builder must then be discarded.
func (b *Builder) Add(n *yaml.Node, parent arena.NodeID) error {
	return b.add(n, parent, nil)
}

func (b *Builder) add(n *yaml.Node, parent arena.NodeID, path []string) error {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return formatError(n, path)
		}
		return b.add(n.Content[0], parent, path)

	case yaml.MappingNode:
		for i := 0; i+1 < len(n.Content); i += 2 {
			key, value := n.Content[i], n.Content[i+1]
			if key.Kind != yaml.ScalarNode {
				err := formatError(key, path)
				err.Kind = "non-text key (" + err.Kind + ")"
				return err
			}

			id, err := b.tree.AddNode(key.Value, parent)
			if err != nil {
				return fmt.Errorf("failed to add %q: %w", key.Value, err)
			}

			child := append(path[:len(path):len(path)], key.Value)
			if err := b.add(value, id, child); err != nil {
				return err
			}
		}
		return nil

	case yaml.ScalarNode:
		if !isText(n) {
			return formatError(n, path)
		}
		id, err := b.tree.AddNode(n.Value, parent)
		if err != nil {
			return fmt.Errorf("failed to add answer: %w", err)
		}
		// A top-level text document is a lone root and owns no answer.
		if parent == arena.NoParent {
			b.texts = append(b.texts, id)
		} else {
			b.leafParents = append(b.leafParents, parent)
		}
		return nil
	}

	return formatError(n, path)
}

// isText accepts strings and the plain dates YAML resolves to timestamps.
// The leaf keeps the source spelling, so "When?: 2024-01-01" answers "2024-01-01".
func isText(n *yaml.Node) bool {
	switch n.ShortTag() {
	case "!!str", "!!timestamp":
		return true
	}
	return false
}

// Navigator wraps what was built so far.
func (b *Builder) Navigator() *Navigator {
	nav := NewNavigator(b.tree, b.leafParents)
	nav.texts = b.texts
	return nav
}

// Build parses a document and returns its Navigator.
// On any error no tree is returned.
func Build(r io.Reader, format Format) (*Navigator, error) {
	doc, err := Parse(r, format)
	if err != nil {
		return nil, err
	}

	b := NewBuilder()
	if err := b.Add(doc, arena.NoParent); err != nil {
		return nil, err
	}
	return b.Navigator(), nil
}

// BuildFile opens path and builds its tree, guessing the format from the extension.
func BuildFile(path string) (*Navigator, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open document: %w", err)
	}
	defer f.Close()

	return Build(f, FormatFromPath(path))
}

func formatError(n *yaml.Node, path []string) *FormatError {
	return &FormatError{
		Path:   append([]string(nil), path...),
		Kind:   describe(n),
		Line:   n.Line,
		Column: n.Column,
	}
}

func describe(n *yaml.Node) string {
	switch n.Kind {
	case yaml.SequenceNode:
		return "list"
	case yaml.AliasNode:
		return "alias"
	case yaml.MappingNode:
		return "mapping"
	case yaml.DocumentNode:
		return "empty document"
	case yaml.ScalarNode:
		switch n.ShortTag() {
		case "!!int", "!!float":
			return "number"
		case "!!bool":
			return "boolean"
		case "!!null":
			return "null"
		default:
			return "scalar " + n.ShortTag()
		}
	}
	return "unknown value"
}
