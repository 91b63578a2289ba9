package dsl

import (
	"fmt"

	"github.com/aretw0/deeds/pkg/adapters/memory"
	"github.com/aretw0/deeds/pkg/arena"
	"github.com/aretw0/deeds/pkg/tree"
	"gopkg.in/yaml.v3"
)

// Builder manages the document construction. It is the root category.
type Builder struct {
	*NodeBuilder
}

// New creates a new document builder whose root carries label.
func New(label string) *Builder {
	return &Builder{NodeBuilder: &NodeBuilder{label: label}}
}

// Node returns the document as a YAML node tree.
func (b *Builder) Node() *yaml.Node {
	return &yaml.Node{
		Kind: yaml.DocumentNode,
		Content: []*yaml.Node{{
			Kind:    yaml.MappingNode,
			Tag:     "!!map",
			Content: []*yaml.Node{str(b.label), b.NodeBuilder.node()},
		}},
	}
}

// YAML encodes the document.
func (b *Builder) YAML() ([]byte, error) {
	data, err := yaml.Marshal(b.Node())
	if err != nil {
		return nil, fmt.Errorf("failed to encode document: %w", err)
	}
	return data, nil
}

// Build compiles the document into a Navigator.
func (b *Builder) Build() (*tree.Navigator, error) {
	tb := tree.NewBuilder()
	if err := tb.Add(b.Node(), arena.NoParent); err != nil {
		return nil, fmt.Errorf("failed to build tree: %w", err)
	}
	return tb.Navigator(), nil
}

// Source returns the document as an in-memory source for deeds.WithSource.
func (b *Builder) Source() (*memory.Source, error) {
	data, err := b.YAML()
	if err != nil {
		return nil, err
	}
	return memory.NewSourceWithFormat(data, tree.FormatYAML), nil
}
