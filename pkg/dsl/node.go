package dsl

import "gopkg.in/yaml.v3"

// NodeBuilder provides a fluent API for filling a category.
type NodeBuilder struct {
	label    string
	answer   string
	question bool
	children []*NodeBuilder
}

// Category adds a sub-category and returns its builder.
// If the category already exists, it returns the existing builder.
func (n *NodeBuilder) Category(label string) *NodeBuilder {
	if c := n.child(label); c != nil && !c.question {
		return c
	}
	c := &NodeBuilder{label: label}
	n.replace(c)
	return c
}

// Question adds a question owning answer and returns the category for chaining.
// Adding the same question twice keeps the last answer.
func (n *NodeBuilder) Question(label, answer string) *NodeBuilder {
	n.replace(&NodeBuilder{label: label, answer: answer, question: true})
	return n
}

// Label returns the label of the category.
func (n *NodeBuilder) Label() string {
	return n.label
}

func (n *NodeBuilder) child(label string) *NodeBuilder {
	for _, c := range n.children {
		if c.label == label {
			return c
		}
	}
	return nil
}

// replace swaps a sibling with the same label in place, keeping document order.
func (n *NodeBuilder) replace(c *NodeBuilder) {
	for i, old := range n.children {
		if old.label == c.label {
			n.children[i] = c
			return
		}
	}
	n.children = append(n.children, c)
}

func (n *NodeBuilder) node() *yaml.Node {
	if n.question {
		return str(n.answer)
	}
	m := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, c := range n.children {
		m.Content = append(m.Content, str(c.label), c.node())
	}
	return m
}

func str(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
}
