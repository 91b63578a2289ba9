package cli

import (
	"fmt"
	"io"

	"github.com/aretw0/deeds/pkg/arena"
	"github.com/aretw0/deeds/pkg/tree"
)

// Report summarises a document.
type Report struct {
	Nodes      int      `json:"nodes"`
	Categories int      `json:"categories"`
	Questions  int      `json:"questions"`
	Answers    int      `json:"answers"`
	Depth      int      `json:"depth"`
	Empty      []string `json:"empty_categories,omitempty"`
}

// Validate builds the document at path and reports its shape. Categories
// without children, top-level ones included, are reported but do not fail
// validation. Questions are counted per node, so a label reused in two
// categories counts twice.
func Validate(path string) (*Report, error) {
	nav, err := tree.BuildFile(path)
	if err != nil {
		return nil, err
	}

	r := &Report{Nodes: nav.Len()}
	questions := make(map[arena.NodeID]bool)
	for _, e := range nav.Entries() {
		if e.Depth > r.Depth {
			r.Depth = e.Depth
		}
		if e.Answer {
			r.Answers++
			questions[e.Parent] = true
		}
	}
	r.Questions = len(questions)
	r.Categories = r.Nodes - r.Answers - r.Questions

	empty, err := nav.EmptyCategories()
	if err != nil {
		return nil, err
	}
	r.Empty = empty
	return r, nil
}

// Print writes the report for humans.
func (r *Report) Print(w io.Writer) {
	fmt.Fprintf(w, "Nodes:      %d\n", r.Nodes)
	fmt.Fprintf(w, "Categories: %d\n", r.Categories)
	fmt.Fprintf(w, "Questions:  %d\n", r.Questions)
	fmt.Fprintf(w, "Answers:    %d\n", r.Answers)
	fmt.Fprintf(w, "Depth:      %d\n", r.Depth)
	for _, label := range r.Empty {
		fmt.Fprintf(w, "warning: category %q has no entries\n", label)
	}
}
