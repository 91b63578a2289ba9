package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/deeds/pkg/arena"
	"github.com/aretw0/deeds/pkg/tree"
)

// MaxLabel is the number of runes kept from a label before it is truncated.
const MaxLabel = 40

// GraphOverlay contains session data to visualize on the graph.
type GraphOverlay struct {
	// Category is the label the session is currently browsing.
	Category string
}

// GenerateMermaid produces a Mermaid flowchart from the tree entries.
// It applies semantic styling:
// - Root: ((Circle))
// - Question owning an answer: [/Parallelogram/]
// - Answer: (Rounded)
// - Category: [Rectangle]
// With an overlay the current category is highlighted and the path from the
// root to it is marked visited.
func GenerateMermaid(entries []tree.Entry, overlay *GraphOverlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	questions := make(map[arena.NodeID]bool)
	for _, e := range entries {
		if e.Answer {
			questions[e.Parent] = true
		}
	}

	for _, e := range entries {
		opener, closer := "[", "]"
		switch {
		case e.Parent == arena.NoParent:
			opener, closer = "((", "))"
		case e.Answer:
			opener, closer = "(", ")"
		case questions[e.ID]:
			opener, closer = "[/", "/]"
		}
		sb.WriteString(fmt.Sprintf("    %s%s\"%s\"%s\n", nodeID(e.ID), opener, escape(e.Label), closer))

		if e.Parent != arena.NoParent {
			sb.WriteString(fmt.Sprintf("    %s --> %s\n", nodeID(e.Parent), nodeID(e.ID)))
		}
	}

	if overlay != nil && overlay.Category != "" {
		writeOverlay(&sb, entries, overlay.Category)
	}
	return sb.String()
}

func writeOverlay(sb *strings.Builder, entries []tree.Entry, category string) {
	byID := make(map[arena.NodeID]tree.Entry, len(entries))
	current := arena.NoParent
	for _, e := range entries {
		byID[e.ID] = e
		if current == arena.NoParent && e.Label == category {
			current = e.ID
		}
	}
	if current == arena.NoParent {
		return
	}

	sb.WriteString("\n    %% Overlay Styles\n")
	// Force black text (color:#000) for contrast on either theme.
	sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
	sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

	for id := byID[current].Parent; id != arena.NoParent; id = byID[id].Parent {
		sb.WriteString(fmt.Sprintf("    class %s visited;\n", nodeID(id)))
	}
	sb.WriteString(fmt.Sprintf("    class %s current;\n", nodeID(current)))
}

func nodeID(id arena.NodeID) string {
	return fmt.Sprintf("n%d", id)
}

// escape keeps labels inside a quoted Mermaid string.
func escape(label string) string {
	if r := []rune(label); len(r) > MaxLabel {
		label = string(r[:MaxLabel-1]) + "…"
	}
	label = strings.ReplaceAll(label, "\"", "#quot;")
	return strings.ReplaceAll(label, "\n", " ")
}
