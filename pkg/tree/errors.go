package tree

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrFormat is returned when the document holds a value that is neither a mapping
	// nor text where a tree node is expected. It is fatal for the build.
	ErrFormat = errors.New("invalid document format")

	// ErrUnknownLabel is returned by label-keyed queries that match no node.
	ErrUnknownLabel = errors.New("unknown label")
)

// FormatError describes where the document broke the expected shape.
type FormatError struct {
	// Path holds the labels leading to the offending value.
	Path []string
	// Kind is a short name of the value found (number, list, null...).
	Kind string
	// Line and Column are 1-based; zero when the parser does not track them.
	Line   int
	Column int
}

func (e *FormatError) Error() string {
	var b strings.Builder
	b.WriteString(ErrFormat.Error())
	if len(e.Path) > 0 {
		fmt.Fprintf(&b, " at %q", strings.Join(e.Path, " > "))
	}
	if e.Line > 0 {
		fmt.Fprintf(&b, " (line %d, column %d)", e.Line, e.Column)
	}
	fmt.Fprintf(&b, ": expected mapping or text, found %s", e.Kind)
	return b.String()
}

func (e *FormatError) Unwrap() error { return ErrFormat }

// IndexError carries the label a query could not resolve.
type IndexError struct {
	Label string
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("no tree node with label %q", e.Label)
}

func (e *IndexError) Unwrap() error { return ErrUnknownLabel }
