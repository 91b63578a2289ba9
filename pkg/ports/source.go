package ports

import (
	"context"

	"github.com/aretw0/deeds/pkg/tree"
)

// DocumentSource defines where the Q&A document comes from.
// This allows the storage layer (file, memory) to be decoupled from the builder.
type DocumentSource interface {
	// Read returns the whole document.
	Read(ctx context.Context) ([]byte, error)

	// Format reports the document syntax, or tree.FormatAuto to sniff it.
	Format() tree.Format
}

// Watchable defines an interface for sources that can notify about backend changes.
// This is typically used for hot-reload of the document.
type Watchable interface {
	// Watch returns a channel that is signaled when the underlying document changes.
	// It abstracts away the specific event details, signaling only that a reload is required.
	Watch(ctx context.Context) (<-chan struct{}, error)
}
