package tests

import (
	"bytes"
	"context"
	"testing"

	"github.com/aretw0/deeds/pkg/ports"
	"github.com/aretw0/deeds/pkg/tree"
)

// DocumentSourceContractTest is a reusable test suite that verifies if an adapter complies with ports.DocumentSource.
// The source must hold want, a valid Q&A document.
func DocumentSourceContractTest(t *testing.T, src ports.DocumentSource, want []byte) {
	t.Helper()
	ctx := context.Background()

	t.Run("Read", func(t *testing.T) {
		got, err := src.Read(ctx)
		if err != nil {
			t.Fatalf("unexpected error reading document: %v", err)
		}
		if string(got) != string(want) {
			t.Errorf("content mismatch. got %q, want %q", got, want)
		}
	})

	t.Run("Returned bytes are not shared", func(t *testing.T) {
		first, err := src.Read(ctx)
		if err != nil {
			t.Fatalf("unexpected error reading document: %v", err)
		}
		if len(first) > 0 {
			first[0] ^= 0xff
		}
		second, err := src.Read(ctx)
		if err != nil {
			t.Fatalf("unexpected error reading document: %v", err)
		}
		if string(second) != string(want) {
			t.Errorf("second read differs: got %q", second)
		}
	})

	t.Run("Builds", func(t *testing.T) {
		data, err := src.Read(ctx)
		if err != nil {
			t.Fatalf("unexpected error reading document: %v", err)
		}
		nav, err := tree.Build(bytes.NewReader(data), src.Format())
		if err != nil {
			t.Fatalf("document does not build with format %s: %v", src.Format(), err)
		}
		if nav.Len() == 0 {
			t.Error("expected a non-empty tree")
		}
	})
}
