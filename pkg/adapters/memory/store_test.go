package memory_test

import (
	"testing"

	"github.com/aretw0/deeds/pkg/adapters/memory"
	"github.com/aretw0/deeds/pkg/ports"
)

func TestMemoryStore_Contract(t *testing.T) {
	store := memory.NewStore()
	ports.RunSessionStoreContract(t, store)
}

func TestMemoryQuestionStore_Contract(t *testing.T) {
	ports.RunQuestionStoreContract(t, memory.NewQuestionStore())
}
