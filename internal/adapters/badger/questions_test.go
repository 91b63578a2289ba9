package badger_test

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/deeds/internal/adapters/badger"
	"github.com/aretw0/deeds/pkg/domain"
	"github.com/aretw0/deeds/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ ports.QuestionStore = (*badger.QuestionStore)(nil)

func TestBadgerQuestionStore_Contract(t *testing.T) {
	store, err := badger.Open("", nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	ports.RunQuestionStoreContract(t, store)
}

func TestBadgerQuestionStore_PersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	store, err := badger.Open(dir, nil)
	require.NoError(t, err)
	for _, text := range []string{"first", "second"} {
		_, err := store.Save(ctx, domain.Question{Text: text, CreatedAt: time.Now()})
		require.NoError(t, err)
	}
	require.NoError(t, store.Close())

	store, err = badger.Open(dir, nil)
	require.NoError(t, err)
	defer store.Close()

	id, err := store.Save(ctx, domain.Question{Text: "third"})
	require.NoError(t, err)
	assert.Equal(t, int64(3), id)

	list, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []string{"first", "second", "third"}, []string{list[0].Text, list[1].Text, list[2].Text})
}

func TestBadgerQuestionStore_CanceledContext(t *testing.T) {
	store, err := badger.Open("", nil)
	require.NoError(t, err)
	defer store.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = store.Save(ctx, domain.Question{Text: "late"})
	assert.ErrorIs(t, err, context.Canceled)
}
