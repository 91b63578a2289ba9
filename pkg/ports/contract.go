package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/deeds/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunSessionStoreContract runs a suite of tests to verify that a SessionStore implementation
// adheres to the defined interface contract.
func RunSessionStoreContract(t *testing.T, store SessionStore) {
	ctx := context.Background()
	sessionID := "contract-test-session-" + time.Now().Format("20060102150405")

	t.Run("Save and Load", func(t *testing.T) {
		session := domain.NewSession(sessionID)
		session.UserID = 42
		session.Category = "Billing"
		session.PendingQuestion = "Can I pay in cash?"
		session.Turns = 3

		err := store.Save(ctx, session)
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, sessionID)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, sessionID, loaded.ID)
		assert.Equal(t, int64(42), loaded.UserID)
		assert.Equal(t, "Billing", loaded.Category)
		assert.Equal(t, "Can I pay in cash?", loaded.PendingQuestion)
		assert.Equal(t, 3, loaded.Turns)
		assert.WithinDuration(t, session.CreatedAt, loaded.CreatedAt, time.Second)
	})

	t.Run("Loaded copies are isolated", func(t *testing.T) {
		loaded, err := store.Load(ctx, sessionID)
		require.NoError(t, err)
		loaded.Category = "mutated"

		again, err := store.Load(ctx, sessionID)
		require.NoError(t, err)
		assert.Equal(t, "Billing", again.Category)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+sessionID)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		err := store.Save(ctx, domain.NewSession(sessionID))
		require.NoError(t, err)

		err = store.Delete(ctx, sessionID)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Load(ctx, sessionID)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound, "Load after Delete should return ErrSessionNotFound")

		assert.NoError(t, store.Delete(ctx, sessionID), "deleting twice is not an error")
	})

	t.Run("List", func(t *testing.T) {
		id1 := sessionID + "-1"
		id2 := sessionID + "-2"
		_ = store.Save(ctx, domain.NewSession(id1))
		_ = store.Save(ctx, domain.NewSession(id2))

		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		sessions, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, sessions, id1)
		assert.Contains(t, sessions, id2)
	})
}

// RunQuestionStoreContract verifies a QuestionStore implementation. The store must be empty.
func RunQuestionStoreContract(t *testing.T, store QuestionStore) {
	ctx := context.Background()

	t.Run("Empty", func(t *testing.T) {
		n, err := store.Count(ctx)
		require.NoError(t, err)
		assert.Zero(t, n)

		list, err := store.List(ctx)
		require.NoError(t, err)
		assert.Empty(t, list)
	})

	t.Run("Save assigns increasing IDs", func(t *testing.T) {
		texts := []string{"Do you ship abroad?", "Is there a student discount?", "Do you ship abroad?"}

		var last int64
		for i, text := range texts {
			id, err := store.Save(ctx, domain.Question{
				SessionID: "chat-1",
				UserID:    int64(100 + i),
				Text:      text,
				CreatedAt: time.Now().UTC(),
			})
			require.NoError(t, err)
			assert.Greater(t, id, last)
			last = id
		}

		n, err := store.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, len(texts), n)
	})

	t.Run("List is oldest first", func(t *testing.T) {
		list, err := store.List(ctx)
		require.NoError(t, err)
		require.Len(t, list, 3)

		assert.Equal(t, "Do you ship abroad?", list[0].Text)
		assert.Equal(t, "Is there a student discount?", list[1].Text)
		assert.Equal(t, "Do you ship abroad?", list[2].Text, "duplicates are kept")
		assert.Equal(t, int64(101), list[1].UserID)
		assert.Equal(t, "chat-1", list[1].SessionID)
		assert.Less(t, list[0].ID, list[1].ID)
		assert.Less(t, list[1].ID, list[2].ID)
		assert.False(t, list[0].CreatedAt.IsZero())
	})
}
