package sqlite_test

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/aretw0/deeds/internal/adapters/sqlite"
	"github.com/aretw0/deeds/pkg/domain"
	"github.com/aretw0/deeds/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ ports.QuestionStore = (*sqlite.QuestionStore)(nil)

func TestSQLiteQuestionStore_Contract(t *testing.T) {
	store, err := sqlite.Open(filepath.Join(t.TempDir(), "questions.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	ports.RunQuestionStoreContract(t, store)
}

func TestSQLiteQuestionStore_Schema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "questions.db")
	store, err := sqlite.Open(path)
	require.NoError(t, err)

	created := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	_, err = store.Save(context.Background(), domain.Question{
		SessionID: "tg-7",
		UserID:    7,
		Text:      "Do you deliver on Sundays?",
		CreatedAt: created,
	})
	require.NoError(t, err)
	require.NoError(t, store.Close())

	// The table is readable by plain SQL tooling.
	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer db.Close()

	var (
		userID   int64
		question string
		at       string
	)
	err = db.QueryRow("SELECT user_id, question, created_at FROM questions WHERE id = 1").Scan(&userID, &question, &at)
	require.NoError(t, err)
	assert.Equal(t, int64(7), userID)
	assert.Equal(t, "Do you deliver on Sundays?", question)
	assert.Equal(t, "2024-03-01T12:00:00Z", at)

	reopened, err := sqlite.Open(path)
	require.NoError(t, err)
	defer reopened.Close()

	list, err := reopened.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.True(t, created.Equal(list[0].CreatedAt))
}
