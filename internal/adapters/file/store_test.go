package file_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aretw0/deeds/internal/adapters/file"
	"github.com/aretw0/deeds/pkg/domain"
	"github.com/aretw0/deeds/pkg/ports"
	contract "github.com/aretw0/deeds/pkg/ports/tests"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	_ ports.SessionStore   = (*file.Store)(nil)
	_ ports.QuestionStore  = (*file.QuestionStore)(nil)
	_ ports.DocumentSource = (*file.Source)(nil)
	_ ports.Watchable      = (*file.Source)(nil)
)

func TestFileStore_Contract(t *testing.T) {
	ports.RunSessionStoreContract(t, file.New(t.TempDir()))
}

func TestFileStore_RejectsUnsafeIDs(t *testing.T) {
	store := file.New(t.TempDir())
	ctx := context.Background()

	for _, id := range []string{"", "../escape", `a\b`, ".."} {
		assert.Error(t, store.Save(ctx, &domain.Session{ID: id}), id)
		_, err := store.Load(ctx, id)
		assert.Error(t, err, id)
	}
}

func TestFileStore_SaveLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	store := file.New(dir)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		s := domain.NewSession("chat")
		s.Turns = i
		require.NoError(t, store.Save(ctx, s))
	}

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "chat.json", entries[0].Name())

	loaded, err := store.Load(ctx, "chat")
	require.NoError(t, err)
	assert.Equal(t, 2, loaded.Turns)
}

func TestFileStore_ListMissingDir(t *testing.T) {
	store := file.New(filepath.Join(t.TempDir(), "not-yet"))
	ids, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestQuestionStore_Contract(t *testing.T) {
	ports.RunQuestionStoreContract(t, file.NewQuestionStore(filepath.Join(t.TempDir(), "q", "questions.jsonl")))
}

func TestQuestionStore_ResumesIDsAcrossInstances(t *testing.T) {
	path := filepath.Join(t.TempDir(), "questions.jsonl")
	ctx := context.Background()

	first := file.NewQuestionStore(path)
	id, err := first.Save(ctx, domain.Question{Text: "one", CreatedAt: time.Now()})
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)

	second := file.NewQuestionStore(path)
	id, err = second.Save(ctx, domain.Question{Text: "two", CreatedAt: time.Now()})
	require.NoError(t, err)
	assert.Equal(t, int64(2), id)

	list, err := second.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "one", list[0].Text)
}

func TestQuestionStore_CorruptLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "questions.jsonl")
	require.NoError(t, os.WriteFile(path, []byte("{\"id\":1,\"question\":\"ok\"}\nnot json\n"), 0o644))

	_, err := file.NewQuestionStore(path).List(context.Background())
	assert.ErrorContains(t, err, "line 2")
}

func TestSource_Contract(t *testing.T) {
	doc := []byte("Shop:\n  Opening hours?: Nine to five.\n")
	path := filepath.Join(t.TempDir(), "faq.yaml")
	require.NoError(t, os.WriteFile(path, doc, 0o644))

	contract.DocumentSourceContractTest(t, file.NewSource(path), doc)
}

func TestSource_ReadMissing(t *testing.T) {
	_, err := file.NewSource(filepath.Join(t.TempDir(), "nope.json")).Read(context.Background())
	assert.Error(t, err)
}

func TestSource_WatchCoalescesWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "faq.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"A": {"Q": "x"}}`), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	src := file.NewSource(path)
	src.Debounce = 50 * time.Millisecond
	ch, err := src.Watch(ctx)
	require.NoError(t, err)

	// Unrelated files in the same directory are ignored.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.txt"), []byte("noise"), 0o644))
	for i := 0; i < 3; i++ {
		require.NoError(t, os.WriteFile(path, []byte(`{"A": {"Q": "y"}}`), 0o644))
	}

	select {
	case _, ok := <-ch:
		require.True(t, ok)
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for change signal")
	}

	cancel()
	assert.Eventually(t, func() bool {
		select {
		case _, ok := <-ch:
			return !ok
		default:
			return false
		}
	}, 2*time.Second, 10*time.Millisecond)
}
