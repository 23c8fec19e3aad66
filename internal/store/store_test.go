package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenClose(t *testing.T) {
	s := openTestStore(t)
	if s.DB() == nil {
		t.Fatal("expected non-nil database handle")
	}
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		{"journal_mode", "wal"},
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestMigrationCreatesTables(t *testing.T) {
	s := openTestStore(t)

	for _, table := range []string{kvTable, llmEventsTable, "event_sequence"} {
		var name string
		err := s.DB().QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&name)
		require.NoError(t, err, table)
		assert.Equal(t, table, name)
	}
}

func TestSQLiteKVRoundTrip(t *testing.T) {
	s := openTestStore(t)
	kv := s.KV(zaptest.NewLogger(t))
	ctx := context.Background()

	_, ok := kv.Get(ctx, "missing")
	assert.False(t, ok)

	kv.Set(ctx, "bank.questions", `{"a":1}`)
	got, ok := kv.Get(ctx, "bank.questions")
	require.True(t, ok)
	assert.Equal(t, `{"a":1}`, got)

	kv.Set(ctx, "bank.questions", `{"a":2}`)
	got, ok = kv.Get(ctx, "bank.questions")
	require.True(t, ok)
	assert.Equal(t, `{"a":2}`, got)

	kv.Remove(ctx, "bank.questions")
	_, ok = kv.Get(ctx, "bank.questions")
	assert.False(t, ok)
}

func TestSQLiteKVPersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "persist.db")
	ctx := context.Background()

	s, err := Open(path)
	require.NoError(t, err)
	s.KV(nil).Set(ctx, "progress.stats", "saved")
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()

	got, ok := s.KV(nil).Get(ctx, "progress.stats")
	require.True(t, ok)
	assert.Equal(t, "saved", got)
}

func TestSQLiteKVClosedStoreReportsAbsence(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "closed.db"))
	require.NoError(t, err)
	kv := s.KV(zaptest.NewLogger(t))
	require.NoError(t, s.Close())

	ctx := context.Background()
	kv.Set(ctx, "k", "v")
	_, ok := kv.Get(ctx, "k")
	assert.False(t, ok)
}

func TestMemoryKV(t *testing.T) {
	kv := NewMemoryKV()
	ctx := context.Background()

	kv.Set(ctx, "k", "v")
	got, ok := kv.Get(ctx, "k")
	require.True(t, ok)
	assert.Equal(t, "v", got)

	kv.Remove(ctx, "k")
	_, ok = kv.Get(ctx, "k")
	assert.False(t, ok)
}

func TestSequenceCounter(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	sc, err := newSequenceCounter(s.DB())
	if err != nil {
		t.Fatalf("new sequence counter: %v", err)
	}

	for i := 0; i < 5; i++ {
		seq, err := sc.Next(ctx)
		if err != nil {
			t.Fatalf("next %d: %v", i, err)
		}
		if want := int64(i + 1); seq != want {
			t.Errorf("seq[%d] = %d, want %d", i, seq, want)
		}
	}
}

func TestEventRepoAppendAndQuery(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	events := []LLMRequestEventData{
		{Provider: "anthropic", Model: "claude-haiku-4-5", Purpose: "question-gen", InputTokens: 100, OutputTokens: 50, LatencyMs: 200, Success: true, RequestBody: "req", ResponseBody: "resp"},
		{Provider: "anthropic", Model: "claude-haiku-4-5", Purpose: "question-gen", InputTokens: 300, OutputTokens: 150, LatencyMs: 400, Success: true},
		{Provider: "openai", Model: "gpt-4o-mini", Purpose: "explain", LatencyMs: 10, Success: false, ErrorMessage: "boom"},
	}
	for _, e := range events {
		require.NoError(t, repo.AppendLLMRequest(ctx, e))
	}

	all, err := repo.QueryLLMEvents(ctx, QueryOpts{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, int64(3), all[0].Sequence, "newest first")
	assert.Equal(t, "boom", all[0].ErrorMessage)
	assert.False(t, all[0].Success)
	assert.True(t, all[2].Success)

	limited, err := repo.QueryLLMEvents(ctx, QueryOpts{Limit: 1})
	require.NoError(t, err)
	assert.Len(t, limited, 1)

	filtered, err := repo.QueryLLMEvents(ctx, QueryOpts{Purpose: "question-gen"})
	require.NoError(t, err)
	assert.Len(t, filtered, 2)

	first, err := repo.GetLLMEvent(ctx, all[2].ID)
	require.NoError(t, err)
	require.NotNil(t, first)
	assert.Equal(t, "req", first.RequestBody)
	assert.Equal(t, "resp", first.ResponseBody)

	missing, err := repo.GetLLMEvent(ctx, 9999)
	require.NoError(t, err)
	assert.Nil(t, missing)

	byPurpose, err := repo.LLMUsageByPurpose(ctx)
	require.NoError(t, err)
	require.Len(t, byPurpose, 2)
	assert.Equal(t, "explain", byPurpose[0].Purpose)
	assert.Equal(t, "question-gen", byPurpose[1].Purpose)
	assert.Equal(t, 2, byPurpose[1].Calls)
	assert.Equal(t, 400, byPurpose[1].InputTokens)
	assert.Equal(t, int64(300), byPurpose[1].AvgLatencyMs)

	byModel, err := repo.LLMUsageByModel(ctx)
	require.NoError(t, err)
	require.Len(t, byModel, 2)
	assert.Equal(t, "claude-haiku-4-5", byModel[0].Model)
	assert.Equal(t, 200, byModel[0].OutputTokens)
}

func TestDefaultDBPathEnvOverride(t *testing.T) {
	p := filepath.Join(t.TempDir(), "nested", "custom.db")
	t.Setenv("NURSING_MCQ_DB", p)

	got, err := DefaultDBPath()
	require.NoError(t, err)
	assert.Equal(t, p, got)

	_, err = os.Stat(filepath.Dir(p))
	assert.NoError(t, err)
}

func TestDefaultDBPathXDG(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("NURSING_MCQ_DB", "")
	t.Setenv("XDG_DATA_HOME", dir)

	got, err := DefaultDBPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "nursing-mcq", "nursing-mcq.db"), got)
}
