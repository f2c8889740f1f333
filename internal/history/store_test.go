// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package history

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpen_CreatesParentDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "deeper", "history.db")
	s, err := Open(path)
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.Record(context.Background(), Entry{
		CodeHint: "Code civil", ArticleHint: "1382", Outcome: "resolved",
	}))
}

func TestRecordAndRecent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Record(ctx, Entry{
		CodeHint:    "Code du travail",
		ArticleHint: "L1221-1",
		DateHint:    "2024-01-01",
		Outcome:     "resolved",
		LegiartiID:  "LEGIARTI000006900783",
	}))
	require.NoError(t, s.Record(ctx, Entry{
		CodeHint:    "Code civil",
		ArticleHint: "9999-99",
		Outcome:     "not_found",
		Message:     "no article found",
	}))

	entries, err := s.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	// Newest first.
	assert.Equal(t, "not_found", entries[0].Outcome)
	assert.Equal(t, "no article found", entries[0].Message)
	assert.Equal(t, "resolved", entries[1].Outcome)
	assert.Equal(t, "LEGIARTI000006900783", entries[1].LegiartiID)
	assert.Equal(t, "2024-01-01", entries[1].DateHint)
	assert.False(t, entries[0].CreatedAt.IsZero())
}

func TestRecent_Limit(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		require.NoError(t, s.Record(ctx, Entry{
			CodeHint:    "Code civil",
			ArticleHint: fmt.Sprintf("138%d", i),
			Outcome:     "resolved",
		}))
	}

	entries, err := s.Recent(ctx, 3)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "1384", entries[0].ArticleHint)

	// A non-positive limit falls back to the default window.
	all, err := s.Recent(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, all, 5)
}

func TestRecent_Empty(t *testing.T) {
	s := newTestStore(t)
	entries, err := s.Recent(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
