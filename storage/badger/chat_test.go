package badger

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/hyphal/mycelia/core"
	"github.com/hyphal/mycelia/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepos(t *testing.T) (storage.ChatRepository, storage.CheckpointRepository) {
	t.Helper()
	chatRepo, checkpointRepo, backend, err := NewMemoryRepositories()
	require.NoError(t, err)
	t.Cleanup(func() {
		chatRepo.Close()
		checkpointRepo.Close()
		backend.Close()
	})
	return chatRepo, checkpointRepo
}

func TestAddMessages(t *testing.T) {
	repo, _ := newTestRepos(t)
	ctx := context.Background()
	now := time.Now().UTC()

	t.Run("assigns content-based ID and InsertedAt", func(t *testing.T) {
		msg := &core.ChatMessage{
			Role:      core.RoleUser,
			Content:   "What did I plant last spring?",
			Timestamp: now,
		}
		added, err := repo.AddMessages(ctx, msg)
		require.NoError(t, err)
		require.Len(t, added, 1)

		assert.Equal(t, core.MessageID(core.RoleUser, msg.Content, now), added[0].Id)
		assert.False(t, added[0].InsertedAt.IsZero())
	})

	t.Run("same role content and timestamp dedupes", func(t *testing.T) {
		ts := now.Add(time.Minute * -5)
		msg1 := &core.ChatMessage{Role: core.RoleUser, Content: "replayed", Timestamp: ts}
		msg2 := &core.ChatMessage{Role: core.RoleUser, Content: "replayed", Timestamp: ts}

		_, err := repo.AddMessages(ctx, msg1)
		require.NoError(t, err)
		_, err = repo.AddMessages(ctx, msg2)
		require.NoError(t, err)

		assert.Equal(t, msg1.Id, msg2.Id)

		got, err := repo.GetMessages(ctx, msg1.Id)
		require.NoError(t, err)
		assert.Len(t, got, 1)
	})

	t.Run("rejects invalid message", func(t *testing.T) {
		msg := &core.ChatMessage{Role: core.RoleUser, Content: "", Timestamp: now}
		_, err := repo.AddMessages(ctx, msg)
		assert.Error(t, err)
	})
}

func TestGetMessage(t *testing.T) {
	repo, _ := newTestRepos(t)
	ctx := context.Background()
	now := time.Now().UTC()

	msg := &core.ChatMessage{Role: core.RoleAssistant, Content: "Noted.", Timestamp: now}
	_, err := repo.AddMessages(ctx, msg)
	require.NoError(t, err)

	t.Run("found", func(t *testing.T) {
		got, err := repo.GetMessage(ctx, msg.Id)
		require.NoError(t, err)
		assert.Equal(t, msg.Content, got.Content)
		assert.Equal(t, core.RoleAssistant, got.Role)
	})

	t.Run("not found", func(t *testing.T) {
		_, err := repo.GetMessage(ctx, core.ID(12345))
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})
}

func TestGetMessages_SkipsMissing(t *testing.T) {
	repo, _ := newTestRepos(t)
	ctx := context.Background()
	now := time.Now().UTC()

	msg := &core.ChatMessage{Role: core.RoleUser, Content: "only one", Timestamp: now}
	_, err := repo.AddMessages(ctx, msg)
	require.NoError(t, err)

	got, err := repo.GetMessages(ctx, msg.Id, core.ID(99999))
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestRecentMessages(t *testing.T) {
	repo, _ := newTestRepos(t)
	ctx := context.Background()
	base := time.Now().UTC().Add(-time.Hour)

	for i := 0; i < 10; i++ {
		msg := &core.ChatMessage{
			Role:      core.RoleUser,
			Content:   fmt.Sprintf("message %d", i),
			Timestamp: base.Add(time.Duration(i) * time.Minute),
		}
		_, err := repo.AddMessages(ctx, msg)
		require.NoError(t, err)
	}

	t.Run("most recent first", func(t *testing.T) {
		got, err := repo.RecentMessages(ctx, 3)
		require.NoError(t, err)
		require.Len(t, got, 3)
		assert.Equal(t, "message 9", got[0].Content)
		assert.Equal(t, "message 8", got[1].Content)
		assert.Equal(t, "message 7", got[2].Content)
	})

	t.Run("limit larger than store", func(t *testing.T) {
		got, err := repo.RecentMessages(ctx, 100)
		require.NoError(t, err)
		assert.Len(t, got, 10)
	})

	t.Run("invalid limit", func(t *testing.T) {
		_, err := repo.RecentMessages(ctx, 0)
		assert.ErrorIs(t, err, storage.ErrInvalidQuery)
	})
}

func TestMessagesByDateRange(t *testing.T) {
	repo, _ := newTestRepos(t)
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 5; i++ {
		msg := &core.ChatMessage{
			Role:      core.RoleUser,
			Content:   fmt.Sprintf("day %d", i),
			Timestamp: base.AddDate(0, 0, i),
		}
		_, err := repo.AddMessages(ctx, msg)
		require.NoError(t, err)
	}

	t.Run("half-open window", func(t *testing.T) {
		got, err := repo.MessagesByDateRange(ctx, base.AddDate(0, 0, 1), base.AddDate(0, 0, 3))
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "day 1", got[0].Content)
		assert.Equal(t, "day 2", got[1].Content)
	})

	t.Run("empty window", func(t *testing.T) {
		got, err := repo.MessagesByDateRange(ctx, base.AddDate(0, 1, 0), base.AddDate(0, 2, 0))
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}
