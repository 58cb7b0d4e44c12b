package storage

import (
	"context"
	"time"

	"github.com/hyphal/mycelia/core"
)

// ChatRepository provides operations for managing chat messages.
// Implementations must be thread-safe and support concurrent access.
type ChatRepository interface {
	// AddMessages adds one or more chat messages to storage.
	// For messages with ID=0, derives a content-based ID.
	// Sets InsertedAt timestamp if not already set.
	// Returns the messages with IDs and timestamps populated.
	AddMessages(ctx context.Context, messages ...*core.ChatMessage) ([]*core.ChatMessage, error)

	// GetMessage retrieves a single chat message by ID.
	// Returns ErrNotFound if the message doesn't exist.
	GetMessage(ctx context.Context, id core.ID) (*core.ChatMessage, error)

	// GetMessages retrieves multiple chat messages by their IDs.
	// Returns only the messages that exist (no error for missing messages).
	GetMessages(ctx context.Context, ids ...core.ID) ([]*core.ChatMessage, error)

	// RecentMessages retrieves the N most recent chat messages, ordered by
	// timestamp descending. Returns up to limit messages, most recent first.
	RecentMessages(ctx context.Context, limit int) ([]*core.ChatMessage, error)

	// MessagesByDateRange retrieves chat messages within a time range.
	// Returns messages where start <= Timestamp < end, ordered by timestamp.
	MessagesByDateRange(ctx context.Context, start, end time.Time) ([]*core.ChatMessage, error)

	// Close closes the storage backend and releases resources.
	Close() error
}

// CheckpointRepository tracks per-processor progress through the chat log.
type CheckpointRepository interface {
	// SaveCheckpoint stores the checkpoint for its processor, replacing any
	// previous checkpoint. Sets UpdatedAt.
	SaveCheckpoint(ctx context.Context, checkpoint *core.Checkpoint) error

	// LoadCheckpoint retrieves the checkpoint for a processor.
	// Returns (nil, nil) when no checkpoint has been saved yet.
	LoadCheckpoint(ctx context.Context, processor string) (*core.Checkpoint, error)

	// Close closes the storage backend and releases resources.
	Close() error
}
