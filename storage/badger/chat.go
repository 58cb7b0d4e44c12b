package badger

import (
	"context"
	"slices"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/hyphal/mycelia/core"
	"github.com/hyphal/mycelia/storage"
)

// ChatRepository implements storage.ChatRepository for BadgerDB.
type ChatRepository struct {
	backend *Backend
}

var _ storage.ChatRepository = (*ChatRepository)(nil)

// NewChatRepository creates a new ChatRepository.
func NewChatRepository(backend *Backend) *ChatRepository {
	return &ChatRepository{
		backend: backend,
	}
}

// Close is a no-op; the shared backend is closed by its owner.
func (r *ChatRepository) Close() error {
	return nil
}

// AddMessages adds one or more chat messages to storage.
// Messages with Id=0 get a content-based ID derived from role,
// content, and timestamp, so replayed transcripts dedupe naturally.
func (r *ChatRepository) AddMessages(ctx context.Context, messages ...*core.ChatMessage) ([]*core.ChatMessage, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, message := range messages {
			if err := core.ValidateChatMessage(message); err != nil {
				return err
			}

			if message.Id == 0 {
				message.Id = core.MessageID(message.Role, message.Content, message.Timestamp)
			}
			if message.InsertedAt.IsZero() {
				message.InsertedAt = time.Now().UTC()
			}

			// Store primary record
			key := makeChatMessageKey(message.Id)
			value := storage.MarshalChatMessage(message)
			if err := tx.Set(key, value); err != nil {
				return err
			}

			// Update date index
			dateKey := makeChatDateKey(message.Timestamp, message.Id)
			if err := tx.Set(dateKey, storage.MarshalID(message.Id)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)

	return messages, err
}

// GetMessage retrieves a single chat message by ID.
func (r *ChatRepository) GetMessage(ctx context.Context, id core.ID) (*core.ChatMessage, error) {
	var result *core.ChatMessage
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeChatMessageKey(id)
		var err error
		result, err = r.readChatMessage(tx, key)
		if err != nil {
			return err
		}
		if result == nil {
			return storage.ErrNotFound
		}
		return nil
	}, false)
	return result, err
}

// GetMessages retrieves multiple chat messages by their IDs.
func (r *ChatRepository) GetMessages(ctx context.Context, ids ...core.ID) ([]*core.ChatMessage, error) {
	var result []*core.ChatMessage
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			key := makeChatMessageKey(id)
			message, err := r.readChatMessage(tx, key)
			if err != nil {
				return err
			}
			if message != nil {
				result = append(result, message)
			}
		}
		return nil
	}, false)
	return result, err
}

// RecentMessages retrieves the N most recent chat messages, ordered by
// timestamp descending.
func (r *ChatRepository) RecentMessages(ctx context.Context, limit int) ([]*core.ChatMessage, error) {
	if limit <= 0 {
		return nil, storage.ErrInvalidQuery
	}

	var results []*core.ChatMessage
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		// Reverse iterator over the date index, most recent first
		opts := badger.DefaultIteratorOptions
		opts.Reverse = true

		iter := tx.NewIterator(opts)
		defer iter.Close()

		// Seek to the last possible key with the date prefix
		startKey := makePartialChatDateKey(time.Date(9999, 12, 31, 23, 59, 59, 999999999, time.UTC))

		prefix := []byte(chatMessageDatePrefix + ":")

		count := 0
		for iter.Seek(startKey); iter.Valid() && count < limit; iter.Next() {
			key := iter.Item().Key()

			// Check if we're still in the chat date index
			if len(key) < len(prefix) || slices.Compare(key[:len(prefix)], prefix) != 0 {
				break
			}

			// Read the ID from the index
			var messageID core.ID
			if err := iter.Item().Value(func(val []byte) error {
				var err error
				messageID, err = storage.UnmarshalID(val)
				return err
			}); err != nil {
				return err
			}

			// Look up the full record
			messageKey := makeChatMessageKey(messageID)
			message, err := r.readChatMessage(tx, messageKey)
			if err != nil {
				return err
			}
			if message != nil {
				results = append(results, message)
				count++
			}
		}
		return nil
	}, false)

	return results, err
}

// MessagesByDateRange retrieves chat messages within a time range,
// ordered by timestamp ascending.
func (r *ChatRepository) MessagesByDateRange(ctx context.Context, start, end time.Time) ([]*core.ChatMessage, error) {
	if start.Equal(end) {
		end = start.Add(1 * time.Microsecond)
	}

	var results []*core.ChatMessage
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		startKey := makePartialChatDateKey(start)
		endKey := makePartialChatDateKey(end)
		iter := tx.NewIterator(badger.DefaultIteratorOptions)
		defer iter.Close()

		for iter.Seek(startKey); iter.Valid(); iter.Next() {
			key := iter.Item().Key()
			if slices.Compare(key, endKey) > 0 {
				break
			}

			// Read the ID from the index
			var messageID core.ID
			if err := iter.Item().Value(func(val []byte) error {
				var err error
				messageID, err = storage.UnmarshalID(val)
				return err
			}); err != nil {
				return err
			}

			// Look up the full record
			messageKey := makeChatMessageKey(messageID)
			message, err := r.readChatMessage(tx, messageKey)
			if err != nil {
				return err
			}
			if message != nil {
				results = append(results, message)
			}
		}
		return nil
	}, false)

	return results, err
}

// readChatMessage reads a chat message from the transaction.
func (r *ChatRepository) readChatMessage(tx *badger.Txn, key []byte) (*core.ChatMessage, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var message *core.ChatMessage
	err = item.Value(func(val []byte) error {
		var unmarshalErr error
		message, unmarshalErr = storage.UnmarshalChatMessage(val)
		return unmarshalErr
	})
	return message, err
}
