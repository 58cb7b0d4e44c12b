package storage

import (
	"testing"
	"time"

	"github.com/hyphal/mycelia/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalUnmarshalID(t *testing.T) {
	tests := []struct {
		name string
		id   core.ID
	}{
		{"zero ID", core.ID(0)},
		{"small ID", core.ID(42)},
		{"large ID", core.ID(18446744073709551615)}, // max uint64
		{"content-based ID", core.IDFromContent("test content")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := MarshalID(tt.id)
			require.NotNil(t, data)
			require.NotEmpty(t, data)

			decoded, err := UnmarshalID(data)
			require.NoError(t, err)
			assert.Equal(t, tt.id, decoded)
		})
	}
}

func TestUnmarshalID_Invalid(t *testing.T) {
	_, err := UnmarshalID([]byte{})
	assert.Error(t, err)
}

func TestMarshalUnmarshalChatMessage(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Microsecond)

	tests := []struct {
		name    string
		message *core.ChatMessage
	}{
		{
			name: "user message",
			message: &core.ChatMessage{
				Id:         core.ID(1),
				Role:       core.RoleUser,
				Content:    "Hello",
				Timestamp:  now,
				InsertedAt: now,
			},
		},
		{
			name: "assistant message",
			message: &core.ChatMessage{
				Id:         core.ID(2),
				Role:       core.RoleAssistant,
				Content:    "I understand.",
				Timestamp:  now,
				InsertedAt: now,
			},
		},
		{
			name: "unicode content",
			message: &core.ChatMessage{
				Id:         core.MessageID(core.RoleUser, "Hello 世界 🌍", now),
				Role:       core.RoleUser,
				Content:    "Hello 世界 🌍",
				Timestamp:  now,
				InsertedAt: now,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := MarshalChatMessage(tt.message)
			require.NotNil(t, data)
			require.NotEmpty(t, data)

			decoded, err := UnmarshalChatMessage(data)
			require.NoError(t, err)
			require.NotNil(t, decoded)

			assert.Equal(t, tt.message.Id, decoded.Id)
			assert.Equal(t, tt.message.Role, decoded.Role)
			assert.Equal(t, tt.message.Content, decoded.Content)
			assert.True(t, tt.message.Timestamp.Equal(decoded.Timestamp))
			assert.True(t, tt.message.InsertedAt.Equal(decoded.InsertedAt))
		})
	}
}

func TestUnmarshalChatMessage_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"empty data", []byte{}},
		{"partial data", []byte{1, 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := UnmarshalChatMessage(tt.data)
			assert.Error(t, err)
		})
	}
}

func TestMarshalUnmarshalCheckpoint(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Microsecond)
	original := &core.Checkpoint{
		Processor:     "extraction",
		LastMessageId: core.IDFromContent("last message"),
		UpdatedAt:     now,
	}

	data := MarshalCheckpoint(original)
	require.NotEmpty(t, data)

	decoded, err := UnmarshalCheckpoint(data)
	require.NoError(t, err)
	assert.Equal(t, original.Processor, decoded.Processor)
	assert.Equal(t, original.LastMessageId, decoded.LastMessageId)
	assert.True(t, original.UpdatedAt.Equal(decoded.UpdatedAt))
}
