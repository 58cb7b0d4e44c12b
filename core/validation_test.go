package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validMessage() *ChatMessage {
	return &ChatMessage{
		Role:      RoleUser,
		Content:   "I met a farrier today",
		Timestamp: time.Now().UTC(),
	}
}

func TestValidateChatMessage(t *testing.T) {
	t.Run("valid message", func(t *testing.T) {
		require.NoError(t, ValidateChatMessage(validMessage()))
	})

	t.Run("nil message", func(t *testing.T) {
		err := ValidateChatMessage(nil)
		assert.ErrorIs(t, err, ErrInvalidChatMessage)
	})

	t.Run("empty content", func(t *testing.T) {
		m := validMessage()
		m.Content = ""
		err := ValidateChatMessage(m)
		assert.ErrorIs(t, err, ErrEmptyContent)
	})

	t.Run("invalid role", func(t *testing.T) {
		m := validMessage()
		m.Role = Role(99)
		err := ValidateChatMessage(m)
		assert.ErrorIs(t, err, ErrInvalidRole)
	})

	t.Run("future timestamp", func(t *testing.T) {
		m := validMessage()
		m.Timestamp = time.Now().Add(2 * time.Hour)
		err := ValidateChatMessage(m)
		assert.ErrorIs(t, err, ErrInvalidTimestamp)
	})
}

func validNote() *Note {
	return &Note{
		Title:    "Farrier Software",
		Folder:   "topics",
		Filename: "farrier-software.md",
		Mode:     NoteModeCreate,
		Date:     "2026-02-19",
		Body:     "Horseshoe makers need better software.",
	}
}

func TestValidateNote(t *testing.T) {
	t.Run("valid note", func(t *testing.T) {
		require.NoError(t, ValidateNote(validNote()))
	})

	t.Run("nil note", func(t *testing.T) {
		assert.ErrorIs(t, ValidateNote(nil), ErrInvalidNote)
	})

	t.Run("unknown folder", func(t *testing.T) {
		n := validNote()
		n.Folder = "attic"
		assert.ErrorIs(t, ValidateNote(n), ErrUnknownFolder)
	})

	t.Run("filename without extension", func(t *testing.T) {
		n := validNote()
		n.Filename = "farrier-software"
		assert.ErrorIs(t, ValidateNote(n), ErrInvalidFilename)
	})

	t.Run("filename with path separator", func(t *testing.T) {
		n := validNote()
		n.Filename = "../escape.md"
		assert.ErrorIs(t, ValidateNote(n), ErrInvalidFilename)
	})

	t.Run("whitespace body", func(t *testing.T) {
		n := validNote()
		n.Body = "   \n\t"
		assert.ErrorIs(t, ValidateNote(n), ErrEmptyBody)
	})

	t.Run("unknown mode", func(t *testing.T) {
		n := validNote()
		n.Mode = NoteMode("upsert")
		assert.ErrorIs(t, ValidateNote(n), ErrInvalidNote)
	})
}

func TestIsValidNoteFilename(t *testing.T) {
	assert.True(t, IsValidNoteFilename("b2b-saas-ideas.md"))
	assert.False(t, IsValidNoteFilename(""))
	assert.False(t, IsValidNoteFilename(".md"))
	assert.False(t, IsValidNoteFilename("notes.txt"))
	assert.False(t, IsValidNoteFilename("a/b.md"))
}
