package core

import (
	"encoding/binary"
	"strings"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for domain entities.
// It is generated from content using deterministic hashing.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// Role identifies the author of a chat message.
type Role int

const (
	// RoleUser represents the human user.
	RoleUser Role = iota + 1
	// RoleAssistant represents the AI assistant.
	RoleAssistant
)

// ChatMessage represents a single turn in a conversation with the assistant.
type ChatMessage struct {
	Id         ID
	Role       Role
	Content    string
	Timestamp  time.Time // When the message was sent
	InsertedAt time.Time // When the message was persisted
}

// NewUserMessage builds a user message timestamped now.
func NewUserMessage(content string) *ChatMessage {
	return &ChatMessage{
		Role:      RoleUser,
		Content:   content,
		Timestamp: time.Now().UTC(),
	}
}

// NewAssistantMessage builds an assistant message timestamped now.
func NewAssistantMessage(content string) *ChatMessage {
	return &ChatMessage{
		Role:      RoleAssistant,
		Content:   content,
		Timestamp: time.Now().UTC(),
	}
}

// MessageID derives a content-based ID for a chat message.
// The timestamp participates so that repeated identical messages stay distinct.
func MessageID(role Role, content string, timestamp time.Time) ID {
	var b strings.Builder
	b.WriteString(timestamp.UTC().Format(time.RFC3339Nano))
	if role == RoleUser {
		b.WriteString("|user|")
	} else {
		b.WriteString("|assistant|")
	}
	b.WriteString(content)
	return IDFromContent(b.String())
}

// NoteMode selects how an extracted note is applied to the vault.
type NoteMode string

const (
	// NoteModeCreate writes a new note (or merges into a near-duplicate).
	NoteModeCreate NoteMode = "create"
	// NoteModeAppend appends to an existing note under a date header.
	NoteModeAppend NoteMode = "append"
)

// NoteFolders lists the vault folders extracted notes may target.
var NoteFolders = []string{
	"topics",
	"people",
	"projects",
	"decisions",
	"ideas",
}

// Note represents a single extracted knowledge note destined for the vault.
type Note struct {
	Title    string
	Folder   string
	Filename string
	Mode     NoteMode
	Tags     []string
	Date     string // YYYY-MM-DD
	Body     string
}

// RelativePath returns the note's vault-relative path (folder/filename).
func (n *Note) RelativePath() string {
	return n.Folder + "/" + n.Filename
}

// Checkpoint records how far a processor has advanced through the
// conversation history, so restarts do not reprocess old messages.
type Checkpoint struct {
	Processor     string
	LastMessageId ID
	UpdatedAt     time.Time
}
