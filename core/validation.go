// Copyright 2025 Hyphal Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package core

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

// ValidateChatMessage validates a ChatMessage according to domain rules.
//
// Validation rules:
//   - Content must not be empty
//   - Role must be valid (user or assistant)
//   - Timestamp must not be in the future
//
// NOT validated:
//   - ID (0 is valid until the message is persisted)
func ValidateChatMessage(message *ChatMessage) error {
	if message == nil {
		return fmt.Errorf("%w: message is nil", ErrInvalidChatMessage)
	}

	if message.Content == "" {
		return fmt.Errorf("%w: %w", ErrInvalidChatMessage, ErrEmptyContent)
	}

	if err := ValidateRole(message.Role); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidChatMessage, err)
	}

	if !IsValidTimestamp(message.Timestamp) {
		return fmt.Errorf("%w: %w", ErrInvalidChatMessage, ErrInvalidTimestamp)
	}

	return nil
}

// ValidateNote validates an extracted Note according to domain rules.
//
// Validation rules:
//   - Folder must be one of NoteFolders
//   - Filename must be a non-empty .md name without path separators
//   - Body must not be empty
//   - Mode must be create or append
func ValidateNote(note *Note) error {
	if note == nil {
		return fmt.Errorf("%w: note is nil", ErrInvalidNote)
	}

	if !slices.Contains(NoteFolders, note.Folder) {
		return fmt.Errorf("%w: %w: %q", ErrInvalidNote, ErrUnknownFolder, note.Folder)
	}

	if !IsValidNoteFilename(note.Filename) {
		return fmt.Errorf("%w: %w: %q", ErrInvalidNote, ErrInvalidFilename, note.Filename)
	}

	if strings.TrimSpace(note.Body) == "" {
		return fmt.Errorf("%w: %w", ErrInvalidNote, ErrEmptyBody)
	}

	if note.Mode != NoteModeCreate && note.Mode != NoteModeAppend {
		return fmt.Errorf("%w: unknown mode %q", ErrInvalidNote, note.Mode)
	}

	return nil
}

// ValidateRole checks that a Role has a valid value.
func ValidateRole(role Role) error {
	switch role {
	case RoleUser, RoleAssistant:
		return nil
	default:
		return fmt.Errorf("%w: %d", ErrInvalidRole, role)
	}
}

// IsValidTimestamp returns true if the timestamp is not in the future.
// A small clock-skew allowance of one minute is tolerated.
func IsValidTimestamp(timestamp time.Time) bool {
	return !timestamp.After(time.Now().Add(time.Minute))
}

// IsValidNoteFilename returns true for a bare markdown filename.
func IsValidNoteFilename(filename string) bool {
	if filename == "" || filename == ".md" {
		return false
	}
	if strings.ContainsAny(filename, "/\\") {
		return false
	}
	return strings.HasSuffix(filename, ".md")
}
