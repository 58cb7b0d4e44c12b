package ingestion

import "errors"

var (
	// ErrChatRepositoryRequired is returned when a chat repository is not provided.
	ErrChatRepositoryRequired = errors.New("chat repository required")

	// ErrCheckpointRepositoryRequired is returned when a checkpoint repository is not provided.
	ErrCheckpointRepositoryRequired = errors.New("checkpoint repository required")

	// ErrNoteStoreRequired is returned when a note store is not provided.
	ErrNoteStoreRequired = errors.New("note store required")

	// ErrGeneratorRequired is returned when a generator is not provided.
	ErrGeneratorRequired = errors.New("generator required")

	// ErrMalformedNoteBlock indicates a note block that could not be parsed.
	ErrMalformedNoteBlock = errors.New("malformed note block")
)
