package rag

import "errors"

var (
	// ErrCacheRequired is returned when an index cache is not provided.
	ErrCacheRequired = errors.New("index cache required")
)
