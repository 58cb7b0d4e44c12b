package rag

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/hyphal/mycelia/search"
	"github.com/hyphal/mycelia/vault"
)

// MaxContextChars is the default character budget for assembled
// context, roughly 15k tokens — enough for the relevant notes without
// flooding the model.
const MaxContextChars = 60_000

// searchLimit caps how many ranked notes are considered per query.
const searchLimit = 30

// Builder assembles a size-budgeted textual context for a query from
// the cached vault index.
type Builder struct {
	cache         *search.Cache
	journalFormat string
	maxChars      int
	logger        *slog.Logger
	now           func() time.Time
}

// Option configures a Builder.
type Option func(*Builder) error

// WithMaxChars sets the context character budget.
// Default is MaxContextChars.
func WithMaxChars(n int) Option {
	return func(b *Builder) error {
		if n > 0 {
			b.maxChars = n
		}
		return nil
	}
}

// WithJournalFormat sets the journal filename format used to locate
// today's journal note.
// Default is vault.DefaultJournalFormat.
func WithJournalFormat(format string) Option {
	return func(b *Builder) error {
		if format != "" {
			b.journalFormat = format
		}
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(b *Builder) error {
		if logger == nil {
			logger = slog.Default()
		}
		b.logger = logger
		return nil
	}
}

// NewBuilder creates a context builder over the given index cache.
func NewBuilder(cache *search.Cache, opts ...Option) (*Builder, error) {
	if cache == nil {
		return nil, ErrCacheRequired
	}

	b := &Builder{
		cache:         cache,
		journalFormat: vault.DefaultJournalFormat,
		maxChars:      MaxContextChars,
		logger:        slog.Default(),
		now:           time.Now,
	}

	for _, opt := range opts {
		if err := opt(b); err != nil {
			return nil, err
		}
	}

	return b, nil
}

// Build assembles the vault context for a query. It returns an empty
// string when no context is available: empty vault, no matching notes,
// or nothing survives the budget. Callers degrade to no-context
// behavior on error.
func (b *Builder) Build(ctx context.Context, query string) (string, error) {
	index, err := b.cache.Ensure(ctx)
	if err != nil {
		return "", err
	}
	if index == nil || index.Size() == 0 {
		return "", nil
	}

	todayStem := vault.FormatJournalDate(b.now(), b.journalFormat)
	journalPath := vault.JournalPath(b.now(), b.journalFormat)

	results := index.Search(query, searchLimit)

	todayJournal, hasJournal := index.Content(journalPath)
	journalRanked := false
	for _, r := range results {
		if strings.Contains(r.Path, todayStem) {
			journalRanked = true
			break
		}
	}

	var sb strings.Builder
	charCount := 0
	included := 0

	// Today's journal is pinned: recency overrides relevance ranking.
	if hasJournal && !journalRanked {
		block := noteBlock(journalPath, todayJournal)
		sb.WriteString(block)
		charCount += len(block)
		included++
	}

	for _, result := range results {
		block := noteBlock(result.Path, result.Content)
		if charCount+len(block) > b.maxChars {
			if included > 0 {
				break
			}
			// First note alone exceeds the budget: truncate so the
			// context is never empty when a match exists.
			truncated := block[:b.maxChars-charCount]
			sb.WriteString(truncated)
			charCount += len(truncated)
			included++
			break
		}
		sb.WriteString(block)
		charCount += len(block)
		included++
	}

	assembled := sb.String()
	if strings.TrimSpace(assembled) == "" {
		return "", nil
	}

	topScore := 0.0
	if len(results) > 0 {
		topScore = results[0].Score
	}
	b.logger.Debug("assembled vault context",
		"notes", included, "chars", charCount, "topScore", topScore)

	return assembled, nil
}

// noteBlock formats a single note as a labeled context block.
func noteBlock(path, content string) string {
	return "\n### File: " + path + "\n" + content + "\n"
}
