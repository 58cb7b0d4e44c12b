package search

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// DefaultTTL is how long a built index snapshot stays fresh before the
// next Ensure call triggers a rebuild.
const DefaultTTL = 30 * time.Second

// NoteSource supplies the full current note set for indexing.
// Implementations are best-effort: individually unreadable notes are
// omitted from the returned map rather than failing the whole read.
type NoteSource interface {
	ReadAllNotes(ctx context.Context) (map[string]string, error)
}

// Cache holds the most recent Index snapshot together with its build
// timestamp. At most one rebuild is in flight at a time; the snapshot
// is replaced wholesale, never mutated in place.
type Cache struct {
	source NoteSource
	ttl    time.Duration
	logger *slog.Logger
	now    func() time.Time

	mu      sync.Mutex
	index   *Index
	builtAt time.Time
}

// CacheOption configures a Cache.
type CacheOption func(*Cache) error

// WithTTL sets the snapshot time-to-live.
// Default is DefaultTTL.
func WithTTL(ttl time.Duration) CacheOption {
	return func(c *Cache) error {
		if ttl <= 0 {
			ttl = DefaultTTL
		}
		c.ttl = ttl
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) CacheOption {
	return func(c *Cache) error {
		if logger == nil {
			logger = slog.Default()
		}
		c.logger = logger
		return nil
	}
}

// NewCache creates a cache over the given note source.
func NewCache(source NoteSource, opts ...CacheOption) (*Cache, error) {
	if source == nil {
		return nil, ErrNoteSourceRequired
	}

	c := &Cache{
		source: source,
		ttl:    DefaultTTL,
		logger: slog.Default(),
		now:    time.Now,
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	return c, nil
}

// Ensure returns the current index snapshot, rebuilding it from the
// note source when the snapshot is missing or older than the TTL.
// A snapshot returned within the TTL window is the exact same Index
// value, with no I/O performed.
//
// Returns (nil, nil) when the source yields zero notes; no snapshot is
// stored in that case, so the next call retries the build.
func (c *Cache) Ensure(ctx context.Context) (*Index, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.index != nil && c.now().Sub(c.builtAt) < c.ttl {
		return c.index, nil
	}

	notes, err := c.source.ReadAllNotes(ctx)
	if err != nil {
		return nil, err
	}
	if len(notes) == 0 {
		return nil, nil
	}

	index := NewIndex()
	index.Build(notes)

	c.index = index
	c.builtAt = c.now()
	c.logger.Debug("vault index rebuilt", "notes", index.Size())

	return index, nil
}

// Invalidate drops the current snapshot unconditionally. The next
// Ensure call rebuilds regardless of elapsed time. Any writer that
// adds or changes notes must call this, or queries will serve stale
// results for up to the TTL window.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.index = nil
	c.builtAt = time.Time{}
}
