package search

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSource is a scripted NoteSource that counts fetches.
type fakeSource struct {
	notes map[string]string
	err   error
	calls int
}

func (s *fakeSource) ReadAllNotes(ctx context.Context) (map[string]string, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.notes, nil
}

func TestNewCache(t *testing.T) {
	t.Run("nil source", func(t *testing.T) {
		_, err := NewCache(nil)
		assert.Equal(t, ErrNoteSourceRequired, err)
	})

	t.Run("valid source", func(t *testing.T) {
		cache, err := NewCache(&fakeSource{}, WithTTL(time.Minute))
		require.NoError(t, err)
		assert.NotNil(t, cache)
	})
}

func TestCacheEnsure(t *testing.T) {
	ctx := context.Background()
	notes := map[string]string{"topics/farriers.md": "horseshoe makers"}

	t.Run("within TTL returns the same snapshot without IO", func(t *testing.T) {
		source := &fakeSource{notes: notes}
		cache, err := NewCache(source)
		require.NoError(t, err)

		first, err := cache.Ensure(ctx)
		require.NoError(t, err)
		require.NotNil(t, first)

		second, err := cache.Ensure(ctx)
		require.NoError(t, err)
		assert.Same(t, first, second)
		assert.Equal(t, 1, source.calls)
	})

	t.Run("expired TTL rebuilds", func(t *testing.T) {
		source := &fakeSource{notes: notes}
		cache, err := NewCache(source, WithTTL(30*time.Second))
		require.NoError(t, err)

		current := time.Now()
		cache.now = func() time.Time { return current }

		first, err := cache.Ensure(ctx)
		require.NoError(t, err)
		require.NotNil(t, first)

		current = current.Add(31 * time.Second)

		second, err := cache.Ensure(ctx)
		require.NoError(t, err)
		assert.NotSame(t, first, second)
		assert.Equal(t, 2, source.calls)
	})

	t.Run("invalidate forces rebuild within TTL", func(t *testing.T) {
		source := &fakeSource{notes: notes}
		cache, err := NewCache(source)
		require.NoError(t, err)

		first, err := cache.Ensure(ctx)
		require.NoError(t, err)

		cache.Invalidate()

		second, err := cache.Ensure(ctx)
		require.NoError(t, err)
		assert.NotSame(t, first, second)
		assert.Equal(t, 2, source.calls)
	})

	t.Run("empty fetch returns absent and retries next call", func(t *testing.T) {
		source := &fakeSource{notes: map[string]string{}}
		cache, err := NewCache(source)
		require.NoError(t, err)

		index, err := cache.Ensure(ctx)
		require.NoError(t, err)
		assert.Nil(t, index)

		// No snapshot was stored, so the source is consulted again
		// even though no TTL has elapsed.
		_, err = cache.Ensure(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, source.calls)
	})

	t.Run("fetch error propagates and nothing is cached", func(t *testing.T) {
		source := &fakeSource{err: errors.New("disk on fire")}
		cache, err := NewCache(source)
		require.NoError(t, err)

		_, err = cache.Ensure(ctx)
		assert.Error(t, err)

		source.err = nil
		source.notes = notes

		index, err := cache.Ensure(ctx)
		require.NoError(t, err)
		assert.NotNil(t, index)
	})

	t.Run("snapshot serves queries", func(t *testing.T) {
		source := &fakeSource{notes: notes}
		cache, err := NewCache(source)
		require.NoError(t, err)

		index, err := cache.Ensure(ctx)
		require.NoError(t, err)

		results := index.Search("horseshoe", 5)
		require.Len(t, results, 1)
		assert.Equal(t, "topics/farriers.md", results[0].Path)
	})
}
