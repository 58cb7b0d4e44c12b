package vault

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestVault(t *testing.T) *Vault {
	t.Helper()
	v, err := New(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, v.EnsureStructure())
	return v
}

func writeFile(t *testing.T, v *Vault, rel, content string) {
	t.Helper()
	target := filepath.Join(v.Root(), filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(target), 0o755))
	require.NoError(t, os.WriteFile(target, []byte(content), 0o644))
}

func TestNew(t *testing.T) {
	t.Run("empty root", func(t *testing.T) {
		_, err := New("")
		assert.Equal(t, ErrRootRequired, err)
	})

	t.Run("valid root", func(t *testing.T) {
		v, err := New(t.TempDir())
		require.NoError(t, err)
		assert.NotNil(t, v)
	})
}

func TestEnsureStructure(t *testing.T) {
	v := newTestVault(t)
	for _, folder := range Folders {
		info, err := os.Stat(filepath.Join(v.Root(), folder))
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	}
}

func TestListNotes(t *testing.T) {
	ctx := context.Background()

	t.Run("only markdown, recursive", func(t *testing.T) {
		v := newTestVault(t)
		writeFile(t, v, "topics/farriers.md", "a")
		writeFile(t, v, "topics/deep/nested.md", "b")
		writeFile(t, v, "topics/image.png", "binary")

		notes, err := v.ListNotes(ctx)
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"topics/farriers.md", "topics/deep/nested.md"}, notes)
	})

	t.Run("skips internal and hidden directories", func(t *testing.T) {
		v := newTestVault(t)
		writeFile(t, v, "topics/keep.md", "keep")
		writeFile(t, v, ".mycelia/state.md", "internal")
		writeFile(t, v, ".obsidian/config.md", "hidden")
		writeFile(t, v, "node_modules/pkg/readme.md", "dep")
		writeFile(t, v, ".trash/gone.md", "deleted")

		notes, err := v.ListNotes(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"topics/keep.md"}, notes)
	})

	t.Run("empty vault", func(t *testing.T) {
		v := newTestVault(t)
		notes, err := v.ListNotes(ctx)
		require.NoError(t, err)
		assert.Empty(t, notes)
	})
}

func TestReadNote(t *testing.T) {
	v := newTestVault(t)
	writeFile(t, v, "people/alex.md", "Alex works in finance")

	t.Run("existing note", func(t *testing.T) {
		content, err := v.ReadNote("people/alex.md")
		require.NoError(t, err)
		assert.Equal(t, "Alex works in finance", content)
	})

	t.Run("missing note", func(t *testing.T) {
		_, err := v.ReadNote("people/nobody.md")
		assert.ErrorIs(t, err, ErrNoteNotFound)
	})
}

func TestReadAllNotes(t *testing.T) {
	ctx := context.Background()

	t.Run("reads every note", func(t *testing.T) {
		v := newTestVault(t)
		writeFile(t, v, "topics/farriers.md", "Horseshoe makers need better software")
		writeFile(t, v, "people/alex.md", "Alex works in finance")

		notes, err := v.ReadAllNotes(ctx)
		require.NoError(t, err)
		assert.Len(t, notes, 2)
		assert.Equal(t, "Alex works in finance", notes["people/alex.md"])
	})

	t.Run("omits empty notes", func(t *testing.T) {
		v := newTestVault(t)
		writeFile(t, v, "topics/full.md", "content")
		writeFile(t, v, "topics/empty.md", "")

		notes, err := v.ReadAllNotes(ctx)
		require.NoError(t, err)
		assert.Len(t, notes, 1)
		assert.Contains(t, notes, "topics/full.md")
	})

	t.Run("handles a larger vault", func(t *testing.T) {
		v := newTestVault(t)
		for i := 0; i < 200; i++ {
			writeFile(t, v, fmt.Sprintf("topics/note-%03d.md", i), "note body")
		}

		notes, err := v.ReadAllNotes(ctx)
		require.NoError(t, err)
		assert.Len(t, notes, 200)
	})
}

func TestWriteNote(t *testing.T) {
	t.Run("creates a new note", func(t *testing.T) {
		v := newTestVault(t)
		rel, err := v.WriteNote("ideas", "farrier-software.md", "body text")
		require.NoError(t, err)
		assert.Equal(t, "ideas/farrier-software.md", rel)

		content, err := v.ReadNote(rel)
		require.NoError(t, err)
		assert.Equal(t, "body text", content)
	})

	t.Run("appends to an existing note", func(t *testing.T) {
		v := newTestVault(t)
		_, err := v.WriteNote("ideas", "farrier-software.md", "first")
		require.NoError(t, err)
		_, err = v.WriteNote("ideas", "farrier-software.md", "second")
		require.NoError(t, err)

		content, err := v.ReadNote("ideas/farrier-software.md")
		require.NoError(t, err)
		assert.Equal(t, "first\n\nsecond", content)
	})
}

func TestOverwriteNote(t *testing.T) {
	v := newTestVault(t)
	writeFile(t, v, "topics/farriers.md", "old")

	require.NoError(t, v.OverwriteNote("topics/farriers.md", "new"))

	content, err := v.ReadNote("topics/farriers.md")
	require.NoError(t, err)
	assert.Equal(t, "new", content)
}
