package ingestion

import (
	"testing"
	"time"

	"github.com/hyphal/mycelia/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testToday = time.Date(2026, 2, 19, 10, 0, 0, 0, time.UTC)

func TestParseNoteBlock(t *testing.T) {
	t.Run("create block with full frontmatter", func(t *testing.T) {
		block := `---
title: Niche Software Business Idea
folder: ideas
filename: niche-software-farriers.md
mode: create
tags: [business, software]
date: 2026-02-19
---

Software for [[farriers]] could be a viable niche.`

		note, err := parseNoteBlock(block, testToday)
		require.NoError(t, err)
		assert.Equal(t, "Niche Software Business Idea", note.Title)
		assert.Equal(t, "ideas", note.Folder)
		assert.Equal(t, "niche-software-farriers.md", note.Filename)
		assert.Equal(t, core.NoteModeCreate, note.Mode)
		assert.Equal(t, []string{"business", "software"}, note.Tags)
		assert.Equal(t, "2026-02-19", note.Date)
		assert.Equal(t, "Software for [[farriers]] could be a viable niche.", note.Body)
	})

	t.Run("append block", func(t *testing.T) {
		block := `---
folder: projects
filename: mycelia.md
mode: append
date: 2026-02-20
---

Decided to ship the watcher behind a flag.`

		note, err := parseNoteBlock(block, testToday)
		require.NoError(t, err)
		assert.Equal(t, core.NoteModeAppend, note.Mode)
		assert.Equal(t, "projects/mycelia.md", note.RelativePath())
	})

	t.Run("defaults", func(t *testing.T) {
		block := `---
filename: morning-pages
---

Some body text.`

		note, err := parseNoteBlock(block, testToday)
		require.NoError(t, err)
		assert.Equal(t, "topics", note.Folder)
		assert.Equal(t, "morning-pages.md", note.Filename)
		assert.Equal(t, core.NoteModeCreate, note.Mode)
		assert.Equal(t, "2026-02-19", note.Date)
		assert.Equal(t, "Morning Pages", note.Title)
	})

	t.Run("unknown folder collapses to topics", func(t *testing.T) {
		block := `---
folder: grimoire
filename: spells.md
---

Body.`

		note, err := parseNoteBlock(block, testToday)
		require.NoError(t, err)
		assert.Equal(t, "topics", note.Folder)
	})

	t.Run("missing frontmatter", func(t *testing.T) {
		_, err := parseNoteBlock("just some text", testToday)
		assert.ErrorIs(t, err, ErrMalformedNoteBlock)
	})

	t.Run("empty body", func(t *testing.T) {
		block := "---\nfilename: a-note.md\n---\n\n"
		_, err := parseNoteBlock(block, testToday)
		assert.ErrorIs(t, err, ErrMalformedNoteBlock)
	})
}

func TestParseNotes(t *testing.T) {
	response := `---
title: First
folder: topics
filename: first-note.md
mode: create
date: 2026-02-19
---

First body.

===

broken block without frontmatter

===

---
folder: ideas
filename: second-note.md
mode: append
date: 2026-02-19
---

Second body.

===`

	notes, dropped := parseNotes(response, testToday)
	require.Len(t, notes, 2)
	assert.Equal(t, 1, dropped)
	assert.Equal(t, "first-note.md", notes[0].Filename)
	assert.Equal(t, "second-note.md", notes[1].Filename)
}

func TestTitleFromFilename(t *testing.T) {
	assert.Equal(t, "Niche Software Farriers", titleFromFilename("niche-software-farriers.md"))
	assert.Equal(t, "Solo", titleFromFilename("solo.md"))
}
