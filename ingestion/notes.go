package ingestion

import (
	"fmt"
	"slices"
	"strings"
	"time"
	"unicode"

	"gopkg.in/yaml.v3"

	"github.com/hyphal/mycelia/core"
)

// noExtraction is the sentinel the model returns when the conversation
// contains nothing worth keeping.
const noExtraction = "NO_EXTRACTION"

// noteFrontmatter mirrors the YAML header of a note block in the
// model's extraction response.
type noteFrontmatter struct {
	Title    string   `yaml:"title"`
	Folder   string   `yaml:"folder"`
	Filename string   `yaml:"filename"`
	Mode     string   `yaml:"mode"`
	Tags     []string `yaml:"tags"`
	Date     string   `yaml:"date"`
}

// parseNotes splits an extraction response into note blocks and parses
// each one. Malformed blocks are dropped; the error count is returned
// alongside the notes so callers can log it.
func parseNotes(response string, today time.Time) (notes []*core.Note, dropped int) {
	for _, block := range strings.Split(response, "===") {
		block = strings.TrimSpace(block)
		if block == "" {
			continue
		}
		note, err := parseNoteBlock(block, today)
		if err != nil {
			dropped++
			continue
		}
		notes = append(notes, note)
	}
	return notes, dropped
}

// parseNoteBlock parses a single "---" framed note block.
func parseNoteBlock(block string, today time.Time) (*core.Note, error) {
	normalized := strings.TrimSpace(strings.ReplaceAll(block, "\r\n", "\n"))

	rest, ok := strings.CutPrefix(normalized, "---\n")
	if !ok {
		return nil, fmt.Errorf("%w: missing frontmatter", ErrMalformedNoteBlock)
	}
	header, body, ok := strings.Cut(rest, "\n---")
	if !ok {
		return nil, fmt.Errorf("%w: unterminated frontmatter", ErrMalformedNoteBlock)
	}

	var fm noteFrontmatter
	if err := yaml.Unmarshal([]byte(header), &fm); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedNoteBlock, err)
	}

	body = strings.TrimSpace(body)
	if body == "" {
		return nil, fmt.Errorf("%w: empty body", ErrMalformedNoteBlock)
	}

	// Unknown folders collapse to topics rather than sprouting
	// arbitrary directories in the vault.
	if !slices.Contains(core.NoteFolders, fm.Folder) {
		fm.Folder = "topics"
	}
	if fm.Filename == "" {
		fm.Filename = "untitled.md"
	}
	if !strings.HasSuffix(fm.Filename, ".md") {
		fm.Filename += ".md"
	}

	mode := core.NoteMode(fm.Mode)
	if mode != core.NoteModeAppend {
		mode = core.NoteModeCreate
	}

	date := fm.Date
	if date == "" {
		date = today.Format("2006-01-02")
	}

	title := strings.Trim(fm.Title, `"'`)
	if title == "" || title == "Untitled" {
		title = titleFromFilename(fm.Filename)
	}

	note := &core.Note{
		Title:    title,
		Folder:   fm.Folder,
		Filename: fm.Filename,
		Mode:     mode,
		Tags:     fm.Tags,
		Date:     date,
		Body:     body,
	}
	if err := core.ValidateNote(note); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedNoteBlock, err)
	}
	return note, nil
}

// titleFromFilename converts a kebab-case filename into Title Case,
// e.g. "niche-software-farriers.md" becomes "Niche Software Farriers".
func titleFromFilename(filename string) string {
	stem := strings.TrimSuffix(filename, ".md")
	words := strings.Fields(strings.ReplaceAll(stem, "-", " "))
	for i, w := range words {
		runes := []rune(w)
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}
