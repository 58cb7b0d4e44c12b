package ingestion

import (
	"context"
	"strings"
)

// similarityThreshold is the minimum word-set overlap for two filenames
// to be treated as the same topic.
const similarityThreshold = 0.70

// NoteStore is the subset of vault operations the ingestion pipeline needs.
type NoteStore interface {
	ListNotes(ctx context.Context) ([]string, error)
	ReadNote(path string) (string, error)
	WriteNote(folder, filename, content string) (string, error)
}

// Resolver locates an existing note that a proposed note should merge
// into, preventing near-duplicate files like b2b-saas-idea.md next to
// b2b-saas-ideas.md.
type Resolver struct {
	store NoteStore
}

// NewResolver creates a Resolver over the given note store.
func NewResolver(store NoteStore) *Resolver {
	return &Resolver{store: store}
}

// Resolve returns the filename of an existing note in folder that the
// proposed filename should merge into, or "" when the note is genuinely
// new. Exact filename matches win; otherwise filenames in the same
// folder are compared by word-set overlap of their kebab-case stems.
func (r *Resolver) Resolve(ctx context.Context, folder, filename string) (string, error) {
	// Exact match first
	if _, err := r.store.ReadNote(folder + "/" + filename); err == nil {
		return filename, nil
	}

	paths, err := r.store.ListNotes(ctx)
	if err != nil {
		return "", err
	}

	proposed := stemWords(strings.TrimSuffix(filename, ".md"))
	if len(proposed) == 0 {
		return "", nil
	}

	var (
		bestName  string
		bestScore float64
	)
	for _, path := range paths {
		if !strings.HasPrefix(path, folder+"/") {
			continue
		}
		existing := strings.TrimPrefix(path, folder+"/")
		words := stemWords(strings.TrimSuffix(existing, ".md"))
		if len(words) == 0 {
			continue
		}

		score := similarity(proposed, words)
		if score < similarityThreshold {
			continue
		}
		// Highest similarity wins; ties break lexicographically.
		if score > bestScore || (score == bestScore && existing < bestName) {
			bestScore = score
			bestName = existing
		}
	}

	return bestName, nil
}

// stemWords splits a kebab-case stem into its significant words.
// Words of two characters or fewer are ignored.
func stemWords(stem string) map[string]struct{} {
	words := make(map[string]struct{})
	for _, w := range strings.Split(strings.ToLower(stem), "-") {
		if len(w) > 2 {
			words[w] = struct{}{}
		}
	}
	return words
}

// similarity is |a ∩ b| / max(|a|, |b|).
func similarity(a, b map[string]struct{}) float64 {
	overlap := 0
	for w := range a {
		if _, ok := b[w]; ok {
			overlap++
		}
	}
	denom := len(a)
	if len(b) > denom {
		denom = len(b)
	}
	return float64(overlap) / float64(denom)
}
