package search

import (
	"maps"
	"math"
	"sort"
	"strings"
)

// BM25 tuning parameters.
const (
	k1 = 1.2
	b  = 0.75
)

// docEntry holds the per-note statistics recorded at build time.
type docEntry struct {
	content   string
	wordCount int // weighted term count, see Build
	termFreqs map[string]int
}

// Result is a single ranked search hit.
type Result struct {
	Path    string
	Score   float64
	Content string
}

// Index is an in-memory BM25 inverted index over a snapshot of notes.
// An Index is immutable once built; rebuilding replaces the whole
// snapshot. It is safe for concurrent readers after Build returns.
type Index struct {
	docs         map[string]*docEntry
	inverted     map[string]map[string]struct{}
	totalDocs    int
	avgDocLength float64
}

// Path separators and filename punctuation become spaces before
// tokenizing, so slug words are searchable terms.
var pathSeparators = strings.NewReplacer(
	"/", " ", "\\", " ", ".", " ", "_", " ", "-", " ",
)

// NewIndex creates an empty index. Call Build before searching.
func NewIndex() *Index {
	return &Index{
		docs:     make(map[string]*docEntry),
		inverted: make(map[string]map[string]struct{}),
	}
}

// Build constructs the index from a map of note path to content,
// replacing any previous contents. Notes whose content is empty or
// whitespace-only are skipped.
//
// Path terms are counted twice so that a query containing a note's
// slug or title word ranks that note above pure content frequency.
func (ix *Index) Build(notes map[string]string) {
	ix.docs = make(map[string]*docEntry, len(notes))
	ix.inverted = make(map[string]map[string]struct{})

	totalWords := 0

	for path, content := range notes {
		if strings.TrimSpace(content) == "" {
			continue
		}

		pathTerms := Tokenize(pathSeparators.Replace(path))
		contentTerms := Tokenize(content)
		wordCount := 2*len(pathTerms) + len(contentTerms)

		termFreqs := make(map[string]int, len(contentTerms))
		for _, term := range pathTerms {
			termFreqs[term] += 2
		}
		for _, term := range contentTerms {
			termFreqs[term]++
		}

		ix.docs[path] = &docEntry{
			content:   content,
			wordCount: wordCount,
			termFreqs: termFreqs,
		}
		totalWords += wordCount

		for term := range termFreqs {
			docSet := ix.inverted[term]
			if docSet == nil {
				docSet = make(map[string]struct{})
				ix.inverted[term] = docSet
			}
			docSet[path] = struct{}{}
		}
	}

	ix.totalDocs = len(ix.docs)
	if ix.totalDocs > 0 {
		ix.avgDocLength = float64(totalWords) / float64(ix.totalDocs)
	} else {
		ix.avgDocLength = 0
	}
}

// Search returns the top matching notes for a query, sorted by
// descending BM25 score and truncated to limit. A query with no
// surviving terms returns an empty slice.
func (ix *Index) Search(query string, limit int) []Result {
	return ix.SearchWithMonitor(query, limit, nil)
}

// SearchWithMonitor is Search with observation hooks for each stage.
func (ix *Index) SearchWithMonitor(query string, limit int, monitor Monitor) []Result {
	if monitor == nil {
		monitor = &noopMonitor{}
	}
	if limit < 0 {
		limit = 0
	}

	monitor.Start(query)

	queryTerms := Tokenize(query)
	monitor.AfterTokenize(queryTerms)
	if len(queryTerms) == 0 {
		return []Result{}
	}

	// Candidate set: union of the posting sets for the query terms.
	// Notes sharing zero terms with the query are never scored.
	candidates := make(map[string]struct{})
	for _, term := range queryTerms {
		for path := range ix.inverted[term] {
			candidates[path] = struct{}{}
		}
	}
	monitor.AfterCandidates(maps.Keys(candidates))

	results := make([]Result, 0, len(candidates))

	for path := range candidates {
		doc := ix.docs[path]
		score := 0.0

		for _, term := range queryTerms {
			tf := doc.termFreqs[term]
			if tf == 0 {
				continue
			}

			df := len(ix.inverted[term])
			idf := math.Log((float64(ix.totalDocs-df)+0.5)/(float64(df)+0.5) + 1)
			tfNorm := float64(tf) * (k1 + 1) /
				(float64(tf) + k1*(1-b+b*(float64(doc.wordCount)/ix.avgDocLength)))

			score += idf * tfNorm
		}

		// A term present in every note can push idf, and with it the
		// whole score, slightly negative.
		if score > 0 {
			results = append(results, Result{Path: path, Score: score, Content: doc.content})
		}
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	if len(results) > limit {
		results = results[:limit]
	}
	monitor.Finish(results)

	return results
}

// Content returns the raw content for a note path.
func (ix *Index) Content(path string) (string, bool) {
	doc, ok := ix.docs[path]
	if !ok {
		return "", false
	}
	return doc.content, true
}

// Size returns the number of indexed notes.
func (ix *Index) Size() int {
	return ix.totalDocs
}
