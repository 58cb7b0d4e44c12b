package search

import (
	"regexp"
	"strings"
)

// Stop words dropped from every token stream: articles, pronouns,
// auxiliary verbs, conjunctions, prepositions, question words, and a
// short list of high-frequency modifiers.
var stopWords = map[string]bool{
	"i": true, "me": true, "my": true, "we": true, "our": true, "you": true,
	"your": true, "it": true, "its": true, "he": true, "she": true,
	"they": true, "them": true,
	"a": true, "an": true, "the": true, "this": true, "that": true,
	"these": true, "those": true,
	"is": true, "am": true, "are": true, "was": true, "were": true,
	"be": true, "been": true, "being": true,
	"have": true, "has": true, "had": true, "do": true, "does": true,
	"did": true, "will": true, "would": true, "could": true, "should": true,
	"can": true, "may": true,
	"not": true, "no": true, "nor": true, "so": true, "if": true, "or": true,
	"and": true, "but": true, "for": true, "of": true, "to": true, "in": true,
	"on": true, "at": true,
	"by": true, "with": true, "from": true, "up": true, "out": true,
	"about": true, "into": true, "through": true, "after": true, "before": true,
	"what": true, "which": true, "who": true, "when": true, "where": true,
	"how": true, "why": true,
	"all": true, "any": true, "some": true, "more": true, "most": true,
	"other": true, "than": true, "just": true, "also": true, "very": true,
	"there": true, "here": true, "now": true, "then": true, "much": true,
	"many": true,
}

// Punctuation never glues two words together: anything that is not a
// word character or whitespace becomes a space before splitting.
var nonWord = regexp.MustCompile(`[^\w\s]`)

// Tokenize splits text into lowercase terms, stripping punctuation,
// tokens of length <= 2, and stop words. It is deterministic and
// side-effect free.
func Tokenize(text string) []string {
	cleaned := nonWord.ReplaceAllString(strings.ToLower(text), " ")
	words := strings.Fields(cleaned)

	terms := make([]string, 0, len(words))
	for _, word := range words {
		if len(word) > 2 && !stopWords[word] {
			terms = append(terms, word)
		}
	}
	return terms
}
