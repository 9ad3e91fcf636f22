package index

import (
	"sort"
	"strings"
)

// Vocabulary is the set of distinct unstemmed tokens seen across the corpus.
// It backs spelling correction and wildcard expansion, never ranking.
type Vocabulary struct {
	words []string // sorted, deduplicated
	set   map[string]struct{}
}

// NewVocabulary builds a Vocabulary from tokens in any order, with duplicates.
func NewVocabulary(tokens []string) *Vocabulary {
	set := make(map[string]struct{}, len(tokens))
	for _, token := range tokens {
		set[token] = struct{}{}
	}
	words := make([]string, 0, len(set))
	for word := range set {
		words = append(words, word)
	}
	sort.Strings(words)
	return &Vocabulary{words: words, set: set}
}

// Contains reports whether word is in the vocabulary.
func (v *Vocabulary) Contains(word string) bool {
	_, ok := v.set[word]
	return ok
}

// Len returns the number of distinct words.
func (v *Vocabulary) Len() int {
	return len(v.words)
}

// Words returns the words in lexicographic order.
// The returned slice must not be modified.
func (v *Vocabulary) Words() []string {
	return v.words
}

// WithPrefix returns, in lexicographic order, every word that starts with prefix.
func (v *Vocabulary) WithPrefix(prefix string) []string {
	start := sort.SearchStrings(v.words, prefix)
	matches := make([]string, 0)
	for i := start; i < len(v.words) && strings.HasPrefix(v.words[i], prefix); i++ {
		matches = append(matches, v.words[i])
	}
	return matches
}
