package search

import (
	"strings"

	"github.com/resumematcher/resume-search/index"
	"github.com/resumematcher/resume-search/internal/typoutil"
)

// DefaultMaxEditDistance is the largest Levenshtein distance at which a query
// term is corrected to a vocabulary word.
const DefaultMaxEditDistance = 2

const wildcard = "*"

// Rewriter corrects misspelled query terms and expands prefix wildcards against
// the unstemmed vocabulary of one corpus.
type Rewriter struct {
	vocabulary *index.Vocabulary
	corrector  *typoutil.Corrector
}

// NewRewriter creates a Rewriter over vocabulary.
func NewRewriter(vocabulary *index.Vocabulary, maxEditDistance int) *Rewriter {
	return &Rewriter{
		vocabulary: vocabulary,
		corrector:  typoutil.NewCorrector(vocabulary.Words(), maxEditDistance),
	}
}

// Rewrite lowercases raw, splits it on whitespace and rewrites each term:
// wildcard terms become every vocabulary word with their prefix, other terms
// are spelling-corrected. The result is the rewritten terms joined by spaces.
func (r *Rewriter) Rewrite(raw string) string {
	terms := strings.Fields(strings.ToLower(raw))
	rewritten := make([]string, 0, len(terms))
	for _, term := range terms {
		if IsWildcard(term) {
			rewritten = append(rewritten, r.ExpandWildcard(term)...)
			continue
		}
		rewritten = append(rewritten, r.CorrectSpelling(term))
	}
	return strings.Join(rewritten, " ")
}

// IsWildcard reports whether term is a prefix wildcard such as "dev*".
func IsWildcard(term string) bool {
	return strings.Contains(term, wildcard) && strings.HasSuffix(term, wildcard)
}

// ExpandWildcard returns, in lexicographic order, every vocabulary word that
// starts with term once all '*' characters are removed from it.
func (r *Rewriter) ExpandWildcard(term string) []string {
	return r.vocabulary.WithPrefix(strings.ReplaceAll(term, wildcard, ""))
}

// CorrectSpelling returns term unchanged when it is a vocabulary word, otherwise
// the closest vocabulary word within the edit distance limit, otherwise term.
func (r *Rewriter) CorrectSpelling(term string) string {
	if r.vocabulary.Contains(term) {
		return term
	}
	if corrected, ok := r.corrector.Correct(term); ok {
		return corrected
	}
	return term
}
