package index

import (
	"math"
	"sort"
	"unicode/utf8"
)

// minTermRunes is the shortest term admitted into the vector space.
const minTermRunes = 2

// VectorSpace is a fitted TF-IDF model: the stemmed vocabulary, its IDF weights
// and the L2-normalized term-document matrix of the corpus it was fitted on.
// It is read-only after Fit.
type VectorSpace struct {
	Terms   []string       // Column index -> term, sorted lexicographically
	Columns map[string]int // Term -> column index
	IDF     []float64      // Column index -> smoothed inverse document frequency
	Rows    []Vector       // Document position -> TF-IDF row
}

// Fit learns the vocabulary and IDF weights from documents (each a sequence of
// normalized, stemmed tokens) and builds the document matrix. Row i of the
// matrix belongs to documents[i].
//
// idf(t) = ln((1 + n) / (1 + df(t))) + 1
func Fit(documents [][]string) *VectorSpace {
	docFreq := make(map[string]int)
	for _, tokens := range documents {
		seen := make(map[string]struct{}, len(tokens))
		for _, token := range tokens {
			if !admissible(token) {
				continue
			}
			if _, ok := seen[token]; ok {
				continue
			}
			seen[token] = struct{}{}
			docFreq[token]++
		}
	}

	terms := make([]string, 0, len(docFreq))
	for term := range docFreq {
		terms = append(terms, term)
	}
	sort.Strings(terms)

	n := float64(len(documents))
	space := &VectorSpace{
		Terms:   terms,
		Columns: make(map[string]int, len(terms)),
		IDF:     make([]float64, len(terms)),
		Rows:    make([]Vector, len(documents)),
	}
	for col, term := range terms {
		space.Columns[term] = col
		space.IDF[col] = math.Log((1+n)/(1+float64(docFreq[term]))) + 1
	}

	for i, tokens := range documents {
		space.Rows[i] = space.Transform(tokens)
	}
	return space
}

// Transform converts a token sequence into an L2-normalized TF-IDF vector using
// the fitted vocabulary. Terms unseen during Fit contribute nothing.
func (vs *VectorSpace) Transform(tokens []string) Vector {
	counts := make(map[int]float64)
	for _, token := range tokens {
		if col, ok := vs.Columns[token]; ok {
			counts[col]++
		}
	}
	if len(counts) == 0 {
		return nil
	}

	v := make(Vector, 0, len(counts))
	for col, tf := range counts {
		v = append(v, Component{Col: col, Weight: tf * vs.IDF[col]})
	}
	sort.Slice(v, func(i, j int) bool {
		return v[i].Col < v[j].Col
	})
	return v.Normalize()
}

// NumDocuments returns the number of rows in the matrix.
func (vs *VectorSpace) NumDocuments() int {
	return len(vs.Rows)
}

// NumTerms returns the number of columns in the matrix.
func (vs *VectorSpace) NumTerms() int {
	return len(vs.Terms)
}

func admissible(token string) bool {
	return utf8.RuneCountInString(token) >= minTermRunes
}
