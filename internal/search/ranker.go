package search

import (
	"math"
	"sort"

	"github.com/resumematcher/resume-search/index"
)

// DefaultTopK is the maximum number of results returned by a search.
const DefaultTopK = 10

// scoreEpsilon is the difference below which two similarities count as tied.
const scoreEpsilon = 1e-12

// Scored is a document position with its cosine similarity to a query.
type Scored struct {
	Position int
	Score    float64
}

// Rank scores every row against query and returns at most k positions ordered by
// descending similarity. Equal scores keep corpus order. Rows with a similarity
// of zero or less are not returned at all.
func Rank(query index.Vector, rows []index.Vector, k int) []Scored {
	if k <= 0 || len(query) == 0 {
		return []Scored{}
	}

	scored := make([]Scored, 0, len(rows))
	for pos, row := range rows {
		if score := index.Cosine(query, row); score > 0 {
			scored = append(scored, Scored{Position: pos, Score: score})
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return higherScore(scored[i].Score, scored[j].Score)
	})

	if len(scored) > k {
		scored = scored[:k]
	}
	return scored
}

// higherScore reports whether a ranks strictly above b. Scores within
// scoreEpsilon are equal so summation-order noise never reorders a tie.
func higherScore(a, b float64) bool {
	if math.Abs(a-b) > scoreEpsilon {
		return a > b
	}
	return false
}

// RoundScore rounds a similarity to 4 decimal digits for presentation.
func RoundScore(score float64) float64 {
	rounded := math.Round(score*1e4) / 1e4
	if rounded > 1 {
		return 1
	}
	return rounded
}
