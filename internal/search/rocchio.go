package search

import (
	"github.com/resumematcher/resume-search/index"
)

const (
	// DefaultRocchioAlpha weighs the original query vector.
	DefaultRocchioAlpha = 1.0
	// DefaultRocchioBeta weighs the centroid of the relevant documents.
	DefaultRocchioBeta = 0.75
)

// RocchioVector moves the query toward the centroid of the relevant document
// vectors: q' = alpha*q0 + beta*centroid(relevant).
func RocchioVector(query index.Vector, relevant []index.Vector, alpha, beta float64) index.Vector {
	return query.Scale(alpha).Add(index.Centroid(relevant).Scale(beta))
}

// resolveRelevant maps document IDs to matrix positions. Unknown IDs are
// ignored and each known ID counts once.
func resolveRelevant(ci *index.CorpusIndex, documentIDs []string) []int {
	positions := make([]int, 0, len(documentIDs))
	seen := make(map[int]struct{}, len(documentIDs))
	for _, id := range documentIDs {
		pos, ok := ci.Position(id)
		if !ok {
			continue
		}
		if _, dup := seen[pos]; dup {
			continue
		}
		seen[pos] = struct{}{}
		positions = append(positions, pos)
	}
	return positions
}
