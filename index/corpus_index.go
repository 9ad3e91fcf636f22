package index

import (
	"fmt"
)

// CorpusIndex is one complete, immutable build of the corpus: the ordered
// document identifiers, the fitted vector space whose rows follow that order,
// and the unstemmed vocabulary.
type CorpusIndex struct {
	DocumentIDs []string       // Position -> document ID (filename)
	Positions   map[string]int // Document ID -> position (row in Space.Rows)
	Space       *VectorSpace
	Vocabulary  *Vocabulary
}

// NewCorpusIndex assembles a CorpusIndex and verifies that document positions
// line up with the rows of the matrix.
func NewCorpusIndex(documentIDs []string, space *VectorSpace, vocabulary *Vocabulary) (*CorpusIndex, error) {
	if space == nil {
		return nil, fmt.Errorf("vector space cannot be nil")
	}
	if vocabulary == nil {
		return nil, fmt.Errorf("vocabulary cannot be nil")
	}
	if len(documentIDs) != space.NumDocuments() {
		return nil, fmt.Errorf("document count %d does not match matrix rows %d", len(documentIDs), space.NumDocuments())
	}

	positions := make(map[string]int, len(documentIDs))
	for i, id := range documentIDs {
		if _, dup := positions[id]; dup {
			return nil, fmt.Errorf("duplicate document ID '%s'", id)
		}
		positions[id] = i
	}

	return &CorpusIndex{
		DocumentIDs: documentIDs,
		Positions:   positions,
		Space:       space,
		Vocabulary:  vocabulary,
	}, nil
}

// Len returns the number of indexed documents.
func (c *CorpusIndex) Len() int {
	return len(c.DocumentIDs)
}

// Position returns the matrix row of the document with the given ID.
func (c *CorpusIndex) Position(documentID string) (int, bool) {
	pos, ok := c.Positions[documentID]
	return pos, ok
}

// Row returns the TF-IDF vector of the document at position pos.
func (c *CorpusIndex) Row(pos int) Vector {
	return c.Space.Rows[pos]
}
