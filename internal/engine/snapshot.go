package engine

import (
	"time"

	"github.com/resumematcher/resume-search/internal/search"
	"github.com/resumematcher/resume-search/model"
	"github.com/resumematcher/resume-search/services"
)

// Snapshot is one fully built, read-only generation of the index together with
// the documents it was built from. Readers hold a Snapshot for the duration of
// a request; reloads never modify it.
type Snapshot struct {
	searcher   *search.Service
	documents  []model.Document // position order, matches the index rows
	directory  string
	generation uint64
	loadedAt   time.Time
}

func newSnapshot(searcher *search.Service, documents []model.Document, directory string, generation uint64, loadedAt time.Time) *Snapshot {
	return &Snapshot{
		searcher:   searcher,
		documents:  documents,
		directory:  directory,
		generation: generation,
		loadedAt:   loadedAt,
	}
}

func (s *Snapshot) stats() services.IndexStats {
	corpus := s.searcher.Index()
	return services.IndexStats{
		Loaded:         true,
		Directory:      s.directory,
		Documents:      corpus.Len(),
		Terms:          corpus.Space.NumTerms(),
		VocabularySize: corpus.Vocabulary.Len(),
		Generation:     s.generation,
		LoadedAt:       s.loadedAt,
	}
}

func (s *Snapshot) document(documentID string) (model.Document, bool) {
	pos, ok := s.searcher.Index().Position(documentID)
	if !ok {
		return model.Document{}, false
	}
	return s.documents[pos], true
}
