package search

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/resumematcher/resume-search/index"
	internalErrors "github.com/resumematcher/resume-search/internal/errors"
	"github.com/resumematcher/resume-search/internal/tokenizer"
	"github.com/resumematcher/resume-search/services"
)

// Settings tunes ranking, relevance feedback and query rewriting.
type Settings struct {
	TopK            int
	MaxEditDistance int
	RocchioAlpha    float64
	RocchioBeta     float64
}

// DefaultSettings returns the settings used when none are configured.
func DefaultSettings() Settings {
	return Settings{
		TopK:            DefaultTopK,
		MaxEditDistance: DefaultMaxEditDistance,
		RocchioAlpha:    DefaultRocchioAlpha,
		RocchioBeta:     DefaultRocchioBeta,
	}
}

// Service answers queries against one immutable corpus index.
// It fulfills the services.Searcher interface and is safe for concurrent use.
type Service struct {
	index    *index.CorpusIndex
	settings Settings
	rewriter *Rewriter
}

// NewService creates a new search Service.
func NewService(corpus *index.CorpusIndex, settings Settings) (*Service, error) {
	if corpus == nil {
		return nil, fmt.Errorf("corpus index cannot be nil")
	}
	if settings.TopK <= 0 {
		return nil, fmt.Errorf("top_k must be positive, got %d", settings.TopK)
	}
	if settings.MaxEditDistance < 0 {
		return nil, fmt.Errorf("max_edit_distance cannot be negative, got %d", settings.MaxEditDistance)
	}

	return &Service{
		index:    corpus,
		settings: settings,
		rewriter: NewRewriter(corpus.Vocabulary, settings.MaxEditDistance),
	}, nil
}

// Index returns the corpus index this service searches.
func (s *Service) Index() *index.CorpusIndex {
	return s.index
}

// Search ranks the corpus against the query text.
func (s *Service) Search(query string) (services.SearchResult, error) {
	startTime := time.Now()
	if s.index.Len() == 0 {
		return services.SearchResult{}, internalErrors.ErrNotIndexed
	}

	queryVector := s.vectorize(query)
	ranked := Rank(queryVector, s.index.Space.Rows, s.settings.TopK)
	return s.buildResult(query, ranked, startTime), nil
}

// RefineSearch re-ranks the corpus with the query moved toward the documents
// judged relevant. With no resolvable relevant document it is a plain Search.
func (s *Service) RefineSearch(query string, relevantIDs []string) (services.SearchResult, error) {
	startTime := time.Now()
	if len(relevantIDs) == 0 || s.index.Len() == 0 {
		return s.Search(query)
	}

	positions := resolveRelevant(s.index, relevantIDs)
	if len(positions) == 0 {
		return s.Search(query)
	}

	relevant := make([]index.Vector, len(positions))
	for i, pos := range positions {
		relevant[i] = s.index.Row(pos)
	}

	refined := RocchioVector(s.vectorize(query), relevant, s.settings.RocchioAlpha, s.settings.RocchioBeta)
	ranked := Rank(refined, s.index.Space.Rows, s.settings.TopK)
	return s.buildResult(query, ranked, startTime), nil
}

// TolerantSearch rewrites the query (spelling correction, wildcard expansion)
// and searches with the rewritten text.
func (s *Service) TolerantSearch(query string) (services.SearchResult, error) {
	if s.index.Vocabulary == nil || s.index.Vocabulary.Len() == 0 {
		return services.SearchResult{}, internalErrors.ErrVocabularyNotBuilt
	}

	rewritten := s.rewriter.Rewrite(query)
	result, err := s.Search(rewritten)
	if err != nil {
		return services.SearchResult{}, err
	}
	result.Query = query
	result.RewrittenQuery = rewritten
	return result, nil
}

func (s *Service) vectorize(text string) index.Vector {
	return s.index.Space.Transform(tokenizer.Normalize(text, true))
}

func (s *Service) buildResult(query string, ranked []Scored, startTime time.Time) services.SearchResult {
	hits := make([]services.Hit, 0, len(ranked))
	for _, r := range ranked {
		score := RoundScore(r.Score)
		if score <= 0 {
			// Below presentation precision
			continue
		}
		hits = append(hits, services.Hit{
			DocumentID: s.index.DocumentIDs[r.Position],
			Score:      score,
		})
	}

	return services.SearchResult{
		Hits:    hits,
		Query:   query,
		Total:   len(hits),
		Took:    time.Since(startTime).Milliseconds(),
		QueryId: uuid.New().String(),
	}
}
