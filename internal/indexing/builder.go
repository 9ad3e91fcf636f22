package indexing

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/resumematcher/resume-search/index"
	"github.com/resumematcher/resume-search/internal/logger"
	"github.com/resumematcher/resume-search/internal/tokenizer"
	"github.com/resumematcher/resume-search/model"
)

// BuildConfig contains configuration for index builds
type BuildConfig struct {
	WorkerCount int // Number of documents normalized in parallel
}

// ProgressFunc receives the number of documents normalized so far. Calls are
// serialized and processed never decreases.
type ProgressFunc func(processed, total int)

// DefaultBuildConfig returns sensible defaults for index builds
func DefaultBuildConfig() BuildConfig {
	return BuildConfig{
		WorkerCount: runtime.NumCPU(),
	}
}

// Builder turns an ordered document collection into a CorpusIndex.
type Builder struct {
	config BuildConfig
}

// NewBuilder creates a Builder. A non-positive worker count falls back to the
// number of CPUs.
func NewBuilder(config BuildConfig) *Builder {
	if config.WorkerCount <= 0 {
		config.WorkerCount = runtime.NumCPU()
	}
	return &Builder{config: config}
}

// normalized holds the preprocessing output of one document.
type normalized struct {
	stemmed   []string
	unstemmed []string
}

// Build normalizes every document, fits the vector space over the stemmed token
// sequences and collects the unstemmed vocabulary. Row i of the resulting index
// belongs to docs[i]. An empty collection produces a valid empty index.
// progress may be nil.
func (b *Builder) Build(ctx context.Context, docs []model.Document, progress ProgressFunc) (*index.CorpusIndex, error) {
	log := logger.WithComponent("indexing")
	start := time.Now()

	results := make([]normalized, len(docs))
	var (
		progressMu sync.Mutex
		processed  int
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(b.config.WorkerCount)

	for i, doc := range docs {
		i, doc := i, doc
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = normalizeDocument(doc.Content)
			if progress != nil {
				progressMu.Lock()
				processed++
				progress(processed, len(docs))
				progressMu.Unlock()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("index build aborted: %w", err)
	}

	documentIDs := make([]string, len(docs))
	stemmed := make([][]string, len(docs))
	var allUnstemmed []string
	for i, doc := range docs {
		documentIDs[i] = doc.ID
		stemmed[i] = results[i].stemmed
		allUnstemmed = append(allUnstemmed, results[i].unstemmed...)
	}

	space := index.Fit(stemmed)
	vocabulary := index.NewVocabulary(allUnstemmed)

	corpus, err := index.NewCorpusIndex(documentIDs, space, vocabulary)
	if err != nil {
		return nil, fmt.Errorf("failed to assemble corpus index: %w", err)
	}

	log.Debug("index built",
		"documents", corpus.Len(),
		"terms", space.NumTerms(),
		"vocabulary", vocabulary.Len(),
		"duration", time.Since(start),
	)
	return corpus, nil
}

// normalizeDocument produces both token sequences of one document. Stemming
// the unstemmed sequence gives the same result as normalizing twice.
func normalizeDocument(content string) normalized {
	unstemmed := tokenizer.Normalize(content, false)
	stemmed := make([]string, len(unstemmed))
	for i, token := range unstemmed {
		stemmed[i] = tokenizer.Stem(token)
	}
	return normalized{stemmed: stemmed, unstemmed: unstemmed}
}
