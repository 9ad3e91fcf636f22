package engine

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"

	internalErrors "github.com/resumematcher/resume-search/internal/errors"
	"github.com/resumematcher/resume-search/internal/indexing"
	"github.com/resumematcher/resume-search/internal/jobs"
	"github.com/resumematcher/resume-search/internal/logger"
	"github.com/resumematcher/resume-search/internal/search"
	"github.com/resumematcher/resume-search/model"
	"github.com/resumematcher/resume-search/services"
)

// Observer receives load and search outcomes, typically for Prometheus.
type Observer interface {
	ObserveLoad(documents, terms, skipped int, err error, took time.Duration)
	ObserveSearch(searchType string, results int, err error, took time.Duration)
}

// Tracker receives search outcomes for analytics.
type Tracker interface {
	TrackResult(searchType services.SearchType, query string, result services.SearchResult, took time.Duration, err error)
}

// Config wires an Engine to its collaborators. Only Source is required.
type Config struct {
	Source       services.DocumentSource
	Search       search.Settings
	BuildWorkers int
	JobWorkers   int
	Observer     Observer
	Tracker      Tracker
	JobRecorder  jobs.Recorder
}

// Engine serves searches from an immutable snapshot and replaces that snapshot
// atomically on reload. It implements the services.SearchEngine interface.
type Engine struct {
	current atomic.Pointer[Snapshot]

	loadMu     sync.Mutex // serializes reloads
	reloads    singleflight.Group
	generation uint64 // guarded by loadMu

	source     services.DocumentSource
	builder    *indexing.Builder
	settings   search.Settings
	observer   Observer
	tracker    Tracker
	jobManager *jobs.Manager
	log        *slog.Logger
}

// NewEngine creates an engine with no index loaded and starts its job manager.
func NewEngine(cfg Config) (*Engine, error) {
	if cfg.Source == nil {
		return nil, fmt.Errorf("document source cannot be nil")
	}
	if cfg.Search == (search.Settings{}) {
		cfg.Search = search.DefaultSettings()
	}

	e := &Engine{
		source:     cfg.Source,
		builder:    indexing.NewBuilder(indexing.BuildConfig{WorkerCount: cfg.BuildWorkers}),
		settings:   cfg.Search,
		observer:   cfg.Observer,
		tracker:    cfg.Tracker,
		jobManager: jobs.NewManager(cfg.JobWorkers, cfg.JobRecorder),
		log:        logger.WithComponent("engine"),
	}
	e.jobManager.Start()
	return e, nil
}

// Close stops background jobs.
func (e *Engine) Close() {
	e.jobManager.Stop()
}

// GetJobManager returns the job manager for API access
func (e *Engine) GetJobManager() *jobs.Manager {
	return e.jobManager
}

// Load reads dir, builds a complete index from scratch and publishes it.
// Concurrent loads of the same directory share one build. On failure the
// previously published snapshot keeps serving.
func (e *Engine) Load(ctx context.Context, dir string) (services.LoadStats, error) {
	return e.sharedLoad(ctx, dir, nil)
}

// sharedLoad joins or starts the build of dir. The build runs detached from
// ctx. A caller whose ctx ends stops waiting and the joined callers still get
// the result.
func (e *Engine) sharedLoad(ctx context.Context, dir string, progress progressFunc) (services.LoadStats, error) {
	ch := e.reloads.DoChan(dir, func() (any, error) {
		return e.load(context.WithoutCancel(ctx), dir, progress)
	})
	select {
	case <-ctx.Done():
		return services.LoadStats{}, ctx.Err()
	case res := <-ch:
		if res.Shared {
			e.log.Debug("joined in-flight reload", "directory", dir)
		}
		if res.Err != nil {
			return services.LoadStats{}, res.Err
		}
		return res.Val.(services.LoadStats), nil
	}
}

// progressFunc reports load progress in documents as (processed, total, message).
type progressFunc func(current, total int, message string)

func (e *Engine) load(ctx context.Context, dir string, progress progressFunc) (services.LoadStats, error) {
	e.loadMu.Lock()
	defer e.loadMu.Unlock()

	start := time.Now()
	report := func(current, total int, message string) {
		if progress != nil {
			progress(current, total, message)
		}
	}
	e.log.Info("loading corpus", "directory", dir)

	report(0, 0, "reading documents")
	docs, skipped, err := e.source.ReadDirectory(ctx, dir)
	if err != nil {
		return e.loadFailed(dir, err, start)
	}

	report(0, len(docs), fmt.Sprintf("indexing %d documents", len(docs)))
	var built indexing.ProgressFunc
	if progress != nil {
		built = func(processed, total int) {
			progress(processed, total, "normalizing documents")
		}
	}
	corpus, err := e.builder.Build(ctx, docs, built)
	if err != nil {
		return e.loadFailed(dir, internalErrors.NewLoadError(dir, err), start)
	}

	svc, err := search.NewService(corpus, e.settings)
	if err != nil {
		return e.loadFailed(dir, internalErrors.NewLoadError(dir, err), start)
	}

	e.generation++
	snap := newSnapshot(svc, docs, dir, e.generation, time.Now())
	e.current.Store(snap)
	report(len(docs), len(docs), "index published")

	took := time.Since(start)
	stats := services.LoadStats{
		Directory:      dir,
		Documents:      corpus.Len(),
		Skipped:        skipped,
		Terms:          corpus.Space.NumTerms(),
		VocabularySize: corpus.Vocabulary.Len(),
		Generation:     snap.generation,
		Took:           took.Milliseconds(),
	}
	if e.observer != nil {
		e.observer.ObserveLoad(stats.Documents, stats.Terms, skipped, nil, took)
	}

	if stats.Documents == 0 {
		e.log.Warn("no eligible documents found; serving an empty index", "directory", dir)
	}
	e.log.Info("corpus indexed",
		"directory", dir,
		"documents", stats.Documents,
		"skipped", skipped,
		"terms", stats.Terms,
		"vocabulary", stats.VocabularySize,
		"generation", stats.Generation,
		"duration", took,
	)
	return stats, nil
}

func (e *Engine) loadFailed(dir string, err error, start time.Time) (services.LoadStats, error) {
	took := time.Since(start)
	if e.observer != nil {
		e.observer.ObserveLoad(0, 0, 0, err, took)
	}
	e.log.Error("corpus load failed; keeping previous index", "directory", dir, "error", err)
	return services.LoadStats{}, err
}

// Stats describes the snapshot currently being served.
func (e *Engine) Stats() services.IndexStats {
	snap := e.current.Load()
	if snap == nil {
		return services.IndexStats{}
	}
	return snap.stats()
}

// GetDocument returns a document of the served corpus by ID.
func (e *Engine) GetDocument(documentID string) (model.Document, bool) {
	snap := e.current.Load()
	if snap == nil {
		return model.Document{}, false
	}
	return snap.document(documentID)
}
