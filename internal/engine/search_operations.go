package engine

import (
	"context"
	"time"

	internalErrors "github.com/resumematcher/resume-search/internal/errors"
	"github.com/resumematcher/resume-search/internal/logger"
	"github.com/resumematcher/resume-search/services"
)

// Search ranks the served corpus against query. Before any successful load it
// returns ErrNotIndexed.
func (e *Engine) Search(ctx context.Context, query string) (services.SearchResult, error) {
	return e.run(ctx, services.SearchTypePlain, query, func(s *Snapshot) (services.SearchResult, error) {
		return s.searcher.Search(query)
	}, internalErrors.ErrNotIndexed)
}

// RefineSearch applies one round of relevance feedback toward relevantIDs.
func (e *Engine) RefineSearch(ctx context.Context, query string, relevantIDs []string) (services.SearchResult, error) {
	return e.run(ctx, services.SearchTypeRefine, query, func(s *Snapshot) (services.SearchResult, error) {
		return s.searcher.RefineSearch(query, relevantIDs)
	}, internalErrors.ErrNotIndexed)
}

// TolerantSearch corrects spelling and expands wildcards before searching.
// Before any successful load it returns ErrVocabularyNotBuilt.
func (e *Engine) TolerantSearch(ctx context.Context, query string) (services.SearchResult, error) {
	result, err := e.run(ctx, services.SearchTypeTolerant, query, func(s *Snapshot) (services.SearchResult, error) {
		return s.searcher.TolerantSearch(query)
	}, internalErrors.ErrVocabularyNotBuilt)
	if err == nil {
		logger.FromContext(ctx).Info("tolerant query rewritten",
			"component", "engine",
			"query", query,
			"rewritten_query", result.RewrittenQuery,
		)
	}
	return result, err
}

// run executes op against one snapshot and reports the outcome.
func (e *Engine) run(ctx context.Context, searchType services.SearchType, query string,
	op func(*Snapshot) (services.SearchResult, error), notLoaded error) (services.SearchResult, error) {
	start := time.Now()

	var (
		result services.SearchResult
		err    error
	)
	if snap := e.current.Load(); snap == nil {
		err = notLoaded
	} else {
		result, err = op(snap)
	}

	took := time.Since(start)
	if e.observer != nil {
		e.observer.ObserveSearch(string(searchType), len(result.Hits), err, took)
	}
	if e.tracker != nil {
		e.tracker.TrackResult(searchType, query, result, took, err)
	}
	if err != nil {
		logger.FromContext(ctx).Debug("search failed", "component", "engine", "type", searchType, "error", err)
	}
	return result, err
}
