package engine

import (
	"context"
	"path/filepath"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	internalErrors "github.com/resumematcher/resume-search/internal/errors"
	testhelpers "github.com/resumematcher/resume-search/internal/testing"
	"github.com/resumematcher/resume-search/model"
	"github.com/resumematcher/resume-search/services"
	"github.com/resumematcher/resume-search/store"
)

// --- Test Helpers ---

type recordingObserver struct {
	mu       sync.Mutex
	loads    []error
	searches []string
}

func (o *recordingObserver) ObserveLoad(_, _, _ int, err error, _ time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.loads = append(o.loads, err)
}

func (o *recordingObserver) ObserveSearch(searchType string, _ int, _ error, _ time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.searches = append(o.searches, searchType)
}

type recordingTracker struct {
	mu     sync.Mutex
	events []services.SearchType
}

func (r *recordingTracker) TrackResult(searchType services.SearchType, _ string, _ services.SearchResult, _ time.Duration, _ error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, searchType)
}

// gatedSource serves fixed documents but blocks every read until release is
// closed. started is closed when the first read begins.
type gatedSource struct {
	files   map[string]string
	started chan struct{}
	release chan struct{}
	once    sync.Once

	mu      sync.Mutex
	ctxErrs []error
}

func newGatedSource(files map[string]string) *gatedSource {
	return &gatedSource{files: files, started: make(chan struct{}), release: make(chan struct{})}
}

func (s *gatedSource) ReadDirectory(ctx context.Context, _ string) ([]model.Document, int, error) {
	s.once.Do(func() { close(s.started) })
	<-s.release

	s.mu.Lock()
	s.ctxErrs = append(s.ctxErrs, ctx.Err())
	s.mu.Unlock()

	names := make([]string, 0, len(s.files))
	for name := range s.files {
		names = append(names, name)
	}
	sort.Strings(names)
	docs := make([]model.Document, 0, len(names))
	for _, name := range names {
		docs = append(docs, model.Document{ID: name, Content: s.files[name]})
	}
	return docs, 0, nil
}

func newTestEngine(t *testing.T, cfg Config) *Engine {
	t.Helper()
	if cfg.Source == nil {
		cfg.Source = store.NewDirectoryReader(nil, 2)
	}
	e, err := NewEngine(cfg)
	require.NoError(t, err)
	t.Cleanup(e.Close)
	return e
}

// --- Test Cases ---

func TestNewEngine_RequiresSource(t *testing.T) {
	_, err := NewEngine(Config{})
	assert.Error(t, err)
}

func TestEngine_BeforeLoad(t *testing.T) {
	e := newTestEngine(t, Config{})
	ctx := context.Background()

	_, err := e.Search(ctx, "python")
	assert.ErrorIs(t, err, internalErrors.ErrNotIndexed)

	_, err = e.RefineSearch(ctx, "python", []string{"a.txt"})
	assert.ErrorIs(t, err, internalErrors.ErrNotIndexed)

	_, err = e.TolerantSearch(ctx, "pythn")
	assert.ErrorIs(t, err, internalErrors.ErrVocabularyNotBuilt)

	assert.False(t, e.Stats().Loaded)
	_, ok := e.GetDocument("a.txt")
	assert.False(t, ok)
}

func TestEngine_LoadAndSearch(t *testing.T) {
	e := newTestEngine(t, Config{})
	ctx := context.Background()
	dir := testhelpers.WriteTwoResumeCorpus(t)

	stats, err := e.Load(ctx, dir)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Documents)
	assert.Equal(t, 0, stats.Skipped)
	assert.Equal(t, uint64(1), stats.Generation)
	assert.Greater(t, stats.Terms, 0)
	assert.Greater(t, stats.VocabularySize, 0)

	result, err := e.Search(ctx, "python experience")
	require.NoError(t, err)
	assert.Equal(t, []string{"a.txt", "b.txt"}, testhelpers.HitIDs(result))
	assert.Greater(t, result.Hits[0].Score, result.Hits[1].Score)
	assert.Greater(t, result.Hits[1].Score, 0.0)

	result, err = e.Search(ctx, "experience")
	require.NoError(t, err)
	assert.Equal(t, []string{"a.txt", "b.txt"}, testhelpers.HitIDs(result))

	tolerant, err := e.TolerantSearch(ctx, "pythn")
	require.NoError(t, err)
	assert.Equal(t, "python", tolerant.RewrittenQuery)
	assert.Equal(t, []string{"a.txt"}, testhelpers.HitIDs(tolerant))

	refined, err := e.RefineSearch(ctx, "experience", []string{"b.txt"})
	require.NoError(t, err)
	assert.Equal(t, "b.txt", refined.Hits[0].DocumentID)

	doc, ok := e.GetDocument("b.txt")
	require.True(t, ok)
	assert.Equal(t, model.Document{ID: "b.txt", Content: "Java backend engineer with database experience"}, doc)

	st := e.Stats()
	assert.True(t, st.Loaded)
	assert.Equal(t, dir, st.Directory)
	assert.Equal(t, 2, st.Documents)
}

func TestEngine_ReloadIsIdempotent(t *testing.T) {
	e := newTestEngine(t, Config{})
	ctx := context.Background()
	dir := testhelpers.WriteTwoResumeCorpus(t)

	first, err := e.Load(ctx, dir)
	require.NoError(t, err)
	before, err := e.Search(ctx, "python machine experience")
	require.NoError(t, err)

	second, err := e.Load(ctx, dir)
	require.NoError(t, err)
	after, err := e.Search(ctx, "python machine experience")
	require.NoError(t, err)

	assert.Equal(t, first.Documents, second.Documents)
	assert.Equal(t, first.Terms, second.Terms)
	assert.Equal(t, first.VocabularySize, second.VocabularySize)
	assert.Equal(t, first.Generation+1, second.Generation)
	assert.Equal(t, before.Hits, after.Hits)
}

func TestEngine_FailedReloadKeepsPreviousIndex(t *testing.T) {
	e := newTestEngine(t, Config{})
	ctx := context.Background()

	_, err := e.Load(ctx, testhelpers.WriteTwoResumeCorpus(t))
	require.NoError(t, err)

	_, err = e.Load(ctx, filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
	assert.ErrorIs(t, err, internalErrors.ErrLoadFailure)
	var loadErr *internalErrors.LoadError
	assert.ErrorAs(t, err, &loadErr)

	assert.Equal(t, uint64(1), e.Stats().Generation)
	result, err := e.Search(ctx, "python")
	require.NoError(t, err)
	assert.Equal(t, []string{"a.txt"}, testhelpers.HitIDs(result))
}

func TestEngine_FailedFirstLoadStaysUnbuilt(t *testing.T) {
	e := newTestEngine(t, Config{})

	_, err := e.Load(context.Background(), filepath.Join(t.TempDir(), "missing"))
	assert.ErrorIs(t, err, internalErrors.ErrLoadFailure)

	_, err = e.Search(context.Background(), "python")
	assert.ErrorIs(t, err, internalErrors.ErrNotIndexed)
}

func TestEngine_EmptyCorpus(t *testing.T) {
	e := newTestEngine(t, Config{})
	ctx := context.Background()
	dir := testhelpers.WriteCorpus(t, map[string]string{"readme.md": "not a resume"})

	stats, err := e.Load(ctx, dir)
	require.NoError(t, err)
	assert.Equal(t, 0, stats.Documents)

	st := e.Stats()
	assert.True(t, st.Loaded)
	assert.Equal(t, 0, st.Documents)

	_, err = e.Search(ctx, "python")
	assert.ErrorIs(t, err, internalErrors.ErrNotIndexed)
	_, err = e.TolerantSearch(ctx, "python")
	assert.ErrorIs(t, err, internalErrors.ErrVocabularyNotBuilt)
}

func TestEngine_EmptyReloadReplacesPreviousIndex(t *testing.T) {
	e := newTestEngine(t, Config{})
	ctx := context.Background()

	_, err := e.Load(ctx, testhelpers.WriteTwoResumeCorpus(t))
	require.NoError(t, err)
	_, err = e.Load(ctx, t.TempDir())
	require.NoError(t, err)

	_, err = e.Search(ctx, "python")
	assert.ErrorIs(t, err, internalErrors.ErrNotIndexed)
}

func TestEngine_ConcurrentReadsDuringReload(t *testing.T) {
	e := newTestEngine(t, Config{})
	ctx := context.Background()

	corpusA := testhelpers.WriteTwoResumeCorpus(t)
	corpusB := testhelpers.WriteCorpus(t, map[string]string{
		"c.txt": "Python data engineer with spark experience",
		"d.txt": "Python web developer with django experience",
		"e.txt": "Rust systems programmer",
	})
	_, err := e.Load(ctx, corpusA)
	require.NoError(t, err)

	setA := map[string]bool{"a.txt": true, "b.txt": true}
	setB := map[string]bool{"c.txt": true, "d.txt": true, "e.txt": true}

	var wg sync.WaitGroup
	stop := make(chan struct{})
	errs := make(chan string, 100)

	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-stop:
					return
				default:
				}
				result, err := e.Search(ctx, "python experience")
				if err != nil {
					errs <- err.Error()
					return
				}
				inA, inB := 0, 0
				for _, h := range result.Hits {
					if setA[h.DocumentID] {
						inA++
					}
					if setB[h.DocumentID] {
						inB++
					}
				}
				if inA > 0 && inB > 0 {
					errs <- "result mixes two index generations"
					return
				}
			}
		}()
	}

	for i := 0; i < 10; i++ {
		dir := corpusA
		if i%2 == 0 {
			dir = corpusB
		}
		_, err := e.Load(ctx, dir)
		require.NoError(t, err)
	}
	close(stop)
	wg.Wait()
	close(errs)

	for msg := range errs {
		t.Error(msg)
	}
	assert.Equal(t, uint64(11), e.Stats().Generation)
}

func TestEngine_ConcurrentLoadsOfSameDirectory(t *testing.T) {
	e := newTestEngine(t, Config{})
	dir := testhelpers.WriteTwoResumeCorpus(t)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			stats, err := e.Load(context.Background(), dir)
			assert.NoError(t, err)
			assert.Equal(t, 2, stats.Documents)
		}()
	}
	wg.Wait()

	gen := e.Stats().Generation
	assert.GreaterOrEqual(t, gen, uint64(1))
	assert.LessOrEqual(t, gen, uint64(8))
}

func TestEngine_CancelledCallerDoesNotFailJoinedLoad(t *testing.T) {
	source := newGatedSource(map[string]string{"a.txt": "Python developer", "b.txt": "Java engineer"})
	e := newTestEngine(t, Config{Source: source})

	ctx, cancel := context.WithCancel(context.Background())
	firstErr := make(chan error, 1)
	go func() {
		_, err := e.Load(ctx, "resumes")
		firstErr <- err
	}()
	<-source.started

	// The first caller stops waiting while the build is still blocked
	cancel()
	select {
	case err := <-firstErr:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("cancelled Load did not return")
	}

	// The build carries on and a later caller still gets its result
	secondDone := make(chan services.LoadStats, 1)
	secondErr := make(chan error, 1)
	go func() {
		stats, err := e.Load(context.Background(), "resumes")
		secondErr <- err
		secondDone <- stats
	}()

	close(source.release)
	require.NoError(t, <-secondErr)
	stats := <-secondDone
	assert.Equal(t, 2, stats.Documents)
	assert.True(t, e.Stats().Loaded)

	source.mu.Lock()
	defer source.mu.Unlock()
	for _, err := range source.ctxErrs {
		assert.NoError(t, err, "the shared build must not see the caller's cancellation")
	}
}

func TestEngine_ObserverAndTracker(t *testing.T) {
	observer := &recordingObserver{}
	tracker := &recordingTracker{}
	e := newTestEngine(t, Config{Observer: observer, Tracker: tracker})
	ctx := context.Background()

	_, _ = e.Search(ctx, "python")
	_, err := e.Load(ctx, testhelpers.WriteTwoResumeCorpus(t))
	require.NoError(t, err)
	_, _ = e.TolerantSearch(ctx, "pythn")
	_, _ = e.RefineSearch(ctx, "python", nil)

	observer.mu.Lock()
	assert.Equal(t, []error{nil}, observer.loads)
	assert.Equal(t, []string{"search", "tolerant", "refine"}, observer.searches)
	observer.mu.Unlock()

	tracker.mu.Lock()
	assert.Equal(t, []services.SearchType{services.SearchTypePlain, services.SearchTypeTolerant, services.SearchTypeRefine}, tracker.events)
	tracker.mu.Unlock()
}
