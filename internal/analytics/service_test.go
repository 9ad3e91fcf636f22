package analytics

import (
	"errors"
	"testing"
	"time"

	"github.com/resumematcher/resume-search/model"
	"github.com/resumematcher/resume-search/services"
)

type stubStats struct {
	stats services.IndexStats
}

func (s stubStats) Stats() services.IndexStats { return s.stats }

func newTestService(now time.Time) *Service {
	svc := NewService(stubStats{stats: services.IndexStats{Loaded: true, Documents: 2, Terms: 9, VocabularySize: 9, Generation: 1}})
	svc.now = func() time.Time { return now }
	return svc
}

func TestAnalyticsService_TrackSearchEvent(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	svc := newTestService(now)

	svc.TrackSearchEvent(model.SearchEvent{Query: "python", SearchType: "search", ResultCount: 1})

	if svc.EventCount() != 1 {
		t.Fatalf("Expected 1 event, got %d", svc.EventCount())
	}
	if !svc.events[0].Timestamp.Equal(now) {
		t.Errorf("Expected timestamp %v, got %v", now, svc.events[0].Timestamp)
	}
}

func TestAnalyticsService_TrackResult(t *testing.T) {
	svc := newTestService(time.Now())

	result := services.SearchResult{
		Hits:           []services.Hit{{DocumentID: "a.txt", Score: 0.7}},
		RewrittenQuery: "python",
		QueryId:        "q-1",
	}
	svc.TrackResult(services.SearchTypeTolerant, "pythn", result, 2*time.Millisecond, nil)
	svc.TrackResult(services.SearchTypePlain, "python", services.SearchResult{}, time.Millisecond, errors.New("no resumes indexed"))

	if len(svc.events) != 2 {
		t.Fatalf("Expected 2 events, got %d", len(svc.events))
	}
	first := svc.events[0]
	if first.QueryID != "q-1" || first.ResultCount != 1 || first.SearchType != "tolerant" || first.Failed {
		t.Errorf("Unexpected first event: %+v", first)
	}
	if !svc.events[1].Failed {
		t.Error("Expected second event to be marked as failed")
	}
}

func TestAnalyticsService_EventRetention(t *testing.T) {
	svc := newTestService(time.Now())
	for i := 0; i < maxEventsToKeep+5; i++ {
		svc.TrackSearchEvent(model.SearchEvent{Query: "q"})
	}
	if svc.EventCount() != maxEventsToKeep {
		t.Errorf("Expected %d retained events, got %d", maxEventsToKeep, svc.EventCount())
	}
}

func TestAnalyticsService_GetDashboardData(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	svc := newTestService(now)

	events := []model.SearchEvent{
		{Query: "python", SearchType: "search", ResponseTime: 500 * time.Microsecond, ResultCount: 2, Timestamp: now.Add(-1 * time.Hour)},
		{Query: "Python", SearchType: "search", ResponseTime: 3 * time.Millisecond, ResultCount: 2, Timestamp: now.Add(-2 * time.Hour)},
		{Query: "pythn", RewrittenQuery: "python", SearchType: "tolerant", ResponseTime: 20 * time.Millisecond, ResultCount: 1, Timestamp: now.Add(-3 * time.Hour)},
		{Query: "haskell", SearchType: "search", ResponseTime: 200 * time.Millisecond, ResultCount: 0, Timestamp: now.Add(-4 * time.Hour)},
		{Query: "java", SearchType: "refine", ResponseTime: time.Millisecond, ResultCount: 0, Failed: true, Timestamp: now.Add(-5 * time.Hour)},
		// Previous day
		{Query: "python", SearchType: "search", ResponseTime: time.Millisecond, ResultCount: 2, Timestamp: now.Add(-30 * time.Hour)},
	}
	for _, e := range events {
		svc.TrackSearchEvent(e)
	}

	dashboard := svc.GetDashboardData()

	if dashboard.TotalSearches != 5 {
		t.Errorf("Expected 5 searches in the last 24h, got %d", dashboard.TotalSearches)
	}
	if dashboard.SearchesChangePercent != 400 {
		t.Errorf("Expected change of 400%%, got %v", dashboard.SearchesChangePercent)
	}
	if dashboard.ZeroResultSearches != 1 {
		t.Errorf("Expected 1 zero-result search, got %d", dashboard.ZeroResultSearches)
	}
	if dashboard.FailedSearches != 1 {
		t.Errorf("Expected 1 failed search, got %d", dashboard.FailedSearches)
	}
	if dashboard.RewrittenQueries != 1 {
		t.Errorf("Expected 1 rewritten query, got %d", dashboard.RewrittenQueries)
	}
	if len(dashboard.SearchPerformance24h) != 24 {
		t.Errorf("Expected 24 hourly performance entries, got %d", len(dashboard.SearchPerformance24h))
	}

	want := model.SearchTypeStats{Search: 3, Refine: 1, Tolerant: 1}
	if dashboard.SearchTypes != want {
		t.Errorf("Expected search types %+v, got %+v", want, dashboard.SearchTypes)
	}

	if len(dashboard.PopularSearches) == 0 || dashboard.PopularSearches[0].Query != "python" {
		t.Fatalf("Expected python to be the most popular search, got %+v", dashboard.PopularSearches)
	}
	if dashboard.PopularSearches[0].SearchCount != 3 {
		t.Errorf("Expected python to be counted 3 times in the last week, got %d", dashboard.PopularSearches[0].SearchCount)
	}

	if len(dashboard.ZeroResultQueries) != 1 || dashboard.ZeroResultQueries[0].Query != "haskell" {
		t.Errorf("Expected haskell as the only zero-result query, got %+v", dashboard.ZeroResultQueries)
	}

	dist := dashboard.ResponseTimeDistribution
	if dist.Bucket0To1ms != 2 || dist.Bucket1To10ms != 1 || dist.Bucket10To100ms != 1 || dist.Bucket100msPlus != 1 {
		t.Errorf("Unexpected response time distribution: %+v", dist)
	}

	if !dashboard.Corpus.Loaded || dashboard.Corpus.Documents != 2 {
		t.Errorf("Expected corpus summary from stats provider, got %+v", dashboard.Corpus)
	}
}

func TestAnalyticsService_EmptyDashboard(t *testing.T) {
	svc := NewService(nil)
	dashboard := svc.GetDashboardData()

	if dashboard.TotalSearches != 0 || dashboard.AvgResponseTime != 0 {
		t.Errorf("Expected empty dashboard, got %+v", dashboard)
	}
	if dashboard.ResponseTimeChange != "stable" {
		t.Errorf("Expected stable response time trend, got %s", dashboard.ResponseTimeChange)
	}
	if dashboard.Corpus.Loaded {
		t.Error("Expected no corpus without a stats provider")
	}
}
