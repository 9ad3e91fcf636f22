package analytics

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/resumematcher/resume-search/model"
	"github.com/resumematcher/resume-search/services"
)

const (
	maxEventsToKeep   = 10000 // Keep last 10k events for performance
	maxPopularQueries = 10
	day               = 24 * time.Hour
	week              = 7 * day
)

// StatsProvider exposes the statistics of the served index.
type StatsProvider interface {
	Stats() services.IndexStats
}

// StatsFunc adapts a function to StatsProvider.
type StatsFunc func() services.IndexStats

// Stats calls f.
func (f StatsFunc) Stats() services.IndexStats { return f() }

// Service implements analytics tracking and reporting. Events live in memory
// only and are lost on restart.
type Service struct {
	mutex  sync.RWMutex
	events []model.SearchEvent
	stats  StatsProvider
	now    func() time.Time
}

// NewService creates a new analytics service. stats may be nil.
func NewService(stats StatsProvider) *Service {
	return &Service{
		events: make([]model.SearchEvent, 0),
		stats:  stats,
		now:    time.Now,
	}
}

// TrackSearchEvent records a new search event. A zero Timestamp is set to now.
func (s *Service) TrackSearchEvent(event model.SearchEvent) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if event.Timestamp.IsZero() {
		event.Timestamp = s.now()
	}
	s.events = append(s.events, event)

	// Keep only the latest events to prevent unbounded growth
	if len(s.events) > maxEventsToKeep {
		s.events = s.events[len(s.events)-maxEventsToKeep:]
	}
}

// TrackResult records the outcome of one search call.
func (s *Service) TrackResult(searchType services.SearchType, query string, result services.SearchResult, took time.Duration, err error) {
	s.TrackSearchEvent(model.SearchEvent{
		QueryID:        result.QueryId,
		Query:          query,
		RewrittenQuery: result.RewrittenQuery,
		SearchType:     string(searchType),
		ResponseTime:   took,
		ResultCount:    len(result.Hits),
		Failed:         err != nil,
	})
}

// EventCount returns the number of retained events.
func (s *Service) EventCount() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return len(s.events)
}

// GetDashboardData returns complete analytics dashboard data
func (s *Service) GetDashboardData() model.AnalyticsDashboard {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	now := s.now()
	last24h := filterEventsByTimeRange(s.events, now.Add(-day), now)
	prev24h := filterEventsByTimeRange(s.events, now.Add(-2*day), now.Add(-day))
	lastWeek := filterEventsByTimeRange(s.events, now.Add(-week), now)
	prevWeek := filterEventsByTimeRange(s.events, now.Add(-2*week), now.Add(-week))

	dashboard := model.AnalyticsDashboard{
		TotalSearches:            len(last24h),
		SearchesChangePercent:    calculateChangePercent(len(last24h), len(prev24h)),
		AvgResponseTime:          calculateAvgResponseTime(last24h),
		ResponseTimeChange:       calculateResponseTimeChange(last24h, prev24h),
		Corpus:                   s.corpusSummary(),
		SearchPerformance24h:     getHourlyPerformance(last24h),
		PopularSearches:          getPopularSearches(lastWeek, prevWeek, func(model.SearchEvent) bool { return true }),
		ZeroResultQueries:        getPopularSearches(lastWeek, prevWeek, isZeroResult),
		ResponseTimeDistribution: getResponseTimeDistribution(last24h),
		SearchTypes:              getSearchTypeStats(last24h),
	}

	for _, event := range last24h {
		if event.Failed {
			dashboard.FailedSearches++
		} else if event.ResultCount == 0 {
			dashboard.ZeroResultSearches++
		}
		if event.RewrittenQuery != "" && event.RewrittenQuery != strings.ToLower(event.Query) {
			dashboard.RewrittenQueries++
		}
	}

	return dashboard
}

func (s *Service) corpusSummary() model.CorpusSummary {
	if s.stats == nil {
		return model.CorpusSummary{}
	}
	st := s.stats.Stats()
	return model.CorpusSummary{
		Loaded:         st.Loaded,
		Documents:      st.Documents,
		Terms:          st.Terms,
		VocabularySize: st.VocabularySize,
		Generation:     st.Generation,
	}
}

func isZeroResult(event model.SearchEvent) bool {
	return !event.Failed && event.ResultCount == 0
}

// filterEventsByTimeRange returns events in (start, end]
func filterEventsByTimeRange(events []model.SearchEvent, start, end time.Time) []model.SearchEvent {
	var filtered []model.SearchEvent
	for _, event := range events {
		if event.Timestamp.After(start) && !event.Timestamp.After(end) {
			filtered = append(filtered, event)
		}
	}
	return filtered
}

// calculateChangePercent calculates percentage change between current and previous values
func calculateChangePercent(current, previous int) float64 {
	if previous == 0 {
		if current > 0 {
			return 100.0
		}
		return 0.0
	}
	return float64(current-previous) / float64(previous) * 100.0
}

// calculateAvgResponseTime calculates average response time in milliseconds
func calculateAvgResponseTime(events []model.SearchEvent) float64 {
	if len(events) == 0 {
		return 0
	}
	var total time.Duration
	for _, event := range events {
		total += event.ResponseTime
	}
	return float64(total) / float64(len(events)) / float64(time.Millisecond)
}

// calculateResponseTimeChange calculates response time change trend
func calculateResponseTimeChange(current, previous []model.SearchEvent) string {
	currentAvg := calculateAvgResponseTime(current)
	previousAvg := calculateAvgResponseTime(previous)
	if previousAvg == 0 {
		return "stable"
	}
	return trend(currentAvg, previousAvg)
}

func trend(current, previous float64) string {
	if previous == 0 {
		if current > 0 {
			return "up"
		}
		return "stable"
	}
	change := (current - previous) / previous
	switch {
	case change > 0.1:
		return "up"
	case change < -0.1:
		return "down"
	}
	return "stable"
}

// getHourlyPerformance buckets events by hour of day
func getHourlyPerformance(events []model.SearchEvent) []model.SearchPerformanceHourly {
	hourlyData := make(map[int][]model.SearchEvent)
	for _, event := range events {
		hour := event.Timestamp.Hour()
		hourlyData[hour] = append(hourlyData[hour], event)
	}

	performance := make([]model.SearchPerformanceHourly, 0, 24)
	for hour := 0; hour < 24; hour++ {
		performance = append(performance, model.SearchPerformanceHourly{
			Hour:            hour,
			SearchCount:     len(hourlyData[hour]),
			AvgResponseTime: calculateAvgResponseTime(hourlyData[hour]),
		})
	}
	return performance
}

// getPopularSearches returns the most frequent queries among events accepted
// by keep, with their trend against the previous period
func getPopularSearches(current, previous []model.SearchEvent, keep func(model.SearchEvent) bool) []model.PopularSearch {
	count := func(events []model.SearchEvent) map[string]int {
		counts := make(map[string]int)
		for _, event := range events {
			query := strings.ToLower(strings.TrimSpace(event.Query))
			if query != "" && keep(event) {
				counts[query]++
			}
		}
		return counts
	}
	currentCounts := count(current)
	previousCounts := count(previous)

	popular := make([]model.PopularSearch, 0, len(currentCounts))
	for query, n := range currentCounts {
		popular = append(popular, model.PopularSearch{
			Query:       query,
			SearchCount: n,
			TrendChange: trend(float64(n), float64(previousCounts[query])),
		})
	}

	sort.Slice(popular, func(i, j int) bool {
		if popular[i].SearchCount != popular[j].SearchCount {
			return popular[i].SearchCount > popular[j].SearchCount
		}
		return popular[i].Query < popular[j].Query
	})
	if len(popular) > maxPopularQueries {
		popular = popular[:maxPopularQueries]
	}
	return popular
}

// getResponseTimeDistribution returns response time distribution
func getResponseTimeDistribution(events []model.SearchEvent) model.ResponseTimeDistribution {
	dist := model.ResponseTimeDistribution{}
	total := len(events)
	if total == 0 {
		return dist
	}

	for _, event := range events {
		switch rt := event.ResponseTime; {
		case rt <= time.Millisecond:
			dist.Bucket0To1ms++
		case rt <= 10*time.Millisecond:
			dist.Bucket1To10ms++
		case rt <= 100*time.Millisecond:
			dist.Bucket10To100ms++
		default:
			dist.Bucket100msPlus++
		}
	}

	dist.Percentage0To1 = float64(dist.Bucket0To1ms) / float64(total) * 100
	dist.Percentage1To10 = float64(dist.Bucket1To10ms) / float64(total) * 100
	dist.Percentage10To100 = float64(dist.Bucket10To100ms) / float64(total) * 100
	dist.Percentage100Plus = float64(dist.Bucket100msPlus) / float64(total) * 100
	return dist
}

// getSearchTypeStats counts events per search entry point
func getSearchTypeStats(events []model.SearchEvent) model.SearchTypeStats {
	stats := model.SearchTypeStats{}
	for _, event := range events {
		switch services.SearchType(event.SearchType) {
		case services.SearchTypePlain:
			stats.Search++
		case services.SearchTypeRefine:
			stats.Refine++
		case services.SearchTypeTolerant:
			stats.Tolerant++
		}
	}
	return stats
}
