package model

import "time"

// SearchEvent represents a single search event for analytics tracking
type SearchEvent struct {
	QueryID        string        `json:"query_id"`
	Query          string        `json:"query"`
	RewrittenQuery string        `json:"rewritten_query,omitempty"`
	SearchType     string        `json:"search_type"` // "search", "refine", "tolerant"
	ResponseTime   time.Duration `json:"response_time"`
	ResultCount    int           `json:"result_count"`
	Failed         bool          `json:"failed,omitempty"`
	Timestamp      time.Time     `json:"timestamp"`
}

// PopularSearch represents aggregated data for popular search terms
type PopularSearch struct {
	Query       string `json:"query"`
	SearchCount int    `json:"search_count"`
	TrendChange string `json:"trend_change,omitempty"` // "up", "down", "stable"
}

// ResponseTimeDistribution represents response time distribution buckets
type ResponseTimeDistribution struct {
	Bucket0To1ms      int     `json:"bucket_0_1ms"`
	Bucket1To10ms     int     `json:"bucket_1_10ms"`
	Bucket10To100ms   int     `json:"bucket_10_100ms"`
	Bucket100msPlus   int     `json:"bucket_100ms_plus"`
	Percentage0To1    float64 `json:"percentage_0_1"`
	Percentage1To10   float64 `json:"percentage_1_10"`
	Percentage10To100 float64 `json:"percentage_10_100"`
	Percentage100Plus float64 `json:"percentage_100_plus"`
}

// SearchTypeStats represents statistics for the different search entry points
type SearchTypeStats struct {
	Search   int `json:"search"`
	Refine   int `json:"refine"`
	Tolerant int `json:"tolerant"`
}

// SearchPerformanceHourly represents hourly search performance data
type SearchPerformanceHourly struct {
	Hour            int     `json:"hour"`
	SearchCount     int     `json:"search_count"`
	AvgResponseTime float64 `json:"avg_response_time_ms"`
}

// CorpusSummary describes the index being served when the dashboard is built
type CorpusSummary struct {
	Loaded         bool   `json:"loaded"`
	Documents      int    `json:"documents"`
	Terms          int    `json:"terms"`
	VocabularySize int    `json:"vocabulary_size"`
	Generation     uint64 `json:"generation"`
}

// AnalyticsDashboard represents the complete analytics dashboard data
type AnalyticsDashboard struct {
	// Summary metrics (last 24 hours)
	TotalSearches         int     `json:"total_searches"`
	SearchesChangePercent float64 `json:"searches_change_percent"`
	AvgResponseTime       float64 `json:"avg_response_time_ms"`
	ResponseTimeChange    string  `json:"response_time_change"`
	ZeroResultSearches    int     `json:"zero_result_searches"`
	FailedSearches        int     `json:"failed_searches"`
	RewrittenQueries      int     `json:"rewritten_queries"`

	// Detailed analytics
	Corpus                   CorpusSummary             `json:"corpus"`
	SearchPerformance24h     []SearchPerformanceHourly `json:"search_performance_24h"`
	PopularSearches          []PopularSearch           `json:"popular_searches"`
	ZeroResultQueries        []PopularSearch           `json:"zero_result_queries"`
	ResponseTimeDistribution ResponseTimeDistribution  `json:"response_time_distribution"`
	SearchTypes              SearchTypeStats           `json:"search_types"`
}
