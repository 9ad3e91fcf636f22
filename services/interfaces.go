package services

import (
	"context"
	"time"

	"github.com/resumematcher/resume-search/model"
)

// SearchType identifies which entry point produced a result.
type SearchType string

const (
	SearchTypePlain    SearchType = "search"
	SearchTypeRefine   SearchType = "refine"
	SearchTypeTolerant SearchType = "tolerant"
)

// Hit is a single ranked document.
type Hit struct {
	DocumentID string  `json:"document_id"`
	Score      float64 `json:"score"` // cosine similarity rounded to 4 decimals, always > 0
}

type SearchResult struct {
	Hits           []Hit  `json:"results"`
	Query          string `json:"query"`
	RewrittenQuery string `json:"rewritten_query,omitempty"` // set by tolerant search only
	Total          int    `json:"total"`
	Took           int64  `json:"took"`     // milliseconds
	QueryId        string `json:"query_id"` // unique UUID for this search query
}

// LoadStats describes the outcome of one successful corpus load.
type LoadStats struct {
	Directory      string `json:"directory"`
	Documents      int    `json:"documents"`
	Skipped        int    `json:"skipped"`         // files that could not be read
	Terms          int    `json:"terms"`           // stemmed vocabulary size
	VocabularySize int    `json:"vocabulary_size"` // unstemmed vocabulary size
	Generation     uint64 `json:"generation"`
	Took           int64  `json:"took"` // milliseconds
}

// IndexStats describes the index currently being served.
type IndexStats struct {
	Loaded         bool      `json:"loaded"`
	Directory      string    `json:"directory,omitempty"`
	Documents      int       `json:"documents"`
	Terms          int       `json:"terms"`
	VocabularySize int       `json:"vocabulary_size"`
	Generation     uint64    `json:"generation"`
	LoadedAt       time.Time `json:"loaded_at,omitempty"`
}

// Searcher defines the read-only query operations over one built index.
type Searcher interface {
	Search(query string) (SearchResult, error)
	RefineSearch(query string, relevantIDs []string) (SearchResult, error)
	TolerantSearch(query string) (SearchResult, error)
}

// SearchEngine is the entry point used by the HTTP layer and the CLI.
// Load replaces the served index atomically; the search operations never
// observe a partially built index.
type SearchEngine interface {
	Load(ctx context.Context, dir string) (LoadStats, error)
	Search(ctx context.Context, query string) (SearchResult, error)
	RefineSearch(ctx context.Context, query string, relevantIDs []string) (SearchResult, error)
	TolerantSearch(ctx context.Context, query string) (SearchResult, error)
	Stats() IndexStats
}

// AsyncReloader schedules corpus reloads as background jobs.
type AsyncReloader interface {
	ReloadAsync(dir string) (string, error) // Returns job ID
}

// JobManager defines operations for inspecting background jobs
type JobManager interface {
	GetJob(jobID string) (*model.Job, error)
	ListJobs(status *model.JobStatus) []*model.Job
}

// DocumentSource reads the documents of a corpus directory.
type DocumentSource interface {
	ReadDirectory(ctx context.Context, dir string) ([]model.Document, int, error)
}

// DocumentLookup returns documents of the served corpus by ID.
type DocumentLookup interface {
	GetDocument(documentID string) (model.Document, bool)
}
