package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/resumematcher/resume-search/internal/analytics"
	"github.com/resumematcher/resume-search/internal/metrics"
	"github.com/resumematcher/resume-search/services"
)

const defaultMaxBodyBytes = 1 << 20

// Dependencies are the collaborators the HTTP layer is wired to. Engine is
// required; the others disable their routes when nil.
type Dependencies struct {
	Engine         services.SearchEngine
	Reloader       services.AsyncReloader
	Jobs           services.JobManager
	Documents      services.DocumentLookup
	Analytics      *analytics.Service
	Metrics        *metrics.Metrics
	CorpusDir      string // Reload target when a request names none
	ReloadRoot     string // Directories named in /reload must resolve inside it; defaults to CorpusDir
	AllowedOrigins []string
}

// API holds dependencies for API handlers.
type API struct {
	engine     services.SearchEngine
	reloader   services.AsyncReloader
	jobs       services.JobManager
	documents  services.DocumentLookup
	analytics  *analytics.Service
	corpusDir  string
	reloadRoot string
}

// NewAPI creates a new API handler structure.
func NewAPI(deps Dependencies) *API {
	return &API{
		engine:     deps.Engine,
		reloader:   deps.Reloader,
		jobs:       deps.Jobs,
		documents:  deps.Documents,
		analytics:  deps.Analytics,
		corpusDir:  deps.CorpusDir,
		reloadRoot: deps.ReloadRoot,
	}
}

// SetupRoutes defines all the API routes for the resume search service.
func SetupRoutes(router *gin.Engine, deps Dependencies) {
	apiHandler := NewAPI(deps)

	router.Use(RequestIDMiddleware())
	router.Use(CORSMiddleware(deps.AllowedOrigins))
	router.Use(RequestSizeLimitMiddleware(defaultMaxBodyBytes))
	if deps.Metrics != nil {
		router.Use(deps.Metrics.GinMiddleware())
		router.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))
	}

	router.GET("/", apiHandler.RootHandler)
	router.GET("/health", apiHandler.HealthCheckHandler)
	router.GET("/stats", apiHandler.StatsHandler)
	router.GET("/analytics", apiHandler.GetAnalyticsHandler)

	// Search routes
	router.POST("/search", apiHandler.SearchHandler)
	router.POST("/refine-search", apiHandler.RefineSearchHandler)
	router.POST("/tolerant-search", apiHandler.TolerantSearchHandler)

	router.GET("/documents/:documentId", apiHandler.GetDocumentHandler)

	// Reload and job routes
	router.POST("/reload", apiHandler.ReloadHandler)
	jobRoutes := router.Group("/jobs")
	{
		jobRoutes.GET("", apiHandler.ListJobsHandler)       // List jobs, optionally by ?status=
		jobRoutes.GET("/:jobId", apiHandler.GetJobHandler) // Get job status by ID
	}
}

// RootHandler greets API clients.
func (api *API) RootHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Hello from the Resume Matcher API!"})
}

// HealthCheckHandler provides a simple health check endpoint
func (api *API) HealthCheckHandler(c *gin.Context) {
	stats := api.engine.Stats()
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"service":   "resume-search",
		"indexed":   stats.Loaded,
		"documents": stats.Documents,
		"timestamp": time.Now().Unix(),
	})
}

// StatsHandler reports statistics about the served index.
func (api *API) StatsHandler(c *gin.Context) {
	c.JSON(http.StatusOK, api.engine.Stats())
}
