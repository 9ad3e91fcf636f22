package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	internalErrors "github.com/resumematcher/resume-search/internal/errors"
)

// SearchRequest is the body of /search and /tolerant-search.
type SearchRequest struct {
	Query string `json:"query"`
}

// RefineSearchRequest is the body of /refine-search.
type RefineSearchRequest struct {
	OriginalQuery string   `json:"original_query"`
	RelevantDocs  []string `json:"relevant_docs"`
}

// SearchHandler ranks resumes against a free-text query.
// Request Body: SearchRequest
func (api *API) SearchHandler(c *gin.Context) {
	var req SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		SendInvalidJSONError(c, err)
		return
	}
	if result := ValidateQuery("query", req.Query); result.HasErrors() {
		SendStructuredValidationError(c, result)
		return
	}

	results, err := api.engine.Search(c.Request.Context(), req.Query)
	if err != nil {
		sendSearchFailure(c, err)
		return
	}
	c.JSON(http.StatusOK, results)
}

// RefineSearchHandler re-runs a query pulled toward resumes marked relevant.
// Request Body: RefineSearchRequest
func (api *API) RefineSearchHandler(c *gin.Context) {
	var req RefineSearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		SendInvalidJSONError(c, err)
		return
	}
	result := ValidateQuery("original_query", req.OriginalQuery)
	result.Merge(ValidateRelevantDocs(req.RelevantDocs))
	if result.HasErrors() {
		SendStructuredValidationError(c, result)
		return
	}

	results, err := api.engine.RefineSearch(c.Request.Context(), req.OriginalQuery, req.RelevantDocs)
	if err != nil {
		sendSearchFailure(c, err)
		return
	}
	c.JSON(http.StatusOK, results)
}

// TolerantSearchHandler corrects misspellings and expands wildcards before
// searching. The response carries the rewritten query.
// Request Body: SearchRequest
func (api *API) TolerantSearchHandler(c *gin.Context) {
	var req SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		SendInvalidJSONError(c, err)
		return
	}
	if result := ValidateQuery("query", req.Query); result.HasErrors() {
		SendStructuredValidationError(c, result)
		return
	}

	results, err := api.engine.TolerantSearch(c.Request.Context(), req.Query)
	if err != nil {
		sendSearchFailure(c, err)
		return
	}
	c.JSON(http.StatusOK, results)
}

func sendSearchFailure(c *gin.Context, err error) {
	switch {
	case errors.Is(err, internalErrors.ErrNotIndexed):
		SendNotIndexedError(c)
	case errors.Is(err, internalErrors.ErrVocabularyNotBuilt):
		SendVocabularyNotBuiltError(c)
	default:
		SendSearchError(c, err)
	}
}
