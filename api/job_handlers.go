package api

import (
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	internalErrors "github.com/resumematcher/resume-search/internal/errors"
	"github.com/resumematcher/resume-search/model"
)

// ReloadRequest is the optional body of /reload.
type ReloadRequest struct {
	Directory string `json:"directory"`
}

// ReloadHandler starts a background reload of the corpus and returns its job ID.
// Request Body: ReloadRequest (optional; defaults to the configured corpus directory)
func (api *API) ReloadHandler(c *gin.Context) {
	if api.reloader == nil {
		SendNotSupportedError(c, "Background reload")
		return
	}

	var req ReloadRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			SendInvalidJSONError(c, err)
			return
		}
	}
	dir := api.corpusDir
	if requested := strings.TrimSpace(req.Directory); requested != "" {
		resolved, err := api.resolveReloadDir(requested)
		if err != nil {
			result := &ValidationResult{Valid: true}
			result.AddError("directory", err.Error())
			SendStructuredValidationError(c, result)
			return
		}
		dir = resolved
	}
	if dir == "" {
		result := &ValidationResult{Valid: true}
		result.AddError("directory", "Directory is required when no corpus directory is configured")
		SendStructuredValidationError(c, result)
		return
	}

	jobID, err := api.reloader.ReloadAsync(dir)
	if err != nil {
		var validationErr *internalErrors.ValidationError
		if errors.As(err, &validationErr) {
			result := &ValidationResult{Valid: true}
			result.AddError(validationErr.Field, validationErr.Message)
			SendStructuredValidationError(c, result)
			return
		}
		SendJobExecutionError(c, "reload", err)
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"status":  "accepted",
		"message": "Reload started for '" + dir + "'",
		"job_id":  jobID,
	})
}

// resolveReloadDir resolves a requested reload directory, following symlinks,
// and rejects anything outside the reload root. The root defaults to the
// configured corpus directory.
func (api *API) resolveReloadDir(requested string) (string, error) {
	root := api.reloadRoot
	if root == "" {
		root = api.corpusDir
	}
	if root == "" {
		return "", errors.New("Reloading a named directory is not allowed")
	}

	resolvedRoot, err := evalPath(root)
	if err != nil {
		return "", errors.New("Reload root cannot be resolved")
	}
	resolved, err := evalPath(requested)
	if err != nil {
		return "", fmt.Errorf("Directory '%s' does not exist", requested)
	}

	rel, err := filepath.Rel(resolvedRoot, resolved)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) || filepath.IsAbs(rel) {
		return "", fmt.Errorf("Directory '%s' is outside the allowed reload root", requested)
	}
	return resolved, nil
}

func evalPath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	return filepath.EvalSymlinks(abs)
}

// GetJobHandler handles requests to get job status by ID
func (api *API) GetJobHandler(c *gin.Context) {
	if api.jobs == nil {
		SendNotSupportedError(c, "Job management")
		return
	}

	jobID := c.Param("jobId")
	job, err := api.jobs.GetJob(jobID)
	if err != nil {
		if errors.Is(err, internalErrors.ErrJobNotFound) {
			SendJobNotFoundError(c, jobID)
			return
		}
		SendInternalError(c, "get job", err)
		return
	}

	c.JSON(http.StatusOK, job)
}

// ListJobsHandler handles requests to list jobs, optionally filtered by ?status=
func (api *API) ListJobsHandler(c *gin.Context) {
	if api.jobs == nil {
		SendNotSupportedError(c, "Job management")
		return
	}

	var statusFilter *model.JobStatus
	if statusParam := c.Query("status"); statusParam != "" {
		status := model.JobStatus(statusParam)
		if result := ValidateJobStatus(status); result.HasErrors() {
			SendStructuredValidationError(c, result)
			return
		}
		statusFilter = &status
	}

	jobs := api.jobs.ListJobs(statusFilter)
	c.JSON(http.StatusOK, gin.H{
		"jobs":  jobs,
		"total": len(jobs),
	})
}
