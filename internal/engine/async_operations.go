package engine

import (
	"context"
	"fmt"

	internalErrors "github.com/resumematcher/resume-search/internal/errors"
	"github.com/resumematcher/resume-search/model"
)

// ReloadAsync schedules a full reload of dir as a background job and returns
// the job ID. Progress and failure are reported on the job.
func (e *Engine) ReloadAsync(dir string) (string, error) {
	if dir == "" {
		return "", internalErrors.NewValidationError("directory", "cannot be empty")
	}

	jobID := e.jobManager.CreateJob(model.JobTypeReload, dir, map[string]string{
		"operation": "reload",
	})

	err := e.jobManager.ExecuteJob(jobID, func(ctx context.Context, job *model.Job) error {
		return e.executeReloadJob(ctx, dir, jobID)
	})
	if err != nil {
		return "", fmt.Errorf("failed to start reload job: %w", err)
	}

	return jobID, nil
}

// executeReloadJob executes the reload job.
func (e *Engine) executeReloadJob(ctx context.Context, dir string, jobID string) error {
	progress := func(current, total int, message string) {
		e.jobManager.UpdateJobProgress(jobID, current, total, message)
	}

	stats, err := e.sharedLoad(ctx, dir, progress)
	if err != nil {
		return err
	}

	e.jobManager.UpdateJobProgress(jobID, stats.Documents, stats.Documents,
		fmt.Sprintf("indexed %d documents (generation %d)", stats.Documents, stats.Generation))
	return nil
}
