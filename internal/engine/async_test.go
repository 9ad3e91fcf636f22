package engine

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	internalErrors "github.com/resumematcher/resume-search/internal/errors"
	testhelpers "github.com/resumematcher/resume-search/internal/testing"
	"github.com/resumematcher/resume-search/model"
)

func TestEngine_ReloadAsync(t *testing.T) {
	e := newTestEngine(t, Config{})
	dir := testhelpers.WriteTwoResumeCorpus(t)

	jobID, err := e.ReloadAsync(dir)
	require.NoError(t, err)
	require.NotEmpty(t, jobID)

	job := testhelpers.WaitForJob(t, e.GetJobManager(), jobID, testhelpers.DefaultJobPollingOptions())
	testhelpers.AssertJobCompleted(t, job, model.JobTypeReload, dir)
	require.NotNil(t, job.Progress)
	assert.Equal(t, 2, job.Progress.Current)
	assert.Equal(t, 2, job.Progress.Total)
	assert.Contains(t, job.Progress.Message, "indexed 2 documents")

	assert.Equal(t, 2, e.Stats().Documents)
}

func TestEngine_ReloadAsyncFailure(t *testing.T) {
	e := newTestEngine(t, Config{})

	jobID, err := e.ReloadAsync(filepath.Join(t.TempDir(), "missing"))
	require.NoError(t, err)

	job := testhelpers.WaitForJob(t, e.GetJobManager(), jobID, testhelpers.DefaultJobPollingOptions())
	assert.Equal(t, model.JobStatusFailed, job.Status)
	assert.Contains(t, job.Error, "failed to load documents")
	assert.False(t, e.Stats().Loaded)
}

func TestEngine_ReloadAsyncRequiresDirectory(t *testing.T) {
	e := newTestEngine(t, Config{})
	_, err := e.ReloadAsync("")
	assert.ErrorIs(t, err, internalErrors.ErrInvalidInput)
	assert.Empty(t, e.GetJobManager().ListJobs(nil))
}

func TestEngine_ReloadAsyncReportsDocumentProgress(t *testing.T) {
	source := newGatedSource(map[string]string{
		"a.txt": "Python developer",
		"b.txt": "Java engineer",
		"c.txt": "Go engineer",
	})
	e := newTestEngine(t, Config{Source: source})

	jobID, err := e.ReloadAsync("resumes")
	require.NoError(t, err)
	<-source.started

	job, err := e.GetJobManager().GetJob(jobID)
	require.NoError(t, err)
	require.NotNil(t, job.Progress)
	assert.Equal(t, "reading documents", job.Progress.Message)

	close(source.release)
	job = testhelpers.WaitForJob(t, e.GetJobManager(), jobID, testhelpers.DefaultJobPollingOptions())
	assert.Equal(t, model.JobStatusCompleted, job.Status)
	assert.Equal(t, 3, job.Progress.Current)
	assert.Equal(t, 3, job.Progress.Total)
	assert.Equal(t, 100.0, job.Progress.GetProgressPercentage())
}
