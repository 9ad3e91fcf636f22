package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common error conditions
var (
	// ErrNotIndexed is returned when a search runs before any resumes were indexed
	ErrNotIndexed = errors.New("no resumes indexed")

	// ErrVocabularyNotBuilt is returned when a tolerant search runs before a vocabulary exists
	ErrVocabularyNotBuilt = errors.New("vocabulary not built")

	// ErrLoadFailure is returned when the document directory cannot be read
	ErrLoadFailure = errors.New("failed to load documents")

	// ErrDocumentRead is returned when a single document cannot be read
	ErrDocumentRead = errors.New("failed to read document")

	// ErrJobNotFound is returned when a job is not found
	ErrJobNotFound = errors.New("job not found")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")
)

// LoadError represents a corpus-level load failure with context
type LoadError struct {
	Directory string
	Err       error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load documents from '%s': %v", e.Directory, e.Err)
}

func (e *LoadError) Is(target error) bool {
	return target == ErrLoadFailure
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// NewLoadError creates a new LoadError
func NewLoadError(directory string, err error) *LoadError {
	return &LoadError{Directory: directory, Err: err}
}

// DocumentReadError represents a failure to read one document of the corpus
type DocumentReadError struct {
	DocumentID string
	Err        error
}

func (e *DocumentReadError) Error() string {
	return fmt.Sprintf("failed to read document '%s': %v", e.DocumentID, e.Err)
}

func (e *DocumentReadError) Is(target error) bool {
	return target == ErrDocumentRead
}

func (e *DocumentReadError) Unwrap() error {
	return e.Err
}

// NewDocumentReadError creates a new DocumentReadError
func NewDocumentReadError(documentID string, err error) *DocumentReadError {
	return &DocumentReadError{DocumentID: documentID, Err: err}
}

// JobNotFoundError represents a job not found error with context
type JobNotFoundError struct {
	JobID string
}

func (e *JobNotFoundError) Error() string {
	return fmt.Sprintf("job with ID '%s' not found", e.JobID)
}

func (e *JobNotFoundError) Is(target error) bool {
	return target == ErrJobNotFound
}

// NewJobNotFoundError creates a new JobNotFoundError
func NewJobNotFoundError(jobID string) *JobNotFoundError {
	return &JobNotFoundError{JobID: jobID}
}

// ValidationError represents an input validation error with context
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error for field '%s': %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
