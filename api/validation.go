// Package api provides the gin HTTP transport for resume search.
package api

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/resumematcher/resume-search/model"
)

const (
	// MaxQueryLength bounds query text, in runes.
	MaxQueryLength = 2048
	// MaxRelevantDocs bounds the relevance feedback list of a refine request.
	MaxRelevantDocs = 100
)

// ValidationError represents a validation error with field context
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationResult holds the result of validation operations
type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

// AddError adds a validation error to the result
func (vr *ValidationResult) AddError(field, message string) {
	vr.Valid = false
	vr.Errors = append(vr.Errors, ValidationError{
		Field:   field,
		Message: message,
	})
}

// Merge appends the errors of other to vr.
func (vr *ValidationResult) Merge(other *ValidationResult) {
	for _, err := range other.Errors {
		vr.AddError(err.Field, err.Message)
	}
}

// HasErrors returns true if there are validation errors
func (vr *ValidationResult) HasErrors() bool {
	return len(vr.Errors) > 0
}

// ValidateQuery checks the length of query text. Empty queries are valid and
// simply match nothing.
func ValidateQuery(field, query string) *ValidationResult {
	result := &ValidationResult{Valid: true}

	if !utf8.ValidString(query) {
		result.AddError(field, "Query must be valid UTF-8")
		return result
	}
	if n := utf8.RuneCountInString(query); n > MaxQueryLength {
		result.AddError(field, fmt.Sprintf("Query is too long (%d characters, maximum %d)", n, MaxQueryLength))
	}

	return result
}

// ValidateRelevantDocs checks the relevance feedback list of a refine request.
// Unknown IDs are not an error; they are ignored by the search.
func ValidateRelevantDocs(ids []string) *ValidationResult {
	result := &ValidationResult{Valid: true}

	if len(ids) > MaxRelevantDocs {
		result.AddError("relevant_docs", fmt.Sprintf("At most %d relevant documents are allowed, got %d", MaxRelevantDocs, len(ids)))
		return result
	}
	for i, id := range ids {
		if strings.TrimSpace(id) == "" {
			result.AddError(fmt.Sprintf("relevant_docs[%d]", i), "Document ID cannot be empty")
		}
	}

	return result
}

// ValidateDocumentID validates a document ID
func ValidateDocumentID(documentID string) *ValidationResult {
	result := &ValidationResult{Valid: true}

	if documentID == "" {
		result.AddError("documentId", "Document ID is required")
		return result
	}

	if strings.TrimSpace(documentID) != documentID {
		result.AddError("documentId", "Document ID cannot have leading or trailing whitespace")
		return result
	}

	return result
}

// ValidateJobStatus validates a job status filter
func ValidateJobStatus(status model.JobStatus) *ValidationResult {
	result := &ValidationResult{Valid: true}

	switch status {
	case model.JobStatusPending, model.JobStatusRunning, model.JobStatusCompleted,
		model.JobStatusFailed, model.JobStatusCancelled:
	default:
		result.AddError("status", "Invalid job status '"+string(status)+"'")
	}

	return result
}
