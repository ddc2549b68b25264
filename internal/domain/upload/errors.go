package upload

import (
	"fmt"

	"github.com/honeycarbs/niceboard/internal/domain"
	"github.com/honeycarbs/niceboard/pkg/niceboard"
)

// ValidationError reports a missing or invalid input field
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "Missing required field: " + e.Field
}

// ResolutionError wraps a failure to map a reference to a remote id
type ResolutionError struct {
	Entity string
	Err    error
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("Failed to process %s: %v", e.Entity, e.Err)
}

func (e *ResolutionError) Unwrap() error {
	return e.Err
}

// NeedsCorrectionError is returned when a job type matches none of the
// board's job types. It carries every valid option so callers can offer a
// correction instead of a generic failure.
type NeedsCorrectionError struct {
	JobType    string
	ValidTypes []niceboard.JobType
}

func (e *NeedsCorrectionError) Error() string {
	return fmt.Sprintf("Job type '%s' not found in available types", e.JobType)
}

// Correction renders the structured payload attached to the upload result
func (e *NeedsCorrectionError) Correction() *domain.JobTypeCorrection {
	valid := make(map[string]domain.JobTypeOption, len(e.ValidTypes))
	for _, jt := range e.ValidTypes {
		if _, ok := valid[jt.Name]; ok {
			continue
		}
		valid[jt.Name] = domain.JobTypeOption{ID: jt.ID, Slug: jt.Slug, Name: jt.Name}
	}
	return &domain.JobTypeCorrection{
		Error:         e.Error(),
		ValidJobTypes: valid,
		Suggestion:    "Please select one of the valid job types listed",
	}
}
