package domain

import (
	"encoding/json"

	"github.com/honeycarbs/niceboard/pkg/niceboard"
)

// JobRecord is one loosely structured job to upload. Resolved ids are
// written back into CompanyID, LocationID and JobTypeID during upload.
type JobRecord struct {
	Title           string `json:"title,omitempty" jsonschema:"Job title"`
	DescriptionHTML string `json:"description_html,omitempty" jsonschema:"Job description as HTML"`
	ApplyByForm     bool   `json:"apply_by_form,omitempty" jsonschema:"Applications go through the board form"`
	ApplyURL        string `json:"apply_url,omitempty" jsonschema:"External application URL"`
	ApplyEmail      string `json:"apply_email,omitempty" jsonschema:"Application e-mail address"`

	CompanyID            *int   `json:"company_id,omitempty" jsonschema:"Existing company id"`
	CompanyName          string `json:"company_name,omitempty" jsonschema:"Company name, required without company_id"`
	CompanyDescription   string `json:"company_description,omitempty"`
	CompanySiteURL       string `json:"company_site_url,omitempty"`
	CompanyLogoURL       string `json:"company_logo_url,omitempty"`
	CompanyLinkedinURL   string `json:"company_linkedin_url,omitempty"`
	CompanyTwitterHandle string `json:"company_twitter_handle,omitempty"`

	LocationID *int   `json:"location_id,omitempty" jsonschema:"Existing location id"`
	Location   string `json:"location,omitempty" jsonschema:"Free text location, required without location_id"`

	JobTypeID *int   `json:"jobtype_id,omitempty" jsonschema:"Existing job type id"`
	JobType   string `json:"job_type,omitempty" jsonschema:"Free text job type, required without jobtype_id"`

	Salary string `json:"salary,omitempty" jsonschema:"Free text salary such as $80,000 - $100,000 per year"`
	Remote bool   `json:"remote,omitempty"`
}

// SalaryRange is an annualized salary band. Nil bounds are unknown.
type SalaryRange struct {
	SalaryMin *float64 `json:"salary_min"`
	SalaryMax *float64 `json:"salary_max"`
}

// Operation tags which write an upload performed
type Operation string

const (
	OperationCreated Operation = "created"
	OperationUpdated Operation = "updated"
)

// Field names reported in UploadResult.FieldError
const (
	FieldCompany  = "company"
	FieldLocation = "location"
	FieldJobType  = "job_type"
)

// JobTypeOption is one valid job type offered for correction
type JobTypeOption struct {
	ID   int    `json:"id"`
	Slug string `json:"slug"`
	Name string `json:"name"`
}

// JobTypeCorrection is the structured detail attached to a job type that
// could not be matched
type JobTypeCorrection struct {
	Error         string                   `json:"error"`
	ValidJobTypes map[string]JobTypeOption `json:"valid_job_types"`
	Suggestion    string                   `json:"suggestion"`
}

// UploadResult is the outcome of uploading one record
type UploadResult struct {
	Success         bool               `json:"success"`
	Operation       Operation          `json:"operation,omitempty"`
	Job             *niceboard.Job     `json:"job,omitempty"`
	Message         string             `json:"message,omitempty"`
	FieldError      string             `json:"field_error,omitempty"`
	NeedsCorrection bool               `json:"needs_correction,omitempty"`
	ErrorDetails    *JobTypeCorrection `json:"error_details,omitempty"`
	Timestamp       string             `json:"timestamp"`
}

// BatchError is a failed UploadResult positioned in the input list
type BatchError struct {
	UploadResult
	JobIndex int    `json:"job_index"`
	JobTitle string `json:"job_title"`
}

// BatchStatus is the overall outcome of a batch upload
type BatchStatus int

const (
	BatchFailed BatchStatus = iota
	BatchSucceeded
	BatchPartial
)

func (s BatchStatus) String() string {
	switch s {
	case BatchSucceeded:
		return "success"
	case BatchPartial:
		return "partial_success"
	default:
		return "failed"
	}
}

// MarshalJSON encodes true, false or "partial_success"
func (s BatchStatus) MarshalJSON() ([]byte, error) {
	switch s {
	case BatchSucceeded:
		return []byte("true"), nil
	case BatchPartial:
		return json.Marshal("partial_success")
	default:
		return []byte("false"), nil
	}
}

// UnmarshalJSON accepts the encodings MarshalJSON produces
func (s *BatchStatus) UnmarshalJSON(data []byte) error {
	switch string(data) {
	case "true":
		*s = BatchSucceeded
	case `"partial_success"`:
		*s = BatchPartial
	default:
		*s = BatchFailed
	}
	return nil
}

// BatchResult aggregates the outcome of UploadJobs
type BatchResult struct {
	RunID      string       `json:"run_id"`
	Total      int          `json:"total"`
	Successful int          `json:"successful"`
	Failed     int          `json:"failed"`
	Errors     []BatchError `json:"errors"`
	JobIDs     []int        `json:"job_ids"`
	Success    BatchStatus  `json:"success"`
	Timestamp  string       `json:"timestamp"`
}
