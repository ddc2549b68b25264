package niceboard

import (
	"encoding/json"
	"net/http"
	"time"
)

// Config defines Niceboard API client settings
type Config struct {
	APIKey         string
	BaseURL        string
	HTTPClient     *http.Client
	MaxAttempts    int
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
}

// Company is a job board company record
type Company struct {
	ID            int    `json:"id"`
	Name          string `json:"name"`
	Slug          string `json:"slug"`
	Description   string `json:"description,omitempty"`
	SiteURL       string `json:"site_url,omitempty"`
	Logo          string `json:"logo,omitempty"`
	LinkedinURL   string `json:"linkedin_url,omitempty"`
	TwitterHandle string `json:"twitter_handle,omitempty"`
	ActiveJobs    int    `json:"active_jobs,omitempty"`
}

// Location is a job board location record
type Location struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Slug     string `json:"slug"`
	JobCount int    `json:"job_count,omitempty"`
}

// Category is a job board category record
type Category struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Slug     string `json:"slug"`
	JobCount int    `json:"job_count,omitempty"`
}

// JobType is a job board job type (full time, contract, ...)
type JobType struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Slug     string `json:"slug"`
	JobCount int    `json:"job_count,omitempty"`
}

// Job is a published job posting. PublishedURL is derived client side.
type Job struct {
	ID                     int             `json:"id"`
	Title                  string          `json:"title"`
	Slug                   string          `json:"slug"`
	DescriptionHTML        string          `json:"description_html,omitempty"`
	ApplyURL               string          `json:"apply_url,omitempty"`
	PublishedAt            string          `json:"published_at,omitempty"`
	SalaryMin              *float64        `json:"salary_min,omitempty"`
	SalaryMax              *float64        `json:"salary_max,omitempty"`
	RemoteOnly             bool            `json:"remote_only"`
	RemoteOK               bool            `json:"remote_ok"`
	RemoteRequiredLocation string          `json:"remote_required_location,omitempty"`
	IsFeatured             bool            `json:"is_featured"`
	Tags                   json.RawMessage `json:"tags,omitempty"`
	Company                *Company        `json:"company,omitempty"`
	Location               *Location       `json:"location,omitempty"`
	Category               *Category       `json:"category,omitempty"`
	JobType                *JobType        `json:"jobtype,omitempty"`
	PublishedURL           string          `json:"published_url,omitempty"`
}

// CompanyInput is the create payload for a company
type CompanyInput struct {
	Name          string `json:"name"`
	Description   string `json:"description,omitempty"`
	SiteURL       string `json:"site_url,omitempty"`
	Logo          string `json:"logo,omitempty"`
	LinkedinURL   string `json:"linkedin_url,omitempty"`
	TwitterHandle string `json:"twitter_handle,omitempty"`
}

// JobInput is the create/update payload for a job
type JobInput struct {
	CompanyID       int      `json:"company_id"`
	JobTypeID       int      `json:"jobtype_id"`
	LocationID      int      `json:"location_id"`
	Title           string   `json:"title"`
	DescriptionHTML string   `json:"description_html"`
	ApplyByForm     bool     `json:"apply_by_form"`
	ApplyURL        string   `json:"apply_url,omitempty"`
	ApplyEmail      string   `json:"apply_email,omitempty"`
	IsRemote        bool     `json:"is_remote"`
	RemoteOnly      bool     `json:"remote_only"`
	SalaryMin       *float64 `json:"salary_min,omitempty"`
	SalaryMax       *float64 `json:"salary_max,omitempty"`
}

// JobFilter narrows Jobs.List. Company, Location, Category and JobType are slugs.
type JobFilter struct {
	Company    string
	Location   string
	Category   string
	JobType    string
	Keyword    string
	Tags       string
	RemoteOK   *bool
	IsFeatured *bool
	Page       int
	Limit      int
}

// DeleteResult reports the outcome of a delete call
type DeleteResult struct {
	Deleted bool `json:"deleted"`
}

// envelope is the wrapper every Niceboard response arrives in
type envelope struct {
	Error   bool                       `json:"error"`
	Message string                     `json:"message,omitempty"`
	Results map[string]json.RawMessage `json:"results"`
	Job     json.RawMessage            `json:"job,omitempty"`
	Deleted *bool                      `json:"deleted,omitempty"`
}
