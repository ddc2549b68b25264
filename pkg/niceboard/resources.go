package niceboard

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

const (
	defaultJobsPage  = 1
	defaultJobsLimit = 30
	remoteLocation   = "Remote"
)

// JobsService accesses /jobs
type JobsService struct {
	client *Client
}

// List returns jobs matching the filter
func (s *JobsService) List(ctx context.Context, filter JobFilter) ([]Job, error) {
	env, err := s.client.do(ctx, http.MethodGet, "jobs", filter.values(), nil)
	if err != nil {
		return nil, err
	}

	var jobs []Job
	if _, err := env.unwrap("jobs", &jobs); err != nil {
		return nil, err
	}
	for i := range jobs {
		s.enrich(&jobs[i])
	}
	return jobs, nil
}

// Get returns one job, or nil when the API has no such job
func (s *JobsService) Get(ctx context.Context, id int) (*Job, error) {
	env, err := s.client.do(ctx, http.MethodGet, "jobs/"+strconv.Itoa(id), nil, nil)
	if err != nil {
		return nil, err
	}

	var job Job
	ok, err := env.unwrap("job", &job)
	if err != nil || !ok {
		return nil, err
	}
	s.enrich(&job)
	return &job, nil
}

// Create posts a new job
func (s *JobsService) Create(ctx context.Context, in JobInput) (*Job, error) {
	env, err := s.client.do(ctx, http.MethodPost, "jobs", nil, in)
	if err != nil {
		return nil, err
	}
	return s.decodeJob(env)
}

// Update patches an existing job
func (s *JobsService) Update(ctx context.Context, id int, in JobInput) (*Job, error) {
	env, err := s.client.do(ctx, http.MethodPatch, "jobs/"+strconv.Itoa(id), nil, in)
	if err != nil {
		return nil, err
	}
	return s.decodeJob(env)
}

// Delete removes a job
func (s *JobsService) Delete(ctx context.Context, id int) (DeleteResult, error) {
	env, err := s.client.do(ctx, http.MethodDelete, "jobs/"+strconv.Itoa(id), nil, nil)
	if err != nil {
		return DeleteResult{}, err
	}
	return env.deleteResult(), nil
}

// decodeJob reads the job out of results.job, falling back to a top level job key
func (s *JobsService) decodeJob(env *envelope) (*Job, error) {
	var job Job
	ok, err := env.unwrap("job", &job)
	if err != nil {
		return nil, err
	}
	if !ok && len(env.Job) > 0 && string(env.Job) != "null" {
		if err := json.Unmarshal(env.Job, &job); err != nil {
			return nil, fmt.Errorf("niceboard: decode job: %w", err)
		}
		ok = true
	}
	if !ok {
		return &Job{}, nil
	}
	s.enrich(&job)
	return &job, nil
}

func (s *JobsService) enrich(job *Job) {
	base := s.client.jobURLBase()
	if base == "" || job.ID == 0 {
		return
	}
	job.PublishedURL = fmt.Sprintf("%s/%d-%s", base, job.ID, job.Slug)
}

func (f JobFilter) values() url.Values {
	v := url.Values{}
	page := f.Page
	if page <= 0 {
		page = defaultJobsPage
	}
	limit := f.Limit
	if limit <= 0 {
		limit = defaultJobsLimit
	}
	v.Set("page", strconv.Itoa(page))
	v.Set("limit", strconv.Itoa(limit))

	set := func(key, value string) {
		if value != "" {
			v.Set(key, value)
		}
	}
	set("company", f.Company)
	set("location", f.Location)
	set("category", f.Category)
	set("jobtype", f.JobType)
	set("keyword", f.Keyword)
	set("tags", f.Tags)
	if f.RemoteOK != nil {
		v.Set("remote_ok", strconv.FormatBool(*f.RemoteOK))
	}
	if f.IsFeatured != nil {
		v.Set("is_featured", strconv.FormatBool(*f.IsFeatured))
	}
	return v
}

// CompaniesService accesses /companies
type CompaniesService struct {
	client *Client
}

// List returns every company on the board
func (s *CompaniesService) List(ctx context.Context) ([]Company, error) {
	env, err := s.client.do(ctx, http.MethodGet, "companies", nil, nil)
	if err != nil {
		return nil, err
	}
	var companies []Company
	if _, err := env.unwrap("companies", &companies); err != nil {
		return nil, err
	}
	return companies, nil
}

// Get returns one company, or nil when it does not exist
func (s *CompaniesService) Get(ctx context.Context, id int) (*Company, error) {
	env, err := s.client.do(ctx, http.MethodGet, "companies/"+strconv.Itoa(id), nil, nil)
	if err != nil {
		return nil, err
	}
	var company Company
	ok, err := env.unwrap("company", &company)
	if err != nil || !ok {
		return nil, err
	}
	return &company, nil
}

// Create adds a company. Empty optional fields are omitted from the payload.
func (s *CompaniesService) Create(ctx context.Context, in CompanyInput) (*Company, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, fmt.Errorf("niceboard: company name is required")
	}
	env, err := s.client.do(ctx, http.MethodPost, "companies", nil, in)
	if err != nil {
		return nil, err
	}
	var company Company
	ok, err := env.unwrap("company", &company)
	if err != nil {
		return nil, err
	}
	if !ok || company.ID == 0 {
		return nil, fmt.Errorf("niceboard: create company %q: response carried no id", in.Name)
	}
	return &company, nil
}

// Delete removes a company
func (s *CompaniesService) Delete(ctx context.Context, id int) (DeleteResult, error) {
	env, err := s.client.do(ctx, http.MethodDelete, "companies/"+strconv.Itoa(id), nil, nil)
	if err != nil {
		return DeleteResult{}, err
	}
	return env.deleteResult(), nil
}

// LocationsService accesses /locations
type LocationsService struct {
	client *Client
}

// List returns every location on the board
func (s *LocationsService) List(ctx context.Context) ([]Location, error) {
	env, err := s.client.do(ctx, http.MethodGet, "locations", nil, nil)
	if err != nil {
		return nil, err
	}
	var locations []Location
	if _, err := env.unwrap("locations", &locations); err != nil {
		return nil, err
	}
	return locations, nil
}

// Get returns one location, or nil when it does not exist
func (s *LocationsService) Get(ctx context.Context, id int) (*Location, error) {
	env, err := s.client.do(ctx, http.MethodGet, "locations/"+strconv.Itoa(id), nil, nil)
	if err != nil {
		return nil, err
	}
	var location Location
	ok, err := env.unwrap("location", &location)
	if err != nil || !ok {
		return nil, err
	}
	return &location, nil
}

// Create adds a location
func (s *LocationsService) Create(ctx context.Context, name string) (*Location, error) {
	env, err := s.client.do(ctx, http.MethodPost, "locations", nil, map[string]string{"name": name})
	if err != nil {
		return nil, err
	}
	var location Location
	ok, err := env.unwrap("location", &location)
	if err != nil {
		return nil, err
	}
	if !ok || location.ID == 0 {
		return nil, fmt.Errorf("niceboard: create location %q: response carried no id", name)
	}
	return &location, nil
}

// GetOrCreate returns the location whose name matches case-insensitively,
// creating it when absent. "Remote" matches any location containing "remote".
func (s *LocationsService) GetOrCreate(ctx context.Context, name string) (*Location, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("niceboard: location name is required")
	}

	locations, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	if strings.EqualFold(name, remoteLocation) {
		for i := range locations {
			if strings.Contains(strings.ToLower(locations[i].Name), "remote") {
				return &locations[i], nil
			}
		}
		return s.Create(ctx, remoteLocation)
	}

	for i := range locations {
		if strings.EqualFold(locations[i].Name, name) {
			return &locations[i], nil
		}
	}
	return s.Create(ctx, name)
}

// CategoriesService accesses /categories
type CategoriesService struct {
	client *Client
}

// List returns every job category
func (s *CategoriesService) List(ctx context.Context) ([]Category, error) {
	env, err := s.client.do(ctx, http.MethodGet, "categories", nil, nil)
	if err != nil {
		return nil, err
	}
	var categories []Category
	if _, err := env.unwrap("categories", &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// Mapping returns category name -> id
func (s *CategoriesService) Mapping(ctx context.Context) (map[string]int, error) {
	categories, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make(map[string]int, len(categories))
	for _, c := range categories {
		out[c.Name] = c.ID
	}
	return out, nil
}

// JobTypesService accesses /jobtypes
type JobTypesService struct {
	client *Client
}

// List returns every job type
func (s *JobTypesService) List(ctx context.Context) ([]JobType, error) {
	env, err := s.client.do(ctx, http.MethodGet, "jobtypes", nil, nil)
	if err != nil {
		return nil, err
	}
	var types []JobType
	if _, err := env.unwrap("jobtypes", &types); err != nil {
		return nil, err
	}
	return types, nil
}

func (e *envelope) deleteResult() DeleteResult {
	if e != nil && e.Deleted != nil {
		return DeleteResult{Deleted: *e.Deleted}
	}
	return DeleteResult{Deleted: true}
}
