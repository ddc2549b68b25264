package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/honeycarbs/niceboard/pkg/logging"
	"github.com/honeycarbs/niceboard/pkg/niceboard"
)

const (
	defaultSampleSize = 5
	topN              = 5
	unknown           = "Unknown"
)

// QueryType names the collection a search runs against
type QueryType string

const (
	QueryJobs       QueryType = "jobs"
	QueryCompanies  QueryType = "companies"
	QueryLocations  QueryType = "locations"
	QueryCategories QueryType = "categories"
	QueryJobTypes   QueryType = "jobtypes"
)

// Display selects how many entries accompany the statistics
type Display string

const (
	DisplaySummary Display = "summary"
	DisplayShowN   Display = "show_n"
	DisplayAll     Display = "all"
)

var validFields = map[QueryType][]string{
	QueryJobs: {
		"id", "title", "slug", "company", "location", "category", "jobtype",
		"salary_min", "salary_max", "remote_only", "remote_ok", "remote_required_location",
		"apply_url", "published_at", "published_url", "description_html", "is_featured", "tags",
		"company.name", "company.slug", "location.name", "location.slug",
		"job_type.name", "job_type.slug", "category.name", "category.slug",
	},
	QueryCompanies: {
		"id", "name", "site_url", "description", "logo", "linkedin_url", "twitter_handle", "active_jobs",
	},
	QueryLocations:  {"id", "name", "slug", "job_count"},
	QueryCategories: {"id", "name", "slug", "job_count"},
	QueryJobTypes:   {"id", "name", "slug", "job_count"},
}

// nestedAliases maps the field prefix callers use to the key the board returns
var nestedAliases = map[string]string{
	"job_type": "jobtype",
}

// Lister lists one collection of the board
type Lister[T any] interface {
	List(ctx context.Context) ([]T, error)
}

// JobLister lists jobs matching a filter
type JobLister interface {
	List(ctx context.Context, filter niceboard.JobFilter) ([]niceboard.Job, error)
}

// Remote bundles the collections a search can read
type Remote struct {
	Jobs       JobLister
	Companies  Lister[niceboard.Company]
	Locations  Lister[niceboard.Location]
	Categories Lister[niceboard.Category]
	JobTypes   Lister[niceboard.JobType]
}

// RemoteFromClient adapts a Niceboard client
func RemoteFromClient(c *niceboard.Client) Remote {
	return Remote{
		Jobs:       c.Jobs,
		Companies:  c.Companies,
		Locations:  c.Locations,
		Categories: c.Categories,
		JobTypes:   c.JobTypes,
	}
}

// Request describes one search
type Request struct {
	Type       QueryType      `json:"query_type"`
	Fields     []string       `json:"fields,omitempty"`
	Filters    map[string]any `json:"filters,omitempty"`
	Display    Display        `json:"display,omitempty"`
	SampleSize int            `json:"sample_size,omitempty"`
}

// Entry is one result flattened to the requested fields. Nested objects
// are kept and also exposed under "parent.child" keys.
type Entry map[string]any

// Count is one row of a top-N table
type Count struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Statistics summarizes the full result set
type Statistics struct {
	Companies  []Count `json:"companies"`
	Categories []Count `json:"categories"`
	Locations  []Count `json:"locations"`
	JobTypes   []Count `json:"job_types"`
}

// Response is the outcome of Search
type Response struct {
	Status        string      `json:"status"`
	Message       string      `json:"message,omitempty"`
	Timestamp     string      `json:"timestamp"`
	Count         int         `json:"count"`
	Statistics    *Statistics `json:"statistics,omitempty"`
	SampleEntries []Entry     `json:"sample_entries,omitempty"`
	Entries       []Entry     `json:"entries,omitempty"`
}

// SearchError wraps every failure of Search
type SearchError struct {
	Err error
}

func (e *SearchError) Error() string {
	return "Search failed: " + e.Err.Error()
}

func (e *SearchError) Unwrap() error {
	return e.Err
}

// Option configures Service
type Option func(*Service)

// WithLogger sets the logger
func WithLogger(l *logging.Logger) Option {
	return func(s *Service) {
		s.logger = l
	}
}

// WithClock sets a custom clock
func WithClock(clock func() time.Time) Option {
	return func(s *Service) {
		s.clock = clock
	}
}

// Service runs read-only queries against the board and aggregates them
type Service struct {
	remote Remote
	logger *logging.Logger
	clock  func() time.Time
}

// NewService builds a Service over remote
func NewService(remote Remote, opts ...Option) (*Service, error) {
	if remote.Jobs == nil || remote.Companies == nil || remote.Locations == nil ||
		remote.Categories == nil || remote.JobTypes == nil {
		return nil, fmt.Errorf("search: every collection is required")
	}
	s := &Service{remote: remote, clock: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logging.NewNop()
	}
	return s, nil
}

// NewServiceWithDeps creates a Service from a Niceboard client (Wire-compatible)
func NewServiceWithDeps(client *niceboard.Client, logger *logging.Logger) (*Service, error) {
	if client == nil {
		return nil, fmt.Errorf("search: niceboard client is required")
	}
	return NewService(RemoteFromClient(client), WithLogger(logger.Named("search")))
}

// Search validates req, fetches the collection and summarizes it. An empty
// collection is reported as an error response, not a Go error.
func (s *Service) Search(ctx context.Context, req Request) (*Response, error) {
	resp, err := s.search(ctx, req)
	if err != nil {
		s.logger.Warn("search failed", "query_type", req.Type, "err", err)
		return nil, &SearchError{Err: err}
	}
	return resp, nil
}

func (s *Service) search(ctx context.Context, req Request) (*Response, error) {
	allowed, ok := validFields[req.Type]
	if !ok {
		return nil, fmt.Errorf("Invalid query type: %s. Must be one of %s", req.Type, strings.Join(queryTypes(), ", "))
	}

	fields := req.Fields
	if len(fields) == 0 {
		fields = allowed
	} else if invalid := invalidFields(allowed, fields); len(invalid) > 0 {
		return nil, fmt.Errorf("Invalid fields for %s: %s. For nested fields use dot notation (e.g. 'company.slug')",
			req.Type, strings.Join(invalid, ", "))
	}

	display := req.Display
	switch display {
	case "":
		display = DisplaySummary
	case DisplaySummary, DisplayShowN, DisplayAll:
	default:
		return nil, fmt.Errorf("Invalid display mode: %s", display)
	}

	results, err := s.fetch(ctx, req)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("search fetched", "query_type", req.Type, "count", len(results))

	now := s.clock().Format(time.RFC3339Nano)
	if len(results) == 0 {
		return &Response{Status: "error", Message: "No results found", Timestamp: now}, nil
	}

	resp := &Response{
		Status:    "success",
		Timestamp: now,
		Count:     len(results),
		Statistics: &Statistics{
			Companies:  topNames(results, "company"),
			Categories: topNames(results, "category"),
			Locations:  topNames(results, "location"),
			JobTypes:   topNames(results, "jobtype"),
		},
	}

	selected := make([]map[string]any, len(results))
	for i, r := range results {
		selected[i] = selectFields(r, fields)
	}

	switch display {
	case DisplayShowN:
		n := req.SampleSize
		if n <= 0 {
			n = defaultSampleSize
		}
		resp.SampleEntries = flatten(selected[:min(n, len(selected))])
	case DisplayAll:
		resp.Entries = flatten(selected)
	}
	return resp, nil
}

func (s *Service) fetch(ctx context.Context, req Request) ([]map[string]any, error) {
	var (
		items any
		err   error
	)
	switch req.Type {
	case QueryJobs:
		filter, ferr := buildFilter(req.Filters)
		if ferr != nil {
			return nil, ferr
		}
		items, err = s.remote.Jobs.List(ctx, filter)
	case QueryCompanies:
		items, err = s.remote.Companies.List(ctx)
	case QueryLocations:
		items, err = s.remote.Locations.List(ctx)
	case QueryCategories:
		items, err = s.remote.Categories.List(ctx)
	case QueryJobTypes:
		items, err = s.remote.JobTypes.List(ctx)
	default:
		return nil, fmt.Errorf("Unsupported query type: %s", req.Type)
	}
	if err != nil {
		return nil, err
	}
	return toMaps(items)
}

// toMaps re-decodes typed results so fields can be selected by their wire names
func toMaps(items any) ([]map[string]any, error) {
	data, err := json.Marshal(items)
	if err != nil {
		return nil, err
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var out []map[string]any
	if err := dec.Decode(&out); err != nil {
		return nil, err
	}
	return out, nil
}

func queryTypes() []string {
	out := make([]string, 0, len(validFields))
	for qt := range validFields {
		out = append(out, string(qt))
	}
	sort.Strings(out)
	return out
}

func invalidFields(allowed, fields []string) []string {
	set := make(map[string]struct{}, len(allowed))
	for _, f := range allowed {
		set[f] = struct{}{}
	}
	var invalid []string
	for _, f := range fields {
		if _, ok := set[f]; !ok {
			invalid = append(invalid, f)
		}
	}
	sort.Strings(invalid)
	return invalid
}

func selectFields(result map[string]any, fields []string) map[string]any {
	out := make(map[string]any, len(fields))
	for _, field := range fields {
		parent, attr, nested := strings.Cut(field, ".")
		if !nested {
			if v, ok := result[field]; ok {
				out[field] = v
			}
			continue
		}
		if alias, ok := nestedAliases[parent]; ok {
			parent = alias
		}
		if obj, ok := result[parent].(map[string]any); ok {
			out[field] = obj[attr]
		}
	}
	return out
}

func flatten(results []map[string]any) []Entry {
	entries := make([]Entry, 0, len(results))
	for _, r := range results {
		entry := make(Entry, len(r))
		for field, v := range r {
			if obj, ok := v.(map[string]any); ok {
				for attr, av := range obj {
					entry[field+"."+attr] = av
				}
			}
			entry[field] = v
		}
		entries = append(entries, entry)
	}
	return entries
}

// topNames counts the name of the object under key, most common first.
// Ties keep first-seen order.
func topNames(results []map[string]any, key string) []Count {
	index := make(map[string]int)
	var counts []Count
	for _, r := range results {
		name := unknown
		if obj, ok := r[key].(map[string]any); ok {
			if v, ok := obj["name"]; ok && v != nil {
				name = fmt.Sprint(v)
			}
		}
		i, seen := index[name]
		if !seen {
			i = len(counts)
			index[name] = i
			counts = append(counts, Count{Name: name})
		}
		counts[i].Count++
	}
	sort.SliceStable(counts, func(a, b int) bool {
		return counts[a].Count > counts[b].Count
	})
	return counts[:min(topN, len(counts))]
}
