package upload

import (
	"context"
	"fmt"
	"strings"

	"github.com/honeycarbs/niceboard/internal/domain"
	"github.com/honeycarbs/niceboard/pkg/logging"
	"github.com/honeycarbs/niceboard/pkg/niceboard"
)

// CompanyStore is the company half of the remote board
type CompanyStore interface {
	List(ctx context.Context) ([]niceboard.Company, error)
	Get(ctx context.Context, id int) (*niceboard.Company, error)
	Create(ctx context.Context, in niceboard.CompanyInput) (*niceboard.Company, error)
}

// LocationStore is the location half of the remote board
type LocationStore interface {
	Get(ctx context.Context, id int) (*niceboard.Location, error)
	GetOrCreate(ctx context.Context, name string) (*niceboard.Location, error)
}

// JobTypeStore lists the board's job types
type JobTypeStore interface {
	List(ctx context.Context) ([]niceboard.JobType, error)
}

// JobStore reads and writes job postings
type JobStore interface {
	List(ctx context.Context, filter niceboard.JobFilter) ([]niceboard.Job, error)
	Create(ctx context.Context, in niceboard.JobInput) (*niceboard.Job, error)
	Update(ctx context.Context, id int, in niceboard.JobInput) (*niceboard.Job, error)
}

// Remote bundles the resource accessors the upload service drives
type Remote struct {
	Companies CompanyStore
	Locations LocationStore
	JobTypes  JobTypeStore
	Jobs      JobStore
}

// RemoteFromClient adapts a Niceboard client
func RemoteFromClient(c *niceboard.Client) Remote {
	return Remote{
		Companies: c.Companies,
		Locations: c.Locations,
		JobTypes:  c.JobTypes,
		Jobs:      c.Jobs,
	}
}

func (r Remote) validate() error {
	switch {
	case r.Companies == nil:
		return fmt.Errorf("upload: company store is required")
	case r.Locations == nil:
		return fmt.Errorf("upload: location store is required")
	case r.JobTypes == nil:
		return fmt.Errorf("upload: job type store is required")
	case r.Jobs == nil:
		return fmt.Errorf("upload: job store is required")
	}
	return nil
}

// LocationStandardizer canonicalizes free-text locations
type LocationStandardizer interface {
	Standardize(ctx context.Context, raw string) (string, bool)
}

// LogoResolver produces an encoded logo from a logo URL or company site
type LogoResolver interface {
	Resolve(ctx context.Context, logo, siteURL string) string
}

// Resolver maps company, location and job type references to remote ids,
// creating companies and locations that do not exist yet
type Resolver struct {
	remote    Remote
	cache     *Cache
	locations LocationStandardizer
	logos     LogoResolver
	logger    *logging.Logger
}

// NewResolver builds a Resolver sharing cache with its caller
func NewResolver(remote Remote, cache *Cache, locations LocationStandardizer, logos LogoResolver, logger *logging.Logger) *Resolver {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Resolver{
		remote:    remote,
		cache:     cache,
		locations: locations,
		logos:     logos,
		logger:    logger,
	}
}

// ResolveCompany returns the id of rec's company, creating it if needed
func (r *Resolver) ResolveCompany(ctx context.Context, rec *domain.JobRecord) (int, error) {
	id, err := r.resolveCompany(ctx, rec)
	if err != nil {
		return 0, &ResolutionError{Entity: "company", Err: err}
	}
	return id, nil
}

func (r *Resolver) resolveCompany(ctx context.Context, rec *domain.JobRecord) (int, error) {
	if rec == nil || strings.TrimSpace(rec.CompanyName) == "" {
		return 0, &ValidationError{Field: "company_name"}
	}
	name := rec.CompanyName

	if id, ok := r.cache.Company(name); ok {
		r.logger.Debug("company cache hit", "company", name, "company_id", id)
		return id, nil
	}

	if err := r.LoadCompanies(ctx); err != nil {
		return 0, err
	}
	if id, ok := r.cache.Company(name); ok {
		return id, nil
	}

	in := niceboard.CompanyInput{
		Name:          name,
		Description:   rec.CompanyDescription,
		SiteURL:       rec.CompanySiteURL,
		LinkedinURL:   rec.CompanyLinkedinURL,
		TwitterHandle: rec.CompanyTwitterHandle,
	}
	if r.logos != nil {
		in.Logo = r.logos.Resolve(ctx, rec.CompanyLogoURL, rec.CompanySiteURL)
	}

	company, err := r.remote.Companies.Create(ctx, in)
	if err != nil {
		return 0, err
	}
	r.cache.PutCompany(name, company.ID, company.Slug)
	r.logger.Info("company created", "company", name, "company_id", company.ID)
	return company.ID, nil
}

// LoadCompanies fetches the full company list and merges it into the cache
func (r *Resolver) LoadCompanies(ctx context.Context) error {
	companies, err := r.remote.Companies.List(ctx)
	if err != nil {
		return err
	}
	for _, c := range companies {
		r.cache.PutCompany(c.Name, c.ID, c.Slug)
	}
	r.logger.Debug("company cache refreshed", "count", len(companies))
	return nil
}

// ResolveLocation returns the id for a free-text location. The raw input,
// not the standardized name, is the cache key.
func (r *Resolver) ResolveLocation(ctx context.Context, raw string) (int, error) {
	id, err := r.resolveLocation(ctx, raw)
	if err != nil {
		return 0, &ResolutionError{Entity: "location", Err: err}
	}
	return id, nil
}

func (r *Resolver) resolveLocation(ctx context.Context, raw string) (int, error) {
	if strings.TrimSpace(raw) == "" {
		return 0, &ValidationError{Field: "location", Message: "No location provided"}
	}

	if id, ok := r.cache.Location(raw); ok {
		r.logger.Debug("location cache hit", "location", raw, "location_id", id)
		return id, nil
	}

	if r.locations == nil {
		return 0, fmt.Errorf("no location standardizer configured")
	}
	standardized, ok := r.locations.Standardize(ctx, raw)
	if !ok {
		return 0, fmt.Errorf("Could not standardize location: %s", raw)
	}

	location, err := r.remote.Locations.GetOrCreate(ctx, standardized)
	if err != nil {
		return 0, err
	}
	if location == nil || location.ID == 0 {
		return 0, fmt.Errorf("Failed to get or create location for: %s", standardized)
	}

	r.cache.PutLocation(raw, location.ID)
	r.cache.PutLocationSlug(location.ID, location.Slug)
	return location.ID, nil
}

// ResolveLocations resolves each distinct location once. Failures are
// logged and left for the per-record path to report.
func (r *Resolver) ResolveLocations(ctx context.Context, raws []string) {
	seen := make(map[string]struct{}, len(raws))
	for _, raw := range raws {
		if strings.TrimSpace(raw) == "" {
			continue
		}
		if _, dup := seen[raw]; dup {
			continue
		}
		seen[raw] = struct{}{}
		if _, ok := r.cache.Location(raw); ok {
			continue
		}
		if _, err := r.ResolveLocation(ctx, raw); err != nil {
			r.logger.Warn("batch location resolution failed", "location", raw, "err", err)
		}
	}
}

// ResolveJobType matches free text against the board's job types. An
// unmatched type yields *NeedsCorrectionError.
func (r *Resolver) ResolveJobType(ctx context.Context, text string) (int, error) {
	if strings.TrimSpace(text) == "" {
		return 0, &ValidationError{Field: "job_type", Message: "Job type cannot be empty"}
	}

	if err := r.LoadJobTypes(ctx); err != nil {
		return 0, &ResolutionError{Entity: "job type", Err: err}
	}

	if id, ok := r.cache.MatchJobType(text); ok {
		return id, nil
	}

	types, _ := r.cache.JobTypes()
	return 0, &NeedsCorrectionError{JobType: text, ValidTypes: types}
}

// LoadJobTypes fetches the job type list the first time it is called
func (r *Resolver) LoadJobTypes(ctx context.Context) error {
	if _, loaded := r.cache.JobTypes(); loaded {
		return nil
	}
	types, err := r.remote.JobTypes.List(ctx)
	if err != nil {
		return err
	}
	r.cache.SetJobTypes(types)
	r.logger.Debug("job types loaded", "count", len(types))
	return nil
}

// CompanySlug returns the slug for a company id, asking the board on a miss
func (r *Resolver) CompanySlug(ctx context.Context, id int) (string, error) {
	if slug, ok := r.cache.CompanySlug(id); ok {
		return slug, nil
	}
	company, err := r.remote.Companies.Get(ctx, id)
	if err != nil {
		return "", fmt.Errorf("Failed to get company slug: %w", err)
	}
	if company == nil || company.Slug == "" {
		return "", fmt.Errorf("Could not get company slug for ID: %d", id)
	}
	r.cache.PutCompanySlug(id, company.Slug)
	return company.Slug, nil
}

// LocationSlug returns the slug for a location id, asking the board on a miss
func (r *Resolver) LocationSlug(ctx context.Context, id int) (string, error) {
	if slug, ok := r.cache.LocationSlug(id); ok {
		return slug, nil
	}
	location, err := r.remote.Locations.Get(ctx, id)
	if err != nil {
		return "", fmt.Errorf("Failed to get location slug: %w", err)
	}
	if location == nil || location.Slug == "" {
		return "", fmt.Errorf("Could not get location slug for ID: %d", id)
	}
	r.cache.PutLocationSlug(id, location.Slug)
	return location.Slug, nil
}
