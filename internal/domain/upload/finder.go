package upload

import (
	"context"
	"fmt"
	"strings"

	"github.com/honeycarbs/niceboard/internal/domain"
	"github.com/honeycarbs/niceboard/pkg/logging"
	"github.com/honeycarbs/niceboard/pkg/niceboard"
)

// candidateLimit approximates "every job for this company and location" in one page
const candidateLimit = 100

// Finder detects an existing posting with the same company, location and
// normalized title, so uploads update instead of duplicating
type Finder struct {
	jobs     JobStore
	resolver *Resolver
	logger   *logging.Logger
}

// NewFinder builds a Finder
func NewFinder(jobs JobStore, resolver *Resolver, logger *logging.Logger) *Finder {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Finder{jobs: jobs, resolver: resolver, logger: logger}
}

type groupKey struct {
	companyID  int
	locationID int
}

// existingIndex is the precomputed result of FindBatch. Only groups whose
// lookup succeeded are present.
type existingIndex struct {
	groups map[groupKey]map[string]int
}

// lookup reports the existing id for a job and whether its group was searched
func (x *existingIndex) lookup(companyID, locationID int, title string) (id int, found, covered bool) {
	if x == nil {
		return 0, false, false
	}
	titles, ok := x.groups[groupKey{companyID, locationID}]
	if !ok {
		return 0, false, false
	}
	id, found = titles[normalizeTitle(title)]
	return id, found, true
}

// remember records a job created during the batch so later records with
// the same natural key update it
func (x *existingIndex) remember(companyID, locationID int, title string, id int) {
	if x == nil {
		return
	}
	if titles, ok := x.groups[groupKey{companyID, locationID}]; ok {
		titles[normalizeTitle(title)] = id
	}
}

// Find searches the board for a job matching the natural key. ok is false
// when no posting matches.
func (f *Finder) Find(ctx context.Context, companyID, locationID int, title string) (id int, ok bool, err error) {
	companySlug, locationSlug, err := f.slugs(ctx, companyID, locationID)
	if err != nil {
		return 0, false, fmt.Errorf("Failed to search for existing job: %w", err)
	}

	jobs, err := f.jobs.List(ctx, niceboard.JobFilter{
		Company:  companySlug,
		Location: locationSlug,
		Keyword:  title,
		Limit:    candidateLimit,
	})
	if err != nil {
		return 0, false, fmt.Errorf("Failed to search for existing job: %w", err)
	}

	target := normalizeTitle(title)
	for _, j := range jobs {
		if normalizeTitle(j.Title) == target {
			return j.ID, true, nil
		}
	}
	return 0, false, nil
}

// FindBatch issues one list call per distinct (company, location) pair
// among records that already carry both ids
func (f *Finder) FindBatch(ctx context.Context, records []*domain.JobRecord) *existingIndex {
	index := &existingIndex{groups: make(map[groupKey]map[string]int)}

	var order []groupKey
	wanted := make(map[groupKey]map[string]struct{})
	for _, rec := range records {
		if rec == nil || rec.CompanyID == nil || rec.LocationID == nil || rec.Title == "" {
			continue
		}
		key := groupKey{*rec.CompanyID, *rec.LocationID}
		if _, ok := wanted[key]; !ok {
			wanted[key] = make(map[string]struct{})
			order = append(order, key)
		}
		wanted[key][normalizeTitle(rec.Title)] = struct{}{}
	}

	for _, key := range order {
		titles, err := f.findGroup(ctx, key, wanted[key])
		if err != nil {
			f.logger.Warn("batch existing job lookup failed",
				"company_id", key.companyID,
				"location_id", key.locationID,
				"err", err,
			)
			continue
		}
		index.groups[key] = titles
	}
	return index
}

func (f *Finder) findGroup(ctx context.Context, key groupKey, wanted map[string]struct{}) (map[string]int, error) {
	companySlug, locationSlug, err := f.slugs(ctx, key.companyID, key.locationID)
	if err != nil {
		return nil, err
	}

	jobs, err := f.jobs.List(ctx, niceboard.JobFilter{
		Company:  companySlug,
		Location: locationSlug,
		Limit:    candidateLimit,
	})
	if err != nil {
		return nil, err
	}

	titles := make(map[string]int, len(wanted))
	for _, j := range jobs {
		title := normalizeTitle(j.Title)
		if _, ok := wanted[title]; !ok {
			continue
		}
		if _, dup := titles[title]; !dup {
			titles[title] = j.ID
		}
	}
	return titles, nil
}

func (f *Finder) slugs(ctx context.Context, companyID, locationID int) (string, string, error) {
	companySlug, err := f.resolver.CompanySlug(ctx, companyID)
	if err != nil {
		return "", "", err
	}
	locationSlug, err := f.resolver.LocationSlug(ctx, locationID)
	if err != nil {
		return "", "", err
	}
	return companySlug, locationSlug, nil
}

func normalizeTitle(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
