package upload

import (
	"context"
	"errors"
	"strings"

	"github.com/honeycarbs/niceboard/pkg/niceboard"
)

var errRemote = errors.New("remote unavailable")

type fakeCompanies struct {
	companies []niceboard.Company
	listErr   error
	createErr error
	lists     int
	gets      int
	created   []niceboard.CompanyInput
	nextID    int
}

func (f *fakeCompanies) List(context.Context) ([]niceboard.Company, error) {
	f.lists++
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.companies, nil
}

func (f *fakeCompanies) Get(_ context.Context, id int) (*niceboard.Company, error) {
	f.gets++
	for _, c := range f.companies {
		if c.ID == id {
			c := c
			return &c, nil
		}
	}
	return nil, errRemote
}

func (f *fakeCompanies) Create(_ context.Context, in niceboard.CompanyInput) (*niceboard.Company, error) {
	f.created = append(f.created, in)
	if f.createErr != nil {
		return nil, f.createErr
	}
	if f.nextID == 0 {
		f.nextID = 500
	}
	c := niceboard.Company{ID: f.nextID, Name: in.Name, Slug: strings.ToLower(strings.ReplaceAll(in.Name, " ", "-"))}
	f.nextID++
	f.companies = append(f.companies, c)
	return &c, nil
}

type fakeLocations struct {
	locations []niceboard.Location
	err       error
	gets      int
	lookups   []string
	nextID    int
}

func (f *fakeLocations) Get(_ context.Context, id int) (*niceboard.Location, error) {
	f.gets++
	for _, l := range f.locations {
		if l.ID == id {
			l := l
			return &l, nil
		}
	}
	return nil, errRemote
}

func (f *fakeLocations) GetOrCreate(_ context.Context, name string) (*niceboard.Location, error) {
	f.lookups = append(f.lookups, name)
	if f.err != nil {
		return nil, f.err
	}
	for _, l := range f.locations {
		if strings.EqualFold(l.Name, name) {
			l := l
			return &l, nil
		}
	}
	if f.nextID == 0 {
		f.nextID = 900
	}
	l := niceboard.Location{ID: f.nextID, Name: name, Slug: strings.ToLower(strings.ReplaceAll(name, ", ", "-"))}
	f.nextID++
	f.locations = append(f.locations, l)
	return &l, nil
}

type fakeJobTypes struct {
	types []niceboard.JobType
	err   error
	lists int
}

func (f *fakeJobTypes) List(context.Context) ([]niceboard.JobType, error) {
	f.lists++
	if f.err != nil {
		return nil, f.err
	}
	return f.types, nil
}

type fakeJobs struct {
	jobs     []niceboard.Job
	listErr  error
	writeErr error
	filters  []niceboard.JobFilter
	creates  []niceboard.JobInput
	updates  map[int]niceboard.JobInput
	nextID   int
	// bareUpdate makes Update answer without a job object
	bareUpdate bool
}

func (f *fakeJobs) List(_ context.Context, filter niceboard.JobFilter) ([]niceboard.Job, error) {
	f.filters = append(f.filters, filter)
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []niceboard.Job
	for _, j := range f.jobs {
		if j.Company != nil && j.Company.Slug != filter.Company {
			continue
		}
		if j.Location != nil && j.Location.Slug != filter.Location {
			continue
		}
		out = append(out, j)
	}
	return out, nil
}

func (f *fakeJobs) Create(_ context.Context, in niceboard.JobInput) (*niceboard.Job, error) {
	f.creates = append(f.creates, in)
	if f.writeErr != nil {
		return nil, f.writeErr
	}
	if f.nextID == 0 {
		f.nextID = 7000
	}
	j := niceboard.Job{ID: f.nextID, Title: in.Title}
	f.nextID++
	return &j, nil
}

func (f *fakeJobs) Update(_ context.Context, id int, in niceboard.JobInput) (*niceboard.Job, error) {
	if f.updates == nil {
		f.updates = make(map[int]niceboard.JobInput)
	}
	f.updates[id] = in
	if f.writeErr != nil {
		return nil, f.writeErr
	}
	if f.bareUpdate {
		return &niceboard.Job{}, nil
	}
	return &niceboard.Job{ID: id, Title: in.Title}, nil
}

type fakeStandardizer struct {
	calls   []string
	results map[string]string
}

func (f *fakeStandardizer) Standardize(_ context.Context, raw string) (string, bool) {
	f.calls = append(f.calls, raw)
	if strings.EqualFold(raw, "remote") {
		return "Remote", true
	}
	if f.results == nil {
		return raw, true
	}
	out, ok := f.results[raw]
	return out, ok
}

type fakeLogos struct {
	calls int
	logo  string
}

func (f *fakeLogos) Resolve(_ context.Context, _, _ string) string {
	f.calls++
	return f.logo
}

type fixture struct {
	companies *fakeCompanies
	locations *fakeLocations
	jobTypes  *fakeJobTypes
	jobs      *fakeJobs
	std       *fakeStandardizer
	logos     *fakeLogos
}

func newFixture() *fixture {
	return &fixture{
		companies: &fakeCompanies{
			companies: []niceboard.Company{{ID: 1, Name: "Acme", Slug: "acme"}},
		},
		locations: &fakeLocations{
			locations: []niceboard.Location{{ID: 10, Name: "Austin, Texas, United States", Slug: "austin-texas"}},
		},
		jobTypes: &fakeJobTypes{
			types: []niceboard.JobType{
				{ID: 100, Name: "Full Time", Slug: "full-time"},
				{ID: 101, Name: "Part Time", Slug: "part-time"},
			},
		},
		jobs:  &fakeJobs{},
		std:   &fakeStandardizer{},
		logos: &fakeLogos{logo: "bG9nbw=="},
	}
}

func (f *fixture) remote() Remote {
	return Remote{
		Companies: f.companies,
		Locations: f.locations,
		JobTypes:  f.jobTypes,
		Jobs:      f.jobs,
	}
}

func (f *fixture) resolver() *Resolver {
	return NewResolver(f.remote(), NewCache(), f.std, f.logos, nil)
}
