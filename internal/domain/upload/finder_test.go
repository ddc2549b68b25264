package upload

import (
	"context"
	"errors"
	"testing"

	"github.com/honeycarbs/niceboard/internal/domain"
	"github.com/honeycarbs/niceboard/pkg/niceboard"
)

func intPtr(v int) *int { return &v }

func postedJob(id int, title string) niceboard.Job {
	return niceboard.Job{
		ID:       id,
		Title:    title,
		Company:  &niceboard.Company{ID: 1, Slug: "acme"},
		Location: &niceboard.Location{ID: 10, Slug: "austin-texas"},
	}
}

func TestFinderFind(t *testing.T) {
	f := newFixture()
	f.jobs.jobs = []niceboard.Job{postedJob(41, "Senior Engineer"), postedJob(42, "  Go Developer ")}
	finder := NewFinder(f.jobs, f.resolver(), nil)

	id, ok, err := finder.Find(context.Background(), 1, 10, "go developer")
	if err != nil || !ok || id != 42 {
		t.Fatalf("Find = %d, %v, %v", id, ok, err)
	}

	filter := f.jobs.filters[0]
	if filter.Company != "acme" || filter.Location != "austin-texas" || filter.Keyword != "go developer" || filter.Limit != 100 {
		t.Errorf("unexpected filter: %+v", filter)
	}

	_, ok, err = finder.Find(context.Background(), 1, 10, "Designer")
	if err != nil || ok {
		t.Fatalf("Find(Designer) = %v, %v; want no match", ok, err)
	}
}

func TestFinderFindWithoutSlugFails(t *testing.T) {
	f := newFixture()
	finder := NewFinder(f.jobs, f.resolver(), nil)

	_, _, err := finder.Find(context.Background(), 999, 10, "x")
	if err == nil {
		t.Fatal("expected error when company slug is unavailable")
	}
	if len(f.jobs.filters) != 0 {
		t.Fatal("job list must not be queried without slugs")
	}
}

func TestFinderFindBatchGroupsByPair(t *testing.T) {
	f := newFixture()
	f.locations.locations = append(f.locations.locations, niceboard.Location{ID: 11, Name: "Remote", Slug: "remote"})
	f.jobs.jobs = []niceboard.Job{postedJob(41, "Senior Engineer"), postedJob(43, "Senior Engineer")}
	finder := NewFinder(f.jobs, f.resolver(), nil)

	records := []*domain.JobRecord{
		{Title: "Senior Engineer", CompanyID: intPtr(1), LocationID: intPtr(10)},
		{Title: "Designer", CompanyID: intPtr(1), LocationID: intPtr(10)},
		{Title: "Senior Engineer", CompanyID: intPtr(1), LocationID: intPtr(11)},
		{Title: "no ids"},
	}
	index := finder.FindBatch(context.Background(), records)

	if len(f.jobs.filters) != 2 {
		t.Fatalf("list called %d times, want one per pair", len(f.jobs.filters))
	}
	if id, found, covered := index.lookup(1, 10, "senior engineer "); !covered || !found || id != 41 {
		t.Errorf("lookup engineer = %d, %v, %v", id, found, covered)
	}
	if _, found, covered := index.lookup(1, 10, "Designer"); !covered || found {
		t.Errorf("lookup designer = %v, %v", found, covered)
	}
	if _, found, covered := index.lookup(1, 11, "Senior Engineer"); !covered || found {
		t.Errorf("remote group = %v, %v", found, covered)
	}
	if _, _, covered := index.lookup(2, 10, "x"); covered {
		t.Error("unsearched group reported as covered")
	}
}

func TestFinderFindBatchLeavesFailedGroupsUncovered(t *testing.T) {
	f := newFixture()
	f.jobs.listErr = errors.New("boom")
	finder := NewFinder(f.jobs, f.resolver(), nil)

	index := finder.FindBatch(context.Background(), []*domain.JobRecord{
		{Title: "Engineer", CompanyID: intPtr(1), LocationID: intPtr(10)},
	})
	if _, _, covered := index.lookup(1, 10, "Engineer"); covered {
		t.Fatal("failed group must fall back to a live lookup")
	}

	var nilIndex *existingIndex
	if _, _, covered := nilIndex.lookup(1, 10, "Engineer"); covered {
		t.Fatal("nil index must not cover anything")
	}
}
