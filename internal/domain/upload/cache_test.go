package upload

import (
	"testing"

	"github.com/honeycarbs/niceboard/pkg/niceboard"
)

func TestCacheCompanyIsCaseInsensitive(t *testing.T) {
	c := NewCache()
	if c.HasCompanies() {
		t.Fatal("new cache reports companies")
	}
	c.PutCompany("Acme Corp", 7, "acme-corp")

	if id, ok := c.Company("ACME corp"); !ok || id != 7 {
		t.Fatalf("Company = %d, %v", id, ok)
	}
	if slug, ok := c.CompanySlug(7); !ok || slug != "acme-corp" {
		t.Fatalf("CompanySlug = %q, %v", slug, ok)
	}
}

func TestCacheLocationIsCaseSensitive(t *testing.T) {
	c := NewCache()
	c.PutLocation("NYC", 3)
	if _, ok := c.Location("nyc"); ok {
		t.Fatal("location lookup should use the raw input")
	}
	if id, ok := c.Location("NYC"); !ok || id != 3 {
		t.Fatalf("Location = %d, %v", id, ok)
	}
}

func TestCacheJobTypesSentinel(t *testing.T) {
	c := NewCache()
	if _, loaded := c.JobTypes(); loaded {
		t.Fatal("job types loaded before fetch")
	}
	c.SetJobTypes(nil)
	types, loaded := c.JobTypes()
	if !loaded || len(types) != 0 {
		t.Fatalf("JobTypes = %v, %v; want empty and loaded", types, loaded)
	}
}

func TestMatchJobType(t *testing.T) {
	c := NewCache()
	c.SetJobTypes([]niceboard.JobType{
		{ID: 1, Name: "Full Time", Slug: "full-time"},
		{ID: 2, Name: "Part Time", Slug: "part-time"},
		{ID: 3, Name: "Contract", Slug: "contract"},
		{ID: 4, Name: "Contract", Slug: "contract-dup"},
	})

	tests := []struct {
		in   string
		want int
		ok   bool
	}{
		{in: "full time", want: 1, ok: true},
		{in: "  PART TIME ", want: 2, ok: true},
		{in: "full-time", want: 1, ok: true},
		{in: "fulltime", want: 1, ok: true},
		{in: "Part_Time", want: 2, ok: true},
		{in: "contract", want: 3, ok: true},
		{in: "Contractor", want: 3, ok: true},
		{in: "time", want: 1, ok: true},
		{in: "nonexistent", ok: false},
		{in: "!!!", ok: false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := c.MatchJobType(tt.in)
			if ok != tt.ok || got != tt.want {
				t.Errorf("MatchJobType(%q) = %d, %v; want %d, %v", tt.in, got, ok, tt.want, tt.ok)
			}
		})
	}
}
