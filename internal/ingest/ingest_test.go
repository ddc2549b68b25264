package ingest

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadArray(t *testing.T) {
	in := `[
		{"title": "Engineer", "company_name": "Acme", "location": "Remote", "job_type": "Full Time",
		 "description_html": "<p>x</p>", "apply_url": "https://acme.test", "salary": "$80,000", "remote": true},
		{"title": "Designer", "company_id": 4, "location_id": 9, "jobtype_id": 2, "apply_email": null}
	]`
	records, err := Load(strings.NewReader(in))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("records = %d", len(records))
	}
	if r := records[0]; r.CompanyName != "Acme" || !r.Remote || r.Salary != "$80,000" {
		t.Errorf("record 0 = %+v", r)
	}
	if r := records[1]; r.CompanyID == nil || *r.CompanyID != 4 || r.JobTypeID == nil || *r.JobTypeID != 2 {
		t.Errorf("record 1 = %+v", r)
	}
}

func TestLoadSingleObject(t *testing.T) {
	records, err := Load(strings.NewReader(`{"title": "Solo"}`))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(records) != 1 || records[0].Title != "Solo" {
		t.Fatalf("records = %+v", records)
	}
}

func TestLoadRejectsUnknownAndMistypedFields(t *testing.T) {
	in := `[{"title": "ok"}, {"title": "x", "bonus": "yes"}, {"company_id": "four"}]`
	_, err := Load(strings.NewReader(in))

	var serr *SchemaError
	if !errors.As(err, &serr) {
		t.Fatalf("expected SchemaError, got %v", err)
	}
	if len(serr.Problems) != 2 {
		t.Fatalf("problems = %+v", serr.Problems)
	}
	if serr.Problems[0].Index != 1 || !strings.Contains(serr.Problems[0].Message, "bonus") {
		t.Errorf("problem 0 = %+v", serr.Problems[0])
	}
	if serr.Problems[1].Index != 2 {
		t.Errorf("problem 1 = %+v", serr.Problems[1])
	}
}

func TestLoadMalformed(t *testing.T) {
	for _, in := range []string{"", "  ", "[{", `"just a string"`} {
		if _, err := Load(strings.NewReader(in)); err == nil {
			t.Errorf("Load(%q) succeeded", in)
		}
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jobs.json")
	if err := os.WriteFile(path, []byte(`[{"title": "From disk"}]`), 0o600); err != nil {
		t.Fatal(err)
	}
	records, err := LoadFile(path)
	if err != nil || len(records) != 1 || records[0].Title != "From disk" {
		t.Fatalf("LoadFile = %+v, %v", records, err)
	}

	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
