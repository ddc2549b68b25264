// Package ingest reads job records from JSON and rejects fields the upload
// service does not know about.
package ingest

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"

	"github.com/honeycarbs/niceboard/internal/domain"
)

//go:embed job_record.schema.json
var recordSchema []byte

var compiledSchema = sync.OnceValues(func() (*gojsonschema.Schema, error) {
	return gojsonschema.NewSchema(gojsonschema.NewBytesLoader(recordSchema))
})

// Problem is one schema violation in one record
type Problem struct {
	Index   int
	Message string
}

// SchemaError lists every record that failed schema validation
type SchemaError struct {
	Problems []Problem
}

func (e *SchemaError) Error() string {
	parts := make([]string, 0, len(e.Problems))
	for _, p := range e.Problems {
		parts = append(parts, fmt.Sprintf("record %d: %s", p.Index, p.Message))
	}
	return "ingest: schema validation failed: " + strings.Join(parts, "; ")
}

// LoadFile reads records from a JSON file
func LoadFile(path string) ([]domain.JobRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("ingest: open %s: %w", path, err)
	}
	defer f.Close()
	return Load(f)
}

// Load reads a JSON array of records, or a single record object. Required
// fields are not checked here; the upload service reports them per record.
func Load(r io.Reader) ([]domain.JobRecord, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("ingest: read: %w", err)
	}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, fmt.Errorf("ingest: empty input")
	}

	var raws []json.RawMessage
	if data[0] == '{' {
		raws = []json.RawMessage{data}
	} else if err := json.Unmarshal(data, &raws); err != nil {
		return nil, fmt.Errorf("ingest: decode records: %w", err)
	}

	schema, err := compiledSchema()
	if err != nil {
		return nil, fmt.Errorf("ingest: compile schema: %w", err)
	}

	var problems []Problem
	for i, raw := range raws {
		res, err := schema.Validate(gojsonschema.NewBytesLoader(raw))
		if err != nil {
			problems = append(problems, Problem{Index: i, Message: err.Error()})
			continue
		}
		for _, e := range res.Errors() {
			problems = append(problems, Problem{Index: i, Message: e.String()})
		}
	}
	if len(problems) > 0 {
		return nil, &SchemaError{Problems: problems}
	}

	records := make([]domain.JobRecord, len(raws))
	for i, raw := range raws {
		if err := json.Unmarshal(raw, &records[i]); err != nil {
			return nil, fmt.Errorf("ingest: decode record %d: %w", i, err)
		}
	}
	return records, nil
}
