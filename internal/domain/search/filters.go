package search

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/honeycarbs/niceboard/pkg/niceboard"
)

// filterKeys maps accepted filter names to the board's query parameter.
// Unknown keys are ignored.
var filterKeys = map[string]string{
	"remote_ok":     "remote_ok",
	"company":       "company",
	"company.slug":  "company",
	"category":      "category",
	"category.slug": "category",
	"jobtype":       "jobtype",
	"jobtype.slug":  "jobtype",
	"tags":          "tags",
	"is_featured":   "is_featured",
	"keyword":       "keyword",
	"location":      "location",
	"location.slug": "location",
	"limit":         "limit",
	"page":          "page",
}

func buildFilter(filters map[string]any) (niceboard.JobFilter, error) {
	var f niceboard.JobFilter
	for key, value := range filters {
		param, ok := filterKeys[key]
		if !ok || value == nil {
			continue
		}

		switch param {
		case "company":
			s := stringValue(value)
			if key == "company" {
				s = strings.ToLower(s)
			}
			f.Company = s
		case "location":
			s := stringValue(value)
			if key == "location" {
				s = strings.TrimSpace(s)
			}
			f.Location = s
		case "category":
			f.Category = stringValue(value)
		case "jobtype":
			f.JobType = stringValue(value)
		case "keyword":
			f.Keyword = stringValue(value)
		case "tags":
			f.Tags = tagsValue(value)
		case "remote_ok":
			b := truthy(value)
			f.RemoteOK = &b
		case "is_featured":
			b := truthy(value)
			f.IsFeatured = &b
		case "limit", "page":
			n, err := intValue(value)
			if err != nil {
				return f, fmt.Errorf("invalid %s filter: %w", key, err)
			}
			if param == "limit" {
				f.Limit = n
			} else {
				f.Page = n
			}
		}
	}
	return f, nil
}

func stringValue(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

func tagsValue(v any) string {
	list, ok := v.([]any)
	if !ok {
		return stringValue(v)
	}
	parts := make([]string, 0, len(list))
	for _, item := range list {
		parts = append(parts, stringValue(item))
	}
	return strings.Join(parts, ",")
}

// truthy accepts JSON booleans, numbers and boolean-looking strings
func truthy(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case string:
		if b, err := strconv.ParseBool(strings.TrimSpace(t)); err == nil {
			return b
		}
		return t != ""
	case float64:
		return t != 0
	case int:
		return t != 0
	case json.Number:
		f, err := t.Float64()
		return err == nil && f != 0
	default:
		return true
	}
}

func intValue(v any) (int, error) {
	switch t := v.(type) {
	case int:
		return t, nil
	case float64:
		if t != math.Trunc(t) {
			return 0, fmt.Errorf("%v is not an integer", t)
		}
		return int(t), nil
	case json.Number:
		n, err := t.Int64()
		return int(n), err
	case string:
		return strconv.Atoi(strings.TrimSpace(t))
	default:
		return 0, fmt.Errorf("unsupported value %v", v)
	}
}
