package upload

import (
	"regexp"
	"strings"

	"github.com/honeycarbs/niceboard/pkg/niceboard"
)

var nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]`)

// Cache holds resolved entity ids for the lifetime of one Service.
// Entries are only ever added and a hit is trusted without checking the
// remote board again. Not safe for concurrent use.
type Cache struct {
	companies     map[string]int // lowercased name
	companySlugs  map[int]string
	locations     map[string]int // raw input, case sensitive
	locationSlugs map[int]string

	// jobTypes is nil until the remote list has been fetched once
	jobTypes        []niceboard.JobType
	jobTypeByName   map[string]int
	jobTypeBySlug   map[string]int
	jobTypeBySimple map[string]int
	jobTypeFuzzy    map[string]int
}

// NewCache returns an empty cache
func NewCache() *Cache {
	return &Cache{
		companies:       make(map[string]int),
		companySlugs:    make(map[int]string),
		locations:       make(map[string]int),
		locationSlugs:   make(map[int]string),
		jobTypeByName:   make(map[string]int),
		jobTypeBySlug:   make(map[string]int),
		jobTypeBySimple: make(map[string]int),
		jobTypeFuzzy:    make(map[string]int),
	}
}

func (c *Cache) Company(name string) (int, bool) {
	id, ok := c.companies[strings.ToLower(name)]
	return id, ok
}

// HasCompanies reports whether any company has been cached
func (c *Cache) HasCompanies() bool {
	return len(c.companies) > 0
}

// PutCompany caches name -> id and, when slug is set, id -> slug
func (c *Cache) PutCompany(name string, id int, slug string) {
	c.companies[strings.ToLower(name)] = id
	if slug != "" {
		c.companySlugs[id] = slug
	}
}

func (c *Cache) CompanySlug(id int) (string, bool) {
	slug, ok := c.companySlugs[id]
	return slug, ok
}

func (c *Cache) PutCompanySlug(id int, slug string) {
	if slug != "" {
		c.companySlugs[id] = slug
	}
}

func (c *Cache) Location(raw string) (int, bool) {
	id, ok := c.locations[raw]
	return id, ok
}

func (c *Cache) PutLocation(raw string, id int) {
	c.locations[raw] = id
}

func (c *Cache) LocationSlug(id int) (string, bool) {
	slug, ok := c.locationSlugs[id]
	return slug, ok
}

func (c *Cache) PutLocationSlug(id int, slug string) {
	if slug != "" {
		c.locationSlugs[id] = slug
	}
}

// JobTypes returns the fetched job types; loaded is false before the first fetch
func (c *Cache) JobTypes() (types []niceboard.JobType, loaded bool) {
	return c.jobTypes, c.jobTypes != nil
}

// SetJobTypes stores the remote job type list and builds the exact lookup
// tiers. The first type in list order wins every key.
func (c *Cache) SetJobTypes(types []niceboard.JobType) {
	if types == nil {
		types = []niceboard.JobType{}
	}
	c.jobTypes = types
	for _, jt := range types {
		name := normalizeName(jt.Name)
		putIfAbsent(c.jobTypeByName, name, jt.ID)
		if jt.Slug != "" {
			putIfAbsent(c.jobTypeBySlug, jt.Slug, jt.ID)
		}
		if simple := simplify(name); simple != "" {
			putIfAbsent(c.jobTypeBySimple, simple, jt.ID)
		}
	}
}

// MatchJobType resolves free text against the cached job types: exact
// name, exact slug, simplified name, then substring either way.
func (c *Cache) MatchJobType(text string) (int, bool) {
	normalized := normalizeName(text)
	if id, ok := c.jobTypeByName[normalized]; ok {
		return id, true
	}
	if id, ok := c.jobTypeBySlug[normalized]; ok {
		return id, true
	}

	simple := simplify(normalized)
	if simple == "" {
		return 0, false
	}
	if id, ok := c.jobTypeBySimple[simple]; ok {
		return id, true
	}
	if id, ok := c.jobTypeFuzzy[normalized]; ok {
		return id, true
	}
	for _, jt := range c.jobTypes {
		candidate := simplify(normalizeName(jt.Name))
		if candidate == "" {
			continue
		}
		if strings.Contains(candidate, simple) || strings.Contains(simple, candidate) {
			c.jobTypeFuzzy[normalized] = jt.ID
			return jt.ID, true
		}
	}
	return 0, false
}

func normalizeName(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// simplify lowercases and drops everything outside [a-z0-9]
func simplify(s string) string {
	return nonAlphanumeric.ReplaceAllString(strings.ToLower(s), "")
}

func putIfAbsent(m map[string]int, key string, id int) {
	if _, ok := m[key]; !ok {
		m[key] = id
	}
}
