package normalize

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/honeycarbs/niceboard/pkg/logging"
	"github.com/honeycarbs/niceboard/pkg/nominatim"
)

const (
	remoteLabel               = "Remote"
	defaultGeocodeMaxAttempts = 3
)

// Geocoder is the subset of a geocoding provider the location service needs
type Geocoder interface {
	Geocode(ctx context.Context, query string) ([]nominatim.Place, error)
}

// LocationOption configures LocationService
type LocationOption func(*LocationService)

// WithMaxAttempts sets how many times a timed out geocode is retried
func WithMaxAttempts(n int) LocationOption {
	return func(s *LocationService) {
		if n > 0 {
			s.maxAttempts = n
		}
	}
}

// LocationService maps free-text locations to "City, State, Country".
// Lookups are cached by the exact input string. Misses are cached only when
// the provider found no match or kept timing out.
// Not safe for concurrent use.
type LocationService struct {
	geocoder    Geocoder
	maxAttempts int
	logger      *logging.Logger
	title       cases.Caser

	cache map[string]*string
}

// NewLocationService builds a LocationService around a geocoder
func NewLocationService(geocoder Geocoder, logger *logging.Logger, opts ...LocationOption) *LocationService {
	if logger == nil {
		logger = logging.NewNop()
	}
	s := &LocationService{
		geocoder:    geocoder,
		maxAttempts: defaultGeocodeMaxAttempts,
		logger:      logger,
		title:       cases.Title(language.English),
		cache:       make(map[string]*string),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Standardize returns the canonical form of raw. ok is false when the
// provider has no match or kept timing out.
func (s *LocationService) Standardize(ctx context.Context, raw string) (string, bool) {
	if strings.EqualFold(strings.TrimSpace(raw), "remote") {
		return remoteLabel, true
	}

	if cached, hit := s.cache[raw]; hit {
		if cached == nil {
			return "", false
		}
		return *cached, true
	}

	standardized, ok, cacheable := s.lookup(ctx, raw)
	if !ok {
		if cacheable {
			s.cache[raw] = nil
		}
		return "", false
	}
	s.cache[raw] = &standardized
	return standardized, true
}

// lookup geocodes raw. cacheable is false for failures that may not repeat:
// provider errors other than timeouts, and the caller's context ending.
func (s *LocationService) lookup(ctx context.Context, raw string) (string, bool, bool) {
	if s.geocoder == nil || strings.TrimSpace(raw) == "" {
		return "", false, true
	}

	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		places, err := s.geocoder.Geocode(ctx, raw)
		if err != nil {
			if ctx.Err() != nil {
				s.logger.Warn("geocode abandoned", "location", raw, "attempt", attempt, "err", ctx.Err())
				return "", false, false
			}
			if !errors.Is(err, nominatim.ErrTimeout) {
				s.logger.Warn("geocode failed", "location", raw, "attempt", attempt, "err", err)
				return "", false, false
			}
			if attempt < s.maxAttempts {
				s.logger.Debug("geocode timed out, retrying", "location", raw, "attempt", attempt)
				continue
			}
			s.logger.Warn("geocode kept timing out", "location", raw, "attempts", attempt)
			return "", false, true
		}
		if len(places) == 0 {
			s.logger.Info("geocode returned no match", "location", raw)
			return "", false, true
		}
		standardized, ok := s.format(places[0])
		return standardized, ok, true
	}
	return "", false, true
}

// format joins the locality, region and country the place carries
func (s *LocationService) format(p nominatim.Place) (string, bool) {
	a := p.Address
	parts := make([]string, 0, 3)
	for _, v := range []string{
		firstNonEmpty(a.City, a.Town, a.Village, a.Hamlet, a.Municipality),
		firstNonEmpty(a.State, a.Region),
		a.Country,
	} {
		if v = strings.TrimSpace(v); v != "" {
			parts = append(parts, s.title.String(v))
		}
	}

	if len(parts) == 0 {
		for _, v := range strings.Split(p.DisplayName, ",") {
			if v = strings.TrimSpace(v); v != "" {
				parts = append(parts, v)
			}
		}
	}
	if len(parts) == 0 {
		return "", false
	}
	return strings.Join(parts, ", "), true
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
