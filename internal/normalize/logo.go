package normalize

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/honeycarbs/niceboard/pkg/logging"
)

const (
	defaultClearbitBaseURL = "https://logo.clearbit.com"
	maxLogoBytes           = 5 << 20
)

// LogoConfig defines LogoService settings
type LogoConfig struct {
	ClearbitBaseURL string
	HTTPClient      *http.Client
}

// LogoService turns a logo URL or a company site into a base64 image payload
type LogoService struct {
	clearbitBaseURL string
	httpClient      *http.Client
	logger          *logging.Logger
}

// NewLogoService builds a LogoService
func NewLogoService(cfg LogoConfig, logger *logging.Logger) *LogoService {
	if logger == nil {
		logger = logging.NewNop()
	}
	base := cfg.ClearbitBaseURL
	if base == "" {
		base = defaultClearbitBaseURL
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &LogoService{
		clearbitBaseURL: strings.TrimSuffix(base, "/"),
		httpClient:      httpClient,
		logger:          logger,
	}
}

// Resolve returns the encoded logo, or "" when none could be obtained.
// A logo that is not URL shaped is assumed to be encoded already.
func (s *LogoService) Resolve(ctx context.Context, logo, siteURL string) string {
	logo = strings.TrimSpace(logo)
	siteURL = strings.TrimSpace(siteURL)

	switch {
	case logo != "" && isHTTPURL(logo):
		return s.fetchEncoded(ctx, logo)
	case logo != "":
		return logo
	case siteURL != "":
		domain := bareDomain(siteURL)
		if domain == "" {
			s.logger.Warn("could not derive domain for logo lookup", "site_url", siteURL)
			return ""
		}
		return s.fetchEncoded(ctx, s.clearbitBaseURL+"/"+domain)
	default:
		return ""
	}
}

func (s *LogoService) fetchEncoded(ctx context.Context, target string) string {
	body, err := s.fetch(ctx, target)
	if err != nil {
		s.logger.Warn("logo fetch failed", "url", target, "err", err)
		return ""
	}
	return base64.StdEncoding.EncodeToString(body)
}

func (s *LogoService) fetch(ctx context.Context, target string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxLogoBytes))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if len(body) == 0 {
		return nil, fmt.Errorf("empty body")
	}
	return body, nil
}

func isHTTPURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// bareDomain strips the scheme and a leading www. from a site URL
func bareDomain(site string) string {
	if !isHTTPURL(site) {
		site = "https://" + site
	}
	u, err := url.Parse(site)
	if err != nil {
		return ""
	}
	return strings.TrimPrefix(u.Hostname(), "www.")
}
