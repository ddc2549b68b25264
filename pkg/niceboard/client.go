package niceboard

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
)

const (
	defaultBaseURL        = "https://jobs.auditfriendly.co/api/v1/"
	defaultMaxAttempts    = 5
	defaultInitialBackoff = time.Second
	defaultMaxBackoff     = 10 * time.Second
	defaultRequestTimeout = 10 * time.Second
)

// Client talks to the Niceboard REST API. Resource accessors hang off it.
type Client struct {
	apiKey         string
	baseURL        string
	httpClient     *http.Client
	maxAttempts    int
	initialBackoff time.Duration
	maxBackoff     time.Duration

	Jobs       *JobsService
	Companies  *CompaniesService
	Locations  *LocationsService
	Categories *CategoriesService
	JobTypes   *JobTypesService
}

// APIError is returned when the API answers with a 4xx/5xx status or an error envelope
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("niceboard: API error (%d): %s", e.StatusCode, e.Body)
}

// NewClient instantiates a Niceboard API client
func NewClient(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("niceboard: api key is required")
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("niceboard: parse base url: %w", err)
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultRequestTimeout}
	}

	c := &Client{
		apiKey:         cfg.APIKey,
		baseURL:        strings.TrimSuffix(baseURL, "/"),
		httpClient:     httpClient,
		maxAttempts:    cfg.MaxAttempts,
		initialBackoff: cfg.InitialBackoff,
		maxBackoff:     cfg.MaxBackoff,
	}
	if c.maxAttempts <= 0 {
		c.maxAttempts = defaultMaxAttempts
	}
	if c.initialBackoff <= 0 {
		c.initialBackoff = defaultInitialBackoff
	}
	if c.maxBackoff <= 0 {
		c.maxBackoff = defaultMaxBackoff
	}

	c.Jobs = &JobsService{client: c}
	c.Companies = &CompaniesService{client: c}
	c.Locations = &LocationsService{client: c}
	c.Categories = &CategoriesService{client: c}
	c.JobTypes = &JobTypesService{client: c}

	return c, nil
}

// jobURLBase is scheme://host/job, the prefix of public job pages
func (c *Client) jobURLBase() string {
	u, err := url.Parse(c.baseURL)
	if err != nil || u.Host == "" {
		return ""
	}
	return u.Scheme + "://" + u.Host + "/job"
}

// do executes one API call, retrying transient failures with exponential backoff
func (c *Client) do(ctx context.Context, method, endpoint string, query url.Values, body any) (*envelope, error) {
	if c == nil {
		return nil, fmt.Errorf("niceboard: client is nil")
	}

	var payload []byte
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("niceboard: encode body: %w", err)
		}
		payload = b
	}

	values := url.Values{}
	for k, vs := range query {
		values[k] = vs
	}
	values.Set("key", c.apiKey)
	target := c.baseURL + "/" + strings.TrimPrefix(endpoint, "/") + "?" + values.Encode()

	var env *envelope
	op := func() error {
		var reqBody io.Reader
		if payload != nil {
			reqBody = bytes.NewReader(payload)
		}

		req, err := http.NewRequestWithContext(ctx, method, target, reqBody)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("niceboard: build request: %w", err))
		}
		req.Header.Set("Accept", "application/json")
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return backoff.Permanent(fmt.Errorf("niceboard: request failed: %w", err))
			}
			return fmt.Errorf("niceboard: request failed: %w", err)
		}
		defer func() {
			_ = resp.Body.Close()
		}()

		if resp.StatusCode >= http.StatusBadRequest {
			excerpt, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
			apiErr := &APIError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(excerpt))}
			if retryable(resp.StatusCode) {
				return apiErr
			}
			return backoff.Permanent(apiErr)
		}

		var decoded envelope
		if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil && !errors.Is(err, io.EOF) {
			return backoff.Permanent(fmt.Errorf("niceboard: decode response: %w", err))
		}
		if decoded.Error {
			return backoff.Permanent(&APIError{StatusCode: resp.StatusCode, Body: decoded.Message})
		}
		env = &decoded
		return nil
	}

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = c.initialBackoff
	policy.MaxInterval = c.maxBackoff
	policy.MaxElapsedTime = 0

	if err := backoff.Retry(op, backoff.WithContext(backoff.WithMaxRetries(policy, uint64(c.maxAttempts-1)), ctx)); err != nil {
		return nil, err
	}
	return env, nil
}

func retryable(status int) bool {
	return status == http.StatusTooManyRequests || status >= http.StatusInternalServerError
}

// unwrap decodes results.<key> into out. A missing key leaves out untouched
// and reports false.
func (e *envelope) unwrap(key string, out any) (bool, error) {
	if e == nil || e.Results == nil {
		return false, nil
	}
	raw, ok := e.Results[key]
	if !ok || len(raw) == 0 || string(raw) == "null" {
		return false, nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return false, fmt.Errorf("niceboard: decode %s: %w", key, err)
	}
	return true, nil
}
