package mcp

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/honeycarbs/niceboard/internal/config"
	"github.com/honeycarbs/niceboard/pkg/logging"
)

func TestHealthz(t *testing.T) {
	cfg := config.Config{Host: "127.0.0.1", Port: "0"}
	srv := NewServer(logging.NewNop(), cfg, &Resources{})

	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatalf("GET /healthz: %v", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK || string(body) != "ok" {
		t.Fatalf("healthz = %d %q", resp.StatusCode, body)
	}
	if resp.Header.Get(requestIDHeader) == "" {
		t.Error("response has no request id")
	}
}

func TestRequestIDIsEchoed(t *testing.T) {
	srv := NewServer(logging.NewNop(), config.Config{Host: "127.0.0.1", Port: "0"}, nil)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(requestIDHeader, "abc-123")
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if got := rec.Header().Get(requestIDHeader); got != "abc-123" {
		t.Fatalf("request id = %q", got)
	}
}

func TestProviderConfigs(t *testing.T) {
	var cfg config.Config
	cfg.Niceboard.APIKey = "k"
	cfg.Niceboard.BaseURL = "https://board.test/api/v1/"
	cfg.Nominatim.BaseURL = "https://geo.test"

	if nb := provideNiceboardConfig(cfg); nb.APIKey != "k" || nb.BaseURL != cfg.Niceboard.BaseURL {
		t.Errorf("niceboard config = %+v", nb)
	}
	if nm := provideNominatimConfig(cfg); nm.BaseURL != "https://geo.test" {
		t.Errorf("nominatim config = %+v", nm)
	}
}

func TestSheetsExporterWithoutCredentials(t *testing.T) {
	exp, err := provideSheetsExporter(t.Context(), config.Config{}, logging.NewNop())
	if err != nil || exp == nil {
		t.Fatalf("exporter = %v, %v", exp, err)
	}
}
