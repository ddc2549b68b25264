package nominatim

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestGeocodeDecodesAddress(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("q") != "nyc" || q.Get("addressdetails") != "1" {
			t.Errorf("query = %v", q)
		}
		if r.Header.Get("User-Agent") != "niceboard_service" {
			t.Errorf("user agent = %q", r.Header.Get("User-Agent"))
		}
		_, _ = io.WriteString(w, `[{"display_name":"New York, United States","address":{"city":"New York","state":"New York","country":"United States"}}]`)
	}))
	defer srv.Close()

	client := NewClient(Config{BaseURL: srv.URL, HTTPClient: srv.Client()})
	places, err := client.Geocode(context.Background(), "nyc")
	if err != nil {
		t.Fatalf("Geocode: %v", err)
	}
	if len(places) != 1 || places[0].Address.City != "New York" {
		t.Fatalf("places = %+v", places)
	}
}

func TestGeocodeTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(50 * time.Millisecond)
		_, _ = io.WriteString(w, `[]`)
	}))
	defer srv.Close()

	client := NewClient(Config{BaseURL: srv.URL, HTTPClient: &http.Client{Timeout: 5 * time.Millisecond}})
	_, err := client.Geocode(context.Background(), "slow")
	if !errors.Is(err, ErrTimeout) {
		t.Fatalf("err = %v, want ErrTimeout", err)
	}
}

func TestGeocodeGatewayTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusGatewayTimeout)
	}))
	defer srv.Close()

	client := NewClient(Config{BaseURL: srv.URL, HTTPClient: srv.Client()})
	if _, err := client.Geocode(context.Background(), "x"); !errors.Is(err, ErrTimeout) {
		t.Fatalf("err = %v, want ErrTimeout", err)
	}
}

func TestGeocodeRejectsEmptyQuery(t *testing.T) {
	client := NewClient(Config{})
	if _, err := client.Geocode(context.Background(), "  "); err == nil {
		t.Fatal("expected error")
	}
}
