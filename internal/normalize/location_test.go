package normalize

import (
	"context"
	"errors"
	"testing"

	"github.com/honeycarbs/niceboard/pkg/nominatim"
)

type fakeGeocoder struct {
	calls  int
	places []nominatim.Place
	errs   []error
}

func (f *fakeGeocoder) Geocode(_ context.Context, _ string) ([]nominatim.Place, error) {
	f.calls++
	if len(f.errs) > 0 {
		err := f.errs[0]
		f.errs = f.errs[1:]
		if err != nil {
			return nil, err
		}
	}
	return f.places, nil
}

func TestStandardizeRemoteSkipsGeocoder(t *testing.T) {
	geo := &fakeGeocoder{}
	svc := NewLocationService(geo, nil)

	for _, in := range []string{"remote", "Remote", "REMOTE"} {
		got, ok := svc.Standardize(context.Background(), in)
		if !ok || got != "Remote" {
			t.Errorf("Standardize(%q) = %q, %v", in, got, ok)
		}
	}
	if geo.calls != 0 {
		t.Fatalf("geocoder called %d times, want 0", geo.calls)
	}
}

func TestStandardizeFormatsComponents(t *testing.T) {
	tests := []struct {
		name    string
		address nominatim.Address
		want    string
	}{
		{
			name:    "city state country",
			address: nominatim.Address{City: "new york", State: "New York", Country: "united states"},
			want:    "New York, New York, United States",
		},
		{
			name:    "town falls back",
			address: nominatim.Address{Town: "Bend", State: "Oregon", Country: "United States"},
			want:    "Bend, Oregon, United States",
		},
		{
			name:    "country only",
			address: nominatim.Address{Country: "France"},
			want:    "France",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			geo := &fakeGeocoder{places: []nominatim.Place{{Address: tt.address}}}
			got, ok := NewLocationService(geo, nil).Standardize(context.Background(), "query")
			if !ok || got != tt.want {
				t.Errorf("got %q, %v; want %q", got, ok, tt.want)
			}
		})
	}
}

func TestStandardizeUsesDisplayNameWithoutAddress(t *testing.T) {
	geo := &fakeGeocoder{places: []nominatim.Place{{DisplayName: "Somewhere ,  Far Away"}}}
	got, ok := NewLocationService(geo, nil).Standardize(context.Background(), "x")
	if !ok || got != "Somewhere, Far Away" {
		t.Fatalf("got %q, %v", got, ok)
	}
}

func TestStandardizeRetriesTimeouts(t *testing.T) {
	geo := &fakeGeocoder{
		errs:   []error{nominatim.ErrTimeout, nominatim.ErrTimeout},
		places: []nominatim.Place{{Address: nominatim.Address{City: "Paris", Country: "France"}}},
	}
	got, ok := NewLocationService(geo, nil, WithMaxAttempts(3)).Standardize(context.Background(), "paris")
	if !ok || got != "Paris, France" {
		t.Fatalf("got %q, %v", got, ok)
	}
	if geo.calls != 3 {
		t.Fatalf("calls = %d, want 3", geo.calls)
	}
}

func TestStandardizeGivesUpAfterMaxAttempts(t *testing.T) {
	geo := &fakeGeocoder{errs: []error{nominatim.ErrTimeout, nominatim.ErrTimeout, nominatim.ErrTimeout}}
	svc := NewLocationService(geo, nil, WithMaxAttempts(2))
	if _, ok := svc.Standardize(context.Background(), "slow"); ok {
		t.Fatal("expected failure")
	}
	if geo.calls != 2 {
		t.Fatalf("calls = %d, want 2", geo.calls)
	}

	if _, ok := svc.Standardize(context.Background(), "slow"); ok || geo.calls != 2 {
		t.Fatalf("exhausted timeouts should be cached: ok = %v, calls = %d", ok, geo.calls)
	}
}

func TestStandardizeCachesFailures(t *testing.T) {
	geo := &fakeGeocoder{}
	svc := NewLocationService(geo, nil)

	for i := 0; i < 3; i++ {
		if _, ok := svc.Standardize(context.Background(), "Atlantis"); ok {
			t.Fatal("expected no match")
		}
	}
	if geo.calls != 1 {
		t.Fatalf("calls = %d, want 1", geo.calls)
	}
}

func TestStandardizeCachesSuccessByExactInput(t *testing.T) {
	geo := &fakeGeocoder{places: []nominatim.Place{{Address: nominatim.Address{City: "Berlin", Country: "Germany"}}}}
	svc := NewLocationService(geo, nil)
	ctx := context.Background()

	svc.Standardize(ctx, "Berlin")
	svc.Standardize(ctx, "Berlin")
	svc.Standardize(ctx, "berlin")
	if geo.calls != 2 {
		t.Fatalf("calls = %d, want 2", geo.calls)
	}
}

func TestStandardizeNonTimeoutErrorIsNotRetried(t *testing.T) {
	geo := &fakeGeocoder{errs: []error{errors.New("boom")}}
	if _, ok := NewLocationService(geo, nil).Standardize(context.Background(), "x"); ok {
		t.Fatal("expected failure")
	}
	if geo.calls != 1 {
		t.Fatalf("calls = %d, want 1", geo.calls)
	}
}

func TestStandardizeProviderErrorIsNotCached(t *testing.T) {
	geo := &fakeGeocoder{
		errs:   []error{errors.New("nominatim: API error (503): unavailable")},
		places: []nominatim.Place{{Address: nominatim.Address{City: "Austin", State: "Texas", Country: "United States"}}},
	}
	svc := NewLocationService(geo, nil)
	ctx := context.Background()

	if _, ok := svc.Standardize(ctx, "Austin TX"); ok {
		t.Fatal("first call should fail")
	}
	got, ok := svc.Standardize(ctx, "Austin TX")
	if !ok || got != "Austin, Texas, United States" {
		t.Fatalf("second call = %q, %v", got, ok)
	}
	if geo.calls != 2 {
		t.Fatalf("calls = %d, want 2", geo.calls)
	}
}

func TestStandardizeCancelledContextIsNotCached(t *testing.T) {
	geo := &fakeGeocoder{
		errs:   []error{context.Canceled},
		places: []nominatim.Place{{Address: nominatim.Address{City: "Austin", State: "Texas", Country: "United States"}}},
	}
	svc := NewLocationService(geo, nil)

	cancelled, cancel := context.WithCancel(context.Background())
	cancel()
	if _, ok := svc.Standardize(cancelled, "Austin TX"); ok {
		t.Fatal("cancelled call should fail")
	}
	if geo.calls != 1 {
		t.Fatalf("cancelled call retried: calls = %d", geo.calls)
	}

	if got, ok := svc.Standardize(context.Background(), "Austin TX"); !ok || got != "Austin, Texas, United States" {
		t.Fatalf("fresh call = %q, %v", got, ok)
	}
}
