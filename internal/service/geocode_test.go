package service

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
)

func newGeocodeTestServer(t *testing.T, calls *atomic.Int64, body string) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)

		if r.URL.Query().Get("format") != "json" {
			t.Errorf("format = %q, want json", r.URL.Query().Get("format"))
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body)) //nolint:errcheck // test server.
	}))
	t.Cleanup(srv.Close)

	return srv
}

func TestGeocodeResolve(t *testing.T) {
	var calls atomic.Int64

	srv := newGeocodeTestServer(t, &calls,
		`[{"lat":"40.4168","lon":"-3.7038","display_name":"Madrid, Spain"}]`)

	cache := newMockGeocodeCache()
	s := NewGeocodeService(cache, srv.URL, 100, testLog())

	res, err := s.Resolve(context.Background(), "Calle Mayor 1, Madrid")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	if res.Latitude != 40.4168 || res.Longitude != -3.7038 {
		t.Errorf("coords = %f,%f, want 40.4168,-3.7038", res.Latitude, res.Longitude)
	}
	if res.DisplayName != "Madrid, Spain" {
		t.Errorf("DisplayName = %q", res.DisplayName)
	}
	if cache.saves != 1 {
		t.Errorf("cache saves = %d, want 1", cache.saves)
	}
}

func TestGeocodeResolveServesFromCache(t *testing.T) {
	var calls atomic.Int64

	srv := newGeocodeTestServer(t, &calls,
		`[{"lat":"41.3874","lon":"2.1686","display_name":"Barcelona, Spain"}]`)

	cache := newMockGeocodeCache()
	s := NewGeocodeService(cache, srv.URL, 100, testLog())
	ctx := context.Background()

	if _, err := s.Resolve(ctx, "Barcelona"); err != nil {
		t.Fatalf("first Resolve: %v", err)
	}

	res, err := s.Resolve(ctx, "  BARCELONA ")
	if err != nil {
		t.Fatalf("second Resolve: %v", err)
	}

	if !res.Cached {
		t.Error("Cached = false, want true")
	}
	if calls.Load() != 1 {
		t.Errorf("upstream calls = %d, want 1 (second hit from cache)", calls.Load())
	}
}

func TestGeocodeResolveNoMatch(t *testing.T) {
	var calls atomic.Int64

	srv := newGeocodeTestServer(t, &calls, `[]`)

	s := NewGeocodeService(newMockGeocodeCache(), srv.URL, 100, testLog())

	if _, err := s.Resolve(context.Background(), "nowhere at all"); !errors.Is(err, ErrNoMatch) {
		t.Errorf("err = %v, want ErrNoMatch", err)
	}
}

func TestGeocodeResolveEmptyQuery(t *testing.T) {
	s := NewGeocodeService(newMockGeocodeCache(), "http://unused.invalid", 100, testLog())

	if _, err := s.Resolve(context.Background(), "   "); !errors.Is(err, ErrNoMatch) {
		t.Errorf("err = %v, want ErrNoMatch", err)
	}
}

func TestGeocodeResolveUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	t.Cleanup(srv.Close)

	s := NewGeocodeService(newMockGeocodeCache(), srv.URL, 100, testLog())

	if _, err := s.Resolve(context.Background(), "Madrid"); err == nil {
		t.Error("err = nil, want upstream status error")
	}
}
