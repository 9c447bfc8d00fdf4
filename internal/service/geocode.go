package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"

	"github.com/enerlink/enerlink/internal/metrics"
	"github.com/enerlink/enerlink/internal/models"
)

// resolveTimeout bounds one address resolution, cache and upstream included.
const resolveTimeout = 15 * time.Second

// ErrNoMatch indicates the upstream geocoder found nothing for the query.
var ErrNoMatch = fmt.Errorf("no geocoder match")

// GeocodeCache is the persistence interface for resolved addresses.
type GeocodeCache interface {
	Lookup(ctx context.Context, query string) (*models.GeocodeResult, bool, error)
	Save(ctx context.Context, r models.GeocodeResult) error
}

// GeocodeService resolves free-text addresses to coordinates through an
// upstream Nominatim-compatible geocoder.
//
// Upstream calls are rate limited (public Nominatim allows 1 req/s) and
// deduplicated, so concurrent resolutions of the same address share one
// request. Results are cached in the database.
type GeocodeService struct {
	cache   GeocodeCache
	client  *http.Client
	baseURL string
	limiter *rate.Limiter
	group   singleflight.Group
	log     *logrus.Logger
}

// NewGeocodeService creates a GeocodeService. rps caps upstream requests
// per second.
func NewGeocodeService(cache GeocodeCache, baseURL string, rps float64, log *logrus.Logger) *GeocodeService {
	if rps <= 0 {
		rps = 1
	}

	return &GeocodeService{
		cache:   cache,
		client:  &http.Client{Timeout: 10 * time.Second},
		baseURL: strings.TrimRight(baseURL, "/"),
		limiter: rate.NewLimiter(rate.Limit(rps), 1),
		log:     log,
	}
}

// Resolve returns coordinates for an address, serving from cache when
// possible.
func (s *GeocodeService) Resolve(ctx context.Context, query string) (*models.GeocodeResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrNoMatch
	}

	normalized := strings.ToLower(query)

	if cached, ok, err := s.cache.Lookup(ctx, normalized); err != nil {
		s.log.WithError(err).Warn("geocode cache lookup failed")
	} else if ok {
		metrics.GeocodeCacheHits.Inc()

		return cached, nil
	}

	metrics.GeocodeCacheMisses.Inc()

	v, err, _ := s.group.Do(normalized, func() (any, error) {
		return s.fetch(ctx, normalized)
	})
	if err != nil {
		return nil, err
	}

	return v.(*models.GeocodeResult), nil
}

// fetch queries the upstream geocoder and caches the first match.
func (s *GeocodeService) fetch(ctx context.Context, query string) (*models.GeocodeResult, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("waiting for geocoder rate limit: %w", err)
	}

	endpoint := s.baseURL + "/search?format=json&limit=1&q=" + url.QueryEscape(query)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("building geocoder request: %w", err)
	}

	req.Header.Set("User-Agent", "enerlink-crm/1.0")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling geocoder: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck // read-only body.

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geocoder returned status %d", resp.StatusCode)
	}

	var matches []struct {
		Lat         string `json:"lat"`
		Lon         string `json:"lon"`
		DisplayName string `json:"display_name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&matches); err != nil {
		return nil, fmt.Errorf("decoding geocoder response: %w", err)
	}

	if len(matches) == 0 {
		return nil, ErrNoMatch
	}

	lat, err := strconv.ParseFloat(matches[0].Lat, 64)
	if err != nil {
		return nil, fmt.Errorf("parsing latitude %q: %w", matches[0].Lat, err)
	}

	lon, err := strconv.ParseFloat(matches[0].Lon, 64)
	if err != nil {
		return nil, fmt.Errorf("parsing longitude %q: %w", matches[0].Lon, err)
	}

	result := &models.GeocodeResult{
		Query:       query,
		Latitude:    lat,
		Longitude:   lon,
		DisplayName: matches[0].DisplayName,
	}

	if err := s.cache.Save(ctx, *result); err != nil {
		s.log.WithError(err).Warn("failed to cache geocode result")
	}

	return result, nil
}
