package service

import (
	"context"
	"sync"

	"github.com/enerlink/enerlink/internal/models"
)

// mockActivityStore records calls and returns configured responses.
type mockActivityStore struct {
	mu       sync.Mutex
	inserted []models.ActivityEntry

	queryPage func(ctx context.Context, spec models.FilterSpec, page models.PageRequest) (*models.PageResult, error)
	insert    func(ctx context.Context, e models.ActivityEntry) (*models.ActivityEntry, error)
}

func (m *mockActivityStore) QueryPage(
	ctx context.Context, spec models.FilterSpec, page models.PageRequest,
) (*models.PageResult, error) {
	return m.queryPage(ctx, spec, page)
}

func (m *mockActivityStore) Insert(ctx context.Context, e models.ActivityEntry) (*models.ActivityEntry, error) {
	m.mu.Lock()
	m.inserted = append(m.inserted, e)
	m.mu.Unlock()

	if m.insert != nil {
		return m.insert(ctx, e)
	}

	e.ID = int64(len(m.inserted))

	return &e, nil
}

func (m *mockActivityStore) getInserted() []models.ActivityEntry {
	m.mu.Lock()
	defer m.mu.Unlock()

	return append([]models.ActivityEntry(nil), m.inserted...)
}

// mockLookupStore returns configured option lists.
type mockLookupStore struct {
	users        func(ctx context.Context) ([]models.LookupOption, error)
	clients      func(ctx context.Context) ([]models.LookupOption, error)
	supplyPoints func(ctx context.Context, clientIDs []string) ([]models.LookupOption, error)
	contracts    func(ctx context.Context, pointIDs, clientIDs []string) ([]models.LookupOption, error)
}

func (m *mockLookupStore) Users(ctx context.Context) ([]models.LookupOption, error) {
	return m.users(ctx)
}

func (m *mockLookupStore) Clients(ctx context.Context) ([]models.LookupOption, error) {
	return m.clients(ctx)
}

func (m *mockLookupStore) SupplyPoints(ctx context.Context, clientIDs []string) ([]models.LookupOption, error) {
	return m.supplyPoints(ctx, clientIDs)
}

func (m *mockLookupStore) Contracts(ctx context.Context, pointIDs, clientIDs []string) ([]models.LookupOption, error) {
	return m.contracts(ctx, pointIDs, clientIDs)
}

// mockEmailResolver returns a fixed email per user id.
type mockEmailResolver struct {
	emails map[string]string
}

func (m *mockEmailResolver) EmailByID(_ context.Context, id string) string {
	return m.emails[id]
}

// mockGeocodeCache is an in-memory GeocodeCache.
type mockGeocodeCache struct {
	mu      sync.Mutex
	entries map[string]models.GeocodeResult
	saves   int
}

func newMockGeocodeCache() *mockGeocodeCache {
	return &mockGeocodeCache{entries: make(map[string]models.GeocodeResult)}
}

func (m *mockGeocodeCache) Lookup(_ context.Context, query string) (*models.GeocodeResult, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	r, ok := m.entries[query]
	if !ok {
		return nil, false, nil
	}

	r.Cached = true

	return &r, true, nil
}

func (m *mockGeocodeCache) Save(_ context.Context, r models.GeocodeResult) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.saves++
	m.entries[r.Query] = r

	return nil
}
