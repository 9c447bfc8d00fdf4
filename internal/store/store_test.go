package store_test

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/enerlink/enerlink/internal/dbpool"
	"github.com/enerlink/enerlink/internal/models"
	"github.com/enerlink/enerlink/internal/store"
)

// testEnv holds shared test infrastructure (single pool across all tests).
type testEnv struct {
	pool *dbpool.Pool
	log  *logrus.Logger
}

var sharedEnv *testEnv

func getTestEnv(t *testing.T) *testEnv {
	t.Helper()

	if sharedEnv != nil {
		return sharedEnv
	}

	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	pool, err := dbpool.NewPool(context.Background(), dbURL)
	if err != nil {
		t.Fatalf("connecting to test DB: %v", err)
	}

	log := logrus.New()
	log.SetLevel(logrus.ErrorLevel)

	sharedEnv = &testEnv{pool: pool, log: log}

	return sharedEnv
}

// setupTestBase returns a Base and registers cleanup that removes every row
// created through the fixture helpers below.
func setupTestBase(t *testing.T) store.Base {
	t.Helper()

	env := getTestEnv(t)

	t.Cleanup(func() {
		ctx := context.Background()
		// Delete in dependency order: activity, invoices, contracts, points, clients, users.
		env.pool.Exec(ctx, "DELETE FROM activity_log WHERE actor_name = 'fixture'")    //nolint:errcheck // best-effort cleanup
		env.pool.Exec(ctx, "DELETE FROM invoices WHERE number LIKE 'FIX-%'")          //nolint:errcheck // best-effort cleanup
		env.pool.Exec(ctx, "DELETE FROM contracts WHERE rate_code = 'fixture'")       //nolint:errcheck // best-effort cleanup
		env.pool.Exec(ctx, "DELETE FROM supply_points WHERE cups LIKE 'ES-FIX-%'")    //nolint:errcheck // best-effort cleanup
		env.pool.Exec(ctx, "DELETE FROM clients WHERE tax_id = 'fixture'")            //nolint:errcheck // best-effort cleanup
		env.pool.Exec(ctx, "DELETE FROM users WHERE email LIKE '%@fixture.invalid'")  //nolint:errcheck // best-effort cleanup
		env.pool.Exec(ctx, "DELETE FROM geocode_cache WHERE query LIKE 'fixture %'")  //nolint:errcheck // best-effort cleanup
	})

	return store.Base{Pool: env.pool, Log: env.log}
}

// makeClient inserts a fixture client and returns its id.
func makeClient(t *testing.T, env *testEnv, name string) string {
	t.Helper()

	var id string

	err := env.pool.QueryRow(context.Background(),
		"INSERT INTO clients (name, tax_id) VALUES ($1, 'fixture') RETURNING id",
		name).Scan(&id)
	if err != nil {
		t.Fatalf("creating fixture client: %v", err)
	}

	return id
}

// makePoint inserts a fixture supply point for a client and returns its id.
func makePoint(t *testing.T, env *testEnv, clientID string) string {
	t.Helper()

	var id string

	err := env.pool.QueryRow(context.Background(),
		"INSERT INTO supply_points (client_id, cups) VALUES ($1, $2) RETURNING id",
		clientID, "ES-FIX-"+uuid.New().String()).Scan(&id)
	if err != nil {
		t.Fatalf("creating fixture supply point: %v", err)
	}

	return id
}

// makeContract inserts a fixture contract and returns its id.
func makeContract(t *testing.T, env *testEnv, clientID, pointID string) string {
	t.Helper()

	var id string

	err := env.pool.QueryRow(context.Background(),
		"INSERT INTO contracts (client_id, supply_point_id, rate_code) VALUES ($1, $2, 'fixture') RETURNING id",
		clientID, pointID).Scan(&id)
	if err != nil {
		t.Fatalf("creating fixture contract: %v", err)
	}

	return id
}

// makeEntry inserts one fixture activity entry via the store under test.
func makeEntry(t *testing.T, as *store.ActivityStore, e models.ActivityEntry) *models.ActivityEntry {
	t.Helper()

	e.UserID = fixtureUserID
	e.ActorName = "fixture"

	if e.EventKind == "" {
		e.EventKind = models.EventEdit
	}
	if e.EntityKind == "" {
		e.EntityKind = models.EntityClient
	}
	if e.EntityID == "" {
		e.EntityID = "fixture-entity"
	}

	created, err := as.Insert(context.Background(), e)
	if err != nil {
		t.Fatalf("inserting fixture entry: %v", err)
	}

	return created
}

// fixtureUserID is a stable actor id for fixture entries. activity_log.user_id
// carries no foreign key, so no users row is needed.
var fixtureUserID = uuid.NewString()
