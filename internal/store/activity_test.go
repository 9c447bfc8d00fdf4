package store_test

import (
	"context"
	"testing"

	"github.com/enerlink/enerlink/internal/models"
	"github.com/enerlink/enerlink/internal/store"
)

func TestQueryPageSubjectUnion(t *testing.T) {
	base := setupTestBase(t)
	env := getTestEnv(t)
	as := store.NewActivityStore(base)
	ctx := context.Background()

	clientA := makeClient(t, env, "Union A")
	clientB := makeClient(t, env, "Union B")
	clientC := makeClient(t, env, "Union C")
	pointB := makePoint(t, env, clientB)

	e1 := makeEntry(t, as, models.ActivityEntry{ClientID: &clientA})
	e2 := makeEntry(t, as, models.ActivityEntry{ClientID: &clientB, PointID: &pointB})
	makeEntry(t, as, models.ActivityEntry{ClientID: &clientC})

	res, err := as.QueryPage(ctx, models.FilterSpec{
		Subject: models.SubjectFilter{
			ClientIDs: []string{clientA},
			PointIDs:  []string{pointB},
		},
	}, models.PageRequest{Size: 30})
	if err != nil {
		t.Fatalf("QueryPage: %v", err)
	}

	if res.TotalCount != 2 {
		t.Fatalf("TotalCount = %d, want 2", res.TotalCount)
	}

	got := map[int64]bool{}
	for _, e := range res.Entries {
		got[e.ID] = true
	}

	if !got[e1.ID] || !got[e2.ID] {
		t.Errorf("entries = %v, want ids %d and %d", got, e1.ID, e2.ID)
	}
	if res.HasMore {
		t.Error("HasMore = true, want false")
	}
}

func TestQueryPagePagination(t *testing.T) {
	base := setupTestBase(t)
	env := getTestEnv(t)
	as := store.NewActivityStore(base)
	ctx := context.Background()

	client := makeClient(t, env, "Pagination")
	for i := 0; i < 45; i++ {
		makeEntry(t, as, models.ActivityEntry{ClientID: &client})
	}

	spec := models.FilterSpec{
		Subject: models.SubjectFilter{ClientIDs: []string{client}},
	}

	first, err := as.QueryPage(ctx, spec, models.PageRequest{Page: 0, Size: 30})
	if err != nil {
		t.Fatalf("QueryPage page 0: %v", err)
	}

	if len(first.Entries) != 30 {
		t.Errorf("page 0 entries = %d, want 30", len(first.Entries))
	}
	if first.TotalCount != 45 {
		t.Errorf("TotalCount = %d, want 45", first.TotalCount)
	}
	if !first.HasMore {
		t.Error("page 0 HasMore = false, want true")
	}

	second, err := as.QueryPage(ctx, spec, models.PageRequest{Page: 1, Size: 30})
	if err != nil {
		t.Fatalf("QueryPage page 1: %v", err)
	}

	if len(second.Entries) != 15 {
		t.Errorf("page 1 entries = %d, want 15", len(second.Entries))
	}
	if second.HasMore {
		t.Error("page 1 HasMore = true, want false")
	}

	// Newest-first ordering with the id tiebreaker is strict.
	for i := 1; i < len(first.Entries); i++ {
		prev, cur := first.Entries[i-1], first.Entries[i]
		if cur.CreatedAt.After(prev.CreatedAt) {
			t.Fatalf("entries out of order at %d", i)
		}
		if cur.CreatedAt.Equal(prev.CreatedAt) && cur.ID > prev.ID {
			t.Fatalf("id tiebreaker violated at %d", i)
		}
	}
}

func TestQueryPageLegacyMode(t *testing.T) {
	base := setupTestBase(t)
	env := getTestEnv(t)
	as := store.NewActivityStore(base)
	ctx := context.Background()

	clientA := makeClient(t, env, "Legacy A")
	clientB := makeClient(t, env, "Legacy B")
	makeEntry(t, as, models.ActivityEntry{ClientID: &clientA})
	makeEntry(t, as, models.ActivityEntry{ClientID: &clientB})

	res, err := as.QueryPage(ctx, models.FilterSpec{
		Subject: models.SubjectFilter{Mode: models.SubjectModeLegacy, ClientID: clientA},
	}, models.PageRequest{Size: 30})
	if err != nil {
		t.Fatalf("QueryPage: %v", err)
	}

	if res.TotalCount != 1 {
		t.Fatalf("TotalCount = %d, want 1", res.TotalCount)
	}
	if res.Entries[0].ClientID == nil || *res.Entries[0].ClientID != clientA {
		t.Errorf("entry client = %v, want %s", res.Entries[0].ClientID, clientA)
	}
}

func TestQueryPageDisplayEnrichment(t *testing.T) {
	base := setupTestBase(t)
	env := getTestEnv(t)
	as := store.NewActivityStore(base)
	ctx := context.Background()

	client := makeClient(t, env, "Enrichment Co")
	point := makePoint(t, env, client)
	contract := makeContract(t, env, client, point)

	makeEntry(t, as, models.ActivityEntry{
		ClientID:   &client,
		PointID:    &point,
		ContractID: &contract,
		EventKind:  models.EventCreation,
		EntityKind: models.EntityContract,
		EntityID:   contract,
	})

	res, err := as.QueryPage(ctx, models.FilterSpec{
		Subject: models.SubjectFilter{ContractIDs: []string{contract}},
	}, models.PageRequest{Size: 10})
	if err != nil {
		t.Fatalf("QueryPage: %v", err)
	}

	if res.TotalCount != 1 {
		t.Fatalf("TotalCount = %d, want 1", res.TotalCount)
	}

	e := res.Entries[0]
	if e.ClientName != "Enrichment Co" {
		t.Errorf("ClientName = %q, want %q", e.ClientName, "Enrichment Co")
	}
	if e.PointCUPS == "" {
		t.Error("PointCUPS is empty, want the fixture CUPS")
	}
	if e.ContractState != models.ContractDraft {
		t.Errorf("ContractState = %q, want %q", e.ContractState, models.ContractDraft)
	}
}

func TestInsertReturnsIDAndTimestamp(t *testing.T) {
	base := setupTestBase(t)
	env := getTestEnv(t)
	as := store.NewActivityStore(base)

	client := makeClient(t, env, "Insert")
	created := makeEntry(t, as, models.ActivityEntry{
		ClientID:   &client,
		EventKind:  models.EventManualNote,
		EntityKind: models.EntityClient,
		EntityID:   client,
		Note:       "called the client, will follow up",
		Diff:       map[string]any{"channel": "phone"},
	})

	if created.ID == 0 {
		t.Error("ID = 0, want server-assigned id")
	}
	if created.CreatedAt.IsZero() {
		t.Error("CreatedAt is zero, want server timestamp")
	}
}
