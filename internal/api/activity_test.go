package api_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/enerlink/enerlink/internal/api"
	"github.com/enerlink/enerlink/internal/models"
)

func TestActivitySearch_OK(t *testing.T) {
	t.Parallel()

	var gotSpec models.FilterSpec

	repo := &mockActivityRepo{
		queryPageFn: func(_ context.Context, spec models.FilterSpec, _ models.PageRequest) (*models.PageResult, error) {
			gotSpec = spec

			return &models.PageResult{
				Entries: []models.ActivityEntry{
					{ID: 1, EventKind: models.EventCreation, EntityKind: models.EntityClient, CreatedAt: time.Now()},
				},
				TotalCount: 1,
			}, nil
		},
	}

	r := newTestRouter()
	h := api.NewActivityHandler(repo, testLogger())
	r.POST("/activity/search", h.Search)

	w := doRequest(r, http.MethodPost, "/activity/search",
		`{"filter":{"subject":{"client_ids":["c1"],"point_ids":["p1"]}},"page":{"page":0,"page_size":30}}`)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var result models.PageResult
	if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	if result.TotalCount != 1 || len(result.Entries) != 1 {
		t.Errorf("unexpected result: %+v", result)
	}

	if len(gotSpec.Subject.ClientIDs) != 1 || gotSpec.Subject.ClientIDs[0] != "c1" {
		t.Errorf("filter not forwarded: %+v", gotSpec.Subject)
	}
}

func TestActivitySearch_MixedSubjectModes(t *testing.T) {
	t.Parallel()

	repo := &mockActivityRepo{
		queryPageFn: func(_ context.Context, _ models.FilterSpec, _ models.PageRequest) (*models.PageResult, error) {
			return nil, models.ErrSubjectModeConflict
		},
	}

	r := newTestRouter()
	h := api.NewActivityHandler(repo, testLogger())
	r.POST("/activity/search", h.Search)

	w := doRequest(r, http.MethodPost, "/activity/search",
		`{"filter":{"subject":{"mode":"legacy","client_id":"c1","point_ids":["p1"]}}}`)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
}

func TestActivitySearch_BadBody(t *testing.T) {
	t.Parallel()

	r := newTestRouter()
	h := api.NewActivityHandler(&mockActivityRepo{}, testLogger())
	r.POST("/activity/search", h.Search)

	w := doRequest(r, http.MethodPost, "/activity/search", `{"filter":`)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
}

func TestCreateNote_OK(t *testing.T) {
	t.Parallel()

	repo := &mockActivityRepo{
		addNoteFn: func(_ context.Context, actor models.ActorContext, req models.CreateNoteRequest) (*models.ActivityEntry, error) {
			return &models.ActivityEntry{
				ID:         7,
				UserID:     actor.UserID,
				EventKind:  models.EventManualNote,
				EntityKind: models.EntityClient,
				Note:       req.Content,
				CreatedAt:  time.Now(),
			}, nil
		},
	}

	r := newTestRouter()
	h := api.NewActivityHandler(repo, testLogger())
	r.POST("/activity/notes", h.CreateNote)

	w := doRequest(r, http.MethodPost, "/activity/notes", `{"client_id":"c1","content":"called the client"}`)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var entry models.ActivityEntry
	if err := json.Unmarshal(w.Body.Bytes(), &entry); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	if entry.Note != "called the client" {
		t.Errorf("expected note content, got %q", entry.Note)
	}
}

func TestCreateNote_EmptyContent(t *testing.T) {
	t.Parallel()

	repo := &mockActivityRepo{
		addNoteFn: func(_ context.Context, _ models.ActorContext, _ models.CreateNoteRequest) (*models.ActivityEntry, error) {
			return nil, models.ErrEmptyNote
		},
	}

	r := newTestRouter()
	h := api.NewActivityHandler(repo, testLogger())
	r.POST("/activity/notes", h.CreateNote)

	w := doRequest(r, http.MethodPost, "/activity/notes", `{"content":"   "}`)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
}

func TestCreateNote_NoActor(t *testing.T) {
	t.Parallel()

	// Router without the actor-injecting middleware.
	r := newPlainRouter()
	h := api.NewActivityHandler(&mockActivityRepo{}, testLogger())
	r.POST("/activity/notes", h.CreateNote)

	w := doRequest(r, http.MethodPost, "/activity/notes", `{"content":"note"}`)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d: %s", w.Code, w.Body.String())
	}
}

func TestActivityExport_StreamsCSV(t *testing.T) {
	t.Parallel()

	repo := &mockActivityRepo{
		exportCSVFn: func(_ context.Context, _ models.FilterSpec, w io.Writer) (int64, error) {
			_, err := w.Write([]byte("id,event_kind\n1,creation\n"))

			return 1, err
		},
	}

	r := newTestRouter()
	h := api.NewActivityHandler(repo, testLogger())
	r.POST("/activity/export", h.Export)

	w := doRequest(r, http.MethodPost, "/activity/export", `{}`)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	if ct := w.Header().Get("Content-Type"); ct != "text/csv" {
		t.Errorf("expected text/csv, got %q", ct)
	}

	if w.Body.String() != "id,event_kind\n1,creation\n" {
		t.Errorf("unexpected body: %q", w.Body.String())
	}
}

func TestLookupPoints_ForwardsClientIDs(t *testing.T) {
	t.Parallel()

	var gotClientIDs []string

	repo := &mockActivityRepo{
		pointOptionsFn: func(_ context.Context, clientIDs []string) ([]models.LookupOption, error) {
			gotClientIDs = clientIDs

			return []models.LookupOption{{Value: "p1", Label: "ES0021000000000001XY", Subtitle: "Calle Mayor 1"}}, nil
		},
	}

	r := newTestRouter()
	h := api.NewActivityHandler(repo, testLogger())
	r.GET("/lookups/points", h.LookupPoints)

	w := doRequest(r, http.MethodGet, "/lookups/points?client_ids=c1,c2", "")

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	if len(gotClientIDs) != 2 || gotClientIDs[0] != "c1" || gotClientIDs[1] != "c2" {
		t.Errorf("expected [c1 c2], got %v", gotClientIDs)
	}
}

func TestLookupPoints_EmptyParamMeansUnrestricted(t *testing.T) {
	t.Parallel()

	repo := &mockActivityRepo{
		pointOptionsFn: func(_ context.Context, clientIDs []string) ([]models.LookupOption, error) {
			if clientIDs != nil {
				t.Errorf("expected nil client ids, got %v", clientIDs)
			}

			return nil, nil
		},
	}

	r := newTestRouter()
	h := api.NewActivityHandler(repo, testLogger())
	r.GET("/lookups/points", h.LookupPoints)

	w := doRequest(r, http.MethodGet, "/lookups/points?client_ids=", "")

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var body struct {
		Options []models.LookupOption `json:"options"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	if body.Options == nil {
		t.Error("expected empty options array, got null")
	}
}

func TestLookupContracts_ForwardsBothScopes(t *testing.T) {
	t.Parallel()

	repo := &mockActivityRepo{
		contractOptionsFn: func(_ context.Context, pointIDs, clientIDs []string) ([]models.LookupOption, error) {
			if len(pointIDs) != 1 || pointIDs[0] != "p1" {
				t.Errorf("expected point ids [p1], got %v", pointIDs)
			}
			if len(clientIDs) != 1 || clientIDs[0] != "c1" {
				t.Errorf("expected client ids [c1], got %v", clientIDs)
			}

			return nil, nil
		},
	}

	r := newTestRouter()
	h := api.NewActivityHandler(repo, testLogger())
	r.GET("/lookups/contracts", h.LookupContracts)

	w := doRequest(r, http.MethodGet, "/lookups/contracts?point_ids=p1&client_ids=c1", "")

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
}
