package client

import (
	"context"
	"net/http"
	"net/url"
	"strings"
)

// ActivityService handles activity log queries, notes, export, and lookups.
type ActivityService struct {
	c *Client
}

// searchRequest is the search endpoint payload.
type searchRequest struct {
	Filter FilterSpec  `json:"filter"`
	Page   PageRequest `json:"page"`
}

// Search returns one page of activity entries matching the filter.
func (s *ActivityService) Search(ctx context.Context, filter FilterSpec, page PageRequest) (*ActivityPage, error) {
	var result ActivityPage
	if err := s.c.post(ctx, "/api/v1/activity/search", searchRequest{Filter: filter, Page: page}, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// AddNote appends a manual note to the activity log, optionally pinned to a client.
func (s *ActivityService) AddNote(ctx context.Context, clientID, content string) (*ActivityEntry, error) {
	req := CreateNoteRequest{Content: content}
	if clientID != "" {
		req.ClientID = &clientID
	}

	var entry ActivityEntry
	if err := s.c.post(ctx, "/api/v1/activity/notes", req, &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

// ExportCSV returns every entry matching the filter as raw CSV bytes.
func (s *ActivityService) ExportCSV(ctx context.Context, filter FilterSpec) ([]byte, error) {
	body, _, err := s.c.doRaw(ctx, http.MethodPost, "/api/v1/activity/export", filter)
	return body, err
}

// lookupResponse wraps the lookup endpoints' response.
type lookupResponse struct {
	Options []LookupOption `json:"options"`
}

// Users returns the operator options for the filter controls.
func (s *ActivityService) Users(ctx context.Context) ([]LookupOption, error) {
	var resp lookupResponse
	if err := s.c.get(ctx, "/api/v1/lookups/users", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Options, nil
}

// ClientOptions returns the client options for the filter controls.
func (s *ActivityService) ClientOptions(ctx context.Context) ([]LookupOption, error) {
	var resp lookupResponse
	if err := s.c.get(ctx, "/api/v1/lookups/clients", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Options, nil
}

// PointOptions returns the supply point options, optionally scoped to clients.
// An empty clientIDs slice means no restriction.
func (s *ActivityService) PointOptions(ctx context.Context, clientIDs []string) ([]LookupOption, error) {
	params := url.Values{}
	if len(clientIDs) > 0 {
		params.Set("client_ids", strings.Join(clientIDs, ","))
	}

	var resp lookupResponse
	if err := s.c.get(ctx, "/api/v1/lookups/points", params, &resp); err != nil {
		return nil, err
	}
	return resp.Options, nil
}

// ContractOptions returns the contract options, optionally scoped to points
// and/or clients. Empty slices mean no restriction.
func (s *ActivityService) ContractOptions(ctx context.Context, pointIDs, clientIDs []string) ([]LookupOption, error) {
	params := url.Values{}
	if len(pointIDs) > 0 {
		params.Set("point_ids", strings.Join(pointIDs, ","))
	}
	if len(clientIDs) > 0 {
		params.Set("client_ids", strings.Join(clientIDs, ","))
	}

	var resp lookupResponse
	if err := s.c.get(ctx, "/api/v1/lookups/contracts", params, &resp); err != nil {
		return nil, err
	}
	return resp.Options, nil
}
