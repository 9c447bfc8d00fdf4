package models

import (
	"errors"
	"testing"
	"time"
)

func TestFilterSpecValidate(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		spec    FilterSpec
		wantErr error
	}{
		{name: "zero value", spec: FilterSpec{}},
		{
			name: "hierarchical sets",
			spec: FilterSpec{Subject: SubjectFilter{
				Mode:      SubjectModeHierarchical,
				ClientIDs: []string{"c1"},
				PointIDs:  []string{"p1"},
			}},
		},
		{
			name: "legacy single client",
			spec: FilterSpec{Subject: SubjectFilter{Mode: SubjectModeLegacy, ClientID: "c1"}},
		},
		{
			name:    "legacy field without legacy mode",
			spec:    FilterSpec{Subject: SubjectFilter{ClientID: "c1"}},
			wantErr: ErrSubjectModeConflict,
		},
		{
			name: "hierarchical sets in legacy mode",
			spec: FilterSpec{Subject: SubjectFilter{
				Mode:     SubjectModeLegacy,
				ClientID: "c1",
				PointIDs: []string{"p1"},
			}},
			wantErr: ErrSubjectModeConflict,
		},
		{
			name:    "unknown mode",
			spec:    FilterSpec{Subject: SubjectFilter{Mode: "both"}},
			wantErr: ErrUnknownSubjectMode,
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			err := tc.spec.Validate()
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tc.wantErr)
			}
		})
	}
}

func TestPageRequestNormalize(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		in, want PageRequest
	}{
		{name: "valid", in: PageRequest{Page: 2, Size: 30}, want: PageRequest{Page: 2, Size: 30}},
		{name: "negative page", in: PageRequest{Page: -1, Size: 10}, want: PageRequest{Page: 0, Size: 10}},
		{name: "zero size", in: PageRequest{Page: 0, Size: 0}, want: PageRequest{Page: 0, Size: DefaultPageSize}},
		{name: "oversized", in: PageRequest{Page: 0, Size: 9999}, want: PageRequest{Page: 0, Size: MaxPageSize}},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			if got := tc.in.Normalize(); got != tc.want {
				t.Errorf("Normalize() = %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestPageRequestHasMore(t *testing.T) {
	t.Parallel()

	cases := []struct {
		page, size int
		total      int64
		want       bool
	}{
		{0, 30, 45, true},
		{1, 30, 45, false},
		{0, 30, 30, false},
		{0, 30, 31, true},
		{0, 10, 0, false},
	}

	for _, tc := range cases {
		p := PageRequest{Page: tc.page, Size: tc.size}
		if got := p.HasMore(tc.total); got != tc.want {
			t.Errorf("PageRequest{%d,%d}.HasMore(%d) = %v, want %v", tc.page, tc.size, tc.total, got, tc.want)
		}
	}
}

func TestUserDisplayName(t *testing.T) {
	t.Parallel()

	u := User{Name: "Marta", Surname: "Gil", Email: "marta@example.com"}
	if got := u.DisplayName(); got != "Marta Gil" {
		t.Errorf("DisplayName() = %q, want %q", got, "Marta Gil")
	}

	u = User{Email: "ops@example.com"}
	if got := u.DisplayName(); got != "ops@example.com" {
		t.Errorf("DisplayName() = %q, want email fallback", got)
	}
}

func TestContractRequestValidate(t *testing.T) {
	t.Parallel()

	req := CreateContractRequest{ClientID: "c1", PointID: "p1", State: "active"}
	if err := req.Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}

	req.State = "frozen"
	if err := req.Validate(); !errors.Is(err, ErrInvalidState) {
		t.Errorf("Validate() = %v, want ErrInvalidState", err)
	}

	bad := CreateContractRequest{PointID: "p1", SignedAt: ptrTime(time.Now())}
	if err := bad.Validate(); !errors.Is(err, ErrMissingClient) {
		t.Errorf("Validate() = %v, want ErrMissingClient", err)
	}
}

func ptrTime(t time.Time) *time.Time { return &t }
