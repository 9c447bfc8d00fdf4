package client

import "time"

// User is a CRM operator account.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Surname   string    `json:"surname,omitempty"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Actor is the authenticated user snapshot embedded in tokens.
type Actor struct {
	UserID  string `json:"user_id"`
	Name    string `json:"name"`
	Surname string `json:"surname"`
	Email   string `json:"email"`
	Role    string `json:"role"`
}

// LoginRequest is the payload for the login endpoint.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse is the login endpoint response.
type LoginResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// ClientRecord is a brokerage client (the customer, not this API client).
type ClientRecord struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	TaxID     string   `json:"tax_id,omitempty"`
	Email     string   `json:"email,omitempty"`
	Phone     string   `json:"phone,omitempty"`
	Address   string   `json:"address,omitempty"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateClientRequest is the payload for creating a client.
type CreateClientRequest struct {
	Name    string `json:"name"`
	TaxID   string `json:"tax_id,omitempty"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
}

// UpdateClientRequest is the payload for updating a client. Nil fields are
// left unchanged.
type UpdateClientRequest struct {
	Name    *string `json:"name,omitempty"`
	TaxID   *string `json:"tax_id,omitempty"`
	Email   *string `json:"email,omitempty"`
	Phone   *string `json:"phone,omitempty"`
	Address *string `json:"address,omitempty"`
}

// SupplyPoint is a metered energy delivery point identified by its CUPS code.
type SupplyPoint struct {
	ID          string    `json:"id"`
	ClientID    string    `json:"client_id"`
	CUPS        string    `json:"cups"`
	Address     string    `json:"address,omitempty"`
	Tariff      string    `json:"tariff,omitempty"`
	UtilityType string    `json:"utility_type"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CreateSupplyPointRequest is the payload for creating a supply point.
type CreateSupplyPointRequest struct {
	ClientID    string `json:"client_id"`
	CUPS        string `json:"cups"`
	Address     string `json:"address,omitempty"`
	Tariff      string `json:"tariff,omitempty"`
	UtilityType string `json:"utility_type,omitempty"`
}

// UpdateSupplyPointRequest is the payload for updating a supply point.
type UpdateSupplyPointRequest struct {
	Address     *string `json:"address,omitempty"`
	Tariff      *string `json:"tariff,omitempty"`
	UtilityType *string `json:"utility_type,omitempty"`
}

// Contract is a supply contract linking a client and a supply point.
type Contract struct {
	ID        string     `json:"id"`
	ClientID  string     `json:"client_id"`
	PointID   string     `json:"supply_point_id"`
	RateCode  string     `json:"rate_code,omitempty"`
	State     string     `json:"state"`
	SignedAt  *time.Time `json:"signed_at,omitempty"`
	StartsOn  *time.Time `json:"starts_on,omitempty"`
	EndsOn    *time.Time `json:"ends_on,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// CreateContractRequest is the payload for creating a contract.
type CreateContractRequest struct {
	ClientID string     `json:"client_id"`
	PointID  string     `json:"supply_point_id"`
	RateCode string     `json:"rate_code,omitempty"`
	State    string     `json:"state,omitempty"`
	SignedAt *time.Time `json:"signed_at,omitempty"`
	StartsOn *time.Time `json:"starts_on,omitempty"`
	EndsOn   *time.Time `json:"ends_on,omitempty"`
}

// UpdateContractRequest is the payload for updating a contract.
type UpdateContractRequest struct {
	RateCode *string    `json:"rate_code,omitempty"`
	State    *string    `json:"state,omitempty"`
	SignedAt *time.Time `json:"signed_at,omitempty"`
	StartsOn *time.Time `json:"starts_on,omitempty"`
	EndsOn   *time.Time `json:"ends_on,omitempty"`
}

// Invoice is a billing record issued against a client.
type Invoice struct {
	ID          string     `json:"id"`
	ClientID    string     `json:"client_id"`
	ContractID  *string    `json:"contract_id,omitempty"`
	Number      string     `json:"number"`
	AmountCents int64      `json:"amount_cents"`
	IssuedOn    time.Time  `json:"issued_on"`
	DueOn       *time.Time `json:"due_on,omitempty"`
	Paid        bool       `json:"paid"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// CreateInvoiceRequest is the payload for creating an invoice.
type CreateInvoiceRequest struct {
	ClientID    string     `json:"client_id"`
	ContractID  *string    `json:"contract_id,omitempty"`
	Number      string     `json:"number"`
	AmountCents int64      `json:"amount_cents"`
	IssuedOn    time.Time  `json:"issued_on"`
	DueOn       *time.Time `json:"due_on,omitempty"`
}

// ActivityEntry is one record in the activity log.
type ActivityEntry struct {
	ID           int64          `json:"id"`
	ClientID     *string        `json:"client_id,omitempty"`
	PointID      *string        `json:"supply_point_id,omitempty"`
	ContractID   *string        `json:"contract_id,omitempty"`
	UserID       string         `json:"user_id"`
	ActorName    string         `json:"actor_name"`
	ActorSurname string         `json:"actor_surname"`
	ActorEmail   string         `json:"actor_email"`
	EventKind    string         `json:"event_kind"`
	EntityKind   string         `json:"entity_kind"`
	EntityID     string         `json:"entity_id"`
	EntityLabel  string         `json:"entity_label,omitempty"`
	Diff         map[string]any `json:"diff,omitempty"`
	Note         string         `json:"note,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`

	ClientName    string `json:"client_name,omitempty"`
	PointCUPS     string `json:"point_cups,omitempty"`
	PointAddress  string `json:"point_address,omitempty"`
	ContractState string `json:"contract_state,omitempty"`
}

// SubjectFilter restricts activity entries by the rows they are linked to.
type SubjectFilter struct {
	Mode        string   `json:"mode,omitempty"`
	ClientID    string   `json:"client_id,omitempty"`
	ClientIDs   []string `json:"client_ids,omitempty"`
	PointIDs    []string `json:"point_ids,omitempty"`
	ContractIDs []string `json:"contract_ids,omitempty"`
}

// FilterSpec describes one activity log query. Every field is optional.
type FilterSpec struct {
	Subject     SubjectFilter `json:"subject"`
	EventKinds  []string      `json:"event_kinds,omitempty"`
	EntityKinds []string      `json:"entity_kinds,omitempty"`
	EntityID    string        `json:"entity_id,omitempty"`
	UserID      string        `json:"user_id,omitempty"`
	From        *time.Time    `json:"from,omitempty"`
	To          *time.Time    `json:"to,omitempty"`
}

// PageRequest selects one zero-based page of results.
type PageRequest struct {
	Page int `json:"page"`
	Size int `json:"page_size"`
}

// ActivityPage is one page of activity entries plus paging metadata.
type ActivityPage struct {
	Entries    []ActivityEntry `json:"entries"`
	TotalCount int64           `json:"total_count"`
	HasMore    bool            `json:"has_more"`
}

// LookupOption is one selectable value for the filter controls.
type LookupOption struct {
	Value    string `json:"value"`
	Label    string `json:"label"`
	Subtitle string `json:"subtitle,omitempty"`
}

// CreateNoteRequest is the payload for adding a manual note to the log.
type CreateNoteRequest struct {
	ClientID *string `json:"client_id,omitempty"`
	Content  string  `json:"content"`
}

// HealthResponse is the liveness endpoint response.
type HealthResponse struct {
	Status        string  `json:"status"`
	Version       string  `json:"version"`
	Database      string  `json:"database"`
	UptimeSeconds float64 `json:"uptime_seconds"`
}

// StatsResponse is the aggregate statistics response.
type StatsResponse struct {
	Clients         int `json:"clients"`
	SupplyPoints    int `json:"supply_points"`
	Contracts       int `json:"contracts"`
	ActiveContracts int `json:"active_contracts"`
	Invoices        int `json:"invoices"`
	UnpaidInvoices  int `json:"unpaid_invoices"`
	ActivityEntries int `json:"activity_entries"`
}
