package models

import "time"

// GeocodeResult is one resolved address, either fresh from the upstream
// geocoder or served from the database cache.
type GeocodeResult struct {
	Query       string    `json:"query"`
	Latitude    float64   `json:"latitude"`
	Longitude   float64   `json:"longitude"`
	DisplayName string    `json:"display_name,omitempty"`
	Cached      bool      `json:"cached"`
	CreatedAt   time.Time `json:"created_at"`
}
