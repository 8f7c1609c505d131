// File: internal/platform/geocoding/geocoder.go

// Package geocoding wraps the external mapping provider behind a small
// interface: forward geocoding resolves an address candidate picked from
// autocomplete, reverse geocoding resolves coordinates produced by map
// clicks and marker drags.
package geocoding

import (
	"context"
	"errors"
)

// ErrNoResult is returned when the provider resolves a query to nothing.
// Callers surface it inline and keep their previous state.
var ErrNoResult = errors.New("geocoding: no result for query")

// Component is one entry of the provider's structured address breakdown.
type Component struct {
	LongName  string   `json:"long_name"`
	ShortName string   `json:"short_name"`
	Types     []string `json:"types"`
}

// Place is the canonical resolved-location record: one formatted address,
// its coordinates, the provider's opaque place id, and the component bag.
type Place struct {
	FormattedAddress string      `json:"formatted_address"`
	Latitude         float64     `json:"latitude"`
	Longitude        float64     `json:"longitude"`
	PlaceID          string      `json:"place_id"`
	Components       []Component `json:"address_components"`
}

// Geocoder is the provider contract consumed by the address module.
type Geocoder interface {
	// Geocode resolves a free-form address or autocomplete pick. Returns
	// ErrNoResult when the provider has no match.
	Geocode(ctx context.Context, address string) (*Place, error)
	// ReverseGeocode resolves coordinates to the nearest address. Returns
	// ErrNoResult when the provider has no match.
	ReverseGeocode(ctx context.Context, latitude, longitude float64) (*Place, error)
}
