// File: internal/address/model.go
package address

import (
	"time"

	"company_portal_backend/internal/platform/geocoding"
	"company_portal_backend/internal/user"
)

// State enumerates the lifecycle of an address-editing session.
type State string

const (
	// StateReady means the session is open but no candidate has been produced.
	StateReady State = "ready"
	// StateSelecting means at least one candidate has been produced but not saved.
	StateSelecting State = "selecting"
	// StateConfirmed means the candidate was persisted to the profile.
	StateConfirmed State = "confirmed"
	// StateCancelled means the session was discarded without saving.
	StateCancelled State = "cancelled"
)

// --- Selection messages ---

const (
	// MsgInvalidDropdownPick is surfaced when a typed search cannot be
	// resolved to coordinates.
	MsgInvalidDropdownPick = "Please select a valid address from the dropdown"
	// MsgNoAddressForLocation is surfaced when a map click or marker drag
	// reverse-geocodes to nothing.
	MsgNoAddressForLocation = "Could not find address for this location"
)

// SelectedLocation is the single reconciled candidate held by a session.
// All three input channels (search pick, map click, marker drag) write
// through the same reducer, so the map center, marker, and address text
// always describe the same place.
type SelectedLocation struct {
	Address           string                 `json:"address"`
	Latitude          float64                `json:"latitude"`
	Longitude         float64                `json:"longitude"`
	PlaceID           string                 `json:"place_id"`
	AddressComponents user.AddressComponents `json:"address_components"`
}

// LatLng is a plain coordinate pair, used for the map center.
type LatLng struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// View is the observable portion of a session: the current candidate (nil
// when none), an inline message (empty when clear), and where the map is
// centered. The reducer is a pure function from (View, Event) to View.
type View struct {
	Candidate *SelectedLocation
	Message   string
	Center    LatLng
}

// locationFromPlace converts a provider result into a candidate.
func locationFromPlace(place *geocoding.Place) *SelectedLocation {
	components := make(user.AddressComponents, len(place.Components))
	copy(components, place.Components)
	return &SelectedLocation{
		Address:           place.FormattedAddress,
		Latitude:          place.Latitude,
		Longitude:         place.Longitude,
		PlaceID:           place.PlaceID,
		AddressComponents: components,
	}
}

// --- Requests ---

// StartSessionRequest opens an editing session. Device coordinates are
// optional; when present they seed the map center and an initial candidate
// via a best-effort reverse geocode.
type StartSessionRequest struct {
	DeviceLatitude  *float64 `json:"device_latitude"`
	DeviceLongitude *float64 `json:"device_longitude"`
}

// SearchSelectRequest carries the text of a picked autocomplete suggestion.
type SearchSelectRequest struct {
	Query string `json:"query" binding:"required"`
}

// CoordinateRequest carries the coordinates of a map click or a marker
// drag end-position. Zero is a legal coordinate, so presence is not
// enforced via binding tags.
type CoordinateRequest struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// --- DTOs ---

// SessionResponse is the session snapshot returned by every operation.
type SessionResponse struct {
	ID        string            `json:"id"`
	State     State             `json:"state"`
	Candidate *SelectedLocation `json:"candidate,omitempty"`
	Message   string            `json:"message,omitempty"`
	MapCenter LatLng            `json:"map_center"`
	ExpiresAt time.Time         `json:"expires_at"`
}

// SaveResponse reports the persisted address back to the caller.
type SaveResponse struct {
	Address string `json:"address"`
	State   State  `json:"state"`
}
