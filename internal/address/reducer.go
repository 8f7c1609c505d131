// File: internal/address/reducer.go
package address

import "company_portal_backend/internal/platform/geocoding"

// Event is one user interaction fed into the reducer. Events carry the
// already-resolved provider result (or nil when resolution failed) so the
// reducer itself stays pure and free of I/O.
type Event interface {
	isEvent()
}

// SearchSelected is a typed search with an autocomplete pick. Place is nil
// when the pick could not be resolved to coordinates.
type SearchSelected struct {
	Place *geocoding.Place
}

// MapClicked is a click on the map surface. Place is nil when the reverse
// geocode found no address.
type MapClicked struct {
	Place *geocoding.Place
}

// MarkerDragged is a marker drag end-position, resolved identically to a
// map click.
type MarkerDragged struct {
	Place *geocoding.Place
}

// TextEdited is a free-text change to the search field without a follow-up
// selection. It invalidates the current candidate so a stale pick is never
// silently saved.
type TextEdited struct{}

func (SearchSelected) isEvent() {}
func (MapClicked) isEvent()     {}
func (MarkerDragged) isEvent()  {}
func (TextEdited) isEvent()     {}

// Reduce reconciles one event into the view. Whichever channel last
// produced a successful candidate wins; a failed resolution keeps the
// previous candidate and only sets the inline message.
func Reduce(view View, event Event) View {
	switch e := event.(type) {
	case SearchSelected:
		if e.Place == nil {
			view.Message = MsgInvalidDropdownPick
			return view
		}
		return accept(view, e.Place)
	case MapClicked:
		if e.Place == nil {
			view.Message = MsgNoAddressForLocation
			return view
		}
		return accept(view, e.Place)
	case MarkerDragged:
		if e.Place == nil {
			view.Message = MsgNoAddressForLocation
			return view
		}
		return accept(view, e.Place)
	case TextEdited:
		view.Candidate = nil
		view.Message = ""
		return view
	}
	return view
}

func accept(view View, place *geocoding.Place) View {
	candidate := locationFromPlace(place)
	view.Candidate = candidate
	view.Message = ""
	view.Center = LatLng{Latitude: candidate.Latitude, Longitude: candidate.Longitude}
	return view
}
