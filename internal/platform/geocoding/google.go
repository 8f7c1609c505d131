// File: internal/platform/geocoding/google.go
package geocoding

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"googlemaps.github.io/maps"

	"company_portal_backend/internal/config"
)

// GoogleGeocoder implements Geocoder via the Google Maps Geocoding API.
type GoogleGeocoder struct {
	client *maps.Client
	logger *zap.Logger
}

var _ Geocoder = (*GoogleGeocoder)(nil)

// NewGoogleGeocoder creates a Google Maps client from the configured API key.
func NewGoogleGeocoder(cfg *config.Config, logger *zap.Logger) (*GoogleGeocoder, error) {
	client, err := maps.NewClient(maps.WithAPIKey(cfg.GoogleMapsAPIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Google Maps client: %w", err)
	}
	return &GoogleGeocoder{
		client: client,
		logger: logger.Named("GoogleGeocoder"),
	}, nil
}

func (g *GoogleGeocoder) Geocode(ctx context.Context, address string) (*Place, error) {
	results, err := g.client.Geocode(ctx, &maps.GeocodingRequest{Address: address})
	if err != nil {
		g.logger.Warn("Geocode request failed", zap.String("address", address), zap.Error(err))
		return nil, fmt.Errorf("geocode %q: %w", address, err)
	}
	if len(results) == 0 {
		return nil, ErrNoResult
	}
	return placeFromResult(&results[0]), nil
}

func (g *GoogleGeocoder) ReverseGeocode(ctx context.Context, latitude, longitude float64) (*Place, error) {
	results, err := g.client.ReverseGeocode(ctx, &maps.GeocodingRequest{
		LatLng: &maps.LatLng{Lat: latitude, Lng: longitude},
	})
	if err != nil {
		g.logger.Warn("Reverse geocode request failed",
			zap.Float64("latitude", latitude),
			zap.Float64("longitude", longitude),
			zap.Error(err))
		return nil, fmt.Errorf("reverse geocode (%f, %f): %w", latitude, longitude, err)
	}
	if len(results) == 0 {
		return nil, ErrNoResult
	}
	// The provider returns candidates best-first; the first one is the
	// address shown to the user.
	return placeFromResult(&results[0]), nil
}

func placeFromResult(result *maps.GeocodingResult) *Place {
	components := make([]Component, 0, len(result.AddressComponents))
	for _, ac := range result.AddressComponents {
		components = append(components, Component{
			LongName:  ac.LongName,
			ShortName: ac.ShortName,
			Types:     ac.Types,
		})
	}
	return &Place{
		FormattedAddress: result.FormattedAddress,
		Latitude:         result.Geometry.Location.Lat,
		Longitude:        result.Geometry.Location.Lng,
		PlaceID:          result.PlaceID,
		Components:       components,
	}
}
