package address

import (
	"context"
	"errors"
	"testing"
	"time"

	"company_portal_backend/internal/common"
	"company_portal_backend/internal/config"
	"company_portal_backend/internal/platform/geocoding"
	"company_portal_backend/internal/user"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeGeocoder returns canned results per call and records how it was used.
type fakeGeocoder struct {
	geocodeResult *geocoding.Place
	geocodeErr    error
	reverseResult *geocoding.Place
	reverseErr    error
	reverseCalls  int
}

func (f *fakeGeocoder) Geocode(ctx context.Context, address string) (*geocoding.Place, error) {
	return f.geocodeResult, f.geocodeErr
}

func (f *fakeGeocoder) ReverseGeocode(ctx context.Context, latitude, longitude float64) (*geocoding.Place, error) {
	f.reverseCalls++
	return f.reverseResult, f.reverseErr
}

// fakeProfileRepo records address updates.
type fakeProfileRepo struct {
	updates   []user.AddressUpdate
	updateErr error
}

func (f *fakeProfileRepo) Create(ctx context.Context, profile *user.Profile) error {
	return nil
}

func (f *fakeProfileRepo) FindByID(ctx context.Context, id string) (*user.Profile, error) {
	return nil, common.ErrNotFound
}

func (f *fakeProfileRepo) UpdateAddress(ctx context.Context, id string, update user.AddressUpdate) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.updates = append(f.updates, update)
	return nil
}

func (f *fakeProfileRepo) StampLastLogin(ctx context.Context, id string, at time.Time) error {
	return nil
}

func testConfig() *config.Config {
	return &config.Config{
		AddressSessionTTL:         30 * time.Minute,
		GeolocationSeedTimeout:    time.Second,
		DefaultMapCenterLatitude:  40.7128,
		DefaultMapCenterLongitude: -74.0060,
	}
}

func newTestService(geocoder *fakeGeocoder, repo *fakeProfileRepo) (Service, *Store) {
	store := NewStore(30 * time.Minute)
	svc := NewService(store, geocoder, repo, testConfig(), zap.NewNop())
	return svc, store
}

func TestStartSessionWithoutDeviceCoordinates(t *testing.T) {
	svc, _ := newTestService(&fakeGeocoder{}, &fakeProfileRepo{})

	session, err := svc.StartSession(context.Background(), "uid-1", StartSessionRequest{})
	require.NoError(t, err)
	assert.Equal(t, StateReady, session.State)
	assert.Nil(t, session.Candidate)
	assert.Equal(t, LatLng{Latitude: 40.7128, Longitude: -74.0060}, session.MapCenter)
}

func TestStartSessionSeedsFromDeviceCoordinates(t *testing.T) {
	geocoder := &fakeGeocoder{reverseResult: placeFixture("500 Device Rd", 47.61, -122.33)}
	svc, _ := newTestService(geocoder, &fakeProfileRepo{})

	lat, lng := 47.61, -122.33
	session, err := svc.StartSession(context.Background(), "uid-1", StartSessionRequest{
		DeviceLatitude:  &lat,
		DeviceLongitude: &lng,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, geocoder.reverseCalls)
	require.NotNil(t, session.Candidate)
	assert.Equal(t, "500 Device Rd", session.Candidate.Address)
	assert.Equal(t, LatLng{Latitude: 47.61, Longitude: -122.33}, session.MapCenter)
}

func TestStartSessionSeedFailureIsSilent(t *testing.T) {
	geocoder := &fakeGeocoder{reverseErr: geocoding.ErrNoResult}
	svc, _ := newTestService(geocoder, &fakeProfileRepo{})

	lat, lng := 47.61, -122.33
	session, err := svc.StartSession(context.Background(), "uid-1", StartSessionRequest{
		DeviceLatitude:  &lat,
		DeviceLongitude: &lng,
	})
	require.NoError(t, err)
	assert.Nil(t, session.Candidate)
	assert.Empty(t, session.Message)
	assert.Equal(t, LatLng{Latitude: 47.61, Longitude: -122.33}, session.MapCenter)
}

func TestMapClickResolvedUpdatesCandidateAndClearsMessage(t *testing.T) {
	geocoder := &fakeGeocoder{reverseErr: geocoding.ErrNoResult}
	svc, _ := newTestService(geocoder, &fakeProfileRepo{})

	started, err := svc.StartSession(context.Background(), "uid-1", StartSessionRequest{})
	require.NoError(t, err)

	// First click fails to resolve: message set, no candidate.
	session, err := svc.MapClick(context.Background(), "uid-1", started.ID, CoordinateRequest{Latitude: 1, Longitude: 1})
	require.NoError(t, err)
	assert.Nil(t, session.Candidate)
	assert.Equal(t, MsgNoAddressForLocation, session.Message)

	// Second click resolves: candidate set, message cleared.
	geocoder.reverseErr = nil
	geocoder.reverseResult = placeFixture("123 Main St", 47.6, -122.3)
	session, err = svc.MapClick(context.Background(), "uid-1", started.ID, CoordinateRequest{Latitude: 47.6, Longitude: -122.3})
	require.NoError(t, err)
	require.NotNil(t, session.Candidate)
	assert.Equal(t, "123 Main St", session.Candidate.Address)
	assert.Empty(t, session.Message)
	assert.Equal(t, StateSelecting, session.State)
}

func TestMapClickFailureKeepsPreviousCandidate(t *testing.T) {
	geocoder := &fakeGeocoder{reverseResult: placeFixture("123 Main St", 47.6, -122.3)}
	svc, _ := newTestService(geocoder, &fakeProfileRepo{})

	started, err := svc.StartSession(context.Background(), "uid-1", StartSessionRequest{})
	require.NoError(t, err)

	session, err := svc.MapClick(context.Background(), "uid-1", started.ID, CoordinateRequest{Latitude: 47.6, Longitude: -122.3})
	require.NoError(t, err)
	require.NotNil(t, session.Candidate)

	geocoder.reverseResult = nil
	geocoder.reverseErr = geocoding.ErrNoResult
	session, err = svc.MapClick(context.Background(), "uid-1", started.ID, CoordinateRequest{Latitude: 0, Longitude: 0})
	require.NoError(t, err)
	require.NotNil(t, session.Candidate)
	assert.Equal(t, "123 Main St", session.Candidate.Address)
	assert.Equal(t, MsgNoAddressForLocation, session.Message)
}

func TestSearchSelectUnresolvedSetsDropdownMessage(t *testing.T) {
	geocoder := &fakeGeocoder{geocodeErr: geocoding.ErrNoResult}
	svc, _ := newTestService(geocoder, &fakeProfileRepo{})

	started, err := svc.StartSession(context.Background(), "uid-1", StartSessionRequest{})
	require.NoError(t, err)

	session, err := svc.SearchSelect(context.Background(), "uid-1", started.ID, SearchSelectRequest{Query: "gibberish"})
	require.NoError(t, err)
	assert.Nil(t, session.Candidate)
	assert.Equal(t, MsgInvalidDropdownPick, session.Message)
	assert.Equal(t, StateReady, session.State)
}

func TestTextEditClearsCandidate(t *testing.T) {
	geocoder := &fakeGeocoder{geocodeResult: placeFixture("42 Pine St", 5, 6)}
	svc, _ := newTestService(geocoder, &fakeProfileRepo{})

	started, err := svc.StartSession(context.Background(), "uid-1", StartSessionRequest{})
	require.NoError(t, err)

	session, err := svc.SearchSelect(context.Background(), "uid-1", started.ID, SearchSelectRequest{Query: "42 Pine St"})
	require.NoError(t, err)
	require.NotNil(t, session.Candidate)

	session, err = svc.TextEdit(context.Background(), "uid-1", started.ID)
	require.NoError(t, err)
	assert.Nil(t, session.Candidate)
	assert.Equal(t, StateReady, session.State)
}

func TestSaveWithoutCandidateIsRejected(t *testing.T) {
	repo := &fakeProfileRepo{}
	svc, _ := newTestService(&fakeGeocoder{}, repo)

	started, err := svc.StartSession(context.Background(), "uid-1", StartSessionRequest{})
	require.NoError(t, err)

	_, err = svc.Save(context.Background(), "uid-1", started.ID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrBadRequest))
	assert.Empty(t, repo.updates, "no update may be issued without a candidate")
}

func TestSaveIssuesOneAtomicUpdate(t *testing.T) {
	geocoder := &fakeGeocoder{reverseResult: placeFixture("123 Main St", 47.6, -122.3)}
	repo := &fakeProfileRepo{}
	svc, store := newTestService(geocoder, repo)

	started, err := svc.StartSession(context.Background(), "uid-1", StartSessionRequest{})
	require.NoError(t, err)

	_, err = svc.MapClick(context.Background(), "uid-1", started.ID, CoordinateRequest{Latitude: 47.6, Longitude: -122.3})
	require.NoError(t, err)

	result, err := svc.Save(context.Background(), "uid-1", started.ID)
	require.NoError(t, err)
	assert.Equal(t, "123 Main St", result.Address)
	assert.Equal(t, StateConfirmed, result.State)

	require.Len(t, repo.updates, 1)
	update := repo.updates[0]
	assert.Equal(t, "123 Main St", update.Address)
	assert.Equal(t, 47.6, update.Latitude)
	assert.Equal(t, -122.3, update.Longitude)
	assert.Equal(t, "place-123 Main St", update.PlaceID)
	assert.NotEmpty(t, update.AddressComponents)

	assert.Equal(t, 0, store.Len(), "confirmed session is removed")
}

func TestSaveFailureKeepsSession(t *testing.T) {
	geocoder := &fakeGeocoder{reverseResult: placeFixture("123 Main St", 47.6, -122.3)}
	repo := &fakeProfileRepo{updateErr: common.ErrInternalServer}
	svc, store := newTestService(geocoder, repo)

	started, err := svc.StartSession(context.Background(), "uid-1", StartSessionRequest{})
	require.NoError(t, err)
	_, err = svc.MapClick(context.Background(), "uid-1", started.ID, CoordinateRequest{Latitude: 47.6, Longitude: -122.3})
	require.NoError(t, err)

	_, err = svc.Save(context.Background(), "uid-1", started.ID)
	require.Error(t, err)
	assert.Equal(t, 1, store.Len(), "failed save leaves the session open")

	// A retry after the backend recovers succeeds against the same session.
	repo.updateErr = nil
	result, err := svc.Save(context.Background(), "uid-1", started.ID)
	require.NoError(t, err)
	assert.Equal(t, "123 Main St", result.Address)
}

func TestCancelDiscardsSession(t *testing.T) {
	svc, store := newTestService(&fakeGeocoder{}, &fakeProfileRepo{})

	started, err := svc.StartSession(context.Background(), "uid-1", StartSessionRequest{})
	require.NoError(t, err)

	require.NoError(t, svc.Cancel(context.Background(), "uid-1", started.ID))
	assert.Equal(t, 0, store.Len())

	err = svc.Cancel(context.Background(), "uid-1", started.ID)
	assert.True(t, errors.Is(err, common.ErrNotFound))
}

func TestSessionIsScopedToItsUser(t *testing.T) {
	svc, _ := newTestService(&fakeGeocoder{}, &fakeProfileRepo{})

	started, err := svc.StartSession(context.Background(), "uid-1", StartSessionRequest{})
	require.NoError(t, err)

	_, err = svc.TextEdit(context.Background(), "uid-2", started.ID)
	assert.True(t, errors.Is(err, common.ErrNotFound))
}
