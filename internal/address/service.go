// File: internal/address/service.go
package address

import (
	"context"
	"errors"

	"company_portal_backend/internal/common"
	"company_portal_backend/internal/config"
	"company_portal_backend/internal/platform/geocoding"
	"company_portal_backend/internal/user"

	"go.uber.org/zap"
)

// Service defines the interface for address-editing session logic.
type Service interface {
	StartSession(ctx context.Context, userID string, req StartSessionRequest) (*SessionResponse, error)
	SearchSelect(ctx context.Context, userID, sessionID string, req SearchSelectRequest) (*SessionResponse, error)
	MapClick(ctx context.Context, userID, sessionID string, req CoordinateRequest) (*SessionResponse, error)
	MarkerDrag(ctx context.Context, userID, sessionID string, req CoordinateRequest) (*SessionResponse, error)
	TextEdit(ctx context.Context, userID, sessionID string) (*SessionResponse, error)
	Save(ctx context.Context, userID, sessionID string) (*SaveResponse, error)
	Cancel(ctx context.Context, userID, sessionID string) error
	SweepExpired() int
}

type service struct {
	store       *Store
	geocoder    geocoding.Geocoder
	profileRepo user.Repository
	cfg         *config.Config
	logger      *zap.Logger
}

// NewService creates a new address session service.
func NewService(
	store *Store,
	geocoder geocoding.Geocoder,
	profileRepo user.Repository,
	cfg *config.Config,
	logger *zap.Logger,
) Service {
	return &service{
		store:       store,
		geocoder:    geocoder,
		profileRepo: profileRepo,
		cfg:         cfg,
		logger:      logger,
	}
}

func (s *service) StartSession(ctx context.Context, userID string, req StartSessionRequest) (*SessionResponse, error) {
	view := View{
		Center: LatLng{
			Latitude:  s.cfg.DefaultMapCenterLatitude,
			Longitude: s.cfg.DefaultMapCenterLongitude,
		},
	}

	// Best-effort seed from device coordinates. Failure is silent: the map
	// stays at the default center and no candidate is pre-filled.
	if req.DeviceLatitude != nil && req.DeviceLongitude != nil {
		seedCtx, cancel := context.WithTimeout(ctx, s.cfg.GeolocationSeedTimeout)
		place, err := s.geocoder.ReverseGeocode(seedCtx, *req.DeviceLatitude, *req.DeviceLongitude)
		cancel()
		if err != nil {
			s.logger.Debug("Address session: geolocation seed failed",
				zap.String("userID", userID), zap.Error(err))
			view.Center = LatLng{Latitude: *req.DeviceLatitude, Longitude: *req.DeviceLongitude}
		} else {
			view = Reduce(view, MapClicked{Place: place})
		}
	}

	session := s.store.Create(userID, view)
	s.logger.Debug("Address session started",
		zap.String("sessionID", session.ID), zap.String("userID", userID))
	return toSessionResponse(session), nil
}

func (s *service) SearchSelect(ctx context.Context, userID, sessionID string, req SearchSelectRequest) (*SessionResponse, error) {
	return s.applyResolved(ctx, userID, sessionID, func(ctx context.Context) (*geocoding.Place, error) {
		return s.geocoder.Geocode(ctx, req.Query)
	}, func(place *geocoding.Place) Event {
		return SearchSelected{Place: place}
	})
}

func (s *service) MapClick(ctx context.Context, userID, sessionID string, req CoordinateRequest) (*SessionResponse, error) {
	return s.applyResolved(ctx, userID, sessionID, func(ctx context.Context) (*geocoding.Place, error) {
		return s.geocoder.ReverseGeocode(ctx, req.Latitude, req.Longitude)
	}, func(place *geocoding.Place) Event {
		return MapClicked{Place: place}
	})
}

func (s *service) MarkerDrag(ctx context.Context, userID, sessionID string, req CoordinateRequest) (*SessionResponse, error) {
	return s.applyResolved(ctx, userID, sessionID, func(ctx context.Context) (*geocoding.Place, error) {
		return s.geocoder.ReverseGeocode(ctx, req.Latitude, req.Longitude)
	}, func(place *geocoding.Place) Event {
		return MarkerDragged{Place: place}
	})
}

func (s *service) TextEdit(ctx context.Context, userID, sessionID string) (*SessionResponse, error) {
	session, ok := s.store.Update(userID, sessionID, func(session *Session) {
		session.View = Reduce(session.View, TextEdited{})
		session.State = StateReady
	})
	if !ok {
		return nil, common.ErrNotFound.WithDetails("Address session not found or expired.")
	}
	return toSessionResponse(session), nil
}

func (s *service) Save(ctx context.Context, userID, sessionID string) (*SaveResponse, error) {
	session, err := s.getSession(userID, sessionID)
	if err != nil {
		return nil, err
	}

	candidate := session.View.Candidate
	if candidate == nil {
		return nil, common.ErrBadRequest.WithDetails("Please select an address from the map or search results.")
	}

	update := user.AddressUpdate{
		Address:           candidate.Address,
		Latitude:          candidate.Latitude,
		Longitude:         candidate.Longitude,
		PlaceID:           candidate.PlaceID,
		AddressComponents: candidate.AddressComponents,
	}
	if err := s.profileRepo.UpdateAddress(ctx, userID, update); err != nil {
		s.logger.Error("Address session: save failed",
			zap.String("sessionID", session.ID), zap.String("userID", userID), zap.Error(err))
		return nil, err
	}

	s.store.Delete(userID, sessionID)
	s.logger.Info("Address saved",
		zap.String("userID", userID), zap.String("address", candidate.Address))
	return &SaveResponse{Address: candidate.Address, State: StateConfirmed}, nil
}

func (s *service) Cancel(ctx context.Context, userID, sessionID string) error {
	if !s.store.Delete(userID, sessionID) {
		return common.ErrNotFound.WithDetails("Address session not found or expired.")
	}
	s.logger.Debug("Address session cancelled",
		zap.String("sessionID", sessionID), zap.String("userID", userID))
	return nil
}

func (s *service) SweepExpired() int {
	return s.store.SweepExpired()
}

// applyResolved runs one resolver call and feeds its outcome through the
// reducer. Resolution failures are not terminal for the session: the event
// is applied with a nil place so the previous candidate survives and only
// the inline message changes. The reduce-and-store step runs under the
// store lock; the provider call does not, so a session that dies while the
// call is in flight simply discards the result.
func (s *service) applyResolved(
	ctx context.Context,
	userID, sessionID string,
	resolve func(context.Context) (*geocoding.Place, error),
	toEvent func(*geocoding.Place) Event,
) (*SessionResponse, error) {
	if _, err := s.getSession(userID, sessionID); err != nil {
		return nil, err
	}

	place, err := resolve(ctx)
	if err != nil {
		if !errors.Is(err, geocoding.ErrNoResult) {
			s.logger.Warn("Address session: provider call failed",
				zap.String("sessionID", sessionID), zap.Error(err))
		}
		place = nil
	}

	session, ok := s.store.Update(userID, sessionID, func(session *Session) {
		session.View = Reduce(session.View, toEvent(place))
		if session.View.Candidate != nil {
			session.State = StateSelecting
		}
	})
	if !ok {
		return nil, common.ErrNotFound.WithDetails("Address session not found or expired.")
	}
	return toSessionResponse(session), nil
}

func (s *service) getSession(userID, sessionID string) (Session, error) {
	session, ok := s.store.Get(userID, sessionID)
	if !ok {
		return Session{}, common.ErrNotFound.WithDetails("Address session not found or expired.")
	}
	return session, nil
}

func toSessionResponse(session Session) *SessionResponse {
	return &SessionResponse{
		ID:        session.ID,
		State:     session.State,
		Candidate: session.View.Candidate,
		Message:   session.View.Message,
		MapCenter: session.View.Center,
		ExpiresAt: session.ExpiresAt,
	}
}
