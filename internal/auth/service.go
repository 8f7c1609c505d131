// File: internal/auth/service.go
package auth

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"company_portal_backend/internal/common"
	"company_portal_backend/internal/company"
	"company_portal_backend/internal/session"
	"company_portal_backend/internal/shared"
	"company_portal_backend/internal/user"
	"company_portal_backend/internal/validation"
)

// Service defines the interface for authentication business logic.
type Service interface {
	// Signup validates the form, creates the hosted account and its profile
	// row, and signs the new user in.
	Signup(ctx context.Context, req SignupRequest) (*shared.Identity, *shared.TokenResponse, error)
	// Login validates the form and performs a password sign-in.
	Login(ctx context.Context, req LoginRequest) (*shared.Identity, *shared.TokenResponse, error)
	// Logout revokes the user's refresh tokens.
	Logout(ctx context.Context, uid string) error
}

type service struct {
	backend     shared.AuthBackend
	profileRepo user.Repository
	companySvc  company.Service
	gate        *session.Gate
	logger      *zap.Logger
}

// NewService creates a new auth service.
func NewService(
	backend shared.AuthBackend,
	profileRepo user.Repository,
	companySvc company.Service,
	gate *session.Gate,
	logger *zap.Logger,
) Service {
	return &service{
		backend:     backend,
		profileRepo: profileRepo,
		companySvc:  companySvc,
		gate:        gate,
		logger:      logger.Named("AuthService"),
	}
}

func (s *service) Signup(ctx context.Context, req SignupRequest) (*shared.Identity, *shared.TokenResponse, error) {
	fieldErrors := validation.ValidateSignup(validation.SignupFields{
		FullName:        req.FullName,
		PhoneNumber:     req.PhoneNumber,
		Email:           req.Email,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
		CompanyID:       req.CompanyID,
		AgreeToTerms:    req.AgreeToTerms,
	})
	if len(fieldErrors) > 0 {
		return nil, nil, common.NewValidationAPIError(fieldErrors)
	}

	// The selected company must exist before an account is created for it.
	if _, err := s.companySvc.GetCompanyByID(ctx, req.CompanyID); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, nil, common.NewValidationAPIError(map[string]string{
				validation.FieldCompanyID: "Please select a company",
			})
		}
		s.logger.Error("Failed to verify selected company", zap.Int64("companyID", req.CompanyID), zap.Error(err))
		return nil, nil, common.ErrInternalServer.WithDetails("Failed to create account. Please try again.")
	}

	fullName := strings.TrimSpace(req.FullName)
	identity, err := s.backend.SignUp(ctx, req.Email, req.Password, fullName)
	if err != nil {
		return nil, nil, err
	}

	profile := &user.Profile{
		ID:          identity.UID,
		FullName:    fullName,
		PhoneNumber: strings.TrimSpace(req.PhoneNumber),
		CompanyID:   req.CompanyID,
	}
	if err := s.profileRepo.Create(ctx, profile); err != nil {
		s.logger.Error("Failed to create profile row, rolling back hosted account",
			zap.String("uid", identity.UID), zap.Error(err))
		if delErr := s.backend.DeleteUser(ctx, identity.UID); delErr != nil {
			// The hosted account now exists without a profile row; it needs
			// manual cleanup, so make the log loud.
			s.logger.Error("Rollback of hosted account failed",
				zap.String("uid", identity.UID), zap.Error(delErr))
		}
		if apiErr, ok := common.IsAPIError(err); ok {
			return nil, nil, apiErr
		}
		return nil, nil, common.ErrInternalServer.WithDetails("Failed to create account. Please try again.")
	}

	// Sign the fresh account in so signup hands back a usable session, the
	// way the hosted provider's own signUp does.
	signedIn, tokens, err := s.backend.SignIn(ctx, req.Email, req.Password)
	if err != nil {
		s.logger.Warn("Post-signup sign-in failed; account created without session",
			zap.String("uid", identity.UID), zap.Error(err))
		s.gate.Publish(session.EventSignedUp, identity)
		return identity, nil, nil
	}

	s.gate.Publish(session.EventSignedUp, signedIn)
	s.logger.Info("User signed up", zap.String("uid", signedIn.UID))
	return signedIn, tokens, nil
}

func (s *service) Login(ctx context.Context, req LoginRequest) (*shared.Identity, *shared.TokenResponse, error) {
	fieldErrors := validation.ValidateLogin(validation.LoginFields{
		Email:    req.Email,
		Password: req.Password,
	})
	if len(fieldErrors) > 0 {
		return nil, nil, common.NewValidationAPIError(fieldErrors)
	}

	identity, tokens, err := s.backend.SignIn(ctx, req.Email, req.Password)
	if err != nil {
		return nil, nil, err
	}

	s.gate.Publish(session.EventSignedIn, identity)
	s.logger.Info("User logged in", zap.String("uid", identity.UID))
	return identity, tokens, nil
}

func (s *service) Logout(ctx context.Context, uid string) error {
	if err := s.backend.SignOut(ctx, uid); err != nil {
		return common.ErrInternalServer.WithDetails("Failed to sign out.")
	}
	s.gate.Publish(session.EventSignedOut, nil)
	s.logger.Info("User signed out", zap.String("uid", uid))
	return nil
}
