// File: internal/firebase/service.go

// Package firebase wraps the hosted authentication backend: the Firebase
// Admin SDK for account management and token verification, and the Identity
// Toolkit API for email/password sign-in (the Admin SDK cannot verify
// passwords itself).
package firebase

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"go.uber.org/zap"
	identitytoolkit "google.golang.org/api/identitytoolkit/v3"
	"google.golang.org/api/option"

	"company_portal_backend/internal/common"
	"company_portal_backend/internal/config"
	"company_portal_backend/internal/shared"
)

// Service implements shared.AuthBackend against Firebase.
type Service struct {
	authClient *auth.Client
	gitkit     *identitytoolkit.RelyingpartyService
	logger     *zap.Logger
}

var _ shared.AuthBackend = (*Service)(nil)

// NewService initializes the Firebase Admin SDK and the Identity Toolkit
// client from the application config.
func NewService(cfg *config.Config, logger *zap.Logger) (*Service, error) {
	if cfg.FirebaseServiceAccountKeyPath == "" {
		logger.Error("Firebase service account key path is not configured.")
		return nil, fmt.Errorf("firebase service account key path is required")
	}

	cleanPath := filepath.Clean(cfg.FirebaseServiceAccountKeyPath)
	opt := option.WithCredentialsFile(cleanPath)

	var app *firebase.App
	var err error

	if cfg.FirebaseProjectID != "" {
		conf := &firebase.Config{ProjectID: cfg.FirebaseProjectID}
		app, err = firebase.NewApp(context.Background(), conf, opt)
	} else {
		// If ProjectID is not specified in config, let SDK infer from credentials
		app, err = firebase.NewApp(context.Background(), nil, opt)
	}
	if err != nil {
		logger.Error("Failed to initialize Firebase Admin SDK app", zap.Error(err), zap.String("keyPath", cleanPath))
		return nil, fmt.Errorf("error initializing Firebase app: %w", err)
	}

	authClient, err := app.Auth(context.Background())
	if err != nil {
		logger.Error("Failed to get Firebase Auth client", zap.Error(err))
		return nil, fmt.Errorf("error getting Firebase Auth client: %w", err)
	}

	// The Identity Toolkit endpoint authenticates with the project's Web API
	// key, the same key a browser client would use.
	gitkitService, err := identitytoolkit.NewService(context.Background(),
		option.WithAPIKey(cfg.FirebaseWebAPIKey))
	if err != nil {
		logger.Error("Failed to initialize Identity Toolkit service", zap.Error(err))
		return nil, fmt.Errorf("error initializing Identity Toolkit service: %w", err)
	}

	logger.Info("Firebase Admin SDK initialized successfully.")
	return &Service{
		authClient: authClient,
		gitkit:     gitkitService.Relyingparty,
		logger:     logger,
	}, nil
}

// VerifyIDToken verifies a Firebase ID token and returns the identity it
// asserts. Creation/last-sign-in timestamps are not present in the token;
// callers that need them should use GetUser.
func (s *Service) VerifyIDToken(ctx context.Context, idToken string) (*shared.Identity, error) {
	if idToken == "" {
		return nil, fmt.Errorf("ID token must not be empty")
	}

	token, err := s.authClient.VerifyIDToken(ctx, idToken)
	if err != nil {
		s.logger.Warn("Firebase ID token verification failed", zap.Error(err))
		return nil, fmt.Errorf("failed to verify Firebase ID token: %w", err)
	}

	identity := &shared.Identity{
		UID:            token.UID,
		SignInProvider: token.Firebase.SignInProvider,
	}
	if email, ok := token.Claims["email"].(string); ok && email != "" {
		identity.Email = &email
	}
	if verified, ok := token.Claims["email_verified"].(bool); ok {
		identity.EmailVerified = verified
	}
	if name, ok := token.Claims["name"].(string); ok && name != "" {
		identity.DisplayName = &name
	}
	if token.AuthTime > 0 {
		authTime := time.Unix(token.AuthTime, 0).UTC()
		identity.LastSignInAt = &authTime
	}

	s.logger.Debug("Firebase ID token verified successfully", zap.String("uid", token.UID))
	return identity, nil
}

// SignUp creates a new email/password account.
func (s *Service) SignUp(ctx context.Context, email, password, displayName string) (*shared.Identity, error) {
	params := (&auth.UserToCreate{}).
		Email(strings.ToLower(strings.TrimSpace(email))).
		Password(password)
	if displayName != "" {
		params = params.DisplayName(displayName)
	}

	record, err := s.authClient.CreateUser(ctx, params)
	if err != nil {
		s.logger.Warn("Firebase user creation failed", zap.Error(err), zap.String("email", email))
		if auth.IsEmailAlreadyExists(err) {
			return nil, common.ErrConflict.WithDetails("User already registered")
		}
		return nil, common.ErrInternalServer.WithDetails("Failed to create account. Please try again.")
	}

	s.logger.Info("Firebase user created", zap.String("uid", record.UID))
	return identityFromRecord(record), nil
}

// SignIn performs an email/password sign-in through the Identity Toolkit
// endpoint and returns the identity plus the minted tokens.
func (s *Service) SignIn(ctx context.Context, email, password string) (*shared.Identity, *shared.TokenResponse, error) {
	req := &identitytoolkit.IdentitytoolkitRelyingpartyVerifyPasswordRequest{
		Email:             strings.ToLower(strings.TrimSpace(email)),
		Password:          password,
		ReturnSecureToken: true,
	}

	resp, err := s.gitkit.VerifyPassword(req).Context(ctx).Do()
	if err != nil {
		s.logger.Info("Password sign-in rejected", zap.String("email", email), zap.Error(err))
		return nil, nil, common.ErrUnauthorized.WithDetails("Invalid login credentials")
	}

	record, err := s.authClient.GetUser(ctx, resp.LocalId)
	if err != nil {
		s.logger.Error("Failed to load user record after sign-in", zap.Error(err), zap.String("uid", resp.LocalId))
		return nil, nil, common.ErrInternalServer.WithDetails("Sign-in failed due to an internal error.")
	}

	tokens := &shared.TokenResponse{
		IDToken:      resp.IdToken,
		RefreshToken: resp.RefreshToken,
		TokenType:    "Bearer",
		ExpiresAt:    time.Now().Add(time.Duration(resp.ExpiresIn) * time.Second),
	}

	s.logger.Info("User signed in", zap.String("uid", record.UID))
	return identityFromRecord(record), tokens, nil
}

// SignOut revokes all refresh tokens for a given user.
func (s *Service) SignOut(ctx context.Context, uid string) error {
	if err := s.authClient.RevokeRefreshTokens(ctx, uid); err != nil {
		s.logger.Error("Failed to revoke refresh tokens", zap.Error(err), zap.String("uid", uid))
		return fmt.Errorf("failed to revoke refresh tokens: %w", err)
	}
	s.logger.Info("Successfully revoked refresh tokens for user", zap.String("uid", uid))
	return nil
}

// GetUser fetches the full identity record for a UID.
func (s *Service) GetUser(ctx context.Context, uid string) (*shared.Identity, error) {
	record, err := s.authClient.GetUser(ctx, uid)
	if err != nil {
		if auth.IsUserNotFound(err) {
			return nil, common.ErrNotFound.WithDetails("No account found for this user.")
		}
		s.logger.Error("Failed to fetch user record", zap.Error(err), zap.String("uid", uid))
		return nil, err
	}
	return identityFromRecord(record), nil
}

// DeleteUser removes the hosted account.
func (s *Service) DeleteUser(ctx context.Context, uid string) error {
	if err := s.authClient.DeleteUser(ctx, uid); err != nil {
		s.logger.Error("Failed to delete Firebase user", zap.Error(err), zap.String("uid", uid))
		return fmt.Errorf("failed to delete user %s: %w", uid, err)
	}
	s.logger.Info("Firebase user deleted", zap.String("uid", uid))
	return nil
}

func identityFromRecord(record *auth.UserRecord) *shared.Identity {
	identity := &shared.Identity{
		UID:           record.UID,
		EmailVerified: record.EmailVerified,
	}
	if record.Email != "" {
		email := record.Email
		identity.Email = &email
	}
	if record.DisplayName != "" {
		name := record.DisplayName
		identity.DisplayName = &name
	}
	if record.UserMetadata != nil {
		identity.CreatedAt = time.UnixMilli(record.UserMetadata.CreationTimestamp).UTC()
		if record.UserMetadata.LastLogInTimestamp > 0 {
			lastSignIn := time.UnixMilli(record.UserMetadata.LastLogInTimestamp).UTC()
			identity.LastSignInAt = &lastSignIn
		}
	}
	if len(record.ProviderUserInfo) > 0 {
		identity.SignInProvider = record.ProviderUserInfo[0].ProviderID
	}
	return identity
}
