// File: internal/shared/core.go
package shared

import (
	"context"
	"time"
)

// Identity represents the authenticated principal as reported by the hosted
// auth backend. It is the session identity: profile data lives in the users
// table, keyed 1:1 by UID.
type Identity struct {
	UID            string
	Email          *string
	EmailVerified  bool
	DisplayName    *string
	SignInProvider string
	CreatedAt      time.Time
	LastSignInAt   *time.Time
}

// TokenResponse carries the credentials minted by the auth backend on a
// successful password sign-in.
type TokenResponse struct {
	IDToken      string    `json:"id_token"`
	RefreshToken string    `json:"refresh_token"`
	TokenType    string    `json:"token_type"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// AuthBackend is the boundary contract with the hosted authentication
// service. The rest of the codebase consumes this interface; the concrete
// implementation wraps the Firebase Admin SDK plus the Identity Toolkit
// password-verification endpoint.
type AuthBackend interface {
	// VerifyIDToken validates a bearer ID token and returns the identity it
	// asserts.
	VerifyIDToken(ctx context.Context, idToken string) (*Identity, error)
	// SignUp creates a new email/password account and returns its identity.
	SignUp(ctx context.Context, email, password, displayName string) (*Identity, error)
	// SignIn performs a password sign-in and returns the identity plus tokens.
	SignIn(ctx context.Context, email, password string) (*Identity, *TokenResponse, error)
	// SignOut revokes the user's refresh tokens.
	SignOut(ctx context.Context, uid string) error
	// GetUser fetches the full identity record, including creation and
	// last-sign-in timestamps.
	GetUser(ctx context.Context, uid string) (*Identity, error)
	// DeleteUser removes the hosted account; used to roll back a signup whose
	// profile-row insert failed.
	DeleteUser(ctx context.Context, uid string) error
}
