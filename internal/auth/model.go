// File: internal/auth/model.go
package auth

import (
	"time"

	"company_portal_backend/internal/shared"
)

// LoginRequest defines the login form payload. Field checks are performed by
// the validation engine, not binding tags, so the client gets the same
// field->message map shape for every validation failure.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignupRequest defines the signup form payload.
type SignupRequest struct {
	FullName        string `json:"full_name"`
	PhoneNumber     string `json:"phone_number"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
	CompanyID       int64  `json:"company_id"`
	AgreeToTerms    bool   `json:"agree_to_terms"`
}

// IdentityResponse defines the session identity sent in API responses.
type IdentityResponse struct {
	UID           string     `json:"uid"`
	Email         *string    `json:"email,omitempty"`
	EmailVerified bool       `json:"email_verified"`
	DisplayName   *string    `json:"display_name,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	LastSignInAt  *time.Time `json:"last_sign_in_at,omitempty"`
}

// ToIdentityResponse converts a shared.Identity to an IdentityResponse DTO.
func ToIdentityResponse(identity *shared.Identity) IdentityResponse {
	return IdentityResponse{
		UID:           identity.UID,
		Email:         identity.Email,
		EmailVerified: identity.EmailVerified,
		DisplayName:   identity.DisplayName,
		CreatedAt:     identity.CreatedAt,
		LastSignInAt:  identity.LastSignInAt,
	}
}
