// File: internal/profile/model.go
package profile

import (
	"time"

	"company_portal_backend/internal/company"
	"company_portal_backend/internal/user"
)

// DashboardResponse is the assembled post-login dashboard payload.
type DashboardResponse struct {
	Profile           user.ProfileResponse    `json:"profile"`
	Company           company.CompanyResponse `json:"company"`
	VerificationBadge string                  `json:"verification_badge"`
	Email             *string                 `json:"email,omitempty"`
	EmailConfirmed    bool                    `json:"email_confirmed"`
	CreatedAt         time.Time               `json:"created_at"`
	LastSignInAt      *time.Time              `json:"last_sign_in_at,omitempty"`
	DirectionsURL     *string                 `json:"directions_url,omitempty"`
}
