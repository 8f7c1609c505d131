// File: internal/profile/service.go
package profile

import (
	"context"
	"fmt"
	"net/url"

	"company_portal_backend/internal/company"
	"company_portal_backend/internal/shared"
	"company_portal_backend/internal/user"

	"go.uber.org/zap"
)

// Badge labels for the tri-state verification column.
const (
	BadgeNotVerified         = "Not Verified"
	BadgeVerificationPending = "Verification Pending"
	BadgeVerified            = "Verified"
)

// Service defines the interface for the profile dashboard.
type Service interface {
	// GetDashboard assembles the dashboard for an authenticated identity:
	// the profile row, its company, the verification badge, and account
	// metadata from the auth backend.
	GetDashboard(ctx context.Context, identity *shared.Identity) (*DashboardResponse, error)
}

type service struct {
	profileRepo    user.Repository
	companyService company.Service
	backend        shared.AuthBackend
	logger         *zap.Logger
}

// NewService creates a new profile service.
func NewService(
	profileRepo user.Repository,
	companyService company.Service,
	backend shared.AuthBackend,
	logger *zap.Logger,
) Service {
	return &service{
		profileRepo:    profileRepo,
		companyService: companyService,
		backend:        backend,
		logger:         logger,
	}
}

func (s *service) GetDashboard(ctx context.Context, identity *shared.Identity) (*DashboardResponse, error) {
	// The two reads are sequential: the company fetch depends on the
	// profile's foreign key, and either failure aborts the dashboard.
	prof, err := s.profileRepo.FindByID(ctx, identity.UID)
	if err != nil {
		s.logger.Warn("Dashboard: profile fetch failed",
			zap.String("uid", identity.UID), zap.Error(err))
		return nil, err
	}

	comp, err := s.companyService.GetCompanyByID(ctx, prof.CompanyID)
	if err != nil {
		s.logger.Warn("Dashboard: company fetch failed",
			zap.String("uid", identity.UID), zap.Int64("companyID", prof.CompanyID), zap.Error(err))
		return nil, err
	}

	account, err := s.backend.GetUser(ctx, identity.UID)
	if err != nil {
		// Account metadata is best taken fresh, but the verified token
		// already carries enough to render the dashboard.
		s.logger.Warn("Dashboard: account lookup failed, using token identity",
			zap.String("uid", identity.UID), zap.Error(err))
		account = identity
	}

	companyResponse := company.ToCompanyResponse(comp)
	response := &DashboardResponse{
		Profile:           user.ToProfileResponse(prof),
		Company:           companyResponse,
		VerificationBadge: badgeFor(prof.VerificationStatus()),
		Email:             account.Email,
		EmailConfirmed:    account.EmailVerified,
		CreatedAt:         account.CreatedAt,
		LastSignInAt:      account.LastSignInAt,
	}
	if prof.HasAddress() {
		response.DirectionsURL = directionsURL(*prof.Address)
	}
	return response, nil
}

func badgeFor(status user.VerificationStatus) string {
	switch status {
	case user.VerificationPending:
		return BadgeVerificationPending
	case user.VerificationVerified:
		return BadgeVerified
	default:
		return BadgeNotVerified
	}
}

// directionsURL builds the external directions link for a confirmed
// address.
func directionsURL(address string) *string {
	u := fmt.Sprintf("https://www.google.com/maps/dir/?api=1&destination=%s", url.QueryEscape(address))
	return &u
}
