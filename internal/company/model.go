// File: internal/company/model.go
package company

import (
	"time"

	"company_portal_backend/internal/common"
)

// Company represents an organization users belong to. The directory is
// read-only from the client's perspective; rows are managed out of band.
type Company struct {
	ID      int64   `gorm:"primaryKey;autoIncrement"`
	Name    string  `gorm:"type:varchar(150);not null;uniqueIndex:idx_companies_name,unique"`
	Slug    string  `gorm:"type:varchar(150);not null;uniqueIndex:idx_companies_slug,unique"`
	Tagline *string `gorm:"type:varchar(255)"`
	LogoURL *string `gorm:"type:text"`
	common.TimestampedModel
}

// TableName specifies the table name for the Company model.
func (Company) TableName() string {
	return "companies"
}

// --- DTOs ---

// CompanyResponse defines the structure for company data sent in API responses.
type CompanyResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	Tagline   *string   `json:"tagline,omitempty"`
	LogoURL   *string   `json:"logo_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToCompanyResponse converts a Company model to a CompanyResponse DTO.
func ToCompanyResponse(company *Company) CompanyResponse {
	return CompanyResponse{
		ID:        company.ID,
		Name:      company.Name,
		Slug:      company.Slug,
		Tagline:   company.Tagline,
		LogoURL:   company.LogoURL,
		CreatedAt: company.CreatedAt,
		UpdatedAt: company.UpdatedAt,
	}
}
