// File: internal/user/model.go
package user

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"company_portal_backend/internal/common"
	"company_portal_backend/internal/company"
	"company_portal_backend/internal/platform/geocoding"
)

// AddressComponents stores the provider's structured address breakdown as a
// JSONB column.
type AddressComponents []geocoding.Component

// Value implements the driver.Valuer interface for AddressComponents.
func (a AddressComponents) Value() (driver.Value, error) {
	if a == nil {
		return nil, nil
	}
	return json.Marshal(a)
}

// Scan implements the sql.Scanner interface for AddressComponents.
func (a *AddressComponents) Scan(value interface{}) error {
	if value == nil {
		*a = nil
		return nil
	}
	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return errors.New("failed to scan AddressComponents: invalid type")
	}
	return json.Unmarshal(raw, a)
}

// VerificationStatus is the derived display state of the verified column.
type VerificationStatus string

const (
	VerificationNotVerified VerificationStatus = "not_verified"
	VerificationPending     VerificationStatus = "pending"
	VerificationVerified    VerificationStatus = "verified"
)

// Profile represents the user profile row, keyed 1:1 by the auth backend's
// UID.
type Profile struct {
	ID          string           `gorm:"type:varchar(128);primaryKey"`
	FullName    string           `gorm:"type:varchar(150);not null"`
	PhoneNumber string           `gorm:"type:varchar(50);not null"`
	CompanyID   int64            `gorm:"not null"`
	Company     *company.Company `gorm:"foreignKey:CompanyID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;"`

	// Address fields are all set or all unset together; the only writer is
	// the address-session save, which updates them in a single statement.
	Address           *string           `gorm:"type:text"`
	Latitude          *float64          `gorm:"type:decimal(10,8)"`
	Longitude         *float64          `gorm:"type:decimal(11,8)"`
	PlaceID           *string           `gorm:"type:varchar(255)"`
	AddressComponents AddressComponents `gorm:"type:jsonb"`

	// Verified is tri-state, not boolean: NULL/empty means not verified,
	// the literal "pending" means pending, any other value means verified.
	Verified *string `gorm:"type:varchar(50)"`

	// LastLoginAt is stamped by the session-event listener on every sign-in.
	LastLoginAt *time.Time `gorm:"type:timestamptz"`

	common.TimestampedModel
}

// TableName specifies the table name for the Profile model.
func (Profile) TableName() string {
	return "users"
}

// VerificationStatus derives the display state from the raw column value.
func (p *Profile) VerificationStatus() VerificationStatus {
	if p.Verified == nil || *p.Verified == "" {
		return VerificationNotVerified
	}
	if *p.Verified == "pending" {
		return VerificationPending
	}
	return VerificationVerified
}

// HasAddress reports whether a confirmed address is on file.
func (p *Profile) HasAddress() bool {
	return p.Address != nil && *p.Address != ""
}

// AddressUpdate is the atomic write issued when an address-editing session is
// saved. All fields land in one update, stamped with UpdatedAt.
type AddressUpdate struct {
	Address           string
	Latitude          float64
	Longitude         float64
	PlaceID           string
	AddressComponents AddressComponents
}

// --- DTOs ---

// ProfileResponse defines the structure for profile data sent in API responses.
type ProfileResponse struct {
	ID                string            `json:"id"`
	FullName          string            `json:"full_name"`
	PhoneNumber       string            `json:"phone_number"`
	CompanyID         int64             `json:"company_id"`
	Address           *string           `json:"address,omitempty"`
	Latitude          *float64          `json:"latitude,omitempty"`
	Longitude         *float64          `json:"longitude,omitempty"`
	PlaceID           *string           `json:"place_id,omitempty"`
	AddressComponents AddressComponents `json:"address_components,omitempty"`
	Verified          *string           `json:"verified,omitempty"`
	LastLoginAt       *time.Time        `json:"last_login_at,omitempty"`
	CreatedAt         time.Time         `json:"created_at"`
	UpdatedAt         time.Time         `json:"updated_at"`
}

// ToProfileResponse converts a Profile model to a ProfileResponse DTO.
func ToProfileResponse(profile *Profile) ProfileResponse {
	return ProfileResponse{
		ID:                profile.ID,
		FullName:          profile.FullName,
		PhoneNumber:       profile.PhoneNumber,
		CompanyID:         profile.CompanyID,
		Address:           profile.Address,
		Latitude:          profile.Latitude,
		Longitude:         profile.Longitude,
		PlaceID:           profile.PlaceID,
		AddressComponents: profile.AddressComponents,
		Verified:          profile.Verified,
		LastLoginAt:       profile.LastLoginAt,
		CreatedAt:         profile.CreatedAt,
		UpdatedAt:         profile.UpdatedAt,
	}
}
