// File: internal/user/repository.go
package user

import (
	"context"
	"errors"
	"strings"
	"time"

	"company_portal_backend/internal/common"

	"gorm.io/gorm"
)

// Repository defines the interface for profile data operations.
type Repository interface {
	Create(ctx context.Context, profile *Profile) error
	FindByID(ctx context.Context, id string) (*Profile, error)
	// UpdateAddress writes the full address field set in one statement,
	// stamping updated_at. Partial address writes are not possible through
	// this interface.
	UpdateAddress(ctx context.Context, id string, update AddressUpdate) error
	// StampLastLogin records the time of the most recent sign-in.
	StampLastLogin(ctx context.Context, id string, at time.Time) error
}

type gormRepository struct {
	db *gorm.DB
}

// NewGORMRepository creates a new GORM profile repository.
func NewGORMRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) Create(ctx context.Context, profile *Profile) error {
	err := r.db.WithContext(ctx).Create(profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) ||
			strings.Contains(strings.ToLower(err.Error()), "unique constraint") ||
			strings.Contains(err.Error(), "duplicate key value violates unique constraint") {
			return common.ErrConflict.WithDetails("A profile already exists for this user.")
		}
		return err
	}
	return nil
}

func (r *gormRepository) FindByID(ctx context.Context, id string) (*Profile, error) {
	var profileModel Profile
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&profileModel).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrNotFound.WithDetails("User profile not found.")
		}
		return nil, err
	}
	return &profileModel, nil
}

func (r *gormRepository) UpdateAddress(ctx context.Context, id string, update AddressUpdate) error {
	result := r.db.WithContext(ctx).Model(&Profile{}).Where("id = ?", id).Updates(map[string]interface{}{
		"address":            update.Address,
		"latitude":           update.Latitude,
		"longitude":          update.Longitude,
		"place_id":           update.PlaceID,
		"address_components": update.AddressComponents,
		"updated_at":         time.Now().UTC(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return common.ErrNotFound.WithDetails("User profile not found.")
	}
	return nil
}

func (r *gormRepository) StampLastLogin(ctx context.Context, id string, at time.Time) error {
	result := r.db.WithContext(ctx).Model(&Profile{}).Where("id = ?", id).
		Update("last_login_at", at)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return common.ErrNotFound.WithDetails("User profile not found.")
	}
	return nil
}
