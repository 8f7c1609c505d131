// File: internal/company/repository.go
package company

import (
	"context"
	"errors"
	"strings"

	"company_portal_backend/internal/common"

	"gorm.io/gorm"
)

// Repository defines the interface for company data operations.
type Repository interface {
	FindAll(ctx context.Context) ([]Company, error)
	FindByID(ctx context.Context, id int64) (*Company, error)
	Create(ctx context.Context, company *Company) error
	Count(ctx context.Context) (int64, error)
}

type gormRepository struct {
	db *gorm.DB
}

// NewGORMRepository creates a new GORM company repository.
func NewGORMRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

// FindAll returns every company ordered by name, the order the signup
// selector presents them in.
func (r *gormRepository) FindAll(ctx context.Context) ([]Company, error) {
	var companies []Company
	err := r.db.WithContext(ctx).Order("name ASC").Find(&companies).Error
	if err != nil {
		return nil, err
	}
	return companies, nil
}

func (r *gormRepository) FindByID(ctx context.Context, id int64) (*Company, error) {
	var companyModel Company
	err := r.db.WithContext(ctx).First(&companyModel, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrNotFound.WithDetails("Company not found.")
		}
		return nil, err
	}
	return &companyModel, nil
}

func (r *gormRepository) Create(ctx context.Context, company *Company) error {
	company.Slug = strings.ToLower(strings.TrimSpace(company.Slug))
	err := r.db.WithContext(ctx).Create(company).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) || strings.Contains(strings.ToLower(err.Error()), "unique constraint") {
			return common.ErrConflict.WithDetails("Company with this name or slug already exists.")
		}
		return err
	}
	return nil
}

func (r *gormRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Company{}).Count(&count).Error
	return count, err
}
