// File: internal/company/service.go
package company

import (
	"context"
	"strings"

	"github.com/gosimple/slug"
	"go.uber.org/zap"
)

// Service defines the interface for company-related business logic.
type Service interface {
	// GetAllCompanies returns the selectable directory, ordered by name.
	GetAllCompanies(ctx context.Context) ([]Company, error)
	GetCompanyByID(ctx context.Context, id int64) (*Company, error)
	// SeedDefaults inserts the default directory when the table is empty.
	SeedDefaults(ctx context.Context) error
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

// NewService creates a new company service.
func NewService(repo Repository, logger *zap.Logger) Service {
	return &service{
		repo:   repo,
		logger: logger.Named("CompanyService"),
	}
}

func (s *service) GetAllCompanies(ctx context.Context) ([]Company, error) {
	companies, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error("Failed to fetch companies", zap.Error(err))
		return nil, err
	}
	return companies, nil
}

func (s *service) GetCompanyByID(ctx context.Context, id int64) (*Company, error) {
	return s.repo.FindByID(ctx, id)
}

// defaultCompanies mirrors the seed rows of the hosted project so a fresh
// development database offers the same signup choices.
var defaultCompanies = []struct {
	name    string
	tagline string
}{
	{"Acme Logistics", "Freight without the friction"},
	{"Bluebird Media", "Stories that travel"},
	{"Cascade Analytics", "Decisions, measured"},
	{"Harbor & Lane", "Hospitality done right"},
	{"Northwind Manufacturing", "Built to last"},
}

func (s *service) SeedDefaults(ctx context.Context) error {
	count, err := s.repo.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		s.logger.Debug("Company directory already populated, skipping seed", zap.Int64("count", count))
		return nil
	}

	for _, c := range defaultCompanies {
		tagline := c.tagline
		companyModel := &Company{
			Name:    strings.TrimSpace(c.name),
			Slug:    slug.Make(c.name),
			Tagline: &tagline,
		}
		if err := s.repo.Create(ctx, companyModel); err != nil {
			s.logger.Error("Failed to seed company", zap.String("name", c.name), zap.Error(err))
			return err
		}
	}
	s.logger.Info("Seeded default company directory", zap.Int("count", len(defaultCompanies)))
	return nil
}
