package company

import (
	"context"
	"errors"
	"testing"

	"company_portal_backend/internal/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&Company{}))
	return db
}

func TestRepositoryFindAllOrdersByName(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGORMRepository(db)
	ctx := context.Background()

	for _, name := range []string{"Zephyr Freight", "Acme Logistics", "Meridian Shipping"} {
		require.NoError(t, repo.Create(ctx, &Company{Name: name, Slug: name}))
	}

	companies, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, companies, 3)
	assert.Equal(t, "Acme Logistics", companies[0].Name)
	assert.Equal(t, "Meridian Shipping", companies[1].Name)
	assert.Equal(t, "Zephyr Freight", companies[2].Name)
}

func TestRepositoryFindByID(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGORMRepository(db)
	ctx := context.Background()

	created := &Company{Name: "Acme Logistics", Slug: "acme-logistics"}
	require.NoError(t, repo.Create(ctx, created))

	found, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Acme Logistics", found.Name)

	_, err = repo.FindByID(ctx, 9999)
	assert.True(t, errors.Is(err, common.ErrNotFound))
}

func TestRepositoryCreateNormalizesSlugAndRejectsDuplicates(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGORMRepository(db)
	ctx := context.Background()

	created := &Company{Name: "Acme Logistics", Slug: "  Acme-Logistics "}
	require.NoError(t, repo.Create(ctx, created))
	assert.Equal(t, "acme-logistics", created.Slug)

	err := repo.Create(ctx, &Company{Name: "Acme Logistics", Slug: "acme-logistics"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrConflict))
}

func TestServiceSeedDefaults(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGORMRepository(db)
	svc := NewService(repo, zap.NewNop())
	ctx := context.Background()

	require.NoError(t, svc.SeedDefaults(ctx))
	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Greater(t, count, int64(0))

	// Seeding again is a no-op against a populated directory.
	require.NoError(t, svc.SeedDefaults(ctx))
	countAfter, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, count, countAfter)
}
