package repositories_test

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"productos/internal/models"
	"productos/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newSQLiteRepository(t *testing.T) repositories.ProductRepository {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Product{}))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })
	return repositories.NewGORMProductRepository(db)
}

func TestProductRepositories(t *testing.T) {
	impls := map[string]func(t *testing.T) repositories.ProductRepository{
		"gorm":   newSQLiteRepository,
		"memory": func(*testing.T) repositories.ProductRepository { return repositories.NewMemoryProductRepository() },
	}

	for name, newRepo := range impls {
		t.Run(name, func(t *testing.T) {
			repo := newRepo(t)
			ctx := context.Background()

			products, err := repo.GetAll(ctx)
			require.NoError(t, err)
			assert.Empty(t, products)

			first := &models.Product{Name: "Monitor", Price: 300, Availability: true}
			second := &models.Product{Name: "Mouse", Price: 50, Availability: true}
			require.NoError(t, repo.Create(ctx, first))
			require.NoError(t, repo.Create(ctx, second))
			assert.NotZero(t, first.ID)
			assert.Greater(t, second.ID, first.ID)

			products, err = repo.GetAll(ctx)
			require.NoError(t, err)
			require.Len(t, products, 2)
			assert.Equal(t, first.ID, products[0].ID)

			got, err := repo.GetByID(ctx, first.ID)
			require.NoError(t, err)
			assert.Equal(t, "Monitor", got.Name)
			assert.True(t, got.Availability)

			got.Availability = false
			got.Price = 250
			require.NoError(t, repo.Update(ctx, got))
			got, err = repo.GetByID(ctx, first.ID)
			require.NoError(t, err)
			assert.False(t, got.Availability)
			assert.Equal(t, 250.0, got.Price)

			require.NoError(t, repo.Delete(ctx, second.ID))
			_, err = repo.GetByID(ctx, second.ID)
			assert.ErrorIs(t, err, repositories.ErrProductNotFound)
			assert.ErrorIs(t, repo.Delete(ctx, second.ID), repositories.ErrProductNotFound)
			assert.ErrorIs(t, repo.Update(ctx, &models.Product{ID: second.ID, Name: "x", Price: 1}), repositories.ErrProductNotFound)

			third := &models.Product{Name: "Keyboard", Price: 75, Availability: true}
			require.NoError(t, repo.Create(ctx, third))
			assert.Greater(t, third.ID, second.ID, "deleted IDs are not reused")
		})
	}
}

func TestUnavailableProductRepository(t *testing.T) {
	cause := fmt.Errorf("connection refused")
	repo := repositories.NewUnavailableProductRepository(cause)
	ctx := context.Background()

	_, err := repo.GetAll(ctx)
	assert.ErrorIs(t, err, repositories.ErrStoreUnavailable)
	assert.ErrorContains(t, err, "connection refused")

	_, err = repo.GetByID(ctx, 1)
	assert.ErrorIs(t, err, repositories.ErrStoreUnavailable)
	assert.ErrorIs(t, repo.Create(ctx, &models.Product{Name: "Monitor", Price: 300}), repositories.ErrStoreUnavailable)
	assert.ErrorIs(t, repo.Update(ctx, &models.Product{ID: 1}), repositories.ErrStoreUnavailable)
	assert.ErrorIs(t, repo.Delete(ctx, 1), repositories.ErrStoreUnavailable)

	assert.Equal(t, repositories.ErrStoreUnavailable, repositories.NewUnavailableProductRepository(nil).Delete(ctx, 1))
}
