package repositories

import (
	"context"
	"fmt"

	"productos/internal/models"
)

// UnavailableProductRepository stands in for the GORM repository when the
// store could not be reached at startup. Every call fails with
// ErrStoreUnavailable wrapping the bootstrap cause.
type UnavailableProductRepository struct {
	cause error
}

// NewUnavailableProductRepository creates a repository that always fails.
func NewUnavailableProductRepository(cause error) *UnavailableProductRepository {
	return &UnavailableProductRepository{cause: cause}
}

func (r *UnavailableProductRepository) err() error {
	if r.cause == nil {
		return ErrStoreUnavailable
	}
	return fmt.Errorf("%w: %v", ErrStoreUnavailable, r.cause)
}

// GetAll fails with ErrStoreUnavailable.
func (r *UnavailableProductRepository) GetAll(context.Context) ([]models.Product, error) {
	return nil, r.err()
}

// GetByID fails with ErrStoreUnavailable.
func (r *UnavailableProductRepository) GetByID(context.Context, uint) (*models.Product, error) {
	return nil, r.err()
}

// Create fails with ErrStoreUnavailable.
func (r *UnavailableProductRepository) Create(context.Context, *models.Product) error {
	return r.err()
}

// Update fails with ErrStoreUnavailable.
func (r *UnavailableProductRepository) Update(context.Context, *models.Product) error {
	return r.err()
}

// Delete fails with ErrStoreUnavailable.
func (r *UnavailableProductRepository) Delete(context.Context, uint) error {
	return r.err()
}
