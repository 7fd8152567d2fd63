package services

import (
	"context"
	"fmt"

	"productos/internal/models"
	"productos/internal/repositories"

	"github.com/sirupsen/logrus"
)

// ErrProductNotFound is returned when the product being located does not exist.
var ErrProductNotFound = repositories.ErrProductNotFound

// Product lifecycle events.
const (
	EventProductCreated = "product.created"
	EventProductUpdated = "product.updated"
	EventProductDeleted = "product.deleted"
)

// EventPublisher publishes product lifecycle events.
type EventPublisher interface {
	PublishProductEvent(event string, product models.Product) error
}

// ReplaceProduct carries the fields overwritten by a full update.
type ReplaceProduct struct {
	Name         string
	Price        float64
	Availability bool
}

// ProductService handles business logic related to products.
//
// Mutations locate the product first and act on it afterwards without a
// version check; concurrent writers race and the last write wins.
type ProductService struct {
	repo      repositories.ProductRepository
	publisher EventPublisher
	log       logrus.FieldLogger
}

// NewProductService creates a new ProductService. publisher may be nil.
func NewProductService(repo repositories.ProductRepository, publisher EventPublisher, log logrus.FieldLogger) *ProductService {
	return &ProductService{
		repo:      repo,
		publisher: publisher,
		log:       log,
	}
}

// GetAllProducts retrieves all products.
func (s *ProductService) GetAllProducts(ctx context.Context) ([]models.Product, error) {
	return s.repo.GetAll(ctx)
}

// GetProductByID retrieves a single product by its ID.
func (s *ProductService) GetProductByID(ctx context.Context, id uint) (*models.Product, error) {
	return s.repo.GetByID(ctx, id)
}

// CreateProduct creates a new, available product.
func (s *ProductService) CreateProduct(ctx context.Context, name string, price float64) (*models.Product, error) {
	product := &models.Product{
		Name:         name,
		Price:        price,
		Availability: true,
	}
	if err := s.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	s.publish(EventProductCreated, *product)
	return product, nil
}

// ReplaceProduct overwrites name, price and availability of an existing product.
func (s *ProductService) ReplaceProduct(ctx context.Context, id uint, in ReplaceProduct) (*models.Product, error) {
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	product.Name = in.Name
	product.Price = in.Price
	product.Availability = in.Availability
	if err := s.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	s.publish(EventProductUpdated, *product)
	return product, nil
}

// UpdateAvailability sets the availability of an existing product. A nil
// availability toggles the current value.
func (s *ProductService) UpdateAvailability(ctx context.Context, id uint, availability *bool) (*models.Product, error) {
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if availability != nil {
		product.Availability = *availability
	} else {
		product.Availability = !product.Availability
	}
	if err := s.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	s.publish(EventProductUpdated, *product)
	return product, nil
}

// DeleteProduct deletes an existing product.
func (s *ProductService) DeleteProduct(ctx context.Context, id uint) error {
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete product %d: %w", id, err)
	}
	s.publish(EventProductDeleted, *product)
	return nil
}

// publish is best-effort: the mutation already happened, so a broker failure
// is only logged.
func (s *ProductService) publish(event string, product models.Product) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishProductEvent(event, product); err != nil {
		s.log.WithError(err).WithFields(logrus.Fields{
			"event":      event,
			"product_id": product.ID,
		}).Warn("Failed to publish product event")
	}
}
