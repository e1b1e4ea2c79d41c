package repository

import (
	"context"

	"product_service_backend/internal/product/domain"

	"github.com/google/uuid"
)

// Store is the persistence contract consumed by the product service. The
// postgres implementation in this package is the default binding; tests use
// in-memory fakes.
type Store interface {
	FindAll(ctx context.Context) ([]domain.Product, error)
	FindByID(ctx context.Context, id uuid.UUID) (domain.Product, error)
	// FindByClientID returns every product owned by the client, in no
	// particular order. A client with no products yields an empty slice.
	FindByClientID(ctx context.Context, clientID string) ([]domain.Product, error)
	// Save inserts or replaces a product. On first save the store assigns
	// the id and defaults balance and status.
	Save(ctx context.Context, product domain.Product) (domain.Product, error)
	// DeleteByID removes a product. Deleting an absent id is not an error.
	DeleteByID(ctx context.Context, id uuid.UUID) error

	SaveDebitCard(ctx context.Context, card domain.DebitCard) (domain.DebitCard, error)
	FindDebitCardByID(ctx context.Context, id uuid.UUID) (domain.DebitCard, error)
	FindAllDebitCards(ctx context.Context) ([]domain.DebitCard, error)
}
