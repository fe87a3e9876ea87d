package repo

import (
	"context"

	"github.com/rogerio-castellano/inventory-orders/internal/models"
)

// ProductRepository defines the interface for catalog operations.
type ProductRepository interface {
	Create(ctx context.Context, product models.Product) (models.Product, error)
	List(ctx context.Context, filter ProductFilter) ([]models.Product, error)
	GetByID(ctx context.Context, id int) (models.Product, error)
	Update(ctx context.Context, product models.Product) (models.Product, error)
	Delete(ctx context.Context, id int) error

	// DeductStock takes the requested quantities out of stock and returns the
	// product of each line as it was when its quantity was taken.
	DeductStock(ctx context.Context, lines []models.OrderLineRequest, policy StockPolicy) ([]models.Product, error)
	// RestoreStock puts quantities back. Lines of deleted products are skipped.
	RestoreStock(ctx context.Context, lines []models.OrderLineRequest) error
}
