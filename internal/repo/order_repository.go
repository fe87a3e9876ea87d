package repo

import (
	"context"

	"github.com/rogerio-castellano/inventory-orders/internal/models"
)

// OrderRepository defines the interface for order data operations.
type OrderRepository interface {
	Create(ctx context.Context, order models.Order) (models.Order, error)
	GetAll(ctx context.Context) ([]models.Order, error)
	GetByID(ctx context.Context, id int) (models.Order, error)
	Delete(ctx context.Context, id int) error
}
