package handlers

import (
	"context"

	"github.com/rogerio-castellano/inventory-orders/internal/models"
	repo "github.com/rogerio-castellano/inventory-orders/internal/repo"
	"go.uber.org/zap"
)

// OrderService is the order workflow used by the order handlers.
type OrderService interface {
	PlaceOrder(ctx context.Context, customer string, lines []models.OrderLineRequest) (models.Order, error)
	ListOrders(ctx context.Context) ([]models.Order, error)
	GetOrder(ctx context.Context, id int) (models.Order, error)
	DeleteOrder(ctx context.Context, id int) error
}

// Server holds the dependencies shared by every handler.
type Server struct {
	productRepo repo.ProductRepository
	orders      OrderService
	logger      *zap.Logger
}

func NewServer(productRepo repo.ProductRepository, orders OrderService, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		productRepo: productRepo,
		orders:      orders,
		logger:      logger,
	}
}
