package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rogerio-castellano/inventory-orders/internal/models"
	"github.com/rogerio-castellano/inventory-orders/internal/repo"
	"go.uber.org/zap"
)

// ValidationError lists the fields of an order request that were rejected.
type ValidationError struct {
	Fields []FieldError
}

type FieldError struct {
	Field       string `json:"field"`
	Description string `json:"description"`
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.Field + ": " + f.Description
	}
	return "invalid order: " + strings.Join(parts, "; ")
}

// Recorder receives order outcomes. Implemented by the metrics package.
type Recorder interface {
	OrderPlaced(order models.Order)
	OrderRejected(reason string)
}

type nopRecorder struct{}

func (nopRecorder) OrderPlaced(models.Order) {}
func (nopRecorder) OrderRejected(string)     {}

type OrderService struct {
	products repo.ProductRepository
	orders   repo.OrderRepository
	policy   repo.StockPolicy
	recorder Recorder
	logger   *zap.Logger
	now      func() time.Time
}

type Option func(*OrderService)

func WithRecorder(r Recorder) Option {
	return func(s *OrderService) { s.recorder = r }
}

func WithLogger(l *zap.Logger) Option {
	return func(s *OrderService) { s.logger = l }
}

// WithClock overrides the source of order timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *OrderService) { s.now = now }
}

func NewOrderService(products repo.ProductRepository, orders repo.OrderRepository, policy repo.StockPolicy, opts ...Option) *OrderService {
	if !policy.Valid() {
		policy = repo.StockPolicyTwoPhase
	}
	s := &OrderService{
		products: products,
		orders:   orders,
		policy:   policy,
		recorder: nopRecorder{},
		logger:   zap.NewNop(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func validateOrder(customer string, lines []models.OrderLineRequest) error {
	var fields []FieldError
	if strings.TrimSpace(customer) == "" {
		fields = append(fields, FieldError{Field: "cliente", Description: "Customer is required"})
	}
	if len(lines) == 0 {
		fields = append(fields, FieldError{Field: "itens", Description: "At least one item is required"})
	}
	for i, line := range lines {
		if line.Quantity <= 0 {
			fields = append(fields, FieldError{
				Field:       fmt.Sprintf("itens[%d].quantidade", i),
				Description: "Quantity must be greater than zero",
			})
		}
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// PlaceOrder takes the requested quantities out of stock, prices every line
// from the catalog and stores the order.
func (s *OrderService) PlaceOrder(ctx context.Context, customer string, lines []models.OrderLineRequest) (models.Order, error) {
	if err := validateOrder(customer, lines); err != nil {
		s.recorder.OrderRejected("validation")
		return models.Order{}, err
	}

	snapshots, err := s.products.DeductStock(ctx, lines, s.policy)
	if err != nil {
		s.recorder.OrderRejected(rejectReason(err))
		return models.Order{}, err
	}

	order := models.Order{
		CustomerName: customer,
		Lines:        make([]models.OrderLineItem, len(lines)),
		CreatedAt:    models.NewTimestamp(s.now()),
		Status:       models.OrderStatusInProgress,
	}
	for i, line := range lines {
		p := snapshots[i]
		item := models.OrderLineItem{
			ProductID:   p.ID,
			ProductName: p.Name,
			Quantity:    line.Quantity,
			UnitPrice:   p.Price,
			LineTotal:   p.Price * float64(line.Quantity),
		}
		order.Lines[i] = item
		order.TotalAmount += item.LineTotal
	}

	created, err := s.orders.Create(ctx, order)
	if err != nil {
		s.recorder.OrderRejected("storage")
		if s.policy == repo.StockPolicyTwoPhase {
			if restoreErr := s.products.RestoreStock(ctx, lines); restoreErr != nil {
				s.logger.Error("could not restore stock after failed order write",
					zap.String("customer", customer), zap.Error(restoreErr))
			}
		}
		return models.Order{}, fmt.Errorf("could not store order: %w", err)
	}

	s.recorder.OrderPlaced(created)
	remaining := make(map[int]int, len(lines))
	for i, p := range snapshots {
		remaining[p.ID] = p.StockQuantity - lines[i].Quantity
	}
	for id, qty := range remaining {
		if qty < models.LowStockThreshold {
			s.logger.Warn("product below low stock threshold",
				zap.Int("product_id", id), zap.Int("stock", qty))
		}
	}
	return created, nil
}

func rejectReason(err error) string {
	switch {
	case errors.Is(err, repo.ErrProductNotFound):
		return "product_not_found"
	case errors.Is(err, repo.ErrInsufficientStock):
		return "insufficient_stock"
	default:
		return "storage"
	}
}

func (s *OrderService) ListOrders(ctx context.Context) ([]models.Order, error) {
	return s.orders.GetAll(ctx)
}

func (s *OrderService) GetOrder(ctx context.Context, id int) (models.Order, error) {
	return s.orders.GetByID(ctx, id)
}

// DeleteOrder removes an order without putting its quantities back in stock.
func (s *OrderService) DeleteOrder(ctx context.Context, id int) error {
	return s.orders.Delete(ctx, id)
}
