package repo

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/rogerio-castellano/inventory-orders/internal/models"
	"github.com/rogerio-castellano/inventory-orders/internal/storage"
)

// PersistentOrderRepository keeps orders in memory and rewrites the whole
// collection on every mutation.
type PersistentOrderRepository struct {
	mu     sync.RWMutex
	orders []models.Order
	lastID int
	store  *storage.Collection[models.Order]
}

func NewPersistentOrderRepository(ctx context.Context, store *storage.Collection[models.Order]) (*PersistentOrderRepository, error) {
	orders, err := store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load orders: %w", err)
	}

	lastID := 0
	for _, o := range orders {
		lastID = max(lastID, o.ID)
	}

	return &PersistentOrderRepository{
		orders: orders,
		lastID: lastID,
		store:  store,
	}, nil
}

func (r *PersistentOrderRepository) indexOf(id int) int {
	return slices.IndexFunc(r.orders, func(o models.Order) bool { return o.ID == id })
}

// Create assigns the next id and stores the order.
func (r *PersistentOrderRepository) Create(ctx context.Context, order models.Order) (models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	order.ID = r.lastID + 1
	next := append(slices.Clone(r.orders), order)
	if err := r.store.Save(ctx, next); err != nil {
		return models.Order{}, err
	}
	r.orders = next
	r.lastID = order.ID
	return order, nil
}

func (r *PersistentOrderRepository) GetAll(_ context.Context) ([]models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.orders), nil
}

func (r *PersistentOrderRepository) GetByID(_ context.Context, id int) (models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if i := r.indexOf(id); i >= 0 {
		return r.orders[i], nil
	}
	return models.Order{}, ErrOrderNotFound
}

// Delete removes the order. Stock is not restored.
func (r *PersistentOrderRepository) Delete(ctx context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return ErrOrderNotFound
	}
	next := slices.Delete(slices.Clone(r.orders), i, i+1)
	if err := r.store.Save(ctx, next); err != nil {
		return err
	}
	r.orders = next
	return nil
}
