package repo

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/rogerio-castellano/inventory-orders/internal/models"
	"github.com/rogerio-castellano/inventory-orders/internal/storage"
)

// PersistentProductRepository keeps the catalog in memory and rewrites the
// whole collection on every mutation.
type PersistentProductRepository struct {
	mu       sync.RWMutex
	products []models.Product
	lastID   int
	store    *storage.Collection[models.Product]
}

// NewPersistentProductRepository loads the catalog once. Ids continue from
// the highest stored id.
func NewPersistentProductRepository(ctx context.Context, store *storage.Collection[models.Product]) (*PersistentProductRepository, error) {
	products, err := store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load products: %w", err)
	}

	lastID := 0
	for _, p := range products {
		lastID = max(lastID, p.ID)
	}

	return &PersistentProductRepository{
		products: products,
		lastID:   lastID,
		store:    store,
	}, nil
}

func (r *PersistentProductRepository) indexOf(products []models.Product, id int) int {
	return slices.IndexFunc(products, func(p models.Product) bool { return p.ID == id })
}

func (r *PersistentProductRepository) nameTaken(name string, exceptID int) bool {
	for _, p := range r.products {
		if p.ID != exceptID && strings.EqualFold(p.Name, name) {
			return true
		}
	}
	return false
}

// commit persists next and only then makes it the current catalog.
func (r *PersistentProductRepository) commit(ctx context.Context, next []models.Product) error {
	if err := r.store.Save(ctx, next); err != nil {
		return err
	}
	r.products = next
	return nil
}

// Create adds a new product to the catalog.
func (r *PersistentProductRepository) Create(ctx context.Context, product models.Product) (models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.nameTaken(product.Name, 0) {
		return models.Product{}, ErrDuplicatedValueUnique
	}

	product.ID = r.lastID + 1
	next := append(slices.Clone(r.products), product)
	if err := r.commit(ctx, next); err != nil {
		return models.Product{}, err
	}
	r.lastID = product.ID
	return product, nil
}

// List returns the catalog in insertion order.
func (r *PersistentProductRepository) List(_ context.Context, filter ProductFilter) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	products := make([]models.Product, 0, len(r.products))
	for _, p := range r.products {
		if filter.LowStockOnly && !p.LowStock() {
			continue
		}
		products = append(products, p)
	}
	return products, nil
}

// GetByID retrieves a product by its ID.
func (r *PersistentProductRepository) GetByID(_ context.Context, id int) (models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if i := r.indexOf(r.products, id); i >= 0 {
		return r.products[i], nil
	}
	return models.Product{}, ErrProductNotFound
}

// Update replaces every mutable field of an existing product.
func (r *PersistentProductRepository) Update(ctx context.Context, product models.Product) (models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(r.products, product.ID)
	if i < 0 {
		return models.Product{}, ErrProductNotFound
	}
	if r.nameTaken(product.Name, product.ID) {
		return models.Product{}, ErrDuplicatedValueUnique
	}

	next := slices.Clone(r.products)
	next[i] = product
	if err := r.commit(ctx, next); err != nil {
		return models.Product{}, err
	}
	return product, nil
}

// Delete removes a product from the catalog by its ID.
func (r *PersistentProductRepository) Delete(ctx context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(r.products, id)
	if i < 0 {
		return ErrProductNotFound
	}
	return r.commit(ctx, slices.Delete(slices.Clone(r.products), i, i+1))
}

// DeductStock implements ProductRepository. Check and deduction happen under
// one lock, so concurrent orders cannot oversell.
func (r *PersistentProductRepository) DeductStock(ctx context.Context, lines []models.OrderLineRequest, policy StockPolicy) ([]models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if policy == StockPolicyInterleaved {
		return r.deductInterleaved(ctx, lines)
	}

	next := slices.Clone(r.products)
	snapshots, err := deductLines(next, lines)
	if err != nil {
		return nil, err
	}
	if err := r.commit(ctx, next); err != nil {
		return nil, err
	}
	return snapshots, nil
}

// deductInterleaved mutates the live catalog line by line. On a failing line
// the earlier deductions stay in memory and reach disk with the next write.
func (r *PersistentProductRepository) deductInterleaved(ctx context.Context, lines []models.OrderLineRequest) ([]models.Product, error) {
	snapshots, err := deductLines(r.products, lines)
	if err != nil {
		return nil, err
	}
	if err := r.store.Save(ctx, r.products); err != nil {
		return nil, err
	}
	return snapshots, nil
}

func deductLines(products []models.Product, lines []models.OrderLineRequest) ([]models.Product, error) {
	snapshots := make([]models.Product, 0, len(lines))
	for _, line := range lines {
		i := slices.IndexFunc(products, func(p models.Product) bool { return p.ID == line.ProductID })
		if i < 0 {
			return nil, &LineError{ProductID: line.ProductID, Err: ErrProductNotFound}
		}
		if products[i].StockQuantity < line.Quantity {
			return nil, &LineError{ProductID: line.ProductID, Err: ErrInsufficientStock}
		}
		snapshots = append(snapshots, products[i])
		products[i].StockQuantity -= line.Quantity
	}
	return snapshots, nil
}

// RestoreStock implements ProductRepository.
func (r *PersistentProductRepository) RestoreStock(ctx context.Context, lines []models.OrderLineRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	next := slices.Clone(r.products)
	for _, line := range lines {
		if i := r.indexOf(next, line.ProductID); i >= 0 {
			next[i].StockQuantity += line.Quantity
		}
	}
	return r.commit(ctx, next)
}
