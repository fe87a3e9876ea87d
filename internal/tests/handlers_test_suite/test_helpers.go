package handlers_test_suite

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"

	api "github.com/rogerio-castellano/inventory-orders/internal/http"
	handler "github.com/rogerio-castellano/inventory-orders/internal/http/handlers"
	rl "github.com/rogerio-castellano/inventory-orders/internal/http/rate_limiter"
	"github.com/rogerio-castellano/inventory-orders/internal/metrics"
	"github.com/rogerio-castellano/inventory-orders/internal/models"
	"github.com/rogerio-castellano/inventory-orders/internal/repo"
	"github.com/rogerio-castellano/inventory-orders/internal/service"
	"github.com/rogerio-castellano/inventory-orders/internal/storage"
	"go.uber.org/zap"
)

type testEnv struct {
	router   http.Handler
	backend  *storage.MemoryBackend
	products *repo.PersistentProductRepository
	orders   *repo.PersistentOrderRepository
}

type envOptions struct {
	logger      *zap.Logger
	rateLimiter *rl.Limiter
	policy      repo.StockPolicy
}

// newTestEnv wires the full router over memory backed collections.
func newTestEnv(opts envOptions) (*testEnv, error) {
	ctx := context.Background()
	backend := storage.NewMemoryBackend()

	products, err := repo.NewPersistentProductRepository(ctx, storage.NewCollection[models.Product](backend, "produtos"))
	if err != nil {
		return nil, fmt.Errorf("loading products: %w", err)
	}
	orders, err := repo.NewPersistentOrderRepository(ctx, storage.NewCollection[models.Order](backend, "pedidos"))
	if err != nil {
		return nil, fmt.Errorf("loading orders: %w", err)
	}

	logger := opts.logger
	if logger == nil {
		logger = zap.NewNop()
	}
	policy := opts.policy
	if policy == "" {
		policy = repo.StockPolicyTwoPhase
	}

	m := metrics.New(products)
	orderService := service.NewOrderService(products, orders, policy,
		service.WithRecorder(m), service.WithLogger(logger))
	s := handler.NewServer(products, orderService, logger)

	return &testEnv{
		router: api.NewRouter(s, api.RouterOptions{
			Logger:      logger,
			Metrics:     m,
			RateLimiter: opts.rateLimiter,
		}),
		backend:  backend,
		products: products,
		orders:   orders,
	}, nil
}

func doRequest(r http.Handler, method, target string, payload any) *httptest.ResponseRecorder {
	var body bytes.Buffer
	if payload != nil {
		if s, ok := payload.(string); ok {
			body.WriteString(s)
		} else {
			_ = json.NewEncoder(&body).Encode(payload)
		}
	}
	req := httptest.NewRequest(method, target, &body)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func createProduct(r http.Handler, p handler.ProductRequest) *httptest.ResponseRecorder {
	return doRequest(r, http.MethodPost, "/produtos", p)
}

func placeOrder(r http.Handler, o handler.OrderRequest) *httptest.ResponseRecorder {
	return doRequest(r, http.MethodPost, "/pedidos", o)
}

func productRequest(name string, price float64, stock int) handler.ProductRequest {
	return handler.ProductRequest{Name: name, Price: &price, StockQuantity: &stock}
}

func orderRequest(customer string, items ...models.OrderLineRequest) handler.OrderRequest {
	return handler.OrderRequest{Customer: customer, Items: items}
}

func item(productID, quantity int) models.OrderLineRequest {
	return models.OrderLineRequest{ProductID: productID, Quantity: quantity}
}
