package handlers_integrated_test_suite

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"

	api "github.com/rogerio-castellano/inventory-orders/internal/http"
	handler "github.com/rogerio-castellano/inventory-orders/internal/http/handlers"
	"github.com/rogerio-castellano/inventory-orders/internal/models"
	"github.com/rogerio-castellano/inventory-orders/internal/repo"
	"github.com/rogerio-castellano/inventory-orders/internal/service"
	"github.com/rogerio-castellano/inventory-orders/internal/storage"
	"go.uber.org/zap"
)

// startServer builds the router over the given backend, loading whatever
// collections it already holds.
func startServer(backend storage.Backend) (http.Handler, error) {
	ctx := context.Background()
	products, err := repo.NewPersistentProductRepository(ctx, storage.NewCollection[models.Product](backend, "produtos"))
	if err != nil {
		return nil, fmt.Errorf("loading products: %w", err)
	}
	orders, err := repo.NewPersistentOrderRepository(ctx, storage.NewCollection[models.Order](backend, "pedidos"))
	if err != nil {
		return nil, fmt.Errorf("loading orders: %w", err)
	}

	orderService := service.NewOrderService(products, orders, repo.StockPolicyTwoPhase)
	s := handler.NewServer(products, orderService, zap.NewNop())
	return api.NewRouter(s, api.RouterOptions{}), nil
}

func doRequest(r http.Handler, method, target string, payload any) *httptest.ResponseRecorder {
	var body bytes.Buffer
	if payload != nil {
		_ = json.NewEncoder(&body).Encode(payload)
	}
	req := httptest.NewRequest(method, target, &body)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func productRequest(name string, price float64, stock int) handler.ProductRequest {
	return handler.ProductRequest{Name: name, Price: &price, StockQuantity: &stock}
}
