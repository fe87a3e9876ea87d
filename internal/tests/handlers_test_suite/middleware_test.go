package handlers_test_suite

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	handler "github.com/rogerio-castellano/inventory-orders/internal/http/handlers"
	rl "github.com/rogerio-castellano/inventory-orders/internal/http/rate_limiter"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestHealthHandler(t *testing.T) {
	env := setup(t)

	w := doRequest(env.router, http.MethodGet, "/health", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}
	var resp handler.HealthResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	if resp.Status != "ok" {
		t.Errorf("expected status ok, got %q", resp.Status)
	}
}

func TestRequestIDMiddleware(t *testing.T) {
	env := setup(t)

	w := doRequest(env.router, http.MethodGet, "/health", nil)
	if w.Header().Get("X-Request-Id") == "" {
		t.Error("expected a generated X-Request-Id header")
	}

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-Id", "abc-123")
	w = httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	if got := w.Header().Get("X-Request-Id"); got != "abc-123" {
		t.Errorf("expected caller request id to be echoed, got %q", got)
	}
}

func TestLoggingMiddleware(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	env, err := newTestEnv(envOptions{logger: zap.New(core)})
	if err != nil {
		t.Fatalf("error building test env: %v", err)
	}

	doRequest(env.router, http.MethodGet, "/produtos/999", nil)

	entries := logs.FilterMessage("request received").All()
	if len(entries) != 1 {
		t.Fatalf("expected one received entry, got %d", len(entries))
	}
	if got := entries[0].ContextMap()["method"]; got != http.MethodGet {
		t.Errorf("expected method GET, got %v", got)
	}

	completed := logs.FilterMessage("request completed").All()
	if len(completed) != 1 {
		t.Fatalf("expected one completed entry, got %d", len(completed))
	}
	if got := completed[0].ContextMap()["status"]; got != int64(http.StatusNotFound) {
		t.Errorf("expected status 404 to be logged, got %v", got)
	}
}

func TestCreateOrderHandler_LogsLowStock(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	env, err := newTestEnv(envOptions{logger: zap.New(core)})
	if err != nil {
		t.Fatalf("error building test env: %v", err)
	}
	createProduct(env.router, productRequest("Widget", 1.0, 12))

	placeOrder(env.router, orderRequest("Ana", item(1, 3)))

	entries := logs.FilterMessage("product below low stock threshold").All()
	if len(entries) != 1 {
		t.Fatalf("expected one low stock warning, got %d", len(entries))
	}
	if got := entries[0].ContextMap()["stock"]; got != int64(9) {
		t.Errorf("expected remaining stock 9, got %v", got)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	env := setup(t)
	createProduct(env.router, productRequest("Widget", 10.0, 5))
	placeOrder(env.router, orderRequest("Ana", item(1, 2)))
	placeOrder(env.router, orderRequest("Ana", item(1, 50)))

	w := doRequest(env.router, http.MethodGet, "/metrics", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}
	body := w.Body.String()
	for _, want := range []string{
		"inventory_orders_placed_total 1",
		`inventory_orders_rejected_total{reason="insufficient_stock"} 1`,
		"inventory_order_value_total 20",
		"inventory_products 1",
		"inventory_products_low_stock 1",
		`inventory_http_requests_total{method="POST",route="/pedidos",status="201"} 1`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("expected metrics to contain %q", want)
		}
	}
}

func TestSwaggerDoc(t *testing.T) {
	env := setup(t)

	w := doRequest(env.router, http.MethodGet, "/swagger/doc.json", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "/pedidos/{id}") {
		t.Error("expected swagger document to describe the order routes")
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	env, err := newTestEnv(envOptions{rateLimiter: rl.New(1, 2)})
	if err != nil {
		t.Fatalf("error building test env: %v", err)
	}

	codes := []int{}
	for i := 0; i < 3; i++ {
		codes = append(codes, doRequest(env.router, http.MethodGet, "/produtos", nil).Code)
	}
	if codes[0] != http.StatusOK || codes[1] != http.StatusOK {
		t.Errorf("expected the burst to be served, got %v", codes)
	}
	if codes[2] != http.StatusTooManyRequests {
		t.Errorf("expected 429 once the burst is spent, got %d", codes[2])
	}

	if w := doRequest(env.router, http.MethodGet, "/health", nil); w.Code != http.StatusOK {
		t.Errorf("expected /health to bypass the rate limiter, got %d", w.Code)
	}
}
