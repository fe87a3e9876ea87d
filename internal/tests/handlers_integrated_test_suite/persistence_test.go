package handlers_integrated_test_suite

import (
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	handler "github.com/rogerio-castellano/inventory-orders/internal/http/handlers"
	"github.com/rogerio-castellano/inventory-orders/internal/models"
	"github.com/rogerio-castellano/inventory-orders/internal/storage"
)

func TestOrderWorkflow_SurvivesRestart(t *testing.T) {
	dir := t.TempDir()

	r, err := startServer(storage.NewFileBackend(dir))
	if err != nil {
		t.Fatalf("error starting server: %v", err)
	}

	if w := doRequest(r, http.MethodPost, "/produtos", productRequest("Widget", 10.0, 5)); w.Code != http.StatusCreated {
		t.Fatalf("expected 201 Created, got %d", w.Code)
	}
	order := handler.OrderRequest{Customer: "Ana", Items: []models.OrderLineRequest{{ProductID: 1, Quantity: 2}}}
	if w := doRequest(r, http.MethodPost, "/pedidos", order); w.Code != http.StatusCreated {
		t.Fatalf("expected 201 Created, got %d", w.Code)
	}

	for _, name := range []string{"produtos.json", "pedidos.json"} {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			t.Fatalf("expected %s to be written: %v", name, err)
		}
		if !strings.HasPrefix(string(data), "[\n  {") {
			t.Errorf("expected %s to hold an indented JSON array, got %s", name, data)
		}
	}

	r, err = startServer(storage.NewFileBackend(dir))
	if err != nil {
		t.Fatalf("error restarting server: %v", err)
	}

	w := doRequest(r, http.MethodGet, "/produtos/1", nil)
	var product handler.ProductResponse
	if err := json.NewDecoder(w.Body).Decode(&product); err != nil {
		t.Fatalf("error decoding product: %v", err)
	}
	if product.StockQuantity != 3 {
		t.Errorf("expected stock 3 after restart, got %d", product.StockQuantity)
	}

	w = doRequest(r, http.MethodGet, "/pedidos/1", nil)
	var stored handler.OrderResponse
	if err := json.NewDecoder(w.Body).Decode(&stored); err != nil {
		t.Fatalf("error decoding order: %v", err)
	}
	if stored.Customer != "Ana" || stored.TotalAmount != 20.0 || stored.Status != "in_progress" {
		t.Errorf("unexpected order after restart %+v", stored)
	}

	w = doRequest(r, http.MethodPost, "/produtos", productRequest("Gadget", 1.0, 1))
	var next handler.ProductResponse
	if err := json.NewDecoder(w.Body).Decode(&next); err != nil {
		t.Fatalf("error decoding product: %v", err)
	}
	if next.Id != 2 {
		t.Errorf("expected ids to continue after restart, got %d", next.Id)
	}
}

func TestStartServer_ReadsExistingFiles(t *testing.T) {
	dir := t.TempDir()
	products := `[{"id": 4, "nome": "Widget", "descricao": null, "preco": 2.5, "quantidadeEstoque": 8}]`
	orders := `[{"id": 9, "cliente": "Ana", "itens": [], "valorTotalPedido": 0, "dataPedido": "2024-05-01 12:30:00.123456", "status": "in_progress"}]`
	if err := os.WriteFile(filepath.Join(dir, "produtos.json"), []byte(products), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "pedidos.json"), []byte(orders), 0o644); err != nil {
		t.Fatal(err)
	}

	r, err := startServer(storage.NewFileBackend(dir))
	if err != nil {
		t.Fatalf("error starting server: %v", err)
	}

	w := doRequest(r, http.MethodGet, "/produtos?estoque_baixo=true", nil)
	var low []handler.ProductResponse
	if err := json.NewDecoder(w.Body).Decode(&low); err != nil {
		t.Fatalf("error decoding products: %v", err)
	}
	if len(low) != 1 || low[0].Id != 4 {
		t.Errorf("expected product 4 to be listed as low stock, got %+v", low)
	}

	w = doRequest(r, http.MethodGet, "/pedidos/9", nil)
	var order handler.OrderResponse
	if err := json.NewDecoder(w.Body).Decode(&order); err != nil {
		t.Fatalf("error decoding order: %v", err)
	}
	if order.CreatedAt != "2024-05-01T12:30:00.123456Z" {
		t.Errorf("expected legacy timestamp to be read, got %q", order.CreatedAt)
	}
}

func TestStartServer_CorruptFileFails(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "produtos.json"), []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := startServer(storage.NewFileBackend(dir)); err == nil {
		t.Error("expected a corrupt products file to stop startup")
	}
}
