package storage_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/rogerio-castellano/inventory-orders/internal/models"
	"github.com/rogerio-castellano/inventory-orders/internal/storage"
)

func sampleProducts() []models.Product {
	desc := "blue"
	return []models.Product{
		{ID: 1, Name: "Widget", Description: &desc, Price: 10.0, StockQuantity: 5},
		{ID: 2, Name: "Gadget", Price: 2.5, StockQuantity: 40},
	}
}

func TestCollection_RoundTrip(t *testing.T) {
	backends := map[string]storage.Backend{
		"memory": storage.NewMemoryBackend(),
		"file":   storage.NewFileBackend(t.TempDir()),
	}

	for name, backend := range backends {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			coll := storage.NewCollection[models.Product](backend, "produtos")

			want := sampleProducts()
			if err := coll.Save(ctx, want); err != nil {
				t.Fatalf("save failed: %v", err)
			}

			got, err := coll.Load(ctx)
			if err != nil {
				t.Fatalf("load failed: %v", err)
			}
			if !reflect.DeepEqual(got, want) {
				t.Errorf("expected %+v, got %+v", want, got)
			}
		})
	}
}

func TestCollection_LoadMissingIsEmpty(t *testing.T) {
	coll := storage.NewCollection[models.Product](storage.NewFileBackend(t.TempDir()), "produtos")

	got, err := coll.Load(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Errorf("expected empty slice, got %v", got)
	}
}

func TestCollection_LoadEmptyFileIsEmpty(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "pedidos.json"), []byte("  \n"), 0o644); err != nil {
		t.Fatal(err)
	}
	coll := storage.NewCollection[models.Order](storage.NewFileBackend(dir), "pedidos")

	got, err := coll.Load(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected no orders, got %d", len(got))
	}
}

func TestCollection_LoadCorruptFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "produtos.json"), []byte(`[{"id": 1,`), 0o644); err != nil {
		t.Fatal(err)
	}
	coll := storage.NewCollection[models.Product](storage.NewFileBackend(dir), "produtos")

	if _, err := coll.Load(context.Background()); err == nil {
		t.Fatal("expected decode error for truncated file")
	}
}

func TestCollection_LegacyOrderFile(t *testing.T) {
	dir := t.TempDir()
	legacy := `[
  {
    "id": 7,
    "cliente": "Ana",
    "itens": [
      {"produtoId": 1, "nomeProduto": "Widget", "quantidade": 3, "precoUnitario": 10.0, "valorTotalItem": 30.0}
    ],
    "valorTotalPedido": 30.0,
    "dataPedido": "2025-03-01 14:05:09.123456",
    "status": "in_progress"
  }
]`
	if err := os.WriteFile(filepath.Join(dir, "pedidos.json"), []byte(legacy), 0o644); err != nil {
		t.Fatal(err)
	}
	coll := storage.NewCollection[models.Order](storage.NewFileBackend(dir), "pedidos")

	orders, err := coll.Load(context.Background())
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(orders) != 1 {
		t.Fatalf("expected 1 order, got %d", len(orders))
	}
	o := orders[0]
	if o.CreatedAt.Year() != 2025 || o.CreatedAt.Nanosecond() != 123456000 {
		t.Errorf("unexpected timestamp %v", o.CreatedAt)
	}
	if o.Lines[0].LineTotal != 30.0 {
		t.Errorf("expected line total 30, got %v", o.Lines[0].LineTotal)
	}
}

func TestFileBackend_WritesJSONFile(t *testing.T) {
	dir := t.TempDir()
	coll := storage.NewCollection[models.Product](storage.NewFileBackend(dir), "produtos")
	if err := coll.Save(context.Background(), nil); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "produtos.json"))
	if err != nil {
		t.Fatalf("expected produtos.json to exist: %v", err)
	}
	if string(data) != "[]" {
		t.Errorf("expected empty array, got %q", data)
	}
}

func TestCollection_WriteFailure(t *testing.T) {
	backend := storage.NewMemoryBackend()
	boom := errors.New("disk full")
	backend.FailWrites = boom
	coll := storage.NewCollection[models.Product](backend, "produtos")

	err := coll.Save(context.Background(), sampleProducts())
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped write error, got %v", err)
	}
}
