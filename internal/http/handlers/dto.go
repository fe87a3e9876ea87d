package handlers

import (
	"time"

	"github.com/rogerio-castellano/inventory-orders/internal/models"
)

// ProductRequest is the body of product create and update. Price and stock
// are pointers so a missing field can be told apart from zero.
type ProductRequest struct {
	Name          string   `json:"nome"`
	Description   *string  `json:"descricao"`
	Price         *float64 `json:"preco"`
	StockQuantity *int     `json:"quantidadeEstoque"`
}

type ProductResponse struct {
	Id            int     `json:"id"`
	Name          string  `json:"nome"`
	Description   *string `json:"descricao"`
	Price         float64 `json:"preco"`
	StockQuantity int     `json:"quantidadeEstoque"`
	LowStock      bool    `json:"estoqueBaixo,omitempty"`
}

func toProductResponse(p models.Product) ProductResponse {
	return ProductResponse{
		Id:            p.ID,
		Name:          p.Name,
		Description:   p.Description,
		Price:         p.Price,
		StockQuantity: p.StockQuantity,
		LowStock:      p.LowStock(),
	}
}

type OrderRequest struct {
	Customer string                    `json:"cliente"`
	Items    []models.OrderLineRequest `json:"itens"`
}

type OrderLineResponse struct {
	ProductID   int     `json:"produtoId"`
	ProductName string  `json:"nomeProduto"`
	Quantity    int     `json:"quantidade"`
	UnitPrice   float64 `json:"precoUnitario"`
	LineTotal   float64 `json:"valorTotalItem"`
}

type OrderResponse struct {
	ID          int                 `json:"id"`
	Customer    string              `json:"cliente"`
	Items       []OrderLineResponse `json:"itens"`
	TotalAmount float64             `json:"valorTotalPedido"`
	CreatedAt   string              `json:"dataPedido"`
	Status      string              `json:"status"`
}

func toOrderResponse(o models.Order) OrderResponse {
	items := make([]OrderLineResponse, len(o.Lines))
	for i, l := range o.Lines {
		items[i] = OrderLineResponse(l)
	}
	return OrderResponse{
		ID:          o.ID,
		Customer:    o.CustomerName,
		Items:       items,
		TotalAmount: o.TotalAmount,
		CreatedAt:   o.CreatedAt.UTC().Format(time.RFC3339Nano),
		Status:      string(o.Status),
	}
}

type HealthResponse struct {
	Status string `json:"status"`
}

type MessageResponse struct {
	Message string `json:"mensagem"`
}

type ErrorResponse struct {
	Detail string `json:"detail"`
}
