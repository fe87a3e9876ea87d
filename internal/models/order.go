package models

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

// Orders are created in progress and never transition.
const OrderStatusInProgress OrderStatus = "in_progress"

// OrderLineRequest is one product and quantity requested by a customer.
type OrderLineRequest struct {
	ProductID int `json:"produtoId"`
	Quantity  int `json:"quantidade"`
}

// OrderLineItem is the priced snapshot of a line at order time.
type OrderLineItem struct {
	ProductID   int     `json:"produtoId"`
	ProductName string  `json:"nomeProduto"`
	Quantity    int     `json:"quantidade"`
	UnitPrice   float64 `json:"precoUnitario"`
	LineTotal   float64 `json:"valorTotalItem"`
}

type Order struct {
	ID           int             `json:"id"`
	CustomerName string          `json:"cliente"`
	Lines        []OrderLineItem `json:"itens"`
	TotalAmount  float64         `json:"valorTotalPedido"`
	CreatedAt    Timestamp       `json:"dataPedido"`
	Status       OrderStatus     `json:"status"`
}
