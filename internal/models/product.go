package models

// Product represents a product entity in the catalog.
type Product struct {
	ID            int     `json:"id"`
	Name          string  `json:"nome"`
	Description   *string `json:"descricao"`
	Price         float64 `json:"preco"`
	StockQuantity int     `json:"quantidadeEstoque"`
}

// LowStockThreshold is the stock level below which a product counts as low stock.
const LowStockThreshold = 10

func (p Product) LowStock() bool {
	return p.StockQuantity < LowStockThreshold
}
