package repo

import (
	"errors"
	"fmt"
)

var (
	// ErrProductNotFound is returned when a product is not found in the repository.
	ErrProductNotFound = errors.New("product not found")
	// ErrOrderNotFound is returned when an order is not found in the repository.
	ErrOrderNotFound = errors.New("order not found")
	// ErrDuplicatedValueUnique is returned when a product name is already taken.
	ErrDuplicatedValueUnique = errors.New("product already exists")
	// ErrInsufficientStock is returned when an order line asks for more than is in stock.
	ErrInsufficientStock = errors.New("insufficient stock")
)

// LineError ties a stock failure to the product of the offending order line.
type LineError struct {
	ProductID int
	Err       error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("product %d: %v", e.ProductID, e.Err)
}

func (e *LineError) Unwrap() error {
	return e.Err
}
