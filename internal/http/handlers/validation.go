package handlers

import (
	"strings"
)

type ProductValidationError struct {
	Field       string `json:"field"`
	Description string `json:"description"`
}

func validateProduct(p ProductRequest) []ProductValidationError {
	errs := []ProductValidationError{}
	if strings.TrimSpace(p.Name) == "" {
		errs = append(errs, ProductValidationError{Field: "nome", Description: "Name is required"})
	}
	if p.Price == nil {
		errs = append(errs, ProductValidationError{Field: "preco", Description: "Price is required"})
	} else if *p.Price < 0 {
		errs = append(errs, ProductValidationError{Field: "preco", Description: "Price cannot be negative"})
	}
	if p.StockQuantity == nil {
		errs = append(errs, ProductValidationError{Field: "quantidadeEstoque", Description: "Stock quantity is required"})
	} else if *p.StockQuantity < 0 {
		errs = append(errs, ProductValidationError{Field: "quantidadeEstoque", Description: "Stock quantity cannot be negative"})
	}
	return errs
}
