package handlers

import (
	"errors"
	"net/http"

	models "github.com/rogerio-castellano/inventory-orders/internal/models"
	repo "github.com/rogerio-castellano/inventory-orders/internal/repo"
	"go.uber.org/zap"
)

// HealthHandler godoc
// @Summary Liveness probe
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /health [get]
func (s *Server) HealthHandler(w http.ResponseWriter, r *http.Request) {
	_ = writeJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}

func productFromRequest(id int, req ProductRequest) models.Product {
	return models.Product{
		ID:            id,
		Name:          req.Name,
		Description:   req.Description,
		Price:         *req.Price,
		StockQuantity: *req.StockQuantity,
	}
}

// CreateProductHandler godoc
// @Summary Create a new product
// @Description Adds a product to the catalog. Names are unique regardless of case.
// @Tags produtos
// @Accept json
// @Produce json
// @Param product body ProductRequest true "Product to add"
// @Success 201 {object} ProductResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /produtos [post]
func (s *Server) CreateProductHandler(w http.ResponseWriter, r *http.Request) {
	var req ProductRequest
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid input")
		return
	}

	validationErrors := validateProduct(req)
	if len(validationErrors) > 0 {
		_ = writeJSON(w, http.StatusBadRequest, validationErrors)
		return
	}

	created, err := s.productRepo.Create(r.Context(), productFromRequest(0, req))
	if err != nil {
		if errors.Is(err, repo.ErrDuplicatedValueUnique) {
			writeError(w, http.StatusBadRequest, "product already exists")
			return
		}
		s.logger.Error("could not create product", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "could not create product")
		return
	}

	_ = writeJSON(w, http.StatusCreated, toProductResponse(created))
}

// GetProductsHandler godoc
// @Summary List products
// @Tags produtos
// @Produce json
// @Param estoque_baixo query bool false "Only products with stock below 10"
// @Success 200 {array} ProductResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /produtos [get]
func (s *Server) GetProductsHandler(w http.ResponseWriter, r *http.Request) {
	lowStock, err := parseBoolQuery(r.URL.Query().Get("estoque_baixo"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "estoque_baixo must be a boolean")
		return
	}

	products, err := s.productRepo.List(r.Context(), repo.ProductFilter{LowStockOnly: lowStock})
	if err != nil {
		s.logger.Error("could not fetch products", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "could not fetch products")
		return
	}
	response := make([]ProductResponse, len(products))
	for i, p := range products {
		response[i] = toProductResponse(p)
	}
	_ = writeJSON(w, http.StatusOK, response)
}

// GetProductByIDHandler godoc
// @Summary Get product by ID
// @Tags produtos
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} ProductResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /produtos/{id} [get]
func (s *Server) GetProductByIDHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid product ID")
		return
	}

	product, err := s.productRepo.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, repo.ErrProductNotFound) {
			writeError(w, http.StatusNotFound, "product not found")
			return
		}
		s.logger.Error("could not fetch product", zap.Int("id", id), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "could not fetch product")
		return
	}
	_ = writeJSON(w, http.StatusOK, toProductResponse(product))
}

// UpdateProductHandler godoc
// @Summary Update a product
// @Description Replaces every field of the product.
// @Tags produtos
// @Accept json
// @Produce json
// @Param id path int true "Product ID"
// @Param product body ProductRequest true "Updated product"
// @Success 200 {object} ProductResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /produtos/{id} [put]
func (s *Server) UpdateProductHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid product ID")
		return
	}

	var req ProductRequest
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid input")
		return
	}

	validationErrors := validateProduct(req)
	if len(validationErrors) > 0 {
		_ = writeJSON(w, http.StatusBadRequest, validationErrors)
		return
	}

	updated, err := s.productRepo.Update(r.Context(), productFromRequest(id, req))
	if err != nil {
		switch {
		case errors.Is(err, repo.ErrProductNotFound):
			writeError(w, http.StatusNotFound, "product not found")
		case errors.Is(err, repo.ErrDuplicatedValueUnique):
			writeError(w, http.StatusBadRequest, "product already exists")
		default:
			s.logger.Error("could not update product", zap.Int("id", id), zap.Error(err))
			writeError(w, http.StatusInternalServerError, "could not update product")
		}
		return
	}

	_ = writeJSON(w, http.StatusOK, toProductResponse(updated))
}

// DeleteProductHandler godoc
// @Summary Delete a product
// @Tags produtos
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /produtos/{id} [delete]
func (s *Server) DeleteProductHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid product ID")
		return
	}
	if err := s.productRepo.Delete(r.Context(), id); err != nil {
		if errors.Is(err, repo.ErrProductNotFound) {
			writeError(w, http.StatusNotFound, "product not found")
			return
		}
		s.logger.Error("could not delete product", zap.Int("id", id), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "could not delete product")
		return
	}
	_ = writeJSON(w, http.StatusOK, MessageResponse{Message: "product removed"})
}
