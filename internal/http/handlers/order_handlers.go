package handlers

import (
	"errors"
	"fmt"
	"net/http"

	repo "github.com/rogerio-castellano/inventory-orders/internal/repo"
	"github.com/rogerio-castellano/inventory-orders/internal/service"
	"go.uber.org/zap"
)

// CreateOrderHandler godoc
// @Summary Place an order
// @Description Takes every item out of stock and stores the priced order.
// @Tags pedidos
// @Accept json
// @Produce json
// @Param order body OrderRequest true "Customer and items"
// @Success 201 {object} OrderResponse
// @Failure 400 {object} ErrorResponse "Invalid input or insufficient stock"
// @Failure 404 {object} ErrorResponse "Product not found"
// @Failure 500 {object} ErrorResponse
// @Router /pedidos [post]
func (s *Server) CreateOrderHandler(w http.ResponseWriter, r *http.Request) {
	var req OrderRequest
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid input")
		return
	}

	order, err := s.orders.PlaceOrder(r.Context(), req.Customer, req.Items)
	if err != nil {
		s.writeOrderError(w, err)
		return
	}

	_ = writeJSON(w, http.StatusCreated, toOrderResponse(order))
}

func (s *Server) writeOrderError(w http.ResponseWriter, err error) {
	var validationErr *service.ValidationError
	if errors.As(err, &validationErr) {
		_ = writeJSON(w, http.StatusBadRequest, validationErr.Fields)
		return
	}

	var lineErr *repo.LineError
	if errors.As(err, &lineErr) {
		switch {
		case errors.Is(err, repo.ErrProductNotFound):
			writeError(w, http.StatusNotFound, fmt.Sprintf("product ID %d not found", lineErr.ProductID))
			return
		case errors.Is(err, repo.ErrInsufficientStock):
			writeError(w, http.StatusBadRequest, fmt.Sprintf("insufficient stock for product ID %d", lineErr.ProductID))
			return
		}
	}

	s.logger.Error("could not place order", zap.Error(err))
	writeError(w, http.StatusInternalServerError, "could not place order")
}

// GetOrdersHandler godoc
// @Summary List orders
// @Tags pedidos
// @Produce json
// @Success 200 {array} OrderResponse
// @Failure 500 {object} ErrorResponse
// @Router /pedidos [get]
func (s *Server) GetOrdersHandler(w http.ResponseWriter, r *http.Request) {
	orders, err := s.orders.ListOrders(r.Context())
	if err != nil {
		s.logger.Error("could not fetch orders", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "could not fetch orders")
		return
	}
	response := make([]OrderResponse, len(orders))
	for i, o := range orders {
		response[i] = toOrderResponse(o)
	}
	_ = writeJSON(w, http.StatusOK, response)
}

// GetOrderByIDHandler godoc
// @Summary Get order by ID
// @Tags pedidos
// @Produce json
// @Param id path int true "Order ID"
// @Success 200 {object} OrderResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /pedidos/{id} [get]
func (s *Server) GetOrderByIDHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid order ID")
		return
	}

	order, err := s.orders.GetOrder(r.Context(), id)
	if err != nil {
		if errors.Is(err, repo.ErrOrderNotFound) {
			writeError(w, http.StatusNotFound, "order not found")
			return
		}
		s.logger.Error("could not fetch order", zap.Int("id", id), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "could not fetch order")
		return
	}
	_ = writeJSON(w, http.StatusOK, toOrderResponse(order))
}

// DeleteOrderHandler godoc
// @Summary Delete an order
// @Description Removes the order. Stock taken by the order is not returned.
// @Tags pedidos
// @Produce json
// @Param id path int true "Order ID"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /pedidos/{id} [delete]
func (s *Server) DeleteOrderHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid order ID")
		return
	}
	if err := s.orders.DeleteOrder(r.Context(), id); err != nil {
		if errors.Is(err, repo.ErrOrderNotFound) {
			writeError(w, http.StatusNotFound, "order not found")
			return
		}
		s.logger.Error("could not delete order", zap.Int("id", id), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "could not delete order")
		return
	}
	_ = writeJSON(w, http.StatusOK, MessageResponse{Message: "order removed"})
}
