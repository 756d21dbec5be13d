package transport

import (
	"errors"
	"net/http"

	"github.com/nuttaponsrpn/Kiki-POS/internal/domain"
	"github.com/nuttaponsrpn/Kiki-POS/internal/middleware"
	"github.com/nuttaponsrpn/Kiki-POS/internal/repository"
	"github.com/nuttaponsrpn/Kiki-POS/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PlaceOrderRequest represents the checkout payload
type PlaceOrderRequest struct {
	PaymentMethod string `json:"payment_method" validate:"required"`
}

// OrderListResponse is the order history plus the last fetch error, if any
type OrderListResponse struct {
	Orders []domain.Order `json:"orders"`
	Error  string         `json:"error,omitempty"`
}

// OrderHandler handles HTTP requests for order history and checkout
type OrderHandler struct {
	orders service.OrderService
	logger *zap.Logger
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orders service.OrderService, logger *zap.Logger) *OrderHandler {
	return &OrderHandler{
		orders: orders,
		logger: logger,
	}
}

// RegisterRoutes registers the order routes
func (h *OrderHandler) RegisterRoutes(r chi.Router, sessionMiddleware func(http.Handler) http.Handler) {
	r.Route("/api/orders", func(r chi.Router) {
		r.Use(sessionMiddleware)
		r.Get("/", h.List)
		r.Post("/", h.Place)
		r.Delete("/{id}", h.Delete)
	})
}

// List fetches order history, newest first
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	h.orders.FetchOrders(r.Context())

	middleware.RespondWithJSON(w, http.StatusOK, OrderListResponse{
		Orders: h.orders.Orders(),
		Error:  h.orders.Error(),
	})
}

// Place turns the current cart into an order
func (h *OrderHandler) Place(w http.ResponseWriter, r *http.Request) {
	var req PlaceOrderRequest

	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}

		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	order, err := h.orders.PlaceOrder(r.Context(), req.PaymentMethod)
	if err != nil {
		if errors.Is(err, service.ErrEmptyCart) {
			middleware.RespondWithError(w, http.StatusBadRequest, "cart is empty")
			return
		}
		h.logger.Error("Failed to place order", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to place order")
		return
	}
	if order == nil {
		// store disabled, nothing persisted
		middleware.RespondWithJSON(w, http.StatusOK, nil)
		return
	}

	h.logger.Info("Order placed",
		zap.String("order_id", order.ID.String()),
		zap.Float64("total", order.TotalAmount),
	)
	middleware.RespondWithJSON(w, http.StatusCreated, order)
}

// Delete restores stock for the order's items and removes the order
func (h *OrderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid order ID")
		return
	}

	if err := h.orders.DeleteOrder(r.Context(), id); err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "order not found")
			return
		}
		h.logger.Error("Failed to delete order", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to delete order")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "order deleted"})
}
