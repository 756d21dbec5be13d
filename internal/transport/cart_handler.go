package transport

import (
	"errors"
	"net/http"

	"github.com/nuttaponsrpn/Kiki-POS/internal/alert"
	"github.com/nuttaponsrpn/Kiki-POS/internal/domain"
	"github.com/nuttaponsrpn/Kiki-POS/internal/middleware"
	"github.com/nuttaponsrpn/Kiki-POS/internal/repository"
	"github.com/nuttaponsrpn/Kiki-POS/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AddCartItemRequest identifies the product to add one unit of
type AddCartItemRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
}

// UpdateCartItemRequest adjusts an entry's quantity by a signed delta.
// No required tag: zero is a legal delta and the validator would reject it
// as a missing field.
type UpdateCartItemRequest struct {
	Delta int `json:"delta"`
}

// CartResponse is the cart contents, the derived total, and the alert slot
type CartResponse struct {
	Items []domain.CartItem `json:"items"`
	Total float64           `json:"total"`
	Alert alert.Alert       `json:"alert"`
}

// CartHandler handles HTTP requests for the shared cart
type CartHandler struct {
	cart     service.CartService
	catalog  service.CatalogService
	notifier *alert.Notifier
	logger   *zap.Logger
}

// NewCartHandler creates a new CartHandler
func NewCartHandler(cart service.CartService, catalog service.CatalogService, notifier *alert.Notifier, logger *zap.Logger) *CartHandler {
	return &CartHandler{
		cart:     cart,
		catalog:  catalog,
		notifier: notifier,
		logger:   logger,
	}
}

// RegisterRoutes registers the cart and alert routes
func (h *CartHandler) RegisterRoutes(r chi.Router, sessionMiddleware func(http.Handler) http.Handler) {
	r.Route("/api/cart", func(r chi.Router) {
		r.Use(sessionMiddleware)
		r.Get("/", h.Get)
		r.Delete("/", h.Clear)
		r.Post("/items", h.AddItem)
		r.Patch("/items/{id}", h.UpdateItem)
		r.Delete("/items/{id}", h.RemoveItem)
	})

	r.Route("/api/alert", func(r chi.Router) {
		r.Use(sessionMiddleware)
		r.Get("/", h.Alert)
		r.Post("/close", h.CloseAlert)
	})
}

func (h *CartHandler) respondCart(w http.ResponseWriter) {
	middleware.RespondWithJSON(w, http.StatusOK, CartResponse{
		Items: h.cart.Items(),
		Total: h.cart.Total(),
		Alert: h.notifier.Current(),
	})
}

// Get returns the cart with its derived total
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	h.respondCart(w)
}

// AddItem adds one unit of a catalog product to the cart. A stock ceiling
// hit is not an error: the response carries the alert instead.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req AddCartItemRequest

	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}

		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid product ID")
		return
	}

	product, err := h.catalog.Find(r.Context(), productID)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "product not found")
			return
		}

		h.logger.Error("Failed to resolve product", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to resolve product")
		return
	}
	if product == nil {
		// store disabled and not in the local list
		middleware.RespondWithError(w, http.StatusNotFound, "product not found")
		return
	}

	h.cart.AddToCart(*product)
	h.respondCart(w)
}

// UpdateItem adjusts an entry's quantity by delta
func (h *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	productID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid product ID")
		return
	}

	var req UpdateCartItemRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}

		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	h.cart.UpdateQuantity(productID, req.Delta)
	h.respondCart(w)
}

// RemoveItem removes an entry unconditionally
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	productID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid product ID")
		return
	}

	h.cart.RemoveFromCart(productID)
	h.respondCart(w)
}

// Clear empties the cart
func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	h.cart.ClearCart()
	h.respondCart(w)
}

// Alert returns the current alert slot
func (h *CartHandler) Alert(w http.ResponseWriter, r *http.Request) {
	middleware.RespondWithJSON(w, http.StatusOK, h.notifier.Current())
}

// CloseAlert clears the open flag, leaving the content stale
func (h *CartHandler) CloseAlert(w http.ResponseWriter, r *http.Request) {
	h.notifier.Close()
	middleware.RespondWithJSON(w, http.StatusOK, h.notifier.Current())
}
