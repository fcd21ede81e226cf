package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/JeanneDioso/storefront/internal/auth"
	"github.com/JeanneDioso/storefront/internal/models"
	pkghttp "github.com/JeanneDioso/storefront/pkg/http"
)

// OrderServiceInterface defines the interface for order business logic
type OrderServiceInterface interface {
	PlaceOrder(ctx context.Context, productID, quantity int, userID string) (*models.OrderConfirmation, error)
}

// OrderHandler handles order-related HTTP requests
type OrderHandler struct {
	service OrderServiceInterface
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(service OrderServiceInterface) *OrderHandler {
	return &OrderHandler{service: service}
}

// OrderRequest represents the request body for placing an order
type OrderRequest struct {
	ProductID int `json:"product_id" validate:"required,gte=1,lte=9999"`
	Quantity  int `json:"quantity" validate:"required,gte=1,lte=9999"`
}

// OrderResponse represents a successfully placed order
type OrderResponse struct {
	Message        string `json:"message"`
	OrderID        string `json:"order_id"`
	ProductID      int    `json:"product_id"`
	Quantity       int    `json:"quantity"`
	RemainingStock int    `json:"remaining_stock"`
}

// Create handles order placement for the authenticated user
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims := auth.GetUserFromContext(r)
	if claims == nil {
		pkghttp.WriteUnauthorized(w, "unauthorized")
		return
	}

	var req OrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "Invalid request body")
		return
	}

	if err := ValidateRequest(req); err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}

	confirmation, err := h.service.PlaceOrder(r.Context(), req.ProductID, req.Quantity, claims.UserID)
	if err != nil {
		writeOrderError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(OrderResponse{
		Message:        "Order placed successfully",
		OrderID:        confirmation.Order.ID,
		ProductID:      confirmation.Order.ProductID,
		Quantity:       confirmation.Order.Quantity,
		RemainingStock: confirmation.RemainingStock,
	})
}

func writeOrderError(w http.ResponseWriter, err error) {
	var validationErr *models.ValidationError
	switch {
	case errors.As(err, &validationErr):
		pkghttp.WriteBadRequest(w, validationErr.Error())
	case errors.Is(err, models.ErrProductNotFound):
		pkghttp.WriteNotFound(w, "Product not found")
	case errors.Is(err, models.ErrInsufficientStock):
		pkghttp.WriteConflict(w, "Insufficient stock for the requested quantity")
	default:
		pkghttp.WriteInternalError(w, "Internal server error")
	}
}
