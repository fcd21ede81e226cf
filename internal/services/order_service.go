package services

import (
	"context"
	"log/slog"

	"github.com/JeanneDioso/storefront/internal/models"
)

// Order identifiers and quantities must fit in four decimal digits.
const (
	minOrderValue = 1
	maxOrderValue = 9999
)

// ProductGetter defines the read side of product persistence
type ProductGetter interface {
	GetByID(ctx context.Context, id int) (*models.Product, error)
}

// OrderStore defines the write side of order persistence. Implementations
// must perform the stock check and decrement as one atomic operation per
// product and report ErrInsufficientStock when the quantity is not covered.
type OrderStore interface {
	CreateWithStockDecrement(ctx context.Context, order *models.Order) (int, error)
}

// OrderService processes product orders without overselling stock
type OrderService struct {
	products ProductGetter
	orders   OrderStore
	logger   *slog.Logger
}

// NewOrderService creates a new OrderService
func NewOrderService(products ProductGetter, orders OrderStore, logger *slog.Logger) *OrderService {
	return &OrderService{
		products: products,
		orders:   orders,
		logger:   logger,
	}
}

// PlaceOrder creates an order for an authenticated user and decrements the
// product's stock, or fails with a distinct reason. The stock check and
// decrement behave as one atomic step: racing orders for the same product
// cannot drive stock below zero. No failure branch is retried.
func (s *OrderService) PlaceOrder(ctx context.Context, productID, quantity int, userID string) (*models.OrderConfirmation, error) {
	// Bounds are checked before any lookup is performed.
	if productID < minOrderValue || productID > maxOrderValue {
		return nil, &models.ValidationError{Field: "product_id", Message: "must be between 1 and 9999"}
	}
	if quantity < minOrderValue || quantity > maxOrderValue {
		return nil, &models.ValidationError{Field: "quantity", Message: "must be between 1 and 9999"}
	}

	product, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	// Early rejection; the decrement below re-checks atomically.
	if quantity > product.Stock {
		s.logger.Info("order rejected: insufficient stock",
			slog.Int("product_id", productID),
			slog.Int("quantity", quantity),
			slog.Int("stock", product.Stock))
		return nil, models.ErrInsufficientStock
	}

	order := &models.Order{
		ProductID: productID,
		Quantity:  quantity,
		UserID:    userID,
	}

	remaining, err := s.orders.CreateWithStockDecrement(ctx, order)
	if err != nil {
		return nil, err
	}

	s.logger.Info("order placed",
		slog.String("order_id", order.ID),
		slog.Int("product_id", productID),
		slog.Int("quantity", quantity),
		slog.Int("remaining_stock", remaining))

	return &models.OrderConfirmation{
		Order:          order,
		RemainingStock: remaining,
	}, nil
}
