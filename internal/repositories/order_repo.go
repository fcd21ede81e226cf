package repositories

import (
	"context"
	"errors"

	"github.com/JeanneDioso/storefront/internal/database"
	"github.com/JeanneDioso/storefront/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type OrderRepository struct {
	db *database.DB
}

func NewOrderRepository(db *database.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// CreateWithStockDecrement inserts the order and decrements the product's
// stock as one transaction. The decrement is conditional on the current
// stock covering the quantity, so two racing orders for the last units can
// never drive stock below zero: the losing transaction affects no rows and
// rolls back with ErrInsufficientStock.
func (r *OrderRepository) CreateWithStockDecrement(ctx context.Context, order *models.Order) (int, error) {
	order.ID = uuid.New().String()

	var remaining int
	err := r.db.WithTransaction(ctx, func(tx pgx.Tx) error {
		decrement := `
			UPDATE products
			SET stock = stock - $1, updated_at = NOW()
			WHERE id = $2 AND stock >= $1
			RETURNING stock
		`

		err := tx.QueryRow(ctx, decrement, order.Quantity, order.ProductID).Scan(&remaining)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				// Product existence was checked before the transaction, so an
				// unaffected row means the stock no longer covers the quantity.
				return models.ErrInsufficientStock
			}
			return database.MapPostgresError(err)
		}

		insert := `
			INSERT INTO orders (id, product_id, quantity, user_id)
			VALUES ($1, $2, $3, $4)
		`

		if _, err := tx.Exec(ctx, insert, order.ID, order.ProductID, order.Quantity, order.UserID); err != nil {
			return database.MapPostgresError(err)
		}

		return nil
	})
	if err != nil {
		return 0, err
	}

	return remaining, nil
}

// GetByID returns a single order. Orders are immutable once created.
func (r *OrderRepository) GetByID(ctx context.Context, id string) (*models.Order, error) {
	query := `
		SELECT id, product_id, quantity, user_id
		FROM orders WHERE id = $1
	`

	var order models.Order
	err := r.db.Pool.QueryRow(ctx, query, id).Scan(
		&order.ID, &order.ProductID, &order.Quantity, &order.UserID,
	)
	if err != nil {
		return nil, database.MapPostgresError(err)
	}

	return &order, nil
}
