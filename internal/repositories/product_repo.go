package repositories

import (
	"context"
	"errors"

	"github.com/JeanneDioso/storefront/internal/database"
	"github.com/JeanneDioso/storefront/internal/models"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ProductRepository struct {
	pool *pgxpool.Pool
}

func NewProductRepository(db *database.DB) *ProductRepository {
	return &ProductRepository{pool: db.Pool}
}

func (r *ProductRepository) GetByID(ctx context.Context, id int) (*models.Product, error) {
	query := `
		SELECT id, name, stock, created_at, updated_at
		FROM products WHERE id = $1
	`

	var product models.Product
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&product.ID, &product.Name, &product.Stock,
		&product.CreatedAt, &product.UpdatedAt,
	)
	if err != nil {
		mapped := database.MapPostgresError(err)
		if errors.Is(mapped, models.ErrNotFound) {
			return nil, models.ErrProductNotFound
		}
		return nil, mapped
	}

	return &product, nil
}
