package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"rental-pricing-backend/internal/logger"
	"rental-pricing-backend/internal/repository"
)

type pricelistRepository struct {
	db *sql.DB
}

func NewPricelistRepository(db *sql.DB) repository.PricelistRepository {
	return &pricelistRepository{db: db}
}

func (r *pricelistRepository) BasePrice(ctx context.Context, productID int32, quantity float64, pricelistID int32) (float64, error) {
	query := `SELECT fixed_price FROM pricelist_items
	          WHERE pricelist_id = $1 AND product_id = $2 AND min_quantity <= $3
	          ORDER BY min_quantity DESC LIMIT 1`
	logger.DatabaseCall("SELECT", "pricelist_items", "pricelistID", pricelistID, "productID", productID, "quantity", quantity)

	var price float64
	err := r.db.QueryRowContext(ctx, query, pricelistID, productID, quantity).Scan(&price)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("no price for product %d in pricelist %d: %w", productID, pricelistID, repository.ErrNotFound)
	}
	if err != nil {
		return 0, err
	}
	return price, nil
}
