package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"rental-pricing-backend/internal/domain"
	"rental-pricing-backend/internal/repository"
)

type productRepository struct {
	db *sql.DB
}

func NewProductRepository(db *sql.DB) repository.ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) GetByID(ctx context.Context, id int32) (*domain.Product, error) {
	p := &domain.Product{}
	query := `SELECT id, name, COALESCE(image_key, '') FROM products WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&p.ID, &p.Name, &p.ImageKey)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("product %d: %w", id, repository.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *productRepository) SetImageKey(ctx context.Context, id int32, key string) error {
	result, err := r.db.ExecContext(ctx, `UPDATE products SET image_key=$1 WHERE id=$2`, key, id)
	return checkAffected(result, err, "product", id)
}
