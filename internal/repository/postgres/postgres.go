package postgres

import (
	"database/sql"

	"rental-pricing-backend/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.OrderRepository
	repository.OrderLineRepository
	repository.ProductRepository
	repository.PricelistRepository
	repository.ActivityRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                  db,
		OrderRepository:     NewOrderRepository(db),
		OrderLineRepository: NewOrderLineRepository(db),
		ProductRepository:   NewProductRepository(db),
		PricelistRepository: NewPricelistRepository(db),
		ActivityRepository:  NewActivityRepository(db),
	}
}
