package repository

import (
	"context"
	"errors"

	"rental-pricing-backend/internal/domain"
)

var ErrNotFound = errors.New("record not found")

type OrderRepository interface {
	// GetByID returns the order with its lines in display order.
	GetByID(ctx context.Context, id int32) (*domain.Order, error)
	ListRentalOrderIDs(ctx context.Context) ([]int32, error)
	UpdatePrintOptions(ctx context.Context, id int32, opts domain.PrintOptions) error
	// Save writes the order's analytic account and every line in one
	// transaction. Lines without an id are inserted and receive one.
	Save(ctx context.Context, order *domain.Order) error
}

type OrderLineRepository interface {
	Update(ctx context.Context, line *domain.OrderLine) error
}

type ProductRepository interface {
	GetByID(ctx context.Context, id int32) (*domain.Product, error)
	SetImageKey(ctx context.Context, id int32, key string) error
}

type PricelistRepository interface {
	// BasePrice returns the fixed price of the pricelist item with the
	// highest minimum quantity not above quantity.
	BasePrice(ctx context.Context, productID int32, quantity float64, pricelistID int32) (float64, error)
}

type ActivityRepository interface {
	PostNote(ctx context.Context, orderID int32, body string) error
	ListByOrder(ctx context.Context, orderID int32) ([]domain.OrderMessage, error)
}
