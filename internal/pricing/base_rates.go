package pricing

import (
	"context"
	"fmt"

	"rental-pricing-backend/internal/domain"
)

// PricelistBaseRates resets line unit prices to the order pricelist's price
// for the line product and quantity.
type PricelistBaseRates struct {
	prices PriceSource
}

func NewPricelistBaseRates(prices PriceSource) *PricelistBaseRates {
	return &PricelistBaseRates{prices: prices}
}

func (b *PricelistBaseRates) RecomputeBaseRates(ctx context.Context, order *domain.Order) error {
	if order == nil {
		return ErrOrderRequired
	}
	if order.PricelistID == nil {
		return nil
	}

	// Resolve every price before touching the order so a failure leaves it intact.
	prices := make(map[int]float64, len(order.Lines))
	for i, line := range order.Lines {
		if line.ProductID == nil {
			continue
		}
		if *line.ProductID <= 0 {
			return fmt.Errorf("line %d: %w", line.ID, ErrInvalidProduct)
		}
		price, err := b.prices.BasePrice(ctx, *line.ProductID, line.ProductUomQty, *order.PricelistID)
		if err != nil {
			return fmt.Errorf("line %d: %w", line.ID, err)
		}
		prices[i] = price
	}
	for i, price := range prices {
		order.Lines[i].PriceUnit = price
	}
	return nil
}
