package pricing

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"rental-pricing-backend/internal/domain"
)

// PriceSource resolves the base pricelist price of a product for a quantity.
type PriceSource interface {
	BasePrice(ctx context.Context, productID int32, quantity float64, pricelistID int32) (float64, error)
}

// BaseRateRecomputer resets the base unit price of every line of an order
// before the rental rates are derived from it.
type BaseRateRecomputer interface {
	RecomputeBaseRates(ctx context.Context, order *domain.Order) error
}

// Recalculator keeps the rental fields of order lines consistent.
type Recalculator struct {
	prices    PriceSource
	baseRates BaseRateRecomputer
	formatter Formatter
	rules     []Rule
}

func NewRecalculator(prices PriceSource, baseRates BaseRateRecomputer, formatter Formatter) *Recalculator {
	if formatter == nil {
		formatter = NewFormatter()
	}
	return &Recalculator{
		prices:    prices,
		baseRates: baseRates,
		formatter: formatter,
		rules:     DefaultRules(),
	}
}

// UpdateRentalPrices recomputes base rates, then derives each line's daily
// rate from the order's total rental duration and adds company fees to the
// unit price. It reports whether the per-line step ran; it is skipped when the
// order has no duration.
func (r *Recalculator) UpdateRentalPrices(ctx context.Context, order *domain.Order) (bool, error) {
	if order == nil {
		return false, ErrOrderRequired
	}
	if r.baseRates != nil {
		if err := r.baseRates.RecomputeBaseRates(ctx, order); err != nil {
			return false, fmt.Errorf("failed to recompute base rates: %w", err)
		}
	}

	total := order.TotalRentalDurationInDays()
	if total == 0 {
		return false, nil
	}

	days := decimal.NewFromFloat(total)
	for i := range order.Lines {
		line := &order.Lines[i]
		rate := decimal.NewFromFloat(line.PriceUnit).Div(days)
		fees := decimal.NewFromFloat(line.RentalCompanyFees).Div(hundred).Mul(rate).Mul(days)
		line.RentalPricePerDay = rate.InexactFloat64()
		line.PriceUnit = decimal.NewFromFloat(line.PriceUnit).Add(fees).InexactFloat64()
	}
	return true, nil
}

// ApplyAnalyticDistribution allocates every line fully to the order's
// analytic account. It reports whether any line was changed.
func ApplyAnalyticDistribution(order *domain.Order) bool {
	if order == nil || order.AnalyticAccountID == nil || len(order.Lines) == 0 {
		return false
	}
	key := fmt.Sprintf("%d", *order.AnalyticAccountID)
	for i := range order.Lines {
		order.Lines[i].AnalyticDistribution = domain.AnalyticDistribution{key: 100.0}
	}
	return true
}

func isRentalLine(order *domain.Order, line *domain.OrderLine) bool {
	return order != nil && line != nil && order.IsRentalOrder
}

// ComputeRentalPricePerDay divides the product's pricelist price by the line's
// rental duration.
func (r *Recalculator) ComputeRentalPricePerDay(ctx context.Context, order *domain.Order, line *domain.OrderLine) ([]domain.Field, error) {
	if !isRentalLine(order, line) || line.RentalDurationInDays <= 0 {
		return nil, nil
	}
	if line.ProductID == nil || order.PricelistID == nil || r.prices == nil {
		return nil, nil
	}
	if *line.ProductID <= 0 {
		return nil, &RuleError{Rule: RuleRentalPricePerDay, LineID: line.ID, Err: ErrInvalidProduct}
	}

	price, err := r.prices.BasePrice(ctx, *line.ProductID, line.ProductUomQty, *order.PricelistID)
	if err != nil {
		return nil, &RuleError{Rule: RuleRentalPricePerDay, LineID: line.ID, Err: err}
	}
	line.RentalPricePerDay = decimal.NewFromFloat(price).Div(decimal.NewFromFloat(line.RentalDurationInDays)).InexactFloat64()
	return []domain.Field{domain.FieldRentalPricePerDay}, nil
}

// SetPriceUnitWithCompanyFees derives the unit price from the daily rate once
// a rate is known. A zero rate is the initial state and leaves the line alone.
func (r *Recalculator) SetPriceUnitWithCompanyFees(_ context.Context, order *domain.Order, line *domain.OrderLine) ([]domain.Field, error) {
	if !isRentalLine(order, line) || line.RentalPricePerDay <= 0 {
		return nil, nil
	}
	line.PriceUnit = PriceWithFees(line.RentalPricePerDay, line.RentalDurationInDays, line.RentalCompanyFees)
	return []domain.Field{domain.FieldPriceUnit}, nil
}

// ComputeRentalDuration derives the duration from the line's dates, then the
// unit price from the daily rate.
func (r *Recalculator) ComputeRentalDuration(_ context.Context, order *domain.Order, line *domain.OrderLine) ([]domain.Field, error) {
	if !isRentalLine(order, line) || line.StartDate == nil || line.ReturnDate == nil {
		return nil, nil
	}
	line.RentalDurationInDays = DurationInDays(*line.StartDate, *line.ReturnDate)
	changed := []domain.Field{domain.FieldRentalDurationInDays}
	if line.RentalPricePerDay > 0 {
		line.PriceUnit = PriceWithFees(line.RentalPricePerDay, line.RentalDurationInDays, line.RentalCompanyFees)
		changed = append(changed, domain.FieldPriceUnit)
	}
	return changed, nil
}

// SetRentalDuration moves the return date to match the duration and rewrites
// the period label on the last line of the description.
func (r *Recalculator) SetRentalDuration(_ context.Context, order *domain.Order, line *domain.OrderLine, opts LabelOptions) ([]domain.Field, error) {
	if !isRentalLine(order, line) || line.StartDate == nil {
		return nil, nil
	}
	returnDate := AddDays(*line.StartDate, line.RentalDurationInDays)
	line.ReturnDate = &returnDate

	label := FormatRangeLabel(r.formatter, *line.StartDate, returnDate, opts)
	line.Name = ReplaceLastLine(line.Name, label)
	return []domain.Field{domain.FieldReturnDate, domain.FieldName}, nil
}
