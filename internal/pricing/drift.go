package pricing

import (
	"math"

	"rental-pricing-backend/internal/domain"
)

// Drift describes a rental line whose unit price no longer matches its daily
// rate, duration and fees.
type Drift struct {
	OrderID   int32
	LineID    int32
	PriceUnit float64
	Expected  float64
}

func (d Drift) Delta() float64 {
	return d.PriceUnit - d.Expected
}

// CheckDrift compares a line's unit price with the price derived from its
// rental fields. Lines of non-rental orders and lines without a daily rate
// never drift.
func CheckDrift(order *domain.Order, line *domain.OrderLine, tolerance float64) (Drift, bool) {
	if !isRentalLine(order, line) || line.RentalPricePerDay <= 0 {
		return Drift{}, false
	}
	expected := PriceWithFees(line.RentalPricePerDay, line.RentalDurationInDays, line.RentalCompanyFees)
	d := Drift{OrderID: order.ID, LineID: line.ID, PriceUnit: line.PriceUnit, Expected: expected}
	return d, math.Abs(d.Delta()) > tolerance
}
