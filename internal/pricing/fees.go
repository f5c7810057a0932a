package pricing

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

const secondsPerDay = 86400

var hundred = decimal.NewFromInt(100)

// PriceWithFees returns the unit price of a rental line: the daily rate over the
// duration plus the company fee percentage of that amount.
func PriceWithFees(pricePerDay, durationDays, feesPercent float64) float64 {
	rate := decimal.NewFromFloat(pricePerDay)
	days := decimal.NewFromFloat(durationDays)
	base := rate.Mul(days)
	fees := decimal.NewFromFloat(feesPercent).Div(hundred).Mul(rate).Mul(days)
	return base.Add(fees).InexactFloat64()
}

// DurationInDays returns the fractional number of days between start and end.
// The result is negative when end is before start.
func DurationInDays(start, end time.Time) float64 {
	return end.Sub(start).Seconds() / secondsPerDay
}

// AddDays shifts t by a fractional number of days, rounded to the microsecond.
func AddDays(t time.Time, days float64) time.Time {
	micros := math.Round(days * secondsPerDay * 1e6)
	return t.Add(time.Duration(micros) * time.Microsecond)
}
