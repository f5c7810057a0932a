package jobs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gocarina/gocsv"

	"rental-pricing-backend/internal/logger"
	"rental-pricing-backend/internal/pricing"
)

type driftRow struct {
	OrderID   int32   `csv:"order_id"`
	LineID    int32   `csv:"line_id"`
	PriceUnit float64 `csv:"price_unit"`
	Expected  float64 `csv:"expected_price_unit"`
	Delta     float64 `csv:"delta"`
}

// ReportPriceDrift logs rental lines whose unit price no longer matches their
// daily rate, duration and company fees. It never changes prices; those are
// recomputed only when a user asks for it.
func (jr *JobRunner) ReportPriceDrift() {
	jr.runWithRecovery("ReportPriceDrift", func() {
		if _, err := jr.reportPriceDrift(context.Background()); err != nil {
			logger.Error("Failed to audit rental prices", "error", err)
		}
	})
}

func (jr *JobRunner) reportPriceDrift(ctx context.Context) (int, error) {
	drifts, err := jr.services.RentalOrders.FindPriceDrift(ctx, jr.config.Pricing.DriftTolerance)
	for _, d := range drifts {
		logger.Warn("Rental line price drift",
			"orderID", d.OrderID,
			"lineID", d.LineID,
			"priceUnit", d.PriceUnit,
			"expected", d.Expected,
			"delta", d.Delta(),
		)
	}

	if dir := jr.config.Scheduler.ReportDir; dir != "" && len(drifts) > 0 {
		path, werr := writeDriftReport(dir, drifts, time.Now().UTC())
		if werr != nil {
			logger.Error("Failed to write price drift report", "dir", dir, "error", werr)
		} else {
			logger.Info("Price drift report written", "path", path)
		}
	}

	logger.Info("Rental price audit finished", "drifting_lines", len(drifts))
	return len(drifts), err
}

func writeDriftReport(dir string, drifts []pricing.Drift, now time.Time) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	path := filepath.Join(dir, fmt.Sprintf("price-drift-%s.csv", now.Format("20060102-150405")))
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	rows := make([]*driftRow, 0, len(drifts))
	for _, d := range drifts {
		rows = append(rows, &driftRow{
			OrderID:   d.OrderID,
			LineID:    d.LineID,
			PriceUnit: d.PriceUnit,
			Expected:  d.Expected,
			Delta:     d.Delta(),
		})
	}
	if err := gocsv.MarshalFile(&rows, f); err != nil {
		return "", err
	}
	return path, nil
}
