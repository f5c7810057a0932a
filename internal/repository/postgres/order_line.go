package postgres

import (
	"context"
	"database/sql"
	"encoding/json"

	"rental-pricing-backend/internal/domain"
	"rental-pricing-backend/internal/logger"
	"rental-pricing-backend/internal/repository"
)

const lineColumns = `id, order_id, product_id, name, price_unit, product_uom_qty, start_date, return_date,
	rental_price_per_day, rental_duration_in_days, rental_company_fees, analytic_distribution`

type scanner interface {
	Scan(dest ...any) error
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func scanLine(s scanner) (*domain.OrderLine, error) {
	l := &domain.OrderLine{}
	var distribution []byte
	err := s.Scan(&l.ID, &l.OrderID, &l.ProductID, &l.Name, &l.PriceUnit, &l.ProductUomQty, &l.StartDate, &l.ReturnDate,
		&l.RentalPricePerDay, &l.RentalDurationInDays, &l.RentalCompanyFees, &distribution)
	if err != nil {
		return nil, err
	}
	if len(distribution) > 0 {
		if err := json.Unmarshal(distribution, &l.AnalyticDistribution); err != nil {
			return nil, err
		}
	}
	return l, nil
}

// distributionValue encodes a line distribution for the JSONB column. A nil
// map is written as SQL NULL.
func distributionValue(d domain.AnalyticDistribution) (any, error) {
	if d == nil {
		return nil, nil
	}
	b, err := json.Marshal(d)
	if err != nil {
		return nil, err
	}
	return b, nil
}

func updateLine(ctx context.Context, db execer, l *domain.OrderLine) error {
	distribution, err := distributionValue(l.AnalyticDistribution)
	if err != nil {
		return err
	}

	query := `UPDATE sale_order_lines SET product_id=$1, name=$2, price_unit=$3, product_uom_qty=$4, start_date=$5, return_date=$6,
	          rental_price_per_day=$7, rental_duration_in_days=$8, rental_company_fees=$9, analytic_distribution=$10
	          WHERE id=$11`
	logger.DatabaseCall("UPDATE", "sale_order_lines", "lineID", l.ID)
	result, err := db.ExecContext(ctx, query, l.ProductID, l.Name, l.PriceUnit, l.ProductUomQty, l.StartDate, l.ReturnDate,
		l.RentalPricePerDay, l.RentalDurationInDays, l.RentalCompanyFees, distribution, l.ID)
	return checkAffected(result, err, "order line", l.ID)
}

// insertLine appends l after the last line of its order and sets its id.
func insertLine(ctx context.Context, tx *sql.Tx, l *domain.OrderLine) error {
	distribution, err := distributionValue(l.AnalyticDistribution)
	if err != nil {
		return err
	}

	query := `INSERT INTO sale_order_lines (order_id, sequence, product_id, name, price_unit, product_uom_qty, start_date, return_date,
	                 rental_price_per_day, rental_duration_in_days, rental_company_fees, analytic_distribution)
	          VALUES ($1, (SELECT COALESCE(MAX(sequence), 0) + 10 FROM sale_order_lines WHERE order_id = $1),
	                  $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	          RETURNING id`
	logger.DatabaseCall("INSERT", "sale_order_lines", "orderID", l.OrderID)
	return tx.QueryRowContext(ctx, query, l.OrderID, l.ProductID, l.Name, l.PriceUnit, l.ProductUomQty, l.StartDate, l.ReturnDate,
		l.RentalPricePerDay, l.RentalDurationInDays, l.RentalCompanyFees, distribution).Scan(&l.ID)
}

type orderLineRepository struct {
	db *sql.DB
}

func NewOrderLineRepository(db *sql.DB) repository.OrderLineRepository {
	return &orderLineRepository{db: db}
}

func (r *orderLineRepository) Update(ctx context.Context, line *domain.OrderLine) error {
	err := updateLine(ctx, r.db, line)
	logger.DatabaseResult("UPDATE", 1, err, "lineID", line.ID)
	return err
}
