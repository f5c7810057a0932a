package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"rental-pricing-backend/internal/domain"
	"rental-pricing-backend/internal/logger"
	"rental-pricing-backend/internal/repository"
)

type orderRepository struct {
	db *sql.DB
}

func NewOrderRepository(db *sql.DB) repository.OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) GetByID(ctx context.Context, id int32) (*domain.Order, error) {
	logger.EnterMethod("orderRepository.GetByID", "orderID", id)

	query := `SELECT id, name, is_rental_order, duration_days, remaining_hours, analytic_account_id, pricelist_id,
	                 COALESCE(timezone, ''), COALESCE(language, ''), print_image, image_sizes,
	                 displayed_company_in_printed_document, created_on, updated_on
	          FROM sale_orders WHERE id = $1`
	logger.DatabaseCall("SELECT", "sale_orders", "orderID", id)

	o := &domain.Order{}
	var createdOn, updatedOn time.Time
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&o.ID, &o.Name, &o.IsRentalOrder, &o.DurationDays, &o.RemainingHours, &o.AnalyticAccountID, &o.PricelistID,
		&o.Timezone, &o.Language, &o.PrintImage, &o.ImageSizes,
		&o.DisplayedCompany, &createdOn, &updatedOn,
	)
	if errors.Is(err, sql.ErrNoRows) {
		logger.ExitMethodWithError("orderRepository.GetByID", err, "orderID", id)
		return nil, fmt.Errorf("order %d: %w", id, repository.ErrNotFound)
	}
	if err != nil {
		logger.ExitMethodWithError("orderRepository.GetByID", err, "orderID", id)
		return nil, err
	}
	o.CreatedOn = createdOn.Format(time.RFC3339)
	o.UpdatedOn = updatedOn.Format(time.RFC3339)

	lines, err := r.listLines(ctx, id)
	if err != nil {
		logger.ExitMethodWithError("orderRepository.GetByID", err, "orderID", id, "reason", "failed to load lines")
		return nil, err
	}
	o.Lines = lines

	logger.ExitMethod("orderRepository.GetByID", "orderID", id, "lines", len(lines))
	return o, nil
}

func (r *orderRepository) listLines(ctx context.Context, orderID int32) ([]domain.OrderLine, error) {
	query := `SELECT ` + lineColumns + ` FROM sale_order_lines WHERE order_id = $1 ORDER BY sequence, id`
	logger.DatabaseCall("SELECT", "sale_order_lines", "orderID", orderID)

	rows, err := r.db.QueryContext(ctx, query, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []domain.OrderLine
	for rows.Next() {
		line, err := scanLine(rows)
		if err != nil {
			return nil, err
		}
		lines = append(lines, *line)
	}
	return lines, rows.Err()
}

func (r *orderRepository) ListRentalOrderIDs(ctx context.Context) ([]int32, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id FROM sale_orders WHERE is_rental_order = TRUE ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int32
	for rows.Next() {
		var id int32
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *orderRepository) UpdatePrintOptions(ctx context.Context, id int32, opts domain.PrintOptions) error {
	query := `UPDATE sale_orders SET print_image=$1, image_sizes=$2, displayed_company_in_printed_document=$3, updated_on=$4 WHERE id=$5`
	logger.DatabaseCall("UPDATE", "sale_orders", "orderID", id)
	result, err := r.db.ExecContext(ctx, query, opts.PrintImage, opts.ImageSizes, opts.DisplayedCompany, time.Now(), id)
	return checkAffected(result, err, "order", id)
}

func (r *orderRepository) Save(ctx context.Context, order *domain.Order) error {
	logger.EnterMethod("orderRepository.Save", "orderID", order.ID, "lines", len(order.Lines))

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		logger.ExitMethodWithError("orderRepository.Save", err, "orderID", order.ID)
		return err
	}
	defer tx.Rollback()

	logger.DatabaseCall("UPDATE", "sale_orders", "orderID", order.ID)
	result, err := tx.ExecContext(ctx, `UPDATE sale_orders SET analytic_account_id=$1, updated_on=$2 WHERE id=$3`,
		order.AnalyticAccountID, time.Now(), order.ID)
	if err := checkAffected(result, err, "order", order.ID); err != nil {
		logger.ExitMethodWithError("orderRepository.Save", err, "orderID", order.ID)
		return err
	}

	for i := range order.Lines {
		line := &order.Lines[i]
		if line.ID == 0 {
			line.OrderID = order.ID
			if err := insertLine(ctx, tx, line); err != nil {
				logger.ExitMethodWithError("orderRepository.Save", err, "orderID", order.ID, "reason", "failed to insert line")
				return err
			}
			continue
		}
		if err := updateLine(ctx, tx, line); err != nil {
			logger.ExitMethodWithError("orderRepository.Save", err, "orderID", order.ID, "lineID", order.Lines[i].ID)
			return err
		}
	}

	err = tx.Commit()
	logger.DatabaseResult("COMMIT", int64(len(order.Lines)), err, "orderID", order.ID)
	if err != nil {
		logger.ExitMethodWithError("orderRepository.Save", err, "orderID", order.ID)
		return err
	}
	logger.ExitMethod("orderRepository.Save", "orderID", order.ID)
	return nil
}

func checkAffected(result sql.Result, err error, kind string, id int32) error {
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("%s %d: %w", kind, id, repository.ErrNotFound)
	}
	return nil
}
