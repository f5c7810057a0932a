package postgres

import (
	"context"
	"database/sql"
	"time"

	"rental-pricing-backend/internal/domain"
	"rental-pricing-backend/internal/logger"
	"rental-pricing-backend/internal/repository"
)

type activityRepository struct {
	db *sql.DB
}

func NewActivityRepository(db *sql.DB) repository.ActivityRepository {
	return &activityRepository{db: db}
}

func (r *activityRepository) PostNote(ctx context.Context, orderID int32, body string) error {
	logger.EnterMethod("activityRepository.PostNote", "orderID", orderID)

	query := `INSERT INTO order_messages (order_id, body, created_on) VALUES ($1, $2, $3)`
	logger.DatabaseCall("INSERT", "order_messages", "orderID", orderID)
	_, err := r.db.ExecContext(ctx, query, orderID, body, time.Now())
	logger.DatabaseResult("INSERT", 1, err, "orderID", orderID)

	if err != nil {
		logger.ExitMethodWithError("activityRepository.PostNote", err, "orderID", orderID)
		return err
	}
	logger.ExitMethod("activityRepository.PostNote", "orderID", orderID)
	return nil
}

func (r *activityRepository) ListByOrder(ctx context.Context, orderID int32) ([]domain.OrderMessage, error) {
	query := `SELECT id, order_id, body, created_on FROM order_messages WHERE order_id = $1 ORDER BY created_on DESC, id DESC`
	rows, err := r.db.QueryContext(ctx, query, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []domain.OrderMessage
	for rows.Next() {
		var m domain.OrderMessage
		var createdOn time.Time
		if err := rows.Scan(&m.ID, &m.OrderID, &m.Body, &createdOn); err != nil {
			return nil, err
		}
		m.CreatedOn = createdOn.Format(time.RFC3339)
		messages = append(messages, m)
	}
	return messages, rows.Err()
}
