package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// LogEntry is one recorded delivery attempt.
type LogEntry struct {
	ID           int64
	OrderID      *uuid.UUID
	OrderNumber  string
	Phone        string
	Channel      string
	Success      bool
	MessageID    string
	ErrorMessage string
	CreatedAt    time.Time
}

// LogRepository persists delivery attempts to the notification_log table.
type LogRepository struct {
	pool *pgxpool.Pool
}

func NewLogRepository(pool *pgxpool.Pool) *LogRepository {
	return &LogRepository{pool: pool}
}

// Record inserts one attempt row.
func (r *LogRepository) Record(ctx context.Context, entry *LogEntry) error {
	query := `
		INSERT INTO notification_log (
			order_id, order_number, phone, channel, success, message_id, error_message
		) VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.pool.Exec(ctx, query,
		entry.OrderID, entry.OrderNumber, entry.Phone, entry.Channel,
		entry.Success, entry.MessageID, entry.ErrorMessage,
	)
	if err != nil {
		return fmt.Errorf("failed to record notification attempt: %w", err)
	}

	return nil
}

// ListByOrderNumber returns the attempt history for one order, newest first.
func (r *LogRepository) ListByOrderNumber(ctx context.Context, orderNumber string) ([]LogEntry, error) {
	query := `
		SELECT id, order_id, order_number, phone, channel, success, message_id, error_message, created_at
		FROM notification_log WHERE order_number = $1 ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, orderNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to list notification attempts: %w", err)
	}
	defer rows.Close()

	var entries []LogEntry
	for rows.Next() {
		var e LogEntry
		err := rows.Scan(&e.ID, &e.OrderID, &e.OrderNumber, &e.Phone, &e.Channel,
			&e.Success, &e.MessageID, &e.ErrorMessage, &e.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan notification attempt: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read notification attempts: %w", err)
	}

	return entries, nil
}
