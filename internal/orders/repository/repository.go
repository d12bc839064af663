package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"apteka_notify_backend/platform/apperr"
)

// Order represents the order database model
type Order struct {
	ID            uuid.UUID  `db:"id"`
	OrderNumber   string     `db:"order_number"`
	Phone         string     `db:"phone"`
	Products      string     `db:"products"`
	TotalClient   float64    `db:"total_client"`
	TotalPharmacy float64    `db:"total_pharmacy"`
	Source        string     `db:"source"`
	WaStatus      string     `db:"wa_status"`
	SmsStatus     string     `db:"sms_status"`
	ContactStatus string     `db:"contact_status"`
	Note          string     `db:"note"`
	SentAt        *time.Time `db:"sent_at"`
	CreatedAt     time.Time  `db:"created_at"`
	UpdatedAt     time.Time  `db:"updated_at"`
}

const orderNotFoundMsg = "order not found"

const orderColumns = `id, order_number, phone, products, total_client, total_pharmacy,
	source, wa_status, sms_status, contact_status, note, sent_at, created_at, updated_at`

// Repository provides database operations for orders
type Repository struct {
	pool *pgxpool.Pool
}

// New creates a new orders repository
func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Create inserts a new order
func (r *Repository) Create(ctx context.Context, order *Order) error {
	query := `
		INSERT INTO orders (
			id, order_number, phone, products, total_client, total_pharmacy,
			source, wa_status, sms_status, contact_status, note, sent_at, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14
		)`

	_, err := r.pool.Exec(ctx, query,
		order.ID, order.OrderNumber, order.Phone, order.Products, order.TotalClient,
		order.TotalPharmacy, order.Source, order.WaStatus, order.SmsStatus,
		order.ContactStatus, order.Note, order.SentAt, order.CreatedAt, order.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}

	return nil
}

// GetByID retrieves an order by its ID
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`

	row := r.pool.QueryRow(ctx, query, id)
	order, err := scanOrder(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound(orderNotFoundMsg)
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	return order, nil
}

// FindByNumber retrieves the most recent order with the given order number.
// A missing order is reported as (nil, nil): callers use this for duplicate
// checks where absence is the normal case.
func (r *Repository) FindByNumber(ctx context.Context, orderNumber string) (*Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders
		WHERE order_number = $1 ORDER BY created_at DESC LIMIT 1`

	row := r.pool.QueryRow(ctx, query, orderNumber)
	order, err := scanOrder(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find order by number: %w", err)
	}

	return order, nil
}

// ListByDate retrieves orders created on the given calendar day, newest first
func (r *Repository) ListByDate(ctx context.Context, day time.Time) ([]Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders
		WHERE created_at >= $1 AND created_at < $2 ORDER BY created_at DESC`

	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())

	rows, err := r.pool.Query(ctx, query, dayStart, dayStart.AddDate(0, 0, 1))
	if err != nil {
		return nil, fmt.Errorf("failed to list orders by date: %w", err)
	}
	defer rows.Close()

	return collectOrders(rows)
}

// ListPending retrieves orders that have not been notified yet, oldest first
func (r *Repository) ListPending(ctx context.Context, limit int) ([]Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders
		WHERE sent_at IS NULL ORDER BY created_at ASC LIMIT $1`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending orders: %w", err)
	}
	defer rows.Close()

	return collectOrders(rows)
}

// UpdateSendStatus records the per-channel delivery outcome and stamps
// sent_at when at least one channel succeeded
func (r *Repository) UpdateSendStatus(ctx context.Context, id uuid.UUID, waStatus, smsStatus string, sent bool) error {
	query := `
		UPDATE orders SET
			wa_status = $2,
			sms_status = $3,
			sent_at = CASE WHEN $4 THEN now() ELSE sent_at END,
			updated_at = now()
		WHERE id = $1`

	result, err := r.pool.Exec(ctx, query, id, waStatus, smsStatus, sent)
	if err != nil {
		return fmt.Errorf("failed to update send status: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound(orderNotFoundMsg)
	}

	return nil
}

// UpdateContactStatus records the manual follow-up status set by staff
func (r *Repository) UpdateContactStatus(ctx context.Context, id uuid.UUID, contactStatus, note string) error {
	query := `
		UPDATE orders SET
			contact_status = $2,
			note = $3,
			updated_at = now()
		WHERE id = $1`

	result, err := r.pool.Exec(ctx, query, id, contactStatus, note)
	if err != nil {
		return fmt.Errorf("failed to update contact status: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound(orderNotFoundMsg)
	}

	return nil
}

// Delete removes an order
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete order: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound(orderNotFoundMsg)
	}

	return nil
}

func scanOrder(row pgx.Row) (*Order, error) {
	var order Order
	err := row.Scan(
		&order.ID, &order.OrderNumber, &order.Phone, &order.Products, &order.TotalClient,
		&order.TotalPharmacy, &order.Source, &order.WaStatus, &order.SmsStatus,
		&order.ContactStatus, &order.Note, &order.SentAt, &order.CreatedAt, &order.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func collectOrders(rows pgx.Rows) ([]Order, error) {
	var orders []Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, *order)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read orders: %w", err)
	}

	return orders, nil
}
