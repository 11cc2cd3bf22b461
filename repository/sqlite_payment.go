package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmarchuk/salonio/database"
	"github.com/dmarchuk/salonio/models"
	"github.com/dmarchuk/salonio/pkg"
)

// sqlitePaymentRepo, PaymentRepository'nin SQLite implementasyonu.
type sqlitePaymentRepo struct {
	db database.TxQuerier
}

// NewSQLitePaymentRepo, constructor.
func NewSQLitePaymentRepo(db database.TxQuerier) PaymentRepository {
	return &sqlitePaymentRepo{db: db}
}

func (r *sqlitePaymentRepo) Create(ctx context.Context, payment *models.Payment) error {
	query := `
		INSERT INTO payments (id, appointment_id, amount_cents, method)
		VALUES (lower(hex(randomblob(8))), ?, ?, ?)
		RETURNING id, paid_at, created_at`

	err := r.db.QueryRowContext(ctx, query,
		payment.AppointmentID, payment.AmountCents, payment.Method,
	).Scan(&payment.ID, &payment.PaidAt, &payment.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create payment: %w", err)
	}

	return nil
}

func (r *sqlitePaymentRepo) GetByID(ctx context.Context, id string) (*models.Payment, error) {
	query := `
		SELECT id, appointment_id, amount_cents, method, paid_at, created_at
		FROM payments WHERE id = ?`

	payment := &models.Payment{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&payment.ID, &payment.AppointmentID, &payment.AmountCents,
		&payment.Method, &payment.PaidAt, &payment.CreatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, pkg.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get payment: %w", err)
	}

	return payment, nil
}

func (r *sqlitePaymentRepo) GetByAppointment(ctx context.Context, appointmentID string) ([]models.Payment, error) {
	query := `
		SELECT id, appointment_id, amount_cents, method, paid_at, created_at
		FROM payments WHERE appointment_id = ? ORDER BY paid_at`

	rows, err := r.db.QueryContext(ctx, query, appointmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointment payments: %w", err)
	}
	defer rows.Close()

	return scanPayments(rows)
}

func (r *sqlitePaymentRepo) List(ctx context.Context, from, to time.Time) ([]models.Payment, error) {
	query := `
		SELECT id, appointment_id, amount_cents, method, paid_at, created_at
		FROM payments
		WHERE paid_at >= ? AND paid_at < ?
		ORDER BY paid_at DESC`

	rows, err := r.db.QueryContext(ctx, query, from.UTC(), to.UTC())
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	defer rows.Close()

	return scanPayments(rows)
}

func (r *sqlitePaymentRepo) RevenueByDay(ctx context.Context, from, to time.Time) ([]DailyRevenue, error) {
	query := `
		SELECT date(paid_at), SUM(amount_cents), COUNT(*)
		FROM payments
		WHERE paid_at >= ? AND paid_at < ?
		GROUP BY date(paid_at)
		ORDER BY date(paid_at)`

	rows, err := r.db.QueryContext(ctx, query, from.UTC(), to.UTC())
	if err != nil {
		return nil, fmt.Errorf("failed to query revenue: %w", err)
	}
	defer rows.Close()

	var days []DailyRevenue
	for rows.Next() {
		var d DailyRevenue
		if err := rows.Scan(&d.Day, &d.TotalCents, &d.Count); err != nil {
			return nil, fmt.Errorf("failed to scan revenue row: %w", err)
		}
		days = append(days, d)
	}

	return days, rows.Err()
}

func scanPayments(rows *sql.Rows) ([]models.Payment, error) {
	var payments []models.Payment
	for rows.Next() {
		var p models.Payment
		if err := rows.Scan(
			&p.ID, &p.AppointmentID, &p.AmountCents,
			&p.Method, &p.PaidAt, &p.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan payment row: %w", err)
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}
