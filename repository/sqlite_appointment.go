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

// sqliteAppointmentRepo, AppointmentRepository'nin SQLite implementasyonu.
// Liste sorguları client/user/service tablolarıyla JOIN yapıp
// denormalize isim alanlarını doldurur.
type sqliteAppointmentRepo struct {
	db database.TxQuerier
}

// NewSQLiteAppointmentRepo, constructor.
func NewSQLiteAppointmentRepo(db database.TxQuerier) AppointmentRepository {
	return &sqliteAppointmentRepo{db: db}
}

const appointmentSelect = `
	SELECT a.id, a.client_id, a.master_id, a.service_id, a.branch_id,
	       a.starts_at, a.status, a.notes, a.created_at,
	       c.name, u.name, s.name, s.duration_min
	FROM appointments a
	JOIN clients  c ON c.id = a.client_id
	JOIN users    u ON u.id = a.master_id
	JOIN services s ON s.id = a.service_id`

func (r *sqliteAppointmentRepo) Create(ctx context.Context, appt *models.Appointment) error {
	query := `
		INSERT INTO appointments (id, client_id, master_id, service_id, branch_id, starts_at, status, notes)
		VALUES (lower(hex(randomblob(8))), ?, ?, ?, ?, ?, ?, ?)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		appt.ClientID, appt.MasterID, appt.ServiceID, appt.BranchID,
		appt.StartsAt.UTC(), appt.Status, appt.Notes,
	).Scan(&appt.ID, &appt.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create appointment: %w", err)
	}

	return nil
}

func (r *sqliteAppointmentRepo) GetByID(ctx context.Context, id string) (*models.Appointment, error) {
	query := appointmentSelect + ` WHERE a.id = ?`

	appt := &models.Appointment{}
	err := scanAppointment(r.db.QueryRowContext(ctx, query, id), appt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, pkg.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get appointment: %w", err)
	}

	return appt, nil
}

func (r *sqliteAppointmentRepo) List(ctx context.Context, filter models.AppointmentFilter) ([]models.Appointment, error) {
	query := appointmentSelect + ` WHERE 1=1`
	var args []any

	if filter.Date != nil {
		// Günün [00:00, 24:00) aralığı — index'in kullanılabilmesi
		// için date() fonksiyonu yerine aralık karşılaştırması.
		dayStart := time.Date(filter.Date.Year(), filter.Date.Month(), filter.Date.Day(), 0, 0, 0, 0, time.UTC)
		query += ` AND a.starts_at >= ? AND a.starts_at < ?`
		args = append(args, dayStart, dayStart.Add(24*time.Hour))
	}
	if filter.MasterID != "" {
		query += ` AND a.master_id = ?`
		args = append(args, filter.MasterID)
	}
	if filter.ClientID != "" {
		query += ` AND a.client_id = ?`
		args = append(args, filter.ClientID)
	}
	if filter.BranchID != "" {
		query += ` AND a.branch_id = ?`
		args = append(args, filter.BranchID)
	}

	query += ` ORDER BY a.starts_at`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	defer rows.Close()

	var appts []models.Appointment
	for rows.Next() {
		var a models.Appointment
		if err := scanAppointment(rows, &a); err != nil {
			return nil, fmt.Errorf("failed to scan appointment row: %w", err)
		}
		appts = append(appts, a)
	}

	return appts, rows.Err()
}

func (r *sqliteAppointmentRepo) CountOverlapping(ctx context.Context, masterID string, startsAt, endsAt time.Time, excludeID string) (int, error) {
	// Bitiş zamanı DB'de saklanmadığından hizmet süresinden türetilir.
	// Yarım açık aralık: [starts, ends) — sırt sırta randevular çakışma sayılmaz.
	query := `
		SELECT COUNT(*)
		FROM appointments a
		JOIN services s ON s.id = a.service_id
		WHERE a.master_id = ?
		  AND a.status = 'scheduled'
		  AND a.id != ?
		  AND a.starts_at < ?
		  AND datetime(a.starts_at, '+' || s.duration_min || ' minutes') > ?`

	var count int
	err := r.db.QueryRowContext(ctx, query,
		masterID, excludeID, endsAt.UTC(), startsAt.UTC(),
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count overlapping appointments: %w", err)
	}

	return count, nil
}

func (r *sqliteAppointmentRepo) Update(ctx context.Context, appt *models.Appointment) error {
	query := `
		UPDATE appointments
		SET master_id = ?, service_id = ?, starts_at = ?, status = ?, notes = ?
		WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query,
		appt.MasterID, appt.ServiceID, appt.StartsAt.UTC(),
		appt.Status, appt.Notes, appt.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update appointment: %w", err)
	}

	return requireAffected(result)
}

func (r *sqliteAppointmentRepo) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM appointments WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete appointment: %w", err)
	}

	return requireAffected(result)
}

// rowScanner, *sql.Row ve *sql.Rows'un ortak Scan imzası.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanAppointment(row rowScanner, a *models.Appointment) error {
	return row.Scan(
		&a.ID, &a.ClientID, &a.MasterID, &a.ServiceID, &a.BranchID,
		&a.StartsAt, &a.Status, &a.Notes, &a.CreatedAt,
		&a.ClientName, &a.MasterName, &a.ServiceName, &a.DurationMin,
	)
}
