package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmarchuk/salonio/database"
	"github.com/dmarchuk/salonio/models"
	"github.com/dmarchuk/salonio/pkg"
)

// sqliteServiceRepo, ServiceRepository'nin SQLite implementasyonu.
type sqliteServiceRepo struct {
	db database.TxQuerier
}

// NewSQLiteServiceRepo, constructor.
func NewSQLiteServiceRepo(db database.TxQuerier) ServiceRepository {
	return &sqliteServiceRepo{db: db}
}

func (r *sqliteServiceRepo) Create(ctx context.Context, service *models.Service) error {
	query := `
		INSERT INTO services (id, name, category, price_cents, duration_min, active)
		VALUES (lower(hex(randomblob(8))), ?, ?, ?, ?, ?)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		service.Name, service.Category, service.PriceCents,
		service.DurationMin, service.Active,
	).Scan(&service.ID, &service.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create service: %w", err)
	}

	return nil
}

func (r *sqliteServiceRepo) GetByID(ctx context.Context, id string) (*models.Service, error) {
	query := `
		SELECT id, name, category, price_cents, duration_min, active, created_at
		FROM services WHERE id = ?`

	service := &models.Service{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&service.ID, &service.Name, &service.Category, &service.PriceCents,
		&service.DurationMin, &service.Active, &service.CreatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, pkg.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get service: %w", err)
	}

	return service, nil
}

func (r *sqliteServiceRepo) GetAll(ctx context.Context, activeOnly bool) ([]models.Service, error) {
	query := `
		SELECT id, name, category, price_cents, duration_min, active, created_at
		FROM services`
	if activeOnly {
		query += ` WHERE active = 1`
	}
	query += ` ORDER BY category, name`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}
	defer rows.Close()

	var services []models.Service
	for rows.Next() {
		var s models.Service
		if err := rows.Scan(
			&s.ID, &s.Name, &s.Category, &s.PriceCents,
			&s.DurationMin, &s.Active, &s.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan service row: %w", err)
		}
		services = append(services, s)
	}

	return services, rows.Err()
}

func (r *sqliteServiceRepo) Update(ctx context.Context, service *models.Service) error {
	query := `
		UPDATE services
		SET name = ?, category = ?, price_cents = ?, duration_min = ?, active = ?
		WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query,
		service.Name, service.Category, service.PriceCents,
		service.DurationMin, service.Active, service.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update service: %w", err)
	}

	return requireAffected(result)
}

func (r *sqliteServiceRepo) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM services WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete service: %w", err)
	}

	return requireAffected(result)
}
