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

// sqliteClientRepo, ClientRepository'nin SQLite implementasyonu.
type sqliteClientRepo struct {
	db database.TxQuerier
}

// NewSQLiteClientRepo, constructor.
func NewSQLiteClientRepo(db database.TxQuerier) ClientRepository {
	return &sqliteClientRepo{db: db}
}

func (r *sqliteClientRepo) Create(ctx context.Context, client *models.Client) error {
	query := `
		INSERT INTO clients (id, name, phone, email, notes)
		VALUES (lower(hex(randomblob(8))), ?, ?, ?, ?)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		client.Name, client.Phone, client.Email, client.Notes,
	).Scan(&client.ID, &client.CreatedAt)

	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: phone already registered", pkg.ErrAlreadyExists)
		}
		return fmt.Errorf("failed to create client: %w", err)
	}

	return nil
}

func (r *sqliteClientRepo) GetByID(ctx context.Context, id string) (*models.Client, error) {
	query := `
		SELECT id, name, phone, email, notes, created_at
		FROM clients WHERE id = ?`

	client := &models.Client{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&client.ID, &client.Name, &client.Phone,
		&client.Email, &client.Notes, &client.CreatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, pkg.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get client: %w", err)
	}

	return client, nil
}

func (r *sqliteClientRepo) GetAll(ctx context.Context) ([]models.Client, error) {
	query := `
		SELECT id, name, phone, email, notes, created_at
		FROM clients ORDER BY name`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}
	defer rows.Close()

	return scanClients(rows)
}

// Search, isim veya telefon üzerinden LIKE araması yapar.
// Resepsiyonun telefonla arayan müşteriyi bulması için.
func (r *sqliteClientRepo) Search(ctx context.Context, query string) ([]models.Client, error) {
	sqlQuery := `
		SELECT id, name, phone, email, notes, created_at
		FROM clients
		WHERE name LIKE ? OR phone LIKE ?
		ORDER BY name LIMIT 50`

	pattern := "%" + query + "%"
	rows, err := r.db.QueryContext(ctx, sqlQuery, pattern, pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to search clients: %w", err)
	}
	defer rows.Close()

	return scanClients(rows)
}

func (r *sqliteClientRepo) Update(ctx context.Context, client *models.Client) error {
	query := `
		UPDATE clients SET name = ?, phone = ?, email = ?, notes = ?
		WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query,
		client.Name, client.Phone, client.Email, client.Notes, client.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: phone already registered", pkg.ErrAlreadyExists)
		}
		return fmt.Errorf("failed to update client: %w", err)
	}

	return requireAffected(result)
}

func (r *sqliteClientRepo) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM clients WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete client: %w", err)
	}

	return requireAffected(result)
}

func scanClients(rows *sql.Rows) ([]models.Client, error) {
	var clients []models.Client
	for rows.Next() {
		var c models.Client
		if err := rows.Scan(
			&c.ID, &c.Name, &c.Phone, &c.Email, &c.Notes, &c.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan client row: %w", err)
		}
		clients = append(clients, c)
	}
	return clients, rows.Err()
}
