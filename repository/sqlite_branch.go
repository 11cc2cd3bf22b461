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

// sqliteBranchRepo, BranchRepository'nin SQLite implementasyonu.
type sqliteBranchRepo struct {
	db database.TxQuerier
}

// NewSQLiteBranchRepo, constructor.
func NewSQLiteBranchRepo(db database.TxQuerier) BranchRepository {
	return &sqliteBranchRepo{db: db}
}

func (r *sqliteBranchRepo) Create(ctx context.Context, branch *models.Branch) error {
	query := `
		INSERT INTO branches (id, name, address, phone)
		VALUES (lower(hex(randomblob(8))), ?, ?, ?)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		branch.Name, branch.Address, branch.Phone,
	).Scan(&branch.ID, &branch.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create branch: %w", err)
	}

	return nil
}

func (r *sqliteBranchRepo) GetByID(ctx context.Context, id string) (*models.Branch, error) {
	query := `
		SELECT id, name, address, phone, created_at
		FROM branches WHERE id = ?`

	branch := &models.Branch{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&branch.ID, &branch.Name, &branch.Address, &branch.Phone, &branch.CreatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, pkg.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get branch: %w", err)
	}

	return branch, nil
}

func (r *sqliteBranchRepo) GetAll(ctx context.Context) ([]models.Branch, error) {
	query := `
		SELECT id, name, address, phone, created_at
		FROM branches ORDER BY name`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list branches: %w", err)
	}
	defer rows.Close()

	var branches []models.Branch
	for rows.Next() {
		var b models.Branch
		if err := rows.Scan(
			&b.ID, &b.Name, &b.Address, &b.Phone, &b.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan branch row: %w", err)
		}
		branches = append(branches, b)
	}

	return branches, rows.Err()
}

func (r *sqliteBranchRepo) Update(ctx context.Context, branch *models.Branch) error {
	query := `
		UPDATE branches SET name = ?, address = ?, phone = ?
		WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query,
		branch.Name, branch.Address, branch.Phone, branch.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update branch: %w", err)
	}

	return requireAffected(result)
}

func (r *sqliteBranchRepo) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM branches WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete branch: %w", err)
	}

	return requireAffected(result)
}
