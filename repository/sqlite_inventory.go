package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dmarchuk/salonio/database"
	"github.com/dmarchuk/salonio/models"
	"github.com/dmarchuk/salonio/pkg"
)

// sqliteInventoryRepo, InventoryRepository'nin SQLite implementasyonu.
type sqliteInventoryRepo struct {
	db database.TxQuerier
}

// NewSQLiteInventoryRepo, constructor.
func NewSQLiteInventoryRepo(db database.TxQuerier) InventoryRepository {
	return &sqliteInventoryRepo{db: db}
}

func (r *sqliteInventoryRepo) Create(ctx context.Context, item *models.InventoryItem) error {
	query := `
		INSERT INTO inventory (id, branch_id, name, unit, quantity, low_stock_threshold)
		VALUES (lower(hex(randomblob(8))), ?, ?, ?, ?, ?)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		item.BranchID, item.Name, item.Unit, item.Quantity, item.LowStockThreshold,
	).Scan(&item.ID, &item.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create inventory item: %w", err)
	}

	return nil
}

func (r *sqliteInventoryRepo) GetByID(ctx context.Context, id string) (*models.InventoryItem, error) {
	query := `
		SELECT id, branch_id, name, unit, quantity, low_stock_threshold, created_at
		FROM inventory WHERE id = ?`

	item := &models.InventoryItem{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&item.ID, &item.BranchID, &item.Name, &item.Unit,
		&item.Quantity, &item.LowStockThreshold, &item.CreatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, pkg.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get inventory item: %w", err)
	}

	return item, nil
}

func (r *sqliteInventoryRepo) GetAll(ctx context.Context, branchID string) ([]models.InventoryItem, error) {
	query := `
		SELECT id, branch_id, name, unit, quantity, low_stock_threshold, created_at
		FROM inventory`
	var args []any

	if branchID != "" {
		query += ` WHERE branch_id = ?`
		args = append(args, branchID)
	}
	query += ` ORDER BY name`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list inventory: %w", err)
	}
	defer rows.Close()

	var items []models.InventoryItem
	for rows.Next() {
		var i models.InventoryItem
		if err := rows.Scan(
			&i.ID, &i.BranchID, &i.Name, &i.Unit,
			&i.Quantity, &i.LowStockThreshold, &i.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan inventory row: %w", err)
		}
		items = append(items, i)
	}

	return items, rows.Err()
}

func (r *sqliteInventoryRepo) Adjust(ctx context.Context, id string, delta int) (*models.InventoryItem, error) {
	// Tek UPDATE ile atomik: okuma-değiştirme-yazma yarışı olmaz.
	// CHECK (quantity >= 0) negatif sonucu engeller.
	query := `
		UPDATE inventory SET quantity = quantity + ?
		WHERE id = ?
		RETURNING id, branch_id, name, unit, quantity, low_stock_threshold, created_at`

	item := &models.InventoryItem{}
	err := r.db.QueryRowContext(ctx, query, delta, id).Scan(
		&item.ID, &item.BranchID, &item.Name, &item.Unit,
		&item.Quantity, &item.LowStockThreshold, &item.CreatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, pkg.ErrNotFound
	}
	if err != nil {
		if strings.Contains(err.Error(), "CHECK constraint failed") {
			return nil, fmt.Errorf("%w: insufficient stock", pkg.ErrBadRequest)
		}
		return nil, fmt.Errorf("failed to adjust inventory: %w", err)
	}

	return item, nil
}

func (r *sqliteInventoryRepo) Update(ctx context.Context, item *models.InventoryItem) error {
	query := `
		UPDATE inventory
		SET name = ?, unit = ?, quantity = ?, low_stock_threshold = ?
		WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query,
		item.Name, item.Unit, item.Quantity, item.LowStockThreshold, item.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update inventory item: %w", err)
	}

	return requireAffected(result)
}

func (r *sqliteInventoryRepo) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM inventory WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete inventory item: %w", err)
	}

	return requireAffected(result)
}
