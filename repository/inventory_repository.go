package repository

import (
	"context"

	"github.com/dmarchuk/salonio/models"
)

// InventoryRepository, stok veri erişim katmanı.
type InventoryRepository interface {
	Create(ctx context.Context, item *models.InventoryItem) error
	GetByID(ctx context.Context, id string) (*models.InventoryItem, error)
	GetAll(ctx context.Context, branchID string) ([]models.InventoryItem, error)

	// Adjust, stok miktarını delta kadar değiştirir ve yeni kaydı döner.
	// Sonuç negatife düşecekse DB CHECK constraint'i engeller ve
	// pkg.ErrBadRequest döner.
	Adjust(ctx context.Context, id string, delta int) (*models.InventoryItem, error)

	Update(ctx context.Context, item *models.InventoryItem) error
	Delete(ctx context.Context, id string) error
}
