package repository

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmarchuk/salonio/models"
	"github.com/dmarchuk/salonio/pkg"
)

func createTestItem(t *testing.T, repo InventoryRepository, quantity int) *models.InventoryItem {
	t.Helper()

	item := &models.InventoryItem{
		BranchID:          seededBranchID,
		Name:              "Шампунь профессиональный",
		Unit:              "ml",
		Quantity:          quantity,
		LowStockThreshold: 5,
	}
	require.NoError(t, repo.Create(context.Background(), item))
	require.NotEmpty(t, item.ID)
	return item
}

func TestInventoryRepo_Adjust(t *testing.T) {
	repo := NewSQLiteInventoryRepo(testDB(t))
	ctx := context.Background()

	item := createTestItem(t, repo, 10)

	got, err := repo.Adjust(ctx, item.ID, -3)
	require.NoError(t, err)
	assert.Equal(t, 7, got.Quantity)

	got, err = repo.Adjust(ctx, item.ID, 5)
	require.NoError(t, err)
	assert.Equal(t, 12, got.Quantity)
}

func TestInventoryRepo_AdjustInsufficientStock(t *testing.T) {
	repo := NewSQLiteInventoryRepo(testDB(t))
	ctx := context.Background()

	item := createTestItem(t, repo, 2)

	_, err := repo.Adjust(ctx, item.ID, -5)
	assert.ErrorIs(t, err, pkg.ErrBadRequest)

	// Başarısız düşüm stoku DEĞİŞTİRMEMELİ
	got, err := repo.GetByID(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Quantity)
}

func TestInventoryRepo_AdjustMissing(t *testing.T) {
	repo := NewSQLiteInventoryRepo(testDB(t))

	_, err := repo.Adjust(context.Background(), "no-such-item", -1)
	assert.ErrorIs(t, err, pkg.ErrNotFound)
}

// Paralel düşümler tek UPDATE ile atomiktir — toplam asla şaşmaz,
// stok asla negatife inmez.
func TestInventoryRepo_AdjustConcurrent(t *testing.T) {
	repo := NewSQLiteInventoryRepo(testDB(t))
	ctx := context.Background()

	item := createTestItem(t, repo, 100)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.Adjust(ctx, item.ID, -5)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	got, err := repo.GetByID(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Quantity)
}

func TestInventoryRepo_LowStock(t *testing.T) {
	item := &models.InventoryItem{Quantity: 4, LowStockThreshold: 5}
	assert.True(t, item.LowStock())

	item.Quantity = 5
	assert.False(t, item.LowStock())
}
