package services

import (
	"context"
	"fmt"

	"github.com/dmarchuk/salonio/models"
	"github.com/dmarchuk/salonio/pkg"
	"github.com/dmarchuk/salonio/repository"
	"github.com/dmarchuk/salonio/ws"
)

// InventoryService, sarf malzemesi stok yönetimi.
type InventoryService interface {
	Create(ctx context.Context, req *models.CreateInventoryItemRequest) (*models.InventoryItem, error)
	GetByID(ctx context.Context, id string) (*models.InventoryItem, error)
	// List, branchID boşsa tüm şubelerin stoklarını döner.
	List(ctx context.Context, branchID string) ([]models.InventoryItem, error)
	// Adjust, stok miktarını delta kadar değiştirir. Negatif delta
	// sarfiyat, pozitif delta mal girişi. Stok eksiye düşemez.
	Adjust(ctx context.Context, id string, req *models.AdjustInventoryRequest) (*models.InventoryItem, error)
	Delete(ctx context.Context, id string) error
}

type inventoryService struct {
	invRepo    repository.InventoryRepository
	branchRepo repository.BranchRepository
	hub        ws.EventPublisher
}

// NewInventoryService, constructor.
func NewInventoryService(
	invRepo repository.InventoryRepository,
	branchRepo repository.BranchRepository,
	hub ws.EventPublisher,
) InventoryService {
	return &inventoryService{
		invRepo:    invRepo,
		branchRepo: branchRepo,
		hub:        hub,
	}
}

func (s *inventoryService) Create(ctx context.Context, req *models.CreateInventoryItemRequest) (*models.InventoryItem, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	if _, err := s.branchRepo.GetByID(ctx, req.BranchID); err != nil {
		return nil, fmt.Errorf("%w: branch not found", pkg.ErrBadRequest)
	}

	item := &models.InventoryItem{
		BranchID:          req.BranchID,
		Name:              req.Name,
		Unit:              req.Unit,
		Quantity:          req.Quantity,
		LowStockThreshold: req.LowStockThreshold,
	}
	if err := s.invRepo.Create(ctx, item); err != nil {
		return nil, err
	}

	return item, nil
}

func (s *inventoryService) GetByID(ctx context.Context, id string) (*models.InventoryItem, error) {
	return s.invRepo.GetByID(ctx, id)
}

func (s *inventoryService) List(ctx context.Context, branchID string) ([]models.InventoryItem, error) {
	return s.invRepo.GetAll(ctx, branchID)
}

func (s *inventoryService) Adjust(ctx context.Context, id string, req *models.AdjustInventoryRequest) (*models.InventoryItem, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	item, err := s.invRepo.Adjust(ctx, id, req.Delta)
	if err != nil {
		return nil, err
	}

	// Düşüm eşiğin altına indirdiyse dashboard'a uyarı gider.
	if req.Delta < 0 && item.LowStock() {
		s.hub.BroadcastToAll(ws.Event{
			Op: ws.OpInventoryLowStock,
			Data: ws.LowStockData{
				ItemID:   item.ID,
				BranchID: item.BranchID,
				Name:     item.Name,
				Quantity: item.Quantity,
			},
		})
	}

	return item, nil
}

func (s *inventoryService) Delete(ctx context.Context, id string) error {
	return s.invRepo.Delete(ctx, id)
}
