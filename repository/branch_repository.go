package repository

import (
	"context"

	"github.com/dmarchuk/salonio/models"
)

// BranchRepository, şube veri erişim katmanı.
type BranchRepository interface {
	Create(ctx context.Context, branch *models.Branch) error
	GetByID(ctx context.Context, id string) (*models.Branch, error)
	GetAll(ctx context.Context) ([]models.Branch, error)
	Update(ctx context.Context, branch *models.Branch) error
	Delete(ctx context.Context, id string) error
}
