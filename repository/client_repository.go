package repository

import (
	"context"

	"github.com/dmarchuk/salonio/models"
)

// ClientRepository, müşteri verisi erişim katmanı.
type ClientRepository interface {
	Create(ctx context.Context, client *models.Client) error
	GetByID(ctx context.Context, id string) (*models.Client, error)
	GetAll(ctx context.Context) ([]models.Client, error)
	Search(ctx context.Context, query string) ([]models.Client, error)
	Update(ctx context.Context, client *models.Client) error
	Delete(ctx context.Context, id string) error
}
