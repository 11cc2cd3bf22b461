package repository

import (
	"context"

	"github.com/dmarchuk/salonio/models"
)

// ServiceRepository, hizmet kataloğu veri erişim katmanı.
type ServiceRepository interface {
	Create(ctx context.Context, service *models.Service) error
	GetByID(ctx context.Context, id string) (*models.Service, error)
	GetAll(ctx context.Context, activeOnly bool) ([]models.Service, error)
	Update(ctx context.Context, service *models.Service) error
	Delete(ctx context.Context, id string) error
}
