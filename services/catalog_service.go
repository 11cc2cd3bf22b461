package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmarchuk/salonio/models"
	"github.com/dmarchuk/salonio/pkg"
	"github.com/dmarchuk/salonio/repository"
)

// CatalogService, hizmet kataloğu iş kuralları.
type CatalogService interface {
	Create(ctx context.Context, req *models.CreateServiceRequest) (*models.Service, error)
	GetByID(ctx context.Context, id string) (*models.Service, error)
	List(ctx context.Context, activeOnly bool) ([]models.Service, error)
	Update(ctx context.Context, id string, req *models.UpdateServiceRequest) (*models.Service, error)
	Delete(ctx context.Context, id string) error
}

type catalogService struct {
	serviceRepo repository.ServiceRepository
}

// NewCatalogService, constructor.
func NewCatalogService(serviceRepo repository.ServiceRepository) CatalogService {
	return &catalogService{serviceRepo: serviceRepo}
}

func (s *catalogService) Create(ctx context.Context, req *models.CreateServiceRequest) (*models.Service, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	service := &models.Service{
		Name:        req.Name,
		Category:    req.Category,
		PriceCents:  req.PriceCents,
		DurationMin: req.DurationMin,
		Active:      true, // Yeni hizmet her zaman aktif başlar
	}

	if err := s.serviceRepo.Create(ctx, service); err != nil {
		return nil, err
	}

	return service, nil
}

func (s *catalogService) GetByID(ctx context.Context, id string) (*models.Service, error) {
	return s.serviceRepo.GetByID(ctx, id)
}

func (s *catalogService) List(ctx context.Context, activeOnly bool) ([]models.Service, error) {
	return s.serviceRepo.GetAll(ctx, activeOnly)
}

func (s *catalogService) Update(ctx context.Context, id string, req *models.UpdateServiceRequest) (*models.Service, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	service, err := s.serviceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		service.Name = *req.Name
	}
	if req.Category != nil {
		service.Category = *req.Category
	}
	if req.PriceCents != nil {
		service.PriceCents = *req.PriceCents
	}
	if req.DurationMin != nil {
		service.DurationMin = *req.DurationMin
	}
	if req.Active != nil {
		service.Active = *req.Active
	}

	if err := s.serviceRepo.Update(ctx, service); err != nil {
		return nil, err
	}

	return service, nil
}

// Delete, hizmeti kataloğdan kaldırır.
// Geçmiş randevuları olan hizmetler FK nedeniyle silinemez —
// bu durumda hizmeti pasife çekmek (active=false) doğru yoldur.
func (s *catalogService) Delete(ctx context.Context, id string) error {
	if err := s.serviceRepo.Delete(ctx, id); err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: service has appointments, deactivate it instead", pkg.ErrConflict)
		}
		return err
	}
	return nil
}

// isForeignKeyViolation, SQLite FK hatasını kontrol eder.
// modernc.org/sqlite typed error sabitleri export etmez.
func isForeignKeyViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "FOREIGN KEY constraint failed")
}
