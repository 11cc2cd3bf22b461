package services

import (
	"context"
	"fmt"

	"github.com/dmarchuk/salonio/models"
	"github.com/dmarchuk/salonio/pkg"
	"github.com/dmarchuk/salonio/repository"
)

// BranchService, şube yönetimi. Tüm yazma operasyonları admin gerektirir.
type BranchService interface {
	Create(ctx context.Context, req *models.CreateBranchRequest) (*models.Branch, error)
	GetByID(ctx context.Context, id string) (*models.Branch, error)
	GetAll(ctx context.Context) ([]models.Branch, error)
	Update(ctx context.Context, id string, req *models.UpdateBranchRequest) (*models.Branch, error)
	Delete(ctx context.Context, id string) error
}

type branchService struct {
	branchRepo repository.BranchRepository
}

// NewBranchService, constructor.
func NewBranchService(branchRepo repository.BranchRepository) BranchService {
	return &branchService{branchRepo: branchRepo}
}

func (s *branchService) Create(ctx context.Context, req *models.CreateBranchRequest) (*models.Branch, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	branch := &models.Branch{
		Name:    req.Name,
		Address: req.Address,
		Phone:   req.Phone,
	}
	if err := s.branchRepo.Create(ctx, branch); err != nil {
		return nil, err
	}

	return branch, nil
}

func (s *branchService) GetByID(ctx context.Context, id string) (*models.Branch, error) {
	return s.branchRepo.GetByID(ctx, id)
}

func (s *branchService) GetAll(ctx context.Context) ([]models.Branch, error) {
	return s.branchRepo.GetAll(ctx)
}

func (s *branchService) Update(ctx context.Context, id string, req *models.UpdateBranchRequest) (*models.Branch, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	branch, err := s.branchRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		branch.Name = *req.Name
	}
	if req.Address != nil {
		branch.Address = *req.Address
	}
	if req.Phone != nil {
		branch.Phone = req.Phone
	}

	if err := s.branchRepo.Update(ctx, branch); err != nil {
		return nil, err
	}

	return branch, nil
}

// Delete, şubeyi siler. Randevusu olan şubeler FK nedeniyle silinemez.
func (s *branchService) Delete(ctx context.Context, id string) error {
	if err := s.branchRepo.Delete(ctx, id); err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: branch has appointments", pkg.ErrConflict)
		}
		return err
	}
	return nil
}
