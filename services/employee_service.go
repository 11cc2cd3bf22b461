package services

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/dmarchuk/salonio/models"
	"github.com/dmarchuk/salonio/pkg"
	"github.com/dmarchuk/salonio/repository"
)

// EmployeeService, personel hesaplarının yönetimi.
// Tüm operasyonlar admin yetkisi gerektirir — kontrol middleware'de yapılır.
type EmployeeService interface {
	Create(ctx context.Context, req *models.CreateUserRequest) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetAll(ctx context.Context) ([]models.User, error)
	Update(ctx context.Context, id string, req *models.UpdateUserRequest) (*models.User, error)
	// Delete, hesabı siler ve tüm oturumlarını kapatır.
	// Admin kendi hesabını silemez.
	Delete(ctx context.Context, id string, actorID string) error
}

type employeeService struct {
	userRepo   repository.UserRepository
	tokenRepo  repository.RefreshTokenRepository
	branchRepo repository.BranchRepository
}

// NewEmployeeService, constructor.
func NewEmployeeService(
	userRepo repository.UserRepository,
	tokenRepo repository.RefreshTokenRepository,
	branchRepo repository.BranchRepository,
) EmployeeService {
	return &employeeService{
		userRepo:   userRepo,
		tokenRepo:  tokenRepo,
		branchRepo: branchRepo,
	}
}

func (s *employeeService) Create(ctx context.Context, req *models.CreateUserRequest) (*models.User, error) {
	// 1. Validation
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	// 2. Şube referansı kontrolü
	if req.BranchID != nil {
		if _, err := s.branchRepo.GetByID(ctx, *req.BranchID); err != nil {
			return nil, fmt.Errorf("%w: branch not found", pkg.ErrBadRequest)
		}
	}

	// 3. Bcrypt hash (cost=12)
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), 12)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Email:        req.Email,
		Name:         req.Name,
		Phone:        req.Phone,
		Role:         req.Role,
		BranchID:     req.BranchID,
		PasswordHash: string(hash),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *employeeService) GetByID(ctx context.Context, id string) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

func (s *employeeService) GetAll(ctx context.Context) ([]models.User, error) {
	return s.userRepo.GetAll(ctx)
}

func (s *employeeService) Update(ctx context.Context, id string, req *models.UpdateUserRequest) (*models.User, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Phone != nil {
		user.Phone = req.Phone
	}
	if req.Role != nil {
		user.Role = *req.Role
	}
	if req.BranchID != nil {
		if _, err := s.branchRepo.GetByID(ctx, *req.BranchID); err != nil {
			return nil, fmt.Errorf("%w: branch not found", pkg.ErrBadRequest)
		}
		user.BranchID = req.BranchID
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *employeeService) Delete(ctx context.Context, id string, actorID string) error {
	if id == actorID {
		return fmt.Errorf("%w: cannot delete your own account", pkg.ErrBadRequest)
	}

	if err := s.userRepo.Delete(ctx, id); err != nil {
		return err
	}

	// Silinen personelin açık oturumları kapatılır. refresh_tokens
	// FK CASCADE ile zaten silinir — memory store için burada da revoke edilir.
	if err := s.tokenRepo.RevokeAllByUser(ctx, id); err != nil {
		return fmt.Errorf("failed to revoke sessions: %w", err)
	}

	return nil
}
