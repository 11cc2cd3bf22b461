package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmarchuk/salonio/models"
	"github.com/dmarchuk/salonio/pkg"
	"github.com/dmarchuk/salonio/repository"
)

// ClientService, müşteri kartoteği iş kuralları.
type ClientService interface {
	Create(ctx context.Context, req *models.CreateClientRequest) (*models.Client, error)
	GetByID(ctx context.Context, id string) (*models.Client, error)
	// List, query boşsa tüm müşterileri, doluysa isim/telefon
	// aramasının sonucunu döner.
	List(ctx context.Context, query string) ([]models.Client, error)
	Update(ctx context.Context, id string, req *models.UpdateClientRequest) (*models.Client, error)
	Delete(ctx context.Context, id string) error
}

type clientService struct {
	clientRepo repository.ClientRepository
}

// NewClientService, constructor.
func NewClientService(clientRepo repository.ClientRepository) ClientService {
	return &clientService{clientRepo: clientRepo}
}

func (s *clientService) Create(ctx context.Context, req *models.CreateClientRequest) (*models.Client, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	client := &models.Client{
		Name:  req.Name,
		Phone: req.Phone,
		Email: req.Email,
		Notes: req.Notes,
	}

	if err := s.clientRepo.Create(ctx, client); err != nil {
		return nil, err
	}

	return client, nil
}

func (s *clientService) GetByID(ctx context.Context, id string) (*models.Client, error) {
	return s.clientRepo.GetByID(ctx, id)
}

func (s *clientService) List(ctx context.Context, query string) ([]models.Client, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return s.clientRepo.GetAll(ctx)
	}
	return s.clientRepo.Search(ctx, query)
}

func (s *clientService) Update(ctx context.Context, id string, req *models.UpdateClientRequest) (*models.Client, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	// Mevcut kayıt çekilir, sadece gönderilen alanlar güncellenir
	// (partial update).
	client, err := s.clientRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		client.Name = *req.Name
	}
	if req.Phone != nil {
		client.Phone = *req.Phone
	}
	if req.Email != nil {
		client.Email = req.Email
	}
	if req.Notes != nil {
		client.Notes = req.Notes
	}

	if err := s.clientRepo.Update(ctx, client); err != nil {
		return nil, err
	}

	return client, nil
}

func (s *clientService) Delete(ctx context.Context, id string) error {
	return s.clientRepo.Delete(ctx, id)
}
