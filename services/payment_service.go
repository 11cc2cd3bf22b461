package services

import (
	"context"
	"fmt"
	"time"

	"github.com/dmarchuk/salonio/models"
	"github.com/dmarchuk/salonio/pkg"
	"github.com/dmarchuk/salonio/repository"
	"github.com/dmarchuk/salonio/ws"
)

// PaymentService, ödeme kayıtları iş kuralları.
// Ödeme kayıtları immutable'dır — düzeltme gerekiyorsa muhasebe
// pratiğine uygun şekilde ters kayıt girilir, mevcut kayıt değişmez.
type PaymentService interface {
	Create(ctx context.Context, req *models.CreatePaymentRequest) (*models.Payment, error)
	GetByID(ctx context.Context, id string) (*models.Payment, error)
	GetByAppointment(ctx context.Context, appointmentID string) ([]models.Payment, error)
	List(ctx context.Context, from, to time.Time) ([]models.Payment, error)
}

type paymentService struct {
	paymentRepo repository.PaymentRepository
	apptRepo    repository.AppointmentRepository
	hub         ws.EventPublisher
}

// NewPaymentService, constructor.
func NewPaymentService(
	paymentRepo repository.PaymentRepository,
	apptRepo repository.AppointmentRepository,
	hub ws.EventPublisher,
) PaymentService {
	return &paymentService{
		paymentRepo: paymentRepo,
		apptRepo:    apptRepo,
		hub:         hub,
	}
}

func (s *paymentService) Create(ctx context.Context, req *models.CreatePaymentRequest) (*models.Payment, error) {
	// 1. Validation
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	// 2. Randevu var mı ve ödemeye uygun durumda mı?
	appt, err := s.apptRepo.GetByID(ctx, req.AppointmentID)
	if err != nil {
		return nil, fmt.Errorf("%w: appointment not found", pkg.ErrBadRequest)
	}
	if appt.Status == models.AppointmentCancelled {
		return nil, fmt.Errorf("%w: cannot record payment for a cancelled appointment", pkg.ErrBadRequest)
	}

	// 3. Kayıt
	payment := &models.Payment{
		AppointmentID: req.AppointmentID,
		AmountCents:   req.AmountCents,
		Method:        req.Method,
	}
	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		return nil, err
	}

	// 4. Dashboard ciro göstergesi canlı güncellenir
	s.hub.BroadcastToAll(ws.Event{Op: ws.OpPaymentCreate, Data: payment})

	return payment, nil
}

func (s *paymentService) GetByID(ctx context.Context, id string) (*models.Payment, error) {
	return s.paymentRepo.GetByID(ctx, id)
}

func (s *paymentService) GetByAppointment(ctx context.Context, appointmentID string) ([]models.Payment, error) {
	return s.paymentRepo.GetByAppointment(ctx, appointmentID)
}

func (s *paymentService) List(ctx context.Context, from, to time.Time) ([]models.Payment, error) {
	if !from.Before(to) {
		return nil, fmt.Errorf("%w: from must be before to", pkg.ErrBadRequest)
	}
	return s.paymentRepo.List(ctx, from, to)
}
