package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/dmarchuk/salonio/models"
	"github.com/dmarchuk/salonio/pkg"
	"github.com/dmarchuk/salonio/pkg/email"
	"github.com/dmarchuk/salonio/repository"
	"github.com/dmarchuk/salonio/ws"
)

// AppointmentService, randevu iş kuralları.
//
// En kritik kural çakışma kontrolü: bir usta aynı anda iki müşteriye
// hizmet veremez. Kontrol [starts, ends) yarım açık aralıkla yapılır —
// 14:00-15:00 ile 15:00-16:00 çakışma SAYILMAZ.
type AppointmentService interface {
	Create(ctx context.Context, req *models.CreateAppointmentRequest) (*models.Appointment, error)
	GetByID(ctx context.Context, id string) (*models.Appointment, error)
	List(ctx context.Context, filter models.AppointmentFilter) ([]models.Appointment, error)
	Update(ctx context.Context, id string, req *models.UpdateAppointmentRequest) (*models.Appointment, error)
	Delete(ctx context.Context, id string) error
}

type appointmentService struct {
	apptRepo    repository.AppointmentRepository
	clientRepo  repository.ClientRepository
	userRepo    repository.UserRepository
	serviceRepo repository.ServiceRepository
	branchRepo  repository.BranchRepository
	hub         ws.EventPublisher
	mailer      email.EmailSender
}

// NewAppointmentService, constructor.
func NewAppointmentService(
	apptRepo repository.AppointmentRepository,
	clientRepo repository.ClientRepository,
	userRepo repository.UserRepository,
	serviceRepo repository.ServiceRepository,
	branchRepo repository.BranchRepository,
	hub ws.EventPublisher,
	mailer email.EmailSender,
) AppointmentService {
	return &appointmentService{
		apptRepo:    apptRepo,
		clientRepo:  clientRepo,
		userRepo:    userRepo,
		serviceRepo: serviceRepo,
		branchRepo:  branchRepo,
		hub:         hub,
		mailer:      mailer,
	}
}

func (s *appointmentService) Create(ctx context.Context, req *models.CreateAppointmentRequest) (*models.Appointment, error) {
	// 1. Validation
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	// 2. Referans kontrolleri — FK hatası yerine anlamlı 400 dönebilmek için
	client, err := s.clientRepo.GetByID(ctx, req.ClientID)
	if err != nil {
		return nil, fmt.Errorf("%w: client not found", pkg.ErrBadRequest)
	}

	master, err := s.userRepo.GetByID(ctx, req.MasterID)
	if err != nil {
		return nil, fmt.Errorf("%w: master not found", pkg.ErrBadRequest)
	}
	if master.Role != models.RoleMaster {
		return nil, fmt.Errorf("%w: appointments can only be assigned to masters", pkg.ErrBadRequest)
	}

	service, err := s.serviceRepo.GetByID(ctx, req.ServiceID)
	if err != nil {
		return nil, fmt.Errorf("%w: service not found", pkg.ErrBadRequest)
	}
	if !service.Active {
		return nil, fmt.Errorf("%w: service is no longer offered", pkg.ErrBadRequest)
	}

	if _, err := s.branchRepo.GetByID(ctx, req.BranchID); err != nil {
		return nil, fmt.Errorf("%w: branch not found", pkg.ErrBadRequest)
	}

	// 3. Çakışma kontrolü
	endsAt := req.StartsAt.Add(time.Duration(service.DurationMin) * time.Minute)
	if err := s.checkOverlap(ctx, req.MasterID, req.StartsAt, endsAt, ""); err != nil {
		return nil, err
	}

	// 4. Kayıt
	appt := &models.Appointment{
		ClientID:  req.ClientID,
		MasterID:  req.MasterID,
		ServiceID: req.ServiceID,
		BranchID:  req.BranchID,
		StartsAt:  req.StartsAt.UTC(),
		Status:    models.AppointmentScheduled,
		Notes:     req.Notes,
	}
	if err := s.apptRepo.Create(ctx, appt); err != nil {
		return nil, err
	}

	// Denormalize alanlar response için doldurulur — tekrar SELECT gerekmez.
	appt.ClientName = client.Name
	appt.MasterName = master.Name
	appt.ServiceName = service.Name
	appt.DurationMin = service.DurationMin

	// 5. Dashboard broadcast
	s.hub.BroadcastToAll(ws.Event{Op: ws.OpAppointmentCreate, Data: appt})

	// 6. Müşteriye onay emaili — email'i varsa ve gönderim başarısız olsa
	// bile randevu kaydı geri alınmaz. Goroutine'de çalışır, HTTP
	// yanıtını bekletmez.
	if client.Email != nil && *client.Email != "" {
		go func(to, clientName, serviceName string, startsAt time.Time) {
			sendCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := s.mailer.SendAppointmentConfirmation(sendCtx, to, clientName, serviceName, startsAt); err != nil {
				log.Printf("[appointment] failed to send confirmation email: %v", err)
			}
		}(*client.Email, client.Name, service.Name, appt.StartsAt)
	}

	return appt, nil
}

func (s *appointmentService) GetByID(ctx context.Context, id string) (*models.Appointment, error) {
	return s.apptRepo.GetByID(ctx, id)
}

func (s *appointmentService) List(ctx context.Context, filter models.AppointmentFilter) ([]models.Appointment, error) {
	return s.apptRepo.List(ctx, filter)
}

func (s *appointmentService) Update(ctx context.Context, id string, req *models.UpdateAppointmentRequest) (*models.Appointment, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	appt, err := s.apptRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.MasterID != nil {
		master, err := s.userRepo.GetByID(ctx, *req.MasterID)
		if err != nil {
			return nil, fmt.Errorf("%w: master not found", pkg.ErrBadRequest)
		}
		if master.Role != models.RoleMaster {
			return nil, fmt.Errorf("%w: appointments can only be assigned to masters", pkg.ErrBadRequest)
		}
		appt.MasterID = *req.MasterID
	}
	if req.ServiceID != nil {
		service, err := s.serviceRepo.GetByID(ctx, *req.ServiceID)
		if err != nil {
			return nil, fmt.Errorf("%w: service not found", pkg.ErrBadRequest)
		}
		if !service.Active {
			return nil, fmt.Errorf("%w: service is no longer offered", pkg.ErrBadRequest)
		}
		appt.ServiceID = *req.ServiceID
		appt.DurationMin = service.DurationMin
	}
	if req.StartsAt != nil {
		appt.StartsAt = req.StartsAt.UTC()
	}
	if req.Status != nil {
		appt.Status = *req.Status
	}
	if req.Notes != nil {
		appt.Notes = req.Notes
	}

	// Zaman, usta veya hizmet değiştiyse çakışma yeniden kontrol edilir.
	// İptal edilen randevu için kontrol gerekmez.
	if appt.Status == models.AppointmentScheduled &&
		(req.StartsAt != nil || req.MasterID != nil || req.ServiceID != nil) {
		endsAt := appt.StartsAt.Add(time.Duration(appt.DurationMin) * time.Minute)
		if err := s.checkOverlap(ctx, appt.MasterID, appt.StartsAt, endsAt, appt.ID); err != nil {
			return nil, err
		}
	}

	if err := s.apptRepo.Update(ctx, appt); err != nil {
		return nil, err
	}

	// Denormalize alanlar DB'den taze çekilir — master/service
	// değiştiyse eski isimler dönmesin.
	updated, err := s.apptRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.hub.BroadcastToAll(ws.Event{Op: ws.OpAppointmentUpdate, Data: updated})

	return updated, nil
}

func (s *appointmentService) Delete(ctx context.Context, id string) error {
	if err := s.apptRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.hub.BroadcastToAll(ws.Event{
		Op:   ws.OpAppointmentDelete,
		Data: ws.AppointmentDeleteData{ID: id},
	})

	return nil
}

// checkOverlap, ustanın verilen aralıkta başka scheduled randevusu
// olup olmadığını kontrol eder. Varsa pkg.ErrConflict (HTTP 409) döner.
func (s *appointmentService) checkOverlap(ctx context.Context, masterID string, startsAt, endsAt time.Time, excludeID string) error {
	count, err := s.apptRepo.CountOverlapping(ctx, masterID, startsAt, endsAt, excludeID)
	if err != nil {
		return fmt.Errorf("failed to check for conflicts: %w", err)
	}
	if count > 0 {
		return fmt.Errorf("%w: master already has an appointment in this time slot", pkg.ErrConflict)
	}
	return nil
}
