package repository

import (
	"context"
	"time"

	"github.com/dmarchuk/salonio/models"
)

// AppointmentRepository, randevu veri erişim katmanı.
type AppointmentRepository interface {
	Create(ctx context.Context, appt *models.Appointment) error
	GetByID(ctx context.Context, id string) (*models.Appointment, error)
	List(ctx context.Context, filter models.AppointmentFilter) ([]models.Appointment, error)

	// CountOverlapping, verilen ustanın [startsAt, endsAt) aralığıyla
	// çakışan scheduled randevularını sayar. excludeID güncelleme
	// senaryosunda kaydın kendisiyle çakışmasını önler (yeni kayıtta "").
	CountOverlapping(ctx context.Context, masterID string, startsAt, endsAt time.Time, excludeID string) (int, error)

	Update(ctx context.Context, appt *models.Appointment) error
	Delete(ctx context.Context, id string) error
}
