package repository

import (
	"context"
	"time"

	"github.com/dmarchuk/salonio/models"
)

// DailyRevenue, günlük ciro özeti (stats endpoint'i için).
type DailyRevenue struct {
	Day        string `json:"day"` // "2026-02-14" formatında
	TotalCents int64  `json:"total_cents"`
	Count      int    `json:"count"`
}

// PaymentRepository, ödeme veri erişim katmanı.
type PaymentRepository interface {
	Create(ctx context.Context, payment *models.Payment) error
	GetByID(ctx context.Context, id string) (*models.Payment, error)
	GetByAppointment(ctx context.Context, appointmentID string) ([]models.Payment, error)
	List(ctx context.Context, from, to time.Time) ([]models.Payment, error)
	RevenueByDay(ctx context.Context, from, to time.Time) ([]DailyRevenue, error)
}
