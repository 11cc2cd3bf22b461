package services

import (
	"context"
	"fmt"
	"time"

	"github.com/dmarchuk/salonio/models"
	"github.com/dmarchuk/salonio/pkg"
	"github.com/dmarchuk/salonio/pkg/cache"
	"github.com/dmarchuk/salonio/repository"
)

// statsCacheTTL, dashboard özet sorgusunun cache süresi.
// Dashboard her açılışta 4 aggregate sorgu çalıştırır — 30 saniyelik
// cache resepsiyon ekranlarının sürekli yenilenmesini ucuzlatır.
const statsCacheTTL = 30 * time.Second

// DashboardStats, dashboard ana ekranının özet verileri.
type DashboardStats struct {
	Date              string                 `json:"date"` // "2026-08-29"
	AppointmentsToday int                    `json:"appointments_today"`
	CompletedToday    int                    `json:"completed_today"`
	RevenueTodayCents int64                  `json:"revenue_today_cents"`
	LowStockItems     []models.InventoryItem `json:"low_stock_items"`
}

// StatsService, raporlama sorguları.
type StatsService interface {
	Dashboard(ctx context.Context) (*DashboardStats, error)
	// Revenue, [from, to) aralığının günlük ciro dökümünü döner.
	Revenue(ctx context.Context, from, to time.Time) ([]repository.DailyRevenue, error)
	// Close, arka plandaki cache temizleme goroutine'ini durdurur.
	Close()
}

type statsService struct {
	apptRepo    repository.AppointmentRepository
	paymentRepo repository.PaymentRepository
	invRepo     repository.InventoryRepository
	statsCache  *cache.TTLCache[string, *DashboardStats]
}

// NewStatsService, constructor.
func NewStatsService(
	apptRepo repository.AppointmentRepository,
	paymentRepo repository.PaymentRepository,
	invRepo repository.InventoryRepository,
) StatsService {
	return &statsService{
		apptRepo:    apptRepo,
		paymentRepo: paymentRepo,
		invRepo:     invRepo,
		statsCache:  cache.New[string, *DashboardStats](statsCacheTTL, time.Minute),
	}
}

func (s *statsService) Dashboard(ctx context.Context) (*DashboardStats, error) {
	if cached, ok := s.statsCache.Get("dashboard"); ok {
		return cached, nil
	}

	now := time.Now().UTC()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	// Günün randevuları
	appts, err := s.apptRepo.List(ctx, models.AppointmentFilter{Date: &dayStart})
	if err != nil {
		return nil, fmt.Errorf("failed to load today's appointments: %w", err)
	}

	completed := 0
	for _, a := range appts {
		if a.Status == models.AppointmentDone {
			completed++
		}
	}

	// Günün cirosu
	revenue, err := s.paymentRepo.RevenueByDay(ctx, dayStart, dayStart.Add(24*time.Hour))
	if err != nil {
		return nil, fmt.Errorf("failed to load today's revenue: %w", err)
	}
	var revenueCents int64
	if len(revenue) > 0 {
		revenueCents = revenue[0].TotalCents
	}

	// Stok uyarıları (tüm şubeler)
	items, err := s.invRepo.GetAll(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("failed to load inventory: %w", err)
	}
	var lowStock []models.InventoryItem
	for _, item := range items {
		if item.LowStock() {
			lowStock = append(lowStock, item)
		}
	}

	stats := &DashboardStats{
		Date:              dayStart.Format("2006-01-02"),
		AppointmentsToday: len(appts),
		CompletedToday:    completed,
		RevenueTodayCents: revenueCents,
		LowStockItems:     lowStock,
	}

	s.statsCache.Set("dashboard", stats)
	return stats, nil
}

func (s *statsService) Revenue(ctx context.Context, from, to time.Time) ([]repository.DailyRevenue, error) {
	if !from.Before(to) {
		return nil, fmt.Errorf("%w: from must be before to", pkg.ErrBadRequest)
	}
	return s.paymentRepo.RevenueByDay(ctx, from, to)
}

func (s *statsService) Close() {
	s.statsCache.Close()
}
