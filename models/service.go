package models

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// Service, salonun sunduğu bir hizmeti temsil eder (katalog kaydı).
// Fiyat kuruş cinsinden integer tutulur — float ile para hesabı yapılmaz.
type Service struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Category    string    `json:"category"` // Ör: "hair", "nails", "cosmetology"
	PriceCents  int64     `json:"price_cents"`
	DurationMin int       `json:"duration_min"` // Randevu çakışma kontrolünde kullanılır
	Active      bool      `json:"active"`       // Pasif hizmetler yeni randevuda seçilemez
	CreatedAt   time.Time `json:"created_at"`
}

// CreateServiceRequest, katalog kaydı oluşturma isteği.
type CreateServiceRequest struct {
	Name        string `json:"name"`
	Category    string `json:"category"`
	PriceCents  int64  `json:"price_cents"`
	DurationMin int    `json:"duration_min"`
}

// Validate, CreateServiceRequest alanlarını kontrol eder.
func (r *CreateServiceRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	nameLen := utf8.RuneCountInString(r.Name)
	if nameLen < 2 || nameLen > 100 {
		return fmt.Errorf("name must be between 2 and 100 characters")
	}

	r.Category = strings.TrimSpace(r.Category)
	if r.Category == "" {
		return fmt.Errorf("category is required")
	}

	if r.PriceCents < 0 {
		return fmt.Errorf("price must not be negative")
	}

	if r.DurationMin <= 0 || r.DurationMin > 480 {
		return fmt.Errorf("duration must be between 1 and 480 minutes")
	}

	return nil
}

// UpdateServiceRequest, katalog güncellemesi için.
type UpdateServiceRequest struct {
	Name        *string `json:"name"`
	Category    *string `json:"category"`
	PriceCents  *int64  `json:"price_cents"`
	DurationMin *int    `json:"duration_min"`
	Active      *bool   `json:"active"`
}

// Validate, UpdateServiceRequest alanlarını kontrol eder.
func (r *UpdateServiceRequest) Validate() error {
	if r.Name != nil {
		*r.Name = strings.TrimSpace(*r.Name)
		nameLen := utf8.RuneCountInString(*r.Name)
		if nameLen < 2 || nameLen > 100 {
			return fmt.Errorf("name must be between 2 and 100 characters")
		}
	}
	if r.PriceCents != nil && *r.PriceCents < 0 {
		return fmt.Errorf("price must not be negative")
	}
	if r.DurationMin != nil && (*r.DurationMin <= 0 || *r.DurationMin > 480) {
		return fmt.Errorf("duration must be between 1 and 480 minutes")
	}
	return nil
}
