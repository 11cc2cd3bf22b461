package models

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// Client, salonun bir müşterisini temsil eder.
// Müşterilerin login hesabı yoktur — kayıtları resepsiyon tutar.
type Client struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Email     *string   `json:"email"`
	Notes     *string   `json:"notes"` // Serbest not alanı (alerji, tercih vb.)
	CreatedAt time.Time `json:"created_at"`
}

// CreateClientRequest, yeni müşteri kaydı için gelen veri.
type CreateClientRequest struct {
	Name  string  `json:"name"`
	Phone string  `json:"phone"`
	Email *string `json:"email"`
	Notes *string `json:"notes"`
}

// Validate, CreateClientRequest alanlarını kontrol eder.
// Telefon benzersizliği DB unique index'i ile garanti edilir —
// burada sadece format kontrolü yapılır.
func (r *CreateClientRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	nameLen := utf8.RuneCountInString(r.Name)
	if nameLen < 2 || nameLen > 64 {
		return fmt.Errorf("name must be between 2 and 64 characters")
	}

	r.Phone = strings.TrimSpace(r.Phone)
	if len(r.Phone) < 5 || len(r.Phone) > 20 {
		return fmt.Errorf("phone must be between 5 and 20 characters")
	}

	if r.Email != nil && *r.Email != "" && !emailRegex.MatchString(*r.Email) {
		return fmt.Errorf("invalid email format")
	}

	return nil
}

// UpdateClientRequest, müşteri güncellemesi için.
type UpdateClientRequest struct {
	Name  *string `json:"name"`
	Phone *string `json:"phone"`
	Email *string `json:"email"`
	Notes *string `json:"notes"`
}

// Validate, UpdateClientRequest alanlarını kontrol eder.
func (r *UpdateClientRequest) Validate() error {
	if r.Name != nil {
		*r.Name = strings.TrimSpace(*r.Name)
		nameLen := utf8.RuneCountInString(*r.Name)
		if nameLen < 2 || nameLen > 64 {
			return fmt.Errorf("name must be between 2 and 64 characters")
		}
	}
	if r.Phone != nil {
		*r.Phone = strings.TrimSpace(*r.Phone)
		if len(*r.Phone) < 5 || len(*r.Phone) > 20 {
			return fmt.Errorf("phone must be between 5 and 20 characters")
		}
	}
	if r.Email != nil && *r.Email != "" && !emailRegex.MatchString(*r.Email) {
		return fmt.Errorf("invalid email format")
	}
	return nil
}
