package models

import (
	"fmt"
	"time"
)

// AppointmentStatus, randevunun yaşam döngüsündeki durumu.
type AppointmentStatus string

const (
	AppointmentScheduled AppointmentStatus = "scheduled"
	AppointmentDone      AppointmentStatus = "done"
	AppointmentCancelled AppointmentStatus = "cancelled"
	AppointmentNoShow    AppointmentStatus = "no_show"
)

// Valid, status'un tanınan bir değer olup olmadığını kontrol eder.
func (s AppointmentStatus) Valid() bool {
	switch s {
	case AppointmentScheduled, AppointmentDone, AppointmentCancelled, AppointmentNoShow:
		return true
	}
	return false
}

// Appointment, bir müşterinin belirli bir ustaya, belirli bir hizmete
// yapılmış randevusunu temsil eder.
//
// EndsAt DB'de saklanmaz — StartsAt + hizmetin DurationMin'inden türetilir
// ve çakışma kontrolünde kullanılır. Response'larda denormalize edilmiş
// isim alanları (ClientName vb.) JOIN ile doldurulur, frontend'in her
// randevu için 3 ayrı istek atmasını önler.
type Appointment struct {
	ID        string            `json:"id"`
	ClientID  string            `json:"client_id"`
	MasterID  string            `json:"master_id"`
	ServiceID string            `json:"service_id"`
	BranchID  string            `json:"branch_id"`
	StartsAt  time.Time         `json:"starts_at"`
	Status    AppointmentStatus `json:"status"`
	Notes     *string           `json:"notes"`
	CreatedAt time.Time         `json:"created_at"`

	// JOIN ile doldurulan denormalize alanlar (DB kolonu değildir)
	ClientName  string `json:"client_name,omitempty"`
	MasterName  string `json:"master_name,omitempty"`
	ServiceName string `json:"service_name,omitempty"`
	DurationMin int    `json:"duration_min,omitempty"`
}

// CreateAppointmentRequest, yeni randevu isteği.
type CreateAppointmentRequest struct {
	ClientID  string    `json:"client_id"`
	MasterID  string    `json:"master_id"`
	ServiceID string    `json:"service_id"`
	BranchID  string    `json:"branch_id"`
	StartsAt  time.Time `json:"starts_at"`
	Notes     *string   `json:"notes"`
}

// Validate, CreateAppointmentRequest alanlarını kontrol eder.
// Referansların (client/master/service/branch) varlığı service katmanında
// kontrol edilir — burada sadece şekil kontrolü yapılır.
func (r *CreateAppointmentRequest) Validate() error {
	if r.ClientID == "" {
		return fmt.Errorf("client_id is required")
	}
	if r.MasterID == "" {
		return fmt.Errorf("master_id is required")
	}
	if r.ServiceID == "" {
		return fmt.Errorf("service_id is required")
	}
	if r.BranchID == "" {
		return fmt.Errorf("branch_id is required")
	}
	if r.StartsAt.IsZero() {
		return fmt.Errorf("starts_at is required")
	}
	return nil
}

// UpdateAppointmentRequest, randevu güncellemesi için.
type UpdateAppointmentRequest struct {
	MasterID  *string            `json:"master_id"`
	ServiceID *string            `json:"service_id"`
	StartsAt  *time.Time         `json:"starts_at"`
	Status    *AppointmentStatus `json:"status"`
	Notes     *string            `json:"notes"`
}

// Validate, UpdateAppointmentRequest alanlarını kontrol eder.
func (r *UpdateAppointmentRequest) Validate() error {
	if r.Status != nil && !r.Status.Valid() {
		return fmt.Errorf("status must be one of: scheduled, done, cancelled, no_show")
	}
	if r.StartsAt != nil && r.StartsAt.IsZero() {
		return fmt.Errorf("starts_at must be a valid timestamp")
	}
	return nil
}

// AppointmentFilter, liste sorgusu filtreleri.
// Sıfır değerli alanlar filtreye dahil edilmez.
type AppointmentFilter struct {
	Date     *time.Time // Belirli bir günün randevuları
	MasterID string
	ClientID string
	BranchID string
}
