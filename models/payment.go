package models

import (
	"fmt"
	"time"
)

// PaymentMethod, ödeme yöntemi.
type PaymentMethod string

const (
	PaymentCash PaymentMethod = "cash"
	PaymentCard PaymentMethod = "card"
)

// Valid, yöntemin tanınan bir değer olup olmadığını kontrol eder.
func (m PaymentMethod) Valid() bool {
	return m == PaymentCash || m == PaymentCard
}

// Payment, bir randevu için alınan ödemeyi temsil eder.
// Tutar kuruş cinsinden tutulur (bkz. Service.PriceCents).
type Payment struct {
	ID            string        `json:"id"`
	AppointmentID string        `json:"appointment_id"`
	AmountCents   int64         `json:"amount_cents"`
	Method        PaymentMethod `json:"method"`
	PaidAt        time.Time     `json:"paid_at"`
	CreatedAt     time.Time     `json:"created_at"`
}

// CreatePaymentRequest, ödeme kaydı isteği.
type CreatePaymentRequest struct {
	AppointmentID string        `json:"appointment_id"`
	AmountCents   int64         `json:"amount_cents"`
	Method        PaymentMethod `json:"method"`
}

// Validate, CreatePaymentRequest alanlarını kontrol eder.
func (r *CreatePaymentRequest) Validate() error {
	if r.AppointmentID == "" {
		return fmt.Errorf("appointment_id is required")
	}
	if r.AmountCents <= 0 {
		return fmt.Errorf("amount must be positive")
	}
	if !r.Method.Valid() {
		return fmt.Errorf("method must be one of: cash, card")
	}
	return nil
}
