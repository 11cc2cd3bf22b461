// Package email, uygulama genelinde email gönderimi için soyutlama katmanı.
//
// EmailSender interface'i ile gönderim detayları soyutlanır — service'ler
// concrete Resend implementasyonuna değil interface'e bağımlıdır.
// Farklı bir sağlayıcıya geçmek için yeni bir implementasyon yazıp
// main.go'daki wire-up'ı değiştirmek yeterli.
package email

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/resend/resend-go/v3"
)

// EmailSender, email gönderimi için interface.
type EmailSender interface {
	// SendPasswordReset, şifre sıfırlama linki içeren email gönderir.
	// token plaintext olarak link'e gömülür — DB'de hash'i saklanır.
	SendPasswordReset(ctx context.Context, toEmail, token string) error

	// SendAppointmentConfirmation, müşteriye randevu onayı gönderir.
	SendAppointmentConfirmation(ctx context.Context, toEmail, clientName, serviceName string, startsAt time.Time) error
}

// resendSender, Resend API ile email gönderen implementasyon.
type resendSender struct {
	client    *resend.Client
	fromEmail string // Gönderici adresi — Resend'de doğrulanmış domain altında olmalı
	appURL    string // Uygulamanın public URL'i — reset link'lerinde kullanılır
}

// NewResendSender, Resend client'ı ile EmailSender oluşturur.
func NewResendSender(apiKey, fromEmail, appURL string) EmailSender {
	return &resendSender{
		client:    resend.NewClient(apiKey),
		fromEmail: fromEmail,
		appURL:    appURL,
	}
}

// SendPasswordReset, şifre sıfırlama email'i gönderir.
// Link formatı: {appURL}/reset-password?token={token}
func (s *resendSender) SendPasswordReset(ctx context.Context, toEmail, token string) error {
	resetLink := fmt.Sprintf("%s/reset-password?token=%s", s.appURL, token)

	html := fmt.Sprintf(`<!DOCTYPE html>
<html>
<body style="font-family: sans-serif; color: #333;">
  <h2>Сброс пароля</h2>
  <p>Для сброса пароля перейдите по ссылке:</p>
  <p><a href="%s">%s</a></p>
  <p>Ссылка действительна 1 час. Если вы не запрашивали сброс, проигнорируйте это письмо.</p>
</body>
</html>`, resetLink, resetLink)

	params := &resend.SendEmailRequest{
		From:    s.fromEmail,
		To:      []string{toEmail},
		Subject: "Сброс пароля — Salonio",
		Html:    html,
	}

	if _, err := s.client.Emails.SendWithContext(ctx, params); err != nil {
		return fmt.Errorf("failed to send password reset email: %w", err)
	}
	return nil
}

// SendAppointmentConfirmation, randevu onay email'i gönderir.
// Email kaydı olmayan müşteriler için çağrılmaz (service katmanı kontrol eder).
func (s *resendSender) SendAppointmentConfirmation(ctx context.Context, toEmail, clientName, serviceName string, startsAt time.Time) error {
	html := fmt.Sprintf(`<!DOCTYPE html>
<html>
<body style="font-family: sans-serif; color: #333;">
  <h2>Запись подтверждена</h2>
  <p>%s, ваша запись на услугу «%s» подтверждена.</p>
  <p>Дата и время: <strong>%s</strong></p>
  <p>Ждём вас!</p>
</body>
</html>`, clientName, serviceName, startsAt.Format("02.01.2006 15:04"))

	params := &resend.SendEmailRequest{
		From:    s.fromEmail,
		To:      []string{toEmail},
		Subject: "Запись подтверждена — Salonio",
		Html:    html,
	}

	if _, err := s.client.Emails.SendWithContext(ctx, params); err != nil {
		return fmt.Errorf("failed to send appointment confirmation email: %w", err)
	}
	return nil
}

// logSender, email'leri göndermek yerine log'a yazan implementasyon.
// RESEND_API_KEY tanımlı olmayan dev ortamında kullanılır — akış
// bozulmaz, içerik terminalde görünür.
type logSender struct{}

// NewLogSender, log-only EmailSender oluşturur.
func NewLogSender() EmailSender {
	return &logSender{}
}

func (s *logSender) SendPasswordReset(_ context.Context, toEmail, token string) error {
	log.Printf("[email] (dev) password reset for %s: token=%s", toEmail, token)
	return nil
}

func (s *logSender) SendAppointmentConfirmation(_ context.Context, toEmail, clientName, serviceName string, startsAt time.Time) error {
	log.Printf("[email] (dev) appointment confirmation for %s: %s, %s at %s",
		toEmail, clientName, serviceName, startsAt.Format("02.01.2006 15:04"))
	return nil
}
