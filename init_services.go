// Package main — Service katmanı başlatma.
package main

import (
	"log"
	"time"

	"github.com/dmarchuk/salonio/config"
	"github.com/dmarchuk/salonio/pkg/email"
	"github.com/dmarchuk/salonio/pkg/ratelimit"
	"github.com/dmarchuk/salonio/pkg/token"
	"github.com/dmarchuk/salonio/services"
	"github.com/dmarchuk/salonio/ws"
)

// Services, tüm service instance'larını tutan container struct.
type Services struct {
	Auth        services.AuthService
	Client      services.ClientService
	Employee    services.EmployeeService
	Catalog     services.CatalogService
	Appointment services.AppointmentService
	Payment     services.PaymentService
	Inventory   services.InventoryService
	Branch      services.BranchService
	Stats       services.StatsService
}

// initServices, repository'lerden ve config'ten service katmanını kurar.
// Token codec ve email sender gibi cross-cutting bağımlılıklar da
// burada oluşturulur.
func initServices(repos *Repositories, hub ws.EventPublisher, cfg *config.Config) (*Services, *ratelimit.LoginRateLimiter, error) {
	// Token codec — access secret zorunlu, eksikse burada patlar.
	codec, err := token.NewCodec(
		cfg.JWT.Secret,
		cfg.JWT.RefreshSecret,
		time.Duration(cfg.JWT.AccessTokenExpiry)*time.Minute,
		time.Duration(cfg.JWT.RefreshTokenExpiry)*24*time.Hour,
	)
	if err != nil {
		return nil, nil, err
	}

	// Email — API key yoksa log-only sender (dev ortamı).
	var mailer email.EmailSender
	if cfg.Email.ResendAPIKey != "" {
		mailer = email.NewResendSender(cfg.Email.ResendAPIKey, cfg.Email.FromEmail, cfg.Email.AppURL)
	} else {
		log.Println("[init] RESEND_API_KEY not set, emails will be logged instead of sent")
		mailer = email.NewLogSender()
	}

	// Login brute-force koruması: IP başına 5 dakikada 10 deneme.
	loginLimiter := ratelimit.NewLoginRateLimiter(10, 5*time.Minute)

	return &Services{
		Auth:        services.NewAuthService(repos.User, repos.RefreshToken, repos.ResetToken, codec, mailer),
		Client:      services.NewClientService(repos.Client),
		Employee:    services.NewEmployeeService(repos.User, repos.RefreshToken, repos.Branch),
		Catalog:     services.NewCatalogService(repos.Service),
		Appointment: services.NewAppointmentService(repos.Appointment, repos.Client, repos.User, repos.Service, repos.Branch, hub, mailer),
		Payment:     services.NewPaymentService(repos.Payment, repos.Appointment, hub),
		Inventory:   services.NewInventoryService(repos.Inventory, repos.Branch, hub),
		Branch:      services.NewBranchService(repos.Branch),
		Stats:       services.NewStatsService(repos.Appointment, repos.Payment, repos.Inventory),
	}, loginLimiter, nil
}
