// Package main — Handler katmanı başlatma.
package main

import (
	"github.com/dmarchuk/salonio/config"
	"github.com/dmarchuk/salonio/handlers"
	"github.com/dmarchuk/salonio/pkg/ratelimit"
	"github.com/dmarchuk/salonio/ws"
)

// Handlers, tüm handler instance'larını tutan container struct.
type Handlers struct {
	Auth        *handlers.AuthHandler
	Client      *handlers.ClientHandler
	Employee    *handlers.EmployeeHandler
	Catalog     *handlers.CatalogHandler
	Appointment *handlers.AppointmentHandler
	Payment     *handlers.PaymentHandler
	Inventory   *handlers.InventoryHandler
	Branch      *handlers.BranchHandler
	Stats       *handlers.StatsHandler
	WS          *ws.Handler
}

// initHandlers, service katmanından handler katmanını kurar.
func initHandlers(svcs *Services, loginLimiter *ratelimit.LoginRateLimiter, hub *ws.Hub, cfg *config.Config) *Handlers {
	return &Handlers{
		Auth:        handlers.NewAuthHandler(svcs.Auth, loginLimiter, cfg.Session.CookieSecure),
		Client:      handlers.NewClientHandler(svcs.Client),
		Employee:    handlers.NewEmployeeHandler(svcs.Employee),
		Catalog:     handlers.NewCatalogHandler(svcs.Catalog),
		Appointment: handlers.NewAppointmentHandler(svcs.Appointment),
		Payment:     handlers.NewPaymentHandler(svcs.Payment),
		Inventory:   handlers.NewInventoryHandler(svcs.Inventory),
		Branch:      handlers.NewBranchHandler(svcs.Branch),
		Stats:       handlers.NewStatsHandler(svcs.Stats),
		WS:          ws.NewHandler(hub, svcs.Auth, cfg.CORS.AllowedOrigins),
	}
}
