// Package main — HTTP route registration.
//
// initRoutes, tüm API endpoint'lerini mux'a bağlar.
// Middleware chain helper'ları burada tanımlıdır:
//   - auth: access token doğrulaması
//   - authAdmin: auth + admin rolü kontrolü
package main

import (
	"fmt"
	"net/http"

	"github.com/dmarchuk/salonio/middleware"
	"github.com/dmarchuk/salonio/models"
	"github.com/dmarchuk/salonio/services"
)

// initRoutes, middleware chain'i kurar ve tüm endpoint'leri mux'a bağlar.
//
// Yetki matrisi:
// - Auth endpoint'leri public (login/refresh/logout/forgot/reset)
// - Okuma + müşteri/randevu/ödeme/stok işlemleri: giriş yapmış her personel
// - Personel, şube ve katalog YAZMA işlemleri: sadece admin
func initRoutes(mux *http.ServeMux, h *Handlers, authService services.AuthService) {
	// ─── Middleware ───
	authMw := middleware.NewAuthMiddleware(authService)

	// ─── Middleware Chain Helpers ───
	auth := func(handler http.HandlerFunc) http.Handler {
		return authMw.Require(http.HandlerFunc(handler))
	}
	authAdmin := func(handler http.HandlerFunc) http.Handler {
		return authMw.Require(authMw.RequireRole(models.RoleAdmin)(http.HandlerFunc(handler)))
	}

	// Health check
	mux.HandleFunc("GET /api/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"status":"ok","service":"salonio"}`)
	})

	// Auth — public endpoint'ler (access token gerekmez).
	// Refresh ve logout kimliği cookie'den alır.
	mux.HandleFunc("POST /api/auth/login", h.Auth.Login)
	mux.HandleFunc("POST /api/auth/refresh", h.Auth.Refresh)
	mux.HandleFunc("POST /api/auth/logout", h.Auth.Logout)
	mux.HandleFunc("POST /api/auth/forgot-password", h.Auth.ForgotPassword)
	mux.HandleFunc("POST /api/auth/reset-password", h.Auth.ResetPassword)

	// Auth — korumalı
	mux.Handle("GET /api/auth/me", auth(h.Auth.Me))
	mux.Handle("POST /api/auth/change-password", auth(h.Auth.ChangePassword))

	// Clients — tüm personel erişebilir
	mux.Handle("GET /api/clients", auth(h.Client.List))
	mux.Handle("POST /api/clients", auth(h.Client.Create))
	mux.Handle("GET /api/clients/{id}", auth(h.Client.Get))
	mux.Handle("PATCH /api/clients/{id}", auth(h.Client.Update))
	mux.Handle("DELETE /api/clients/{id}", auth(h.Client.Delete))

	// Employees — sadece admin
	mux.Handle("GET /api/employees", authAdmin(h.Employee.List))
	mux.Handle("POST /api/employees", authAdmin(h.Employee.Create))
	mux.Handle("GET /api/employees/{id}", authAdmin(h.Employee.Get))
	mux.Handle("PATCH /api/employees/{id}", authAdmin(h.Employee.Update))
	mux.Handle("DELETE /api/employees/{id}", authAdmin(h.Employee.Delete))

	// Services (katalog) — okuma herkese, yazma admin'e
	mux.Handle("GET /api/services", auth(h.Catalog.List))
	mux.Handle("GET /api/services/{id}", auth(h.Catalog.Get))
	mux.Handle("POST /api/services", authAdmin(h.Catalog.Create))
	mux.Handle("PATCH /api/services/{id}", authAdmin(h.Catalog.Update))
	mux.Handle("DELETE /api/services/{id}", authAdmin(h.Catalog.Delete))

	// Appointments — tüm personel
	mux.Handle("GET /api/appointments", auth(h.Appointment.List))
	mux.Handle("POST /api/appointments", auth(h.Appointment.Create))
	mux.Handle("GET /api/appointments/{id}", auth(h.Appointment.Get))
	mux.Handle("PATCH /api/appointments/{id}", auth(h.Appointment.Update))
	mux.Handle("DELETE /api/appointments/{id}", auth(h.Appointment.Delete))
	mux.Handle("GET /api/appointments/{id}/payments", auth(h.Payment.ByAppointment))

	// Payments — tüm personel kaydedebilir
	mux.Handle("GET /api/payments", auth(h.Payment.List))
	mux.Handle("POST /api/payments", auth(h.Payment.Create))
	mux.Handle("GET /api/payments/{id}", auth(h.Payment.Get))

	// Inventory — tüm personel
	mux.Handle("GET /api/inventory", auth(h.Inventory.List))
	mux.Handle("POST /api/inventory", auth(h.Inventory.Create))
	mux.Handle("GET /api/inventory/{id}", auth(h.Inventory.Get))
	mux.Handle("POST /api/inventory/{id}/adjust", auth(h.Inventory.Adjust))
	mux.Handle("DELETE /api/inventory/{id}", auth(h.Inventory.Delete))

	// Branches — okuma herkese, yazma admin'e
	mux.Handle("GET /api/branches", auth(h.Branch.List))
	mux.Handle("GET /api/branches/{id}", auth(h.Branch.Get))
	mux.Handle("POST /api/branches", authAdmin(h.Branch.Create))
	mux.Handle("PATCH /api/branches/{id}", authAdmin(h.Branch.Update))
	mux.Handle("DELETE /api/branches/{id}", authAdmin(h.Branch.Delete))

	// Stats — dashboard herkese, ciro raporu admin'e
	mux.Handle("GET /api/stats/dashboard", auth(h.Stats.Dashboard))
	mux.Handle("GET /api/stats/revenue", authAdmin(h.Stats.Revenue))

	// WebSocket — token query parameter ile authenticate edilir.
	// Tarayıcı WS API'si custom header gönderemez, bu yüzden:
	//   ws://server/ws?token=JWT_TOKEN
	mux.HandleFunc("GET /ws", h.WS.HandleConnection)
}
