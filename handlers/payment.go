package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/dmarchuk/salonio/models"
	"github.com/dmarchuk/salonio/pkg"
	"github.com/dmarchuk/salonio/services"
)

// PaymentHandler, ödeme endpoint'leri.
type PaymentHandler struct {
	paymentService services.PaymentService
}

// NewPaymentHandler, constructor.
func NewPaymentHandler(paymentService services.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// Create godoc
// POST /api/payments
func (h *PaymentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreatePaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	payment, err := h.paymentService.Create(r.Context(), &req)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusCreated, payment)
}

// List godoc
// GET /api/payments?from=2026-08-01&to=2026-09-01
// Aralık verilmezse son 30 gün döner.
func (h *PaymentHandler) List(w http.ResponseWriter, r *http.Request) {
	from, to, err := parseDateRange(r)
	if err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	payments, err := h.paymentService.List(r.Context(), from, to)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, payments)
}

// Get godoc
// GET /api/payments/{id}
func (h *PaymentHandler) Get(w http.ResponseWriter, r *http.Request) {
	payment, err := h.paymentService.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, payment)
}

// ByAppointment godoc
// GET /api/appointments/{id}/payments
func (h *PaymentHandler) ByAppointment(w http.ResponseWriter, r *http.Request) {
	payments, err := h.paymentService.GetByAppointment(r.Context(), r.PathValue("id"))
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, payments)
}

// parseDateRange, from/to query parametrelerini parse eder.
// İkisi de boşsa son 30 gün döner. `to` günü dahil edilir —
// üst sınır ertesi günün 00:00'ı olur.
func parseDateRange(r *http.Request) (time.Time, time.Time, error) {
	q := r.URL.Query()
	fromStr, toStr := q.Get("from"), q.Get("to")

	now := time.Now().UTC()
	from := now.AddDate(0, 0, -30)
	to := now

	if fromStr != "" {
		parsed, err := time.Parse("2006-01-02", fromStr)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("from must be in YYYY-MM-DD format")
		}
		from = parsed
	}
	if toStr != "" {
		parsed, err := time.Parse("2006-01-02", toStr)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("to must be in YYYY-MM-DD format")
		}
		to = parsed.AddDate(0, 0, 1)
	}

	return from, to, nil
}
