package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/dmarchuk/salonio/models"
	"github.com/dmarchuk/salonio/pkg"
	"github.com/dmarchuk/salonio/services"
)

// AppointmentHandler, randevu endpoint'leri.
type AppointmentHandler struct {
	apptService services.AppointmentService
}

// NewAppointmentHandler, constructor.
func NewAppointmentHandler(apptService services.AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{apptService: apptService}
}

// Create godoc
// POST /api/appointments
// Usta çakışması varsa 409 Conflict döner.
func (h *AppointmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	appt, err := h.apptService.Create(r.Context(), &req)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusCreated, appt)
}

// List godoc
// GET /api/appointments?date=2026-08-29&master_id=abc&client_id=def&branch_id=ghi
// Tüm filtreler opsiyonel ve birleştirilebilir.
func (h *AppointmentHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := models.AppointmentFilter{
		MasterID: q.Get("master_id"),
		ClientID: q.Get("client_id"),
		BranchID: q.Get("branch_id"),
	}

	if dateStr := q.Get("date"); dateStr != "" {
		date, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			pkg.ErrorWithMessage(w, http.StatusBadRequest, "date must be in YYYY-MM-DD format")
			return
		}
		filter.Date = &date
	}

	appts, err := h.apptService.List(r.Context(), filter)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, appts)
}

// Get godoc
// GET /api/appointments/{id}
func (h *AppointmentHandler) Get(w http.ResponseWriter, r *http.Request) {
	appt, err := h.apptService.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, appt)
}

// Update godoc
// PATCH /api/appointments/{id}
// Zaman/usta değişikliği çakışma kontrolünden geçer — çakışmada 409.
func (h *AppointmentHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	appt, err := h.apptService.Update(r.Context(), r.PathValue("id"), &req)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, appt)
}

// Delete godoc
// DELETE /api/appointments/{id}
func (h *AppointmentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.apptService.Delete(r.Context(), r.PathValue("id")); err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.NoContent(w)
}
