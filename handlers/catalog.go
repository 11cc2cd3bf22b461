package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/dmarchuk/salonio/models"
	"github.com/dmarchuk/salonio/pkg"
	"github.com/dmarchuk/salonio/services"
)

// CatalogHandler, hizmet kataloğu endpoint'leri.
// Okuma herkese açık (giriş yapmış personel), yazma admin gerektirir.
type CatalogHandler struct {
	catalogService services.CatalogService
}

// NewCatalogHandler, constructor.
func NewCatalogHandler(catalogService services.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// Create godoc
// POST /api/services
func (h *CatalogHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateServiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	service, err := h.catalogService.Create(r.Context(), &req)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusCreated, service)
}

// List godoc
// GET /api/services?active=true
func (h *CatalogHandler) List(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("active") == "true"

	services, err := h.catalogService.List(r.Context(), activeOnly)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, services)
}

// Get godoc
// GET /api/services/{id}
func (h *CatalogHandler) Get(w http.ResponseWriter, r *http.Request) {
	service, err := h.catalogService.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, service)
}

// Update godoc
// PATCH /api/services/{id}
func (h *CatalogHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateServiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	service, err := h.catalogService.Update(r.Context(), r.PathValue("id"), &req)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, service)
}

// Delete godoc
// DELETE /api/services/{id}
func (h *CatalogHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.catalogService.Delete(r.Context(), r.PathValue("id")); err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.NoContent(w)
}
