package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/dmarchuk/salonio/models"
	"github.com/dmarchuk/salonio/pkg"
	"github.com/dmarchuk/salonio/services"
)

// InventoryHandler, stok endpoint'leri.
type InventoryHandler struct {
	invService services.InventoryService
}

// NewInventoryHandler, constructor.
func NewInventoryHandler(invService services.InventoryService) *InventoryHandler {
	return &InventoryHandler{invService: invService}
}

// Create godoc
// POST /api/inventory
func (h *InventoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateInventoryItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	item, err := h.invService.Create(r.Context(), &req)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusCreated, item)
}

// List godoc
// GET /api/inventory?branch_id=abc
func (h *InventoryHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.invService.List(r.Context(), r.URL.Query().Get("branch_id"))
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, items)
}

// Get godoc
// GET /api/inventory/{id}
func (h *InventoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	item, err := h.invService.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, item)
}

// Adjust godoc
// POST /api/inventory/{id}/adjust
// Body: { "delta": -5 }
// Stok eksiye düşecekse 400 döner, kayıt değişmez.
func (h *InventoryHandler) Adjust(w http.ResponseWriter, r *http.Request) {
	var req models.AdjustInventoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	item, err := h.invService.Adjust(r.Context(), r.PathValue("id"), &req)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, item)
}

// Delete godoc
// DELETE /api/inventory/{id}
func (h *InventoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.invService.Delete(r.Context(), r.PathValue("id")); err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.NoContent(w)
}
