package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/dmarchuk/salonio/models"
	"github.com/dmarchuk/salonio/pkg"
	"github.com/dmarchuk/salonio/services"
)

// BranchHandler, şube endpoint'leri.
type BranchHandler struct {
	branchService services.BranchService
}

// NewBranchHandler, constructor.
func NewBranchHandler(branchService services.BranchService) *BranchHandler {
	return &BranchHandler{branchService: branchService}
}

// Create godoc
// POST /api/branches
func (h *BranchHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateBranchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	branch, err := h.branchService.Create(r.Context(), &req)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusCreated, branch)
}

// List godoc
// GET /api/branches
func (h *BranchHandler) List(w http.ResponseWriter, r *http.Request) {
	branches, err := h.branchService.GetAll(r.Context())
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, branches)
}

// Get godoc
// GET /api/branches/{id}
func (h *BranchHandler) Get(w http.ResponseWriter, r *http.Request) {
	branch, err := h.branchService.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, branch)
}

// Update godoc
// PATCH /api/branches/{id}
func (h *BranchHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateBranchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	branch, err := h.branchService.Update(r.Context(), r.PathValue("id"), &req)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, branch)
}

// Delete godoc
// DELETE /api/branches/{id}
func (h *BranchHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.branchService.Delete(r.Context(), r.PathValue("id")); err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.NoContent(w)
}
