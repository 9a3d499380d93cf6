package handler

import (
	"context"
	"net/http"

	"hrms.service/internal/core"
	"hrms.service/internal/core/model"
)

type StaffService interface {
	ListAdmins(ctx context.Context) ([]model.Admin, error)
	GetAdmin(ctx context.Context, id int64) (*model.Admin, error)
	CreateAdmin(ctx context.Context, in core.AdminInput) (*model.Admin, error)
	UpdateAdmin(ctx context.Context, id int64, in core.AdminInput) (*model.Admin, error)
	DeleteAdmin(ctx context.Context, id int64) error

	ListHrManagers(ctx context.Context) ([]model.HrManager, error)
	GetHrManager(ctx context.Context, id int64) (*model.HrManager, error)
	CreateHrManager(ctx context.Context, in core.HrManagerInput) (*model.HrManager, error)
	UpdateHrManager(ctx context.Context, id int64, in core.HrManagerInput) (*model.HrManager, error)
	DeleteHrManager(ctx context.Context, id int64) error
}

// StaffHandler serves /api/admins and /api/hrmanagers.
type StaffHandler struct {
	Service StaffService
}

type adminRequest struct {
	UserID      int64  `json:"userId"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	AccessLevel string `json:"accessLevel"`
}

func (req adminRequest) input() core.AdminInput {
	return core.AdminInput{UserID: req.UserID, FirstName: req.FirstName, LastName: req.LastName, AccessLevel: req.AccessLevel}
}

type hrManagerRequest struct {
	UserID         int64  `json:"userId"`
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	OfficeLocation string `json:"officeLocation"`
	Phone          string `json:"phone"`
}

func (req hrManagerRequest) input() core.HrManagerInput {
	return core.HrManagerInput{
		UserID:         req.UserID,
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		OfficeLocation: req.OfficeLocation,
		Phone:          req.Phone,
	}
}

func (h *StaffHandler) ListAdmins(w http.ResponseWriter, r *http.Request) {
	admins, err := h.Service.ListAdmins(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(admins))
}

func (h *StaffHandler) GetAdmin(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	a, err := h.Service.GetAdmin(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, a)
}

func (h *StaffHandler) CreateAdmin(w http.ResponseWriter, r *http.Request) {
	var req adminRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	a, err := h.Service.CreateAdmin(r.Context(), req.input())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, a)
}

func (h *StaffHandler) UpdateAdmin(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req adminRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	a, err := h.Service.UpdateAdmin(r.Context(), id, req.input())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, a)
}

func (h *StaffHandler) DeleteAdmin(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.Service.DeleteAdmin(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *StaffHandler) ListHrManagers(w http.ResponseWriter, r *http.Request) {
	managers, err := h.Service.ListHrManagers(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(managers))
}

func (h *StaffHandler) GetHrManager(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	m, err := h.Service.GetHrManager(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

func (h *StaffHandler) CreateHrManager(w http.ResponseWriter, r *http.Request) {
	var req hrManagerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	m, err := h.Service.CreateHrManager(r.Context(), req.input())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, m)
}

func (h *StaffHandler) UpdateHrManager(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req hrManagerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	m, err := h.Service.UpdateHrManager(r.Context(), id, req.input())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

func (h *StaffHandler) DeleteHrManager(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.Service.DeleteHrManager(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
