package handler

import (
	"context"
	"net/http"

	"hrms.service/internal/core/model"
)

type LeaveService interface {
	Apply(ctx context.Context, cmd model.ApplyLeaveCommand) (*model.LeaveRequest, error)
	Respond(ctx context.Context, id int64, response string) (*model.LeaveRequest, error)
	List(ctx context.Context) ([]model.LeaveRequest, error)
}

type LeaveHandler struct {
	Service LeaveService
}

type respondLeaveRequest struct {
	Response string `json:"response"`
}

func (h *LeaveHandler) List(w http.ResponseWriter, r *http.Request) {
	leaves, err := h.Service.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(leaves))
}

func (h *LeaveHandler) Apply(w http.ResponseWriter, r *http.Request) {
	var req applyLeaveRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	cmd, err := req.command()
	if err != nil {
		writeError(w, r, err)
		return
	}

	l, err := h.Service.Apply(r.Context(), cmd)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, l)
}

func (h *LeaveHandler) Respond(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req respondLeaveRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	l, err := h.Service.Respond(r.Context(), id, req.Response)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, l)
}
