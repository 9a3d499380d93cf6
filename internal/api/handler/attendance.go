package handler

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"hrms.service/internal/core/model"
)

type AttendanceService interface {
	Mark(ctx context.Context, cmd model.MarkAttendanceCommand) (*model.AttendanceRecord, error)
	List(ctx context.Context, userID *int64) ([]model.AttendanceRecord, error)
	ListAll(ctx context.Context) ([]model.AttendanceRecord, error)
	ListByUser(ctx context.Context, userID int64) ([]model.AttendanceRecord, error)
}

type AttendanceHandler struct {
	Service AttendanceService
}

// Mark serves both POST /api/attendance and POST /api/attendance/mark.
func (h *AttendanceHandler) Mark(w http.ResponseWriter, r *http.Request) {
	var req markAttendanceRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	cmd, err := req.command()
	if err != nil {
		writeError(w, r, err)
		return
	}

	rec, err := h.Service.Mark(r.Context(), cmd)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (h *AttendanceHandler) List(w http.ResponseWriter, r *http.Request) {
	var userID *int64
	if raw := strings.TrimSpace(r.URL.Query().Get("userId")); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			writeError(w, r, fmt.Errorf("%w: invalid userId %q", model.ErrValidation, raw))
			return
		}
		userID = &id
	}

	records, err := h.Service.List(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(records))
}

func (h *AttendanceHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	records, err := h.Service.ListAll(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(records))
}

func (h *AttendanceHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	records, err := h.Service.ListByUser(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(records))
}

// nonNil makes empty lists render as [] instead of null.
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
