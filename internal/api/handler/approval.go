package handler

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/shopspring/decimal"

	"hrms.service/internal/core"
	"hrms.service/internal/core/model"
)

type ApprovalService interface {
	Approve(ctx context.Context, userID int64, in core.ApproveInput) (*model.Employee, error)
	Reject(ctx context.Context, userID int64, reason string) (*model.User, error)
	ListPending(ctx context.Context) ([]model.User, error)
}

type ApprovalHandler struct {
	Service ApprovalService
}

type approveRequest struct {
	Address    string           `json:"address"`
	Phone      string           `json:"phone"`
	Department string           `json:"department"`
	Position   string           `json:"position"`
	Salary     *decimal.Decimal `json:"salary"`
}

type rejectRequest struct {
	Reason string `json:"reason"`
}

func (h *ApprovalHandler) ListPending(w http.ResponseWriter, r *http.Request) {
	users, err := h.Service.ListPending(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(users))
}

func (h *ApprovalHandler) Approve(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req approveRequest
	if err := decodeOptionalJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	emp, err := h.Service.Approve(r.Context(), id, core.ApproveInput{
		Address:    req.Address,
		Phone:      req.Phone,
		Department: req.Department,
		Position:   req.Position,
		Salary:     req.Salary,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, emp)
}

func (h *ApprovalHandler) Reject(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req rejectRequest
	if err := decodeOptionalJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	u, err := h.Service.Reject(r.Context(), id, req.Reason)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

// decodeOptionalJSON accepts an empty body.
func decodeOptionalJSON(r *http.Request, dst any) error {
	err := decodeJSON(r, dst)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}
