package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/shopspring/decimal"

	"hrms.service/internal/core/model"
)

type SalaryService interface {
	SaveForEmployee(ctx context.Context, employeeID int64, amount decimal.Decimal, paymentDate model.Date, remarks string) (*model.SalaryRecord, error)
	List(ctx context.Context) ([]model.SalaryRecord, error)
	ListByEmployee(ctx context.Context, employeeID int64) ([]model.SalaryRecord, error)
}

type SalaryHandler struct {
	Service SalaryService
}

type saveSalaryRequest struct {
	EmployeeID  int64            `json:"employeeId"`
	Amount      *decimal.Decimal `json:"amount"`
	PaymentDate model.Date       `json:"paymentDate"`
	Remarks     string           `json:"remarks"`
}

func (h *SalaryHandler) List(w http.ResponseWriter, r *http.Request) {
	records, err := h.Service.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(records))
}

func (h *SalaryHandler) ListByEmployee(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	records, err := h.Service.ListByEmployee(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(records))
}

func (h *SalaryHandler) Save(w http.ResponseWriter, r *http.Request) {
	var req saveSalaryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	switch {
	case req.EmployeeID == 0:
		writeError(w, r, fmt.Errorf("%w: employeeId is required", model.ErrValidation))
		return
	case req.Amount == nil:
		writeError(w, r, fmt.Errorf("%w: amount is required", model.ErrValidation))
		return
	case req.PaymentDate.IsZero():
		writeError(w, r, fmt.Errorf("%w: paymentDate is required", model.ErrValidation))
		return
	}

	rec, err := h.Service.SaveForEmployee(r.Context(), req.EmployeeID, *req.Amount, req.PaymentDate, req.Remarks)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, rec)
}
