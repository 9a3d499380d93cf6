package handler

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/shopspring/decimal"

	"hrms.service/internal/core/model"
)

type EmployeeService interface {
	List(ctx context.Context) ([]model.Employee, error)
	Get(ctx context.Context, id int64) (*model.Employee, error)
	Create(ctx context.Context, e model.Employee) (*model.Employee, error)
	Update(ctx context.Context, id int64, patch model.EmployeePatch) (*model.Employee, error)
	Delete(ctx context.Context, id int64) error
	SetTotalLeaves(ctx context.Context, email string, leaves int) (*model.Employee, error)
}

type EmployeeHandler struct {
	Service EmployeeService
}

type createEmployeeRequest struct {
	UserID      int64            `json:"userId"`
	FirstName   string           `json:"firstName"`
	LastName    string           `json:"lastName"`
	Department  string           `json:"department"`
	Position    string           `json:"position"`
	Phone       string           `json:"phone"`
	Address     string           `json:"address"`
	Address2    string           `json:"address2"`
	Salary      *decimal.Decimal `json:"salary"`
	Gender      string           `json:"gender"`
	HireDate    *model.Date      `json:"hireDate"`
	TotalLeaves int              `json:"totalLeaves"`
}

// updateEmployeeRequest uses pointers so absent fields stay untouched. An
// empty hireDate clears the stored date.
type updateEmployeeRequest struct {
	FirstName   *string          `json:"firstName"`
	LastName    *string          `json:"lastName"`
	Department  *string          `json:"department"`
	Position    *string          `json:"position"`
	Phone       *string          `json:"phone"`
	Address     *string          `json:"address"`
	Address2    *string          `json:"address2"`
	Salary      *decimal.Decimal `json:"salary"`
	Gender      *string          `json:"gender"`
	HireDate    *string          `json:"hireDate"`
	TotalLeaves *int             `json:"totalLeaves"`
}

func (req updateEmployeeRequest) patch() (model.EmployeePatch, error) {
	p := model.EmployeePatch{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Department:  req.Department,
		Position:    req.Position,
		Phone:       req.Phone,
		Address:     req.Address,
		Address2:    req.Address2,
		Salary:      req.Salary,
		Gender:      req.Gender,
		TotalLeaves: req.TotalLeaves,
	}
	if req.HireDate != nil {
		if strings.TrimSpace(*req.HireDate) == "" {
			p.ClearHireDate = true
		} else {
			d, err := model.ParseDate(*req.HireDate)
			if err != nil {
				return p, err
			}
			p.HireDate = &d
		}
	}
	return p, nil
}

type totalLeavesRequest struct {
	Email  string `json:"email"`
	Leaves *int   `json:"leaves"`
}

func (h *EmployeeHandler) List(w http.ResponseWriter, r *http.Request) {
	employees, err := h.Service.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(employees))
}

func (h *EmployeeHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	e, err := h.Service.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, e)
}

func (h *EmployeeHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createEmployeeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	e, err := h.Service.Create(r.Context(), model.Employee{
		UserID:      req.UserID,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Department:  req.Department,
		Position:    req.Position,
		Phone:       req.Phone,
		Address:     req.Address,
		Address2:    req.Address2,
		Salary:      req.Salary,
		Gender:      req.Gender,
		HireDate:    req.HireDate,
		TotalLeaves: req.TotalLeaves,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, e)
}

func (h *EmployeeHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req updateEmployeeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	patch, err := req.patch()
	if err != nil {
		writeError(w, r, err)
		return
	}

	e, err := h.Service.Update(r.Context(), id, patch)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, e)
}

func (h *EmployeeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.Service.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *EmployeeHandler) SetTotalLeaves(w http.ResponseWriter, r *http.Request) {
	var req totalLeavesRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if req.Leaves == nil {
		writeError(w, r, fmt.Errorf("%w: leaves is required", model.ErrValidation))
		return
	}

	e, err := h.Service.SetTotalLeaves(r.Context(), req.Email, *req.Leaves)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, e)
}
