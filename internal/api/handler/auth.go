package handler

import (
	"context"
	"net/http"
	"time"

	"hrms.service/internal/core"
	"hrms.service/internal/core/model"
)

type UserService interface {
	Register(ctx context.Context, in core.RegisterInput) (*model.User, error)
	Login(ctx context.Context, email, password string) (*model.User, error)
}

type AuthHandler struct {
	Service UserService
}

type registerRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	Role      string `json:"role"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type accountResponse struct {
	UserID    int64            `json:"userId"`
	Email     string           `json:"email"`
	Role      model.Role       `json:"role"`
	Status    model.UserStatus `json:"status"`
	CreatedAt *time.Time       `json:"createdAt,omitempty"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	u, err := h.Service.Register(r.Context(), core.RegisterInput{
		Email:     req.Email,
		Password:  req.Password,
		Role:      req.Role,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	createdAt := u.CreatedAt
	writeJSON(w, http.StatusCreated, accountResponse{
		UserID:    u.ID,
		Email:     u.Email,
		Role:      u.Role,
		Status:    u.Status,
		CreatedAt: &createdAt,
	})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	u, err := h.Service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, accountResponse{UserID: u.ID, Email: u.Email, Role: u.Role, Status: u.Status})
}
