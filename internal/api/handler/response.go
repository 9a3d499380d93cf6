package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	"hrms.service/internal/core/model"
)

type errorResponse struct {
	Error string `json:"error"`
}

var badRequestErrors = []error{
	model.ErrValidation,
	model.ErrInvalidRole,
	model.ErrReservedEmail,
	model.ErrInvalidDate,
	model.ErrHolidayViolation,
	model.ErrUnknownStatus,
	model.ErrUnknownResponse,
	model.ErrInvalidTransition,
	model.ErrDuplicateEmail,
	model.ErrDuplicateRecord,
	model.ErrDuplicateProfile,
}

var notFoundErrors = []error{
	model.ErrUserNotFound,
	model.ErrEmployeeNotFound,
	model.ErrAdminNotFound,
	model.ErrHrManagerNotFound,
	model.ErrLeaveNotFound,
	model.ErrSalaryNotFound,
	model.ErrNotificationNotFound,
}

// statusFor maps a domain error to its HTTP status.
func statusFor(err error) int {
	if errors.Is(err, model.ErrInvalidCredentials) {
		return http.StatusUnauthorized
	}
	for _, target := range notFoundErrors {
		if errors.Is(err, target) {
			return http.StatusNotFound
		}
	}
	for _, target := range badRequestErrors {
		if errors.Is(err, target) {
			return http.StatusBadRequest
		}
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// writeError renders err as {"error": "..."}. Unexpected errors are logged and
// hidden from the client.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	msg := err.Error()
	switch status {
	case http.StatusUnauthorized:
		msg = "Invalid credentials"
	case http.StatusInternalServerError:
		log.Ctx(r.Context()).Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
		msg = "Server error"
	}
	writeJSON(w, status, errorResponse{Error: msg})
}

func decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("%w: invalid request body: %w", model.ErrValidation, err)
	}
	return nil
}

// pathID reads the {id} route variable.
func pathID(r *http.Request) (int64, error) {
	raw := mux.Vars(r)["id"]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid id %q", model.ErrValidation, raw)
	}
	return id, nil
}
