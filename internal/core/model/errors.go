package model

import "errors"

// Validation failures (HTTP 400).
var (
	ErrValidation        = errors.New("validation failed")
	ErrInvalidRole       = errors.New("invalid role")
	ErrReservedEmail     = errors.New("this email address is reserved")
	ErrInvalidDate       = errors.New("invalid attendance date")
	ErrHolidayViolation  = errors.New("attendance cannot be marked on a weekend")
	ErrUnknownStatus     = errors.New("unknown status")
	ErrUnknownResponse   = errors.New("unknown response")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrDuplicateEmail    = errors.New("email already registered")
	ErrDuplicateRecord   = errors.New("attendance already marked for this date")
	ErrDuplicateProfile  = errors.New("user already has a profile")
)

// Lookups that found nothing (HTTP 404).
var (
	ErrUserNotFound         = errors.New("user not found")
	ErrEmployeeNotFound     = errors.New("employee not found")
	ErrAdminNotFound        = errors.New("admin not found")
	ErrHrManagerNotFound    = errors.New("hr manager not found")
	ErrLeaveNotFound        = errors.New("leave request not found")
	ErrSalaryNotFound       = errors.New("salary record not found")
	ErrNotificationNotFound = errors.New("notification not found")
)

// ErrInvalidCredentials is returned by login on unknown email or password mismatch.
var ErrInvalidCredentials = errors.New("invalid credentials")
