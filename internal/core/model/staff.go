package model

import (
	"fmt"
	"strings"
)

type AccessLevel string

const (
	AccessSuperAdmin  AccessLevel = "super_admin"
	AccessSystemAdmin AccessLevel = "system_admin"
)

// ParseAccessLevel defaults to system_admin for empty input.
func ParseAccessLevel(raw string) (AccessLevel, error) {
	s := strings.ToLower(strings.TrimSpace(raw))
	switch AccessLevel(s) {
	case "":
		return AccessSystemAdmin, nil
	case AccessSuperAdmin, AccessSystemAdmin:
		return AccessLevel(s), nil
	}
	return "", fmt.Errorf("%w: unknown access level %q", ErrValidation, raw)
}

type Admin struct {
	ID          int64       `json:"adminId"`
	UserID      int64       `json:"userId"`
	Email       string      `json:"email,omitempty"`
	FirstName   string      `json:"firstName"`
	LastName    string      `json:"lastName"`
	AccessLevel AccessLevel `json:"accessLevel"`
}

type HrManager struct {
	ID             int64  `json:"hrId"`
	UserID         int64  `json:"userId"`
	Email          string `json:"email,omitempty"`
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	OfficeLocation string `json:"officeLocation"`
	Phone          string `json:"phone"`
}
