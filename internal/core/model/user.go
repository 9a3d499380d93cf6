package model

import (
	"fmt"
	"strings"
	"time"
)

type Role string

const (
	RoleEmployee  Role = "EMPLOYEE"
	RoleHrManager Role = "HR_MANAGER"
	RoleAdmin     Role = "ADMIN"
)

// ParseRole matches s case-insensitively against the known roles.
func ParseRole(s string) (Role, error) {
	switch r := Role(strings.ToUpper(strings.TrimSpace(s))); r {
	case RoleEmployee, RoleHrManager, RoleAdmin:
		return r, nil
	}
	return "", fmt.Errorf("%w: %s", ErrInvalidRole, s)
}

// UserStatus is the account lifecycle state.
type UserStatus string

const (
	UserPending  UserStatus = "PENDING"
	UserActive   UserStatus = "ACTIVE"
	UserRejected UserStatus = "REJECTED"
	UserInactive UserStatus = "INACTIVE"
)

var userTransitions = map[UserStatus][]UserStatus{
	UserPending: {UserActive, UserRejected},
}

// CanTransitionTo reports whether next is reachable from s in one step.
func (s UserStatus) CanTransitionTo(next UserStatus) bool {
	for _, allowed := range userTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Transition returns next, or ErrInvalidTransition when the edge s -> next
// does not exist.
func (s UserStatus) Transition(next UserStatus) (UserStatus, error) {
	if !s.CanTransitionTo(next) {
		return s, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, s, next)
	}
	return next, nil
}

type User struct {
	ID           int64      `json:"userId"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	FirstName    string     `json:"firstName"`
	LastName     string     `json:"lastName"`
	Role         Role       `json:"role"`
	Status       UserStatus `json:"status"`
	CreatedAt    time.Time  `json:"createdAt"`
}

// FullName joins first and last name, skipping empty parts.
func (u User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}
