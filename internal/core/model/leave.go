package model

import (
	"fmt"
	"strings"
)

type LeaveStatus string

const (
	LeavePending  LeaveStatus = "PENDING"
	LeaveApproved LeaveStatus = "APPROVED"
	LeaveRejected LeaveStatus = "REJECTED"
)

// ParseLeaveResponse maps an HR answer ("Yes"/"No", any case) to a decision.
func ParseLeaveResponse(raw string) (LeaveStatus, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "yes":
		return LeaveApproved, nil
	case "no":
		return LeaveRejected, nil
	}
	return "", fmt.Errorf("%w: %q, expected Yes or No", ErrUnknownResponse, raw)
}

type LeaveRequest struct {
	ID           int64       `json:"leaveId"`
	UserID       int64       `json:"userId"`
	User         *User       `json:"user,omitempty"`
	StartDate    Date        `json:"startDate"`
	EndDate      Date        `json:"endDate"`
	Status       LeaveStatus `json:"status"`
	Reason       string      `json:"reason"`
	RejectReason string      `json:"rejectReason,omitempty"`
}

// ApplyLeaveCommand is the canonical form of a leave application.
type ApplyLeaveCommand struct {
	Email     string
	StartDate Date
	EndDate   Date
	Reason    string
}
