package model

import (
	"fmt"
	"strings"
	"time"
)

type AttendanceStatus string

const (
	AttendanceFullDay AttendanceStatus = "FULL_DAY"
	AttendanceHalfDay AttendanceStatus = "HALF_DAY"
	AttendanceAbsent  AttendanceStatus = "ABSENT"
)

// ParseAttendanceStatus accepts free-form client input. An exact enum name
// wins; otherwise separators are folded to '_' and the first matching
// keyword decides.
func ParseAttendanceStatus(raw string) (AttendanceStatus, error) {
	s := strings.ToUpper(strings.TrimSpace(raw))
	switch st := AttendanceStatus(s); st {
	case AttendanceFullDay, AttendanceHalfDay, AttendanceAbsent:
		return st, nil
	}

	s = strings.NewReplacer("-", "_", " ", "_").Replace(s)
	switch {
	case strings.Contains(s, "FULL"):
		return AttendanceFullDay, nil
	case strings.Contains(s, "HALF"):
		return AttendanceHalfDay, nil
	case strings.Contains(s, "ABSENT"), strings.Contains(s, "NOT_PRESENT"):
		return AttendanceAbsent, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownStatus, raw)
}

type AttendanceRecord struct {
	ID       int64            `json:"attendanceId"`
	UserID   int64            `json:"userId"`
	User     *User            `json:"user,omitempty"`
	Date     Date             `json:"date"`
	Status   AttendanceStatus `json:"status"`
	CheckIn  *time.Time       `json:"checkIn,omitempty"`
	CheckOut *time.Time       `json:"checkOut,omitempty"`
	Remarks  string           `json:"remarks"`
}

// UserRef identifies a user either by id or by e-mail. ID takes precedence.
type UserRef struct {
	ID    int64
	Email string
}

func (r UserRef) IsZero() bool { return r.ID == 0 && strings.TrimSpace(r.Email) == "" }

func (r UserRef) String() string {
	if r.ID != 0 {
		return fmt.Sprintf("id=%d", r.ID)
	}
	return "email=" + r.Email
}

// MarkAttendanceCommand is the canonical form of a mark-attendance request.
type MarkAttendanceCommand struct {
	User    UserRef
	Date    Date
	Status  AttendanceStatus
	Remarks string
}
