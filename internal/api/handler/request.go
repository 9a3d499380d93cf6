package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"hrms.service/internal/core/model"
)

// flexibleID accepts a JSON number or a string. Numeric strings become the
// id; anything else is kept in raw.
type flexibleID struct {
	id  int64
	raw string
}

func (f *flexibleID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*f = flexibleID{}
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if id, err := strconv.ParseInt(s, 10, 64); err == nil {
			*f = flexibleID{id: id}
		} else {
			*f = flexibleID{raw: s}
		}
		return nil
	}
	var id int64
	if err := json.Unmarshal(b, &id); err != nil {
		return fmt.Errorf("%w: userId must be an integer", model.ErrValidation)
	}
	*f = flexibleID{id: id}
	return nil
}

type markAttendanceRequest struct {
	UserID     flexibleID `json:"userId"`
	Email      string     `json:"email"`
	Date       string     `json:"date"`
	Status     string     `json:"status"`
	Attendance string     `json:"attendance"`
	Remarks    string     `json:"remarks"`
}

// command resolves the alternative spellings of the request into one
// canonical command.
func (req markAttendanceRequest) command() (model.MarkAttendanceCommand, error) {
	var cmd model.MarkAttendanceCommand

	switch {
	case req.UserID.id != 0:
		cmd.User = model.UserRef{ID: req.UserID.id}
	case strings.TrimSpace(req.Email) != "":
		cmd.User = model.UserRef{Email: strings.TrimSpace(req.Email)}
	case strings.Contains(req.UserID.raw, "@"):
		cmd.User = model.UserRef{Email: req.UserID.raw}
	default:
		return cmd, fmt.Errorf("%w: userId or email is required", model.ErrValidation)
	}

	rawStatus := req.Status
	if strings.TrimSpace(rawStatus) == "" {
		rawStatus = req.Attendance
	}
	if strings.TrimSpace(rawStatus) == "" {
		return cmd, fmt.Errorf("%w: status is required", model.ErrValidation)
	}
	status, err := model.ParseAttendanceStatus(rawStatus)
	if err != nil {
		return cmd, err
	}
	cmd.Status = status

	if strings.TrimSpace(req.Date) == "" {
		return cmd, fmt.Errorf("%w: date is required", model.ErrValidation)
	}
	if cmd.Date, err = model.ParseDate(req.Date); err != nil {
		return cmd, err
	}

	cmd.Remarks = req.Remarks
	return cmd, nil
}

type applyLeaveRequest struct {
	Email     string     `json:"email"`
	Date      model.Date `json:"date"`
	StartDate model.Date `json:"startDate"`
	EndDate   model.Date `json:"endDate"`
	Reason    string     `json:"reason"`
}

// command uses date for a single day, otherwise startDate and endDate. A
// missing endDate means a single day.
func (req applyLeaveRequest) command() (model.ApplyLeaveCommand, error) {
	cmd := model.ApplyLeaveCommand{Email: strings.TrimSpace(req.Email), Reason: req.Reason}
	switch {
	case !req.Date.IsZero():
		cmd.StartDate, cmd.EndDate = req.Date, req.Date
	case !req.StartDate.IsZero():
		cmd.StartDate, cmd.EndDate = req.StartDate, req.EndDate
		if req.EndDate.IsZero() {
			cmd.EndDate = req.StartDate
		}
	default:
		return cmd, fmt.Errorf("%w: date or startDate is required", model.ErrValidation)
	}
	return cmd, nil
}
