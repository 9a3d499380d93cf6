package core

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"hrms.service/internal/core/model"
	"hrms.service/internal/ports/repository"
)

// AttendanceService applies the per-day marking rules.
type AttendanceService struct {
	users      repository.UserRepository
	attendance repository.AttendanceRepository
	tx         TransactionManager
	clock      Clock
	weekend    []time.Weekday
}

func NewAttendanceService(users repository.UserRepository, attendance repository.AttendanceRepository, tx TransactionManager, clock Clock, weekend []time.Weekday) *AttendanceService {
	if clock == nil {
		clock = NewClock(nil)
	}
	if weekend == nil {
		weekend = []time.Weekday{time.Saturday, time.Sunday}
	}
	return &AttendanceService{
		users:      users,
		attendance: attendance,
		tx:         txOrNoop(tx),
		clock:      clock,
		weekend:    weekend,
	}
}

// Mark records attendance for today. The checks run in order: the date must
// be today, today must be a working day, the user must exist and must not
// already have a record for the day.
func (s *AttendanceService) Mark(ctx context.Context, cmd model.MarkAttendanceCommand) (*model.AttendanceRecord, error) {
	now := s.clock.Now()
	today := model.DateOf(now)

	if !cmd.Date.Equal(today) {
		return nil, fmt.Errorf("%w: %s is not today (%s)", model.ErrInvalidDate, cmd.Date, today)
	}
	if slices.Contains(s.weekend, now.Weekday()) {
		return nil, fmt.Errorf("%w: %s is a %s", model.ErrHolidayViolation, today, now.Weekday())
	}
	if cmd.User.IsZero() {
		return nil, fmt.Errorf("%w: userId or email is required", model.ErrValidation)
	}

	var created *model.AttendanceRecord
	err := s.tx.WithinReadWrite(ctx, func(ctx context.Context) error {
		user, err := s.resolveUser(ctx, cmd.User)
		if err != nil {
			return err
		}

		exists, err := s.attendance.ExistsForDate(ctx, user.ID, today)
		if err != nil {
			return err
		}
		if exists {
			return model.ErrDuplicateRecord
		}

		rec := &model.AttendanceRecord{
			UserID:  user.ID,
			Date:    today,
			Status:  cmd.Status,
			Remarks: strings.TrimSpace(cmd.Remarks),
		}
		if cmd.Status == model.AttendanceFullDay {
			checkIn := now
			rec.CheckIn = &checkIn
		}
		if created, err = s.attendance.Create(ctx, rec); err != nil {
			return err
		}
		if created.User == nil {
			created.User = user
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Ctx(ctx).Info().
		Int64("user_id", created.UserID).
		Str("status", string(created.Status)).
		Msg("attendance marked")
	return created, nil
}

func (s *AttendanceService) resolveUser(ctx context.Context, ref model.UserRef) (*model.User, error) {
	if ref.ID != 0 {
		return s.users.FindByID(ctx, ref.ID)
	}
	return s.users.FindByEmail(ctx, ref.Email)
}

// List returns the records of one user, or of everyone when userID is nil.
func (s *AttendanceService) List(ctx context.Context, userID *int64) ([]model.AttendanceRecord, error) {
	if userID == nil {
		return s.ListAll(ctx)
	}
	return s.ListByUser(ctx, *userID)
}

func (s *AttendanceService) ListAll(ctx context.Context) ([]model.AttendanceRecord, error) {
	return s.attendance.List(ctx)
}

// ListByUser fails with ErrUserNotFound for an unknown user rather than
// returning an empty list.
func (s *AttendanceService) ListByUser(ctx context.Context, userID int64) ([]model.AttendanceRecord, error) {
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.attendance.ListByUser(ctx, userID)
}
