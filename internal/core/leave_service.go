package core

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"hrms.service/internal/core/model"
	"hrms.service/internal/ports/repository"
)

type LeaveService struct {
	users    repository.UserRepository
	leaves   repository.LeaveRepository
	tx       TransactionManager
	notifier Notifier
}

func NewLeaveService(users repository.UserRepository, leaves repository.LeaveRepository, tx TransactionManager, notifier Notifier) *LeaveService {
	return &LeaveService{
		users:    users,
		leaves:   leaves,
		tx:       txOrNoop(tx),
		notifier: notifierOrNop(notifier),
	}
}

// Apply files a PENDING leave request for the user owning cmd.Email.
func (s *LeaveService) Apply(ctx context.Context, cmd model.ApplyLeaveCommand) (*model.LeaveRequest, error) {
	if strings.TrimSpace(cmd.Email) == "" {
		return nil, fmt.Errorf("%w: email is required", model.ErrValidation)
	}
	if cmd.StartDate.IsZero() || cmd.EndDate.IsZero() {
		return nil, fmt.Errorf("%w: leave dates are required", model.ErrValidation)
	}
	if cmd.EndDate.Before(cmd.StartDate) {
		return nil, fmt.Errorf("%w: end date %s is before start date %s", model.ErrValidation, cmd.EndDate, cmd.StartDate)
	}

	var created *model.LeaveRequest
	err := s.tx.WithinReadWrite(ctx, func(ctx context.Context) error {
		user, err := s.users.FindByEmail(ctx, cmd.Email)
		if err != nil {
			return err
		}
		created, err = s.leaves.Create(ctx, &model.LeaveRequest{
			UserID:    user.ID,
			StartDate: cmd.StartDate,
			EndDate:   cmd.EndDate,
			Status:    model.LeavePending,
			Reason:    strings.TrimSpace(cmd.Reason),
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	log.Ctx(ctx).Info().Int64("leave_id", created.ID).Int64("user_id", created.UserID).Msg("leave requested")
	return created, nil
}

// Respond records an HR decision. Any current status may be overwritten.
func (s *LeaveService) Respond(ctx context.Context, id int64, response string) (*model.LeaveRequest, error) {
	status, err := model.ParseLeaveResponse(response)
	if err != nil {
		return nil, err
	}

	var updated *model.LeaveRequest
	err = s.tx.WithinReadWrite(ctx, func(ctx context.Context) error {
		if _, err := s.leaves.FindByID(ctx, id); err != nil {
			return err
		}
		updated, err = s.leaves.UpdateStatus(ctx, id, status)
		return err
	})
	if err != nil {
		return nil, err
	}

	log.Ctx(ctx).Info().Int64("leave_id", id).Str("status", string(status)).Msg("leave answered")

	if updated.User != nil {
		kind := model.NotifyLeaveApproved
		if status == model.LeaveRejected {
			kind = model.NotifyLeaveRejected
		}
		s.notifier.Notify(ctx, *updated.User, kind, fmt.Sprintf("%s to %s", updated.StartDate, updated.EndDate))
	}
	return updated, nil
}

func (s *LeaveService) List(ctx context.Context) ([]model.LeaveRequest, error) {
	return s.leaves.List(ctx)
}
