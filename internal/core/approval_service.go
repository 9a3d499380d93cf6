package core

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"hrms.service/internal/core/model"
	"hrms.service/internal/ports/repository"
)

// ApprovalService drives a registered user out of PENDING.
type ApprovalService struct {
	users     repository.UserRepository
	employees repository.EmployeeRepository
	tx        TransactionManager
	notifier  Notifier
}

func NewApprovalService(users repository.UserRepository, employees repository.EmployeeRepository, tx TransactionManager, notifier Notifier) *ApprovalService {
	return &ApprovalService{
		users:     users,
		employees: employees,
		tx:        txOrNoop(tx),
		notifier:  notifierOrNop(notifier),
	}
}

// ApproveInput seeds the employee profile created on approval.
type ApproveInput struct {
	Address    string
	Phone      string
	Department string
	Position   string
	Salary     *decimal.Decimal
}

// Approve activates a pending employee and creates their profile. Both
// writes commit together or not at all.
func (s *ApprovalService) Approve(ctx context.Context, userID int64, in ApproveInput) (*model.Employee, error) {
	var (
		user     *model.User
		employee *model.Employee
	)
	err := s.tx.WithinReadWrite(ctx, func(ctx context.Context) error {
		u, err := s.users.FindByID(ctx, userID)
		if err != nil {
			return err
		}
		if u.Role != model.RoleEmployee {
			return fmt.Errorf("%w: user %d has role %s", model.ErrInvalidTransition, userID, u.Role)
		}
		next, err := u.Status.Transition(model.UserActive)
		if err != nil {
			return err
		}
		if user, err = s.users.UpdateStatus(ctx, userID, u.Status, next); err != nil {
			return err
		}

		employee, err = s.employees.Create(ctx, &model.Employee{
			UserID:     user.ID,
			Email:      user.Email,
			FirstName:  user.FirstName,
			LastName:   user.LastName,
			Department: strings.TrimSpace(in.Department),
			Position:   strings.TrimSpace(in.Position),
			Phone:      strings.TrimSpace(in.Phone),
			Address:    strings.TrimSpace(in.Address),
			Salary:     in.Salary,
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	log.Ctx(ctx).Info().Int64("user_id", userID).Int64("employee_id", employee.ID).Msg("user approved")
	s.notifier.Notify(ctx, *user, model.NotifyAccountApproved, "")
	return employee, nil
}

// Reject closes a pending registration without creating a profile.
func (s *ApprovalService) Reject(ctx context.Context, userID int64, reason string) (*model.User, error) {
	var user *model.User
	err := s.tx.WithinReadWrite(ctx, func(ctx context.Context) error {
		u, err := s.users.FindByID(ctx, userID)
		if err != nil {
			return err
		}
		next, err := u.Status.Transition(model.UserRejected)
		if err != nil {
			return err
		}
		user, err = s.users.UpdateStatus(ctx, userID, u.Status, next)
		return err
	})
	if err != nil {
		return nil, err
	}

	log.Ctx(ctx).Info().Int64("user_id", userID).Msg("user rejected")
	s.notifier.Notify(ctx, *user, model.NotifyAccountRejected, strings.TrimSpace(reason))
	return user, nil
}

// ListPending returns employees still waiting for a decision.
func (s *ApprovalService) ListPending(ctx context.Context) ([]model.User, error) {
	return s.users.ListByRoleAndStatus(ctx, model.RoleEmployee, model.UserPending)
}
