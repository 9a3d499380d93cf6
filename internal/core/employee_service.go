package core

import (
	"context"
	"fmt"
	"strings"

	"hrms.service/internal/core/model"
	"hrms.service/internal/ports/repository"
)

// EmployeeService is the back-office view of employee profiles.
type EmployeeService struct {
	users     repository.UserRepository
	employees repository.EmployeeRepository
	tx        TransactionManager
}

func NewEmployeeService(users repository.UserRepository, employees repository.EmployeeRepository, tx TransactionManager) *EmployeeService {
	return &EmployeeService{users: users, employees: employees, tx: txOrNoop(tx)}
}

func (s *EmployeeService) List(ctx context.Context) ([]model.Employee, error) {
	return s.employees.List(ctx)
}

func (s *EmployeeService) Get(ctx context.Context, id int64) (*model.Employee, error) {
	return s.employees.FindByID(ctx, id)
}

// Create adds a profile for an existing user. Names default to the user's.
func (s *EmployeeService) Create(ctx context.Context, e model.Employee) (*model.Employee, error) {
	if e.UserID == 0 {
		return nil, fmt.Errorf("%w: userId is required", model.ErrValidation)
	}
	if e.TotalLeaves < 0 {
		return nil, fmt.Errorf("%w: totalLeaves must not be negative", model.ErrValidation)
	}

	var created *model.Employee
	err := s.tx.WithinReadWrite(ctx, func(ctx context.Context) error {
		u, err := s.users.FindByID(ctx, e.UserID)
		if err != nil {
			return err
		}
		if strings.TrimSpace(e.FirstName) == "" {
			e.FirstName = u.FirstName
		}
		if strings.TrimSpace(e.LastName) == "" {
			e.LastName = u.LastName
		}
		created, err = s.employees.Create(ctx, &e)
		return err
	})
	return created, err
}

// Update applies only the fields set in patch.
func (s *EmployeeService) Update(ctx context.Context, id int64, patch model.EmployeePatch) (*model.Employee, error) {
	if patch.TotalLeaves != nil && *patch.TotalLeaves < 0 {
		return nil, fmt.Errorf("%w: totalLeaves must not be negative", model.ErrValidation)
	}

	var updated *model.Employee
	err := s.tx.WithinReadWrite(ctx, func(ctx context.Context) error {
		current, err := s.employees.FindByID(ctx, id)
		if err != nil {
			return err
		}
		patch.Apply(current)
		updated, err = s.employees.Update(ctx, current)
		return err
	})
	return updated, err
}

func (s *EmployeeService) Delete(ctx context.Context, id int64) error {
	return s.employees.Delete(ctx, id)
}

// SetTotalLeaves overwrites the leave counter of the employee owning email.
func (s *EmployeeService) SetTotalLeaves(ctx context.Context, email string, leaves int) (*model.Employee, error) {
	if strings.TrimSpace(email) == "" {
		return nil, fmt.Errorf("%w: email is required", model.ErrValidation)
	}
	if leaves < 0 {
		return nil, fmt.Errorf("%w: leaves must not be negative", model.ErrValidation)
	}

	var updated *model.Employee
	err := s.tx.WithinReadWrite(ctx, func(ctx context.Context) error {
		current, err := s.employees.FindByUserEmail(ctx, email)
		if err != nil {
			return err
		}
		current.TotalLeaves = leaves
		updated, err = s.employees.Update(ctx, current)
		return err
	})
	return updated, err
}
