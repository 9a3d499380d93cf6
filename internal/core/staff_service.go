package core

import (
	"context"
	"fmt"
	"strings"

	"hrms.service/internal/core/model"
	"hrms.service/internal/ports/repository"
)

// StaffService manages admin and HR manager profiles.
type StaffService struct {
	users      repository.UserRepository
	admins     repository.AdminRepository
	hrManagers repository.HrManagerRepository
	tx         TransactionManager
}

func NewStaffService(users repository.UserRepository, admins repository.AdminRepository, hrManagers repository.HrManagerRepository, tx TransactionManager) *StaffService {
	return &StaffService{users: users, admins: admins, hrManagers: hrManagers, tx: txOrNoop(tx)}
}

// AdminInput is the writable part of an admin profile. Empty strings leave
// the stored value unchanged on update.
type AdminInput struct {
	UserID      int64
	FirstName   string
	LastName    string
	AccessLevel string
}

func (s *StaffService) ListAdmins(ctx context.Context) ([]model.Admin, error) {
	return s.admins.List(ctx)
}

func (s *StaffService) GetAdmin(ctx context.Context, id int64) (*model.Admin, error) {
	return s.admins.FindByID(ctx, id)
}

func (s *StaffService) CreateAdmin(ctx context.Context, in AdminInput) (*model.Admin, error) {
	level, err := model.ParseAccessLevel(in.AccessLevel)
	if err != nil {
		return nil, err
	}
	if in.UserID == 0 {
		return nil, fmt.Errorf("%w: userId is required", model.ErrValidation)
	}

	var created *model.Admin
	err = s.tx.WithinReadWrite(ctx, func(ctx context.Context) error {
		u, err := s.users.FindByID(ctx, in.UserID)
		if err != nil {
			return err
		}
		created, err = s.admins.Create(ctx, &model.Admin{
			UserID:      u.ID,
			FirstName:   firstNonEmpty(in.FirstName, u.FirstName),
			LastName:    firstNonEmpty(in.LastName, u.LastName),
			AccessLevel: level,
		})
		return err
	})
	return created, err
}

func (s *StaffService) UpdateAdmin(ctx context.Context, id int64, in AdminInput) (*model.Admin, error) {
	var updated *model.Admin
	err := s.tx.WithinReadWrite(ctx, func(ctx context.Context) error {
		current, err := s.admins.FindByID(ctx, id)
		if err != nil {
			return err
		}
		current.FirstName = firstNonEmpty(in.FirstName, current.FirstName)
		current.LastName = firstNonEmpty(in.LastName, current.LastName)
		if strings.TrimSpace(in.AccessLevel) != "" {
			if current.AccessLevel, err = model.ParseAccessLevel(in.AccessLevel); err != nil {
				return err
			}
		}
		updated, err = s.admins.Update(ctx, current)
		return err
	})
	return updated, err
}

func (s *StaffService) DeleteAdmin(ctx context.Context, id int64) error {
	return s.admins.Delete(ctx, id)
}

// HrManagerInput follows the same update rule as AdminInput.
type HrManagerInput struct {
	UserID         int64
	FirstName      string
	LastName       string
	OfficeLocation string
	Phone          string
}

func (s *StaffService) ListHrManagers(ctx context.Context) ([]model.HrManager, error) {
	return s.hrManagers.List(ctx)
}

func (s *StaffService) GetHrManager(ctx context.Context, id int64) (*model.HrManager, error) {
	return s.hrManagers.FindByID(ctx, id)
}

func (s *StaffService) CreateHrManager(ctx context.Context, in HrManagerInput) (*model.HrManager, error) {
	if in.UserID == 0 {
		return nil, fmt.Errorf("%w: userId is required", model.ErrValidation)
	}

	var created *model.HrManager
	err := s.tx.WithinReadWrite(ctx, func(ctx context.Context) error {
		u, err := s.users.FindByID(ctx, in.UserID)
		if err != nil {
			return err
		}
		created, err = s.hrManagers.Create(ctx, &model.HrManager{
			UserID:         u.ID,
			FirstName:      firstNonEmpty(in.FirstName, u.FirstName),
			LastName:       firstNonEmpty(in.LastName, u.LastName),
			OfficeLocation: strings.TrimSpace(in.OfficeLocation),
			Phone:          strings.TrimSpace(in.Phone),
		})
		return err
	})
	return created, err
}

func (s *StaffService) UpdateHrManager(ctx context.Context, id int64, in HrManagerInput) (*model.HrManager, error) {
	var updated *model.HrManager
	err := s.tx.WithinReadWrite(ctx, func(ctx context.Context) error {
		current, err := s.hrManagers.FindByID(ctx, id)
		if err != nil {
			return err
		}
		current.FirstName = firstNonEmpty(in.FirstName, current.FirstName)
		current.LastName = firstNonEmpty(in.LastName, current.LastName)
		current.OfficeLocation = firstNonEmpty(in.OfficeLocation, current.OfficeLocation)
		current.Phone = firstNonEmpty(in.Phone, current.Phone)
		updated, err = s.hrManagers.Update(ctx, current)
		return err
	})
	return updated, err
}

func (s *StaffService) DeleteHrManager(ctx context.Context, id int64) error {
	return s.hrManagers.Delete(ctx, id)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
