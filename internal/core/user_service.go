package core

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"github.com/rs/zerolog/log"

	"hrms.service/internal/core/model"
	"hrms.service/internal/ports/repository"
)

// UserService owns registration and login against the credential store.
type UserService struct {
	users    repository.UserRepository
	hasher   PasswordHasher
	clock    Clock
	reserved map[string]struct{}
}

func NewUserService(users repository.UserRepository, hasher PasswordHasher, clock Clock, reserved []string) *UserService {
	if clock == nil {
		clock = NewClock(nil)
	}
	set := make(map[string]struct{}, len(reserved))
	for _, e := range reserved {
		set[strings.ToLower(strings.TrimSpace(e))] = struct{}{}
	}
	return &UserService{users: users, hasher: hasher, clock: clock, reserved: set}
}

type RegisterInput struct {
	Email     string
	Password  string
	Role      string
	FirstName string
	LastName  string
}

// Register creates a PENDING employee account. A supplied role must be a
// known one, but self-registration always yields an EMPLOYEE.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*model.User, error) {
	email, err := normalizeEmail(in.Email)
	if err != nil {
		return nil, err
	}
	firstName := strings.TrimSpace(in.FirstName)
	lastName := strings.TrimSpace(in.LastName)
	if in.Password == "" || firstName == "" || lastName == "" {
		return nil, fmt.Errorf("%w: email, password, firstName and lastName are required", model.ErrValidation)
	}
	if len(in.Password) > maxPasswordBytes {
		return nil, fmt.Errorf("%w: password must be at most %d bytes", model.ErrValidation, maxPasswordBytes)
	}
	if strings.TrimSpace(in.Role) != "" {
		if _, err := model.ParseRole(in.Role); err != nil {
			return nil, err
		}
	}
	if _, ok := s.reserved[email]; ok {
		return nil, model.ErrReservedEmail
	}

	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, model.ErrDuplicateEmail
	} else if !errors.Is(err, model.ErrUserNotFound) {
		return nil, err
	}

	hash, err := s.hasher.Hash([]byte(in.Password))
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	created, err := s.users.Create(ctx, &model.User{
		Email:        email,
		PasswordHash: string(hash),
		FirstName:    firstName,
		LastName:     lastName,
		Role:         model.RoleEmployee,
		Status:       model.UserPending,
		CreatedAt:    s.clock.Now().UTC(),
	})
	if err != nil {
		return nil, err
	}

	log.Ctx(ctx).Info().Int64("user_id", created.ID).Msg("user registered, awaiting approval")
	return created, nil
}

// Login returns the user when email and password match. Every mismatch is
// reported as ErrInvalidCredentials.
func (s *UserService) Login(ctx context.Context, email, password string) (*model.User, error) {
	u, err := s.users.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if errors.Is(err, model.ErrUserNotFound) {
		return nil, model.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if err := s.hasher.Compare([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, model.ErrInvalidCredentials
	}
	return u, nil
}

func (s *UserService) GetUser(ctx context.Context, id int64) (*model.User, error) {
	return s.users.FindByID(ctx, id)
}

func normalizeEmail(email string) (string, error) {
	trimmed := strings.TrimSpace(email)
	if trimmed == "" {
		return "", fmt.Errorf("%w: email is required", model.ErrValidation)
	}
	addr, err := mail.ParseAddress(trimmed)
	if err != nil || addr.Address != trimmed {
		return "", fmt.Errorf("%w: invalid email %q", model.ErrValidation, email)
	}
	return strings.ToLower(addr.Address), nil
}
