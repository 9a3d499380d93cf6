package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"hrms.service/internal/core/model"
	"hrms.service/pkg/database"
)

const userColumns = `user_id, email, password_hash, first_name, last_name, role, status, created_at`

// UserStore is the PostgreSQL credential store.
type UserStore struct {
	db database.Queryer
}

func NewUserStore(db database.Queryer) *UserStore {
	return &UserStore{db: db}
}

// Create inserts u with a lower-cased email and returns the stored row.
func (r *UserStore) Create(ctx context.Context, u *model.User) (*model.User, error) {
	exec := database.QueryerFromContext(ctx, r.db)
	row := exec.QueryRow(ctx, `
        INSERT INTO users (email, password_hash, first_name, last_name, role, status, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING `+userColumns,
		strings.ToLower(u.Email), u.PasswordHash, u.FirstName, u.LastName, u.Role, u.Status, u.CreatedAt)

	created, err := scanUser(row)
	if err != nil {
		return nil, translatePgError(err, nil, model.ErrDuplicateEmail)
	}
	trace.SpanFromContext(ctx).SetAttributes(attribute.Int64("app.user_id", created.ID))
	return created, nil
}

func (r *UserStore) FindByID(ctx context.Context, id int64) (*model.User, error) {
	exec := database.QueryerFromContext(ctx, r.db)
	row := exec.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE user_id = $1`, id)

	u, err := scanUser(row)
	if err != nil {
		return nil, translatePgError(err, model.ErrUserNotFound, nil)
	}
	return u, nil
}

// FindByEmail matches case-insensitively.
func (r *UserStore) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	exec := database.QueryerFromContext(ctx, r.db)
	row := exec.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE lower(email) = lower($1)`, strings.TrimSpace(email))

	u, err := scanUser(row)
	if err != nil {
		return nil, translatePgError(err, model.ErrUserNotFound, nil)
	}
	return u, nil
}

// UpdateStatus moves a user from one status to another in a single
// statement. It fails with ErrInvalidTransition when the stored status is no
// longer from.
func (r *UserStore) UpdateStatus(ctx context.Context, id int64, from, to model.UserStatus) (*model.User, error) {
	trace.SpanFromContext(ctx).SetAttributes(attribute.Int64("app.user_id", id))

	exec := database.QueryerFromContext(ctx, r.db)
	row := exec.QueryRow(ctx, `
        UPDATE users SET status = $1
         WHERE user_id = $2 AND status = $3
        RETURNING `+userColumns, to, id, from)

	u, err := scanUser(row)
	if err != nil {
		stale := fmt.Errorf("%w: user %d is no longer %s", model.ErrInvalidTransition, id, from)
		return nil, translatePgError(err, stale, nil)
	}
	return u, nil
}

func (r *UserStore) ListByRoleAndStatus(ctx context.Context, role model.Role, status model.UserStatus) ([]model.User, error) {
	exec := database.QueryerFromContext(ctx, r.db)
	rows, err := exec.Query(ctx, `
        SELECT `+userColumns+`
          FROM users
         WHERE role = $1 AND status = $2
         ORDER BY created_at, user_id`, role, status)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}

func scanUser(row pgx.Row) (*model.User, error) {
	var (
		u            model.User
		role, status string
	)
	if err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.FirstName, &u.LastName, &role, &status, &u.CreatedAt); err != nil {
		return nil, err
	}
	u.Role = model.Role(role)
	u.Status = model.UserStatus(status)
	return &u, nil
}
