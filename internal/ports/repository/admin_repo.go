package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"hrms.service/internal/core/model"
	"hrms.service/pkg/database"
)

const adminSelect = `
        SELECT a.admin_id, a.user_id, u.email, a.first_name, a.last_name, a.access_level
          FROM admins a
          JOIN users u ON u.user_id = a.user_id`

type AdminStore struct {
	db database.Queryer
}

func NewAdminStore(db database.Queryer) *AdminStore {
	return &AdminStore{db: db}
}

func (r *AdminStore) Create(ctx context.Context, a *model.Admin) (*model.Admin, error) {
	exec := database.QueryerFromContext(ctx, r.db)
	var id int64
	err := exec.QueryRow(ctx, `
        INSERT INTO admins (user_id, first_name, last_name, access_level)
        VALUES ($1, $2, $3, $4)
        RETURNING admin_id`, a.UserID, a.FirstName, a.LastName, a.AccessLevel).Scan(&id)
	if err != nil {
		return nil, translatePgError(err, nil, model.ErrDuplicateProfile)
	}
	return r.FindByID(ctx, id)
}

func (r *AdminStore) FindByID(ctx context.Context, id int64) (*model.Admin, error) {
	exec := database.QueryerFromContext(ctx, r.db)
	a, err := scanAdmin(exec.QueryRow(ctx, adminSelect+` WHERE a.admin_id = $1`, id))
	if err != nil {
		return nil, translatePgError(err, model.ErrAdminNotFound, nil)
	}
	return a, nil
}

func (r *AdminStore) List(ctx context.Context) ([]model.Admin, error) {
	exec := database.QueryerFromContext(ctx, r.db)
	rows, err := exec.Query(ctx, adminSelect+` ORDER BY a.admin_id`)
	if err != nil {
		return nil, fmt.Errorf("list admins: %w", err)
	}
	defer rows.Close()

	var out []model.Admin
	for rows.Next() {
		a, err := scanAdmin(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *a)
	}
	return out, rows.Err()
}

func (r *AdminStore) Update(ctx context.Context, a *model.Admin) (*model.Admin, error) {
	exec := database.QueryerFromContext(ctx, r.db)
	tag, err := exec.Exec(ctx, `
        UPDATE admins SET first_name = $1, last_name = $2, access_level = $3
         WHERE admin_id = $4`, a.FirstName, a.LastName, a.AccessLevel, a.ID)
	if err != nil {
		return nil, translatePgError(err, nil, nil)
	}
	if tag.RowsAffected() == 0 {
		return nil, model.ErrAdminNotFound
	}
	return r.FindByID(ctx, a.ID)
}

func (r *AdminStore) Delete(ctx context.Context, id int64) error {
	exec := database.QueryerFromContext(ctx, r.db)
	tag, err := exec.Exec(ctx, `DELETE FROM admins WHERE admin_id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return model.ErrAdminNotFound
	}
	return nil
}

func scanAdmin(row pgx.Row) (*model.Admin, error) {
	var (
		a     model.Admin
		level string
	)
	if err := row.Scan(&a.ID, &a.UserID, &a.Email, &a.FirstName, &a.LastName, &level); err != nil {
		return nil, err
	}
	a.AccessLevel = model.AccessLevel(level)
	return &a, nil
}
