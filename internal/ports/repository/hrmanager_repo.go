package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"hrms.service/internal/core/model"
	"hrms.service/pkg/database"
)

const hrManagerSelect = `
        SELECT h.hr_id, h.user_id, u.email, h.first_name, h.last_name, h.office_location, h.phone
          FROM hr_managers h
          JOIN users u ON u.user_id = h.user_id`

type HrManagerStore struct {
	db database.Queryer
}

func NewHrManagerStore(db database.Queryer) *HrManagerStore {
	return &HrManagerStore{db: db}
}

func (r *HrManagerStore) Create(ctx context.Context, h *model.HrManager) (*model.HrManager, error) {
	exec := database.QueryerFromContext(ctx, r.db)
	var id int64
	err := exec.QueryRow(ctx, `
        INSERT INTO hr_managers (user_id, first_name, last_name, office_location, phone)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING hr_id`, h.UserID, h.FirstName, h.LastName, h.OfficeLocation, h.Phone).Scan(&id)
	if err != nil {
		return nil, translatePgError(err, nil, model.ErrDuplicateProfile)
	}
	return r.FindByID(ctx, id)
}

func (r *HrManagerStore) FindByID(ctx context.Context, id int64) (*model.HrManager, error) {
	exec := database.QueryerFromContext(ctx, r.db)
	h, err := scanHrManager(exec.QueryRow(ctx, hrManagerSelect+` WHERE h.hr_id = $1`, id))
	if err != nil {
		return nil, translatePgError(err, model.ErrHrManagerNotFound, nil)
	}
	return h, nil
}

func (r *HrManagerStore) List(ctx context.Context) ([]model.HrManager, error) {
	exec := database.QueryerFromContext(ctx, r.db)
	rows, err := exec.Query(ctx, hrManagerSelect+` ORDER BY h.hr_id`)
	if err != nil {
		return nil, fmt.Errorf("list hr managers: %w", err)
	}
	defer rows.Close()

	var out []model.HrManager
	for rows.Next() {
		h, err := scanHrManager(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *h)
	}
	return out, rows.Err()
}

func (r *HrManagerStore) Update(ctx context.Context, h *model.HrManager) (*model.HrManager, error) {
	exec := database.QueryerFromContext(ctx, r.db)
	tag, err := exec.Exec(ctx, `
        UPDATE hr_managers SET first_name = $1, last_name = $2, office_location = $3, phone = $4
         WHERE hr_id = $5`, h.FirstName, h.LastName, h.OfficeLocation, h.Phone, h.ID)
	if err != nil {
		return nil, translatePgError(err, nil, nil)
	}
	if tag.RowsAffected() == 0 {
		return nil, model.ErrHrManagerNotFound
	}
	return r.FindByID(ctx, h.ID)
}

func (r *HrManagerStore) Delete(ctx context.Context, id int64) error {
	exec := database.QueryerFromContext(ctx, r.db)
	tag, err := exec.Exec(ctx, `DELETE FROM hr_managers WHERE hr_id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return model.ErrHrManagerNotFound
	}
	return nil
}

func scanHrManager(row pgx.Row) (*model.HrManager, error) {
	var h model.HrManager
	if err := row.Scan(&h.ID, &h.UserID, &h.Email, &h.FirstName, &h.LastName, &h.OfficeLocation, &h.Phone); err != nil {
		return nil, err
	}
	return &h, nil
}
