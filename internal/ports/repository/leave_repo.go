package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"hrms.service/internal/core/model"
	"hrms.service/pkg/database"
)

const leaveSelect = `
        SELECT l.leave_id, l.user_id, l.start_date, l.end_date, l.status, l.reason, l.reject_reason,
               u.email, u.first_name, u.last_name, u.role, u.status, u.created_at
          FROM leaves l
          JOIN users u ON u.user_id = l.user_id`

type LeaveStore struct {
	db database.Queryer
}

func NewLeaveStore(db database.Queryer) *LeaveStore {
	return &LeaveStore{db: db}
}

func (r *LeaveStore) Create(ctx context.Context, l *model.LeaveRequest) (*model.LeaveRequest, error) {
	exec := database.QueryerFromContext(ctx, r.db)
	var id int64
	err := exec.QueryRow(ctx, `
        INSERT INTO leaves (user_id, start_date, end_date, status, reason, reject_reason)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING leave_id`,
		l.UserID, l.StartDate.Time, l.EndDate.Time, l.Status, l.Reason, l.RejectReason,
	).Scan(&id)
	if err != nil {
		return nil, translatePgError(err, nil, nil)
	}
	return r.FindByID(ctx, id)
}

func (r *LeaveStore) FindByID(ctx context.Context, id int64) (*model.LeaveRequest, error) {
	exec := database.QueryerFromContext(ctx, r.db)
	l, err := scanLeave(exec.QueryRow(ctx, leaveSelect+` WHERE l.leave_id = $1`, id))
	if err != nil {
		return nil, translatePgError(err, model.ErrLeaveNotFound, nil)
	}
	return l, nil
}

func (r *LeaveStore) List(ctx context.Context) ([]model.LeaveRequest, error) {
	exec := database.QueryerFromContext(ctx, r.db)
	rows, err := exec.Query(ctx, leaveSelect+` ORDER BY l.leave_id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list leaves: %w", err)
	}
	defer rows.Close()

	var out []model.LeaveRequest
	for rows.Next() {
		l, err := scanLeave(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *l)
	}
	return out, rows.Err()
}

func (r *LeaveStore) UpdateStatus(ctx context.Context, id int64, status model.LeaveStatus) (*model.LeaveRequest, error) {
	exec := database.QueryerFromContext(ctx, r.db)
	tag, err := exec.Exec(ctx, `UPDATE leaves SET status = $1 WHERE leave_id = $2`, status, id)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, model.ErrLeaveNotFound
	}
	return r.FindByID(ctx, id)
}

func scanLeave(row pgx.Row) (*model.LeaveRequest, error) {
	var (
		l                        model.LeaveRequest
		u                        model.User
		start, end               time.Time
		status, role, userStatus string
	)
	err := row.Scan(&l.ID, &l.UserID, &start, &end, &status, &l.Reason, &l.RejectReason,
		&u.Email, &u.FirstName, &u.LastName, &role, &userStatus, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	l.StartDate = model.DateOf(start)
	l.EndDate = model.DateOf(end)
	l.Status = model.LeaveStatus(status)
	u.ID = l.UserID
	u.Role = model.Role(role)
	u.Status = model.UserStatus(userStatus)
	l.User = &u
	return &l, nil
}
