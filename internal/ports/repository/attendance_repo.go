package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"hrms.service/internal/core/model"
	"hrms.service/pkg/database"
)

const attendanceSelect = `
        SELECT a.attendance_id, a.user_id, a.attendance_date, a.status, a.check_in, a.check_out, a.remarks,
               u.email, u.first_name, u.last_name, u.role, u.status, u.created_at
          FROM attendance a
          JOIN users u ON u.user_id = a.user_id`

// AttendanceStore persists attendance marks. The (user_id, attendance_date)
// unique constraint backs the one-mark-per-day rule.
type AttendanceStore struct {
	db database.Queryer
}

func NewAttendanceStore(db database.Queryer) *AttendanceStore {
	return &AttendanceStore{db: db}
}

func (r *AttendanceStore) Create(ctx context.Context, rec *model.AttendanceRecord) (*model.AttendanceRecord, error) {
	trace.SpanFromContext(ctx).SetAttributes(attribute.Int64("app.user_id", rec.UserID))

	exec := database.QueryerFromContext(ctx, r.db)
	var id int64
	err := exec.QueryRow(ctx, `
        INSERT INTO attendance (user_id, attendance_date, status, check_in, check_out, remarks)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING attendance_id`,
		rec.UserID, rec.Date.Time, rec.Status, rec.CheckIn, rec.CheckOut, rec.Remarks,
	).Scan(&id)
	if err != nil {
		return nil, translatePgError(err, nil, model.ErrDuplicateRecord)
	}

	created := *rec
	created.ID = id
	return &created, nil
}

func (r *AttendanceStore) ExistsForDate(ctx context.Context, userID int64, date model.Date) (bool, error) {
	exec := database.QueryerFromContext(ctx, r.db)
	var exists bool
	err := exec.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM attendance WHERE user_id = $1 AND attendance_date = $2)`,
		userID, date.Time,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check attendance: %w", err)
	}
	return exists, nil
}

func (r *AttendanceStore) List(ctx context.Context) ([]model.AttendanceRecord, error) {
	return r.list(ctx, attendanceSelect+` ORDER BY a.attendance_date DESC, a.attendance_id DESC`)
}

func (r *AttendanceStore) ListByUser(ctx context.Context, userID int64) ([]model.AttendanceRecord, error) {
	return r.list(ctx, attendanceSelect+` WHERE a.user_id = $1 ORDER BY a.attendance_date DESC, a.attendance_id DESC`, userID)
}

func (r *AttendanceStore) list(ctx context.Context, query string, args ...any) ([]model.AttendanceRecord, error) {
	exec := database.QueryerFromContext(ctx, r.db)
	rows, err := exec.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list attendance: %w", err)
	}
	defer rows.Close()

	var out []model.AttendanceRecord
	for rows.Next() {
		rec, err := scanAttendance(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *rec)
	}
	return out, rows.Err()
}

func scanAttendance(row pgx.Row) (*model.AttendanceRecord, error) {
	var (
		rec                      model.AttendanceRecord
		u                        model.User
		date                     time.Time
		status, role, userStatus string
	)
	err := row.Scan(&rec.ID, &rec.UserID, &date, &status, &rec.CheckIn, &rec.CheckOut, &rec.Remarks,
		&u.Email, &u.FirstName, &u.LastName, &role, &userStatus, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	rec.Date = model.DateOf(date)
	rec.Status = model.AttendanceStatus(status)
	u.ID = rec.UserID
	u.Role = model.Role(role)
	u.Status = model.UserStatus(userStatus)
	rec.User = &u
	return &rec, nil
}
