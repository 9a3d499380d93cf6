package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"hrms.service/internal/core/model"
	"hrms.service/pkg/database"
)

const salarySelect = `
        SELECT s.salary_id, s.employee_id, trim(e.first_name || ' ' || e.last_name), s.amount::text,
               s.payment_date, s.remarks, s.payroll_status, s.payroll_retry_count
          FROM salaries s
          JOIN employees e ON e.employee_id = s.employee_id`

// SalaryStore is the append-only salary ledger. Only the payroll export
// columns are ever updated.
type SalaryStore struct {
	db database.Queryer
}

func NewSalaryStore(db database.Queryer) *SalaryStore {
	return &SalaryStore{db: db}
}

func (r *SalaryStore) Create(ctx context.Context, s *model.SalaryRecord) (*model.SalaryRecord, error) {
	exec := database.QueryerFromContext(ctx, r.db)
	var id int64
	err := exec.QueryRow(ctx, `
        INSERT INTO salaries (employee_id, amount, payment_date, remarks, payroll_status, payroll_retry_count)
        VALUES ($1, $2, $3, $4, $5, 0)
        RETURNING salary_id`,
		s.EmployeeID, s.Amount.String(), s.PaymentDate.Time, s.Remarks, model.PayrollPending,
	).Scan(&id)
	if err != nil {
		return nil, translatePgError(err, nil, nil)
	}
	return r.FindByID(ctx, id)
}

func (r *SalaryStore) FindByID(ctx context.Context, id int64) (*model.SalaryRecord, error) {
	exec := database.QueryerFromContext(ctx, r.db)
	s, err := scanSalary(exec.QueryRow(ctx, salarySelect+` WHERE s.salary_id = $1`, id))
	if err != nil {
		return nil, translatePgError(err, model.ErrSalaryNotFound, nil)
	}
	return s, nil
}

func (r *SalaryStore) List(ctx context.Context) ([]model.SalaryRecord, error) {
	return r.list(ctx, salarySelect+` ORDER BY s.payment_date DESC, s.salary_id DESC`)
}

func (r *SalaryStore) ListByEmployee(ctx context.Context, employeeID int64) ([]model.SalaryRecord, error) {
	return r.list(ctx, salarySelect+` WHERE s.employee_id = $1 ORDER BY s.payment_date DESC, s.salary_id DESC`, employeeID)
}

// UpdatePayrollStatus updates the status and retry count of the payroll export.
func (r *SalaryStore) UpdatePayrollStatus(ctx context.Context, id int64, status model.PayrollStatus, retryCount int) error {
	exec := database.QueryerFromContext(ctx, r.db)
	_, err := exec.Exec(ctx,
		`UPDATE salaries SET payroll_status = $1, payroll_retry_count = $2 WHERE salary_id = $3`,
		status, retryCount, id)
	return err
}

func (r *SalaryStore) list(ctx context.Context, query string, args ...any) ([]model.SalaryRecord, error) {
	exec := database.QueryerFromContext(ctx, r.db)
	rows, err := exec.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list salaries: %w", err)
	}
	defer rows.Close()

	var out []model.SalaryRecord
	for rows.Next() {
		s, err := scanSalary(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *s)
	}
	return out, rows.Err()
}

func scanSalary(row pgx.Row) (*model.SalaryRecord, error) {
	var (
		s              model.SalaryRecord
		amount, status string
		paid           time.Time
	)
	err := row.Scan(&s.ID, &s.EmployeeID, &s.EmployeeName, &amount, &paid, &s.Remarks, &status, &s.PayrollRetryCount)
	if err != nil {
		return nil, err
	}
	if s.Amount, err = decimal.NewFromString(amount); err != nil {
		return nil, fmt.Errorf("scan salary amount: %w", err)
	}
	s.PaymentDate = model.DateOf(paid)
	s.PayrollStatus = model.PayrollStatus(status)
	return &s, nil
}
