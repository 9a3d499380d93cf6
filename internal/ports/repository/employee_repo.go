package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"hrms.service/internal/core/model"
	"hrms.service/pkg/database"
)

const employeeSelect = `
        SELECT e.employee_id, e.user_id, u.email, e.first_name, e.last_name, e.department, e.position,
               e.phone, e.address, e.address2, e.salary::text, e.gender, e.hire_date, e.total_leaves
          FROM employees e
          JOIN users u ON u.user_id = e.user_id`

// EmployeeStore persists employee profiles.
type EmployeeStore struct {
	db database.Queryer
}

func NewEmployeeStore(db database.Queryer) *EmployeeStore {
	return &EmployeeStore{db: db}
}

// Create inserts e. A second profile for the same user is ErrDuplicateProfile.
func (r *EmployeeStore) Create(ctx context.Context, e *model.Employee) (*model.Employee, error) {
	trace.SpanFromContext(ctx).SetAttributes(attribute.Int64("app.user_id", e.UserID))

	exec := database.QueryerFromContext(ctx, r.db)
	var id int64
	err := exec.QueryRow(ctx, `
        INSERT INTO employees (user_id, first_name, last_name, department, position, phone, address, address2, salary, gender, hire_date, total_leaves)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
        RETURNING employee_id`,
		e.UserID, e.FirstName, e.LastName, e.Department, e.Position, e.Phone, e.Address, e.Address2,
		decimalArg(e.Salary), e.Gender, dateArg(e.HireDate), e.TotalLeaves,
	).Scan(&id)
	if err != nil {
		return nil, translatePgError(err, nil, model.ErrDuplicateProfile)
	}
	return r.FindByID(ctx, id)
}

func (r *EmployeeStore) FindByID(ctx context.Context, id int64) (*model.Employee, error) {
	exec := database.QueryerFromContext(ctx, r.db)
	e, err := scanEmployee(exec.QueryRow(ctx, employeeSelect+` WHERE e.employee_id = $1`, id))
	if err != nil {
		return nil, translatePgError(err, model.ErrEmployeeNotFound, nil)
	}
	return e, nil
}

func (r *EmployeeStore) FindByUserEmail(ctx context.Context, email string) (*model.Employee, error) {
	exec := database.QueryerFromContext(ctx, r.db)
	e, err := scanEmployee(exec.QueryRow(ctx, employeeSelect+` WHERE lower(u.email) = lower($1)`, strings.TrimSpace(email)))
	if err != nil {
		return nil, translatePgError(err, model.ErrEmployeeNotFound, nil)
	}
	return e, nil
}

func (r *EmployeeStore) List(ctx context.Context) ([]model.Employee, error) {
	exec := database.QueryerFromContext(ctx, r.db)
	rows, err := exec.Query(ctx, employeeSelect+` ORDER BY e.employee_id`)
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	defer rows.Close()

	var out []model.Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *e)
	}
	return out, rows.Err()
}

// Update overwrites every mutable column of e.
func (r *EmployeeStore) Update(ctx context.Context, e *model.Employee) (*model.Employee, error) {
	exec := database.QueryerFromContext(ctx, r.db)
	tag, err := exec.Exec(ctx, `
        UPDATE employees
           SET first_name = $1, last_name = $2, department = $3, position = $4, phone = $5,
               address = $6, address2 = $7, salary = $8, gender = $9, hire_date = $10, total_leaves = $11
         WHERE employee_id = $12`,
		e.FirstName, e.LastName, e.Department, e.Position, e.Phone,
		e.Address, e.Address2, decimalArg(e.Salary), e.Gender, dateArg(e.HireDate), e.TotalLeaves,
		e.ID,
	)
	if err != nil {
		return nil, translatePgError(err, nil, nil)
	}
	if tag.RowsAffected() == 0 {
		return nil, model.ErrEmployeeNotFound
	}
	return r.FindByID(ctx, e.ID)
}

func (r *EmployeeStore) Delete(ctx context.Context, id int64) error {
	exec := database.QueryerFromContext(ctx, r.db)
	tag, err := exec.Exec(ctx, `DELETE FROM employees WHERE employee_id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return model.ErrEmployeeNotFound
	}
	return nil
}

func scanEmployee(row pgx.Row) (*model.Employee, error) {
	var (
		e        model.Employee
		salary   *string
		hireDate *time.Time
	)
	err := row.Scan(&e.ID, &e.UserID, &e.Email, &e.FirstName, &e.LastName, &e.Department, &e.Position,
		&e.Phone, &e.Address, &e.Address2, &salary, &e.Gender, &hireDate, &e.TotalLeaves)
	if err != nil {
		return nil, err
	}
	if e.Salary, err = decimalPtr(salary); err != nil {
		return nil, fmt.Errorf("scan employee salary: %w", err)
	}
	e.HireDate = datePtr(hireDate)
	return &e, nil
}
