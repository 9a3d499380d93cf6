package repository

import (
	"context"

	"hrms.service/internal/core/model"
)

// UserRepository is the credential store.
type UserRepository interface {
	Create(ctx context.Context, u *model.User) (*model.User, error)
	FindByID(ctx context.Context, id int64) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	UpdateStatus(ctx context.Context, id int64, from, to model.UserStatus) (*model.User, error)
	ListByRoleAndStatus(ctx context.Context, role model.Role, status model.UserStatus) ([]model.User, error)
}

type EmployeeRepository interface {
	Create(ctx context.Context, e *model.Employee) (*model.Employee, error)
	FindByID(ctx context.Context, id int64) (*model.Employee, error)
	FindByUserEmail(ctx context.Context, email string) (*model.Employee, error)
	List(ctx context.Context) ([]model.Employee, error)
	Update(ctx context.Context, e *model.Employee) (*model.Employee, error)
	Delete(ctx context.Context, id int64) error
}

type AdminRepository interface {
	Create(ctx context.Context, a *model.Admin) (*model.Admin, error)
	FindByID(ctx context.Context, id int64) (*model.Admin, error)
	List(ctx context.Context) ([]model.Admin, error)
	Update(ctx context.Context, a *model.Admin) (*model.Admin, error)
	Delete(ctx context.Context, id int64) error
}

type HrManagerRepository interface {
	Create(ctx context.Context, h *model.HrManager) (*model.HrManager, error)
	FindByID(ctx context.Context, id int64) (*model.HrManager, error)
	List(ctx context.Context) ([]model.HrManager, error)
	Update(ctx context.Context, h *model.HrManager) (*model.HrManager, error)
	Delete(ctx context.Context, id int64) error
}

type AttendanceRepository interface {
	Create(ctx context.Context, rec *model.AttendanceRecord) (*model.AttendanceRecord, error)
	ExistsForDate(ctx context.Context, userID int64, date model.Date) (bool, error)
	List(ctx context.Context) ([]model.AttendanceRecord, error)
	ListByUser(ctx context.Context, userID int64) ([]model.AttendanceRecord, error)
}

type LeaveRepository interface {
	Create(ctx context.Context, l *model.LeaveRequest) (*model.LeaveRequest, error)
	FindByID(ctx context.Context, id int64) (*model.LeaveRequest, error)
	List(ctx context.Context) ([]model.LeaveRequest, error)
	UpdateStatus(ctx context.Context, id int64, status model.LeaveStatus) (*model.LeaveRequest, error)
}

type SalaryRepository interface {
	Create(ctx context.Context, s *model.SalaryRecord) (*model.SalaryRecord, error)
	FindByID(ctx context.Context, id int64) (*model.SalaryRecord, error)
	List(ctx context.Context) ([]model.SalaryRecord, error)
	ListByEmployee(ctx context.Context, employeeID int64) ([]model.SalaryRecord, error)
	UpdatePayrollStatus(ctx context.Context, id int64, status model.PayrollStatus, retryCount int) error
}

type NotificationRepository interface {
	Create(ctx context.Context, n *model.Notification) (*model.Notification, error)
	FindByID(ctx context.Context, id int64) (*model.Notification, error)
	UpdateStatus(ctx context.Context, id int64, status model.DeliveryStatus, retryCount int) error
}
