package core

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"hrms.service/internal/core/model"
	"hrms.service/internal/ports/messaging"
	"hrms.service/internal/ports/repository"
)

// SalaryService appends salary records and queues them for payroll export.
type SalaryService struct {
	employees repository.EmployeeRepository
	salaries  repository.SalaryRepository
	tx        TransactionManager
	publisher messaging.EventPublisher
}

func NewSalaryService(employees repository.EmployeeRepository, salaries repository.SalaryRepository, tx TransactionManager, publisher messaging.EventPublisher) *SalaryService {
	return &SalaryService{
		employees: employees,
		salaries:  salaries,
		tx:        txOrNoop(tx),
		publisher: publisher,
	}
}

// SaveForEmployee appends a record for an existing employee. Amount and date
// are stored as given.
func (s *SalaryService) SaveForEmployee(ctx context.Context, employeeID int64, amount decimal.Decimal, paymentDate model.Date, remarks string) (*model.SalaryRecord, error) {
	var (
		employee *model.Employee
		record   *model.SalaryRecord
	)
	err := s.tx.WithinReadWrite(ctx, func(ctx context.Context) error {
		var err error
		if employee, err = s.employees.FindByID(ctx, employeeID); err != nil {
			return err
		}
		record, err = s.salaries.Create(ctx, &model.SalaryRecord{
			EmployeeID:    employee.ID,
			Amount:        amount,
			PaymentDate:   paymentDate,
			Remarks:       strings.TrimSpace(remarks),
			PayrollStatus: model.PayrollPending,
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	logger := log.Ctx(ctx).With().Int64("salary_id", record.ID).Int64("employee_id", employee.ID).Logger()
	logger.Info().Str("amount", record.Amount.StringFixed(2)).Msg("salary recorded")

	if s.publisher != nil {
		event := messaging.PayrollEvent{
			SalaryID:     record.ID,
			EmployeeID:   employee.ID,
			UserID:       employee.UserID,
			EmployeeName: employee.FullName(),
			Amount:       record.Amount,
			PaymentDate:  record.PaymentDate.String(),
			Remarks:      record.Remarks,
		}
		if err := s.publisher.PublishPayroll(ctx, event); err != nil {
			logger.Error().Err(err).Msg("failed to queue payroll export")
		}
	}
	return record, nil
}

func (s *SalaryService) List(ctx context.Context) ([]model.SalaryRecord, error) {
	return s.salaries.List(ctx)
}

func (s *SalaryService) ListByEmployee(ctx context.Context, employeeID int64) ([]model.SalaryRecord, error) {
	return s.salaries.ListByEmployee(ctx, employeeID)
}
