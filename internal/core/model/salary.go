package model

import (
	"github.com/shopspring/decimal"
)

// PayrollStatus tracks the export of a salary record to the payroll system.
type PayrollStatus string

const (
	PayrollPending   PayrollStatus = "PENDING"
	PayrollCompleted PayrollStatus = "COMPLETED"
	PayrollFailed    PayrollStatus = "FAILED"
)

type SalaryRecord struct {
	ID                int64           `json:"salaryId"`
	EmployeeID        int64           `json:"employeeId"`
	EmployeeName      string          `json:"employeeName,omitempty"`
	Amount            decimal.Decimal `json:"amount"`
	PaymentDate       Date            `json:"paymentDate"`
	Remarks           string          `json:"remarks"`
	PayrollStatus     PayrollStatus   `json:"-"`
	PayrollRetryCount int             `json:"-"`
}
