package messaging

import (
	"time"

	"github.com/shopspring/decimal"
)

// NotificationEvent is the JSON payload sent via SQS for the notification queue.
type NotificationEvent struct {
	NotificationID int64     `json:"notificationId"`
	UserID         int64     `json:"userId"`
	Kind           string    `json:"kind"`
	OccurredAt     time.Time `json:"occurredAt"`
}

// PayrollEvent is the JSON payload sent via SQS for the payroll queue and
// forwarded as is to the payroll API.
type PayrollEvent struct {
	SalaryID     int64           `json:"salaryId"`
	EmployeeID   int64           `json:"employeeId"`
	UserID       int64           `json:"userId"`
	EmployeeName string          `json:"employeeName"`
	Amount       decimal.Decimal `json:"amount"`
	PaymentDate  string          `json:"paymentDate"`
	Remarks      string          `json:"remarks"`
}
