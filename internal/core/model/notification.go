package model

import "time"

type NotificationKind string

const (
	NotifyAccountApproved NotificationKind = "ACCOUNT_APPROVED"
	NotifyAccountRejected NotificationKind = "ACCOUNT_REJECTED"
	NotifyLeaveApproved   NotificationKind = "LEAVE_APPROVED"
	NotifyLeaveRejected   NotificationKind = "LEAVE_REJECTED"
)

// DeliveryStatus defines the state of a notification delivery.
type DeliveryStatus string

const (
	DeliveryPending   DeliveryStatus = "PENDING"
	DeliveryCompleted DeliveryStatus = "COMPLETED"
	DeliveryFailed    DeliveryStatus = "FAILED"
)

type Notification struct {
	ID         int64
	UserID     int64
	Recipient  string
	Kind       NotificationKind
	Subject    string
	Body       string
	Status     DeliveryStatus
	RetryCount int
	CreatedAt  time.Time
}
