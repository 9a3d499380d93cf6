package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"hrms.service/internal/core/model"
	"hrms.service/pkg/database"
)

const notificationColumns = `notification_id, user_id, recipient, kind, subject, body, status, retry_count, created_at`

// NotificationStore is the outbox read by the notification worker.
type NotificationStore struct {
	db database.Queryer
}

func NewNotificationStore(db database.Queryer) *NotificationStore {
	return &NotificationStore{db: db}
}

func (r *NotificationStore) Create(ctx context.Context, n *model.Notification) (*model.Notification, error) {
	exec := database.QueryerFromContext(ctx, r.db)
	row := exec.QueryRow(ctx, `
        INSERT INTO notifications (user_id, recipient, kind, subject, body, status, retry_count, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, 0, $7)
        RETURNING `+notificationColumns,
		n.UserID, n.Recipient, n.Kind, n.Subject, n.Body, model.DeliveryPending, n.CreatedAt)
	return scanNotification(row)
}

func (r *NotificationStore) FindByID(ctx context.Context, id int64) (*model.Notification, error) {
	exec := database.QueryerFromContext(ctx, r.db)
	n, err := scanNotification(exec.QueryRow(ctx, `SELECT `+notificationColumns+` FROM notifications WHERE notification_id = $1`, id))
	if err != nil {
		return nil, translatePgError(err, model.ErrNotificationNotFound, nil)
	}
	return n, nil
}

// UpdateStatus updates the status and retry count of a delivery.
func (r *NotificationStore) UpdateStatus(ctx context.Context, id int64, status model.DeliveryStatus, retryCount int) error {
	exec := database.QueryerFromContext(ctx, r.db)
	_, err := exec.Exec(ctx, `UPDATE notifications SET status = $1, retry_count = $2 WHERE notification_id = $3`, status, retryCount, id)
	return err
}

func scanNotification(row pgx.Row) (*model.Notification, error) {
	var (
		n            model.Notification
		kind, status string
	)
	if err := row.Scan(&n.ID, &n.UserID, &n.Recipient, &kind, &n.Subject, &n.Body, &status, &n.RetryCount, &n.CreatedAt); err != nil {
		return nil, err
	}
	n.Kind = model.NotificationKind(kind)
	n.Status = model.DeliveryStatus(status)
	return &n, nil
}
