package core

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"hrms.service/internal/core/model"
	"hrms.service/internal/ports/messaging"
	"hrms.service/internal/ports/repository"
)

// NotificationService writes notifications to the outbox table and queues
// them for the notification worker.
type NotificationService struct {
	repo      repository.NotificationRepository
	publisher messaging.EventPublisher
	clock     Clock
}

func NewNotificationService(repo repository.NotificationRepository, publisher messaging.EventPublisher, clock Clock) *NotificationService {
	if clock == nil {
		clock = NewClock(nil)
	}
	return &NotificationService{repo: repo, publisher: publisher, clock: clock}
}

// Notify implements Notifier. Failures are logged only.
func (s *NotificationService) Notify(ctx context.Context, user model.User, kind model.NotificationKind, detail string) {
	subject, body := composeNotification(user, kind, detail)
	n := &model.Notification{
		UserID:    user.ID,
		Recipient: user.Email,
		Kind:      kind,
		Subject:   subject,
		Body:      body,
		Status:    model.DeliveryPending,
		CreatedAt: s.clock.Now().UTC(),
	}
	if _, err := s.Queue(ctx, n); err != nil {
		log.Ctx(ctx).Error().Err(err).
			Int64("user_id", user.ID).
			Str("kind", string(kind)).
			Msg("failed to queue notification")
	}
}

// Queue stores n and publishes its event. The stored row is returned even
// when publishing fails.
func (s *NotificationService) Queue(ctx context.Context, n *model.Notification) (*model.Notification, error) {
	stored, err := s.repo.Create(ctx, n)
	if err != nil {
		return nil, fmt.Errorf("store notification: %w", err)
	}
	if s.publisher == nil {
		return stored, nil
	}

	err = s.publisher.PublishNotification(ctx, messaging.NotificationEvent{
		NotificationID: stored.ID,
		UserID:         stored.UserID,
		Kind:           string(stored.Kind),
		OccurredAt:     stored.CreatedAt,
	})
	if err != nil {
		return stored, fmt.Errorf("publish notification %d: %w", stored.ID, err)
	}
	return stored, nil
}

func composeNotification(user model.User, kind model.NotificationKind, detail string) (subject, body string) {
	name := user.FullName()
	if name == "" {
		name = user.Email
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Hello %s,\n\n", name)
	switch kind {
	case model.NotifyAccountApproved:
		subject = "Your account has been approved"
		b.WriteString("Your registration was approved. You can now sign in.")
	case model.NotifyAccountRejected:
		subject = "Your registration was not approved"
		b.WriteString("Your registration was not approved.")
		if detail != "" {
			fmt.Fprintf(&b, "\nReason: %s", detail)
		}
	case model.NotifyLeaveApproved:
		subject = "Leave request approved"
		fmt.Fprintf(&b, "Your leave request (%s) was approved.", detail)
	case model.NotifyLeaveRejected:
		subject = "Leave request rejected"
		fmt.Fprintf(&b, "Your leave request (%s) was rejected.", detail)
	default:
		subject = "Notification"
		b.WriteString(detail)
	}
	return subject, b.String()
}
