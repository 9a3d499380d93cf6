package notification

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
	"github.com/rs/zerolog/log"

	"hrms.service/internal/core"
	"hrms.service/internal/core/model"
	"hrms.service/internal/ports/messaging"
	"hrms.service/internal/ports/repository"
	"hrms.service/internal/worker"
)

// Processor delivers queued notifications by e-mail.
type Processor struct {
	sender core.EmailSender
	repo   repository.NotificationRepository
}

func NewProcessor(sender core.EmailSender, repo repository.NotificationRepository) *Processor {
	return &Processor{sender: sender, repo: repo}
}

func (p *Processor) Process(ctx context.Context, msg types.Message) (bool, int32, error) {
	var event messaging.NotificationEvent
	if err := json.Unmarshal([]byte(aws.ToString(msg.Body)), &event); err != nil {
		return false, 0, fmt.Errorf("malformed notification event: %w", err)
	}
	logger := log.Ctx(ctx).With().Int64("notification_id", event.NotificationID).Logger()

	n, err := p.repo.FindByID(ctx, event.NotificationID)
	if errors.Is(err, model.ErrNotificationNotFound) {
		return false, 0, err
	}
	if err != nil {
		return true, worker.Backoff(0), fmt.Errorf("failed to load notification: %w", err)
	}

	switch n.Status {
	case model.DeliveryCompleted:
		logger.Info().Msg("notification already delivered, skipping")
		return false, 0, nil
	case model.DeliveryFailed:
		logger.Warn().Msg("notification delivery was abandoned, skipping")
		return false, 0, nil
	}

	if err := p.sender.Send(ctx, n.Recipient, n.Subject, n.Body); err != nil {
		retries := n.RetryCount + 1
		status := model.DeliveryPending
		if retries >= worker.MaxAttempts {
			status = model.DeliveryFailed
		}
		if uerr := p.repo.UpdateStatus(ctx, n.ID, status, retries); uerr != nil {
			logger.Error().Err(uerr).Msg("failed to record delivery attempt")
		}
		if status == model.DeliveryFailed {
			logger.Error().Err(err).Int("attempts", retries).Msg("giving up on notification")
			return false, 0, fmt.Errorf("failed to send notification after %d attempts: %w", retries, err)
		}
		return true, worker.Backoff(retries), fmt.Errorf("failed to send notification: %w", err)
	}

	if err := p.repo.UpdateStatus(ctx, n.ID, model.DeliveryCompleted, n.RetryCount); err != nil {
		return true, worker.Backoff(0), fmt.Errorf("failed to mark notification delivered: %w", err)
	}
	logger.Info().Str("kind", string(n.Kind)).Msg("notification delivered")
	return false, 0, nil
}
