package messaging

import (
	"context"
	"encoding/json"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

type Producer struct {
	sender               MessageSender
	notificationQueueURL string
	payrollQueueURL      string
}

func NewProducer(sender MessageSender, notificationQueueURL, payrollQueueURL string) *Producer {
	return &Producer{
		sender:               sender,
		notificationQueueURL: notificationQueueURL,
		payrollQueueURL:      payrollQueueURL,
	}
}

func NewSQSProducer(client SQSClient, notificationQueueURL, payrollQueueURL string) *Producer {
	return NewProducer(&SQSSender{client: client}, notificationQueueURL, payrollQueueURL)
}

func (p *Producer) PublishNotification(ctx context.Context, event NotificationEvent) error {
	return p.publish(ctx, p.notificationQueueURL, event.UserID, event)
}

func (p *Producer) PublishPayroll(ctx context.Context, event PayrollEvent) error {
	return p.publish(ctx, p.payrollQueueURL, event.UserID, event)
}

func (p *Producer) publish(ctx context.Context, destination string, userID int64, body any) error {
	b, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal body: %w", err)
	}

	if span := trace.SpanFromContext(ctx); span.IsRecording() && userID != 0 {
		span.SetAttributes(attribute.Int64("app.user_id", userID))
	}

	if err := p.sender.SendMessage(ctx, destination, b); err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}
	return nil
}
