package messaging

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/sqs"
)

// EventPublisher is the output port for domain events.
type EventPublisher interface {
	PublishNotification(ctx context.Context, event NotificationEvent) error
	PublishPayroll(ctx context.Context, event PayrollEvent) error
}

// MessageSender sends raw messages to a messaging system.
type MessageSender interface {
	SendMessage(ctx context.Context, destination string, body []byte) error
}

// SQSClient is the subset of the AWS SQS client used for publishing.
type SQSClient interface {
	SendMessage(ctx context.Context, params *sqs.SendMessageInput, optFns ...func(*sqs.Options)) (*sqs.SendMessageOutput, error)
}
