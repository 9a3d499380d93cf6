package core

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"hrms.service/pkg/telemetry"
)

// EmailSender delivers a plain-text e-mail.
type EmailSender interface {
	Send(ctx context.Context, to, subject, body string) error
}

// SESClient is the subset of the SES client used for sending.
type SESClient interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

type SESEmailSender struct {
	client SESClient
	sender string
}

func NewSESEmailSender(client SESClient, sender string) *SESEmailSender {
	return &SESEmailSender{client: client, sender: sender}
}

func (s *SESEmailSender) Send(ctx context.Context, to, subject, body string) error {
	tracer := otel.Tracer("ses-email-sender")
	ctx, span := tracer.Start(ctx, "send_email", trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()

	if userID := telemetry.GetUserIDFromContext(ctx); userID != "" {
		span.SetAttributes(attribute.String("app.user_id", userID))
	}

	_, err := s.client.SendEmail(ctx, &ses.SendEmailInput{
		Source: aws.String(s.sender),
		Destination: &types.Destination{
			ToAddresses: []string{to},
		},
		Message: &types.Message{
			Subject: &types.Content{Data: aws.String(subject)},
			Body: &types.Body{
				Text: &types.Content{Data: aws.String(body)},
			},
		},
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "ses send failed")
	}
	return err
}
