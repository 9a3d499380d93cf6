package worker

import (
	"context"
	"errors"
	"math"
	"sync"

	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
	"github.com/rs/zerolog/log"

	"hrms.service/pkg/logger"
	"hrms.service/pkg/telemetry"
)

type SQSClient interface {
	ReceiveMessage(ctx context.Context, params *sqs.ReceiveMessageInput, optFns ...func(*sqs.Options)) (*sqs.ReceiveMessageOutput, error)
	DeleteMessage(ctx context.Context, params *sqs.DeleteMessageInput, optFns ...func(*sqs.Options)) (*sqs.DeleteMessageOutput, error)
	ChangeMessageVisibility(ctx context.Context, params *sqs.ChangeMessageVisibilityInput, optFns ...func(*sqs.Options)) (*sqs.ChangeMessageVisibilityOutput, error)
}

// Processor handles one queue message. shouldRetry with a non-nil error
// keeps the message on the queue, hidden for retryDelay seconds.
type Processor interface {
	Process(ctx context.Context, msg types.Message) (shouldRetry bool, retryDelay int32, err error)
}

// Worker polls one SQS queue and fans messages out to a fixed pool of
// processor goroutines.
type Worker struct {
	client    SQSClient
	queueURL  string
	processor Processor
	// Concurrency is both the pool size and the receive batch size (max 10).
	Concurrency int
	// WaitTimeSeconds is the long-poll duration.
	WaitTimeSeconds int32
}

func NewWorker(client SQSClient, url string, proc Processor) *Worker {
	return &Worker{
		client:          client,
		queueURL:        url,
		processor:       proc,
		Concurrency:     10,
		WaitTimeSeconds: 20,
	}
}

// Start polls until ctx is cancelled, then waits for in-flight messages.
func (w *Worker) Start(ctx context.Context) {
	concurrency := max(w.Concurrency, 1)
	log.Info().Str("queue", w.queueURL).Int("concurrency", concurrency).Msg("SQS worker started")

	messagesCh := make(chan types.Message, concurrency)

	var wg sync.WaitGroup
	for i := 0; i < concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			w.processMessages(ctx, messagesCh)
		}()
	}

	w.pollMessages(ctx, messagesCh, concurrency)
	wg.Wait()
	log.Info().Str("queue", w.queueURL).Msg("SQS worker stopped")
}

func (w *Worker) pollMessages(ctx context.Context, messagesCh chan<- types.Message, batch int) {
	defer close(messagesCh)

	for {
		if ctx.Err() != nil {
			return
		}

		output, err := w.client.ReceiveMessage(ctx, &sqs.ReceiveMessageInput{
			QueueUrl:              &w.queueURL,
			MaxNumberOfMessages:   int32(min(batch, 10)),
			WaitTimeSeconds:       w.WaitTimeSeconds,
			MessageAttributeNames: []string{"All"},
		})
		if err != nil {
			if errors.Is(err, context.Canceled) || ctx.Err() != nil {
				return
			}
			log.Error().Err(err).Str("queue", w.queueURL).Msg("error receiving messages")
			continue
		}
		if len(output.Messages) > 0 {
			log.Debug().Int("count", len(output.Messages)).Msg("received messages")
		}
		for _, msg := range output.Messages {
			select {
			case messagesCh <- msg:
			case <-ctx.Done():
				return
			}
		}
	}
}

func (w *Worker) processMessages(ctx context.Context, messagesCh <-chan types.Message) {
	for msg := range messagesCh {
		w.handleSingleMessage(ctx, msg)
	}
}

// handleSingleMessage deletes the message on success, hides it for the
// retry delay on a transient failure and leaves it alone otherwise.
func (w *Worker) handleSingleMessage(ctx context.Context, msg types.Message) {
	ctx, span := telemetry.StartSpanFromSQSMessage(ctx, msg)
	defer span.End()

	ctx = logger.EnrichContextWithLogger(ctx)

	shouldRetry, retryDelay, err := w.processor.Process(ctx, msg)

	switch {
	case err == nil:
		if _, derr := w.client.DeleteMessage(ctx, &sqs.DeleteMessageInput{
			QueueUrl:      &w.queueURL,
			ReceiptHandle: msg.ReceiptHandle,
		}); derr != nil {
			log.Ctx(ctx).Error().Err(derr).Msg("failed to delete processed message")
		}
	case shouldRetry:
		log.Ctx(ctx).Warn().Err(err).Int32("retry_delay", retryDelay).Msg("processing failed, will retry")
		if _, verr := w.client.ChangeMessageVisibility(ctx, &sqs.ChangeMessageVisibilityInput{
			QueueUrl:          &w.queueURL,
			ReceiptHandle:     msg.ReceiptHandle,
			VisibilityTimeout: retryDelay,
		}); verr != nil {
			log.Ctx(ctx).Error().Err(verr).Msg("failed to change message visibility")
		}
	default:
		log.Ctx(ctx).Error().Err(err).Msg("unrecoverable error processing message, will not retry")
	}
}

// MaxAttempts is the number of failed deliveries after which a message is
// marked FAILED and no longer retried.
const MaxAttempts = 10

// Backoff is the retry delay in seconds after retryCount failures:
// 10s doubled per failure, capped at one hour.
func Backoff(retryCount int) int32 {
	backoff := math.Pow(2, float64(retryCount)) * 10
	if backoff > 3600 {
		return 3600
	}
	return int32(backoff)
}
