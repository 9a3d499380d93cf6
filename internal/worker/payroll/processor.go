package payroll

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
	"github.com/rs/zerolog/log"
	"github.com/sony/gobreaker"

	"hrms.service/internal/core/model"
	"hrms.service/internal/ports/messaging"
	"hrms.service/internal/ports/repository"
	"hrms.service/internal/worker"
	"hrms.service/internal/worker/payrollapi"
)

// Processor exports salary records to the payroll system. Calls go through
// a circuit breaker so an unhealthy payroll API is not hammered.
type Processor struct {
	repo   repository.SalaryRepository
	client payrollapi.Client
	cb     *gobreaker.CircuitBreaker
}

// DefaultBreakerSettings trips after at least 10 requests with a failure
// ratio of 50% or more.
func DefaultBreakerSettings() gobreaker.Settings {
	return gobreaker.Settings{
		Name:        "payroll-api",
		MaxRequests: 5,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 10 && failureRatio >= 0.5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("circuit breaker state changed")
		},
	}
}

func NewProcessor(repo repository.SalaryRepository, client payrollapi.Client, settings gobreaker.Settings) *Processor {
	return &Processor{
		repo:   repo,
		client: client,
		cb:     gobreaker.NewCircuitBreaker(settings),
	}
}

func (p *Processor) Process(ctx context.Context, msg types.Message) (bool, int32, error) {
	var event messaging.PayrollEvent
	if err := json.Unmarshal([]byte(aws.ToString(msg.Body)), &event); err != nil {
		return false, 0, fmt.Errorf("malformed payroll event: %w", err)
	}
	logger := log.Ctx(ctx).With().Int64("salary_id", event.SalaryID).Logger()

	record, err := p.repo.FindByID(ctx, event.SalaryID)
	if errors.Is(err, model.ErrSalaryNotFound) {
		return false, 0, err
	}
	if err != nil {
		return true, worker.Backoff(0), fmt.Errorf("failed to load salary record: %w", err)
	}

	switch record.PayrollStatus {
	case model.PayrollCompleted:
		logger.Info().Msg("salary already exported, skipping")
		return false, 0, nil
	case model.PayrollFailed:
		logger.Warn().Msg("salary export was abandoned, skipping")
		return false, 0, nil
	}

	_, err = p.cb.Execute(func() (any, error) {
		return nil, p.client.RecordSalary(ctx, event)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			logger.Warn().Msg("circuit breaker open, payroll api call skipped")
		}
		retries := record.PayrollRetryCount + 1
		status := model.PayrollPending
		if retries >= worker.MaxAttempts {
			status = model.PayrollFailed
		}
		if uerr := p.repo.UpdatePayrollStatus(ctx, record.ID, status, retries); uerr != nil {
			logger.Error().Err(uerr).Msg("failed to record export attempt")
		}
		if status == model.PayrollFailed {
			logger.Error().Err(err).Int("attempts", retries).Msg("giving up on salary export")
			return false, 0, fmt.Errorf("payroll export failed after %d attempts: %w", retries, err)
		}
		return true, worker.Backoff(retries), fmt.Errorf("payroll export failed: %w", err)
	}

	if err := p.repo.UpdatePayrollStatus(ctx, record.ID, model.PayrollCompleted, record.PayrollRetryCount); err != nil {
		return true, worker.Backoff(0), fmt.Errorf("failed to mark salary exported: %w", err)
	}
	logger.Info().Msg("salary exported")
	return false, 0, nil
}
