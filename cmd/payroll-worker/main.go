// Payroll worker: exports recorded salaries to the payroll API.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"hrms.service/internal/config"
	"hrms.service/internal/ports/repository"
	"hrms.service/internal/worker"
	"hrms.service/internal/worker/payroll"
	"hrms.service/internal/worker/payrollapi"
	"hrms.service/pkg/aws"
	"hrms.service/pkg/database"
	"hrms.service/pkg/logger"
	"hrms.service/pkg/telemetry"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Could not load configuration")
	}

	logger.Setup(cfg.IsLocalDev)
	// Amounts leave the process as JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true

	endpoint := cfg.OTelExporterEndpoint
	if cfg.IsLocalDev {
		endpoint = ""
	}
	shutdownTracer, err := telemetry.InitTracer("hrms-payroll-worker", endpoint)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to init tracer")
	}
	defer func() {
		_ = shutdownTracer(context.Background())
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := database.NewPool(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Error opening database")
	}
	defer pool.Close()
	log.Info().Msg("Successfully connected to the database.")

	awsCfg, err := aws.NewAWSConfig(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("unable to load SDK config")
	}

	processor := payroll.NewProcessor(
		repository.NewSalaryStore(pool),
		payrollapi.NewHTTPClient(cfg.PayrollAPIURL),
		payroll.DefaultBreakerSettings(),
	)

	app := worker.NewWorker(sqs.NewFromConfig(awsCfg), cfg.PayrollSQSQueueURL, processor)
	if cfg.WorkerConcurrency > 0 {
		app.Concurrency = cfg.WorkerConcurrency
	}

	done := make(chan struct{})
	go func() {
		app.Start(ctx)
		close(done)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down worker...")

	cancel()
	<-done

	log.Info().Msg("Worker exited gracefully")
}
