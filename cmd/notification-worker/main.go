// Notification worker: delivers queued notifications through SES.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/rs/zerolog/log"

	"hrms.service/internal/config"
	"hrms.service/internal/core"
	"hrms.service/internal/ports/repository"
	"hrms.service/internal/worker"
	"hrms.service/internal/worker/notification"
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

	endpoint := cfg.OTelExporterEndpoint
	if cfg.IsLocalDev {
		endpoint = ""
	}
	shutdownTracer, err := telemetry.InitTracer("hrms-notification-worker", endpoint)
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

	sender := core.NewSESEmailSender(ses.NewFromConfig(awsCfg), cfg.EmailSender)
	processor := notification.NewProcessor(sender, repository.NewNotificationStore(pool))

	app := worker.NewWorker(sqs.NewFromConfig(awsCfg), cfg.NotificationSQSQueueURL, processor)
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
