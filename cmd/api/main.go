// Entry point for REST API
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"hrms.service/internal/api"
	"hrms.service/internal/config"
	"hrms.service/internal/core"
	"hrms.service/internal/ports/messaging"
	"hrms.service/internal/ports/repository"
	"hrms.service/migrations"
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

	shutdownTracer, err := telemetry.InitTracer("hrms-api", otelEndpoint(cfg))
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to init tracer")
	}
	defer func() {
		_ = shutdownTracer(context.Background())
	}()

	ctx := context.Background()

	if cfg.AutoMigrate {
		if err := migrateUp(cfg); err != nil {
			log.Fatal().Err(err).Msg("Database migration failed")
		}
	}

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

	loc, err := cfg.Location()
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid timezone")
	}
	weekend, err := cfg.Weekend()
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid weekend days")
	}
	clock := core.NewClock(loc)
	tx := database.NewTransactionManager(pool)
	producer := messaging.NewSQSProducer(sqs.NewFromConfig(awsCfg), cfg.NotificationSQSQueueURL, cfg.PayrollSQSQueueURL)

	users := repository.NewUserStore(pool)
	employees := repository.NewEmployeeStore(pool)
	notifier := core.NewNotificationService(repository.NewNotificationStore(pool), producer, clock)

	router := api.NewRouter(api.Services{
		Users:      core.NewUserService(users, core.BcryptHasher{}, clock, cfg.Reserved()),
		Approval:   core.NewApprovalService(users, employees, tx, notifier),
		Attendance: core.NewAttendanceService(users, repository.NewAttendanceStore(pool), tx, clock, weekend),
		Leaves:     core.NewLeaveService(users, repository.NewLeaveStore(pool), tx, notifier),
		Salaries:   core.NewSalaryService(employees, repository.NewSalaryStore(pool), tx, producer),
		Employees:  core.NewEmployeeService(users, employees, tx),
		Staff:      core.NewStaffService(users, repository.NewAdminStore(pool), repository.NewHrManagerStore(pool), tx),
		DB:         pool,
	})

	// Spans are created before the logger middleware runs so log lines carry
	// the trace id.
	handler := otelhttp.NewHandler(api.WithCORS(cfg.CORSAllowedOrigin)(api.WithRequestLogger(router)), "api")

	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.ServerPort).Msg("API Service starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("listen")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exiting")
}

// otelEndpoint sends spans to stdout in local development.
func otelEndpoint(cfg config.Config) string {
	if cfg.IsLocalDev {
		return ""
	}
	return cfg.OTelExporterEndpoint
}

func migrateUp(cfg config.Config) error {
	db, err := database.NewInstrumentedConnection(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	m, err := database.NewMigrator(db, migrations.FS)
	if err != nil {
		return err
	}
	defer m.Close()

	if err := m.Run("up"); err != nil {
		return err
	}
	log.Info().Msg("Database schema is up to date.")
	return nil
}
