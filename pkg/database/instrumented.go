package database

import (
	"database/sql"
	"fmt"

	"github.com/XSAM/otelsql"
	_ "github.com/jackc/pgx/v5/stdlib" // Register pgx driver
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"

	"hrms.service/internal/config"
)

// NewInstrumentedConnection opens a database/sql handle whose queries are
// traced by otelsql. Migrations and health checks run through it.
func NewInstrumentedConnection(cfg config.Config) (*sql.DB, error) {
	db, err := otelsql.Open("pgx", cfg.DSN(),
		otelsql.WithAttributes(semconv.DBSystemPostgreSQL),
		otelsql.WithSQLCommenter(true),
	)
	if err != nil {
		return nil, fmt.Errorf("database: open: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("database: ping: %w", err)
	}

	return db, nil
}
