// Schema migration tool: migrate [up|down|drop|version]
package main

import (
	"os"

	"github.com/rs/zerolog/log"

	"hrms.service/internal/config"
	"hrms.service/migrations"
	"hrms.service/pkg/database"
	"hrms.service/pkg/logger"
)

func main() {
	action := "up"
	if len(os.Args) > 1 {
		action = os.Args[1]
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Could not load configuration")
	}
	logger.Setup(cfg.IsLocalDev)

	db, err := database.NewInstrumentedConnection(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Error opening database")
	}
	defer db.Close()

	m, err := database.NewMigrator(db, migrations.FS)
	if err != nil {
		log.Fatal().Err(err).Msg("Could not prepare migrations")
	}
	defer m.Close()

	if action == "version" {
		version, dirty, ok, err := m.Version()
		if err != nil {
			log.Fatal().Err(err).Msg("Could not read schema version")
		}
		if !ok {
			log.Info().Msg("No migration applied yet")
			return
		}
		log.Info().Uint("version", version).Bool("dirty", dirty).Msg("Schema version")
		return
	}

	if err := m.Run(action); err != nil {
		log.Fatal().Err(err).Str("action", action).Msg("Migration failed")
	}
	log.Info().Str("action", action).Msg("Migration finished")
}
