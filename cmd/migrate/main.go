// migrate aplica as migrações goose embutidas no binário.
//
// Uso: go run ./cmd/migrate [up|version]
package main

import (
	"os"

	"github.com/jhoicas/decora-api/internal/infrastructure/postgres"
	"github.com/jhoicas/decora-api/pkg/config"
	"github.com/jhoicas/decora-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("carregar configuração: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel}).Component("migrate")

	cmd := "up"
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}
	dsn := cfg.DB.ConnectionString()

	switch cmd {
	case "up":
		if err := postgres.Migrate(dsn); err != nil {
			log.Fatal().Err(err).Msg("aplicar migrações")
		}
		fallthrough
	case "version":
		v, err := postgres.MigrationVersion(dsn)
		if err != nil {
			log.Fatal().Err(err).Msg("consultar versão")
		}
		log.Info().Int64("version", v).Msg("banco atualizado")
	default:
		log.Fatal().Str("cmd", cmd).Msg("comando desconhecido: use up ou version")
	}
}
