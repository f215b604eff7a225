// migrate aplica las migraciones SQL embebidas sobre la base configurada.
//
// Uso: go run ./cmd/migrate
// Lee DATABASE_URL (o DB_HOST, DB_PORT, ...) desde el entorno o desde .env.
package main

import (
	"context"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/chauhanravicr7-netizen/dockside-backend/internal/infrastructure/postgres"
	"github.com/chauhanravicr7-netizen/dockside-backend/pkg/config"
	"github.com/chauhanravicr7-netizen/dockside-backend/pkg/logger"
)

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		panic("leer .env: " + err.Error())
	}
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Service: "migrate"})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	n, err := postgres.Migrate(ctx, pool)
	if err != nil {
		log.Error().Err(err).Msg("migraciones")
		pool.Close()
		os.Exit(1)
	}
	log.Info().Int("aplicadas", n).Msg("migraciones al día")
}
