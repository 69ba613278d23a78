package main

import (
	"context"
	"os"

	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/briangreenhill/fitcoach/internal/config"
	"github.com/briangreenhill/fitcoach/internal/jobs"
	"github.com/briangreenhill/fitcoach/internal/store"
)

func main() {
	_ = godotenv.Load()
	logger := zerolog.New(os.Stdout).With().Timestamp().Str("component", "worker").Logger()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("load config")
	}
	if !cfg.HasDatabase() {
		logger.Fatal().Msg("DATABASE_URL is required for the worker")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("unable to connect to database")
	}
	defer pool.Close()

	q := store.New(pool)
	if err := q.Migrate(ctx); err != nil {
		logger.Fatal().Err(err).Msg("migrate")
	}

	srv := asynq.NewServer(asynq.RedisClientOpt{Addr: cfg.RedisAddr}, asynq.Config{
		Concurrency:    4,
		StrictPriority: false,
		Queues: map[string]int{
			jobs.QueueArchive: 5,
			"default":         1,
		},
	})
	mux := asynq.NewServeMux()
	mux.Handle(jobs.TaskArchivePlan, jobs.NewArchiveHandler(q, logger))

	logger.Info().Msg("worker running")
	if err := srv.Run(mux); err != nil {
		logger.Fatal().Err(err).Msg("worker stopped")
	}
}
