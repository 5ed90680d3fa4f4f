package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/iamasit07/connect4-cli/internal/config"
	"github.com/iamasit07/connect4-cli/internal/logging"
	"github.com/iamasit07/connect4-cli/internal/repository/file"
	"github.com/iamasit07/connect4-cli/internal/repository/postgres"
	"github.com/iamasit07/connect4-cli/internal/repository/redis"
	"github.com/iamasit07/connect4-cli/internal/service/bot"
	"github.com/iamasit07/connect4-cli/internal/service/game"
	"github.com/iamasit07/connect4-cli/internal/transport/cli"
)

func main() {
	// .env is optional, the process environment is enough
	_ = godotenv.Load()

	cfg := config.LoadConfig()

	backend := flag.String("backend", cfg.StoreBackend, "save backend: file, redis or postgres")
	dir := flag.String("dir", cfg.SaveDir, "directory for file saves")
	difficulty := flag.String("difficulty", cfg.AIDifficulty, "default ai difficulty: easy or medium")
	flag.Parse()
	cfg.StoreBackend = strings.ToLower(*backend)
	cfg.SaveDir = *dir
	cfg.AIDifficulty = *difficulty

	logger, err := logging.New(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := openStore(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("failed to open save store", zap.Error(err))
	}
	defer closeStore()

	svc := game.NewService(store, bot.NewAgent(nil), cfg.ReplayDelay, logger)
	handler := cli.NewHandler(svc, os.Stdin, os.Stdout, cli.Options{
		Difficulty:     bot.ParseDifficulty(cfg.AIDifficulty),
		ExitOnGameOver: cfg.ExitOnGameOver,
		ClearScreen:    cfg.ClearScreen,
		Color:          cfg.Color,
	}, logger)

	logger.Info("session started",
		zap.String("game_id", svc.GameID()),
		zap.String("backend", cfg.StoreBackend),
	)
	if err := handler.Run(ctx); err != nil {
		logger.Error("input error", zap.Error(err))
	}
}

// openStore builds the configured backend. Redis and Postgres fall back to the
// file store when they cannot be reached.
func openStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (game.Store, func(), error) {
	noop := func() {}

	switch cfg.StoreBackend {
	case config.BackendRedis:
		client, err := redis.InitRedis(ctx, cfg.RedisURL, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			logger.Warn("redis unavailable, using file saves", zap.Error(err))
			break
		}
		cache := redis.NewRedisCache(client, logger)
		closer := func() {
			if err := cache.Close(); err != nil {
				logger.Warn("failed to close redis", zap.Error(err))
			}
		}
		return redis.NewSaveStore(cache, cfg.SaveTTL, logger), closer, nil

	case config.BackendPostgres:
		db, err := postgres.InitDB(ctx, cfg.DatabaseURL, cfg.DBMaxOpenConns, cfg.DBMaxIdleConns, cfg.DBConnMaxLifetimeMin)
		if err != nil {
			logger.Warn("postgres unavailable, using file saves", zap.Error(err))
			break
		}
		if err := postgres.RunMigrations(ctx, db); err != nil {
			db.Close()
			return nil, noop, err
		}
		return postgres.NewGameRepo(db, logger), func() { db.Close() }, nil
	}

	store, err := file.NewStore(cfg.SaveDir, logger)
	if err != nil {
		return nil, noop, err
	}
	logger.Info("saving games as files", zap.String("dir", store.Dir()))
	return store, noop, nil
}
