package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"blocus/internal/config"
	"blocus/internal/handler"
	"blocus/internal/middleware"
	"blocus/internal/repository/postgres"
	"blocus/internal/service"

	"github.com/golang-migrate/migrate/v4"
	postgresdb "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

const (
	dbMaxRetries    = 30
	dbRetryDelay    = 2 * time.Second
	cleanupInterval = 24 * time.Hour
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting Blocus bot")

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	logger.Info("Configuration loaded",
		zap.String("timezone", cfg.Timezone),
		zap.Duration("store_timeout", cfg.StoreTimeout),
		zap.Int("session_retention_days", cfg.SessionRetentionDays),
	)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	db, err := connectDatabase(ctx, cfg.DSN(), logger)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := runMigrations(db, logger); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	cardRepo := postgres.NewCardRepo(db)
	sessionRepo := postgres.NewSessionRepo(db, cfg.Timezone)

	cardService := service.NewCardService(cardRepo, logger)
	reviewService := service.NewReviewService(cardRepo, sessionRepo, logger)
	statsService := service.NewStatsService(sessionRepo, cfg.Location(), cfg.SessionRetentionDays, logger)

	bot, err := tele.NewBot(tele.Settings{
		Token:  cfg.BotToken,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
		OnError: func(err error, c tele.Context) {
			fields := []zap.Field{zap.Error(err)}
			if c != nil && c.Sender() != nil {
				fields = append(fields, zap.Int64("user_id", c.Sender().ID))
			}
			logger.Error("Handler failed", fields...)
		},
	})
	if err != nil {
		logger.Fatal("Failed to create bot", zap.Error(err))
	}

	bot.Use(middleware.Logging(logger), middleware.SerializePerUser())

	h := handler.NewHandler(bot, cardService, reviewService, statsService, cfg.StoreTimeout, logger)
	h.RegisterHandlers()

	go runCleanupJob(ctx, statsService, cfg.StoreTimeout, logger)

	go func() {
		logger.Info("Bot started", zap.String("username", bot.Me.Username))
		bot.Start()
	}()

	<-ctx.Done()

	logger.Info("Shutdown signal received, stopping bot...")
	bot.Stop()
	logger.Info("Bot stopped gracefully")
}

// connectDatabase connects to PostgreSQL, retrying while the server starts up
func connectDatabase(ctx context.Context, dsn string, logger *zap.Logger) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	for attempt := 1; attempt <= dbMaxRetries; attempt++ {
		if err = db.PingContext(ctx); err == nil {
			db.SetMaxOpenConns(25)
			db.SetMaxIdleConns(5)
			db.SetConnMaxLifetime(5 * time.Minute)
			logger.Info("Database connection established", zap.Int("attempt", attempt))
			return db, nil
		}

		logger.Warn("Failed to ping database",
			zap.Int("attempt", attempt),
			zap.Error(err),
		)

		select {
		case <-ctx.Done():
			db.Close()
			return nil, ctx.Err()
		case <-time.After(dbRetryDelay):
		}
	}

	db.Close()
	return nil, fmt.Errorf("failed to connect to database after %d attempts: %w", dbMaxRetries, err)
}

// runMigrations applies pending schema migrations
func runMigrations(db *sql.DB, logger *zap.Logger) error {
	driver, err := postgresdb.WithInstance(db, &postgresdb.Config{})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance("file://migrations", "postgres", driver)
	if err != nil {
		return fmt.Errorf("failed to create migration instance: %w", err)
	}

	err = m.Up()
	switch {
	case errors.Is(err, migrate.ErrNoChange):
		logger.Info("No new migrations to apply")
	case err != nil:
		return fmt.Errorf("failed to run migrations: %w", err)
	default:
		logger.Info("Migrations applied successfully")
	}

	return nil
}

// runCleanupJob prunes old session logs at startup and then once a day
func runCleanupJob(ctx context.Context, statsService *service.StatsService, timeout time.Duration, logger *zap.Logger) {
	cleanup := func() {
		cleanupCtx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()
		if err := statsService.CleanupOldData(cleanupCtx); err != nil {
			logger.Error("Failed to clean old session logs", zap.Error(err))
		}
	}

	cleanup()

	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Cleanup job stopped")
			return
		case <-ticker.C:
			logger.Info("Running scheduled cleanup")
			cleanup()
		}
	}
}
