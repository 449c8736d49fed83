package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"vocidrill/internal/config"
	"vocidrill/internal/handler"
	"vocidrill/internal/httpapi"
	"vocidrill/internal/repository"
	"vocidrill/internal/repository/memory"
	"vocidrill/internal/repository/postgres"
	"vocidrill/internal/service"
	"vocidrill/internal/voci"

	"github.com/golang-migrate/migrate/v4"
	postgresdb "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

func main() {
	// Initialize logger
	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting vocidrill")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	logger.Info("Configuration loaded successfully",
		zap.String("strategy", cfg.Selection.Strategy),
		zap.Bool("bot_enabled", cfg.BotEnabled()),
	)

	// Connect to database with retries
	db, err := connectDatabase(cfg.DSN(), logger)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connection established")

	// Run migrations
	if err := runMigrations(db, logger); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	logger.Info("Database migrations completed")

	pairRepo := postgres.NewPairRepo(db)

	if err := seedVocabulary(pairRepo, cfg.VociFile, logger); err != nil {
		logger.Fatal("Failed to seed vocabulary", zap.Error(err))
	}

	// Load the vocabulary into the in-memory store
	pairs, err := pairRepo.LoadPairs()
	if err != nil {
		logger.Fatal("Failed to load word pairs", zap.Error(err))
	}
	if len(pairs) == 0 {
		logger.Fatal("No word pairs configured, set VOCI_FILE to seed the database")
	}

	store, err := memory.NewStore(pairs)
	if err != nil {
		logger.Fatal("Failed to build word pair store", zap.Error(err))
	}

	logger.Info("Vocabulary loaded", zap.Int("pairs", store.Len()))

	// Initialize services
	selector, err := service.NewSelector(cfg.Selection.Strategy, cfg.Selection.Seed)
	if err != nil {
		logger.Fatal("Failed to create selector", zap.Error(err))
	}
	statsService := service.NewStatsService(store, pairRepo, logger)
	quizService := service.NewQuizService(store, selector, statsService, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Start snapshot job in background
	snapshotDone := make(chan struct{})
	go func() {
		defer close(snapshotDone)
		runSnapshotJob(ctx, statsService, cfg.SnapshotInterval, logger)
	}()

	// Expire idle sessions in background
	go runSessionSweepJob(ctx, quizService, cfg.SessionIdleTimeout, logger)

	// Start HTTP server in background
	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           httpapi.NewHandler(quizService, logger).Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		logger.Info("HTTP server started", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	// Start Telegram bot in background
	var bot *tele.Bot
	if cfg.BotEnabled() {
		bot, err = tele.NewBot(tele.Settings{
			Token:  cfg.BotToken,
			Poller: &tele.LongPoller{Timeout: 10 * time.Second},
		})
		if err != nil {
			logger.Fatal("Failed to create bot", zap.Error(err))
		}

		h := handler.NewHandler(bot, quizService, logger)
		h.RegisterHandlers()

		go func() {
			logger.Info("Bot started successfully")
			bot.Start()
		}()
	}

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan

	logger.Info("Shutdown signal received, stopping...")

	// Graceful shutdown
	if bot != nil {
		bot.Stop()
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Failed to stop HTTP server", zap.Error(err))
	}

	cancel()
	<-snapshotDone

	if cfg.ExportFile != "" {
		if err := voci.WriteFile(cfg.ExportFile, store.AllPairs()); err != nil {
			logger.Error("Failed to export vocabulary", zap.String("file", cfg.ExportFile), zap.Error(err))
		} else {
			logger.Info("Vocabulary exported", zap.String("file", cfg.ExportFile))
		}
	}

	logger.Info("Stopped gracefully")
}

// connectDatabase connects to PostgreSQL with retries
func connectDatabase(dsn string, logger *zap.Logger) (*sql.DB, error) {
	var db *sql.DB
	var err error

	maxRetries := 30
	retryDelay := 2 * time.Second

	for i := 0; i < maxRetries; i++ {
		db, err = sql.Open("postgres", dsn)
		if err != nil {
			logger.Warn("Failed to open database connection",
				zap.Int("attempt", i+1),
				zap.Error(err),
			)
			time.Sleep(retryDelay)
			continue
		}

		// Test connection
		if err = db.Ping(); err != nil {
			logger.Warn("Failed to ping database",
				zap.Int("attempt", i+1),
				zap.Error(err),
			)
			db.Close()
			time.Sleep(retryDelay)
			continue
		}

		// Connection successful
		db.SetMaxOpenConns(10)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(5 * time.Minute)

		return db, nil
	}

	return nil, fmt.Errorf("failed to connect to database after %d attempts: %w", maxRetries, err)
}

// runMigrations runs database migrations
func runMigrations(db *sql.DB, logger *zap.Logger) error {
	driver, err := postgresdb.WithInstance(db, &postgresdb.Config{})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		"file://migrations",
		"postgres",
		driver,
	)
	if err != nil {
		return fmt.Errorf("failed to create migration instance: %w", err)
	}

	err = m.Up()
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	if errors.Is(err, migrate.ErrNoChange) {
		logger.Info("No new migrations to apply")
	} else {
		logger.Info("Migrations applied successfully")
	}

	return nil
}

// seedVocabulary fills an empty database from a unit file
func seedVocabulary(repo repository.PairRepository, file string, logger *zap.Logger) error {
	count, err := repo.CountPairs()
	if err != nil {
		return fmt.Errorf("failed to count word pairs: %w", err)
	}
	if count > 0 || file == "" {
		logger.Info("Skipping vocabulary seeding", zap.Int("stored_pairs", count))
		return nil
	}

	pairs, err := voci.ReadFile(file)
	if err != nil {
		return err
	}
	if err := repo.InsertPairs(pairs); err != nil {
		return fmt.Errorf("failed to insert word pairs: %w", err)
	}

	logger.Info("Vocabulary seeded", zap.String("file", file), zap.Int("pairs", len(pairs)))
	return nil
}

// runSnapshotJob periodically persists counters until ctx is done, then writes a final snapshot
func runSnapshotJob(ctx context.Context, statsService *service.StatsService, interval time.Duration, logger *zap.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			if err := statsService.PersistSnapshot(); err != nil {
				logger.Error("Failed to persist final snapshot", zap.Error(err))
			}
			logger.Info("Snapshot job stopped")
			return
		case <-ticker.C:
			if err := statsService.PersistSnapshot(); err != nil {
				logger.Error("Failed to persist scheduled snapshot", zap.Error(err))
			}
		}
	}
}

// runSessionSweepJob drops sessions idle for longer than idleTimeout until ctx is done
func runSessionSweepJob(ctx context.Context, quizService *service.QuizService, idleTimeout time.Duration, logger *zap.Logger) {
	ticker := time.NewTicker(idleTimeout / 2)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Session sweep job stopped")
			return
		case <-ticker.C:
			quizService.ExpireIdle(idleTimeout)
		}
	}
}
