package main

import (
	"context"
	"log"
	"time"

	"pool-booking/cmd"
	"pool-booking/internal/data/repository"
	"pool-booking/internal/jobs"
	"pool-booking/internal/notify"
	"pool-booking/internal/wire"
	"pool-booking/pkg/database"
	"pool-booking/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
	)

	// Connect to database
	db, err := database.InitDB(config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connected successfully")

	// Run migrations
	migrator, err := database.NewMigrator(db.Pool(), config.Database.MigrationsPath)
	if err != nil {
		logger.Fatal("Failed to init migrator", zap.Error(err))
	}

	ctx := context.Background()
	if err := migrator.Run(ctx); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}
	if version, err := migrator.Version(ctx); err == nil {
		logger.Info("Database schema up to date", zap.Int64("version", version))
	}

	// Initialize all repositories
	repos := repository.NewRepository(db, logger)

	// Notification dispatcher
	notifier := notify.NewDispatcher(
		notify.NewLogSink(logger),
		config.Notify.Workers,
		config.Notify.QueueSize,
		logger,
	)

	// Wire all dependencies
	app := wire.Wiring(repos, config, notifier, logger)

	// Start background jobs
	scheduler := jobs.NewScheduler(app.Service, config, logger)
	scheduler.Start(ctx)

	// Start server, blocks until shutdown
	cmd.APIServer(app.Router, config.App.Port, logger)

	// Drain background work
	scheduler.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	notifier.Shutdown(shutdownCtx)
}
