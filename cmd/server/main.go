package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"

	"github.com/aebalz/mindful-journal/docs"
	"github.com/aebalz/mindful-journal/internal/app"
	"github.com/aebalz/mindful-journal/internal/cache"
	"github.com/aebalz/mindful-journal/internal/config"
	"github.com/aebalz/mindful-journal/internal/llm"
	"github.com/aebalz/mindful-journal/pkg/database"
	fiberserver "github.com/aebalz/mindful-journal/pkg/fiber"
	ginserver "github.com/aebalz/mindful-journal/pkg/gin"
	"github.com/aebalz/mindful-journal/pkg/logger"
)

// @title Mindful Journal API
// @version 1.0
// @description Journaling API with background AI sentiment analysis and supportive article generation.

// @host localhost:8080
// @BasePath /
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cliApp := &cli.App{
		Name:  "mindful-journal",
		Usage: "AI-assisted journaling API",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Value:   "config.env",
				Usage:   "path to the .env configuration file",
				EnvVars: []string{"CONFIG_FILE"},
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "run the HTTP API",
				Action: serve,
			},
			{
				Name:   "migrate",
				Usage:  "apply database migrations and exit",
				Action: migrate,
			},
		},
		DefaultCommand: "serve",
	}

	if err := cliApp.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func migrate(c *cli.Context) error {
	cfg, err := config.LoadConfig(c.String("config"))
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	log := logger.New(cfg)

	db, err := database.ConnectDB(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer func() { _ = database.CloseDB(db) }()

	if err := database.MigrateDB(c.Context, db); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	log.Info().Str("driver", cfg.DBDriver).Msg("database migrated")
	return nil
}

func serve(c *cli.Context) error {
	cfg, err := config.LoadConfig(c.String("config"))
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	log := logger.New(cfg)

	docs.SwaggerInfo.Host = cfg.SwaggerHost
	docs.SwaggerInfo.BasePath = cfg.SwaggerBasePath
	docs.SwaggerInfo.Schemes = cfg.SwaggerSchemes
	docs.SwaggerInfo.Title = cfg.AppName + " API"

	ctx, stop := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.ConnectDB(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer func() {
		if err := database.CloseDB(db); err != nil {
			log.Error().Err(err).Msg("failed to close database")
		}
	}()

	if cfg.DBAutoMigrate {
		if err := database.MigrateDB(ctx, db); err != nil {
			return fmt.Errorf("failed to migrate database: %w", err)
		}
	}

	store := cache.New(ctx, cfg, log)
	defer func() { _ = store.Close() }()

	llmCfg, err := llm.ConfigFromApp(cfg)
	if err != nil {
		return err
	}
	ai, err := llm.New(ctx, llmCfg, log)
	if err != nil {
		return err
	}

	application := app.New(cfg, app.Deps{DB: db, Cache: store, AI: ai, Log: log})

	switch cfg.ServerFramework {
	case "fiber":
		err = runFiber(ctx, cfg, application, log)
	default:
		err = runGin(ctx, cfg, application, log)
	}

	// Pipelines scheduled before the listener closed still get to finish.
	drainCtx, cancel := context.WithTimeout(context.Background(), cfg.PipelineShutdownTimeout)
	defer cancel()
	if derr := application.Dispatcher.Shutdown(drainCtx); derr != nil {
		log.Warn().Err(derr).Msg("abandoning unfinished background pipelines")
	}

	log.Info().Msg("server gracefully stopped")
	return err
}

func runGin(ctx context.Context, cfg *config.AppConfig, application *app.App, log zerolog.Logger) error {
	engine := ginserver.NewGinServer(cfg, application.Handlers, log)
	srv, errCh := ginserver.StartGinServer(engine, cfg, log)

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("gin server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down gin server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ServerWriteTimeout)
	defer cancel()
	return ginserver.ShutdownGinServer(shutdownCtx, srv)
}

func runFiber(ctx context.Context, cfg *config.AppConfig, application *app.App, log zerolog.Logger) error {
	fiberApp := fiberserver.NewFiberServer(cfg, application.Handlers, log)

	errCh := make(chan error, 1)
	go func() {
		errCh <- fiberserver.StartFiberServer(fiberApp, cfg, log)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("fiber server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down fiber server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ServerWriteTimeout)
	defer cancel()
	return fiberserver.ShutdownFiberServer(shutdownCtx, fiberApp)
}
