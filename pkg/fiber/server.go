package fiber

import (
	"context"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	swaggoFiber "github.com/swaggo/fiber-swagger"

	"github.com/aebalz/mindful-journal/internal/config"
	"github.com/aebalz/mindful-journal/internal/handler"
	"github.com/aebalz/mindful-journal/internal/middleware"

	// Import docs for swagger
	_ "github.com/aebalz/mindful-journal/docs"
)

// NewFiberServer creates and configures a new Fiber application.
func NewFiberServer(cfg *config.AppConfig, h *handler.Handlers, log zerolog.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               cfg.AppName,
		ReadTimeout:           cfg.ServerReadTimeout,
		WriteTimeout:          cfg.ServerWriteTimeout,
		IdleTimeout:           cfg.ServerIdleTimeout,
		ErrorHandler:          handler.ErrorHandlerFiber,
		DisableStartupMessage: true,
	})
	log = log.With().Str("framework", "fiber").Logger()

	// Recovery sits inside the access log so a panic is logged as a 500.
	app.Use(middleware.RequestIDFiber())
	app.Use(middleware.AccessLogFiber(log))
	app.Use(middleware.MetricsMiddlewareFiber())
	app.Use(middleware.RecoveryFiber(log))
	app.Use(middleware.CORSFiber(cfg.CorsAllowedOrigins))
	if cfg.RateLimitPerSecond > 0 {
		app.Use(middleware.RateLimiterFiber(middleware.NewIPRateLimiter(cfg.RateLimitPerSecond, cfg.RateLimitBurst)))
	}

	app.Get("/swagger/*", swaggoFiber.WrapHandler)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	app.Get("/health", h.Health.CheckHealthFiber)

	auth := middleware.AuthFiber(h.Auth)

	app.Post("/users", h.Users.RegisterFiber)
	app.Post("/users/token", h.Users.TokenFiber)
	me := app.Group("/users/me", auth)
	me.Get("", h.Users.MeFiber)
	me.Get("/export", h.Users.ExportFiber)
	me.Delete("", h.Users.DeleteFiber)

	// Static segments are registered before /:id; fiber matches in order.
	journal := app.Group("/journal", auth)
	journal.Post("", h.Journal.CreateEntryFiber)
	journal.Get("", h.Journal.ListEntriesFiber)
	journal.Get("/prompt", h.Journal.PromptFiber)
	journal.Get("/insights", h.Journal.InsightsFiber)
	journal.Get("/:id", h.Journal.GetEntryFiber)
	journal.Get("/:id/status", h.Journal.GetStatusFiber)
	journal.Delete("/:id", h.Journal.DeleteEntryFiber)

	app.Get("/articles", auth, h.Articles.ListArticlesFiber)
	app.Post("/chat/query", auth, h.Chat.QueryFiber)

	return app
}

// StartFiberServer starts the Fiber server. It blocks until the app shuts down.
func StartFiberServer(app *fiber.App, cfg *config.AppConfig, log zerolog.Logger) error {
	addr := fmt.Sprintf("%s:%d", cfg.ServerHost, cfg.ServerPort)
	log.Info().Str("addr", addr).Msg("starting fiber server")
	return app.Listen(addr)
}

// ShutdownFiberServer gracefully shuts down the Fiber server.
func ShutdownFiberServer(ctx context.Context, app *fiber.App) error {
	if err := app.ShutdownWithContext(ctx); err != nil {
		return fmt.Errorf("fiber server forced to shutdown: %w", err)
	}
	return nil
}
