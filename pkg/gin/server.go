package gin

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	swaggoFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/aebalz/mindful-journal/internal/config"
	"github.com/aebalz/mindful-journal/internal/handler"
	"github.com/aebalz/mindful-journal/internal/middleware"

	// Import docs for swagger
	_ "github.com/aebalz/mindful-journal/docs"
)

// NewGinServer creates and configures a new Gin application.
func NewGinServer(cfg *config.AppConfig, h *handler.Handlers, log zerolog.Logger) *gin.Engine {
	switch cfg.AppEnv {
	case "production":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}

	router := gin.New()
	log = log.With().Str("framework", "gin").Logger()

	router.Use(middleware.RequestIDGin())
	router.Use(middleware.RecoveryGin(log))
	router.Use(middleware.AccessLogGin(log))
	router.Use(middleware.MetricsMiddlewareGin())
	router.Use(middleware.CORSGin(cfg.CorsAllowedOrigins))
	if cfg.RateLimitPerSecond > 0 {
		router.Use(middleware.RateLimiterGin(middleware.NewIPRateLimiter(cfg.RateLimitPerSecond, cfg.RateLimitBurst)))
	}
	router.NoRoute(handler.NotFoundGin)

	url := ginSwagger.URL("/swagger/doc.json")
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggoFiles.Handler, url))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/health", h.Health.CheckHealthGin)

	users := router.Group("/users")
	{
		users.POST("", h.Users.RegisterGin)
		users.POST("/token", h.Users.TokenGin)
	}
	me := users.Group("/me", middleware.AuthGin(h.Auth))
	{
		me.GET("", h.Users.MeGin)
		me.GET("/export", h.Users.ExportGin)
		me.DELETE("", h.Users.DeleteGin)
	}

	journal := router.Group("/journal", middleware.AuthGin(h.Auth))
	{
		journal.POST("", h.Journal.CreateEntryGin)
		journal.GET("", h.Journal.ListEntriesGin)
		journal.GET("/prompt", h.Journal.PromptGin)
		journal.GET("/insights", h.Journal.InsightsGin)
		journal.GET("/:id", h.Journal.GetEntryGin)
		journal.GET("/:id/status", h.Journal.GetStatusGin)
		journal.DELETE("/:id", h.Journal.DeleteEntryGin)
	}

	router.GET("/articles", middleware.AuthGin(h.Auth), h.Articles.ListArticlesGin)
	router.POST("/chat/query", middleware.AuthGin(h.Auth), h.Chat.QueryGin)

	return router
}

// StartGinServer starts serving in the background. A listen failure is
// delivered on the returned channel.
func StartGinServer(router *gin.Engine, cfg *config.AppConfig, log zerolog.Logger) (*http.Server, <-chan error) {
	addr := fmt.Sprintf("%s:%d", cfg.ServerHost, cfg.ServerPort)

	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.ServerReadTimeout,
		WriteTimeout: cfg.ServerWriteTimeout,
		IdleTimeout:  cfg.ServerIdleTimeout,
	}

	log.Info().Str("addr", addr).Msg("starting gin server")

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	return srv, errCh
}

// ShutdownGinServer gracefully shuts down the Gin server.
func ShutdownGinServer(ctx context.Context, srv *http.Server) error {
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("gin server forced to shutdown: %w", err)
	}
	return nil
}
