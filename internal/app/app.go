// Package app wires repositories, services and handlers into one application.
package app

import (
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/aebalz/mindful-journal/internal/auth"
	"github.com/aebalz/mindful-journal/internal/cache"
	"github.com/aebalz/mindful-journal/internal/config"
	"github.com/aebalz/mindful-journal/internal/handler"
	"github.com/aebalz/mindful-journal/internal/llm"
	"github.com/aebalz/mindful-journal/internal/repository"
	"github.com/aebalz/mindful-journal/internal/service"
	"github.com/aebalz/mindful-journal/internal/worker"
)

// Deps are the external resources the application runs on.
type Deps struct {
	DB    *gorm.DB
	Cache cache.Cache
	AI    *llm.Client
	Log   zerolog.Logger
}

// App is the wired application. Dispatcher owns the background pipelines
// and must be shut down after the HTTP server stops accepting requests.
type App struct {
	Handlers   *handler.Handlers
	Dispatcher *worker.Dispatcher
	Users      service.UserServiceInterface
	Journal    service.JournalServiceInterface
	Pipeline   *service.Pipeline
}

// New builds the application from cfg and deps.
func New(cfg *config.AppConfig, deps Deps) *App {
	c := deps.Cache
	if c == nil {
		c = cache.NopCache{}
	}
	log := deps.Log

	users := repository.NewUserRepository(deps.DB)
	entries := repository.NewJournalRepository(deps.DB)
	articles := repository.NewArticleRepository(deps.DB)

	insights := service.NewInsightsService(entries, c, cfg.CacheTTLExpiration, log)
	dispatcher := worker.NewDispatcher(log)
	pipeline := service.NewPipeline(
		repository.NewSessionFactory(deps.DB),
		service.NewAnalysisService(deps.AI, log),
		service.NewArticleGenerator(deps.AI, log),
		insights,
		log,
	)

	userSvc := service.NewUserService(
		users, entries, articles,
		auth.NewTokenManager(cfg.JWTSecretKey, cfg.AccessTokenExpire),
		insights,
		log,
	)
	journalSvc := service.NewJournalService(entries, dispatcher, pipeline, insights, log)

	return &App{
		Handlers: &handler.Handlers{
			Users:    handler.NewUserHandler(userSvc),
			Journal:  handler.NewJournalHandler(journalSvc, service.NewPromptService(deps.AI, entries, log), insights),
			Articles: handler.NewArticleHandler(service.NewArticleService(articles)),
			Chat:     handler.NewChatHandler(service.NewChatService(deps.AI, log)),
			Health:   handler.NewHealthHandler(deps.DB, c),
			Auth:     userSvc,
		},
		Dispatcher: dispatcher,
		Users:      userSvc,
		Journal:    journalSvc,
		Pipeline:   pipeline,
	}
}
