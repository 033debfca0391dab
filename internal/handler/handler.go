package handler

import "github.com/aebalz/mindful-journal/internal/middleware"

// Handlers encapsulates all handlers for the application, plus the
// authenticator protecting the user-scoped routes.
type Handlers struct {
	Users    *UserHandler
	Journal  *JournalHandler
	Articles *ArticleHandler
	Chat     *ChatHandler
	Health   *HealthHandler
	Auth     middleware.Authenticator
}
