package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/aebalz/mindful-journal/internal/middleware"
	"github.com/aebalz/mindful-journal/internal/model"
	"github.com/aebalz/mindful-journal/internal/service"
)

// ArticleLister pages through a user's generated articles.
type ArticleLister interface {
	ListArticles(ctx context.Context, userID uuid.UUID, skip, limit int) ([]model.Article, error)
}

type ArticleHandler struct {
	Service ArticleLister
}

func NewArticleHandler(svc ArticleLister) *ArticleHandler {
	return &ArticleHandler{Service: svc}
}

// @Summary List generated articles
// @Description Newest first.
// @Tags Articles
// @Produce json
// @Security BearerAuth
// @Param skip query int false "Articles to skip"
// @Param limit query int false "Page size (max 100)"
// @Success 200 {array} model.Article
// @Router /articles [get]
func (h *ArticleHandler) ListArticlesFiber(c *fiber.Ctx) error {
	user, ok := middleware.UserFromFiber(c)
	if !ok {
		return fiberError(c, service.ErrInvalidCredentials)
	}
	skip, limit, err := parsePage(c.Query("skip"), c.Query("limit"))
	if err != nil {
		return fiberError(c, err)
	}
	articles, err := h.Service.ListArticles(c.UserContext(), user.ID, skip, limit)
	if err != nil {
		return fiberError(c, err)
	}
	return c.JSON(articles)
}

func (h *ArticleHandler) ListArticlesGin(c *gin.Context) {
	user, ok := middleware.UserFromGin(c)
	if !ok {
		respondErrorGin(c, service.ErrInvalidCredentials)
		return
	}
	skip, limit, err := parsePage(c.Query("skip"), c.Query("limit"))
	if err != nil {
		respondErrorGin(c, err)
		return
	}
	articles, err := h.Service.ListArticles(c.Request.Context(), user.ID, skip, limit)
	if err != nil {
		respondErrorGin(c, err)
		return
	}
	c.JSON(http.StatusOK, articles)
}
