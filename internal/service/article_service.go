package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/aebalz/mindful-journal/internal/model"
	"github.com/aebalz/mindful-journal/internal/repository"
)

// ArticleService serves the articles produced by entry pipelines.
type ArticleService struct {
	articles repository.ArticleRepositoryInterface
}

// NewArticleService creates a new ArticleService.
func NewArticleService(articles repository.ArticleRepositoryInterface) *ArticleService {
	return &ArticleService{articles: articles}
}

// ListArticles returns a page of the user's articles, newest first.
func (s *ArticleService) ListArticles(ctx context.Context, userID uuid.UUID, skip, limit int) ([]model.Article, error) {
	skip, limit = NormalizePage(skip, limit)
	return s.articles.ListArticles(ctx, userID, limit, skip)
}
