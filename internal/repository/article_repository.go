package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/aebalz/mindful-journal/internal/model"
)

// ArticleRepositoryInterface defines read access to generated articles.
// Articles are only ever created by a PipelineSession.
type ArticleRepositoryInterface interface {
	ListArticles(ctx context.Context, userID uuid.UUID, limit, offset int) ([]model.Article, error)
	ListAllForUser(ctx context.Context, userID uuid.UUID) ([]model.Article, error)
}

// ArticleRepository implements ArticleRepositoryInterface.
type ArticleRepository struct {
	DB *gorm.DB
}

// NewArticleRepository creates a new ArticleRepository.
func NewArticleRepository(db *gorm.DB) ArticleRepositoryInterface {
	return &ArticleRepository{DB: db}
}

// ListArticles returns a page of the user's articles, newest first.
func (r *ArticleRepository) ListArticles(ctx context.Context, userID uuid.UUID, limit, offset int) ([]model.Article, error) {
	var articles []model.Article
	query := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("generated_at DESC").Order("id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}
	if err := query.Find(&articles).Error; err != nil {
		return nil, err
	}
	return articles, nil
}

func (r *ArticleRepository) ListAllForUser(ctx context.Context, userID uuid.UUID) ([]model.Article, error) {
	var articles []model.Article
	err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("generated_at ASC").Order("id ASC").
		Find(&articles).Error
	return articles, err
}
