package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/aebalz/mindful-journal/internal/model"
)

// PipelineSession is the storage handle owned by one background pipeline run.
// It wraps a single dedicated connection that is never shared with request
// handlers or with other pipeline runs.
type PipelineSession interface {
	// UpdateEntryAnalysis records the analysis on an entry owned by userID.
	// It only applies once; later calls return ErrAnalysisAlreadyRecorded.
	UpdateEntryAnalysis(ctx context.Context, entryID uint, userID uuid.UUID, result *model.AIAnalysisResult) (*model.JournalEntry, error)
	Begin(ctx context.Context) error
	// BulkCreateArticles inserts all articles in one statement inside the
	// transaction opened by Begin.
	BulkCreateArticles(ctx context.Context, articles []model.ArticleCreate) ([]model.Article, error)
	Commit() error
	Rollback() error
	// Close releases the connection back to the pool, rolling back any open transaction.
	Close() error
}

// SessionFactory opens pipeline sessions.
type SessionFactory interface {
	Open(ctx context.Context) (PipelineSession, error)
}

// GormSessionFactory opens sessions on dedicated connections of a GORM pool.
type GormSessionFactory struct {
	DB *gorm.DB
}

// NewSessionFactory creates a new GormSessionFactory.
func NewSessionFactory(db *gorm.DB) SessionFactory {
	return &GormSessionFactory{DB: db}
}

// Open checks out one connection from the pool and binds a GORM session to it.
func (f *GormSessionFactory) Open(ctx context.Context) (PipelineSession, error) {
	sqlDB, err := f.DB.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	conn, err := sqlDB.Conn(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire pipeline connection: %w", err)
	}

	// Session with a context clones the statement, so rebinding its pool
	// leaves f.DB untouched.
	db := f.DB.Session(&gorm.Session{NewDB: true, Context: ctx})
	db.Statement.ConnPool = conn
	return &gormSession{conn: conn, db: db}, nil
}

type gormSession struct {
	conn   *sql.Conn
	db     *gorm.DB
	tx     *gorm.DB
	closed bool
}

func (s *gormSession) UpdateEntryAnalysis(ctx context.Context, entryID uint, userID uuid.UUID, result *model.AIAnalysisResult) (*model.JournalEntry, error) {
	if result == nil {
		return nil, errors.New("nil analysis result")
	}

	now := time.Now().UTC()
	update := model.JournalEntry{
		SentimentScore:        result.SentimentScore,
		SentimentLabel:        result.SentimentLabel,
		KeyThemes:             result.KeyThemes,
		SuggestedStrategies:   result.SuggestedStrategies,
		AIAnalysisCompletedAt: &now,
		UpdatedAt:             &now,
	}

	db := s.db.WithContext(ctx)
	res := db.Model(&model.JournalEntry{}).
		Where("id = ? AND user_id = ? AND ai_analysis_completed_at IS NULL", entryID, userID).
		Select("sentiment_score", "sentiment_label", "key_themes", "suggested_strategies", "ai_analysis_completed_at", "updated_at").
		Updates(&update)
	if res.Error != nil {
		return nil, res.Error
	}

	var entry model.JournalEntry
	if err := db.Where("id = ? AND user_id = ?", entryID, userID).First(&entry).Error; err != nil {
		return nil, notFound(err)
	}
	if res.RowsAffected == 0 {
		return nil, ErrAnalysisAlreadyRecorded
	}
	return &entry, nil
}

func (s *gormSession) Begin(ctx context.Context) error {
	if s.tx != nil {
		return errors.New("transaction already in progress")
	}
	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return tx.Error
	}
	s.tx = tx
	return nil
}

func (s *gormSession) BulkCreateArticles(ctx context.Context, creates []model.ArticleCreate) ([]model.Article, error) {
	if s.tx == nil {
		return nil, ErrNoTransaction
	}
	if len(creates) == 0 {
		return []model.Article{}, nil
	}

	creates, err := s.detachMissingSources(ctx, creates)
	if err != nil {
		return nil, err
	}

	articles := make([]model.Article, 0, len(creates))
	for _, c := range creates {
		articles = append(articles, c.ToArticle())
	}
	if err := s.tx.WithContext(ctx).Create(&articles).Error; err != nil {
		return nil, err
	}
	return articles, nil
}

// detachMissingSources clears the source entry of creates whose entry is gone,
// so a deletion racing the pipeline cannot make the foreign key reject the
// batch. On postgres the surviving entries are share-locked until commit.
func (s *gormSession) detachMissingSources(ctx context.Context, creates []model.ArticleCreate) ([]model.ArticleCreate, error) {
	type owned struct {
		entryID uint
		userID  uuid.UUID
	}
	present := make(map[owned]bool)
	out := make([]model.ArticleCreate, len(creates))
	for i, c := range creates {
		out[i] = c
		if c.SourceJournalEntryID == nil {
			continue
		}
		key := owned{entryID: *c.SourceJournalEntryID, userID: c.UserID}
		exists, seen := present[key]
		if !seen {
			q := s.tx.WithContext(ctx).Model(&model.JournalEntry{}).
				Where("id = ? AND user_id = ?", key.entryID, key.userID)
			if s.tx.Dialector.Name() == "postgres" {
				q = q.Clauses(clause.Locking{Strength: "SHARE"})
			}
			var ids []uint
			if err := q.Pluck("id", &ids).Error; err != nil {
				return nil, fmt.Errorf("failed to check source entry %d: %w", key.entryID, err)
			}
			exists = len(ids) > 0
			present[key] = exists
		}
		if !exists {
			out[i].SourceJournalEntryID = nil
		}
	}
	return out, nil
}

func (s *gormSession) Commit() error {
	if s.tx == nil {
		return ErrNoTransaction
	}
	err := s.tx.Commit().Error
	s.tx = nil
	return err
}

func (s *gormSession) Rollback() error {
	if s.tx == nil {
		return nil
	}
	err := s.tx.Rollback().Error
	s.tx = nil
	return err
}

func (s *gormSession) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	rbErr := s.Rollback()
	return errors.Join(rbErr, s.conn.Close())
}
