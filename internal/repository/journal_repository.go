package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/aebalz/mindful-journal/internal/model"
)

// JournalRepositoryInterface defines the interface for journal entry operations.
// Every lookup is scoped by owner; an entry of another user reads as not found.
type JournalRepositoryInterface interface {
	CreateEntry(ctx context.Context, entry *model.JournalEntry) (*model.JournalEntry, error)
	GetEntry(ctx context.Context, userID uuid.UUID, id uint) (*model.JournalEntry, error)
	ListEntries(ctx context.Context, userID uuid.UUID, limit, offset int) ([]model.JournalEntry, int64, error)
	RecentEntries(ctx context.Context, userID uuid.UUID, n int) ([]model.JournalEntry, error)
	DeleteEntry(ctx context.Context, userID uuid.UUID, id uint) error
	ListAllForUser(ctx context.Context, userID uuid.UUID) ([]model.JournalEntry, error)

	// Insights
	MoodHistory(ctx context.Context, userID uuid.UUID, since time.Time) ([]model.MoodPoint, error)
	ThemesSince(ctx context.Context, userID uuid.UUID, since time.Time) ([][]string, error)
}

// JournalRepository implements JournalRepositoryInterface.
type JournalRepository struct {
	DB *gorm.DB
}

// NewJournalRepository creates a new JournalRepository.
func NewJournalRepository(db *gorm.DB) JournalRepositoryInterface {
	return &JournalRepository{DB: db}
}

// CreateEntry persists a new, pending entry.
func (r *JournalRepository) CreateEntry(ctx context.Context, entry *model.JournalEntry) (*model.JournalEntry, error) {
	if err := r.DB.WithContext(ctx).Create(entry).Error; err != nil {
		return nil, err
	}
	return entry, nil
}

func (r *JournalRepository) GetEntry(ctx context.Context, userID uuid.UUID, id uint) (*model.JournalEntry, error) {
	var entry model.JournalEntry
	err := r.DB.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&entry).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &entry, nil
}

// ListEntries returns the user's entries newest first along with the total count.
func (r *JournalRepository) ListEntries(ctx context.Context, userID uuid.UUID, limit, offset int) ([]model.JournalEntry, int64, error) {
	var entries []model.JournalEntry
	var totalCount int64

	query := r.DB.WithContext(ctx).Model(&model.JournalEntry{}).Where("user_id = ?", userID)
	if err := query.Count(&totalCount).Error; err != nil {
		return nil, 0, err
	}

	query = query.Order("created_at DESC").Order("id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}
	if err := query.Find(&entries).Error; err != nil {
		return nil, 0, err
	}
	return entries, totalCount, nil
}

// RecentEntries returns at most n of the user's newest entries.
func (r *JournalRepository) RecentEntries(ctx context.Context, userID uuid.UUID, n int) ([]model.JournalEntry, error) {
	var entries []model.JournalEntry
	err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").Order("id DESC").
		Limit(n).
		Find(&entries).Error
	return entries, err
}

// DeleteEntry removes an entry. Articles generated from it keep existing with
// their source reference cleared by the foreign key.
func (r *JournalRepository) DeleteEntry(ctx context.Context, userID uuid.UUID, id uint) error {
	result := r.DB.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&model.JournalEntry{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *JournalRepository) ListAllForUser(ctx context.Context, userID uuid.UUID) ([]model.JournalEntry, error) {
	var entries []model.JournalEntry
	err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").Order("id ASC").
		Find(&entries).Error
	return entries, err
}

// MoodHistory returns (date, mood) points since the given time, oldest first.
func (r *JournalRepository) MoodHistory(ctx context.Context, userID uuid.UUID, since time.Time) ([]model.MoodPoint, error) {
	var entries []model.JournalEntry
	err := r.DB.WithContext(ctx).
		Select("id", "created_at", "mood").
		Where("user_id = ? AND created_at >= ?", userID, since.UTC()).
		Order("created_at ASC").Order("id ASC").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}

	points := make([]model.MoodPoint, 0, len(entries))
	for _, e := range entries {
		points = append(points, model.MoodPoint{Date: e.CreatedAt, Mood: e.Mood})
	}
	return points, nil
}

// ThemesSince returns the key theme lists of analysed entries since the given time.
func (r *JournalRepository) ThemesSince(ctx context.Context, userID uuid.UUID, since time.Time) ([][]string, error) {
	var entries []model.JournalEntry
	err := r.DB.WithContext(ctx).
		Select("id", "key_themes").
		Where("user_id = ? AND created_at >= ? AND key_themes IS NOT NULL", userID, since.UTC()).
		Find(&entries).Error
	if err != nil {
		return nil, err
	}

	themes := make([][]string, 0, len(entries))
	for _, e := range entries {
		if len(e.KeyThemes) > 0 {
			themes = append(themes, e.KeyThemes)
		}
	}
	return themes, nil
}
