package model

import (
	"time"

	"github.com/google/uuid"
)

// Article is an AI-generated supportive article tied to the mood that triggered it.
// The source entry reference is nulled when that entry is deleted; the article survives.
type Article struct {
	ID                     uint          `json:"id" gorm:"primarykey"`
	UserID                 uuid.UUID     `json:"user_id" gorm:"type:uuid;not null;index"`
	User                   *User         `json:"-" gorm:"constraint:OnDelete:CASCADE;"`
	Title                  string        `json:"title" gorm:"not null"`
	Body                   string        `json:"body" gorm:"type:text;not null"`
	TriggeringMood         string        `json:"triggering_mood" gorm:"not null;index"`
	SourceJournalEntryID   *uint         `json:"source_journal_entry_id" gorm:"index"`
	SourceJournalEntry     *JournalEntry `json:"-" gorm:"foreignKey:SourceJournalEntryID;constraint:OnDelete:SET NULL;"`
	GenerationVariationKey string        `json:"generation_variation_key" gorm:"not null"`
	GeneratedAt            time.Time     `json:"generated_at" gorm:"autoCreateTime;index"`
}

// ArticleCreate carries everything needed to persist one generated article.
type ArticleCreate struct {
	UserID                 uuid.UUID
	SourceJournalEntryID   *uint
	TriggeringMood         string
	Title                  string
	Body                   string
	GenerationVariationKey string
}

// ToArticle converts the create record into a row ready for insertion.
func (c ArticleCreate) ToArticle() Article {
	return Article{
		UserID:                 c.UserID,
		Title:                  c.Title,
		Body:                   c.Body,
		TriggeringMood:         c.TriggeringMood,
		SourceJournalEntryID:   c.SourceJournalEntryID,
		GenerationVariationKey: c.GenerationVariationKey,
	}
}
