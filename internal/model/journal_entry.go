package model

import (
	"time"

	"github.com/google/uuid"
)

// Analysis status values exposed by the per-entry status resource.
const (
	AnalysisStatusPending  = "pending"
	AnalysisStatusComplete = "complete"
)

// JournalEntry represents one user-authored entry plus its AI-derived fields.
// The AI fields stay nil until the background pipeline records an analysis.
type JournalEntry struct {
	ID        uint       `json:"id" gorm:"primarykey"`
	UserID    uuid.UUID  `json:"user_id" gorm:"type:uuid;not null;index"`
	User      *User      `json:"-" gorm:"constraint:OnDelete:CASCADE;"`
	Mood      string     `json:"mood" gorm:"not null;index"`
	Content   string     `json:"content" gorm:"type:text;not null"`
	CreatedAt time.Time  `json:"created_at" gorm:"index"`
	UpdatedAt *time.Time `json:"updated_at,omitempty" gorm:"autoUpdateTime:false"`

	SentimentScore        *float64   `json:"sentiment_score"`
	SentimentLabel        *string    `json:"sentiment_label"`
	KeyThemes             []string   `json:"key_themes" gorm:"type:jsonb;serializer:json"`
	SuggestedStrategies   []string   `json:"suggested_strategies" gorm:"type:jsonb;serializer:json"`
	AIAnalysisCompletedAt *time.Time `json:"ai_analysis_completed_at"`
}

// AnalysisStatus reports "complete" once a sentiment label and completion time are recorded.
func (e *JournalEntry) AnalysisStatus() string {
	if e.SentimentLabel != nil && *e.SentimentLabel != "" && e.AIAnalysisCompletedAt != nil {
		return AnalysisStatusComplete
	}
	return AnalysisStatusPending
}

// EntryStatus is the independently pollable view of an entry's analysis.
type EntryStatus struct {
	Status                string     `json:"status"`
	SentimentLabel        *string    `json:"sentiment_label,omitempty"`
	SentimentScore        *float64   `json:"sentiment_score,omitempty"`
	KeyThemes             []string   `json:"key_themes,omitempty"`
	SuggestedStrategies   []string   `json:"suggested_strategies,omitempty"`
	AIAnalysisCompletedAt *time.Time `json:"ai_analysis_completed_at,omitempty"`
}

// Status builds the status resource. AI fields are only exposed once complete, so a
// client never observes a partially analysed entry.
func (e *JournalEntry) Status() EntryStatus {
	if e.AnalysisStatus() != AnalysisStatusComplete {
		return EntryStatus{Status: AnalysisStatusPending}
	}
	return EntryStatus{
		Status:                AnalysisStatusComplete,
		SentimentLabel:        e.SentimentLabel,
		SentimentScore:        e.SentimentScore,
		KeyThemes:             e.KeyThemes,
		SuggestedStrategies:   e.SuggestedStrategies,
		AIAnalysisCompletedAt: e.AIAnalysisCompletedAt,
	}
}

// JournalEntryCreate is the validated input for a new entry.
type JournalEntryCreate struct {
	Mood    string `json:"mood" validate:"required"`
	Content string `json:"content" validate:"required,min=10,max=1000"`
}

// JournalEntryResponse is returned from the create endpoint together with the pending status.
type JournalEntryResponse struct {
	JournalEntry
	Status string `json:"status"`
}
