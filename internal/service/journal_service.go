package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/aebalz/mindful-journal/internal/model"
	"github.com/aebalz/mindful-journal/internal/repository"
)

const (
	DefaultPageLimit = 30
	MaxPageLimit     = 100
)

// Scheduler runs work detached from the calling request.
type Scheduler interface {
	Go(name string, fn func(ctx context.Context))
}

// PipelineRunner is what entry creation hands new entries to.
type PipelineRunner interface {
	Run(ctx context.Context, in PipelineInput) PipelineResult
}

// JournalServiceInterface defines the interface for journal entry operations.
type JournalServiceInterface interface {
	CreateEntry(ctx context.Context, userID uuid.UUID, in model.JournalEntryCreate) (*model.JournalEntryResponse, error)
	ListEntries(ctx context.Context, userID uuid.UUID, skip, limit int) ([]model.JournalEntry, error)
	GetEntry(ctx context.Context, userID uuid.UUID, id uint) (*model.JournalEntry, error)
	GetStatus(ctx context.Context, userID uuid.UUID, id uint) (*model.EntryStatus, error)
	DeleteEntry(ctx context.Context, userID uuid.UUID, id uint) error
}

// JournalService implements JournalServiceInterface.
type JournalService struct {
	entries     repository.JournalRepositoryInterface
	scheduler   Scheduler
	pipeline    PipelineRunner
	invalidator Invalidator
	validate    *validator.Validate
	log         zerolog.Logger
}

// NewJournalService creates a new JournalService. invalidator may be nil.
func NewJournalService(entries repository.JournalRepositoryInterface, scheduler Scheduler, pipeline PipelineRunner, invalidator Invalidator, log zerolog.Logger) JournalServiceInterface {
	return &JournalService{
		entries:     entries,
		scheduler:   scheduler,
		pipeline:    pipeline,
		invalidator: invalidator,
		validate:    validator.New(),
		log:         log.With().Str("component", "journal").Logger(),
	}
}

// CreateEntry validates and stores the entry, then schedules its pipeline.
// It returns as soon as the row is committed; the entry starts out pending.
func (s *JournalService) CreateEntry(ctx context.Context, userID uuid.UUID, in model.JournalEntryCreate) (*model.JournalEntryResponse, error) {
	in.Mood = strings.TrimSpace(in.Mood)
	in.Content = strings.TrimSpace(in.Content)
	if err := s.validate.Struct(in); err != nil {
		return nil, validationError(err)
	}

	entry, err := s.entries.CreateEntry(ctx, &model.JournalEntry{
		UserID:  userID,
		Mood:    in.Mood,
		Content: in.Content,
	})
	if err != nil {
		return nil, fmt.Errorf("create journal entry: %w", err)
	}

	input := PipelineInput{UserID: userID, EntryID: entry.ID, Mood: entry.Mood, Content: entry.Content}
	s.scheduler.Go(fmt.Sprintf("entry-pipeline-%d", entry.ID), func(ctx context.Context) {
		s.pipeline.Run(ctx, input)
	})
	s.invalidate(ctx, userID)

	s.log.Info().Uint("entry_id", entry.ID).Str("user_id", userID.String()).Msg("journal entry created, pipeline scheduled")
	return &model.JournalEntryResponse{JournalEntry: *entry, Status: entry.AnalysisStatus()}, nil
}

// ListEntries returns a page of entries newest first.
func (s *JournalService) ListEntries(ctx context.Context, userID uuid.UUID, skip, limit int) ([]model.JournalEntry, error) {
	skip, limit = NormalizePage(skip, limit)
	entries, _, err := s.entries.ListEntries(ctx, userID, limit, skip)
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (s *JournalService) GetEntry(ctx context.Context, userID uuid.UUID, id uint) (*model.JournalEntry, error) {
	entry, err := s.entries.GetEntry(ctx, userID, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrEntryNotFound
	}
	return entry, err
}

// GetStatus returns the pollable analysis status of an entry.
func (s *JournalService) GetStatus(ctx context.Context, userID uuid.UUID, id uint) (*model.EntryStatus, error) {
	entry, err := s.GetEntry(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	status := entry.Status()
	return &status, nil
}

// DeleteEntry removes an entry; its generated articles are kept.
func (s *JournalService) DeleteEntry(ctx context.Context, userID uuid.UUID, id uint) error {
	err := s.entries.DeleteEntry(ctx, userID, id)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrEntryNotFound
	}
	if err != nil {
		return err
	}
	s.invalidate(ctx, userID)
	return nil
}

func (s *JournalService) invalidate(ctx context.Context, userID uuid.UUID) {
	if s.invalidator != nil {
		s.invalidator.Invalidate(ctx, userID)
	}
}

// NormalizePage clamps skip and limit to sane bounds.
func NormalizePage(skip, limit int) (int, int) {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 {
		limit = DefaultPageLimit
	}
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}
	return skip, limit
}
