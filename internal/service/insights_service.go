package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/aebalz/mindful-journal/internal/cache"
	"github.com/aebalz/mindful-journal/internal/model"
	"github.com/aebalz/mindful-journal/internal/repository"
)

const (
	DefaultInsightDays = 30
	MaxInsightDays     = 90
	themeCloudSize     = 50
)

// InsightsService computes mood history and theme clouds, caching results
// per user until that user's entries change.
type InsightsService struct {
	entries repository.JournalRepositoryInterface
	cache   cache.Cache
	ttl     time.Duration
	now     func() time.Time
	log     zerolog.Logger
}

// NewInsightsService creates a new InsightsService.
func NewInsightsService(entries repository.JournalRepositoryInterface, c cache.Cache, ttl time.Duration, log zerolog.Logger) *InsightsService {
	return &InsightsService{
		entries: entries,
		cache:   c,
		ttl:     ttl,
		now:     time.Now,
		log:     log.With().Str("component", "insights").Logger(),
	}
}

// GetInsights returns mood history over daysMood and the theme cloud over daysThemes.
// Both windows must be within 1..90 days.
func (s *InsightsService) GetInsights(ctx context.Context, userID uuid.UUID, daysMood, daysThemes int) (*model.HistoricalInsights, error) {
	if daysMood < 1 || daysMood > MaxInsightDays || daysThemes < 1 || daysThemes > MaxInsightDays {
		return nil, fmt.Errorf("%w: days must be between 1 and %d", ErrValidation, MaxInsightDays)
	}

	key := insightsKey(userID, daysMood, daysThemes)
	var cached model.HistoricalInsights
	if hit, err := s.cache.Get(ctx, key, &cached); err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("insights cache read failed")
	} else if hit {
		return &cached, nil
	}

	now := s.now().UTC()
	moods, err := s.entries.MoodHistory(ctx, userID, now.AddDate(0, 0, -daysMood))
	if err != nil {
		return nil, err
	}
	themeLists, err := s.entries.ThemesSince(ctx, userID, now.AddDate(0, 0, -daysThemes))
	if err != nil {
		return nil, err
	}

	insights := &model.HistoricalInsights{
		DaysMood:    daysMood,
		DaysThemes:  daysThemes,
		MoodHistory: moods,
		ThemeCloud:  CountThemes(themeLists, themeCloudSize),
	}
	if err := s.cache.Set(ctx, key, insights, s.ttl); err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("insights cache write failed")
	}
	return insights, nil
}

// Invalidate drops every cached insight of the user.
func (s *InsightsService) Invalidate(ctx context.Context, userID uuid.UUID) {
	if err := s.cache.DeletePrefix(ctx, insightsPrefix(userID)); err != nil {
		s.log.Warn().Err(err).Str("user_id", userID.String()).Msg("insights cache invalidation failed")
	}
}

// CountThemes tallies case-insensitive themes, most frequent first, ties by name.
func CountThemes(themeLists [][]string, limit int) []model.ThemeCount {
	counts := make(map[string]int)
	for _, list := range themeLists {
		for _, theme := range list {
			theme = strings.ToLower(strings.TrimSpace(theme))
			if theme != "" {
				counts[theme]++
			}
		}
	}

	cloud := make([]model.ThemeCount, 0, len(counts))
	for theme, n := range counts {
		cloud = append(cloud, model.ThemeCount{Theme: theme, Count: n})
	}
	sort.Slice(cloud, func(i, j int) bool {
		if cloud[i].Count != cloud[j].Count {
			return cloud[i].Count > cloud[j].Count
		}
		return cloud[i].Theme < cloud[j].Theme
	})
	if len(cloud) > limit {
		cloud = cloud[:limit]
	}
	return cloud
}

func insightsPrefix(userID uuid.UUID) string {
	return "insights:" + userID.String() + ":"
}

func insightsKey(userID uuid.UUID, daysMood, daysThemes int) string {
	return fmt.Sprintf("%s%d:%d", insightsPrefix(userID), daysMood, daysThemes)
}
