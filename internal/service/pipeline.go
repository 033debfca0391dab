package service

import (
	"context"
	"errors"
	"runtime/debug"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/aebalz/mindful-journal/internal/model"
	"github.com/aebalz/mindful-journal/internal/repository"
)

// PipelineInput identifies the freshly created entry to process.
type PipelineInput struct {
	UserID  uuid.UUID
	EntryID uint
	Mood    string
	Content string
}

// PipelineResult summarises one run. GeneratedCount and SavedCount are in [0, 6].
type PipelineResult struct {
	AnalysisOK     bool
	GeneratedCount int
	SavedCount     int
}

// Invalidator drops cached views derived from a user's entries.
type Invalidator interface {
	Invalidate(ctx context.Context, userID uuid.UUID)
}

// Pipeline analyses a new entry and generates its articles in the background.
// Each run owns one storage session; runs never share state.
type Pipeline struct {
	sessions    repository.SessionFactory
	analyzer    Analyzer
	generator   ArticleVariantGenerator
	invalidator Invalidator
	log         zerolog.Logger
}

// NewPipeline creates a Pipeline. invalidator may be nil.
func NewPipeline(sessions repository.SessionFactory, analyzer Analyzer, generator ArticleVariantGenerator, invalidator Invalidator, log zerolog.Logger) *Pipeline {
	return &Pipeline{
		sessions:    sessions,
		analyzer:    analyzer,
		generator:   generator,
		invalidator: invalidator,
		log:         log.With().Str("component", "pipeline").Logger(),
	}
}

// Run processes one entry. It never panics and never returns an error; its
// effects are the entry's AI fields and the persisted articles.
func (p *Pipeline) Run(ctx context.Context, in PipelineInput) (res PipelineResult) {
	start := time.Now()
	log := p.log.With().Uint("entry_id", in.EntryID).Str("user_id", in.UserID.String()).Logger()

	var sess repository.PipelineSession
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Bytes("stack", debug.Stack()).Msg("pipeline panicked")
			if sess != nil {
				if err := sess.Rollback(); err != nil {
					log.Error().Err(err).Msg("rollback after panic failed")
				}
			}
		}
		if sess != nil {
			if err := sess.Close(); err != nil {
				log.Error().Err(err).Msg("failed to release pipeline connection")
			}
		}
		p.report(log, res, time.Since(start))
	}()

	var err error
	sess, err = p.sessions.Open(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to open pipeline session")
		return res
	}

	// The analysis and the article variants write disjoint rows, so all
	// seven calls go out together and persistence waits for the join.
	analysis, articles := p.generate(ctx, log, in)

	sourceID := &in.EntryID
	if analysis.HasLabel() {
		if _, err := sess.UpdateEntryAnalysis(ctx, in.EntryID, in.UserID, analysis); err != nil {
			log.Error().Err(err).Msg("failed to record entry analysis")
			if errors.Is(err, repository.ErrNotFound) {
				// Deleted while generating. The session also detaches
				// missing sources at insert time.
				sourceID = nil
			}
		} else {
			res.AnalysisOK = true
			if p.invalidator != nil {
				p.invalidator.Invalidate(ctx, in.UserID)
			}
		}
	} else {
		log.Warn().Msg("analysis not completed")
	}

	creates := make([]model.ArticleCreate, 0, len(articles))
	for i, a := range articles {
		if a == nil {
			continue
		}
		creates = append(creates, model.ArticleCreate{
			UserID:                 in.UserID,
			SourceJournalEntryID:   sourceID,
			TriggeringMood:         in.Mood,
			Title:                  a.Title,
			Body:                   a.Body,
			GenerationVariationKey: VariationLabels[i],
		})
	}
	res.GeneratedCount = len(creates)

	if len(creates) > 0 {
		saved, err := p.persist(ctx, sess, creates)
		if err != nil {
			log.Error().Err(err).Int("articles", len(creates)).Msg("failed to persist generated articles")
		}
		res.SavedCount = saved
	}
	return res
}

// generate runs the analysis and every article variant concurrently.
// The returned slice is indexed like VariationLabels, nil for failures.
func (p *Pipeline) generate(ctx context.Context, log zerolog.Logger, in PipelineInput) (*model.AIAnalysisResult, []*model.GeneratedArticle) {
	var (
		analysis *model.AIAnalysisResult
		articles = make([]*model.GeneratedArticle, len(VariationLabels))
		g        errgroup.Group
	)
	g.SetLimit(len(VariationLabels) + 1)

	g.Go(func() error {
		defer contain(log, "analysis")
		analysis = p.analyzer.Analyze(ctx, in.Content)
		return nil
	})
	for i, label := range VariationLabels {
		g.Go(func() error {
			defer contain(log, label)
			articles[i] = p.generator.GenerateVariant(ctx, in.Mood, label)
			return nil
		})
	}
	_ = g.Wait()
	return analysis, articles
}

func (p *Pipeline) persist(ctx context.Context, sess repository.PipelineSession, creates []model.ArticleCreate) (int, error) {
	if err := sess.Begin(ctx); err != nil {
		return 0, err
	}
	created, err := sess.BulkCreateArticles(ctx, creates)
	if err != nil {
		_ = sess.Rollback()
		return 0, err
	}
	if err := sess.Commit(); err != nil {
		_ = sess.Rollback()
		return 0, err
	}
	return len(created), nil
}

func (p *Pipeline) report(log zerolog.Logger, res PipelineResult, elapsed time.Duration) {
	analysis := "failed"
	if res.AnalysisOK {
		analysis = "ok"
	}
	pipelineRunsTotal.WithLabelValues(analysis).Inc()
	pipelineArticlesTotal.WithLabelValues("generated").Add(float64(res.GeneratedCount))
	pipelineArticlesTotal.WithLabelValues("failed").Add(float64(len(VariationLabels) - res.GeneratedCount))
	pipelineArticlesTotal.WithLabelValues("saved").Add(float64(res.SavedCount))
	pipelineDuration.Observe(elapsed.Seconds())

	log.Info().
		Bool("analysis_ok", res.AnalysisOK).
		Int("generated_count", res.GeneratedCount).
		Int("saved_count", res.SavedCount).
		Dur("duration", elapsed).
		Msg("entry pipeline finished")
}

// contain turns a panic in one generation call into a failed result.
func contain(log zerolog.Logger, step string) {
	if r := recover(); r != nil {
		log.Error().Str("step", step).Interface("panic", r).Msg("generation step panicked")
	}
}
