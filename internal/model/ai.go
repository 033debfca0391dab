package model

import "strings"

// AIAnalysisResult is the structured output of the analysis prompt.
// It is consumed immediately to update a JournalEntry and never stored on its own.
type AIAnalysisResult struct {
	SentimentScore      *float64 `json:"sentiment_score"`
	SentimentLabel      *string  `json:"sentiment_label"`
	KeyThemes           []string `json:"key_themes"`
	SuggestedStrategies []string `json:"suggested_strategies"`
}

// HasLabel reports whether the result carries a usable sentiment label.
func (r *AIAnalysisResult) HasLabel() bool {
	return r != nil && r.SentimentLabel != nil && *r.SentimentLabel != ""
}

// Normalize clamps the score into [-1, 1] and drops blank themes and
// strategies. Models drift from the requested shape; the label alone decides
// whether a result is usable.
func (r *AIAnalysisResult) Normalize() {
	if r == nil {
		return
	}
	if r.SentimentScore != nil {
		score := min(max(*r.SentimentScore, -1), 1)
		r.SentimentScore = &score
	}
	if r.SentimentLabel != nil {
		label := strings.TrimSpace(*r.SentimentLabel)
		r.SentimentLabel = &label
	}
	r.KeyThemes = compactStrings(r.KeyThemes)
	r.SuggestedStrategies = compactStrings(r.SuggestedStrategies)
}

func compactStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// GeneratedArticle is the structured output of one article-variation call.
type GeneratedArticle struct {
	Title string `json:"title" validate:"required"`
	Body  string `json:"body" validate:"required"`
}
