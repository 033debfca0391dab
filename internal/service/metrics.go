package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	pipelineRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "journal_pipeline_runs_total",
			Help: "Total number of entry pipelines run, by analysis outcome.",
		},
		[]string{"analysis"},
	)

	pipelineArticlesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "journal_pipeline_articles_total",
			Help: "Article variants by outcome (generated, failed, saved).",
		},
		[]string{"outcome"},
	)

	pipelineDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "journal_pipeline_duration_seconds",
			Help:    "Wall-clock duration of entry pipelines.",
			Buckets: []float64{1, 2.5, 5, 10, 20, 30, 60, 120},
		},
	)
)
