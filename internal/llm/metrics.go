package llm

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var aiCallsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "journal_ai_calls_total",
		Help: "Total number of LLM calls by template and outcome.",
	},
	[]string{"template", "outcome"},
)
