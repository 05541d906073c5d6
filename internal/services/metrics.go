package services

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

type Metrics struct {
	AnalysesTotal    *prometheus.CounterVec
	AnalysisDuration prometheus.Histogram
	AnalysesInFlight prometheus.Gauge
	SessionsCreated  prometheus.Counter
	SessionsPurged   prometheus.Counter
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		AnalysesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "career_analyses_total",
				Help: "Total number of career analyses by outcome",
			},
			[]string{"outcome"},
		),
		AnalysisDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "career_analysis_duration_seconds",
				Help:    "Duration of the model call in seconds",
				Buckets: []float64{1, 2.5, 5, 10, 20, 40, 80},
			},
		),
		AnalysesInFlight: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "career_analyses_in_flight",
				Help: "Number of analyses currently waiting on the model",
			},
		),
		SessionsCreated: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "career_sessions_created_total",
				Help: "Total number of wizard sessions created",
			},
		),
		SessionsPurged: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "career_sessions_purged_total",
				Help: "Total number of expired sessions removed by the janitor",
			},
		),
	}
}
