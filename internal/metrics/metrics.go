// Package metrics holds the Prometheus collectors for rounds and the computer
// opponent. Collectors register with the default registry on import and are
// exposed by the HTTP server at /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "wardle"

var (
	// RoundsStarted counts new rounds. Labels: mode (solo, versus), source (random, fixed, daily)
	RoundsStarted = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "rounds",
		Name:      "started_total",
		Help:      "Total rounds started",
	}, []string{"mode", "source"})

	// RoundsFinished counts finished rounds. Labels: mode, status (won, lost), winner (player, computer, none)
	RoundsFinished = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "rounds",
		Name:      "finished_total",
		Help:      "Total rounds finished",
	}, []string{"mode", "status", "winner"})

	// Guesses counts scored guesses. Labels: side
	Guesses = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "guesses",
		Name:      "scored_total",
		Help:      "Total guesses scored",
	}, []string{"side"})

	// Rejections counts guesses rejected before scoring. Labels: reason
	Rejections = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "guesses",
		Name:      "rejected_total",
		Help:      "Total guesses rejected",
	}, []string{"reason"})

	// CandidatePool tracks how many words the computer could still choose from.
	CandidatePool = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "opponent",
		Name:      "candidate_pool_size",
		Help:      "Candidates consistent with the computer's knowledge before each guess",
		Buckets:   []float64{0, 1, 2, 5, 10, 25, 50, 100, 250, 500, 1000},
	})

	// Fallbacks counts computer guesses drawn from the whole dictionary.
	Fallbacks = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "opponent",
		Name:      "fallbacks_total",
		Help:      "Computer guesses taken from the full dictionary because no candidate remained",
	})

	// LiveRounds is the number of rounds held in memory.
	LiveRounds = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "store",
		Name:      "live_rounds",
		Help:      "Rounds currently held in memory",
	})
)

// Winner maps an empty winner to "none" for label values.
func Winner(s string) string {
	if s == "" {
		return "none"
	}
	return s
}
