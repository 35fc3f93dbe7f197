package session

import "github.com/prometheus/client_golang/prometheus"

var (
	sessionsActive = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "match_sessions_active",
		Help: "Live match sessions currently in the registry",
	})
	movesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "match_moves_total",
		Help: "Legal moves applied across all matches",
	})
	invalidMovesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "match_invalid_moves_total",
		Help: "Moves rejected by the rules engine",
	})
	matchesCompleted = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "match_completed_total",
		Help: "Matches finished with a rating exchange",
	})
	sessionsReaped = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "match_sessions_reaped_total",
		Help: "Idle sessions removed by the reaper",
	})
)

func init() {
	prometheus.MustRegister(sessionsActive, movesTotal, invalidMovesTotal, matchesCompleted, sessionsReaped)
}
