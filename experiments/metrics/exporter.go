package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Exporter publishes tournament results as Prometheus metrics. Every exporter
// owns its registry so tournaments and tests do not share counters.
type Exporter struct {
	registry *prometheus.Registry

	// games counts finished games by agent and result (win, loss, draw)
	games *prometheus.CounterVec
	// endings counts finished games by reason
	endings *prometheus.CounterVec
	// moves counts moves played by agent
	moves *prometheus.CounterVec
	// timeouts counts searches abandoned at the deadline by agent
	timeouts *prometheus.CounterVec
	// depth tracks the deepest completed search depth per move
	depth *prometheus.HistogramVec
	// nodes tracks the states visited per move
	nodes *prometheus.HistogramVec
	// searchDuration tracks the time spent per move
	searchDuration *prometheus.HistogramVec
}

func NewExporter() *Exporter {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Exporter{
		registry: registry,
		games: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "isolation_games_total",
			Help: "Finished games by agent and result",
		}, []string{"agent", "result"}),
		endings: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "isolation_game_endings_total",
			Help: "Finished games by reason",
		}, []string{"reason"}),
		moves: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "isolation_moves_total",
			Help: "Moves played by agent",
		}, []string{"agent"}),
		timeouts: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "isolation_search_timeouts_total",
			Help: "Searches stopped at the deadline by agent",
		}, []string{"agent"}),
		depth: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "isolation_search_depth",
			Help:    "Deepest completed search depth per move",
			Buckets: []float64{1, 2, 3, 4, 5, 6, 8, 10, 12, 16, 20},
		}, []string{"agent"}),
		nodes: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "isolation_search_nodes",
			Help:    "States visited per move",
			Buckets: prometheus.ExponentialBuckets(10, 4, 10), // 10 to ~2.6M
		}, []string{"agent"}),
		searchDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "isolation_search_duration_seconds",
			Help:    "Time spent per move in seconds",
			Buckets: prometheus.ExponentialBuckets(0.0005, 2, 12), // 0.5ms to ~1s
		}, []string{"agent"}),
	}
}

// Observe records a finished game. Players are labelled by their board names,
// which are the agent names in a tournament.
func (e *Exporter) Observe(game GameMetric, moves []MoveMetric) {
	e.endings.WithLabelValues(game.Reason).Inc()
	for _, player := range game.Players {
		result := "draw"
		switch game.Winner {
		case "":
		case player:
			result = "win"
		default:
			result = "loss"
		}
		e.games.WithLabelValues(player, result).Inc()
	}

	for _, move := range moves {
		agent := move.Player
		e.moves.WithLabelValues(agent).Inc()
		if move.TimedOut {
			e.timeouts.WithLabelValues(agent).Inc()
		}
		e.depth.WithLabelValues(agent).Observe(float64(move.Depth))
		e.nodes.WithLabelValues(agent).Observe(float64(move.Nodes))
		e.searchDuration.WithLabelValues(agent).Observe(move.Duration.Seconds())
	}
}

func (e *Exporter) Registry() *prometheus.Registry {
	return e.registry
}

func (e *Exporter) Handler() http.Handler {
	return promhttp.HandlerFor(e.registry, promhttp.HandlerOpts{})
}
