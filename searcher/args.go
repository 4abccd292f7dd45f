package searcher

import (
	"isolation/game"
	"isolation/meta"
	"time"
)

// Hyperparameters shared by the searchers

type Option func(s *settings)

type settings struct {
	depth     int
	threshold time.Duration
	maxDepth  int
	evaluator game.Evaluator
	metrics   bool
}

func newSettings(options []Option) settings {
	s := settings{ // Default values
		depth:     meta.SEARCH_DEPTH,
		threshold: meta.TIMER_THRESHOLD,
		maxDepth:  meta.MAX_DEPTH,
		evaluator: game.Evaluate(game.EvaluateImproved),
	}
	for _, option := range options {
		option(&s)
	}
	return s
}

// WithSearchDepth sets the number of plies searched by fixed-depth minimax
func WithSearchDepth(depth int) Option {
	return func(s *settings) {
		if depth >= 0 {
			s.depth = depth
		}
	}
}

// WithTimerThreshold sets the time left at which the search aborts
func WithTimerThreshold(threshold time.Duration) Option {
	return func(s *settings) {
		if threshold >= 0 {
			s.threshold = threshold
		}
	}
}

// WithMaxDepth caps iterative deepening
func WithMaxDepth(depth int) Option {
	return func(s *settings) {
		if depth > 0 {
			s.maxDepth = depth
		}
	}
}

func WithEvaluator(evaluator game.Evaluator) Option {
	return func(s *settings) {
		if evaluator != nil {
			s.evaluator = evaluator
		}
	}
}

func WithMetrics() Option {
	return func(s *settings) {
		s.metrics = true
	}
}

func (s settings) newTurn(state game.State, timeLeft TimeLeft) turn {
	collector := NewNoMetricsCollector()
	if s.metrics {
		collector = NewMetricsCollector()
	}
	return turn{
		player:    state.ActivePlayer(),
		timeLeft:  timeLeft,
		threshold: s.threshold,
		evaluator: s.evaluator,
		metrics:   collector,
	}
}
