package agent

import (
	"fmt"
	"isolation/config"
	"isolation/game"
	"isolation/searcher"
)

// Agent picks moves for the active player. Searchers are agents.
type Agent interface {
	FindMove(state game.State, timeLeft searcher.TimeLeft) (game.Move, searcher.SearchMetric)
}

// New builds the agent described by c. Agents keep per-game state, so every
// game needs its own.
func New(c config.Agent, seed uint64) (Agent, error) {
	evaluator, err := game.LookupEvaluator(c.Evaluator)
	if err != nil {
		return nil, fmt.Errorf("agent %q: %w", c.Name, err)
	}

	options := []searcher.Option{
		searcher.WithEvaluator(evaluator),
		searcher.WithTimerThreshold(c.Threshold),
		searcher.WithMetrics(),
	}

	switch c.Algorithm {
	case config.Minimax:
		return searcher.NewMinimax(append(options, searcher.WithSearchDepth(c.Depth))...), nil
	case config.AlphaBeta:
		return searcher.NewAlphaBeta(append(options, searcher.WithMaxDepth(c.MaxDepth))...), nil
	case config.Greedy:
		return NewGreedy(evaluator), nil
	case config.Random:
		return NewRandom(seed), nil
	}
	return nil, fmt.Errorf("agent %q: unknown algorithm %q", c.Name, c.Algorithm)
}
