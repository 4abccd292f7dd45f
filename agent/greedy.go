package agent

import (
	"isolation/game"
	"isolation/searcher"
	"time"
)

// Greedy looks one move ahead and plays the successor its evaluator likes best
type Greedy struct {
	evaluator game.Evaluator
}

func NewGreedy(evaluator game.Evaluator) *Greedy {
	if evaluator == nil {
		panic("greedy agent needs an evaluator")
	}
	return &Greedy{evaluator: evaluator}
}

func (g *Greedy) FindMove(state game.State, _ searcher.TimeLeft) (game.Move, searcher.SearchMetric) {
	start := time.Now()
	player := state.ActivePlayer()

	best, bestScore := game.NoMove, 0.
	moves := state.LegalMoves()
	for _, move := range moves {
		score := g.evaluator.Score(state.Forecast(move), player)
		if best == game.NoMove || score > bestScore {
			best, bestScore = move, score
		}
	}

	return best, searcher.SearchMetric{
		Algorithm:   "greedy",
		StartTime:   start,
		Duration:    time.Since(start),
		Depth:       1,
		Nodes:       int64(len(moves)),
		Evaluations: int64(len(moves)),
	}
}
