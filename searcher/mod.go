package searcher

import (
	"errors"
	"isolation/game"
	"time"
)

// ErrSearchTimeout aborts a search once the time left in the turn drops below
// the timer threshold. It is recovered by FindMove and never reaches callers
// of FindMove.
var ErrSearchTimeout = errors.New("search timeout")

// TimeLeft reports the time remaining in the current turn. It is polled on
// every node, so it must be cheap to call.
type TimeLeft func() time.Duration

type Searcher interface {
	// FindMove returns the move to play for the active player of state, or
	// game.NoMove when there is no legal move or no search finished in time.
	FindMove(state game.State, timeLeft TimeLeft) (game.Move, SearchMetric)
}

// turn holds what a single FindMove call threads through the recursion
type turn struct {
	player    string
	timeLeft  TimeLeft
	threshold time.Duration
	evaluator game.Evaluator
	metrics   Collector
}

func (t turn) expired() bool {
	return t.timeLeft() < t.threshold
}

// leaf resolves states the recursion does not expand: terminal states score
// their utility, states at the depth horizon score the evaluator. Otherwise
// it returns the moves to search.
func (t turn) leaf(state game.State, depth int) (moves []game.Move, score float64, done bool) {
	t.metrics.AddNode()

	moves = state.LegalMoves()
	if len(moves) == 0 {
		return nil, state.Utility(t.player), true
	}
	if depth == 0 {
		t.metrics.AddEvaluation()
		return nil, t.evaluator.Score(state, t.player), true
	}
	return moves, 0, false
}
