package searcher

import (
	"errors"
	"isolation/game"
	"math"

	"github.com/rs/zerolog/log"
)

// AlphaBeta deepens an alpha-beta search one ply at a time until the turn runs
// out, and plays the move of the deepest search that finished.
type AlphaBeta struct {
	settings
}

func NewAlphaBeta(options ...Option) *AlphaBeta {
	return &AlphaBeta{settings: newSettings(options)}
}

func (a *AlphaBeta) FindMove(state game.State, timeLeft TimeLeft) (game.Move, SearchMetric) {
	t := a.newTurn(state, timeLeft)
	t.metrics.Start("alphabeta")

	if len(state.LegalMoves()) == 0 {
		return game.NoMove, t.metrics.Complete()
	}

	best := game.NoMove
	for depth := 1; depth <= a.maxDepth; depth++ {
		move, score, err := a.search(t, state, depth, math.Inf(-1), math.Inf(1))
		if errors.Is(err, ErrSearchTimeout) {
			t.metrics.TimeOut()
			log.Debug().Msgf("alphabeta timed out at depth %d, playing %v", depth, best)
			break
		}
		if err != nil {
			panic(err)
		}
		best = move
		t.metrics.CompleteDepth(depth)
		if move == game.NoMove {
			// Every move loses at this depth
			log.Debug().Msgf("alphabeta depth %d: every move loses", depth)
			break
		}
		log.Debug().Msgf("alphabeta depth %d: %v scores %.2f", depth, move, score)
	}

	return best, t.metrics.Complete()
}

// Search runs a single alpha-beta search of depth plies over the full window.
// The value matches Minimax.Search at the same depth. When every move loses it
// returns game.NoMove.
func (a *AlphaBeta) Search(state game.State, depth int, timeLeft TimeLeft) (game.Move, float64, error) {
	return a.search(a.newTurn(state, timeLeft), state, depth, math.Inf(-1), math.Inf(1))
}

func (a *AlphaBeta) search(t turn, state game.State, depth int, alpha, beta float64) (game.Move, float64, error) {
	if t.expired() {
		return game.NoMove, 0, ErrSearchTimeout
	}

	moves := state.LegalMoves()
	if len(moves) == 0 || depth == 0 {
		return game.NoMove, state.Utility(t.player), nil
	}

	bestMove, bestScore := game.NoMove, math.Inf(-1)
	for _, move := range moves {
		score, err := a.minValue(t, state.Forecast(move), depth-1, alpha, beta)
		if err != nil {
			return game.NoMove, 0, err
		}
		if score >= beta {
			t.metrics.AddCutoff()
			return move, score, nil
		}
		if score > bestScore {
			bestMove, bestScore = move, score
		}
		alpha = math.Max(alpha, bestScore)
	}
	return bestMove, bestScore, nil
}

func (a *AlphaBeta) maxValue(t turn, state game.State, depth int, alpha, beta float64) (float64, error) {
	if t.expired() {
		return 0, ErrSearchTimeout
	}

	moves, score, done := t.leaf(state, depth)
	if done {
		return score, nil
	}

	best := math.Inf(-1)
	for _, move := range moves {
		score, err := a.minValue(t, state.Forecast(move), depth-1, alpha, beta)
		if err != nil {
			return 0, err
		}
		best = math.Max(best, score)
		if best >= beta {
			t.metrics.AddCutoff()
			return best, nil
		}
		alpha = math.Max(alpha, best)
	}
	return best, nil
}

func (a *AlphaBeta) minValue(t turn, state game.State, depth int, alpha, beta float64) (float64, error) {
	if t.expired() {
		return 0, ErrSearchTimeout
	}

	moves, score, done := t.leaf(state, depth)
	if done {
		return score, nil
	}

	best := math.Inf(1)
	for _, move := range moves {
		score, err := a.maxValue(t, state.Forecast(move), depth-1, alpha, beta)
		if err != nil {
			return 0, err
		}
		best = math.Min(best, score)
		if best <= alpha {
			t.metrics.AddCutoff()
			return best, nil
		}
		beta = math.Min(beta, best)
	}
	return best, nil
}
