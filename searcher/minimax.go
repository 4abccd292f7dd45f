package searcher

import (
	"errors"
	"isolation/game"
	"math"

	"github.com/rs/zerolog/log"
)

// Minimax searches the game tree exhaustively to a fixed depth.
type Minimax struct {
	settings
}

func NewMinimax(options ...Option) *Minimax {
	return &Minimax{settings: newSettings(options)}
}

func (m *Minimax) FindMove(state game.State, timeLeft TimeLeft) (game.Move, SearchMetric) {
	t := m.newTurn(state, timeLeft)
	t.metrics.Start("minimax")

	// Returned when the search does not finish in time
	best := game.NoMove

	move, _, err := m.search(t, state, m.depth)
	switch {
	case err == nil:
		best = move
		t.metrics.CompleteDepth(m.depth)
	case errors.Is(err, ErrSearchTimeout):
		t.metrics.TimeOut()
		log.Debug().Msgf("minimax timed out at depth %d", m.depth)
	default:
		panic(err)
	}

	return best, t.metrics.Complete()
}

// Search returns the best move for the active player of state after searching
// depth plies, along with its backed-up value. It returns game.NoMove when
// state has no legal moves or depth is 0, and ErrSearchTimeout when timeLeft
// drops below the timer threshold.
func (m *Minimax) Search(state game.State, depth int, timeLeft TimeLeft) (game.Move, float64, error) {
	return m.search(m.newTurn(state, timeLeft), state, depth)
}

func (m *Minimax) search(t turn, state game.State, depth int) (game.Move, float64, error) {
	if t.expired() {
		return game.NoMove, 0, ErrSearchTimeout
	}

	moves := state.LegalMoves()
	if len(moves) == 0 || depth == 0 {
		return game.NoMove, state.Utility(t.player), nil
	}

	// First move reaching the maximum wins ties
	bestMove, bestScore := game.NoMove, math.Inf(-1)
	for _, move := range moves {
		score, err := m.minValue(t, state.Forecast(move), depth-1)
		if err != nil {
			return game.NoMove, 0, err
		}
		if bestMove == game.NoMove || score > bestScore {
			bestMove, bestScore = move, score
		}
	}
	return bestMove, bestScore, nil
}

func (m *Minimax) maxValue(t turn, state game.State, depth int) (float64, error) {
	if t.expired() {
		return 0, ErrSearchTimeout
	}

	moves, score, done := t.leaf(state, depth)
	if done {
		return score, nil
	}

	best := math.Inf(-1)
	for _, move := range moves {
		score, err := m.minValue(t, state.Forecast(move), depth-1)
		if err != nil {
			return 0, err
		}
		best = math.Max(best, score)
	}
	return best, nil
}

func (m *Minimax) minValue(t turn, state game.State, depth int) (float64, error) {
	if t.expired() {
		return 0, ErrSearchTimeout
	}

	moves, score, done := t.leaf(state, depth)
	if done {
		return score, nil
	}

	best := math.Inf(1)
	for _, move := range moves {
		score, err := m.maxValue(t, state.Forecast(move), depth-1)
		if err != nil {
			return 0, err
		}
		best = math.Min(best, score)
	}
	return best, nil
}
