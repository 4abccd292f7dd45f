package searcher

import (
	"isolation/game"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAlphaBetaSearch(t *testing.T) {
	trees := []struct {
		name  string
		state mockState
		depth int
	}{
		{"classic tree", classicTree(), 2},
		{"three ply tree", threePlyTree(), 3},
	}

	for _, tree := range trees {
		t.Run(tree.name, func(t *testing.T) {
			minimaxEvaluator := &countingEvaluator{}
			alphaBetaEvaluator := &countingEvaluator{}
			m := NewMinimax(WithEvaluator(minimaxEvaluator))
			a := NewAlphaBeta(WithEvaluator(alphaBetaEvaluator))

			wantMove, wantScore, err := m.Search(tree.state, tree.depth, unlimited)
			require.NoError(t, err)
			gotMove, gotScore, err := a.Search(tree.state, tree.depth, unlimited)
			require.NoError(t, err)

			require.Equal(t, wantMove, gotMove, "Pruning should not change the move")
			require.Equal(t, wantScore, gotScore, "Pruning should not change the value")
			require.Less(t, alphaBetaEvaluator.calls, minimaxEvaluator.calls, "Pruning should skip leaves")
		})
	}

	t.Run("pruned leaves", func(t *testing.T) {
		evaluator := &countingEvaluator{}
		a := NewAlphaBeta(WithEvaluator(evaluator))

		_, _, err := a.Search(classicTree(), 2, unlimited)
		require.NoError(t, err)
		require.Equal(t, 7, evaluator.calls, "Should skip the last two leaves of the second subtree")

		evaluator.calls = 0
		_, _, err = a.Search(threePlyTree(), 3, unlimited)
		require.NoError(t, err)
		require.Equal(t, 5, evaluator.calls)
	})

	t.Run("winning move cuts off the root", func(t *testing.T) {
		evaluator := &countingEvaluator{}
		a := NewAlphaBeta(WithEvaluator(evaluator))
		state := root(won(maxPlayer), branch(100))

		move, score, err := a.Search(state, 1, unlimited)

		require.NoError(t, err)
		require.Equal(t, game.Move{Row: 0, Col: 0}, move)
		require.Equal(t, math.Inf(1), score)
		require.Zero(t, evaluator.calls, "Should not look past the winning move")
	})

	t.Run("every move loses", func(t *testing.T) {
		a := NewAlphaBeta(WithEvaluator(&countingEvaluator{}))
		state := root(won(minPlayer), won(minPlayer))

		move, score, err := a.Search(state, 1, unlimited)

		require.NoError(t, err)
		require.Equal(t, game.NoMove, move)
		require.Equal(t, math.Inf(-1), score)
	})

	t.Run("timeout", func(t *testing.T) {
		a := NewAlphaBeta(WithEvaluator(&countingEvaluator{}))
		timeLeft, _ := countdown(2)

		_, _, err := a.Search(classicTree(), 2, timeLeft)

		require.ErrorIs(t, err, ErrSearchTimeout)
	})
}

func TestAlphaBetaMatchesMinimaxOnBoards(t *testing.T) {
	open := game.NewBoard("p1", "p2", 5, 5)
	open.Apply(game.Move{Row: 2, Col: 2})
	open.Apply(game.Move{Row: 0, Col: 0})

	crowded := game.NewBoard("p1", "p2", 5, 5)
	crowded.Block(game.Move{Row: 0, Col: 1}, game.Move{Row: 1, Col: 3}, game.Move{Row: 3, Col: 0})
	crowded.Apply(game.Move{Row: 1, Col: 1})
	crowded.Apply(game.Move{Row: 3, Col: 3})
	crowded.Apply(game.Move{Row: 2, Col: 3})

	evaluators := map[string]game.Evaluate{
		"improved": game.EvaluateImproved,
		"center":   game.EvaluateCenterTiebreak,
		"open":     game.EvaluateOpenMoves,
	}

	for name, evaluate := range evaluators {
		for _, board := range []*game.Board{open, crowded} {
			m := NewMinimax(WithEvaluator(evaluate))
			a := NewAlphaBeta(WithEvaluator(evaluate))

			for depth := 1; depth <= 4; depth++ {
				wantMove, wantScore, err := m.Search(board, depth, unlimited)
				require.NoError(t, err)
				gotMove, gotScore, err := a.Search(board, depth, unlimited)
				require.NoError(t, err)

				require.Equal(t, wantScore, gotScore, "%s at depth %d should back up the same value", name, depth)
				if !math.IsInf(wantScore, -1) {
					require.Equal(t, wantMove, gotMove, "%s at depth %d should pick the same move", name, depth)
				}
			}
		}
	}
}

func TestAlphaBetaFindMove(t *testing.T) {
	// Depth 1 prefers the second move, depth 2 the first
	shallowTrap := func() mockState {
		return root(
			branch(1, leaves(3, 12, 8)...),
			branch(2, leaves(2, 4, 6)...),
			branch(0, leaves(14, 5, 2)...),
		)
	}

	t.Run("no legal moves", func(t *testing.T) {
		evaluator := &countingEvaluator{}
		a := NewAlphaBeta(WithEvaluator(evaluator))
		timeLeft, polls := countdown(10)

		move, _ := a.FindMove(mockState{node: won(minPlayer), active: maxPlayer}, timeLeft)

		require.Equal(t, game.NoMove, move)
		require.Zero(t, evaluator.calls, "Should not evaluate")
		require.Zero(t, *polls, "Should not check the deadline")
	})

	t.Run("deadline already passed", func(t *testing.T) {
		a := NewAlphaBeta(WithEvaluator(&countingEvaluator{}), WithMetrics())

		move, metric := a.FindMove(classicTree(), expired)

		require.Equal(t, game.NoMove, move, "Should have nothing to play")
		require.True(t, metric.TimedOut)
		require.Zero(t, metric.Depth)
	})

	t.Run("searching to the depth cap", func(t *testing.T) {
		a := NewAlphaBeta(WithEvaluator(&countingEvaluator{}), WithMaxDepth(2))

		move, _ := a.FindMove(shallowTrap(), unlimited)

		require.Equal(t, game.Move{Row: 0, Col: 0}, move, "Should play the move of the deepest search")
	})

	t.Run("deadline during a deeper search", func(t *testing.T) {
		a := NewAlphaBeta(WithEvaluator(&countingEvaluator{}), WithMaxDepth(2), WithMetrics())
		// The root and its three children finish depth 1
		timeLeft, _ := countdown(4)

		move, metric := a.FindMove(shallowTrap(), timeLeft)

		require.Equal(t, game.Move{Row: 0, Col: 1}, move, "Should keep the move of depth 1")
		require.Equal(t, 1, metric.Depth)
		require.True(t, metric.TimedOut)
	})

	t.Run("deeper search finding only losses", func(t *testing.T) {
		a := NewAlphaBeta(WithEvaluator(&countingEvaluator{}), WithMetrics())
		state := root(
			branch(1, won(minPlayer)),
			branch(2, won(minPlayer), won(minPlayer)),
		)

		move, metric := a.FindMove(state, unlimited)

		require.Equal(t, game.NoMove, move, "Should give up once every move loses")
		require.Equal(t, 2, metric.Depth, "Should stop deepening after depth 2")
		require.False(t, metric.TimedOut)
	})

	t.Run("forced loss", func(t *testing.T) {
		a := NewAlphaBeta(WithEvaluator(&countingEvaluator{}), WithMetrics())
		state := root(won(minPlayer), won(minPlayer))

		move, metric := a.FindMove(state, unlimited)

		require.Equal(t, game.NoMove, move, "Should give up")
		require.Equal(t, 1, metric.Depth)
		require.False(t, metric.TimedOut)
	})

	t.Run("metrics", func(t *testing.T) {
		a := NewAlphaBeta(WithEvaluator(&countingEvaluator{}), WithMaxDepth(2), WithMetrics())

		move, metric := a.FindMove(classicTree(), unlimited)

		require.Equal(t, game.Move{Row: 0, Col: 0}, move)
		require.Equal(t, "alphabeta", metric.Algorithm)
		require.Equal(t, 2, metric.Depth)
		require.Equal(t, int64(3+10), metric.Nodes)
		require.Equal(t, int64(3+7), metric.Evaluations)
		require.Equal(t, int64(2), metric.Cutoffs)
		require.False(t, metric.TimedOut)
	})
}

func TestSearchersOnBoards(t *testing.T) {
	searchers := map[string]Searcher{
		"minimax":   NewMinimax(WithSearchDepth(3)),
		"alphabeta": NewAlphaBeta(WithMaxDepth(6)),
	}

	for name, s := range searchers {
		t.Run(name+" with a single open cell", func(t *testing.T) {
			board := game.NewBoard("p1", "p2", 3, 3)
			for _, cell := range board.OpenCells() {
				if cell != (game.Move{Row: 1, Col: 2}) {
					board.Block(cell)
				}
			}

			move, _ := s.FindMove(board, unlimited)

			require.Equal(t, game.Move{Row: 1, Col: 2}, move)
		})

		t.Run(name+" with an immediate win", func(t *testing.T) {
			// p1 at (0, 0) can take (1, 2) and leave p2 at (2, 0) without a move,
			// or go to (2, 1) which keeps the game going
			board := game.NewBoard("p1", "p2", 4, 4)
			board.Apply(game.Move{Row: 0, Col: 0})
			board.Apply(game.Move{Row: 2, Col: 0})
			board.Block(game.Move{Row: 0, Col: 1}, game.Move{Row: 3, Col: 2})

			require.ElementsMatch(t, []game.Move{{Row: 1, Col: 2}, {Row: 2, Col: 1}}, board.LegalMoves())
			require.True(t, board.Forecast(game.Move{Row: 1, Col: 2}).IsWinner("p1"))

			move, _ := s.FindMove(board, unlimited)

			require.Equal(t, game.Move{Row: 1, Col: 2}, move)
		})
	}

	t.Run("with an immediate win at every depth", func(t *testing.T) {
		state := root(branch(100), won(maxPlayer), branch(50))
		for depth := 1; depth <= 4; depth++ {
			m := NewMinimax(WithEvaluator(&countingEvaluator{}), WithSearchDepth(depth))
			a := NewAlphaBeta(WithEvaluator(&countingEvaluator{}), WithMaxDepth(depth))

			move, _ := m.FindMove(state, unlimited)
			require.Equal(t, game.Move{Row: 0, Col: 1}, move, "Minimax at depth %d", depth)
			move, _ = a.FindMove(state, unlimited)
			require.Equal(t, game.Move{Row: 0, Col: 1}, move, "Alpha-beta at depth %d", depth)
		}
	})
}
