package game

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

// openPosition has p1 on the centre of a 5x5 board with 8 moves, and p2 in a
// corner with 2 moves. p1 is to move.
func openPosition() *Board {
	board := NewBoard("p1", "p2", 5, 5)
	board.Apply(Move{Row: 2, Col: 2})
	board.Apply(Move{Row: 0, Col: 0})
	return board
}

func TestEvaluators(t *testing.T) {
	t.Run("open moves", func(t *testing.T) {
		require.Equal(t, 8., EvaluateOpenMoves(openPosition(), "p1"))
		require.Equal(t, 2., EvaluateOpenMoves(openPosition(), "p2"))
	})

	t.Run("improved", func(t *testing.T) {
		require.Equal(t, 6., EvaluateImproved(openPosition(), "p1"))
		require.Equal(t, -6., EvaluateImproved(openPosition(), "p2"))
	})

	t.Run("distance", func(t *testing.T) {
		require.Equal(t, 1.5, EvaluateDistance(openPosition(), "p1"), "Should divide the lead by the distance of 4")
	})

	t.Run("distance between stacked players", func(t *testing.T) {
		board := openPosition()
		board.Locations[1] = board.Locations[0]

		require.False(t, math.IsInf(EvaluateDistance(board, "p1"), 0), "Should not divide by zero")
	})

	t.Run("centre tiebreak", func(t *testing.T) {
		require.Equal(t, 6., EvaluateCenterTiebreak(openPosition(), "p1"), "Should score the lead when there is one")

		// Both players have 2 moves, p2 is 2 cells closer to the centre
		board := NewBoard("p1", "p2", 5, 5)
		board.Apply(Move{Row: 0, Col: 0})
		board.Apply(Move{Row: 1, Col: 1})
		board.Block(Move{Row: 3, Col: 0}, Move{Row: 3, Col: 2})

		require.InDelta(t, -0.2, EvaluateCenterTiebreak(board, "p1"), 1e-9)
		require.InDelta(t, 0.2, EvaluateCenterTiebreak(board, "p2"), 1e-9)
	})

	t.Run("null", func(t *testing.T) {
		require.Zero(t, EvaluateNull(openPosition(), "p1"))
	})
}

func TestEvaluatorsOnFinishedGames(t *testing.T) {
	// p1 is stuck on the centre of a 3x3 board
	board := NewBoard("p1", "p2", 3, 3)
	board.Apply(Move{Row: 1, Col: 1})
	board.Apply(Move{Row: 0, Col: 0})

	for _, name := range EvaluatorNames() {
		evaluate, err := LookupEvaluator(name)
		require.NoError(t, err)

		require.Equal(t, math.Inf(-1), evaluate(board, "p1"), "%s should score a lost game as -Inf", name)
		require.Equal(t, math.Inf(1), evaluate.Score(board, "p2"), "%s should score a won game as +Inf", name)
	}
}

func TestLookupEvaluator(t *testing.T) {
	require.Equal(t, []string{"center", "distance", "improved", "null", "open"}, EvaluatorNames())

	evaluate, err := LookupEvaluator("improved")
	require.NoError(t, err)
	require.Equal(t, 6., evaluate(openPosition(), "p1"))

	_, err = LookupEvaluator("aggressive")
	require.ErrorContains(t, err, `unknown evaluator "aggressive"`)
}
