package agent

import (
	"isolation/config"
	"isolation/game"
	"isolation/searcher"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func unlimited() time.Duration {
	return time.Hour
}

func TestNew(t *testing.T) {
	tests := []struct {
		algorithm string
		want      Agent
	}{
		{config.Minimax, &searcher.Minimax{}},
		{config.AlphaBeta, &searcher.AlphaBeta{}},
		{config.Greedy, &Greedy{}},
		{config.Random, &Random{}},
	}

	for _, tt := range tests {
		t.Run(tt.algorithm, func(t *testing.T) {
			c := config.Agent{Name: "agent", Algorithm: tt.algorithm, Evaluator: "open", Depth: 1, MaxDepth: 2}

			got, err := New(c, 1)

			require.NoError(t, err)
			require.IsType(t, tt.want, got)
		})
	}

	t.Run("unknown algorithm", func(t *testing.T) {
		_, err := New(config.Agent{Name: "agent", Algorithm: "mcts", Evaluator: "open"}, 1)
		require.ErrorContains(t, err, `unknown algorithm "mcts"`)
	})

	t.Run("unknown evaluator", func(t *testing.T) {
		_, err := New(config.Agent{Name: "agent", Algorithm: config.Greedy, Evaluator: "aggressive"}, 1)
		require.ErrorContains(t, err, "unknown evaluator")
	})
}

func TestRandom(t *testing.T) {
	t.Run("plays legal moves", func(t *testing.T) {
		board := game.NewBoard("p1", "p2", 5, 5)
		board.Apply(game.Move{Row: 2, Col: 2})
		board.Apply(game.Move{Row: 0, Col: 0})
		random := NewRandom(7)

		for i := 0; i < 20; i++ {
			move, metric := random.FindMove(board, unlimited)
			require.Contains(t, board.LegalMoves(), move)
			require.Equal(t, "random", metric.Algorithm)
		}
	})

	t.Run("same seed plays the same moves", func(t *testing.T) {
		board := game.NewBoard("p1", "p2", 7, 7)
		a, b := NewRandom(42), NewRandom(42)

		for i := 0; i < 10; i++ {
			moveA, _ := a.FindMove(board, unlimited)
			moveB, _ := b.FindMove(board, unlimited)
			require.Equal(t, moveA, moveB)
		}
	})

	t.Run("no legal moves", func(t *testing.T) {
		board := game.NewBoard("p1", "p2", 3, 3)
		board.Apply(game.Move{Row: 1, Col: 1})
		board.Apply(game.Move{Row: 0, Col: 0})

		move, _ := NewRandom(1).FindMove(board, unlimited)

		require.Equal(t, game.NoMove, move)
	})
}

func TestGreedy(t *testing.T) {
	t.Run("takes the winning move", func(t *testing.T) {
		// From (0, 0) p1 can take (1, 2) and leave p2 stuck on (2, 0)
		board := game.NewBoard("p1", "p2", 4, 4)
		board.Apply(game.Move{Row: 0, Col: 0})
		board.Apply(game.Move{Row: 2, Col: 0})
		board.Block(game.Move{Row: 0, Col: 1}, game.Move{Row: 3, Col: 2})

		move, metric := NewGreedy(game.Evaluate(game.EvaluateImproved)).FindMove(board, unlimited)

		require.Equal(t, game.Move{Row: 1, Col: 2}, move)
		require.Equal(t, int64(2), metric.Evaluations)
	})

	t.Run("no legal moves", func(t *testing.T) {
		board := game.NewBoard("p1", "p2", 3, 3)
		board.Apply(game.Move{Row: 1, Col: 1})
		board.Apply(game.Move{Row: 0, Col: 0})

		move, _ := NewGreedy(game.Evaluate(game.EvaluateOpenMoves)).FindMove(board, unlimited)

		require.Equal(t, game.NoMove, move)
	})

	require.Panics(t, func() { NewGreedy(nil) })
}
