package engine

import (
	"isolation/experiments/metrics"
	"isolation/game"
)

type Engine interface {
	// Run plays a game till there's a winner or the max number of moves is reached
	Run() (winner string, gameMetric metrics.GameMetric, moveMetrics []metrics.MoveMetric)
}

type Update struct {
	Step   int
	Player string
	Move   game.Move
	Board  *game.Board // Position after the move, owned by the observer
	Hash   game.StateHash
}

// Observer follows a game as it is played. Calls come from the goroutine
// running the game.
type Observer interface {
	OnMove(update Update)
	OnGameOver(result metrics.GameMetric)
}
