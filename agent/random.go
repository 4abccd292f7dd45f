package agent

import (
	"isolation/game"
	"isolation/searcher"
	"time"

	"golang.org/x/exp/rand"
)

// Random plays a uniformly random legal move
type Random struct {
	rng *rand.Rand
}

func NewRandom(seed uint64) *Random {
	return &Random{rng: rand.New(rand.NewSource(seed))}
}

func (r *Random) FindMove(state game.State, _ searcher.TimeLeft) (game.Move, searcher.SearchMetric) {
	start := time.Now()
	metric := searcher.SearchMetric{Algorithm: "random", StartTime: start}

	moves := state.LegalMoves()
	if len(moves) == 0 {
		return game.NoMove, metric
	}
	move := moves[r.rng.Intn(len(moves))]
	metric.Duration = time.Since(start)
	return move, metric
}
