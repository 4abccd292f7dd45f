package engine

import (
	"isolation/agent"
	"isolation/experiments/metrics"
	"isolation/game"
	"slices"
	"time"

	"github.com/rs/zerolog/log"
)

// Local plays two in-process agents against each other on a board
type Local struct {
	board     *game.Board
	agents    [2]agent.Agent // Indexed like board.Players
	timeLimit time.Duration
	maxMoves  int
	collector metrics.Collector
	observer  Observer
}

func LocalEngine(board *game.Board, agents [2]agent.Agent, timeLimit time.Duration, maxMoves int) *Local {
	if agents[0] == nil || agents[1] == nil {
		panic("need two agents")
	}
	if timeLimit <= 0 {
		panic("time limit must be positive")
	}
	if maxMoves <= 0 {
		panic("max moves must be positive")
	}
	return &Local{
		board:     board,
		agents:    agents,
		timeLimit: timeLimit,
		maxMoves:  maxMoves,
		collector: metrics.NewCollector(),
	}
}

// Observe registers an observer notified after every move
func (e *Local) Observe(observer Observer) *Local {
	e.observer = observer
	return e
}

// Run plays until a player cannot or does not move properly. The player to
// move loses when it has no legal move, returns game.NoMove while it has legal
// moves, plays an illegal move, or goes over the time limit.
func (e *Local) Run() (string, metrics.GameMetric, []metrics.MoveMetric) {
	e.collector.Start(e.board.Players)
	log.Debug().Msgf("%s is starting on a %dx%d board", e.board.ActivePlayer(), e.board.Height, e.board.Width)

	for step := 1; step <= e.maxMoves; step++ {
		player := e.board.ActivePlayer()
		legalMoves := e.board.LegalMoves()
		if len(legalMoves) == 0 {
			return e.finish(e.board.Opponent(player), metrics.NoMoves)
		}

		hash := e.board.Hash()
		clock := NewClock(e.timeLimit)
		clock.Start()
		move, searchMetric := e.agents[e.board.Active].FindMove(e.board.Copy(), clock.TimeLeft)
		e.collector.AddMove(player, move, hash, searchMetric)

		switch {
		case clock.Expired():
			log.Debug().Msgf("%s took %v of %v", player, clock.Elapsed(), e.timeLimit)
			return e.finish(e.board.Opponent(player), metrics.Timeout)
		case move == game.NoMove:
			return e.finish(e.board.Opponent(player), metrics.Forfeit)
		case !slices.Contains(legalMoves, move):
			log.Debug().Msgf("%s played %v, legal moves are %v", player, move, legalMoves)
			return e.finish(e.board.Opponent(player), metrics.IllegalMove)
		}

		e.board.Apply(move)
		if e.observer != nil {
			e.observer.OnMove(Update{
				Step:   step,
				Player: player,
				Move:   move,
				Board:  e.board.Copy(),
				Hash:   e.board.Hash(),
			})
		}
	}

	return e.finish("", metrics.MaxMoves)
}

func (e *Local) finish(winner, reason string) (string, metrics.GameMetric, []metrics.MoveMetric) {
	gameMetric, moveMetrics := e.collector.Complete(winner, reason)
	log.Debug().Msgf("game over after %d moves: winner %q (%s)", gameMetric.TotalMoves, winner, reason)
	if e.observer != nil {
		e.observer.OnGameOver(gameMetric)
	}
	return winner, gameMetric, moveMetrics
}
