package metrics

import (
	"isolation/game"
	"isolation/searcher"
	"time"
)

// Reasons a game ended
const (
	NoMoves     = "no moves" // The loser had no legal move left
	Forfeit     = "forfeit"  // The loser gave up with game.NoMove while it had moves
	IllegalMove = "illegal move"
	Timeout     = "timeout"
	MaxMoves    = "max moves" // Stopped without a winner
)

type MoveMetric struct {
	Step   int
	Player string
	Move   game.Move
	Hash   game.StateHash // Position the move was played from
	searcher.SearchMetric
}

type GameMetric struct {
	Players    [2]string // Players[0] moves first
	Winner     string    // "" when stopped without a winner
	Reason     string
	StartTime  time.Time
	EndTime    time.Time
	Duration   time.Duration
	TotalMoves int
}

// Collector records a single game as it is played
type Collector interface {
	Start(players [2]string)
	AddMove(player string, move game.Move, hash game.StateHash, metric searcher.SearchMetric)
	Complete(winner, reason string) (GameMetric, []MoveMetric)
}

type collector struct {
	players   [2]string
	startTime time.Time
	moves     []MoveMetric
}

func NewCollector() Collector {
	return &collector{}
}

func (c *collector) Start(players [2]string) {
	c.players = players
	c.startTime = time.Now()
	c.moves = nil
}

func (c *collector) AddMove(player string, move game.Move, hash game.StateHash, metric searcher.SearchMetric) {
	c.moves = append(c.moves, MoveMetric{
		Step:         len(c.moves) + 1,
		Player:       player,
		Move:         move,
		Hash:         hash,
		SearchMetric: metric,
	})
}

func (c *collector) Complete(winner, reason string) (GameMetric, []MoveMetric) {
	endTime := time.Now()
	return GameMetric{
		Players:    c.players,
		Winner:     winner,
		Reason:     reason,
		StartTime:  c.startTime,
		EndTime:    endTime,
		Duration:   endTime.Sub(c.startTime),
		TotalMoves: len(c.moves),
	}, c.moves
}
