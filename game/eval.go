package game

import (
	"fmt"
	"math"
	"sort"
)

// terminal returns the score of a finished game from the point of view of player
func terminal(s State, player string) (float64, bool) {
	if s.IsWinner(player) {
		return math.Inf(1), true
	}
	if s.IsLoser(player) {
		return math.Inf(-1), true
	}
	return 0, false
}

// EvaluateNull only scores finished games, every other state is worth 0
func EvaluateNull(s State, player string) float64 {
	score, _ := terminal(s, player)
	return score
}

// EvaluateOpenMoves counts the moves left to player
func EvaluateOpenMoves(s State, player string) float64 {
	if score, done := terminal(s, player); done {
		return score
	}
	return float64(len(s.MovesFor(player)))
}

// EvaluateImproved scores the difference between player's moves left and the
// opponent's moves left. The more moves player keeps, the better.
func EvaluateImproved(s State, player string) float64 {
	if score, done := terminal(s, player); done {
		return score
	}
	own, other := moveCounts(s, player)
	return float64(own - other)
}

// EvaluateCenterTiebreak scores like EvaluateImproved, and breaks ties by
// rewarding the player closer to the centre of the board.
func EvaluateCenterTiebreak(s State, player string) float64 {
	if score, done := terminal(s, player); done {
		return score
	}
	own, other := moveCounts(s, player)
	if own != other {
		return float64(own - other)
	}

	height, width := s.Dimensions()
	center := Move{Row: height / 2, Col: width / 2}
	ownDistance := manhattan(s.Location(player), center)
	otherDistance := manhattan(s.Location(s.Opponent(player)), center)
	return float64(otherDistance-ownDistance) / 10.
}

// EvaluateDistance scales the move difference by the distance between the
// players, so a lead counts for more while the players are close enough to
// interfere with each other.
func EvaluateDistance(s State, player string) float64 {
	if score, done := terminal(s, player); done {
		return score
	}
	own, other := moveCounts(s, player)
	delta := float64(own - other)

	distance := manhattan(s.Location(player), s.Location(s.Opponent(player)))
	if distance == 0 {
		return delta
	}
	return delta / float64(distance)
}

func moveCounts(s State, player string) (own, other int) {
	return len(s.MovesFor(player)), len(s.MovesFor(s.Opponent(player)))
}

func manhattan(a, b Move) int {
	return abs(a.Row-b.Row) + abs(a.Col-b.Col)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

var evaluators = map[string]Evaluate{
	"null":     EvaluateNull,
	"open":     EvaluateOpenMoves,
	"improved": EvaluateImproved,
	"center":   EvaluateCenterTiebreak,
	"distance": EvaluateDistance,
}

// LookupEvaluator resolves a heuristic by its configuration name
func LookupEvaluator(name string) (Evaluate, error) {
	evaluate, ok := evaluators[name]
	if !ok {
		return nil, fmt.Errorf("unknown evaluator %q (available: %v)", name, EvaluatorNames())
	}
	return evaluate, nil
}

// EvaluatorNames lists the configuration names in sorted order
func EvaluatorNames() []string {
	names := make([]string, 0, len(evaluators))
	for name := range evaluators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
