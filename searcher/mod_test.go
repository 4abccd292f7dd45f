package searcher

import (
	"isolation/game"
	"math"
	"time"
)

const (
	maxPlayer = "max"
	minPlayer = "min"
)

// pass keeps a horizon leaf playable once the search goes deeper than the tree
var pass = game.Move{Row: 9, Col: 9}

// mockNode is a node of a synthetic game tree. Values are always from the
// point of view of maxPlayer.
type mockNode struct {
	value    float64
	winner   string
	children []*mockNode
}

type mockState struct {
	node   *mockNode
	active string
}

func (m mockState) ActivePlayer() string {
	return m.active
}

func (m mockState) Opponent(player string) string {
	if player == maxPlayer {
		return minPlayer
	}
	return maxPlayer
}

func (m mockState) LegalMoves() []game.Move {
	return m.MovesFor(m.active)
}

func (m mockState) MovesFor(string) []game.Move {
	if m.node.winner != "" {
		return nil
	}
	if len(m.node.children) == 0 {
		return []game.Move{pass}
	}
	moves := make([]game.Move, len(m.node.children))
	for i := range m.node.children {
		moves[i] = game.Move{Row: 0, Col: i}
	}
	return moves
}

func (m mockState) Forecast(move game.Move) game.State {
	next := m.node
	if move != pass {
		next = m.node.children[move.Col]
	}
	return mockState{node: next, active: m.Opponent(m.active)}
}

func (m mockState) IsWinner(player string) bool {
	return m.node.winner == player
}

func (m mockState) IsLoser(player string) bool {
	return m.node.winner != "" && m.node.winner != player
}

func (m mockState) Utility(player string) float64 {
	switch m.node.winner {
	case "":
		return 0
	case player:
		return math.Inf(1)
	}
	return math.Inf(-1)
}

func (m mockState) Location(string) game.Move {
	return game.NoMove
}

func (m mockState) Dimensions() (int, int) {
	return 0, 0
}

func root(children ...*mockNode) mockState {
	return mockState{node: branch(0, children...), active: maxPlayer}
}

func branch(value float64, children ...*mockNode) *mockNode {
	return &mockNode{value: value, children: children}
}

func leaves(values ...float64) []*mockNode {
	nodes := make([]*mockNode, len(values))
	for i, v := range values {
		nodes[i] = &mockNode{value: v}
	}
	return nodes
}

func won(player string) *mockNode {
	return &mockNode{winner: player}
}

// classicTree is the textbook two-ply tree: minimax value 3 through the first
// move, and alpha-beta prunes two leaves of the second subtree.
func classicTree() mockState {
	return root(
		branch(0, leaves(3, 12, 8)...),
		branch(0, leaves(2, 4, 6)...),
		branch(0, leaves(14, 5, 2)...),
	)
}

// threePlyTree has minimax value 5 through the first move. Alpha-beta skips
// three of its eight leaves.
func threePlyTree() mockState {
	return root(
		branch(0, branch(0, leaves(3, 5)...), branch(0, leaves(6, 9)...)),
		branch(0, branch(0, leaves(1, 2)...), branch(0, leaves(0, -1)...)),
	)
}

// countingEvaluator scores mock states by their node value and counts calls
type countingEvaluator struct {
	calls int
}

func (e *countingEvaluator) Score(state game.State, player string) float64 {
	e.calls++
	value := state.(mockState).node.value
	if player == minPlayer {
		return -value
	}
	return value
}

func unlimited() time.Duration {
	return time.Hour
}

func expired() time.Duration {
	return 0
}

// countdown reports plenty of time for the first n polls and none after
func countdown(n int) (TimeLeft, *int) {
	polls := 0
	return func() time.Duration {
		polls++
		if polls > n {
			return 0
		}
		return time.Hour
	}, &polls
}
