package game

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"math"
	"strings"
)

// Board is the isolation board. Two players take turns jumping like chess
// knights to open cells, and every cell a player lands on stays blocked for
// the rest of the game. The player to move with no legal move loses.
type Board struct {
	Height    int
	Width     int
	Players   [2]string // Player names, Players[0] moves first
	Blocked   []bool    // Blocked cells, indexed by row*Width+col
	Locations [2]Move   // Current cell per player, NoMove before the first move
	Active    int       // Index of the player to move
	Moves     int       // Number of moves applied so far
}

// NewBoard returns an empty board where player1 moves first.
func NewBoard(player1, player2 string, height, width int) *Board {
	if player1 == player2 {
		panic("players must have distinct names")
	}
	if height <= 0 || width <= 0 {
		panic(fmt.Sprintf("invalid board dimensions %dx%d", height, width))
	}
	return &Board{
		Height:    height,
		Width:     width,
		Players:   [2]string{player1, player2},
		Blocked:   make([]bool, height*width),
		Locations: [2]Move{NoMove, NoMove},
	}
}

func (b *Board) Copy() *Board {
	blockedCopy := make([]bool, len(b.Blocked))
	copy(blockedCopy, b.Blocked)

	return &Board{
		Height:    b.Height,
		Width:     b.Width,
		Players:   b.Players,
		Blocked:   blockedCopy,
		Locations: b.Locations,
		Active:    b.Active,
		Moves:     b.Moves,
	}
}

func (b *Board) index(player string) int {
	switch player {
	case b.Players[0]:
		return 0
	case b.Players[1]:
		return 1
	}
	panic(fmt.Sprintf("unknown player %q", player))
}

func (b *Board) ActivePlayer() string {
	return b.Players[b.Active]
}

func (b *Board) InactivePlayer() string {
	return b.Players[1-b.Active]
}

func (b *Board) Opponent(player string) string {
	return b.Players[1-b.index(player)]
}

func (b *Board) Dimensions() (int, int) {
	return b.Height, b.Width
}

func (b *Board) Location(player string) Move {
	return b.Locations[b.index(player)]
}

func (b *Board) MoveCount() int {
	return b.Moves
}

func (b *Board) inBounds(m Move) bool {
	return m.Row >= 0 && m.Row < b.Height && m.Col >= 0 && m.Col < b.Width
}

// IsOpen reports whether a player may land on the cell
func (b *Board) IsOpen(m Move) bool {
	return b.inBounds(m) && !b.Blocked[m.Row*b.Width+m.Col]
}

// OpenCells returns every open cell in row-major order
func (b *Board) OpenCells() []Move {
	cells := make([]Move, 0, len(b.Blocked))
	for i, blocked := range b.Blocked {
		if !blocked {
			cells = append(cells, Move{Row: i / b.Width, Col: i % b.Width})
		}
	}
	return cells
}

func (b *Board) LegalMoves() []Move {
	return b.MovesFor(b.ActivePlayer())
}

// MovesFor returns the moves available to player. Before its first move a
// player may go to any open cell.
func (b *Board) MovesFor(player string) []Move {
	from := b.Locations[b.index(player)]
	if from == NoMove {
		return b.OpenCells()
	}

	moves := make([]Move, 0, len(directions))
	for _, d := range directions {
		if to := from.offset(d); b.IsOpen(to) {
			moves = append(moves, to)
		}
	}
	return moves
}

// Apply plays move for the active player in place. The move is not checked
// against the legal moves; the engine does that.
func (b *Board) Apply(move Move) {
	if !b.inBounds(move) {
		panic(fmt.Sprintf("move %v is off the %dx%d board", move, b.Height, b.Width))
	}
	b.Blocked[move.Row*b.Width+move.Col] = true
	b.Locations[b.Active] = move
	b.Active = 1 - b.Active
	b.Moves++
}

func (b *Board) Forecast(move Move) State {
	next := b.Copy()
	next.Apply(move)
	return next
}

// Block marks cells as unavailable without moving any player, for setting up
// positions.
func (b *Board) Block(cells ...Move) {
	for _, c := range cells {
		if !b.inBounds(c) {
			panic(fmt.Sprintf("cell %v is off the %dx%d board", c, b.Height, b.Width))
		}
		b.Blocked[c.Row*b.Width+c.Col] = true
	}
}

func (b *Board) IsWinner(player string) bool {
	return player == b.InactivePlayer() && len(b.LegalMoves()) == 0
}

func (b *Board) IsLoser(player string) bool {
	return player == b.ActivePlayer() && len(b.LegalMoves()) == 0
}

func (b *Board) Utility(player string) float64 {
	if len(b.LegalMoves()) > 0 {
		return 0
	}
	if player == b.InactivePlayer() {
		return math.Inf(1)
	}
	return math.Inf(-1)
}

// Winner returns the winning player, "" while the game is in progress.
func (b *Board) Winner() string {
	if len(b.LegalMoves()) == 0 {
		return b.InactivePlayer()
	}
	return ""
}

func (b *Board) Hash() StateHash {
	h := fnv.New64a()
	buf := make([]byte, 8)

	write := func(v int) {
		binary.LittleEndian.PutUint64(buf, uint64(int64(v)))
		h.Write(buf)
	}

	write(b.Height)
	write(b.Width)
	write(b.Active)
	for _, loc := range b.Locations {
		write(loc.Row)
		write(loc.Col)
	}
	for _, blocked := range b.Blocked {
		if blocked {
			h.Write([]byte{1})
		} else {
			h.Write([]byte{0})
		}
	}
	return StateHash(h.Sum64())
}

// String renders the board with '1' and '2' for the players and '-' for
// blocked cells.
func (b *Board) String() string {
	var sb strings.Builder
	for r := 0; r < b.Height; r++ {
		for c := 0; c < b.Width; c++ {
			cell := Move{Row: r, Col: c}
			switch {
			case cell == b.Locations[0]:
				sb.WriteString(" 1")
			case cell == b.Locations[1]:
				sb.WriteString(" 2")
			case b.Blocked[r*b.Width+c]:
				sb.WriteString(" -")
			default:
				sb.WriteString(" .")
			}
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
