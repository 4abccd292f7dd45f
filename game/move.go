package game

import "fmt"

// Move is a board coordinate. NoMove signals that no legal move is available.
type Move struct {
	Row int
	Col int
}

var NoMove = Move{Row: -1, Col: -1}

func (m Move) String() string {
	return fmt.Sprintf("(%d, %d)", m.Row, m.Col)
}

// knight-style jumps available from any occupied cell
var directions = [8]Move{
	{-2, -1}, {-2, 1}, {-1, -2}, {-1, 2},
	{1, -2}, {1, 2}, {2, -1}, {2, 1},
}

func (m Move) offset(d Move) Move {
	return Move{Row: m.Row + d.Row, Col: m.Col + d.Col}
}
