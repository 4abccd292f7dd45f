package communication

import (
	"encoding/json"
	"fmt"
	"isolation/engine"
	"isolation/experiments/metrics"
	"isolation/game"
)

// Message types sent to spectators
const (
	MoveMessage     = "move"
	GameOverMessage = "game_over"
	PingMessage     = "ping"
)

type Message struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type MovePayload struct {
	Step   int        `json:"step"`
	Player string     `json:"player"`
	Row    int        `json:"row"`
	Col    int        `json:"col"`
	Board  BoardState `json:"board"`
}

type BoardState struct {
	Height    int       `json:"height"`
	Width     int       `json:"width"`
	Players   [2]string `json:"players"`
	Active    string    `json:"active"`
	Blocked   [][2]int  `json:"blocked"`
	Locations [2][2]int `json:"locations"` // [-1, -1] before the first move
	Hash      string    `json:"hash"`
	Text      string    `json:"text"`
}

type GameOverPayload struct {
	Players    [2]string `json:"players"`
	Winner     string    `json:"winner"`
	Reason     string    `json:"reason"`
	TotalMoves int       `json:"total_moves"`
	DurationMS int64     `json:"duration_ms"`
}

func NewBoardState(board *game.Board, hash game.StateHash) BoardState {
	state := BoardState{
		Height:  board.Height,
		Width:   board.Width,
		Players: board.Players,
		Active:  board.ActivePlayer(),
		Blocked: [][2]int{},
		Hash:    fmt.Sprintf("%016x", uint64(hash)),
		Text:    board.String(),
	}
	for i, loc := range board.Locations {
		state.Locations[i] = [2]int{loc.Row, loc.Col}
	}
	for i, blocked := range board.Blocked {
		if blocked {
			state.Blocked = append(state.Blocked, [2]int{i / board.Width, i % board.Width})
		}
	}
	return state
}

func NewMoveMessage(update engine.Update) Message {
	return newMessage(MoveMessage, MovePayload{
		Step:   update.Step,
		Player: update.Player,
		Row:    update.Move.Row,
		Col:    update.Move.Col,
		Board:  NewBoardState(update.Board, update.Hash),
	})
}

func NewGameOverMessage(result metrics.GameMetric) Message {
	return newMessage(GameOverMessage, GameOverPayload{
		Players:    result.Players,
		Winner:     result.Winner,
		Reason:     result.Reason,
		TotalMoves: result.TotalMoves,
		DurationMS: result.Duration.Milliseconds(),
	})
}

func newMessage(kind string, payload any) Message {
	data, err := json.Marshal(payload)
	if err != nil {
		panic(err) // Payloads are plain structs
	}
	return Message{Type: kind, Payload: data}
}
