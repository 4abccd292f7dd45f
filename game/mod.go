package game

// State is the game-state oracle consumed by the searchers. Operations never
// mutate the receiver: Forecast always returns a new State.
type State interface {
	// ActivePlayer is the player to move
	ActivePlayer() string
	Opponent(player string) string
	// LegalMoves returns the moves of the active player
	LegalMoves() []Move
	MovesFor(player string) []Move
	Forecast(move Move) State
	IsWinner(player string) bool
	IsLoser(player string) bool
	// Utility is +Inf for a won state, -Inf for a lost state and 0 otherwise,
	// from the point of view of player.
	Utility(player string) float64
	// Location is NoMove until the player has made its first move
	Location(player string) Move
	Dimensions() (height, width int)
}

// Evaluator scores a state from the point of view of player. Implementations
// must return +Inf on a won state, -Inf on a lost state and a finite value
// otherwise.
type Evaluator interface {
	Score(state State, player string) float64
}

// Evaluate adapts a plain function to the Evaluator interface.
type Evaluate func(state State, player string) float64

func (e Evaluate) Score(state State, player string) float64 {
	return e(state, player)
}

type StateHash uint64
