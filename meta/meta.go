// meta/meta.go
package meta

import "time"

// BOARD_HEIGHT defines the default number of board rows.
const BOARD_HEIGHT = 7

// BOARD_WIDTH defines the default number of board columns.
const BOARD_WIDTH = 7

// TIME_LIMIT defines the time budget of a single turn.
const TIME_LIMIT = 150 * time.Millisecond

// TIMER_THRESHOLD defines the time left at which a search aborts.
const TIMER_THRESHOLD = 10 * time.Millisecond

// SEARCH_DEPTH defines the fixed depth of minimax search.
const SEARCH_DEPTH = 3

// MAX_DEPTH caps iterative deepening.
const MAX_DEPTH = 100

// GAMES defines the number of games per matchup and seat order.
const GAMES = 5

// RANDOM_OPENINGS defines the number of random moves played before agents take over.
const RANDOM_OPENINGS = 2
