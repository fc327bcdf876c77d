package game

import (
	"encoding/json"
	"time"
)

// MinTurnTime is the smallest turn/claim window a game may be created with,
// in seconds.
const MinTurnTime = 5

// TimeoutState encodes the outstanding dispute or offer on a game. At most
// one is pending at any time.
type TimeoutState int8

const (
	TimeoutNone        TimeoutState = 0
	TimeoutWinClaimed  TimeoutState = 1  // opponent abandoned outright
	TimeoutClaimed     TimeoutState = 2  // softer claim, needs the turn window to elapse
	DrawOfferedPlayer1 TimeoutState = -1
	DrawOfferedPlayer2 TimeoutState = -2
)

// Game is the full stateful record of one play session. Created once,
// mutated in place under the registry lock, never deleted.
type Game struct {
	ID     string `json:"id"`
	Alias1 string `json:"alias1"`
	Alias2 string `json:"alias2,omitempty"`

	// Player addresses. Player2 is empty until someone joins.
	Player1 string `json:"player1"`
	Player2 string `json:"player2,omitempty"`

	// TurnTime is the minimum number of seconds a turn or claim window lasts.
	TurnTime int64 `json:"turn_time"`

	// NextPlayer is the address whose move is expected now. Empty means
	// "no one yet" (staked game awaiting its second player).
	NextPlayer string `json:"next_player,omitempty"`

	// Stake is the single-side amount required to enter the game. Pot stays
	// zero until the game is matched and then holds exactly 2*Stake.
	Stake int64 `json:"stake"`
	Pot   int64 `json:"pot"`

	Ended  bool   `json:"ended"`
	Winner string `json:"winner,omitempty"` // empty for draw or undecided

	Player1Winnings int64 `json:"player1_winnings"`
	Player2Winnings int64 `json:"player2_winnings"`

	TimeoutState   TimeoutState `json:"timeout_state"`
	TimeoutStarted time.Time    `json:"timeout_started,omitzero"`

	// Per-player archival flags, orthogonal to the game lifecycle.
	Player1Closed bool `json:"player1_closed"`
	Player2Closed bool `json:"player2_closed"`

	// Board is opaque to the registry; only the configured MoveValidator
	// ever interprets it.
	Board json.RawMessage `json:"board,omitempty"`

	// SidePreference is the creator's color/side choice, carried for the
	// game-specific layer. The registry never reads it.
	SidePreference bool `json:"side_preference"`

	CreatedAt time.Time `json:"created_at"`
}

// isPlayer reports whether addr is one of the two participants.
func (g *Game) isPlayer(addr string) bool {
	return addr != "" && (addr == g.Player1 || addr == g.Player2)
}

// started reports whether a second player has joined.
func (g *Game) started() bool {
	return g.Player2 != ""
}

// opponent returns the other participant's address.
func (g *Game) opponent(addr string) string {
	if addr == g.Player1 {
		return g.Player2
	}
	return g.Player1
}

// clearTimeout resets any pending claim or offer. A finished turn implicitly
// cancels whatever was pending against the mover.
func (g *Game) clearTimeout() {
	g.TimeoutState = TimeoutNone
	g.TimeoutStarted = time.Time{}
	if !g.Ended {
		g.Winner = ""
	}
}
