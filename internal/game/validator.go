package game

import "encoding/json"

// MoveValidator is the game-specific capability the registry consults before
// accepting a move. Board and move payloads are opaque here; only the
// validator interprets them. mover is 1 or 2 for player1/player2.
//
// The registry itself never implements game rules. When no validator is
// configured, moves are accepted as plain turn passes.
type MoveValidator interface {
	IsLegal(board, move json.RawMessage, mover int) bool
	Apply(board, move json.RawMessage) (json.RawMessage, error)
}
