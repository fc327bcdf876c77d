package models

import (
	"database/sql"
	"encoding/json"
	"time"
)

// Player represents a participant address known to the system
type Player struct {
	ID               int          `db:"id" json:"id"`
	Address          string       `db:"address" json:"address"`
	Alias            string       `db:"alias" json:"alias"`
	CreatedAt        time.Time    `db:"created_at" json:"created_at"`
	TotalGamesPlayed int          `db:"total_games_played" json:"total_games_played"`
	TotalGamesWon    int          `db:"total_games_won" json:"total_games_won"`
	LastActive       sql.NullTime `db:"last_active" json:"last_active,omitempty"`
}

// GameRow is the durable mirror of one game record
type GameRow struct {
	ID              string         `db:"id" json:"id"`
	Player1         string         `db:"player1" json:"player1"`
	Player2         sql.NullString `db:"player2" json:"player2,omitempty"`
	Alias1          string         `db:"alias1" json:"alias1"`
	Alias2          sql.NullString `db:"alias2" json:"alias2,omitempty"`
	TurnTime        int64          `db:"turn_time" json:"turn_time"`
	NextPlayer      sql.NullString `db:"next_player" json:"next_player,omitempty"`
	Stake           int64          `db:"stake" json:"stake"`
	Pot             int64          `db:"pot" json:"pot"`
	Ended           bool           `db:"ended" json:"ended"`
	Winner          sql.NullString `db:"winner" json:"winner,omitempty"`
	Player1Winnings int64          `db:"player1_winnings" json:"player1_winnings"`
	Player2Winnings int64          `db:"player2_winnings" json:"player2_winnings"`
	TimeoutState    int            `db:"timeout_state" json:"timeout_state"`
	TimeoutStarted  sql.NullTime   `db:"timeout_started" json:"timeout_started,omitempty"`
	CreatedAt       time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time      `db:"updated_at" json:"updated_at"`
}

// EscrowEntry is one row of the stake/payout ledger
type EscrowEntry struct {
	ID            int       `db:"id" json:"id"`
	GameID        string    `db:"game_id" json:"game_id"`
	PlayerAddress string    `db:"player_address" json:"player_address"`
	EntryType     string    `db:"entry_type" json:"entry_type"`
	Amount        int64     `db:"amount" json:"amount"`
	Description   string    `db:"description" json:"description,omitempty"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}

// Rating is the stored score for one address
type Rating struct {
	PlayerAddress string    `db:"player_address" json:"player_address"`
	Score         int64     `db:"score" json:"score"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`
}

// GameEvent is one archived notification, ordered by seq
type GameEvent struct {
	ID        int             `db:"id" json:"id"`
	Seq       int64           `db:"seq" json:"seq"`
	EventType string          `db:"event_type" json:"event_type"`
	GameID    string          `db:"game_id" json:"game_id"`
	Fields    json.RawMessage `db:"fields" json:"fields,omitempty"`
	CreatedAt time.Time       `db:"created_at" json:"created_at"`
}

// AdminAccount holds a bcrypt-hashed operator credential
type AdminAccount struct {
	ID          int       `db:"id" json:"id"`
	Username    string    `db:"username" json:"username"`
	TokenHash   string    `db:"token_hash" json:"-"`
	DisplayName string    `db:"display_name" json:"display_name"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}
