package escrow

import (
	"log"

	"github.com/jmoiron/sqlx"
)

// entry types constants
const (
	EntryDeposit  = "DEPOSIT"  // a side's stake entering escrow
	EntryPrize    = "PRIZE"    // pot credited to a winner's winnings
	EntrySplit    = "SPLIT"    // half pot credited on a draw
	EntryRefund   = "REFUND"   // creator's stake returned, game never matched
	EntryWithdraw = "WITHDRAW" // winnings leaving escrow to the player
)

// Record appends a row to the escrow_entries ledger. The in-memory registry
// is authoritative; this mirror is best-effort and never fails the caller.
func Record(db *sqlx.DB, gameID, player, entryType string, amount int64, description string) {
	if db == nil || amount == 0 {
		return
	}
	_, err := db.Exec(
		`INSERT INTO escrow_entries (game_id, player_address, entry_type, amount, description, created_at)
		 VALUES ($1,$2,$3,$4,$5,NOW())`,
		gameID, player, entryType, amount, description)
	if err != nil {
		log.Printf("[ESCROW] Failed to record %s entry for game %s: %v", entryType, gameID, err)
		return
	}
	log.Printf("[ESCROW] %s game=%s player=%s amount=%d", entryType, gameID, player, amount)
}

// Balance sums the ledger for one game: deposits in, withdrawals out. Prize,
// split and refund rows reclassify held value and do not move it. Used by the
// admin surface to spot stranded value.
func Balance(db *sqlx.DB, gameID string) (int64, error) {
	if db == nil {
		return 0, nil
	}
	var held int64
	err := db.Get(&held,
		`SELECT COALESCE(SUM(CASE WHEN entry_type = $2 THEN amount
		                          WHEN entry_type = $3 THEN -amount
		                          ELSE 0 END), 0)
		 FROM escrow_entries WHERE game_id = $1`,
		gameID, EntryDeposit, EntryWithdraw)
	return held, err
}
