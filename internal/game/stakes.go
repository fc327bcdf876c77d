package game

import (
	"github.com/jmoiron/sqlx"
	"github.com/playgambit/backend/internal/escrow"
)

// StakeLedger owns the pot and per-side winnings bookkeeping for every game.
// It moves value between pot and winnings when a game resolves; the actual
// transfer back to a player happens only through the pull-based withdraw
// step, so resolving a game never depends on a payout succeeding.
//
// All methods are called with the registry lock held.
type StakeLedger struct {
	db *sqlx.DB
}

// NewStakeLedger returns a ledger mirroring its movements into the
// escrow_entries table when db is non-nil.
func NewStakeLedger(db *sqlx.DB) *StakeLedger {
	return &StakeLedger{db: db}
}

// stakeCreate records the creator's deposit and fixes the amount the second
// player must match. The pot stays empty until the game is matched.
func (l *StakeLedger) stakeCreate(g *Game, amount int64) {
	g.Stake = amount
	if amount > 0 {
		escrow.Record(l.db, g.ID, g.Player1, escrow.EntryDeposit, amount, "creator stake")
	}
}

// stakeJoin records the joiner's deposit. It must equal the creator's stake
// exactly; on success the pot holds both sides.
func (l *StakeLedger) stakeJoin(g *Game, player string, amount int64) error {
	if amount != g.Stake {
		return ErrStakeMismatch
	}
	g.Pot = 2 * g.Stake
	if amount > 0 {
		escrow.Record(l.db, g.ID, player, escrow.EntryDeposit, amount, "joiner stake")
	}
	return nil
}

// creditWinner moves the whole pot into the winner's winnings column.
func (l *StakeLedger) creditWinner(g *Game, winner string) {
	if g.Pot == 0 {
		return
	}
	amount := g.Pot
	g.Pot = 0
	if winner == g.Player1 {
		g.Player1Winnings += amount
	} else {
		g.Player2Winnings += amount
	}
	escrow.Record(l.db, g.ID, winner, escrow.EntryPrize, amount, "pot to winner")
}

// splitPot divides the pot evenly between the two sides. The pot is always
// even (2x the matched stake), so nothing is lost to rounding.
func (l *StakeLedger) splitPot(g *Game) {
	if g.Pot == 0 {
		return
	}
	half := g.Pot / 2
	g.Pot = 0
	g.Player1Winnings += half
	g.Player2Winnings += half
	escrow.Record(l.db, g.ID, g.Player1, escrow.EntrySplit, half, "draw split")
	escrow.Record(l.db, g.ID, g.Player2, escrow.EntrySplit, half, "draw split")
}

// refundUnmatched returns the creator's stake when a game is closed before
// anyone joined. The value lands in winnings and leaves through withdraw.
func (l *StakeLedger) refundUnmatched(g *Game) {
	if g.Stake == 0 {
		return
	}
	g.Player1Winnings += g.Stake
	escrow.Record(l.db, g.ID, g.Player1, escrow.EntryRefund, g.Stake, "unmatched game closed")
}

// withdraw pays out and zeroes the caller's side. Fails with ErrNotAWinner
// when nothing is owed, which covers both "not a winner" and "already paid".
func (l *StakeLedger) withdraw(g *Game, caller string) (int64, error) {
	var amount int64
	switch caller {
	case g.Player1:
		amount, g.Player1Winnings = g.Player1Winnings, 0
	case g.Player2:
		amount, g.Player2Winnings = g.Player2Winnings, 0
	}
	if amount == 0 {
		return 0, ErrNotAWinner
	}
	escrow.Record(l.db, g.ID, caller, escrow.EntryWithdraw, amount, "winnings withdrawn")
	return amount, nil
}
