package game

import (
	"encoding/json"
	"log"
	"time"
)

// guard runs the checks shared by every in-game operation: the game exists,
// the sender is a participant, the game is matched and still running. Every
// mutating operation validates fully before touching any state.
func (r *GameRegistry) guard(gameID, sender string) (*Game, error) {
	g, err := r.lookup(gameID)
	if err != nil {
		return nil, err
	}
	if !g.isPlayer(sender) {
		return nil, ErrNotAPlayer
	}
	if g.Ended {
		return nil, ErrGameEnded
	}
	if !g.started() {
		return nil, ErrGameNotStarted
	}
	return g, nil
}

// FinishTurn passes the move to the other player and implicitly cancels any
// claim or offer pending against the mover.
func (r *GameRegistry) FinishTurn(gameID, sender string) (Game, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	g, err := r.guard(gameID, sender)
	if err != nil {
		return Game{}, err
	}
	if sender != g.NextPlayer {
		return Game{}, ErrNotYourTurn
	}

	g.NextPlayer = g.opponent(sender)
	g.clearTimeout()
	r.cancelDeadline(g.ID)

	r.persistGame(g)
	r.publish(EventTurnFinished, g.ID, map[string]interface{}{"next_player": g.NextPlayer})
	return *g, nil
}

// SubmitMove runs the configured move validator against the opaque board
// before finishing the turn. Without a validator a move is a plain pass.
func (r *GameRegistry) SubmitMove(gameID, sender string, move json.RawMessage) (Game, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	g, err := r.guard(gameID, sender)
	if err != nil {
		return Game{}, err
	}
	if sender != g.NextPlayer {
		return Game{}, ErrNotYourTurn
	}
	if r.validator != nil {
		mover := 1
		if sender == g.Player2 {
			mover = 2
		}
		if !r.validator.IsLegal(g.Board, move, mover) {
			return Game{}, ErrIllegalMove
		}
		board, err := r.validator.Apply(g.Board, move)
		if err != nil {
			return Game{}, ErrIllegalMove
		}
		g.Board = board
	}

	g.NextPlayer = g.opponent(sender)
	g.clearTimeout()
	r.cancelDeadline(g.ID)

	r.persistGame(g)
	r.publish(EventTurnFinished, g.ID, map[string]interface{}{"next_player": g.NextPlayer, "moved": true})
	return *g, nil
}

// ClaimWin asserts the opponent, whose move it is, has abandoned outright.
// The claim stands until the opponent confirms, moves, or the turn window
// elapses.
func (r *GameRegistry) ClaimWin(gameID, sender string) (Game, error) {
	return r.startDispute(gameID, sender, TimeoutWinClaimed)
}

// ClaimTimeout is the softer accusation: the opponent stopped responding.
// Resolution needs the opponent's confirmation or the elapsed turn window.
func (r *GameRegistry) ClaimTimeout(gameID, sender string) (Game, error) {
	return r.startDispute(gameID, sender, TimeoutClaimed)
}

func (r *GameRegistry) startDispute(gameID, sender string, state TimeoutState) (Game, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	g, err := r.guard(gameID, sender)
	if err != nil {
		return Game{}, err
	}
	if g.TimeoutState != TimeoutNone {
		return Game{}, ErrDisputeRunning
	}
	if sender == g.NextPlayer {
		if state == TimeoutClaimed {
			return Game{}, ErrOwnTurnClaim
		}
		return Game{}, ErrOwnTurnWinClaim
	}

	g.TimeoutState = state
	g.TimeoutStarted = r.now()
	g.Winner = sender

	log.Printf("[REGISTRY] Dispute started: game=%s claimant=%s state=%d", g.ID, sender, state)
	r.scheduleDeadline(g)
	r.persistGame(g)
	r.publish(EventTimeoutStarted, g.ID, map[string]interface{}{
		"timeout_state": state, "claimant": sender,
	})
	return *g, nil
}

// OfferDraw proposes splitting the pot. The offer occupies the same single
// dispute slot as the claims, so nothing else can be pending.
func (r *GameRegistry) OfferDraw(gameID, sender string) (Game, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	g, err := r.guard(gameID, sender)
	if err != nil {
		return Game{}, err
	}
	if g.TimeoutState != TimeoutNone {
		return Game{}, ErrDisputeRunning
	}

	if sender == g.Player1 {
		g.TimeoutState = DrawOfferedPlayer1
	} else {
		g.TimeoutState = DrawOfferedPlayer2
	}
	g.TimeoutStarted = r.now()

	r.scheduleDeadline(g)
	r.persistGame(g)
	r.publish(EventTimeoutStarted, g.ID, map[string]interface{}{
		"timeout_state": g.TimeoutState, "offeror": sender,
	})
	return *g, nil
}

// RejectDraw declines a pending draw offer and puts the game back into plain
// play. Either player may reject, including the offeror.
func (r *GameRegistry) RejectDraw(gameID, sender string) (Game, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	g, err := r.guard(gameID, sender)
	if err != nil {
		return Game{}, err
	}
	if g.TimeoutState != DrawOfferedPlayer1 && g.TimeoutState != DrawOfferedPlayer2 {
		return Game{}, ErrNoDrawPending
	}

	g.clearTimeout()
	r.cancelDeadline(g.ID)

	r.persistGame(g)
	r.publish(EventDrawRejected, g.ID, map[string]interface{}{"rejected_by": sender})
	return *g, nil
}

// ConfirmEnded resolves the pending claim or offer immediately, regardless
// of elapsed time. Only the player who did not initiate it may confirm.
func (r *GameRegistry) ConfirmEnded(gameID, sender string) (Game, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	g, err := r.guard(gameID, sender)
	if err != nil {
		return Game{}, err
	}
	switch g.TimeoutState {
	case TimeoutNone:
		return Game{}, ErrNoDisputeRunning
	case TimeoutWinClaimed, TimeoutClaimed:
		if sender == g.Winner {
			return Game{}, ErrConfirmOwnClaim
		}
	case DrawOfferedPlayer1:
		if sender == g.Player1 {
			return Game{}, ErrConfirmOwnDraw
		}
	case DrawOfferedPlayer2:
		if sender == g.Player2 {
			return Game{}, ErrConfirmOwnDraw
		}
	}

	r.resolveDispute(g)
	return *g, nil
}

// ClaimTimeoutEnded resolves the pending claim or offer unilaterally once
// the turn window has elapsed. Either player may call it, the claimant
// included.
func (r *GameRegistry) ClaimTimeoutEnded(gameID, sender string) (Game, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	g, err := r.guard(gameID, sender)
	if err != nil {
		return Game{}, err
	}
	if g.TimeoutState == TimeoutNone {
		return Game{}, ErrNoDisputeRunning
	}
	if r.now().Sub(g.TimeoutStarted) < time.Duration(g.TurnTime)*time.Second {
		return Game{}, ErrTimeoutNotReached
	}

	r.resolveDispute(g)
	return *g, nil
}

// resolveDispute applies the outcome the pending timeoutState encodes: a
// claim hands the pot to the claimant, a draw offer splits it. Called with
// the lock held after all guards passed.
func (r *GameRegistry) resolveDispute(g *Game) {
	if g.TimeoutState == TimeoutWinClaimed || g.TimeoutState == TimeoutClaimed {
		r.stakes.creditWinner(g, g.Winner)
	} else {
		g.Winner = ""
		r.stakes.splitPot(g)
	}
	g.Ended = true
	r.cancelDeadline(g.ID)

	log.Printf("[REGISTRY] Game ended: %s winner=%q p1_winnings=%d p2_winnings=%d",
		g.ID, g.Winner, g.Player1Winnings, g.Player2Winnings)
	r.persistGame(g)
	r.bumpPlayerStats(g)
	r.publish(EventGameEnded, g.ID, map[string]interface{}{
		"player1": g.Player1, "player2": g.Player2,
		"winner": g.Winner, "player1_winnings": g.Player1Winnings, "player2_winnings": g.Player2Winnings,
	})
}

// Surrender ends the game at once, crediting the whole pot to the opponent.
// No dispute machinery is involved and any pending claim is moot.
func (r *GameRegistry) Surrender(gameID, sender string) (Game, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	g, err := r.guard(gameID, sender)
	if err != nil {
		return Game{}, err
	}

	g.TimeoutState = TimeoutNone
	g.TimeoutStarted = time.Time{}
	r.cancelDeadline(g.ID)
	g.Winner = g.opponent(sender)
	r.stakes.creditWinner(g, g.Winner)
	g.Ended = true

	log.Printf("[REGISTRY] Game surrendered: %s by=%s winner=%s", g.ID, sender, g.Winner)
	r.persistGame(g)
	r.bumpPlayerStats(g)
	r.publish(EventGameEnded, g.ID, map[string]interface{}{
		"player1": g.Player1, "player2": g.Player2,
		"winner": g.Winner, "surrendered_by": sender,
	})
	return *g, nil
}

// ClosePlayerGame archives the game for the caller, removing it from their
// per-player list. Closing a never-matched game also retracts it from the
// open list and books the creator's stake back as withdrawable winnings. A
// matched game can only be closed after it ended.
func (r *GameRegistry) ClosePlayerGame(gameID, sender string) (Game, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	g, err := r.lookup(gameID)
	if err != nil {
		return Game{}, err
	}
	if !g.isPlayer(sender) {
		return Game{}, ErrNotAPlayer
	}
	if sender == g.Player1 && g.Player1Closed || sender == g.Player2 && g.Player2Closed {
		return Game{}, ErrGameAlreadyClosed
	}

	switch {
	case !g.started() && !g.Ended:
		// Never matched: retract and refund. Ending the record here keeps a
		// late joiner from staking into a dead game.
		r.open.remove(g.ID)
		r.stakes.refundUnmatched(g)
		g.Ended = true
	case !g.Ended:
		return Game{}, ErrGameStillActive
	}

	r.playerList(sender).remove(g.ID)
	if sender == g.Player1 {
		g.Player1Closed = true
	} else {
		g.Player2Closed = true
	}

	r.persistGame(g)
	r.publish(EventGameClosed, g.ID, map[string]interface{}{"player": sender})
	return *g, nil
}

// Withdraw pays the caller their owed winnings and zeroes that side. It is
// the only way value leaves a game.
func (r *GameRegistry) Withdraw(gameID, sender string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	g, err := r.lookup(gameID)
	if err != nil {
		return 0, err
	}
	if !g.isPlayer(sender) {
		return 0, ErrNotAPlayer
	}

	amount, err := r.stakes.withdraw(g, sender)
	if err != nil {
		return 0, err
	}

	log.Printf("[REGISTRY] Winnings withdrawn: game=%s player=%s amount=%d", g.ID, sender, amount)
	r.persistGame(g)
	r.publish(EventFundsWithdrawn, g.ID, map[string]interface{}{"player": sender, "amount": amount})
	return amount, nil
}
