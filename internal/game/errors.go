package game

import "errors"

// ErrorKind buckets the named rejections so the API layer can map them to
// HTTP statuses without string matching.
type ErrorKind int

const (
	KindInvalidInput ErrorKind = iota
	KindNotFound
	KindAuthorization
	KindStateConflict
	KindTiming
	KindFunds
)

var (
	ErrGameNotFound    = errors.New("game not found")
	ErrInvalidTurnTime = errors.New("the turn time should be greater or equals to 5")
	ErrIllegalMove     = errors.New("move rejected by the validator")

	ErrNotAPlayer      = errors.New("sender is not a player")
	ErrNotYourTurn     = errors.New("It is not the players turn")
	ErrConfirmOwnClaim = errors.New("A player can not confirm its own victory")
	ErrConfirmOwnDraw  = errors.New("A player can not confirm its own draw offer")

	ErrAlreadyJoined     = errors.New("player 2 already in game")
	ErrOwnGame           = errors.New("a player can not join its own game")
	ErrGameEnded         = errors.New("The game already ended")
	ErrGameNotStarted    = errors.New("the game has not started yet")
	ErrDisputeRunning    = errors.New("Timeout already running")
	ErrNoDisputeRunning  = errors.New("Timeout coutdown never started")
	ErrNoDrawPending     = errors.New("There is no timeout running for a draw")
	ErrGameStillActive   = errors.New("game already started and has not ended yet")
	ErrGameAlreadyClosed = errors.New("game already close for the player")
	ErrOwnTurnClaim      = errors.New("You can only claim that the opponent abandoned in its turn")
	ErrOwnTurnWinClaim   = errors.New("You can only claim a win in the opponents turn")

	ErrTimeoutNotReached = errors.New("timeout has not been reached")

	ErrStakeMismatch = errors.New("player 2 did not match the bet")
	ErrNotAWinner    = errors.New("sender is not the winner")
)

// Kind classifies a rejection returned by any registry operation. Unknown
// errors classify as state conflicts, the safest "try again later" bucket.
func Kind(err error) ErrorKind {
	switch {
	case errors.Is(err, ErrGameNotFound):
		return KindNotFound
	case errors.Is(err, ErrInvalidTurnTime), errors.Is(err, ErrIllegalMove):
		return KindInvalidInput
	case errors.Is(err, ErrNotAPlayer), errors.Is(err, ErrNotYourTurn),
		errors.Is(err, ErrConfirmOwnClaim), errors.Is(err, ErrConfirmOwnDraw),
		errors.Is(err, ErrOwnTurnClaim), errors.Is(err, ErrOwnTurnWinClaim):
		return KindAuthorization
	case errors.Is(err, ErrTimeoutNotReached):
		return KindTiming
	case errors.Is(err, ErrStakeMismatch), errors.Is(err, ErrNotAWinner):
		return KindFunds
	default:
		return KindStateConflict
	}
}
