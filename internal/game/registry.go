package game

import (
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/playgambit/backend/internal/config"
	"github.com/redis/go-redis/v9"
)

// GameRegistry owns every game record plus the two orderings around them:
// the open-game list (games awaiting a second player) and the per-player
// lists (every game an address has ever touched). All state transitions run
// one at a time under the registry lock, which gives each operation the
// all-or-nothing semantics the money bookkeeping relies on: every validation
// happens before the first mutation.
type GameRegistry struct {
	mu       sync.Mutex
	games    map[string]*Game
	open     *gameList
	byPlayer map[string]*gameList
	stakes   *StakeLedger

	validator MoveValidator

	db  *sqlx.DB
	rdb *redis.Client

	// now is the registry clock. Tests swap it; callers never supply time.
	now func() time.Time

	seq  uint64
	hook func(Event)
}

// Registry is the process-wide instance, set up once from main.
var Registry *GameRegistry

// InitializeRegistry creates the global registry with DB and Redis mirrors.
func InitializeRegistry(db *sqlx.DB, rdb *redis.Client, cfg *config.Config) {
	Registry = NewGameRegistry(db, rdb)
	log.Printf("[REGISTRY] Game registry initialized")
}

// NewGameRegistry creates a registry. db and rdb may be nil; the in-memory
// ledger is authoritative and the mirrors are best-effort.
func NewGameRegistry(db *sqlx.DB, rdb *redis.Client) *GameRegistry {
	return &GameRegistry{
		games:    make(map[string]*Game),
		open:     newGameList(),
		byPlayer: make(map[string]*gameList),
		stakes:   NewStakeLedger(db),
		db:       db,
		rdb:      rdb,
		now:      time.Now,
	}
}

// SetMoveValidator installs the game-specific move capability.
func (r *GameRegistry) SetMoveValidator(v MoveValidator) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.validator = v
}

// SetEventHook installs an in-process observer for every notification.
func (r *GameRegistry) SetEventHook(fn func(Event)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.hook = fn
}

// Create opens a new game with the sender as player1. A nonzero stake fixes
// the amount the joiner must match; the first move stays unassigned until
// the game is matched. A free game gives the creator the first move
// immediately.
func (r *GameRegistry) Create(sender, alias string, turnTime int64, sidePreference bool, stake int64) (Game, error) {
	if turnTime < MinTurnTime {
		return Game{}, ErrInvalidTurnTime
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	g := &Game{
		ID:             uuid.NewString(),
		Player1:        sender,
		Alias1:         alias,
		TurnTime:       turnTime,
		SidePreference: sidePreference,
		CreatedAt:      r.now(),
	}
	if stake == 0 {
		g.NextPlayer = g.Player1
	}
	r.stakes.stakeCreate(g, stake)

	r.games[g.ID] = g
	r.open.pushHead(g.ID)
	r.playerList(sender).pushHead(g.ID)

	log.Printf("[REGISTRY] Game created: %s player1=%s stake=%d turn_time=%d", g.ID, sender, stake, turnTime)
	r.persistGame(g)
	r.upsertPlayer(sender, alias)
	r.publish(EventGameCreated, g.ID, map[string]interface{}{
		"player1": sender, "alias1": alias, "stake": stake, "turn_time": turnTime,
	})
	return *g, nil
}

// Join matches the sender as player2. The deposit must equal the creator's
// stake exactly; on success the game leaves the open list and the pot holds
// both sides. First move: a previously unassigned turn goes to the creator,
// a free game's turn flips to the joiner.
func (r *GameRegistry) Join(gameID, sender, alias string, stake int64) (Game, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	g, err := r.lookup(gameID)
	if err != nil {
		return Game{}, err
	}
	if g.started() {
		return Game{}, ErrAlreadyJoined
	}
	if g.Ended {
		return Game{}, ErrGameEnded
	}
	if sender == g.Player1 {
		return Game{}, ErrOwnGame
	}
	if err := r.stakes.stakeJoin(g, sender, stake); err != nil {
		return Game{}, err
	}

	g.Player2 = sender
	g.Alias2 = alias
	if g.NextPlayer == "" {
		g.NextPlayer = g.Player1
	} else {
		g.NextPlayer = g.Player2
	}

	r.open.remove(g.ID)
	r.playerList(sender).pushHead(g.ID)

	log.Printf("[REGISTRY] Game joined: %s player2=%s pot=%d next=%s", g.ID, sender, g.Pot, g.NextPlayer)
	r.persistGame(g)
	r.upsertPlayer(sender, alias)
	r.publish(EventGameJoined, g.ID, map[string]interface{}{
		"player2": sender, "alias2": alias, "pot": g.Pot, "next_player": g.NextPlayer,
	})
	return *g, nil
}

// Get returns a snapshot of one game.
func (r *GameRegistry) Get(gameID string) (Game, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	g, err := r.lookup(gameID)
	if err != nil {
		return Game{}, err
	}
	return *g, nil
}

// OpenGameIDs enumerates the games still awaiting a second player, newest
// first.
func (r *GameRegistry) OpenGameIDs() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.open.all()
}

// GamesOfPlayer enumerates every game the address has touched and not yet
// closed, most recently touched first.
func (r *GameRegistry) GamesOfPlayer(addr string) []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	l, ok := r.byPlayer[addr]
	if !ok {
		return []string{}
	}
	return l.all()
}

// Counts returns the number of open and of tracked games, for the admin
// surface.
func (r *GameRegistry) Counts() (open, total int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.open.len(), len(r.games)
}

func (r *GameRegistry) lookup(gameID string) (*Game, error) {
	g, ok := r.games[gameID]
	if !ok {
		return nil, ErrGameNotFound
	}
	return g, nil
}

func (r *GameRegistry) playerList(addr string) *gameList {
	l, ok := r.byPlayer[addr]
	if !ok {
		l = newGameList()
		r.byPlayer[addr] = l
	}
	return l
}
