// Package rating keeps a floor-protected Elo-style score per player address.
// Updates use an integer lookup table approximating the K=20 logistic curve
// over a 400-point divisor, so results are exact and platform independent.
package rating

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
)

const (
	// Floor is the lowest score ever stored; new players start here.
	Floor = 100
	// KFactor is the fixed update weight the change table is derived from.
	KFactor = 20
)

// EventChannel is the Redis pub/sub channel score updates are published on.
const EventChannel = "rating_events"

// ScoreUpdate is the per-player notification emitted after every stored
// change.
type ScoreUpdate struct {
	Player string    `json:"player"`
	Score  int64     `json:"score"`
	At     time.Time `json:"at"`
}

// Engine is the in-memory score table with best-effort DB/Redis mirrors.
type Engine struct {
	mu     sync.Mutex
	scores map[string]int64

	db   *sqlx.DB
	rdb  *redis.Client
	hook func(ScoreUpdate)
}

// Default is the process-wide engine, set up once from main.
var Default *Engine

// NewEngine creates an engine. db and rdb may be nil.
func NewEngine(db *sqlx.DB, rdb *redis.Client) *Engine {
	return &Engine{
		scores: make(map[string]int64),
		db:     db,
		rdb:    rdb,
	}
}

// SetUpdateHook installs an in-process observer for stored score changes.
func (e *Engine) SetUpdateHook(fn func(ScoreUpdate)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.hook = fn
}

// GetScore returns the stored score, or the floor for an unknown player.
func (e *Engine) GetScore(player string) int64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.score(player)
}

// SetScore stores the score, clamped to the floor.
func (e *Engine) SetScore(player string, score int64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.store(player, score)
}

// RecordResult applies one concluded game to both ratings. winner is one of
// the two addresses, or empty for a draw.
func (e *Engine) RecordResult(playerA, playerB, winner string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	scoreA := e.score(playerA)
	scoreB := e.score(playerB)

	resultA := resultDraw
	switch winner {
	case playerA:
		resultA = resultWin
	case playerB:
		resultA = resultLoss
	}

	changeA, changeB := scoreChange(scoreA-scoreB, resultA)
	e.store(playerA, scoreA+changeA)
	e.store(playerB, scoreB+changeB)
}

type result int

const (
	resultLoss result = iota
	resultDraw
	resultWin
)

// scoreChange computes both sides' deltas from the rating difference
// (scoreA - scoreB) and player A's result. The table maps the absolute
// difference to the weaker side's win value, from an even 10 up to the
// 20-point cap for a 636+ gap.
func scoreChange(difference int64, resultA result) (changeA, changeB int64) {
	reverse := difference > 0 // player A is the stronger side
	diff := difference
	if diff < 0 {
		diff = -diff
	}

	var change int64 = 10
	switch {
	case diff > 636:
		change = 20
	case diff > 436:
		change = 19
	case diff > 338:
		change = 18
	case diff > 269:
		change = 17
	case diff > 214:
		change = 16
	case diff > 168:
		change = 15
	case diff > 126:
		change = 14
	case diff > 88:
		change = 13
	case diff > 52:
		change = 12
	case diff > 17:
		change = 11
	}

	switch resultA {
	case resultWin:
		if reverse {
			return KFactor - change, -change
		}
		return change, -(KFactor - change)
	case resultLoss:
		if reverse {
			return -(KFactor - change), change
		}
		return -change, KFactor - change
	default: // draw
		if reverse {
			return KFactor/2 - change, change - KFactor/2
		}
		return change - KFactor/2, KFactor/2 - change
	}
}

// score reads with the floor default. Callers hold the lock.
func (e *Engine) score(player string) int64 {
	if s, ok := e.scores[player]; ok {
		return s
	}
	return Floor
}

// store clamps, saves, mirrors and notifies. Callers hold the lock.
func (e *Engine) store(player string, score int64) {
	if score < Floor {
		score = Floor
	}
	e.scores[player] = score

	if e.db != nil {
		if _, err := e.db.Exec(`
			INSERT INTO ratings (player_address, score, updated_at) VALUES ($1,$2,NOW())
			ON CONFLICT (player_address) DO UPDATE SET score = EXCLUDED.score, updated_at = NOW()`,
			player, score); err != nil {
			log.Printf("[RATING] Failed to upsert rating for %s: %v", player, err)
		}
	}

	update := ScoreUpdate{Player: player, Score: score, At: time.Now()}
	if e.rdb != nil {
		if payload, err := json.Marshal(update); err == nil {
			if err := e.rdb.Publish(context.Background(), EventChannel, payload).Err(); err != nil {
				log.Printf("[RATING] Failed to publish score update for %s: %v", player, err)
			}
		}
	}
	if e.hook != nil {
		e.hook(update)
	}
}
