package game

import (
	"context"
	"encoding/json"
	"log"
	"time"
)

// redisGameTTL keeps snapshots around long enough for reconnecting readers
// without growing the keyspace forever.
const redisGameTTL = 24 * time.Hour

// persistGame mirrors the game into Redis and the games table. The registry
// state is authoritative; failures here are logged and never surfaced.
// Called with the registry lock held, after the transition applied.
func (r *GameRegistry) persistGame(g *Game) {
	if r.rdb != nil {
		data, err := json.Marshal(g)
		if err == nil {
			if err := r.rdb.Set(context.Background(), "game:"+g.ID, data, redisGameTTL).Err(); err != nil {
				log.Printf("[REDIS] Failed to save game %s: %v", g.ID, err)
			}
		}
	}

	if r.db == nil {
		return
	}
	var timeoutStarted *time.Time
	if !g.TimeoutStarted.IsZero() {
		timeoutStarted = &g.TimeoutStarted
	}
	_, err := r.db.Exec(`
		INSERT INTO games (id, player1, player2, alias1, alias2, turn_time, next_player,
		                   stake, pot, ended, winner, player1_winnings, player2_winnings,
		                   timeout_state, timeout_started, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,NOW())
		ON CONFLICT (id) DO UPDATE SET
		    player2 = EXCLUDED.player2, alias2 = EXCLUDED.alias2,
		    next_player = EXCLUDED.next_player, pot = EXCLUDED.pot,
		    ended = EXCLUDED.ended, winner = EXCLUDED.winner,
		    player1_winnings = EXCLUDED.player1_winnings,
		    player2_winnings = EXCLUDED.player2_winnings,
		    timeout_state = EXCLUDED.timeout_state,
		    timeout_started = EXCLUDED.timeout_started,
		    updated_at = NOW()`,
		g.ID, g.Player1, g.Player2, g.Alias1, g.Alias2, g.TurnTime, g.NextPlayer,
		g.Stake, g.Pot, g.Ended, g.Winner, g.Player1Winnings, g.Player2Winnings,
		g.TimeoutState, timeoutStarted, g.CreatedAt)
	if err != nil {
		log.Printf("[DB] Failed to upsert game %s: %v", g.ID, err)
	}
}

// upsertPlayer keeps the players table in step with the addresses the
// registry sees, refreshing the display alias on every touch.
func (r *GameRegistry) upsertPlayer(address, alias string) {
	if r.db == nil {
		return
	}
	_, err := r.db.Exec(`
		INSERT INTO players (address, alias, created_at, last_active)
		VALUES ($1,$2,NOW(),NOW())
		ON CONFLICT (address) DO UPDATE SET alias = EXCLUDED.alias, last_active = NOW()`,
		address, alias)
	if err != nil {
		log.Printf("[DB] Failed to upsert player %s: %v", address, err)
	}
}

// bumpPlayerStats updates the played/won counters for both sides of an
// ended game.
func (r *GameRegistry) bumpPlayerStats(g *Game) {
	if r.db == nil || !g.started() {
		return
	}
	for _, addr := range []string{g.Player1, g.Player2} {
		won := 0
		if g.Winner == addr {
			won = 1
		}
		if _, err := r.db.Exec(
			`UPDATE players SET total_games_played = total_games_played + 1,
			                    total_games_won = total_games_won + $2,
			                    last_active = NOW()
			 WHERE address = $1`, addr, won); err != nil {
			log.Printf("[DB] Failed to update stats for player %s: %v", addr, err)
		}
	}
}
