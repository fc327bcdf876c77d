package game

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/playgambit/backend/internal/config"
)

const deadlineSet = "dispute_deadlines"

// scheduleDeadline registers the moment a running dispute countdown elapses.
// Called with the registry lock held.
func (r *GameRegistry) scheduleDeadline(g *Game) {
	if r.rdb == nil {
		return
	}
	deadline := g.TimeoutStarted.Add(time.Duration(g.TurnTime) * time.Second)
	if err := r.rdb.ZAdd(context.Background(), deadlineSet, redis.Z{
		Score: float64(deadline.Unix()), Member: g.ID,
	}).Err(); err != nil {
		log.Printf("[DISPUTE] Failed to schedule deadline for game %s: %v", g.ID, err)
	}
}

// cancelDeadline drops a scheduled countdown, after a refutation or once the
// dispute settled. Called with the registry lock held.
func (r *GameRegistry) cancelDeadline(gameID string) {
	if r.rdb == nil {
		return
	}
	if err := r.rdb.ZRem(context.Background(), deadlineSet, gameID).Err(); err != nil {
		log.Printf("[DISPUTE] Failed to cancel deadline for game %s: %v", gameID, err)
	}
}

// StartDisputeWorker polls the deadline set and announces countdowns that
// have fully elapsed. Settling stays player-driven, the worker only tells
// the room the dispute is now settleable.
func StartDisputeWorker(ctx context.Context, rdb *redis.Client, cfg *config.Config) {
	if rdb == nil || cfg == nil {
		log.Println("[DISPUTE] Redis or config missing; dispute worker not started")
		return
	}

	log.Println("[DISPUTE] Dispute worker started")
	go func() {
		ticker := time.NewTicker(time.Duration(cfg.DisputePollIntervalSec) * time.Second)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				log.Println("[DISPUTE] Dispute worker stopping")
				return
			case <-ticker.C:
				now := time.Now().Unix()

				members, err := rdb.ZRangeByScore(ctx, deadlineSet, &redis.ZRangeBy{Min: "-inf", Max: fmt.Sprintf("%d", now)}).Result()
				if err != nil {
					log.Printf("[DISPUTE] Failed to fetch due deadlines: %v", err)
					continue
				}
				for _, gameID := range members {
					// Attempt to remove (race-safe)
					removed, _ := rdb.ZRem(ctx, deadlineSet, gameID).Result()
					if removed == 0 {
						continue
					}

					g, err := Registry.Get(gameID)
					if err != nil {
						continue
					}
					if g.Ended || g.TimeoutState == TimeoutNone {
						log.Printf("[DISPUTE] skipping game %s (ended=%v state=%d)", gameID, g.Ended, g.TimeoutState)
						continue
					}

					payload := map[string]interface{}{
						"type":          "timeout_reached",
						"game_id":       gameID,
						"timeout_state": g.TimeoutState,
						"winner":        g.Winner,
						"message":       "Dispute countdown elapsed; the game can be settled.",
					}
					b, _ := json.Marshal(payload)
					if n, err := rdb.Publish(ctx, EventChannel, b).Result(); err != nil {
						log.Printf("[DISPUTE] publish failed: game=%s err=%v", gameID, err)
					} else {
						log.Printf("[DISPUTE] published timeout_reached: game=%s state=%d subscribers=%d", gameID, g.TimeoutState, n)
					}
				}
			}
		}
	}()
}
