package ws

import (
	"context"
	"encoding/json"
	"log"

	"github.com/redis/go-redis/v9"

	"github.com/playgambit/backend/internal/config"
	"github.com/playgambit/backend/internal/game"
	"github.com/playgambit/backend/internal/rating"
)

var rdbClient *redis.Client
var wsConfig *config.Config

func SetRedisClient(r *redis.Client, cfg *config.Config) {
	rdbClient = r
	wsConfig = cfg
}

// StartEventSubscriber subscribes to the game and rating channels and fans
// incoming events out to connected clients. Game events go to the game room,
// rating updates go to the affected player.
func StartEventSubscriber(ctx context.Context) {
	if rdbClient == nil {
		log.Println("[WS] Redis client not set; event subscriber not started")
		return
	}

	pubsub := rdbClient.Subscribe(ctx, game.EventChannel, rating.EventChannel)
	ch := pubsub.Channel()
	go func() {
		log.Printf("[WS] %s/%s subscriber started", game.EventChannel, rating.EventChannel)
		for msg := range ch {
			switch msg.Channel {
			case game.EventChannel:
				var ev struct {
					GameID string `json:"game_id"`
				}
				if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil || ev.GameID == "" {
					log.Printf("[WS] invalid game event payload: %v", err)
					continue
				}
				GameHub.BroadcastToGame(ev.GameID, json.RawMessage(msg.Payload))

			case rating.EventChannel:
				var upd rating.ScoreUpdate
				if err := json.Unmarshal([]byte(msg.Payload), &upd); err != nil {
					log.Printf("[WS] invalid rating event payload: %v", err)
					continue
				}
				GameHub.SendToPlayer(upd.Player, map[string]interface{}{
					"type":   "score_updated",
					"player": upd.Player,
					"score":  upd.Score,
				})
			}
		}
	}()
}
