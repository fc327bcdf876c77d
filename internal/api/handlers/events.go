package handlers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"

	"github.com/playgambit/backend/internal/models"
)

// GetGameEvents returns the archived notification history of a game in
// publish order
func GetGameEvents(db *sqlx.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		gameID := c.Param("id")

		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
		if limit <= 0 || limit > 500 {
			limit = 100
		}
		afterSeq, _ := strconv.ParseInt(c.DefaultQuery("after_seq", "0"), 10, 64)

		events := []models.GameEvent{}
		if db != nil {
			err := db.Select(&events, `
				SELECT id, seq, event_type, game_id, fields, created_at
				FROM game_events
				WHERE game_id=$1 AND seq > $2
				ORDER BY seq ASC
				LIMIT $3
			`, gameID, afterSeq, limit)
			if err != nil {
				log.Printf("[DB] Failed to load events for game %s: %v", gameID, err)
				c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
				return
			}
		}

		c.JSON(http.StatusOK, gin.H{"events": events, "count": len(events)})
	}
}
