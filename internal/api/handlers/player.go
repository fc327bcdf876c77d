package handlers

import (
	"database/sql"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"

	"github.com/playgambit/backend/internal/game"
	"github.com/playgambit/backend/internal/models"
	"github.com/playgambit/backend/internal/rating"
)

// GetPlayerProfile returns the stored profile plus live rating and the
// player's open game list
func GetPlayerProfile(db *sqlx.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		address := normalizeAddress(c.Param("address"))

		var player models.Player
		if db != nil {
			err := db.Get(&player, `
				SELECT id, address, alias, created_at, total_games_played, total_games_won, last_active
				FROM players WHERE address=$1
			`, address)
			if errors.Is(err, sql.ErrNoRows) {
				c.JSON(http.StatusNotFound, gin.H{"error": "player not found"})
				return
			}
			if err != nil {
				log.Printf("[DB] Failed to load player %s: %v", address, err)
				c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
				return
			}
		}

		c.JSON(http.StatusOK, gin.H{
			"player":   player,
			"score":    rating.Default.GetScore(address),
			"game_ids": game.Registry.GamesOfPlayer(address),
		})
	}
}

// UpdateAlias changes the caller's display alias
func UpdateAlias(db *sqlx.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Alias string `json:"alias" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil || len(req.Alias) > 50 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid alias"})
			return
		}

		address := senderAddress(c)
		if db != nil {
			if _, err := db.Exec(`UPDATE players SET alias=$1 WHERE address=$2`, req.Alias, address); err != nil {
				log.Printf("[DB] Failed to update alias for %s: %v", address, err)
				c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"address": address, "alias": req.Alias})
	}
}
