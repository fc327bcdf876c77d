package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/playgambit/backend/internal/game"
)

// CreateGame opens a new game with the sender as player 1. The stake is the
// amount the opponent has to match on join, zero for a friendly game.
func CreateGame() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Alias          string `json:"alias,omitempty"`
			TurnTime       int64  `json:"turn_time" binding:"required"`
			SidePreference bool   `json:"side_preference"`
			Stake          int64  `json:"stake"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "turn_time required"})
			return
		}
		if req.Stake < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "stake can not be negative"})
			return
		}

		sender := senderAddress(c)
		g, err := game.Registry.Create(sender, strings.TrimSpace(req.Alias), req.TurnTime, req.SidePreference, req.Stake)
		if err != nil {
			respondGameError(c, err)
			return
		}

		c.JSON(http.StatusCreated, gin.H{"game": g})
	}
}

// JoinGame seats the sender as player 2 and locks in the pot
func JoinGame() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Alias string `json:"alias,omitempty"`
			Stake int64  `json:"stake"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}

		sender := senderAddress(c)
		g, err := game.Registry.Join(c.Param("id"), sender, strings.TrimSpace(req.Alias), req.Stake)
		if err != nil {
			respondGameError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"game": g})
	}
}

// GetGame returns a snapshot of one game
func GetGame() gin.HandlerFunc {
	return func(c *gin.Context) {
		g, err := game.Registry.Get(c.Param("id"))
		if err != nil {
			respondGameError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"game": g})
	}
}

// ListOpenGames returns ids of games waiting for an opponent, newest first
func ListOpenGames() gin.HandlerFunc {
	return func(c *gin.Context) {
		ids := game.Registry.OpenGameIDs()
		c.JSON(http.StatusOK, gin.H{"game_ids": ids, "count": len(ids)})
	}
}

// ListPlayerGames returns ids of games a player is seated in and has not
// closed yet, newest first
func ListPlayerGames() gin.HandlerFunc {
	return func(c *gin.Context) {
		address := normalizeAddress(c.Param("address"))
		ids := game.Registry.GamesOfPlayer(address)
		c.JSON(http.StatusOK, gin.H{"game_ids": ids, "count": len(ids)})
	}
}
