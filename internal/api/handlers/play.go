package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/playgambit/backend/internal/game"
)

// FinishTurn passes the turn to the opponent. Also withdraws any pending
// claim or draw offer on the game.
func FinishTurn() gin.HandlerFunc {
	return func(c *gin.Context) {
		g, err := game.Registry.FinishTurn(c.Param("id"), senderAddress(c))
		if err != nil {
			respondGameError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"game": g})
	}
}

// SubmitMove validates a move against the configured validator, applies it
// to the board and passes the turn
func SubmitMove() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Move json.RawMessage `json:"move" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "move required"})
			return
		}

		g, err := game.Registry.SubmitMove(c.Param("id"), senderAddress(c), req.Move)
		if err != nil {
			respondGameError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"game": g})
	}
}
