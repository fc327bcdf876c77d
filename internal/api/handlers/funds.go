package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/playgambit/backend/internal/game"
)

// CloseGame removes an ended game from the sender's list. Closing a game
// nobody ever joined also cancels it and refunds the stake.
func CloseGame() gin.HandlerFunc {
	return func(c *gin.Context) {
		g, err := game.Registry.ClosePlayerGame(c.Param("id"), senderAddress(c))
		if err != nil {
			respondGameError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"game": g})
	}
}

// Withdraw pays out the sender's accumulated winnings on a game
func Withdraw() gin.HandlerFunc {
	return func(c *gin.Context) {
		amount, err := game.Registry.Withdraw(c.Param("id"), senderAddress(c))
		if err != nil {
			respondGameError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"amount": amount})
	}
}
