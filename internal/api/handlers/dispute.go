package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/playgambit/backend/internal/game"
)

// ClaimWin starts a win dispute. The opponent either confirms it or refutes
// it by finishing their turn before the countdown runs out.
func ClaimWin() gin.HandlerFunc {
	return func(c *gin.Context) {
		g, err := game.Registry.ClaimWin(c.Param("id"), senderAddress(c))
		if err != nil {
			respondGameError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"game": g})
	}
}

// ClaimTimeout starts an abandonment dispute against the player on turn
func ClaimTimeout() gin.HandlerFunc {
	return func(c *gin.Context) {
		g, err := game.Registry.ClaimTimeout(c.Param("id"), senderAddress(c))
		if err != nil {
			respondGameError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"game": g})
	}
}

// OfferDraw proposes to split the pot
func OfferDraw() gin.HandlerFunc {
	return func(c *gin.Context) {
		g, err := game.Registry.OfferDraw(c.Param("id"), senderAddress(c))
		if err != nil {
			respondGameError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"game": g})
	}
}

// RejectDraw declines a pending draw offer without passing the turn
func RejectDraw() gin.HandlerFunc {
	return func(c *gin.Context) {
		g, err := game.Registry.RejectDraw(c.Param("id"), senderAddress(c))
		if err != nil {
			respondGameError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"game": g})
	}
}

// ConfirmEnded accepts the opponent's pending claim or draw offer and
// settles the game immediately
func ConfirmEnded() gin.HandlerFunc {
	return func(c *gin.Context) {
		g, err := game.Registry.ConfirmEnded(c.Param("id"), senderAddress(c))
		if err != nil {
			respondGameError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"game": g})
	}
}

// ClaimTimeoutEnded settles a dispute whose countdown has fully elapsed
func ClaimTimeoutEnded() gin.HandlerFunc {
	return func(c *gin.Context) {
		g, err := game.Registry.ClaimTimeoutEnded(c.Param("id"), senderAddress(c))
		if err != nil {
			respondGameError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"game": g})
	}
}

// Surrender concedes the game to the opponent immediately
func Surrender() gin.HandlerFunc {
	return func(c *gin.Context) {
		g, err := game.Registry.Surrender(c.Param("id"), senderAddress(c))
		if err != nil {
			respondGameError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"game": g})
	}
}
