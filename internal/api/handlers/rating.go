package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/playgambit/backend/internal/rating"
)

// GetScore returns the current rating of a player. Unknown players sit at
// the floor score.
func GetScore() gin.HandlerFunc {
	return func(c *gin.Context) {
		address := normalizeAddress(c.Param("address"))
		score := rating.Default.GetScore(address)
		c.JSON(http.StatusOK, gin.H{"player": address, "score": score})
	}
}
