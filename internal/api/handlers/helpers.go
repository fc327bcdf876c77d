package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/playgambit/backend/internal/game"
)

// respondGameError maps a registry rejection to an HTTP status. The error
// strings themselves are part of the API contract, clients match on them.
func respondGameError(c *gin.Context, err error) {
	status := http.StatusConflict
	switch game.Kind(err) {
	case game.KindNotFound:
		status = http.StatusNotFound
	case game.KindInvalidInput:
		status = http.StatusBadRequest
	case game.KindAuthorization:
		status = http.StatusForbidden
	case game.KindFunds:
		status = http.StatusBadRequest
	case game.KindTiming, game.KindStateConflict:
		status = http.StatusConflict
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

// senderAddress returns the authenticated player address set by AuthPlayer.
func senderAddress(c *gin.Context) string {
	addr, _ := c.Get("address")
	s, _ := addr.(string)
	return s
}

// normalizeAddress canonicalizes a player address for lookups. Addresses are
// case-insensitive identifiers, stored lowercased.
func normalizeAddress(address string) string {
	return strings.ToLower(strings.TrimSpace(address))
}
