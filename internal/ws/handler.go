package ws

import (
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"

	"github.com/playgambit/backend/internal/game"
)

// HandleWebSocket upgrades a connection for live game events. Browsers can
// not set an Authorization header on the upgrade request, so the JWT is
// passed as a query parameter.
func HandleWebSocket(c *gin.Context) {
	if wsConfig == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "websocket layer not initialized"})
		return
	}

	gameID := c.Param("id")
	token := c.Query("token")
	if gameID == "" || token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id and token required"})
		return
	}

	address, err := addressFromToken(token, wsConfig.JWTSecret)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		return
	}

	g, err := game.Registry.Get(gameID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "game not found"})
		return
	}
	if g.Player1 != address && g.Player2 != address {
		c.JSON(http.StatusForbidden, gin.H{"error": "not a player of this game"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("[WS] Upgrade error: %v", err)
		return
	}

	client := &Client{
		conn:    conn,
		address: address,
		gameID:  gameID,
		send:    make(chan []byte, 256),
	}

	GameHub.register <- client

	go client.writePump()
	go client.readPump()
}

func addressFromToken(token, secret string) (string, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil || !parsed.Valid {
		return "", fmt.Errorf("invalid token")
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return "", fmt.Errorf("invalid claims")
	}
	address, _ := claims["address"].(string)
	address = strings.TrimSpace(address)
	if address == "" {
		return "", fmt.Errorf("missing address claim")
	}
	return address, nil
}
