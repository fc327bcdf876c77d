package handlers

import (
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/jmoiron/sqlx"

	"github.com/playgambit/backend/internal/admin"
	"github.com/playgambit/backend/internal/config"
	"github.com/playgambit/backend/internal/escrow"
	"github.com/playgambit/backend/internal/game"
)

// AdminLogin validates operator credentials and issues a short-lived admin JWT
func AdminLogin(db *sqlx.DB, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Username string `json:"username" binding:"required"`
			Token    string `json:"token" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "username and token required"})
			return
		}

		account, err := admin.ValidateAdminCredentials(db, req.Username, req.Token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}

		exp := time.Now().Add(2 * time.Hour)
		claims := jwt.MapClaims{"admin": account.Username, "exp": exp.Unix()}
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
		signed, err := token.SignedString([]byte(cfg.JWTSecret))
		if err != nil {
			log.Printf("Failed to sign admin token: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"token": signed, "expires_at": exp.Format(time.RFC3339)})
	}
}

// AuthAdmin validates the bearer JWT carries an admin claim
func AuthAdmin(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if auth == "" || !strings.HasPrefix(auth, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
			return
		}
		token := strings.TrimPrefix(auth, "Bearer ")

		parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
			if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
				return nil, fmt.Errorf("unexpected signing method")
			}
			return []byte(cfg.JWTSecret), nil
		})
		if err != nil || !parsed.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
		claims, ok := parsed.Claims.(jwt.MapClaims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
		username, _ := claims["admin"].(string)
		if username == "" {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin access required"})
			return
		}

		c.Set("admin_username", username)
		c.Next()
	}
}

// AdminGameEscrow reports the ledger balance still held for one game next to
// the registry's own view, for spotting stranded value
func AdminGameEscrow(db *sqlx.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		gameID := c.Param("id")

		g, err := game.Registry.Get(gameID)
		if err != nil {
			respondGameError(c, err)
			return
		}

		held, err := escrow.Balance(db, gameID)
		if err != nil {
			log.Printf("[DB] Failed to read escrow balance for game %s: %v", gameID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		registryHeld := g.Pot + g.Player1Winnings + g.Player2Winnings
		if g.Player2 == "" && !g.Ended {
			// unmatched game, the creator's deposit is not in the pot yet
			registryHeld += g.Stake
		}

		c.JSON(http.StatusOK, gin.H{
			"game_id":       gameID,
			"ledger_held":   held,
			"registry_held": registryHeld,
		})
	}
}

// AdminStats returns live registry counters plus durable totals
func AdminStats(db *sqlx.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		open, total := game.Registry.Counts()

		stats := gin.H{
			"open_games":  open,
			"total_games": total,
		}

		if db != nil {
			var playerCount int
			if err := db.Get(&playerCount, `SELECT COUNT(*) FROM players`); err != nil {
				log.Printf("[DB] Failed to count players: %v", err)
			} else {
				stats["players"] = playerCount
			}

			var held int64
			err := db.Get(&held, `
				SELECT COALESCE(SUM(CASE WHEN entry_type='WITHDRAW' THEN -amount ELSE 0 END), 0)
				     + COALESCE(SUM(CASE WHEN entry_type='DEPOSIT' THEN amount ELSE 0 END), 0)
				FROM escrow_entries
			`)
			if err != nil {
				log.Printf("[DB] Failed to sum escrow: %v", err)
			} else {
				stats["escrow_held"] = held
			}
		}

		c.JSON(http.StatusOK, stats)
	}
}
