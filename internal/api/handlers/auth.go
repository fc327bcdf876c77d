package handlers

import (
	"fmt"
	"log"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/jmoiron/sqlx"

	"github.com/playgambit/backend/internal/config"
)

var validAddress = regexp.MustCompile(`^[a-z0-9][a-z0-9._-]{2,63}$`)

// Register upserts a player and issues a session token. The address is the
// player identity everywhere else in the API, the alias is cosmetic.
func Register(db *sqlx.DB, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Address string `json:"address" binding:"required"`
			Alias   string `json:"alias,omitempty"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "address required"})
			return
		}

		address := normalizeAddress(req.Address)
		if !validAddress.MatchString(address) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid address format"})
			return
		}

		alias := strings.TrimSpace(req.Alias)
		if len(alias) > 50 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "alias too long"})
			return
		}

		if db != nil {
			if _, err := db.Exec(`
				INSERT INTO players (address, alias, created_at)
				VALUES ($1, $2, NOW())
				ON CONFLICT (address) DO UPDATE SET
					alias = CASE WHEN EXCLUDED.alias <> '' THEN EXCLUDED.alias ELSE players.alias END
			`, address, alias); err != nil {
				log.Printf("[DB] Failed to upsert player %s: %v", address, err)
			}
		}

		exp := time.Now().Add(time.Duration(cfg.SessionTimeoutMin) * time.Minute)
		claims := jwt.MapClaims{"address": address, "exp": exp.Unix()}
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
		signed, err := token.SignedString([]byte(cfg.JWTSecret))
		if err != nil {
			log.Printf("Failed to sign token: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"token":      signed,
			"expires_at": exp.Format(time.RFC3339),
			"player":     gin.H{"address": address, "alias": alias},
		})
	}
}

// AuthPlayer validates the bearer JWT and sets the player address in context
func AuthPlayer(cfg *config.Config) gin.HandlerFunc {
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
		address, _ := claims["address"].(string)
		if address == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set("address", address)
		c.Next()
	}
}
