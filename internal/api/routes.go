package api

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"

	"github.com/playgambit/backend/internal/api/handlers"
	"github.com/playgambit/backend/internal/config"
	"github.com/playgambit/backend/internal/middleware"
	"github.com/playgambit/backend/internal/ws"
)

// SetupRoutes configures all API routes
func SetupRoutes(router *gin.Engine, db *sqlx.DB, rdb *redis.Client, cfg *config.Config) {
	router.Use(middleware.CORSMiddleware(cfg))

	// No-cache middleware for development
	if cfg.Environment != "production" {
		router.Use(func(c *gin.Context) {
			c.Header("Cache-Control", "no-store, no-cache, must-revalidate, max-age=0")
			c.Header("Pragma", "no-cache")
			c.Header("Expires", "0")
			c.Next()
		})
		log.Println("[DEV MODE] No-cache headers enabled for all routes")
	}

	// API v1 group
	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", handlers.HealthCheck)

		// Session issuance
		v1.POST("/auth/register", handlers.Register(db, cfg))

		// Public reads
		v1.GET("/games/open", handlers.ListOpenGames())
		v1.GET("/games/:id", handlers.GetGame())
		v1.GET("/games/:id/events", handlers.GetGameEvents(db))
		v1.GET("/games/:id/ws", ws.HandleWebSocket)
		v1.GET("/players/:address", handlers.GetPlayerProfile(db))
		v1.GET("/players/:address/games", handlers.ListPlayerGames())
		v1.GET("/players/:address/score", handlers.GetScore())

		// Authenticated game actions
		authed := v1.Group("")
		authed.Use(handlers.AuthPlayer(cfg))
		{
			authed.POST("/games", handlers.CreateGame())
			authed.POST("/games/:id/join", handlers.JoinGame())

			authed.POST("/games/:id/finish-turn", handlers.FinishTurn())
			authed.POST("/games/:id/move", handlers.SubmitMove())

			authed.POST("/games/:id/claim-win", handlers.ClaimWin())
			authed.POST("/games/:id/claim-timeout", handlers.ClaimTimeout())
			authed.POST("/games/:id/offer-draw", handlers.OfferDraw())
			authed.POST("/games/:id/reject-draw", handlers.RejectDraw())
			authed.POST("/games/:id/confirm-ended", handlers.ConfirmEnded())
			authed.POST("/games/:id/claim-timeout-ended", handlers.ClaimTimeoutEnded())
			authed.POST("/games/:id/surrender", handlers.Surrender())

			authed.POST("/games/:id/close", handlers.CloseGame())
			authed.POST("/games/:id/withdraw", handlers.Withdraw())

			authed.PUT("/players/me/alias", handlers.UpdateAlias(db))
		}

		// Admin surface
		v1.POST("/admin/login", handlers.AdminLogin(db, cfg))
		adminRoutes := v1.Group("/admin")
		adminRoutes.Use(handlers.AuthAdmin(cfg))
		{
			adminRoutes.GET("/stats", handlers.AdminStats(db))
			adminRoutes.GET("/games/:id/escrow", handlers.AdminGameEscrow(db))
		}
	}
}
