package main

import (
	"context"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/playgambit/backend/internal/api"
	"github.com/playgambit/backend/internal/config"
	"github.com/playgambit/backend/internal/database"
	"github.com/playgambit/backend/internal/game"
	"github.com/playgambit/backend/internal/migrations"
	"github.com/playgambit/backend/internal/rating"
	"github.com/playgambit/backend/internal/redis"
	"github.com/playgambit/backend/internal/ws"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Initialize configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Run migrations on start if requested
	if os.Getenv("MIGRATE_ON_START") == "true" {
		log.Println("↗ Running DB migrations on startup...")
		if err := migrations.RunMigrations(cfg.DatabaseURL); err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}
	}

	// Initialize Redis
	rdb, err := redis.Connect(cfg.RedisURL)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer rdb.Close()

	// Initialize the game registry and rating engine
	game.InitializeRegistry(db, rdb, cfg)
	rating.Default = rating.NewEngine(db, rdb)

	// Rate every decisive or drawn game as it resolves
	game.Registry.SetEventHook(func(ev game.Event) {
		if ev.Type != game.EventGameEnded {
			return
		}
		player1, _ := ev.Fields["player1"].(string)
		player2, _ := ev.Fields["player2"].(string)
		winner, _ := ev.Fields["winner"].(string)
		if player1 == "" || player2 == "" {
			return
		}
		rating.Default.RecordResult(player1, player2, winner)
	})

	// Wire Redis and start the live event subscriber in the WS layer
	ws.SetRedisClient(rdb, cfg)
	ws.StartEventSubscriber(context.Background())

	// Start the dispute worker (announces elapsed countdowns)
	game.StartDisputeWorker(context.Background(), rdb, cfg)

	// Set up Gin router
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()

	// Initialize API handlers
	api.SetupRoutes(router, db, rdb, cfg)

	// Start server
	port := cfg.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting PlayGambit server on port %s", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
