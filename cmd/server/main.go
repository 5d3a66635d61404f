package main // Entry point package

import (
	"log" // Logging library

	"github.com/joho/godotenv"    // Loads .env files into the environment
	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/videogamed/videogamed/internal/config"     // Internal config loader
	"github.com/videogamed/videogamed/internal/database"   // MySQL connection pool
	"github.com/videogamed/videogamed/internal/handler"    // HTTP handlers
	"github.com/videogamed/videogamed/internal/queue"      // Background activity consumer
	"github.com/videogamed/videogamed/internal/repository" // Data access layer
	"github.com/videogamed/videogamed/internal/router"     // Route registration
	"github.com/videogamed/videogamed/internal/service"    // Event publisher
	"github.com/videogamed/videogamed/internal/session"    // In-memory session registry
)

func main() {
	if err := godotenv.Load(); err != nil { // Load .env if present
		log.Printf("no .env file loaded: %v", err) // Not fatal; env vars may be set elsewhere
	}

	cfg := config.Load() // Load environment config

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName) // Open MySQL pool
	if err != nil {
		log.Fatalf("database: %v", err) // Cannot run without storage
	}
	defer db.Close()

	rdb := config.NewRedisClient() // Redis for caching and rate limiting; nil disables both
	if rdb == nil {
		log.Println("redis unavailable; response cache and rate limiting disabled")
	}

	sessions := session.NewStore() // Session registry shared by handlers and middleware

	users := repository.NewUserRepo(db)     // User accounts
	games := repository.NewGameRepo(db)     // Catalogue, wishlist and played lists
	reviews := repository.NewReviewRepo(db) // Reviews and likes
	tags := repository.NewTagRepo(db)       // Tags

	h := router.Handlers{
		Auth:   handler.NewAuthHandler(cfg, users, sessions),
		User:   handler.NewUserHandler(cfg, users, reviews),
		Game:   handler.NewGameHandler(games, reviews, tags, sessions),
		Review: handler.NewReviewHandler(reviews, games, &service.AMQPPublisher{}),
		Tag:    handler.NewTagHandler(tags, games),
	}

	go func() { // Activity consumer runs for the life of the process
		if err := queue.StartActivityConsumer(); err != nil {
			log.Printf("activity consumer stopped: %v", err)
		}
	}()

	e := echo.New()                            // Create Echo instance
	router.RegisterRoutes(e, h, sessions, rdb) // Register application routes

	addr := ":" + cfg.Port                                // Address string with port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env) // Print startup info

	if err := e.Start(addr); err != nil { // Start HTTP server
		log.Fatal(err) // Log and exit if server fails
	}
}
