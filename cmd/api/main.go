package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/viper"

	_ "github.com/jackc/pgx/v5/stdlib"

	"olive-mind/internal/events"
	"olive-mind/internal/handlers"
	"olive-mind/internal/middleware"
	"olive-mind/internal/storage"
	ws "olive-mind/internal/websocket"
)

// This struct will hold our loaded configuration
type Config struct {
	Store      string `mapstructure:"STORE"` // "postgres" or "sqlite"
	DSN        string `mapstructure:"DSN"`
	SQLitePath string `mapstructure:"SQLITE_PATH"`
	JWTSecret  string `mapstructure:"JWT_SECRET"`
	Addr       string `mapstructure:"ADDR"`
}

// Function loads the config.env file from the root folder
func loadConfig() (config Config, err error) {
	viper.AddConfigPath(".")
	viper.SetConfigName("config")
	viper.SetConfigType("env")
	viper.AutomaticEnv()

	viper.SetDefault("STORE", "postgres")
	viper.SetDefault("SQLITE_PATH", "olive-mind.db")
	viper.SetDefault("ADDR", ":8080")

	err = viper.ReadInConfig()
	if err != nil {
		return
	}

	err = viper.Unmarshal(&config)
	return
}

// openStore picks the storage adapter. The rest of the service only ever
// sees the Repository interface, so swapping backends is a config change.
func openStore(config Config) (storage.Repository, error) {
	if config.Store == "sqlite" {
		log.Println("Using local SQLite store:", config.SQLitePath)
		return storage.NewSQLite(config.SQLitePath)
	}

	db, err := sqlx.Connect("pgx", config.DSN)
	if err != nil {
		return nil, err
	}
	log.Println("Successfully connected to Supabase (PostgreSQL)!")
	return storage.NewPostgres(db), nil
}

func main() {
	log.Println("Starting Olive Mind work-management server...")

	// Load Configuration
	config, err := loadConfig()
	if err != nil {
		log.Fatal("cannot load config:", err)
	}

	// Open the storage backend
	repo, err := openStore(config)
	if err != nil {
		log.Fatal("cannot open store:", err)
	}

	// Realtime change feed
	hub := ws.NewHub()
	go hub.Run()

	// The coordinator keeps events, messages and payments consistent
	coordinator := events.NewCoordinator(repo, hub)

	// Set up our Gin router
	r := gin.Default()

	// Simple test route
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	// Create handler instances
	authHandler := handlers.NewAuthHandler(repo, config.JWTSecret)
	eventHandler := handlers.NewEventHandler(repo, coordinator)
	messageHandler := handlers.NewMessageHandler(repo, coordinator)
	paymentHandler := handlers.NewPaymentHandler(repo, coordinator)
	workerHandler := handlers.NewWorkerHandler(repo)
	brandHandler := handlers.NewBrandHandler(repo)
	wsHandler := handlers.NewWebSocketHandler(hub, config.JWTSecret)

	// All API routes under /api
	api := r.Group("/api")
	{
		// Auth Endpoint
		auth := api.Group("/auth")
		{
			auth.POST("/login", authHandler.Login)
		}

		// Protected Endpoints
		protected := api.Group("/")
		protected.Use(middleware.AuthMiddleware(config.JWTSecret))
		{
			protected.GET("/events", eventHandler.List)
			protected.POST("/events", eventHandler.Create)
			protected.PUT("/events/:id", eventHandler.Update)
			protected.DELETE("/events/:id", eventHandler.Delete)
			protected.POST("/events/:id/regenerate", eventHandler.Regenerate)

			protected.GET("/messages", messageHandler.List)
			protected.PATCH("/messages/:id/sent", messageHandler.MarkSent)

			protected.GET("/payments", paymentHandler.List)
			protected.PATCH("/payments/:id/paid", paymentHandler.MarkPaid)

			protected.GET("/workers", workerHandler.List)
			protected.GET("/brand-briefs", brandHandler.ListBriefs)
			protected.GET("/brand-notes", brandHandler.ListNotes)

			// Registry and brand writes do not pass through the
			// coordinator, so the role gate sits on the routes.
			managed := protected.Group("/")
			managed.Use(middleware.RequireManager())
			{
				managed.POST("/workers", workerHandler.Create)
				managed.PUT("/workers/:id", workerHandler.Update)
				managed.DELETE("/workers/:id", workerHandler.Delete)

				managed.POST("/brand-briefs", brandHandler.CreateBrief)
				managed.PUT("/brand-briefs/:id", brandHandler.UpdateBrief)
				managed.DELETE("/brand-briefs/:id", brandHandler.DeleteBrief)

				managed.POST("/brand-notes", brandHandler.CreateNote)
				managed.PUT("/brand-notes/:id", brandHandler.UpdateNote)
				managed.DELETE("/brand-notes/:id", brandHandler.DeleteNote)
			}
		}
	}

	// Realtime feed (token as query param, see handler)
	r.GET("/ws/feed", wsHandler.ServeFeed)

	// Start the server
	log.Println("Server starting on", config.Addr)
	if err := r.Run(config.Addr); err != nil {
		log.Fatal("could not start server:", err)
	}
}
