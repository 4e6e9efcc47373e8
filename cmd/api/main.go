// server/cmd/api/main.go
package main

import (
	"context"
	"log"

	"gestor-frete-api-server/config"
	"gestor-frete-api-server/internal/api/routes"
	"gestor-frete-api-server/internal/database"
	"gestor-frete-api-server/internal/s3"
	"gestor-frete-api-server/internal/socket"

	"github.com/joho/godotenv"
)

func main() {
	// 1. Load .env (optional) and configuration
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	cfg, err := config.LoadConfig("./config")
	if err != nil {
		log.Fatalf("Could not load config: %v", err)
	}
	if cfg.JWT.Secret == "" {
		log.Fatal("JWT_SECRET must be configured")
	}

	// 2. Connect to MongoDB
	client, db, err := database.Connect(cfg.Mongo)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer client.Disconnect(context.Background())
	log.Println("Connected to MongoDB")

	// 3. Seed the bootstrap admin account
	if err := database.SeedAdmin(db, cfg); err != nil {
		log.Fatalf("Failed to seed admin account: %v", err)
	}

	// 4. S3 uploader for comprovantes
	s3Uploader, err := s3.NewUploader(cfg.S3)
	if err != nil {
		log.Fatalf("Failed to create S3 uploader: %v", err)
	}

	// 5. WebSocket hub for portal push updates
	wsHub := socket.NewHub()

	// 6. Router
	router := routes.SetupRouter(cfg, db, s3Uploader, wsHub)

	// 7. Start server
	log.Printf("Starting API server on port %s", cfg.Server.Port)
	if err := router.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}
