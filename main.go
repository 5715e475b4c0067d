package main

import (
	"context"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/servihub/reports-api/config"
	"github.com/servihub/reports-api/routes"
	"github.com/servihub/reports-api/stores"
)

func main() {
	// Set up logging to stdout
	log.SetOutput(os.Stdout)
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using process environment")
	}

	if os.Getenv("JWT_SECRET") == "" {
		log.Fatal("JWT_SECRET must be set")
	}

	// Initialize database
	db := config.InitDB()

	if os.Getenv("SEED_DB") == "true" {
		if err := config.SeedDatabase(db); err != nil {
			log.Fatal("Failed to seed database:", err)
		}
	}

	// Optional redis-backed session revocation
	denylist, err := stores.NewSessionDenylistFromEnv(context.Background())
	if err != nil {
		log.Fatal("Failed to connect to redis:", err)
	}

	// Create a new Gin router
	r := gin.Default()

	// Initialize routes
	routes.SetupRoutes(r, db, denylist)

	// Start the server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting server on port %s", port)
	r.Run(":" + port)
}
