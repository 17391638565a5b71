package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"

	"github.com/zubbymusic/song-suggestions/internal/database"
	"github.com/zubbymusic/song-suggestions/internal/handlers"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	mongoURI := os.Getenv("MONGODB_URI")
	if mongoURI == "" {
		log.Fatal("MONGODB_URI environment variable is required")
	}

	dbName := os.Getenv("MONGODB_DB")
	if dbName == "" {
		dbName = "songs"
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "3009"
	}

	devMode := os.Getenv("APP_ENV") == "development"

	// Connect before accepting traffic; an unreachable store is fatal.
	db, err := database.New(mongoURI, dbName)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	h := handlers.New(db)

	app := fiber.New(fiber.Config{
		AppName:      "Song Suggestions API",
		BodyLimit:    10 * 1024 * 1024,
		ErrorHandler: errorHandler(devMode),
	})

	// Middleware
	app.Use(recover.New())
	app.Use(helmet.New())
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept",
	}))

	h.RegisterRoutes(app)

	go func() {
		log.Printf("Server starting on port %s", port)
		if err := app.Listen(":" + port); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Graceful shutdown: stop the server, then close the store connection.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down gracefully...")
	if err := app.Shutdown(); err != nil {
		log.Printf("Error shutting down server: %v", err)
	}
	if err := db.Close(); err != nil {
		log.Printf("Error closing database connection: %v", err)
	}
}

// errorHandler catches anything the handlers did not. Internal error text is
// only echoed in development mode.
func errorHandler(devMode bool) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		log.Printf("Unhandled error: %v", err)
		msg := "Something went wrong"
		if devMode {
			msg = err.Error()
		}
		return c.Status(500).JSON(fiber.Map{
			"error":   "Internal server error",
			"message": msg,
		})
	}
}
