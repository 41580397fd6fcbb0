package main

import (
	"context"
	"log"
	"time"

	"github.com/interviewgenius/server/internal/client"
	"github.com/interviewgenius/server/internal/config"
	"github.com/interviewgenius/server/internal/database"
	"github.com/interviewgenius/server/internal/domain"
	"github.com/interviewgenius/server/internal/handler"
	"github.com/interviewgenius/server/internal/repository"
	"github.com/interviewgenius/server/internal/routes"
	"github.com/interviewgenius/server/internal/service"
	"github.com/interviewgenius/server/pkg/genai"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	store, err := newSessionStore(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize session store: %v", err)
	}

	genClient := client.NewGenerationClient(
		cfg.Generation.BaseURL,
		time.Duration(cfg.Generation.TimeoutSeconds)*time.Second,
	)

	sessionService, err := service.NewSessionService(context.Background(), store, genClient)
	if err != nil {
		log.Fatalf("Failed to initialize session service: %v", err)
	}

	var generationService domain.GenerationProvider
	if cfg.Gemini.APIKey != "" {
		genaiClient, err := genai.NewClient(genai.Config{
			APIKey: cfg.Gemini.APIKey,
			Model:  cfg.Gemini.Model,
		})
		if err != nil {
			log.Fatalf("Failed to create genai client: %v", err)
		}
		generationService = service.NewGenerationService(genaiClient)
	} else {
		log.Println("GEMINI_API_KEY not set, generation endpoints will answer 503")
		generationService = service.NewGenerationService(nil)
	}

	sessionHandler := handler.NewSessionHandler(sessionService, service.NewReportService())
	generationHandler := handler.NewGenerationHandler(generationService)

	app := fiber.New(fiber.Config{
		AppName:      "Interview Genius API",
		ErrorHandler: customErrorHandler,
	})

	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins:     "*",
		AllowHeaders:     "Origin, Content-Type, Accept",
		AllowMethods:     "GET, POST, PUT, DELETE, PATCH, OPTIONS",
		AllowCredentials: false,
	}))

	routes.Setup(app, routes.Handlers{
		Session:    sessionHandler,
		Generation: generationHandler,
	})

	port := cfg.App.Port
	if port == "" {
		port = "3000"
	}

	log.Printf("Server starting on port %s", port)
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func newSessionStore(cfg *config.Config) (domain.SessionStore, error) {
	if cfg.Storage.Backend == "redis" {
		redisClient, err := database.NewRedisConnection(cfg.Redis)
		if err != nil {
			return nil, err
		}
		return repository.NewRedisSessionStore(redisClient), nil
	}
	return repository.NewFileSessionStore(cfg.Storage.FileDir)
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"success": false,
		"error":   err.Error(),
	})
}
