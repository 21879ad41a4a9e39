package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"alfredoptarigan/smartmatch/internal/config"
	"alfredoptarigan/smartmatch/internal/handlers"
	"alfredoptarigan/smartmatch/internal/repositories"
	"alfredoptarigan/smartmatch/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()
	log.Println("✅ Config loaded successfully")

	ctx := context.Background()

	// Initialize the embedding model
	embedder, err := services.NewGeminiEmbedder(
		ctx,
		cfg.Gemini.APIKey,
		cfg.Gemini.EmbeddingModel,
		cfg.Gemini.EmbeddingDimension,
	)
	if err != nil {
		log.Fatalf("❌ Failed to initialize embedding model: %v", err)
	}

	if err := services.Warmup(ctx, embedder); err != nil {
		log.Fatalf("❌ Embedding model unavailable: %v", err)
	}

	// Initialize services
	parser := services.NewDocumentParserService()
	extractor := services.NewKeywordExtractor(embedder)
	matcher := services.NewMatcherService(embedder, extractor, cfg.Matching.KeywordTopN)
	renderer := services.NewReportRenderer()
	log.Println("✅ Services initialized successfully")

	// Optional match history
	var history services.HistoryService
	if cfg.Database.Enabled {
		db, err := config.InitDatabase(cfg)
		if err != nil {
			log.Fatalf("❌ Failed to initialize database: %v", err)
		}

		store, err := services.NewArtifactStore(ctx, cfg.Storage)
		if err != nil {
			log.Fatalf("❌ Failed to initialize report storage: %v", err)
		}

		history = services.NewHistoryService(repositories.NewMatchRepository(db), store, renderer)
		log.Printf("✅ Match history enabled (%s storage)\n", cfg.Storage.Driver)
	}

	// Optional job description archive
	var archive services.JobArchive
	if cfg.Qdrant.Enabled {
		archive, err = services.NewQdrantJobArchive(
			cfg.Qdrant.URL,
			cfg.Qdrant.APIKey,
			cfg.Qdrant.Collection,
			embedder.Dimension(),
		)
		if err != nil {
			log.Fatalf("❌ Failed to initialize Qdrant: %v", err)
		}

		if err := archive.InitCollection(ctx); err != nil {
			log.Fatalf("❌ Failed to initialize Qdrant collection: %v", err)
		}
		log.Println("✅ Qdrant initialized successfully")
	}

	// Initialize Handlers
	matchHandler := handlers.NewMatchHandler(
		parser,
		matcher,
		renderer,
		history,
		archive,
		cfg.Matching.MaxFileSize,
	)
	log.Println("✅ Handlers initialized")

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "SmartMatch Resume Analyzer",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		BodyLimit:    int(cfg.Matching.MaxFileSize) + 1<<20,
		ErrorHandler: customErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	// Routes
	app.Get("/", handlers.HandleIndex)

	api := app.Group("/api/v1")

	// Health check
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "healthy",
			"model":   embedder.ModelName(),
			"history": history != nil,
			"archive": archive != nil,
			"time":    time.Now(),
		})
	})

	// API endpoints
	api.Post("/match", matchHandler.HandleMatch)
	api.Post("/match/report", matchHandler.HandleReport)

	if history != nil {
		resultHandler := handlers.NewResultHandler(history)
		api.Get("/results", resultHandler.HandleListResults)
		api.Get("/result/:id", resultHandler.HandleGetResult)
		api.Get("/result/:id/download/:format", resultHandler.HandleDownload)
	}

	if archive != nil {
		archiveHandler := handlers.NewArchiveHandler(parser, embedder, archive, cfg.Matching.MaxFileSize)
		api.Post("/archive/similar", archiveHandler.HandleSimilar)
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("\n🛑 Shutting down server...")
		if err := app.Shutdown(); err != nil {
			log.Printf("❌ Server forced to shutdown: %v", err)
		}
	}()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("🚀 Server starting on %s\n", addr)
	log.Printf("📖 Upload form: http://localhost%s\n", addr)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
		"code":  code,
	})
}
