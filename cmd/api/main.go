package main

import (
	"context"
	"fmt"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/rameshbanala/resume-analyzer/internal/config"
	"github.com/rameshbanala/resume-analyzer/internal/handlers"
	"github.com/rameshbanala/resume-analyzer/internal/repositories"
	"github.com/rameshbanala/resume-analyzer/internal/services"
)

const dbRetryInterval = 5 * time.Second

func main() {
	// Load configuration
	cfg := config.Load()
	log.Println("✅ Config loaded successfully")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize database
	db, err := config.ConnectWithRetry(ctx, cfg, dbRetryInterval)
	if err != nil {
		log.Fatalf("❌ Failed to initialize database: %v", err)
	}

	resumeRepo := repositories.NewResumeRepository(db)
	log.Println("✅ Repositories initialized successfully")

	// Initialize Gemini AI
	geminiService, err := services.NewGeminiService(ctx, cfg.Gemini)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Gemini AI: %v", err)
	}
	log.Println("✅ Gemini AI initialized successfully")

	ingestion := services.NewIngestionService(
		services.NewFileValidator(cfg.Upload.MaxPDFSize, cfg.Upload.MaxDOCXSize),
		services.NewTextExtractor(cfg.Upload.MinTextLength),
		services.NewStructuredAnalyzer(geminiService, services.AnalyzerOptions{
			MaxAttempts: cfg.Worker.RetryMaxAttempts,
			BaseDelay:   cfg.Worker.RetryInitialDelay,
			Temperature: cfg.Gemini.Temperature,
		}),
	)

	resumeService := services.NewResumeService(ingestion, resumeRepo, initIndexer(ctx, cfg, geminiService))
	log.Println("✅ Services initialized successfully")

	resumeHandler := handlers.NewResumeHandler(resumeService, cfg.Server.RequestTimeout)

	app := fiber.New(fiber.Config{
		AppName:      "Resume Analyzer API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: cfg.Server.RequestTimeout + 10*time.Second,
		BodyLimit:    int(cfg.MaxUploadSize()) + 1024*1024,
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
		AllowHeaders: "Origin, Content-Type, Accept",
	}))

	api := app.Group("/api")

	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	resumeHandler.RegisterRoutes(api)

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Resume Analyzer API",
			"version": "1.0.0",
			"endpoints": []string{
				"POST /api/resumes/upload",
				"GET /api/resumes",
				"GET /api/resumes/search",
				"GET /api/resumes/:id",
				"GET /api/health",
			},
		})
	})

	// Graceful shutdown
	go func() {
		<-ctx.Done()
		log.Println("🛑 Shutting down server...")
		if err := app.ShutdownWithTimeout(cfg.Server.RequestTimeout); err != nil {
			log.Printf("❌ Server forced to shutdown: %v", err)
		}
	}()

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("🚀 Server starting on %s", addr)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
	log.Println("✅ Server stopped")
}

// initIndexer returns nil when Qdrant is not configured or unreachable.
func initIndexer(ctx context.Context, cfg *config.Config, embedder services.Embedder) services.ResumeIndexer {
	if cfg.Qdrant.URL == "" {
		log.Println("⚠️  QDRANT_URL not set, resume search disabled")
		return nil
	}

	qdrantService, err := services.NewQdrantService(cfg.Qdrant.URL, cfg.Qdrant.APIKey, cfg.Qdrant.Collection)
	if err != nil {
		log.Printf("⚠️  Failed to initialize Qdrant, resume search disabled: %v", err)
		return nil
	}

	if err := qdrantService.InitCollection(ctx); err != nil {
		log.Printf("⚠️  Failed to initialize Qdrant collection, resume search disabled: %v", err)
		return nil
	}
	log.Println("✅ Qdrant initialized successfully")

	return services.NewResumeIndexer(embedder, qdrantService, services.NewTextChunker())
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	status, body := handlers.ErrorStatus(err)
	return c.Status(status).JSON(body)
}
