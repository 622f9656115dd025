package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/filesystem"
	"github.com/gofiber/fiber/v2/middleware/healthcheck"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"alfredoptarigan/resume-screener/internal/config"
	"alfredoptarigan/resume-screener/internal/handlers"
	"alfredoptarigan/resume-screener/internal/middleware"
	"alfredoptarigan/resume-screener/internal/services"
	"alfredoptarigan/resume-screener/internal/views"
	"alfredoptarigan/resume-screener/public"
)

const appName = "Resume Screener"

func main() {
	// Load configuration
	cfg := config.Load()
	log.Println("✅ Config loaded successfully")

	// Initialize services
	storageService := services.NewStorageService(cfg.Storage.UploadPath)
	if err := storageService.EnsureUploadDir(); err != nil {
		log.Fatalf("❌ Failed to create upload directory: %v", err)
	}

	analysisClient := services.NewAnalysisClient(services.AnalysisClientConfig{
		BaseURL:    cfg.Analysis.URL,
		UploadPath: cfg.Analysis.UploadPath,
		HealthPath: cfg.Analysis.HealthPath,
		Timeout:    cfg.Analysis.Timeout,
	}, services.NewNormalizer(time.Now), storageService)
	log.Printf("✅ Analysis API client configured for %s\n", cfg.Analysis.URL)

	worker := services.NewWorker(analysisClient, cfg.Worker.Concurrency, cfg.Worker.QueueSize)

	screener := services.NewScreener(services.ScreenerConfig{
		DebounceDelay:     cfg.Screening.DebounceDelay,
		MinJobDescription: cfg.Screening.MinJobDescription,
		MaxFileSize:       cfg.Storage.MaxFileSize,
	}, storageService, worker, services.NewAnalysisPresenter())
	log.Println("✅ Services initialized successfully")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	screener.Start(ctx)

	// Initialize handlers
	uploadHandler := handlers.NewUploadHandler(screener)
	jobDescriptionHandler := handlers.NewJobDescriptionHandler(screener)
	resultHandler := handlers.NewResultHandler(
		screener,
		appName,
		cfg.Screening.MinJobDescription,
		cfg.Storage.MaxFileSize,
	)
	systemHandler := handlers.NewSystemHandler(screener, analysisClient, appName)
	log.Println("✅ Handlers initialized")

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      appName,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: cfg.Analysis.Timeout + 30*time.Second,
		BodyLimit:    int(cfg.Storage.MaxFileSize) * 5,
		ErrorHandler: customErrorHandler,
		Views:        views.New(),
	})

	// Middleware
	app.Use(recover.New(recover.Config{
		EnableStackTrace: !cfg.IsProduction(),
	}))
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept",
	}))
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
	app.Use(helmet.New(helmet.Config{
		CrossOriginResourcePolicy: "cross-origin",
	}))
	app.Use(healthcheck.New())

	// Static assets and landing page
	app.Use("/static", filesystem.New(filesystem.Config{
		Root:   http.FS(public.Static()),
		MaxAge: 3600,
	}))
	app.Get("/", resultHandler.HandleIndex)

	// Routes
	// Session polling and description edits are not rate limited.
	api := app.Group("/api", middleware.RateLimiter(
		cfg.RateLimit.Max,
		cfg.RateLimit.Expiration,
		"GET /api/queue",
		"PUT /api/job-description",
		"GET /api/results",
		"GET /api/results/view",
	))

	api.Get("/health", systemHandler.HandleHealth)
	api.Get("/info", systemHandler.HandleInfo)

	api.Get("/queue", uploadHandler.HandleListQueue)
	api.Post("/queue", uploadHandler.HandleUpload)
	api.Delete("/queue/:index", uploadHandler.HandleRemove)
	api.Put("/job-description", jobDescriptionHandler.HandleSetJobDescription)

	api.Get("/results", resultHandler.HandleGetResults)
	api.Get("/results/view", resultHandler.HandleGetResultsView)
	api.Post("/results/:rank/select", resultHandler.HandleSelect)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("\n🛑 Shutting down server...")
		screener.Stop()
		cancel()
		if err := app.Shutdown(); err != nil {
			log.Printf("❌ Server forced to shutdown: %v", err)
		}
	}()

	// Start server
	addr := cfg.Addr()
	log.Printf("🚀 Server starting on %s\n", addr)
	log.Printf("📖 Landing page: http://localhost%s\n", addr)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
		"code":  code,
	})
}
