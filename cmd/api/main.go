package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"alfredoptarigan/ats-analyzer/internal/config"
	"alfredoptarigan/ats-analyzer/internal/handlers"
	"alfredoptarigan/ats-analyzer/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("❌ Invalid configuration: %v", err)
	}
	log.Println("✅ Config loaded successfully")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize repositories
	repos, err := config.InitRepositories(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize database: %v", err)
	}
	log.Printf("✅ Repositories initialized (%s)\n", cfg.Database.Driver)

	// Initialize storage and parsing
	storageService := services.NewStorageService(cfg.Storage.UploadPath)
	if err := storageService.EnsureUploadDir(); err != nil {
		log.Fatalf("❌ Failed to create upload directory: %v", err)
	}
	parser := services.NewDocumentParser()

	archive := services.NewNoopArchive()
	if cfg.S3.Bucket != "" {
		archive, err = services.NewS3Archive(ctx, services.S3ArchiveConfig{
			Bucket:    cfg.S3.Bucket,
			Region:    cfg.S3.Region,
			Endpoint:  cfg.S3.Endpoint,
			AccessKey: cfg.S3.AccessKey,
			SecretKey: cfg.S3.SecretKey,
		})
		if err != nil {
			log.Fatalf("❌ Failed to initialize S3 archive: %v", err)
		}
		log.Printf("✅ Resume archive enabled (bucket %s)\n", cfg.S3.Bucket)
	}
	log.Println("✅ Services initialized successfully")

	// Initialize the oracle
	llm, gemini, err := newLLMClient(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize %s client: %v", cfg.Oracle.Provider, err)
	}
	retry := services.DefaultRetryConfig
	retry.MaxRetries = cfg.Oracle.MaxRetries

	oracle := services.NewLLMOracle(llm, services.OracleOptions{
		RPS:       cfg.Oracle.RPS,
		Burst:     cfg.Oracle.Burst,
		ChunkSize: cfg.Oracle.ChunkSize,
		Retry:     retry,
	})
	if cfg.Redis.URL != "" {
		cache, err := services.NewRedisKeywordCache(cfg.Redis.URL, cfg.Redis.KeywordCacheTTL)
		if err != nil {
			log.Printf("⚠️  Keyword cache disabled: %v\n", err)
		} else {
			oracle = services.NewCachedOracle(oracle, cache, cacheNamespace(cfg))
			log.Println("✅ Keyword cache enabled")
		}
	}
	log.Printf("✅ Oracle initialized (%s)\n", llm.Name())

	// Initialize events
	publisher := services.NewNoopPublisher()
	if cfg.RabbitMQ.URL != "" {
		publisher, err = services.NewAMQPPublisher(cfg.RabbitMQ.URL, cfg.RabbitMQ.Exchange)
		if err != nil {
			log.Printf("⚠️  Analysis events disabled: %v\n", err)
			publisher = services.NewNoopPublisher()
		} else {
			log.Printf("✅ Publishing analysis events to %s\n", cfg.RabbitMQ.Exchange)
		}
	}
	defer publisher.Close()

	// Initialize the job description index
	index := services.NewNoopJobIndex()
	if cfg.Qdrant.URL != "" {
		embedder := gemini
		if embedder == nil {
			embedder, err = services.NewGeminiService(cfg.Gemini.APIKey, cfg.Gemini.Model, cfg.Gemini.EmbedModel)
			if err != nil {
				log.Fatalf("❌ Failed to initialize Gemini embeddings: %v", err)
			}
		}
		index, err = services.NewQdrantJobIndex(ctx, services.QdrantIndexConfig{
			URL:        cfg.Qdrant.URL,
			APIKey:     cfg.Qdrant.APIKey,
			Collection: cfg.Qdrant.Collection,
			VectorSize: cfg.Qdrant.VectorSize,
		}, embedder)
		if err != nil {
			log.Fatalf("❌ Failed to initialize Qdrant: %v", err)
		}
		log.Println("✅ Qdrant initialized successfully")
	}

	// Start indexer
	indexer := services.NewIndexer(
		repos.JobDescriptions,
		index,
		services.RetryConfig{
			MaxRetries:  max(cfg.Worker.RetryMaxAttempts-1, 0),
			InitialWait: cfg.Worker.RetryInitialDelay,
			MaxWait:     30 * time.Second,
			Multiplier:  2.0,
		},
		cfg.Worker.Concurrency,
	)
	indexer.Start(ctx)

	// Initialize domain services
	engine := services.NewAnalysisEngine(oracle, cfg.Oracle.Timeout)
	userService := services.NewUserService(repos.Users, repos.Resumes)
	resumeService := services.NewResumeService(
		repos.Resumes,
		repos.Users,
		storageService,
		parser,
		archive,
		cfg.Storage.MaxFileSize,
	)
	jdService := services.NewJobDescriptionService(repos.JobDescriptions, index, indexer)
	analysisService := services.NewAnalysisService(
		repos.Resumes,
		repos.JobDescriptions,
		repos.Analyses,
		engine,
		publisher,
	)

	// Initialize Handlers
	h := &handlers.Handlers{
		System:         handlers.NewSystemHandler(),
		User:           handlers.NewUserHandler(userService),
		Resume:         handlers.NewResumeHandler(resumeService, repos.Resumes, analysisService),
		JobDescription: handlers.NewJobDescriptionHandler(jdService),
		Analysis:       handlers.NewAnalysisHandler(analysisService),
		Result:         handlers.NewResultHandler(analysisService),
	}
	log.Println("✅ Handlers initialized")

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "ATS Resume Analyzer API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 3 * time.Minute,
		// Room for multipart overhead so oversized files reach the validator
		BodyLimit:    int(cfg.Storage.MaxFileSize) + 1<<20,
		ErrorHandler: handlers.ErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	// Routes
	api := app.Group("/api/v1")
	h.Register(api)

	// Root route
	app.Get("/", func(c *fiber.Ctx) error {
		endpoints := make([]string, len(handlers.Endpoints))
		for i, e := range handlers.Endpoints {
			method, path, _ := strings.Cut(e, " ")
			endpoints[i] = method + " /api/v1" + path
		}
		return c.JSON(fiber.Map{
			"message":   "ATS Resume Analyzer API",
			"version":   "1.0.0",
			"endpoints": endpoints,
		})
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("\n🛑 Shutting down server...")
		if err := app.ShutdownWithTimeout(30 * time.Second); err != nil {
			log.Printf("❌ Server forced to shutdown: %v", err)
		}
		indexer.Stop()
		cancel()
	}()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("🚀 Server starting on %s\n", addr)
	log.Printf("📖 API Documentation: http://localhost%s\n", addr)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

// newLLMClient builds the configured completion client. The Gemini service is
// also returned when it was the one built, so it can serve embeddings.
func newLLMClient(cfg *config.Config) (services.LLMClient, services.GeminiService, error) {
	switch cfg.Oracle.Provider {
	case config.ProviderOpenAI:
		client, err := services.NewOpenAIService(cfg.OpenAI.APIKey, cfg.OpenAI.Model, cfg.OpenAI.BaseURL)
		return client, nil, err
	default:
		gemini, err := services.NewGeminiService(cfg.Gemini.APIKey, cfg.Gemini.Model, cfg.Gemini.EmbedModel)
		if err != nil {
			return nil, nil, err
		}
		return gemini, gemini, nil
	}
}

func cacheNamespace(cfg *config.Config) string {
	if cfg.Oracle.Provider == config.ProviderOpenAI {
		return config.ProviderOpenAI + ":" + cfg.OpenAI.Model
	}
	return config.ProviderGemini + ":" + cfg.Gemini.Model
}
