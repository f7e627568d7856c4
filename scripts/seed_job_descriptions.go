package main

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"alfredoptarigan/ats-analyzer/internal/config"
	"alfredoptarigan/ats-analyzer/internal/models"
	"alfredoptarigan/ats-analyzer/internal/services"
)

// Usage: go run scripts/seed_job_descriptions.go [dir]
func main() {
	log.Println("🚀 Starting job description seeding...")

	dir := "./reference_docs"
	if len(os.Args) > 1 {
		dir = os.Args[1]
	}

	// Load configuration
	cfg := config.Load()
	if cfg.Database.Driver == config.DriverMemory {
		log.Fatalf("❌ DB_DRIVER=memory would discard the seeded records, use postgres or sqlite")
	}

	repos, err := config.InitRepositories(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize database: %v", err)
	}

	ctx := context.Background()

	index := services.NewNoopJobIndex()
	if cfg.Qdrant.URL != "" {
		gemini, err := services.NewGeminiService(cfg.Gemini.APIKey, cfg.Gemini.Model, cfg.Gemini.EmbedModel)
		if err != nil {
			log.Fatalf("❌ Failed to initialize Gemini: %v", err)
		}
		index, err = services.NewQdrantJobIndex(ctx, services.QdrantIndexConfig{
			URL:        cfg.Qdrant.URL,
			APIKey:     cfg.Qdrant.APIKey,
			Collection: cfg.Qdrant.Collection,
			VectorSize: cfg.Qdrant.VectorSize,
		}, gemini)
		if err != nil {
			log.Fatalf("❌ Failed to initialize Qdrant: %v", err)
		}
	} else {
		log.Println("⚠️  QDRANT_URL not set, job descriptions will not be indexed")
	}

	parser := services.NewDocumentParser()

	entries, err := os.ReadDir(dir)
	if err != nil {
		log.Fatalf("❌ Failed to read %s: %v", dir, err)
	}

	successCount := 0
	failCount := 0

	for _, entry := range entries {
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if entry.IsDir() || (ext != ".pdf" && ext != ".docx") {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		title := strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name()))
		log.Printf("\n📄 Processing: %s", title)

		// Extract text
		text, err := parser.ExtractText(path, "")
		if err != nil {
			log.Printf("   ❌ Failed to extract text: %v", err)
			failCount++
			continue
		}
		log.Printf("   ✅ Extracted %d characters", len([]rune(text)))

		jd := &models.JobDescription{
			ID:          uuid.New(),
			Title:       title,
			Description: text,
			CreatedAt:   time.Now().UTC(),
		}
		if err := repos.JobDescriptions.Create(ctx, jd); err != nil {
			log.Printf("   ❌ Failed to save job description: %v", err)
			failCount++
			continue
		}

		if index.Enabled() {
			_, err := services.RetryDo(ctx, services.DefaultRetryConfig, func() (struct{}, error) {
				return struct{}{}, index.Index(ctx, jd)
			})
			if err != nil {
				log.Printf("   ⚠️  Saved %s but indexing failed: %v", jd.ID, err)
			} else {
				log.Printf("   🔄 Indexed %s", jd.ID)
			}
		}

		log.Printf("   ✅ Stored job description %s", jd.ID)
		successCount++
	}

	// Summary
	log.Println("\n" + strings.Repeat("=", 60))
	log.Printf("📊 Seeding Summary:")
	log.Printf("   ✅ Successful: %d job descriptions", successCount)
	log.Printf("   ❌ Failed: %d job descriptions", failCount)
	log.Println(strings.Repeat("=", 60))

	if failCount > 0 {
		log.Println("⚠️  Some job descriptions failed to seed. Please check the logs above.")
		os.Exit(1)
	}

	log.Println("✅ All job descriptions seeded successfully!")
}
