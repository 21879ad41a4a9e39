package main

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"alfredoptarigan/smartmatch/internal/config"
	"alfredoptarigan/smartmatch/internal/services"
)

var seedExtensions = map[string]bool{
	".pdf":  true,
	".docx": true,
	".txt":  true,
}

func main() {
	log.Println("🚀 Starting job description ingestion...")

	// Load configuration
	cfg := config.Load()
	ctx := context.Background()

	// Initialize services
	embedder, err := services.NewGeminiEmbedder(ctx, cfg.Gemini.APIKey, cfg.Gemini.EmbeddingModel, cfg.Gemini.EmbeddingDimension)
	if err != nil {
		log.Fatalf("❌ Failed to initialize embedding model: %v", err)
	}
	if err := services.Warmup(ctx, embedder); err != nil {
		log.Fatalf("❌ Embedding model unavailable: %v", err)
	}

	archive, err := services.NewQdrantJobArchive(
		cfg.Qdrant.URL,
		cfg.Qdrant.APIKey,
		cfg.Qdrant.Collection,
		embedder.Dimension(),
	)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Qdrant: %v", err)
	}

	if err := archive.InitCollection(ctx); err != nil {
		log.Fatalf("❌ Failed to initialize collection: %v", err)
	}

	parser := services.NewDocumentParserService()

	entries, err := os.ReadDir(cfg.Seed.JobDescriptionDir)
	if err != nil {
		log.Fatalf("❌ Failed to read %s: %v", cfg.Seed.JobDescriptionDir, err)
	}

	successCount := 0
	failCount := 0

	for _, entry := range entries {
		if entry.IsDir() || !seedExtensions[strings.ToLower(filepath.Ext(entry.Name()))] {
			continue
		}

		path := filepath.Join(cfg.Seed.JobDescriptionDir, entry.Name())
		log.Printf("\n📄 Processing: %s", path)

		data, err := os.ReadFile(path)
		if err != nil {
			log.Printf("   ❌ Failed to read file: %v", err)
			failCount++
			continue
		}

		// Extract and normalize text
		content, err := parser.ExtractTextWithMetaData(data, services.DetectContentType(entry.Name(), data))
		if err != nil {
			log.Printf("   ❌ Failed to extract text: %v", err)
			failCount++
			continue
		}

		text := services.NormalizeText(content.Text)
		if strings.TrimSpace(text) == "" {
			log.Printf("   ⚠️  No text found, skipping...")
			failCount++
			continue
		}
		log.Printf("   ✅ Extracted %d pages, %d characters", content.PageCount, len(text))

		// Embed and archive
		vectors, err := embedder.Embed(ctx, []string{text})
		if err != nil || len(vectors) != 1 {
			log.Printf("   ❌ Failed to generate embedding: %v", err)
			failCount++
			continue
		}

		// Stable id so re-running the script overwrites instead of duplicating
		id := uuid.NewSHA1(uuid.NameSpaceURL, []byte("file://"+path))
		if err := archive.Archive(ctx, id, entry.Name(), services.JobSnippet(text), vectors[0]); err != nil {
			log.Printf("   ❌ Failed to store embedding: %v", err)
			failCount++
			continue
		}

		log.Printf("   ✅ Archived %s as %s", entry.Name(), id)
		successCount++
	}

	// Summary
	log.Println("\n" + strings.Repeat("=", 60))
	log.Printf("📊 Ingestion Summary:")
	log.Printf("   ✅ Successful: %d job descriptions", successCount)
	log.Printf("   ❌ Failed: %d job descriptions", failCount)
	log.Println(strings.Repeat("=", 60))

	if failCount > 0 {
		log.Println("⚠️  Some job descriptions failed to ingest. Please check the logs above.")
		os.Exit(1)
	}

	log.Println("✅ All job descriptions ingested successfully!")
}
