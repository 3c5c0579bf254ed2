package main

import (
	"context"
	"flag"
	"io/fs"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/rameshbanala/resume-analyzer/internal/config"
	"github.com/rameshbanala/resume-analyzer/internal/models"
	"github.com/rameshbanala/resume-analyzer/internal/repositories"
	"github.com/rameshbanala/resume-analyzer/internal/services"
)

func main() {
	dir := flag.String("dir", "./resumes", "directory containing .pdf and .docx resumes")
	flag.Parse()

	log.Println("🚀 Starting resume ingestion...")

	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := config.InitDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize database: %v", err)
	}

	geminiService, err := services.NewGeminiService(ctx, cfg.Gemini)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Gemini: %v", err)
	}

	var indexer services.ResumeIndexer
	if cfg.Qdrant.URL != "" {
		qdrantService, err := services.NewQdrantService(cfg.Qdrant.URL, cfg.Qdrant.APIKey, cfg.Qdrant.Collection)
		if err != nil {
			log.Fatalf("❌ Failed to initialize Qdrant: %v", err)
		}
		if err := qdrantService.InitCollection(ctx); err != nil {
			log.Fatalf("❌ Failed to initialize collection: %v", err)
		}
		indexer = services.NewResumeIndexer(geminiService, qdrantService, services.NewTextChunker())
	}

	resumeService := services.NewResumeService(
		services.NewIngestionService(
			services.NewFileValidator(cfg.Upload.MaxPDFSize, cfg.Upload.MaxDOCXSize),
			services.NewTextExtractor(cfg.Upload.MinTextLength),
			services.NewStructuredAnalyzer(geminiService, services.AnalyzerOptions{
				MaxAttempts: cfg.Worker.RetryMaxAttempts,
				BaseDelay:   cfg.Worker.RetryInitialDelay,
				Temperature: cfg.Gemini.Temperature,
			}),
		),
		repositories.NewResumeRepository(db),
		indexer,
	)

	paths, err := findResumes(*dir)
	if err != nil {
		log.Fatalf("❌ Failed to read %s: %v", *dir, err)
	}
	log.Printf("📋 Found %d resumes in %s", len(paths), *dir)

	worker := services.NewWorker(func(ctx context.Context, job services.IngestJob) (*models.Resume, error) {
		return resumeService.Upload(ctx, job.Document)
	}, cfg.Worker.Concurrency)
	worker.Start(ctx)

	summary := make(chan [2]int, 1)
	go func() {
		var ok, failed int
		for outcome := range worker.Results() {
			if outcome.Err != nil {
				log.Printf("   ❌ %s: %v", outcome.Job.Source, outcome.Err)
				failed++
				continue
			}
			log.Printf("   ✅ %s stored as resume %d (rating %d)", outcome.Job.Source, outcome.Resume.ID, outcome.Resume.ResumeRating)
			ok++
		}
		summary <- [2]int{ok, failed}
	}()

	readFailures := 0
	for _, path := range paths {
		doc, err := loadDocument(path)
		if err != nil {
			log.Printf("   ⚠️  Skipping %s: %v", path, err)
			readFailures++
			continue
		}
		if !worker.EnqueueJob(services.IngestJob{Source: path, Document: doc}) {
			readFailures++
		}
	}

	worker.Stop()
	counts := <-summary
	failCount := counts[1] + readFailures

	log.Println(strings.Repeat("=", 60))
	log.Printf("📊 Ingestion Summary:")
	log.Printf("   ✅ Successful: %d resumes", counts[0])
	log.Printf("   ❌ Failed: %d resumes", failCount)
	log.Println(strings.Repeat("=", 60))

	if failCount > 0 {
		log.Println("⚠️  Some resumes failed to ingest. Please check the logs above.")
		os.Exit(1)
	}

	log.Println("✅ All resumes ingested successfully!")
}

func findResumes(dir string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if _, ok := models.FormatForExtension(filepath.Ext(path)); ok {
			paths = append(paths, path)
		}
		return nil
	})
	return paths, err
}

func loadDocument(path string) (*models.UploadedDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	return &models.UploadedDocument{
		Data:      data,
		MediaType: models.MediaTypeForExtension(filepath.Ext(path)),
		FileName:  filepath.Base(path),
		Size:      int64(len(data)),
	}, nil
}
