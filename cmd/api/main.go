package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/finsight/ledgerparse/internal/api/handlers"
	"github.com/finsight/ledgerparse/internal/api/middleware"
	"github.com/finsight/ledgerparse/internal/domain"
	"github.com/finsight/ledgerparse/internal/extract"
	"github.com/finsight/ledgerparse/internal/gcs"
	"github.com/finsight/ledgerparse/internal/ingest"
	"github.com/finsight/ledgerparse/internal/jobs"
	"github.com/finsight/ledgerparse/internal/jobs/inmemory"
	"github.com/finsight/ledgerparse/internal/llm"
	"github.com/finsight/ledgerparse/internal/logger"
	"github.com/finsight/ledgerparse/internal/sms"
)

func main() {
	_ = godotenv.Load()

	var (
		port     = flag.String("port", envOr("PORT", "8080"), "HTTP server port")
		model    = flag.String("model", envOr("GEMINI_MODEL", llm.DefaultModelName), "Gemini model for generative extraction")
		spoolDir = flag.String("spool-dir", envOr("SPOOL_DIR", filepath.Join(os.TempDir(), "ledgerparse-uploads")), "Directory for uploaded statements")
		workers  = flag.Int("workers", 4, "Extraction worker count")
	)
	flag.Parse()

	log := logger.New()
	ctx := context.Background()

	completer := llm.NewGeminiCompleter(*model)
	generative := llm.NewExtractor(completer, log)
	router := ingest.NewRouter(generative, extract.NewPDFTextExtractor(), nil, log)
	smsExtractor := sms.NewExtractor(generative, log)

	jobStore := inmemory.NewStore()
	jobQueue := inmemory.NewQueue(100, *workers, jobStore)

	workerCtx, cancelWorker := context.WithCancel(logger.WithContext(ctx, log))
	defer cancelWorker()

	jobHandler := func(ctx context.Context, job jobs.Job) error {
		extractJob, ok := job.(*jobs.ExtractDocumentJob)
		if !ok {
			return fmt.Errorf("unexpected job type: %T", job)
		}

		log.Info().
			Str("job_id", extractJob.JobID).
			Str("filename", extractJob.Filename).
			Msg("Processing extraction job")

		result, err := runExtraction(ctx, router, extractJob)
		if err != nil {
			return err
		}
		extractJob.Result = &result
		return nil
	}

	go func() {
		log.Info().Int("workers", *workers).Msg("Starting extraction workers")
		if err := jobQueue.Start(workerCtx, jobHandler); err != nil {
			log.Error().Err(err).Msg("Extraction workers stopped with error")
		}
	}()

	extractHandler := handlers.NewExtractHandler(jobQueue, jobStore, *spoolDir, log)
	smsHandler := handlers.NewSMSHandler(smsExtractor, log)

	mux := http.NewServeMux()

	mux.HandleFunc("/api/extract", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			extractHandler.Upload(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/extract/jobs", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			extractHandler.ListJobs(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/extract/jobs/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
			return
		}
		jobID := strings.TrimPrefix(r.URL.Path, "/api/extract/jobs/")
		if jobID == "" {
			middleware.WriteError(w, http.StatusBadRequest, "Job ID is required")
			return
		}
		extractHandler.GetJob(w, r, jobID)
	})

	mux.HandleFunc("/api/sms", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			smsHandler.Extract(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		middleware.WriteJSON(w, http.StatusOK, map[string]string{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	handler := middleware.Recovery(log)(
		middleware.Logger(log)(
			middleware.RequestID(
				middleware.CORS(mux),
			),
		),
	)

	server := &http.Server{
		Addr:         ":" + *port,
		Handler:      handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("port", *port).Msg("Starting extraction API")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down")

	cancelWorker()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}
	if err := jobQueue.Stop(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Error stopping job queue")
	}

	log.Info().Msg("Server exited")
}

// runExtraction resolves the job's source to a local file and routes it.
// Remote sources are fetched to a temp file first, so the router only ever
// sees local paths. Spooled uploads are deleted once the extraction has run;
// an extraction error (remote fetch) keeps the job retryable and its source
// intact.
func runExtraction(ctx context.Context, router *ingest.Router, job *jobs.ExtractDocumentJob) (domain.ExtractionResult, error) {
	path := job.LocalPath

	if path == "" {
		if job.SourceURI == "" {
			return domain.ExtractionResult{}, fmt.Errorf("job %s has no source", job.JobID)
		}
		data, err := gcs.FetchStatement(ctx, job.SourceURI)
		if err != nil {
			return domain.ExtractionResult{}, fmt.Errorf("fetch statement: %w", err)
		}

		// keep the extension so the router picks the right strategy
		tmp, err := os.CreateTemp("", "statement-*"+filepath.Ext(job.Filename))
		if err != nil {
			return domain.ExtractionResult{}, fmt.Errorf("create temp file: %w", err)
		}
		defer os.Remove(tmp.Name())
		if _, err := tmp.Write(data); err != nil {
			tmp.Close()
			return domain.ExtractionResult{}, fmt.Errorf("write temp file: %w", err)
		}
		tmp.Close()
		path = tmp.Name()
	}

	result := router.ExtractFile(ctx, path)

	if job.LocalPath != "" {
		if err := os.Remove(job.LocalPath); err != nil && !os.IsNotExist(err) {
			log := logger.FromContext(ctx)
			log.Warn().
				Err(err).
				Str("job_id", job.JobID).
				Msg("Failed to remove spooled upload")
		}
	}

	return result, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
