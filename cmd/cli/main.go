package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/finsight/ledgerparse/internal/extract"
	"github.com/finsight/ledgerparse/internal/gcs"
	"github.com/finsight/ledgerparse/internal/ingest"
	"github.com/finsight/ledgerparse/internal/llm"
	"github.com/finsight/ledgerparse/internal/logger"
	"github.com/finsight/ledgerparse/internal/sms"
)

func main() {
	_ = godotenv.Load()
	log := logger.New()

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "extract":
		runExtract(log)
	case "sms":
		runSMS(log)
	case "upload":
		runUpload(log)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("ledgerparse CLI")
	fmt.Println("\nUsage:")
	fmt.Println("  cli <command> [options]")
	fmt.Println("\nCommands:")
	fmt.Println("  extract   Extract transactions from a statement (local path or gs:// URI)")
	fmt.Println("  sms       Extract a transaction from a single alert message")
	fmt.Println("  upload    Upload a statement file to GCS")
	fmt.Println("  help      Show this help message")
	fmt.Println("\nRun 'cli <command> -h' for more information on a command.")
}

func newRouter(log zerolog.Logger, model string) *ingest.Router {
	generative := llm.NewExtractor(llm.NewGeminiCompleter(model), log)
	return ingest.NewRouter(generative, extract.NewPDFTextExtractor(), nil, log)
}

func runExtract(log zerolog.Logger) {
	fs := flag.NewFlagSet("extract", flag.ExitOnError)
	source := fs.String("source", "", "Statement path or gs:// URI")
	model := fs.String("model", os.Getenv("GEMINI_MODEL"), "Gemini model for generative extraction")
	fs.Parse(os.Args[2:])

	if *source == "" {
		log.Fatal().Msg("Error: --source is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()
	ctx = logger.WithContext(ctx, log)

	path := *source
	if strings.HasPrefix(*source, "gs://") {
		data, err := gcs.FetchStatement(ctx, *source)
		if err != nil {
			log.Fatal().Err(err).Msg("Fetch failed")
		}
		tmp, err := os.CreateTemp("", "statement-*"+filepath.Ext(gcs.FilenameFromURI(*source)))
		if err != nil {
			log.Fatal().Err(err).Msg("Temp file failed")
		}
		defer os.Remove(tmp.Name())
		if _, err := tmp.Write(data); err != nil {
			log.Fatal().Err(err).Msg("Temp file write failed")
		}
		tmp.Close()
		path = tmp.Name()
	}

	result := newRouter(log, *model).ExtractFile(ctx, path)

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		log.Fatal().Err(err).Msg("Encoding result failed")
	}
	fmt.Println(string(out))

	if !result.Success {
		os.Exit(1)
	}
}

func runSMS(log zerolog.Logger) {
	fs := flag.NewFlagSet("sms", flag.ExitOnError)
	message := fs.String("message", "", "Alert message text")
	model := fs.String("model", os.Getenv("GEMINI_MODEL"), "Gemini model for generative extraction")
	deterministic := fs.Bool("deterministic", false, "Skip the generative tier")
	fs.Parse(os.Args[2:])

	if *message == "" {
		log.Fatal().Msg("Error: --message is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	var extractor *sms.Extractor
	if *deterministic {
		extractor = sms.NewExtractor(nil, log)
	} else {
		extractor = sms.NewExtractor(llm.NewExtractor(llm.NewGeminiCompleter(*model), log), log)
	}

	rec := extractor.Extract(ctx, *message)

	out, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		log.Fatal().Err(err).Msg("Encoding result failed")
	}
	fmt.Println(string(out))
}

func runUpload(log zerolog.Logger) {
	fs := flag.NewFlagSet("upload", flag.ExitOnError)
	bucket := fs.String("bucket", os.Getenv("GCS_BUCKET"), "GCS bucket name (or set GCS_BUCKET)")
	object := fs.String("object", "", "GCS object name (defaults to filename)")
	filePath := fs.String("file", "", "Path to local statement file")
	fs.Parse(os.Args[2:])

	if *bucket == "" || *filePath == "" {
		log.Fatal().Msg("Usage: cli upload -bucket NAME -file PATH")
	}
	if *object == "" {
		*object = filepath.Base(*filePath)
	}

	ctx := context.Background()

	log.Info().
		Str("bucket", *bucket).
		Str("object", *object).
		Str("file", *filePath).
		Msg("Uploading statement")

	if err := gcs.UploadStatement(ctx, *bucket, *object, *filePath); err != nil {
		log.Fatal().Err(err).Msg("Upload failed")
	}

	fmt.Printf("Uploaded %s to gs://%s/%s\n", *filePath, *bucket, *object)
}
