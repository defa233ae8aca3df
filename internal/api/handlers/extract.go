// Package handlers implements the HTTP endpoints: asynchronous statement
// extraction backed by the job queue, job status queries, and synchronous
// single-message extraction.
package handlers

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/finsight/ledgerparse/internal/api/middleware"
	"github.com/finsight/ledgerparse/internal/jobs"
)

// maxUploadBytes bounds statement uploads. Statements are small; anything
// larger is almost certainly not one.
const maxUploadBytes = 25 << 20

// ExtractHandler accepts statement uploads and answers job status queries.
// Uploads are spooled to a local directory and extracted asynchronously;
// results live in the job store only.
type ExtractHandler struct {
	publisher jobs.Publisher
	store     jobs.JobStore
	spoolDir  string
	log       zerolog.Logger
}

func NewExtractHandler(publisher jobs.Publisher, store jobs.JobStore, spoolDir string, log zerolog.Logger) *ExtractHandler {
	return &ExtractHandler{
		publisher: publisher,
		store:     store,
		spoolDir:  spoolDir,
		log:       log,
	}
}

// Upload handles POST /api/extract. The statement comes as multipart field
// "file"; the response is 202 with the job ID to poll.
func (h *ExtractHandler) Upload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid multipart body")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Form field 'file' is required")
		return
	}
	defer file.Close()

	filename := filepath.Base(header.Filename)
	if filename == "" || filename == "." {
		middleware.WriteError(w, http.StatusBadRequest, "Upload has no filename")
		return
	}

	localPath, err := h.spool(file, filename)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to spool upload")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to store upload")
		return
	}

	job := &jobs.ExtractDocumentJob{
		Filename:  filename,
		LocalPath: localPath,
	}
	if err := h.publisher.PublishExtractDocument(ctx, job); err != nil {
		h.log.Error().Err(err).Msg("Failed to enqueue extraction job")
		middleware.WriteError(w, http.StatusServiceUnavailable, "Failed to enqueue extraction")
		return
	}

	h.log.Info().
		Str("job_id", job.JobID).
		Str("filename", filename).
		Msg("Extraction job enqueued")

	middleware.WriteJSON(w, http.StatusAccepted, map[string]string{
		"job_id": job.JobID,
		"status": string(job.Status),
	})
}

// GetJob handles GET /api/extract/jobs/{id}.
func (h *ExtractHandler) GetJob(w http.ResponseWriter, r *http.Request, jobID string) {
	job, err := h.store.GetJob(r.Context(), jobID)
	if err != nil {
		middleware.WriteError(w, http.StatusNotFound, "Job not found")
		return
	}
	middleware.WriteJSON(w, http.StatusOK, job)
}

// ListJobs handles GET /api/extract/jobs, optionally filtered by ?status=.
func (h *ExtractHandler) ListJobs(w http.ResponseWriter, r *http.Request) {
	filter := jobs.JobFilter{
		Status: jobs.JobStatus(r.URL.Query().Get("status")),
		Limit:  100,
	}

	list, err := h.store.ListJobs(r.Context(), filter)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list jobs")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to list jobs")
		return
	}

	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"jobs":  list,
		"count": len(list),
	})
}

func (h *ExtractHandler) spool(src io.Reader, filename string) (string, error) {
	if err := os.MkdirAll(h.spoolDir, 0o755); err != nil {
		return "", fmt.Errorf("create spool dir: %w", err)
	}

	path := filepath.Join(h.spoolDir, uuid.New().String()+"-"+filename)
	dst, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create spool file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("write spool file: %w", err)
	}
	return path, nil
}
