// Package jobs defines the asynchronous extraction job model and the queue
// abstractions the API serves jobs through.
package jobs

import (
	"context"
	"time"

	"github.com/finsight/ledgerparse/internal/domain"
)

// JobType discriminates job kinds on the queue.
type JobType string

const (
	JobTypeExtractDocument JobType = "extract_document"
)

// JobStatus is the lifecycle state of a job.
type JobStatus string

const (
	JobStatusPending   JobStatus = "pending"
	JobStatusRunning   JobStatus = "running"
	JobStatusCompleted JobStatus = "completed"
	JobStatusFailed    JobStatus = "failed"
	JobStatusRetrying  JobStatus = "retrying"
)

// ExtractDocumentJob is one statement extraction request. The source is
// either a local file (uploaded through the API and spooled to disk) or a
// gs:// URI. On completion Result carries the full extraction output; jobs
// are the only place results live, nothing is written to a ledger.
type ExtractDocumentJob struct {
	JobID string `json:"job_id"`

	// Filename is the original upload name; its extension picks the
	// extraction strategy.
	Filename string `json:"filename"`

	// LocalPath is where the uploaded file was spooled. Empty when the
	// source is remote.
	LocalPath string `json:"local_path,omitempty"`

	// SourceURI is a gs:// URI to fetch the statement from. Empty for
	// uploaded files.
	SourceURI string `json:"source_uri,omitempty"`

	Status JobStatus                `json:"status"`
	Result *domain.ExtractionResult `json:"result,omitempty"`

	CreatedAt   time.Time  `json:"created_at"`
	StartedAt   *time.Time `json:"started_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`

	Error      string `json:"error,omitempty"`
	RetryCount int    `json:"retry_count"`
	MaxRetries int    `json:"max_retries"`
}

// Job is the generic view the queue hands to handlers.
type Job interface {
	GetID() string
	GetType() JobType
	GetStatus() JobStatus
}

func (j *ExtractDocumentJob) GetID() string        { return j.JobID }
func (j *ExtractDocumentJob) GetType() JobType     { return JobTypeExtractDocument }
func (j *ExtractDocumentJob) GetStatus() JobStatus { return j.Status }

// Publisher enqueues extraction jobs. Implementations may be in-memory or
// backed by a real broker.
type Publisher interface {
	PublishExtractDocument(ctx context.Context, job *ExtractDocumentJob) error
	Close() error
}

// Consumer drains the queue, invoking the handler per job.
type Consumer interface {
	Start(ctx context.Context, handler JobHandler) error
	Stop(ctx context.Context) error
}

// JobHandler processes one job. A returned error marks the job failed and
// eligible for retry.
type JobHandler func(ctx context.Context, job Job) error

// JobStore tracks job state so the API can answer status queries.
type JobStore interface {
	SaveJob(ctx context.Context, job *ExtractDocumentJob) error
	GetJob(ctx context.Context, jobID string) (*ExtractDocumentJob, error)
	ListJobs(ctx context.Context, filter JobFilter) ([]*ExtractDocumentJob, error)
}

// JobFilter narrows ListJobs results.
type JobFilter struct {
	Status JobStatus
	Limit  int
	Offset int
}
