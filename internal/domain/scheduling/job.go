package scheduling

import (
	"strings"
	"time"

	"github.com/docgen/backend/internal/domain/shared"
)

// JobStatus represents the lifecycle state of a deferred job
type JobStatus string

const (
	JobStatusPending  JobStatus = "PENDING"
	JobStatusExecuted JobStatus = "EXECUTED"
	JobStatusFailed   JobStatus = "FAILED"
)

// IsValid checks if the JobStatus is a valid value
func (s JobStatus) IsValid() bool {
	switch s {
	case JobStatusPending, JobStatusExecuted, JobStatusFailed:
		return true
	}
	return false
}

// String returns the string representation of JobStatus
func (s JobStatus) String() string {
	return string(s)
}

// DeferredJob is a persisted command record: a handler name, its payload and
// the time it becomes due. The runner consumes each job at most once.
type DeferredJob struct {
	shared.BaseEntity
	Handler string
	Queue   string
	Payload map[string]any
	RunAt   time.Time
	Status  JobStatus
}

// NewDeferredJob schedules a handler invocation at the given time
func NewDeferredJob(handler string, payload map[string]any, runAt time.Time, queue string) (*DeferredJob, error) {
	if strings.TrimSpace(handler) == "" {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Job handler name cannot be empty")
	}
	if payload == nil {
		payload = make(map[string]any)
	}
	return &DeferredJob{
		BaseEntity: shared.NewBaseEntity(),
		Handler:    handler,
		Queue:      queue,
		Payload:    payload,
		RunAt:      runAt,
		Status:     JobStatusPending,
	}, nil
}

// IsDue reports whether the job should run at the given time
func (j *DeferredJob) IsDue(now time.Time) bool {
	return j.Status == JobStatusPending && !j.RunAt.After(now)
}

// MarkExecuted transitions the job to its terminal executed state
func (j *DeferredJob) MarkExecuted() {
	j.Status = JobStatusExecuted
}

// MarkFailed transitions the job to its terminal failed state
func (j *DeferredJob) MarkFailed() {
	j.Status = JobStatusFailed
}
