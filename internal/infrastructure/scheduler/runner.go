package scheduler

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/docgen/backend/internal/domain/scheduling"
)

var (
	// ErrRunnerNotRunning is returned when submitting work to a stopped runner
	ErrRunnerNotRunning = errors.New("deferred job runner is not running")
	// ErrHandlerExists is returned when registering a handler name twice
	ErrHandlerExists = errors.New("handler already registered")
)

// Handler executes one deferred job payload
type Handler interface {
	Handle(ctx context.Context, payload map[string]any) error
}

// HandlerFunc adapts a function to the Handler interface
type HandlerFunc func(ctx context.Context, payload map[string]any) error

// Handle calls the wrapped function
func (f HandlerFunc) Handle(ctx context.Context, payload map[string]any) error {
	return f(ctx, payload)
}

// RunnerConfig holds deferred-job runner configuration
type RunnerConfig struct {
	// PollInterval between due-job queries
	PollInterval time.Duration
	// Workers processing jobs concurrently
	Workers int
	// BatchSize of due jobs claimed per poll
	BatchSize int
	// JobTimeout bounds a single handler invocation
	JobTimeout time.Duration
}

// DefaultRunnerConfig returns default runner configuration
func DefaultRunnerConfig() RunnerConfig {
	return RunnerConfig{
		PollInterval: 5 * time.Second,
		Workers:      2,
		BatchSize:    50,
		JobTimeout:   5 * time.Minute,
	}
}

// Runner executes persisted deferred jobs. It polls the repository for due
// jobs and dispatches each to its registered handler through a worker pool.
// Jobs whose handler fails are marked failed and not retried; each job is
// consumed at most once.
type Runner struct {
	config RunnerConfig
	repo   scheduling.DeferredJobRepository
	logger *zap.Logger

	mu        sync.Mutex
	handlers  map[string]Handler
	jobs      chan *scheduling.DeferredJob
	cancel    context.CancelFunc
	wg        sync.WaitGroup
	isRunning bool
}

// NewRunner creates a runner over the given job repository
func NewRunner(config RunnerConfig, repo scheduling.DeferredJobRepository, logger *zap.Logger) *Runner {
	if config.PollInterval <= 0 {
		config.PollInterval = DefaultRunnerConfig().PollInterval
	}
	if config.Workers <= 0 {
		config.Workers = DefaultRunnerConfig().Workers
	}
	if config.BatchSize <= 0 {
		config.BatchSize = DefaultRunnerConfig().BatchSize
	}
	if config.JobTimeout <= 0 {
		config.JobTimeout = DefaultRunnerConfig().JobTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{
		config:   config,
		repo:     repo,
		logger:   logger,
		handlers: make(map[string]Handler),
		jobs:     make(chan *scheduling.DeferredJob, 100),
	}
}

// Register binds a handler name to its implementation
func (r *Runner) Register(name string, handler Handler) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.handlers[name]; exists {
		return ErrHandlerExists
	}
	r.handlers[name] = handler
	return nil
}

// Schedule persists a deferred handler invocation
func (r *Runner) Schedule(ctx context.Context, handler string, payload map[string]any, runAt time.Time, queue string) error {
	job, err := scheduling.NewDeferredJob(handler, payload, runAt, queue)
	if err != nil {
		return err
	}
	return r.repo.Save(ctx, job)
}

// Start begins polling for due jobs
func (r *Runner) Start(ctx context.Context) error {
	r.mu.Lock()
	if r.isRunning {
		r.mu.Unlock()
		return nil
	}
	r.isRunning = true
	r.mu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	r.cancel = cancel

	for i := 0; i < r.config.Workers; i++ {
		r.wg.Add(1)
		go r.worker(ctx, i)
	}

	r.wg.Add(1)
	go r.pollLoop(ctx)

	r.logger.Info("deferred job runner started",
		zap.Int("workers", r.config.Workers),
		zap.Duration("poll_interval", r.config.PollInterval))

	return nil
}

// Stop gracefully stops the runner
func (r *Runner) Stop(ctx context.Context) error {
	r.mu.Lock()
	if !r.isRunning {
		r.mu.Unlock()
		return nil
	}
	r.isRunning = false
	r.mu.Unlock()

	if r.cancel != nil {
		r.cancel()
	}

	done := make(chan struct{})
	go func() {
		r.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		r.logger.Info("deferred job runner stopped gracefully")
		return nil
	case <-ctx.Done():
		r.logger.Warn("deferred job runner stop timed out")
		return ctx.Err()
	}
}

// pollLoop periodically claims due jobs and feeds the worker pool
func (r *Runner) pollLoop(ctx context.Context) {
	defer r.wg.Done()

	ticker := time.NewTicker(r.config.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.pollOnce(ctx)
		}
	}
}

// pollOnce claims one batch of due jobs. Claimed jobs are marked before
// dispatch so a concurrent poll never picks them up again.
func (r *Runner) pollOnce(ctx context.Context) {
	due, err := r.repo.FindDue(ctx, time.Now(), r.config.BatchSize)
	if err != nil {
		r.logger.Error("failed to query due jobs", zap.Error(err))
		return
	}

	for _, job := range due {
		job.MarkExecuted()
		if err := r.repo.Save(ctx, job); err != nil {
			r.logger.Error("failed to claim job",
				zap.String("job_id", job.ID.String()),
				zap.Error(err))
			continue
		}

		select {
		case r.jobs <- job:
		case <-ctx.Done():
			return
		}
	}
}

// worker processes claimed jobs
func (r *Runner) worker(ctx context.Context, workerID int) {
	defer r.wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case job := <-r.jobs:
			r.processJob(ctx, job, workerID)
		}
	}
}

// processJob executes a single claimed job
func (r *Runner) processJob(ctx context.Context, job *scheduling.DeferredJob, workerID int) {
	r.mu.Lock()
	handler, ok := r.handlers[job.Handler]
	r.mu.Unlock()

	if !ok {
		r.logger.Warn("no handler registered for job",
			zap.String("job_id", job.ID.String()),
			zap.String("handler", job.Handler))
		r.markFailed(ctx, job)
		return
	}

	jobCtx, cancel := context.WithTimeout(ctx, r.config.JobTimeout)
	defer cancel()

	start := time.Now()
	if err := handler.Handle(jobCtx, job.Payload); err != nil {
		r.logger.Error("job handler failed",
			zap.Int("worker_id", workerID),
			zap.String("job_id", job.ID.String()),
			zap.String("handler", job.Handler),
			zap.Error(err))
		r.markFailed(ctx, job)
		return
	}

	r.logger.Info("job executed",
		zap.Int("worker_id", workerID),
		zap.String("job_id", job.ID.String()),
		zap.String("handler", job.Handler),
		zap.Duration("duration", time.Since(start)))
}

func (r *Runner) markFailed(ctx context.Context, job *scheduling.DeferredJob) {
	job.MarkFailed()
	if err := r.repo.Save(ctx, job); err != nil {
		r.logger.Error("failed to persist job status",
			zap.String("job_id", job.ID.String()),
			zap.Error(err))
	}
}
