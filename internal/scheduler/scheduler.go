// Package scheduler runs periodic jobs on cron schedules in the civil zone.
package scheduler

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"astrotrade/internal/logger"
	"astrotrade/internal/trace"
)

// Job is a named unit of scheduled work.
type Job interface {
	Name() string
	// Schedule is a six-field cron spec (seconds first).
	Schedule() string
	Run(ctx context.Context) error
}

// JobResult records one execution.
type JobResult struct {
	JobName   string        `json:"job_name"`
	StartTime time.Time     `json:"start_time"`
	Duration  time.Duration `json:"duration"`
	Success   bool          `json:"success"`
	Error     string        `json:"error,omitempty"`
}

type Scheduler struct {
	cron *cron.Cron
	ctx  context.Context

	mu   sync.RWMutex
	jobs map[string]Job
	last map[string]JobResult
}

// New creates a scheduler whose specs are read in loc.
func New(loc *time.Location) *Scheduler {
	return &Scheduler{
		cron: cron.New(cron.WithSeconds(), cron.WithLocation(loc)),
		ctx:  context.Background(),
		jobs: make(map[string]Job),
		last: make(map[string]JobResult),
	}
}

// AddJob registers job on its schedule.
func (s *Scheduler) AddJob(job Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	name := job.Name()
	if _, exists := s.jobs[name]; exists {
		return fmt.Errorf("job %s already exists", name)
	}

	if _, err := s.cron.AddFunc(job.Schedule(), func() { s.runJob(s.ctx, job) }); err != nil {
		return fmt.Errorf("failed to schedule job %s: %w", name, err)
	}
	s.jobs[name] = job

	logger.Info(context.Background(), "Job added to scheduler",
		"job", name,
		"schedule", job.Schedule(),
	)
	return nil
}

// Start runs the cron loop until ctx is cancelled, then waits for running
// jobs to finish.
func (s *Scheduler) Start(ctx context.Context) {
	s.ctx = ctx
	logger.Info(ctx, "Starting scheduler", "jobs", len(s.jobs))
	s.cron.Start()

	<-ctx.Done()
	logger.Info(context.Background(), "Stopping scheduler")
	<-s.cron.Stop().Done()
	logger.Info(context.Background(), "Scheduler stopped")
}

// RunNow executes a registered job synchronously.
func (s *Scheduler) RunNow(ctx context.Context, name string) (JobResult, error) {
	s.mu.RLock()
	job, exists := s.jobs[name]
	s.mu.RUnlock()
	if !exists {
		return JobResult{}, fmt.Errorf("job %s not found", name)
	}
	return s.runJob(ctx, job), nil
}

// Next returns the next activation time of a job, zero if unknown.
func (s *Scheduler) Next(name string) time.Time {
	s.mu.RLock()
	job, exists := s.jobs[name]
	s.mu.RUnlock()
	if !exists {
		return time.Time{}
	}
	sched, err := cron.NewParser(
		cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow,
	).Parse(job.Schedule())
	if err != nil {
		return time.Time{}
	}
	return sched.Next(time.Now().In(s.cron.Location()))
}

func (s *Scheduler) runJob(ctx context.Context, job Job) JobResult {
	ctx, span := trace.StartSpan(ctx, "scheduler."+job.Name())
	defer span.End()

	start := time.Now()
	logger.Info(ctx, "Job started", "job", job.Name())

	err := job.Run(ctx)
	result := JobResult{
		JobName:   job.Name(),
		StartTime: start,
		Duration:  time.Since(start),
		Success:   err == nil,
	}
	if err != nil {
		result.Error = err.Error()
		logger.ErrorWithErr(ctx, "Job failed", err, "job", job.Name(), "duration_ms", result.Duration.Milliseconds())
	} else {
		logger.Info(ctx, "Job completed successfully", "job", job.Name(), "duration_ms", result.Duration.Milliseconds())
	}

	s.mu.Lock()
	s.last[job.Name()] = result
	s.mu.Unlock()
	return result
}

// LastResult returns the most recent execution of a job.
func (s *Scheduler) LastResult(name string) (JobResult, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.last[name]
	return r, ok
}

// Jobs returns registered job names, sorted.
func (s *Scheduler) Jobs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.jobs))
	for name := range s.jobs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
