// Package task runs the server's background work: named periodic jobs
// that can be started and stopped independently, and one-shot deferred
// tasks. Failures and panics are logged at the task boundary and never
// reach the caller.
package task

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

var (
	// ErrUnknownJob indicates no job is registered under the given name.
	ErrUnknownJob = errors.New("unknown job")

	// ErrDuplicateJob indicates a job with the same name already exists.
	ErrDuplicateJob = errors.New("job already registered")
)

// Func is the body of a periodic job.
type Func func(ctx context.Context) error

// JobConfig describes a periodic job.
type JobConfig struct {
	Name     string
	Interval time.Duration
	// Immediate runs the job once as soon as it starts.
	Immediate bool
	Run       Func
}

// JobStatus is a point-in-time view of a job.
type JobStatus struct {
	Name     string        `json:"name"`
	Interval time.Duration `json:"interval"`
	Running  bool          `json:"running"`
	Runs     int64         `json:"runs"`
	Failures int64         `json:"failures"`
	LastRun  time.Time     `json:"last_run"`
	LastErr  string        `json:"last_error,omitempty"`
}

type job struct {
	cfg    JobConfig
	cancel context.CancelFunc
	done   chan struct{}

	runs     int64
	failures int64
	lastRun  time.Time
	lastErr  string
}

// Supervisor owns the periodic jobs and deferred tasks of the process.
type Supervisor struct {
	mu     sync.Mutex
	jobs   map[string]*job
	ctx    context.Context
	cancel context.CancelFunc
	closed bool
	wg     sync.WaitGroup
}

// NewSupervisor creates a supervisor. Jobs are bound to ctx; cancelling it
// stops every job.
func NewSupervisor(ctx context.Context) *Supervisor {
	ctx, cancel := context.WithCancel(ctx)
	return &Supervisor{
		jobs:   make(map[string]*job),
		ctx:    ctx,
		cancel: cancel,
	}
}

// Register adds a periodic job without starting it.
func (s *Supervisor) Register(cfg JobConfig) error {
	if cfg.Interval <= 0 {
		return fmt.Errorf("job %q: interval must be positive", cfg.Name)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.jobs[cfg.Name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateJob, cfg.Name)
	}
	s.jobs[cfg.Name] = &job{cfg: cfg}
	return nil
}

// Start starts the named job. Starting a running job is a no-op.
func (s *Supervisor) Start(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	j, ok := s.jobs[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownJob, name)
	}
	if j.cancel != nil || s.closed {
		return nil
	}

	ctx, cancel := context.WithCancel(s.ctx)
	j.cancel = cancel
	j.done = make(chan struct{})

	s.wg.Add(1)
	go s.loop(ctx, j, j.done)

	log.Debug().Str("task", name).Dur("interval", j.cfg.Interval).Msg("Job started")
	return nil
}

// Stop stops the named job and waits for an in-flight run to return.
func (s *Supervisor) Stop(name string) error {
	s.mu.Lock()
	j, ok := s.jobs[name]
	if !ok {
		s.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrUnknownJob, name)
	}
	cancel, done := j.cancel, j.done
	j.cancel, j.done = nil, nil
	s.mu.Unlock()

	if cancel == nil {
		return nil
	}
	cancel()
	<-done

	log.Debug().Str("task", name).Msg("Job stopped")
	return nil
}

// StartAll starts every registered job.
func (s *Supervisor) StartAll() {
	for _, name := range s.names() {
		_ = s.Start(name)
	}
}

// Shutdown stops all jobs and waits for them and for pending deferred
// tasks that already began running.
func (s *Supervisor) Shutdown() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()

	s.cancel()
	s.wg.Wait()
}

// RunNow runs the named job once on the caller's goroutine.
func (s *Supervisor) RunNow(ctx context.Context, name string) error {
	s.mu.Lock()
	j, ok := s.jobs[name]
	s.mu.Unlock()
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownJob, name)
	}
	return s.run(ctx, j)
}

// Status reports every registered job, sorted by name.
func (s *Supervisor) Status() []JobStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]JobStatus, 0, len(s.jobs))
	for _, j := range s.jobs {
		out = append(out, JobStatus{
			Name:     j.cfg.Name,
			Interval: j.cfg.Interval,
			Running:  j.cancel != nil,
			Runs:     j.runs,
			Failures: j.failures,
			LastRun:  j.lastRun,
			LastErr:  j.lastErr,
		})
	}
	sort.Slice(out, func(a, b int) bool { return out[a].Name < out[b].Name })
	return out
}

// After runs fn once after d on its own goroutine. The returned timer can
// stop the task before it fires. Panics inside fn are logged.
func (s *Supervisor) After(name string, d time.Duration, fn func()) *time.Timer {
	return time.AfterFunc(d, func() {
		if !s.track() {
			return
		}
		defer s.wg.Done()
		defer recoverTask(name)
		fn()
	})
}

// Go runs fn on its own goroutine with the same panic protection as After.
// fn receives the supervisor context, which is cancelled on shutdown.
func (s *Supervisor) Go(name string, fn func(ctx context.Context)) {
	if !s.track() {
		return
	}
	go func() {
		defer s.wg.Done()
		defer recoverTask(name)
		fn(s.ctx)
	}()
}

// track registers a task with the wait group unless shutdown has begun.
func (s *Supervisor) track() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false
	}
	s.wg.Add(1)
	return true
}

func (s *Supervisor) loop(ctx context.Context, j *job, done chan struct{}) {
	defer s.wg.Done()
	defer close(done)

	if j.cfg.Immediate {
		_ = s.run(ctx, j)
	}

	ticker := time.NewTicker(j.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			_ = s.run(ctx, j)
		}
	}
}

func (s *Supervisor) run(ctx context.Context, j *job) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
			log.Error().Str("task", j.cfg.Name).Interface("panic", r).Bytes("stack", debug.Stack()).Msg("Job panicked")
		}
		s.mu.Lock()
		j.runs++
		j.lastRun = time.Now()
		j.lastErr = ""
		if err != nil {
			j.failures++
			j.lastErr = err.Error()
		}
		s.mu.Unlock()
	}()

	if err = j.cfg.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Warn().Err(err).Str("task", j.cfg.Name).Msg("Job failed")
	}
	return err
}

func (s *Supervisor) names() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	names := make([]string, 0, len(s.jobs))
	for name := range s.jobs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func recoverTask(name string) {
	if r := recover(); r != nil {
		log.Error().Str("task", name).Interface("panic", r).Bytes("stack", debug.Stack()).Msg("Task panicked")
	}
}
