package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/MichalMitros/price-monitor/internal/platform/metrics"
	"github.com/MichalMitros/price-monitor/internal/platform/redislock"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

var (
	// ErrUnknownJob is returned when triggered job isn't registered.
	ErrUnknownJob = errors.New("unknown job")
	// ErrDuplicateJob is returned when two jobs share a name.
	ErrDuplicateJob = errors.New("duplicate job")
)

//go:generate mockery --name Locker --filename locker.go

// Locker runs fn holding named lock shared by all scheduler replicas.
type Locker interface {
	Do(ctx context.Context, name string, ttl time.Duration, fn func(ctx context.Context) error) error
}

// Job is named task run on cron schedule.
type Job struct {
	Name string
	// Spec is standard 5 field cron expression evaluated in UTC.
	Spec string
	Run  func(ctx context.Context) error
}

// Entry describes scheduled job.
type Entry struct {
	Name string
	Spec string
	Next time.Time
}

// Option is custom configuration of Scheduler.
type Option func(s *Scheduler)

// Scheduler runs jobs on their cron schedules and on demand.
type Scheduler struct {
	cron    *cron.Cron
	jobs    map[string]Job
	entries map[string]cron.EntryID
	logger  *zerolog.Logger
	locker  Locker
	lockTTL time.Duration
	timeout time.Duration

	mu     sync.Mutex
	ctx    context.Context
	cancel context.CancelFunc
}

// NewScheduler returns new Scheduler of provided jobs.
func NewScheduler(jobs []Job, logger *zerolog.Logger, ops ...Option) (*Scheduler, error) {
	s := &Scheduler{
		jobs:    make(map[string]Job, len(jobs)),
		entries: make(map[string]cron.EntryID, len(jobs)),
		logger:  logger,
		lockTTL: 30 * time.Minute,
		timeout: 2 * time.Hour,
	}

	for _, op := range ops {
		op(s)
	}

	cronLog := cronLogger{logger: logger}
	s.cron = cron.New(
		cron.WithLocation(time.UTC),
		cron.WithLogger(cronLog),
		cron.WithChain(cron.Recover(cronLog), cron.SkipIfStillRunning(cronLog)),
	)

	for _, job := range jobs {
		if _, ok := s.jobs[job.Name]; ok {
			return nil, fmt.Errorf("can't schedule job %s: %w", job.Name, ErrDuplicateJob)
		}

		id, err := s.cron.AddFunc(job.Spec, func() {
			s.run(s.baseContext(), job)
		})
		if err != nil {
			return nil, fmt.Errorf("can't schedule job %s: %w", job.Name, err)
		}

		s.jobs[job.Name] = job
		s.entries[job.Name] = id
	}

	return s, nil
}

// Start starts running jobs on their schedules. Scheduled runs are cancelled with ctx.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	s.ctx, s.cancel = context.WithCancel(ctx)
	s.mu.Unlock()

	s.cron.Start()
	s.logger.Info().Int("jobs", len(s.jobs)).Msg("scheduler started")
}

// Stop stops scheduling new runs and waits until running jobs finish or ctx is done.
// Running jobs are cancelled when ctx is done.
func (s *Scheduler) Stop(ctx context.Context) error {
	done := s.cron.Stop()

	select {
	case <-done.Done():
		s.logger.Info().Msg("scheduler stopped")
		return nil
	case <-ctx.Done():
		s.mu.Lock()
		if s.cancel != nil {
			s.cancel()
		}
		s.mu.Unlock()
		return fmt.Errorf("can't stop scheduler gracefully: %w", ctx.Err())
	}
}

// Trigger runs job of provided name immediately and returns its error.
func (s *Scheduler) Trigger(ctx context.Context, name string) error {
	job, ok := s.jobs[name]
	if !ok {
		return fmt.Errorf("can't trigger job %s: %w", name, ErrUnknownJob)
	}

	return s.run(ctx, job)
}

// Entries returns scheduled jobs with their next run times.
func (s *Scheduler) Entries() []Entry {
	entries := make([]Entry, 0, len(s.jobs))
	for name, id := range s.entries {
		entries = append(entries, Entry{
			Name: name,
			Spec: s.jobs[name].Spec,
			Next: s.cron.Entry(id).Next,
		})
	}
	return entries
}

func (s *Scheduler) baseContext() context.Context {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ctx == nil {
		return context.Background()
	}
	return s.ctx
}

func (s *Scheduler) run(ctx context.Context, job Job) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	logger := s.logger.With().Str("job", job.Name).Logger()
	logger.Info().Msg("job started")

	start := time.Now()

	var err error
	if s.locker != nil {
		err = s.locker.Do(ctx, job.Name, s.lockTTL, job.Run)
	} else {
		err = job.Run(ctx)
	}

	if errors.Is(err, redislock.ErrNotObtained) {
		logger.Info().Msg("job already running on another instance")
		return nil
	}

	duration := time.Since(start)
	metrics.RecordTask(job.Name, err, duration)

	if err != nil {
		logger.Error().Err(err).Dur("duration", duration).Msg("job failed")
		return fmt.Errorf("job %s failed: %w", job.Name, err)
	}

	logger.Info().Dur("duration", duration).Msg("job finished")

	return nil
}

type cronLogger struct {
	logger *zerolog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Debug().Fields(keysAndValues).Msg(msg)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Error().Err(err).Fields(keysAndValues).Msg(msg)
}

// WithLocker makes every run hold a lock named after the job, valid for ttl.
func WithLocker(locker Locker, ttl time.Duration) Option {
	return func(s *Scheduler) {
		s.locker = locker
		s.lockTTL = ttl
	}
}

// WithTimeout sets maximal duration of single job run.
func WithTimeout(timeout time.Duration) Option {
	return func(s *Scheduler) {
		s.timeout = timeout
	}
}
