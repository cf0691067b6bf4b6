// Package scheduler runs the periodic payment jobs. Each run takes a Redis
// lock named after the job, so only one scheduler replica executes it.
package scheduler

import (
	"context"
	"errors"
	"time"

	"github.com/bsm/redislock"
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const lockKeyPrefix = "scheduler:lock:"

// Job is one unit of periodic work
type Job func(ctx context.Context) error

type JobRunner struct {
	locker  *redislock.Client
	timeout time.Duration
	logger  *zap.Logger
}

// NewJobRunner creates a runner whose jobs are bounded by timeout; the lock
// lives exactly as long as that bound.
func NewJobRunner(client redis.Scripter, timeout time.Duration, logger *zap.Logger) *JobRunner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &JobRunner{
		locker:  redislock.New(client),
		timeout: timeout,
		logger:  logger,
	}
}

// Run executes job under its lock. It reports false without running the job
// when another replica holds the lock.
func (r *JobRunner) Run(ctx context.Context, name string, job Job) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	lock, err := r.locker.Obtain(ctx, lockKeyPrefix+name, r.timeout, nil)
	if errors.Is(err, redislock.ErrNotObtained) {
		r.logger.Info("job skipped, lock held elsewhere", zap.String("job", name))
		return false, nil
	}
	if err != nil {
		r.logger.Error("failed to obtain job lock", zap.String("job", name), zap.Error(err))
		return false, err
	}
	defer func() {
		if err := lock.Release(context.WithoutCancel(ctx)); err != nil && !errors.Is(err, redislock.ErrLockNotHeld) {
			r.logger.Warn("failed to release job lock", zap.String("job", name), zap.Error(err))
		}
	}()

	start := time.Now()
	if err := job(ctx); err != nil {
		r.logger.Error("job failed", zap.String("job", name), zap.Error(err))
		return true, err
	}

	r.logger.Info("job finished", zap.String("job", name), zap.Duration("duration", time.Since(start)))
	return true, nil
}

// Scheduler binds jobs to cron specs (with a seconds field) in one location
type Scheduler struct {
	cron   *cron.Cron
	runner *JobRunner
}

func New(loc *time.Location, runner *JobRunner, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	cl := cronLogger{logger.Sugar()}

	return &Scheduler{
		cron: cron.New(
			cron.WithSeconds(),
			cron.WithLocation(loc),
			cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
		),
		runner: runner,
	}
}

func (s *Scheduler) Add(spec, name string, job Job) error {
	_, err := s.cron.AddFunc(spec, func() {
		_, _ = s.runner.Run(context.Background(), name, job)
	})
	return err
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop stops scheduling; the returned context is done once running jobs finish
func (s *Scheduler) Stop() context.Context {
	return s.cron.Stop()
}

// cronLogger adapts zap to cron.Logger
type cronLogger struct {
	s *zap.SugaredLogger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.s.Infow(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.s.Errorw(msg, append(keysAndValues, "error", err)...)
}
