package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/segyhp/leasing-engine/internal/config"
	"github.com/segyhp/leasing-engine/internal/notification"
	"github.com/segyhp/leasing-engine/internal/repository"
	"github.com/segyhp/leasing-engine/internal/scheduler"
	"github.com/segyhp/leasing-engine/internal/service"
	"github.com/segyhp/leasing-engine/pkg/logger"
)

const jobTimeout = 10 * time.Minute

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zl, err := logger.New(cfg.Logging)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()
	zap.ReplaceGlobals(zl)

	policy, err := cfg.LeasingPolicy()
	if err != nil {
		zl.Fatal("invalid leasing policy", zap.Error(err))
	}

	db, err := sqlx.Connect("postgres", cfg.Database.URL)
	if err != nil {
		zl.Fatal("failed to initialize database", zap.Error(err))
	}
	defer db.Close()

	redisOpt, err := redis.ParseURL(cfg.Redis.URL)
	if err != nil {
		zl.Fatal("invalid redis url", zap.Error(err))
	}
	redisClient := redis.NewClient(redisOpt)
	defer redisClient.Close()

	notifier, err := notification.NewClient(cfg.Redis.URL, cfg.Queue.Name)
	if err != nil {
		zl.Fatal("failed to initialize notification client", zap.Error(err))
	}
	defer notifier.Close()

	worker, err := notification.NewWorker(cfg.Redis.URL, cfg.Queue.Name, cfg.Queue.Concurrency, zl)
	if err != nil {
		zl.Fatal("failed to initialize notification worker", zap.Error(err))
	}

	reminders := service.NewReminderService(repository.NewAgreementRepository(db), notifier, policy.ReminderDaysAhead, zl)

	loc := cfg.GetSchedulerLocation()
	sched := scheduler.New(loc, scheduler.NewJobRunner(redisClient, jobTimeout, zl), zl)
	if err := setupCronJobs(sched, cfg, reminders, loc); err != nil {
		zl.Fatal("failed to schedule jobs", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sched.Start()
	zl.Info("scheduler started",
		zap.String("timezone", loc.String()),
		zap.String("overdue", cfg.Scheduler.OverdueCron),
		zap.String("reminders", cfg.Scheduler.ReminderCron))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		worker.Run(gctx)
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		zl.Info("shutting down scheduler")
		<-sched.Stop().Done()
		return nil
	})

	if err := g.Wait(); err != nil {
		zl.Error("scheduler stopped with error", zap.Error(err))
	}
	zl.Info("scheduler stopped")
}

func setupCronJobs(sched *scheduler.Scheduler, cfg *config.Config, reminders *service.ReminderService, loc *time.Location) error {
	err := sched.Add(cfg.Scheduler.OverdueCron, "mark_overdue", func(ctx context.Context) error {
		_, err := reminders.MarkOverdue(ctx, time.Now().In(loc))
		return err
	})
	if err != nil {
		return err
	}

	return sched.Add(cfg.Scheduler.ReminderCron, "payment_reminders", func(ctx context.Context) error {
		_, err := reminders.SendPaymentReminders(ctx, time.Now().In(loc))
		return err
	})
}
