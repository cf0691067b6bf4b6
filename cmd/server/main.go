package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/segyhp/leasing-engine/internal/config"
	"github.com/segyhp/leasing-engine/internal/handler"
	"github.com/segyhp/leasing-engine/internal/inventory"
	"github.com/segyhp/leasing-engine/internal/notification"
	"github.com/segyhp/leasing-engine/internal/pricing"
	"github.com/segyhp/leasing-engine/internal/repository"
	"github.com/segyhp/leasing-engine/internal/schedule"
	"github.com/segyhp/leasing-engine/internal/service"
	"github.com/segyhp/leasing-engine/internal/validation"
	"github.com/segyhp/leasing-engine/pkg/logger"
)

func main() {
	// .env is optional; real environment variables win
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

	db, err := initDB(cfg)
	if err != nil {
		zl.Fatal("failed to initialize database", zap.Error(err))
	}
	defer db.Close()

	redisClient, err := initRedis(cfg)
	if err != nil {
		zl.Fatal("failed to initialize redis", zap.Error(err))
	}
	defer redisClient.Close()

	notifier, err := notification.NewClient(cfg.Redis.URL, cfg.Queue.Name)
	if err != nil {
		zl.Fatal("failed to initialize notification client", zap.Error(err))
	}
	defer notifier.Close()

	// Repositories and collaborators
	agreementRepo := repository.NewAgreementRepository(db)
	employeeRepo := repository.NewEmployeeRepository(db)
	billingRepo := repository.NewBillingRepository(db)
	itemInventory := inventory.NewRedisInventory(redisClient)

	// Services
	factory := service.NewAgreementFactory(employeeRepo, pricing.NewEngine(policy), schedule.NewGenerator(), time.Now)
	executor := service.NewTransactionExecutor(agreementRepo, itemInventory, billingRepo, notifier, employeeRepo, policy, zl, time.Now)
	leasingService := service.NewLeasingService(validation.New(policy, time.Now), factory, executor, agreementRepo, zl)

	agreementHandler := handler.NewAgreementHandler(leasingService, zl)
	healthHandler := handler.NewHealthHandler(db, redisClient, cfg.GetHealthTimeout(), zl)

	server := &http.Server{
		Addr:         cfg.Server.Host + ":" + cfg.Server.Port,
		Handler:      handler.NewRouter(agreementHandler, healthHandler, zl),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		zl.Info("server starting", zap.String("addr", server.Addr), zap.String("env", cfg.Server.Env))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zl.Fatal("server failed to start", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zl.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		zl.Error("server forced to shutdown", zap.Error(err))
	}

	zl.Info("server exited")
}

func initDB(cfg *config.Config) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", cfg.Database.URL)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(30 * time.Minute)

	return db, nil
}

func initRedis(cfg *config.Config) (*redis.Client, error) {
	opt, err := redis.ParseURL(cfg.Redis.URL)
	if err != nil {
		return nil, err
	}
	return redis.NewClient(opt), nil
}
