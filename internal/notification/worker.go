package notification

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// Worker consumes notification tasks and delivers each one as a structured log line
type Worker struct {
	server *asynq.Server
	mux    *asynq.ServeMux
	logger *zap.Logger
}

func NewWorker(redisURL, queue string, concurrency int, logger *zap.Logger) (*Worker, error) {
	if redisURL == "" {
		return nil, fmt.Errorf("redis url not configured")
	}

	opt, err := redisClientOpt(redisURL)
	if err != nil {
		return nil, err
	}

	if queue == "" {
		queue = defaultQueue
	}
	if concurrency < 1 {
		concurrency = 10
	}

	server := asynq.NewServer(opt, asynq.Config{
		Concurrency: concurrency,
		Queues: map[string]int{
			queue: 1,
		},
	})

	w := newHandlers(logger)
	w.server = server
	return w, nil
}

func newHandlers(logger *zap.Logger) *Worker {
	if logger == nil {
		logger = zap.NewNop()
	}

	w := &Worker{
		mux:    asynq.NewServeMux(),
		logger: logger,
	}
	w.mux.HandleFunc(TaskAgreementCreated, w.handleAgreementCreated)
	w.mux.HandleFunc(TaskPaymentDue, w.handlePaymentDue)
	return w
}

// Run blocks until ctx is cancelled or the server fails
func (w *Worker) Run(ctx context.Context) {
	if w == nil || w.server == nil {
		return
	}

	go func() {
		<-ctx.Done()
		w.server.Shutdown()
	}()

	if err := w.server.Run(w.mux); err != nil {
		w.logger.Error("notification worker stopped", zap.Error(err))
	}
}

func (w *Worker) handleAgreementCreated(ctx context.Context, task *asynq.Task) error {
	payload, err := ParseAgreementCreatedPayload(task)
	if err != nil {
		return fmt.Errorf("parse payload: %v: %w", err, asynq.SkipRetry)
	}
	if payload.EmployeeID == "" || payload.AgreementID == "" {
		return fmt.Errorf("incomplete payload: %w", asynq.SkipRetry)
	}

	w.logger.Info("agreement created notification",
		zap.String("employee_id", payload.EmployeeID),
		zap.String("agreement_id", payload.AgreementID))
	return nil
}

func (w *Worker) handlePaymentDue(ctx context.Context, task *asynq.Task) error {
	payload, err := ParsePaymentDuePayload(task)
	if err != nil {
		return fmt.Errorf("parse payload: %v: %w", err, asynq.SkipRetry)
	}
	if payload.EmployeeID == "" || payload.PaymentID == "" {
		return fmt.Errorf("incomplete payload: %w", asynq.SkipRetry)
	}

	w.logger.Info("payment due notification",
		zap.String("employee_id", payload.EmployeeID),
		zap.String("agreement_id", payload.AgreementID),
		zap.String("payment_id", payload.PaymentID),
		zap.Int("sequence", payload.Sequence),
		zap.String("due_date", payload.DueDate),
		zap.String("amount", payload.Amount))
	return nil
}
