package notification

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"github.com/segyhp/leasing-engine/internal/domain"
)

const (
	defaultQueue = "default"

	// minReminderRetention bounds how long a reminder id stays reserved once
	// its due date is already behind
	minReminderRetention = 24 * time.Hour
)

// Enqueuer is the part of *asynq.Client the notifier needs
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// Client implements the service notifier by enqueueing asynq tasks.
// Delivery happens in the worker.
type Client struct {
	enqueuer Enqueuer
	queue    string
	closer   func() error
	now      func() time.Time
}

func NewClient(redisURL, queue string) (*Client, error) {
	if redisURL == "" {
		return nil, fmt.Errorf("redis url not configured")
	}

	opt, err := redisClientOpt(redisURL)
	if err != nil {
		return nil, err
	}

	client := asynq.NewClient(opt)
	c := NewClientWithEnqueuer(client, queue)
	c.closer = client.Close
	return c, nil
}

func NewClientWithEnqueuer(enqueuer Enqueuer, queue string) *Client {
	if queue == "" {
		queue = defaultQueue
	}
	return &Client{
		enqueuer: enqueuer,
		queue:    queue,
		now:      time.Now,
	}
}

func (c *Client) Close() error {
	if c == nil || c.closer == nil {
		return nil
	}
	return c.closer()
}

func (c *Client) SendAgreementCreated(ctx context.Context, employeeID, agreementID string) error {
	task, err := NewAgreementCreatedTask(AgreementCreatedPayload{
		EmployeeID:  employeeID,
		AgreementID: agreementID,
	})
	if err != nil {
		return err
	}

	_, err = c.enqueuer.EnqueueContext(ctx, task, asynq.Queue(c.queue), asynq.MaxRetry(5))
	return err
}

// SendPaymentDue enqueues one reminder per installment and due date.
// The completed task is retained until the day after the due date, so a later
// run inside the reminder window hits the same task id. That duplicate is not an error.
func (c *Client) SendPaymentDue(ctx context.Context, employeeID string, payment domain.PaymentSchedule) error {
	dueDate := payment.DueDate.Format("2006-01-02")
	task, err := NewPaymentDueTask(PaymentDuePayload{
		EmployeeID:  employeeID,
		AgreementID: payment.AgreementID,
		PaymentID:   payment.ID,
		Sequence:    payment.Sequence,
		DueDate:     dueDate,
		Amount:      payment.Amount.StringFixed(2),
	})
	if err != nil {
		return err
	}

	_, err = c.enqueuer.EnqueueContext(ctx, task,
		asynq.Queue(c.queue),
		asynq.MaxRetry(3),
		asynq.TaskID(fmt.Sprintf("reminder:%s:%s", payment.ID, dueDate)),
		asynq.Retention(c.reminderRetention(payment.DueDate)),
	)
	if errors.Is(err, asynq.ErrTaskIDConflict) {
		return nil
	}
	return err
}

func (c *Client) reminderRetention(dueDate time.Time) time.Duration {
	retention := dueDate.AddDate(0, 0, 1).Sub(c.now())
	if retention < minReminderRetention {
		return minReminderRetention
	}
	return retention
}

func redisClientOpt(redisURL string) (asynq.RedisClientOpt, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return asynq.RedisClientOpt{}, err
	}

	return asynq.RedisClientOpt{
		Addr:      opt.Addr,
		Username:  opt.Username,
		Password:  opt.Password,
		DB:        opt.DB,
		TLSConfig: opt.TLSConfig,
	}, nil
}
